package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const uniqueExpenseItemName = "uk_expense_items_business_type_name"

type expenseItemRepository struct {
	db *database.DB
}

func NewExpenseItemRepository(db *database.DB) expense.ItemRepository {
	return &expenseItemRepository{db: db}
}

const expenseItemColumns = `
	id, business_id, name, expense_type, default_amount, is_active, created_at, updated_at`

func scanExpenseItem(row pgx.Row) (expense.Item, error) {
	var it expense.Item
	err := row.Scan(&it.ID, &it.BusinessID, &it.Name, &it.Type, &it.DefaultAmount, &it.IsActive, &it.CreatedAt, &it.UpdatedAt)
	return it, err
}

func (r *expenseItemRepository) Create(ctx context.Context, it expense.Item) (expense.Item, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO expense_items (id, business_id, name, expense_type, default_amount, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING` + expenseItemColumns

	created, err := scanExpenseItem(q.QueryRow(ctx, query, newID(), it.BusinessID, it.Name, it.Type, it.DefaultAmount, it.IsActive))
	if err != nil {
		if isUniqueViolation(err, uniqueExpenseItemName) {
			return expense.Item{}, expense.ErrItemNameExists
		}
		return expense.Item{}, fmt.Errorf("failed to create expense item: %w", err)
	}
	return created, nil
}

func (r *expenseItemRepository) Update(ctx context.Context, it expense.Item) (expense.Item, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE expense_items SET name = $3, expense_type = $4, default_amount = $5, updated_at = NOW()
		WHERE id = $1 AND business_id = $2
		RETURNING` + expenseItemColumns

	updated, err := scanExpenseItem(q.QueryRow(ctx, query, it.ID, it.BusinessID, it.Name, it.Type, it.DefaultAmount))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense.Item{}, expense.ErrItemNotFound
		}
		if isUniqueViolation(err, uniqueExpenseItemName) {
			return expense.Item{}, expense.ErrItemNameExists
		}
		return expense.Item{}, fmt.Errorf("failed to update expense item: %w", err)
	}
	return updated, nil
}

func (r *expenseItemRepository) GetByID(ctx context.Context, id string, businessID string) (expense.Item, error) {
	q := GetQuerier(ctx, r.db)

	it, err := scanExpenseItem(q.QueryRow(ctx, `SELECT`+expenseItemColumns+` FROM expense_items WHERE id = $1 AND business_id = $2`, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense.Item{}, expense.ErrItemNotFound
		}
		return expense.Item{}, fmt.Errorf("failed to get expense item: %w", err)
	}
	return it, nil
}

func (r *expenseItemRepository) List(ctx context.Context, businessID string, filter expense.ItemFilter) ([]expense.Item, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + expenseItemColumns + ` FROM expense_items WHERE business_id = $1`
	args := []interface{}{businessID}
	argIdx := 2

	if filter.Type != "" {
		query += fmt.Sprintf(" AND expense_type = $%d", argIdx)
		args = append(args, filter.Type)
		argIdx++
	}
	if active := filter.Active(); active != nil {
		query += fmt.Sprintf(" AND is_active = $%d", argIdx)
		args = append(args, *active)
		argIdx++
	}
	if filter.Name != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
		args = append(args, "%"+filter.Name+"%")
	}
	query += " ORDER BY expense_type ASC, name ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense items: %w", err)
	}
	defer rows.Close()

	var list []expense.Item
	for rows.Next() {
		it, err := scanExpenseItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense item: %w", err)
		}
		list = append(list, it)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return list, nil
}

func (r *expenseItemRepository) ToggleStatus(ctx context.Context, id string, businessID string) (expense.Item, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE expense_items SET is_active = NOT is_active, updated_at = NOW()
		WHERE id = $1 AND business_id = $2
		RETURNING` + expenseItemColumns

	it, err := scanExpenseItem(q.QueryRow(ctx, query, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense.Item{}, expense.ErrItemNotFound
		}
		return expense.Item{}, fmt.Errorf("failed to toggle expense item status: %w", err)
	}
	return it, nil
}
