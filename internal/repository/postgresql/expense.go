package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type expenseRepository struct {
	db *database.DB
}

func NewExpenseRepository(db *database.DB) expense.ExpenseRepository {
	return &expenseRepository{db: db}
}

const expenseColumns = `
	id, business_id, expense_type, item_name, amount, date, month, reference_no, remarks,
	supplier_id, supplier_name, group_key, created_at, updated_at`

func scanExpense(row pgx.Row) (expense.Expense, error) {
	var e expense.Expense
	err := row.Scan(
		&e.ID, &e.BusinessID, &e.Type, &e.ItemName, &e.Amount, &e.Date, &e.Month, &e.ReferenceNo, &e.Remarks,
		&e.SupplierID, &e.SupplierName, &e.GroupKey, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *expenseRepository) Create(ctx context.Context, e expense.Expense) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO expenses (
			id, business_id, expense_type, item_name, amount, date, month, reference_no, remarks,
			supplier_id, supplier_name, group_key, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING` + expenseColumns

	created, err := scanExpense(q.QueryRow(ctx, query,
		newID(), e.BusinessID, e.Type, e.ItemName, e.Amount, e.Date, e.Month, e.ReferenceNo, e.Remarks,
		e.SupplierID, e.SupplierName, e.GroupKey,
	))
	if err != nil {
		return expense.Expense{}, fmt.Errorf("failed to create expense: %w", err)
	}
	return created, nil
}

func (r *expenseRepository) Update(ctx context.Context, e expense.Expense) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE expenses SET
			item_name = $3, amount = $4, date = $5, month = $6, reference_no = $7, remarks = $8,
			updated_at = NOW()
		WHERE id = $1 AND business_id = $2
		RETURNING` + expenseColumns

	updated, err := scanExpense(q.QueryRow(ctx, query,
		e.ID, e.BusinessID, e.ItemName, e.Amount, e.Date, e.Month, e.ReferenceNo, e.Remarks,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense.Expense{}, expense.ErrExpenseNotFound
		}
		return expense.Expense{}, fmt.Errorf("failed to update expense: %w", err)
	}
	return updated, nil
}

func (r *expenseRepository) Delete(ctx context.Context, id string, businessID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM expenses WHERE id = $1 AND business_id = $2`, id, businessID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return expense.ErrExpenseNotFound
	}
	return nil
}

func (r *expenseRepository) GetByID(ctx context.Context, id string, businessID string) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + expenseColumns + ` FROM expenses WHERE id = $1 AND business_id = $2`
	e, err := scanExpense(q.QueryRow(ctx, query, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense.Expense{}, expense.ErrExpenseNotFound
		}
		return expense.Expense{}, fmt.Errorf("failed to get expense: %w", err)
	}
	return e, nil
}

func expenseWhere(businessID string, filter expense.Filter) (string, []interface{}, int) {
	where := ` FROM expenses WHERE business_id = $1`
	args := []interface{}{businessID}
	argIdx := 2

	if filter.ItemName != "" {
		where += fmt.Sprintf(" AND item_name ILIKE $%d", argIdx)
		args = append(args, "%"+filter.ItemName+"%")
		argIdx++
	}
	if filter.Type != "" {
		where += fmt.Sprintf(" AND expense_type = $%d", argIdx)
		args = append(args, filter.Type)
		argIdx++
	}
	if filter.SupplierID != "" {
		where += fmt.Sprintf(" AND supplier_id = $%d", argIdx)
		args = append(args, filter.SupplierID)
		argIdx++
	}
	if filter.SupplierName != "" {
		where += fmt.Sprintf(" AND supplier_name ILIKE $%d", argIdx)
		args = append(args, "%"+filter.SupplierName+"%")
		argIdx++
	}
	if filter.ReferenceNo != "" {
		where += fmt.Sprintf(" AND reference_no ILIKE $%d", argIdx)
		args = append(args, "%"+filter.ReferenceNo+"%")
		argIdx++
	}
	if filter.Month != "" {
		where += fmt.Sprintf(" AND month = $%d", argIdx)
		args = append(args, filter.Month)
		argIdx++
	}
	if filter.DateFrom != "" {
		where += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != "" {
		where += fmt.Sprintf(" AND date <= $%d", argIdx)
		args = append(args, filter.DateTo)
		argIdx++
	}
	return where, args, argIdx
}

func (r *expenseRepository) List(ctx context.Context, businessID string, filter expense.Filter) ([]expense.Expense, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery, args, argIdx := expenseWhere(businessID, filter)

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 30
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`SELECT %s %s ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d`, expenseColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []expense.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return expenses, total, nil
}

func (r *expenseRepository) Stats(ctx context.Context, businessID string, filter expense.Filter) (expense.Stats, error) {
	q := GetQuerier(ctx, r.db)

	where, args, _ := expenseWhere(businessID, filter)
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(amount), 0),
			COUNT(*) FILTER (WHERE expense_type = 'cash'),
			COUNT(*) FILTER (WHERE expense_type = 'supplier'),
			COUNT(*) FILTER (WHERE expense_type = 'fixed')` + where

	var stats expense.Stats
	if err := q.QueryRow(ctx, query, args...).Scan(
		&stats.Total, &stats.TotalAmount, &stats.CashCount, &stats.SupplierCount, &stats.FixedCount,
	); err != nil {
		return expense.Stats{}, fmt.Errorf("failed to aggregate expenses: %w", err)
	}
	return stats, nil
}
