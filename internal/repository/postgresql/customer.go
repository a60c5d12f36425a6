package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/customer"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type customerRepository struct {
	db *database.DB
}

func NewCustomerRepository(db *database.DB) customer.CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `
	id, business_id, name, person, rate, opening_balance, is_active, created_at, updated_at`

func scanCustomer(row pgx.Row) (customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(
		&c.ID, &c.BusinessID, &c.Name, &c.Person, &c.Rate, &c.OpeningBalance, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *customerRepository) Create(ctx context.Context, c customer.Customer) (customer.Customer, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO customers (id, business_id, name, person, rate, opening_balance, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING` + customerColumns

	created, err := scanCustomer(q.QueryRow(ctx, query,
		newID(), c.BusinessID, c.Name, c.Person, c.Rate, c.OpeningBalance, c.IsActive,
	))
	if err != nil {
		if isUniqueViolation(err, "uk_customers_business_name") {
			return customer.Customer{}, customer.ErrCustomerNameExists
		}
		return customer.Customer{}, fmt.Errorf("failed to create customer: %w", err)
	}
	return created, nil
}

func (r *customerRepository) GetByID(ctx context.Context, id string, businessID string) (customer.Customer, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanCustomer(q.QueryRow(ctx, `SELECT`+customerColumns+` FROM customers WHERE id = $1 AND business_id = $2`, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return customer.Customer{}, customer.ErrCustomerNotFound
		}
		return customer.Customer{}, fmt.Errorf("failed to get customer: %w", err)
	}
	return c, nil
}

func (r *customerRepository) List(ctx context.Context, businessID string, filter customer.Filter) ([]customer.Customer, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := ` FROM customers WHERE business_id = $1`
	args := []interface{}{businessID}
	argIdx := 2

	if filter.Search != "" {
		baseQuery += fmt.Sprintf(" AND (name ILIKE $%d OR person ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.Active != nil {
		baseQuery += fmt.Sprintf(" AND is_active = $%d", argIdx)
		args = append(args, *filter.Active)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`SELECT %s %s ORDER BY name ASC LIMIT $%d OFFSET $%d`, customerColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var list []customer.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan customer: %w", err)
		}
		list = append(list, c)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return list, total, nil
}

func (r *customerRepository) Update(ctx context.Context, c customer.Customer) (customer.Customer, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE customers SET name = $3, person = $4, rate = $5, opening_balance = $6, updated_at = NOW()
		WHERE id = $1 AND business_id = $2
		RETURNING` + customerColumns

	updated, err := scanCustomer(q.QueryRow(ctx, query, c.ID, c.BusinessID, c.Name, c.Person, c.Rate, c.OpeningBalance))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return customer.Customer{}, customer.ErrCustomerNotFound
		}
		if isUniqueViolation(err, "uk_customers_business_name") {
			return customer.Customer{}, customer.ErrCustomerNameExists
		}
		return customer.Customer{}, fmt.Errorf("failed to update customer: %w", err)
	}
	return updated, nil
}

func (r *customerRepository) Delete(ctx context.Context, id string, businessID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM customers WHERE id = $1 AND business_id = $2`, id, businessID)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}

func (r *customerRepository) ToggleStatus(ctx context.Context, id string, businessID string) (customer.Customer, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE customers SET is_active = NOT is_active, updated_at = NOW()
		WHERE id = $1 AND business_id = $2
		RETURNING` + customerColumns

	c, err := scanCustomer(q.QueryRow(ctx, query, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return customer.Customer{}, customer.ErrCustomerNotFound
		}
		return customer.Customer{}, fmt.Errorf("failed to toggle customer status: %w", err)
	}
	return c, nil
}

func (r *customerRepository) Stats(ctx context.Context, businessID string) (customer.Stats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN is_active THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN NOT is_active THEN 1 ELSE 0 END), 0)
		FROM customers
		WHERE business_id = $1
	`
	var stats customer.Stats
	if err := q.QueryRow(ctx, query, businessID).Scan(&stats.Total, &stats.Active, &stats.Inactive); err != nil {
		return customer.Stats{}, fmt.Errorf("failed to get customer stats: %w", err)
	}
	return stats, nil
}
