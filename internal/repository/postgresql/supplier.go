package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/supplier"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type supplierRepository struct {
	db *database.DB
}

func NewSupplierRepository(db *database.DB) supplier.SupplierRepository {
	return &supplierRepository{db: db}
}

const supplierColumns = `
	id, business_id, name, opening_balance, is_active, created_at, updated_at`

func scanSupplier(row pgx.Row) (supplier.Supplier, error) {
	var s supplier.Supplier
	err := row.Scan(&s.ID, &s.BusinessID, &s.Name, &s.OpeningBalance, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *supplierRepository) Create(ctx context.Context, s supplier.Supplier) (supplier.Supplier, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO suppliers (id, business_id, name, opening_balance, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING` + supplierColumns

	created, err := scanSupplier(q.QueryRow(ctx, query, newID(), s.BusinessID, s.Name, s.OpeningBalance, s.IsActive))
	if err != nil {
		if isUniqueViolation(err, "uk_suppliers_business_name") {
			return supplier.Supplier{}, supplier.ErrSupplierNameExists
		}
		return supplier.Supplier{}, fmt.Errorf("failed to create supplier: %w", err)
	}
	return created, nil
}

func (r *supplierRepository) GetByID(ctx context.Context, id string, businessID string) (supplier.Supplier, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSupplier(q.QueryRow(ctx, `SELECT`+supplierColumns+` FROM suppliers WHERE id = $1 AND business_id = $2`, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return supplier.Supplier{}, supplier.ErrSupplierNotFound
		}
		return supplier.Supplier{}, fmt.Errorf("failed to get supplier: %w", err)
	}
	return s, nil
}

func (r *supplierRepository) List(ctx context.Context, businessID string, filter supplier.Filter) ([]supplier.Supplier, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := ` FROM suppliers WHERE business_id = $1`
	args := []interface{}{businessID}
	argIdx := 2

	if filter.Search != "" {
		baseQuery += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
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
		return nil, 0, fmt.Errorf("failed to count suppliers: %w", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`SELECT %s %s ORDER BY name ASC LIMIT $%d OFFSET $%d`, supplierColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer rows.Close()

	var list []supplier.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan supplier: %w", err)
		}
		list = append(list, s)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return list, total, nil
}

func (r *supplierRepository) Update(ctx context.Context, s supplier.Supplier) (supplier.Supplier, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE suppliers SET name = $3, opening_balance = $4, updated_at = NOW()
		WHERE id = $1 AND business_id = $2
		RETURNING` + supplierColumns

	updated, err := scanSupplier(q.QueryRow(ctx, query, s.ID, s.BusinessID, s.Name, s.OpeningBalance))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return supplier.Supplier{}, supplier.ErrSupplierNotFound
		}
		if isUniqueViolation(err, "uk_suppliers_business_name") {
			return supplier.Supplier{}, supplier.ErrSupplierNameExists
		}
		return supplier.Supplier{}, fmt.Errorf("failed to update supplier: %w", err)
	}
	return updated, nil
}

func (r *supplierRepository) Delete(ctx context.Context, id string, businessID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM suppliers WHERE id = $1 AND business_id = $2`, id, businessID)
	if err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return supplier.ErrSupplierNotFound
	}
	return nil
}

func (r *supplierRepository) ToggleStatus(ctx context.Context, id string, businessID string) (supplier.Supplier, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE suppliers SET is_active = NOT is_active, updated_at = NOW()
		WHERE id = $1 AND business_id = $2
		RETURNING` + supplierColumns

	s, err := scanSupplier(q.QueryRow(ctx, query, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return supplier.Supplier{}, supplier.ErrSupplierNotFound
		}
		return supplier.Supplier{}, fmt.Errorf("failed to toggle supplier status: %w", err)
	}
	return s, nil
}

func (r *supplierRepository) Stats(ctx context.Context, businessID string) (supplier.Stats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN is_active THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN NOT is_active THEN 1 ELSE 0 END), 0)
		FROM suppliers
		WHERE business_id = $1
	`
	var stats supplier.Stats
	if err := q.QueryRow(ctx, query, businessID).Scan(&stats.Total, &stats.Active, &stats.Inactive); err != nil {
		return supplier.Stats{}, fmt.Errorf("failed to get supplier stats: %w", err)
	}
	return stats, nil
}
