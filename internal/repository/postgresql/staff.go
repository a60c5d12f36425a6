package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/staff"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type staffRepository struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &staffRepository{db: db}
}

const staffColumns = `
	id, business_id, name, category, joining_date, salary, opening_balance, is_active, created_at, updated_at`

func scanStaff(row pgx.Row) (staff.Staff, error) {
	var s staff.Staff
	err := row.Scan(
		&s.ID, &s.BusinessID, &s.Name, &s.Category, &s.JoiningDate, &s.Salary,
		&s.OpeningBalance, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func (r *staffRepository) Create(ctx context.Context, s staff.Staff) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO staff (id, business_id, name, category, joining_date, salary, opening_balance, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING` + staffColumns

	created, err := scanStaff(q.QueryRow(ctx, query,
		newID(), s.BusinessID, s.Name, s.Category, s.JoiningDate, s.Salary, s.OpeningBalance, s.IsActive,
	))
	if err != nil {
		if isUniqueViolation(err, "uk_staff_business_name") {
			return staff.Staff{}, staff.ErrStaffNameExists
		}
		return staff.Staff{}, fmt.Errorf("failed to create staff: %w", err)
	}
	return created, nil
}

func (r *staffRepository) GetByID(ctx context.Context, id string, businessID string) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + staffColumns + ` FROM staff WHERE id = $1 AND business_id = $2`
	s, err := scanStaff(q.QueryRow(ctx, query, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, fmt.Errorf("failed to get staff: %w", err)
	}
	return s, nil
}

func (r *staffRepository) List(ctx context.Context, businessID string, filter staff.Filter) ([]staff.Staff, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := ` FROM staff WHERE business_id = $1`
	args := []interface{}{businessID}
	argIdx := 2

	if filter.Search != "" {
		baseQuery += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.Category != "" {
		if category, ok := staff.NormalizeCategory(filter.Category); ok {
			baseQuery += fmt.Sprintf(" AND category = $%d", argIdx)
			args = append(args, category)
			argIdx++
		}
	}
	if filter.Active != nil {
		baseQuery += fmt.Sprintf(" AND is_active = $%d", argIdx)
		args = append(args, *filter.Active)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count staff: %w", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`SELECT %s %s ORDER BY name ASC LIMIT $%d OFFSET $%d`, staffColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list staff: %w", err)
	}
	defer rows.Close()

	var list []staff.Staff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan staff: %w", err)
		}
		list = append(list, s)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return list, total, nil
}

func (r *staffRepository) Update(ctx context.Context, s staff.Staff) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE staff SET name = $3, category = $4, joining_date = $5, salary = $6, opening_balance = $7, updated_at = NOW()
		WHERE id = $1 AND business_id = $2
		RETURNING` + staffColumns

	updated, err := scanStaff(q.QueryRow(ctx, query,
		s.ID, s.BusinessID, s.Name, s.Category, s.JoiningDate, s.Salary, s.OpeningBalance,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		if isUniqueViolation(err, "uk_staff_business_name") {
			return staff.Staff{}, staff.ErrStaffNameExists
		}
		return staff.Staff{}, fmt.Errorf("failed to update staff: %w", err)
	}
	return updated, nil
}

func (r *staffRepository) Delete(ctx context.Context, id string, businessID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM staff WHERE id = $1 AND business_id = $2`, id, businessID)
	if err != nil {
		return fmt.Errorf("failed to delete staff: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return staff.ErrStaffNotFound
	}
	return nil
}

func (r *staffRepository) ToggleStatus(ctx context.Context, id string, businessID string) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE staff SET is_active = NOT is_active, updated_at = NOW()
		WHERE id = $1 AND business_id = $2
		RETURNING` + staffColumns

	s, err := scanStaff(q.QueryRow(ctx, query, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, fmt.Errorf("failed to toggle staff status: %w", err)
	}
	return s, nil
}

func (r *staffRepository) Stats(ctx context.Context, businessID string) (staff.Stats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN is_active THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN NOT is_active THEN 1 ELSE 0 END), 0)
		FROM staff
		WHERE business_id = $1
	`
	var stats staff.Stats
	if err := q.QueryRow(ctx, query, businessID).Scan(&stats.Total, &stats.Active, &stats.Inactive); err != nil {
		return staff.Stats{}, fmt.Errorf("failed to get staff stats: %w", err)
	}
	return stats, nil
}
