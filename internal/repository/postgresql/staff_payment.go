package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type staffPaymentRepository struct {
	db *database.DB
}

func NewStaffPaymentRepository(db *database.DB) payment.StaffPaymentRepository {
	return &staffPaymentRepository{db: db}
}

const staffPaymentColumns = `
	p.id, p.business_id, p.staff_id, m.name, p.date, p.month, p.type, p.amount, p.remarks,
	p.created_at, p.updated_at`

func scanStaffPayment(row pgx.Row) (payment.StaffPayment, error) {
	var p payment.StaffPayment
	err := row.Scan(
		&p.ID, &p.BusinessID, &p.StaffID, &p.StaffName, &p.Date, &p.Month, &p.Type, &p.Amount, &p.Remarks,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *staffPaymentRepository) Create(ctx context.Context, sp payment.StaffPayment) (payment.StaffPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH p AS (
			INSERT INTO staff_payments (id, business_id, staff_id, date, month, type, amount, remarks, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
			RETURNING *
		)
		SELECT` + staffPaymentColumns + ` FROM p JOIN staff m ON m.id = p.staff_id`

	created, err := scanStaffPayment(q.QueryRow(ctx, query,
		newID(), sp.BusinessID, sp.StaffID, sp.Date, sp.Month, sp.Type, sp.Amount, sp.Remarks,
	))
	if err != nil {
		return payment.StaffPayment{}, fmt.Errorf("failed to create staff payment: %w", err)
	}
	return created, nil
}

func (r *staffPaymentRepository) Update(ctx context.Context, sp payment.StaffPayment) (payment.StaffPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH p AS (
			UPDATE staff_payments SET
				staff_id = $3, date = $4, month = $5, type = $6, amount = $7, remarks = $8, updated_at = NOW()
			WHERE id = $1 AND business_id = $2
			RETURNING *
		)
		SELECT` + staffPaymentColumns + ` FROM p JOIN staff m ON m.id = p.staff_id`

	updated, err := scanStaffPayment(q.QueryRow(ctx, query,
		sp.ID, sp.BusinessID, sp.StaffID, sp.Date, sp.Month, sp.Type, sp.Amount, sp.Remarks,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payment.StaffPayment{}, payment.ErrStaffPaymentNotFound
		}
		return payment.StaffPayment{}, fmt.Errorf("failed to update staff payment: %w", err)
	}
	return updated, nil
}

func (r *staffPaymentRepository) Delete(ctx context.Context, id string, businessID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM staff_payments WHERE id = $1 AND business_id = $2`, id, businessID)
	if err != nil {
		return fmt.Errorf("failed to delete staff payment: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return payment.ErrStaffPaymentNotFound
	}
	return nil
}

func (r *staffPaymentRepository) GetByID(ctx context.Context, id string, businessID string) (payment.StaffPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + staffPaymentColumns + staffPaymentTable.from + ` WHERE p.id = $1 AND p.business_id = $2`
	sp, err := scanStaffPayment(q.QueryRow(ctx, query, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payment.StaffPayment{}, payment.ErrStaffPaymentNotFound
		}
		return payment.StaffPayment{}, fmt.Errorf("failed to get staff payment: %w", err)
	}
	return sp, nil
}

func (r *staffPaymentRepository) List(ctx context.Context, businessID string, filter payment.Filter) ([]payment.StaffPayment, int64, error) {
	q := GetQuerier(ctx, r.db)

	where, args, argIdx := staffPaymentTable.where(businessID, filter)
	total, err := staffPaymentTable.count(ctx, q, where, args)
	if err != nil {
		return nil, 0, err
	}

	query, args := staffPaymentTable.page(staffPaymentColumns, where, args, argIdx, filter)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list staff payments: %w", err)
	}
	defer rows.Close()

	var payments []payment.StaffPayment
	for rows.Next() {
		sp, err := scanStaffPayment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan staff payment: %w", err)
		}
		payments = append(payments, sp)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return payments, total, nil
}

func (r *staffPaymentRepository) Stats(ctx context.Context, businessID string, filter payment.Filter) (payment.Stats, error) {
	return staffPaymentTable.stats(ctx, GetQuerier(ctx, r.db), businessID, filter)
}

func (r *staffPaymentRepository) Months(ctx context.Context, businessID string) ([]string, error) {
	return staffPaymentTable.months(ctx, GetQuerier(ctx, r.db), businessID)
}
