package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type supplierPaymentRepository struct {
	db *database.DB
}

func NewSupplierPaymentRepository(db *database.DB) payment.SupplierPaymentRepository {
	return &supplierPaymentRepository{db: db}
}

const supplierPaymentColumns = `
	p.id, p.business_id, p.supplier_id, m.name, p.date, p.month, p.method, p.amount,
	p.reference_no, p.remarks, p.created_at, p.updated_at`

func scanSupplierPayment(row pgx.Row) (payment.SupplierPayment, error) {
	var p payment.SupplierPayment
	err := row.Scan(
		&p.ID, &p.BusinessID, &p.SupplierID, &p.SupplierName, &p.Date, &p.Month, &p.Method, &p.Amount,
		&p.ReferenceNo, &p.Remarks, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *supplierPaymentRepository) Create(ctx context.Context, sp payment.SupplierPayment) (payment.SupplierPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH p AS (
			INSERT INTO supplier_payments (id, business_id, supplier_id, date, month, method, amount, reference_no, remarks, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
			RETURNING *
		)
		SELECT` + supplierPaymentColumns + ` FROM p JOIN suppliers m ON m.id = p.supplier_id`

	created, err := scanSupplierPayment(q.QueryRow(ctx, query,
		newID(), sp.BusinessID, sp.SupplierID, sp.Date, sp.Month, sp.Method, sp.Amount, sp.ReferenceNo, sp.Remarks,
	))
	if err != nil {
		return payment.SupplierPayment{}, fmt.Errorf("failed to create supplier payment: %w", err)
	}
	return created, nil
}

func (r *supplierPaymentRepository) Update(ctx context.Context, sp payment.SupplierPayment) (payment.SupplierPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH p AS (
			UPDATE supplier_payments SET
				supplier_id = $3, date = $4, month = $5, method = $6, amount = $7,
				reference_no = $8, remarks = $9, updated_at = NOW()
			WHERE id = $1 AND business_id = $2
			RETURNING *
		)
		SELECT` + supplierPaymentColumns + ` FROM p JOIN suppliers m ON m.id = p.supplier_id`

	updated, err := scanSupplierPayment(q.QueryRow(ctx, query,
		sp.ID, sp.BusinessID, sp.SupplierID, sp.Date, sp.Month, sp.Method, sp.Amount, sp.ReferenceNo, sp.Remarks,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payment.SupplierPayment{}, payment.ErrSupplierPaymentNotFound
		}
		return payment.SupplierPayment{}, fmt.Errorf("failed to update supplier payment: %w", err)
	}
	return updated, nil
}

func (r *supplierPaymentRepository) Delete(ctx context.Context, id string, businessID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM supplier_payments WHERE id = $1 AND business_id = $2`, id, businessID)
	if err != nil {
		return fmt.Errorf("failed to delete supplier payment: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return payment.ErrSupplierPaymentNotFound
	}
	return nil
}

func (r *supplierPaymentRepository) GetByID(ctx context.Context, id string, businessID string) (payment.SupplierPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + supplierPaymentColumns + supplierPaymentTable.from + ` WHERE p.id = $1 AND p.business_id = $2`
	sp, err := scanSupplierPayment(q.QueryRow(ctx, query, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payment.SupplierPayment{}, payment.ErrSupplierPaymentNotFound
		}
		return payment.SupplierPayment{}, fmt.Errorf("failed to get supplier payment: %w", err)
	}
	return sp, nil
}

func (r *supplierPaymentRepository) List(ctx context.Context, businessID string, filter payment.Filter) ([]payment.SupplierPayment, int64, error) {
	q := GetQuerier(ctx, r.db)

	where, args, argIdx := supplierPaymentTable.where(businessID, filter)
	total, err := supplierPaymentTable.count(ctx, q, where, args)
	if err != nil {
		return nil, 0, err
	}

	query, args := supplierPaymentTable.page(supplierPaymentColumns, where, args, argIdx, filter)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list supplier payments: %w", err)
	}
	defer rows.Close()

	var payments []payment.SupplierPayment
	for rows.Next() {
		sp, err := scanSupplierPayment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan supplier payment: %w", err)
		}
		payments = append(payments, sp)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return payments, total, nil
}

func (r *supplierPaymentRepository) Stats(ctx context.Context, businessID string, filter payment.Filter) (payment.Stats, error) {
	return supplierPaymentTable.stats(ctx, GetQuerier(ctx, r.db), businessID, filter)
}

func (r *supplierPaymentRepository) Months(ctx context.Context, businessID string) ([]string, error) {
	return supplierPaymentTable.months(ctx, GetQuerier(ctx, r.db), businessID)
}
