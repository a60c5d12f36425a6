package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type customerPaymentRepository struct {
	db *database.DB
}

func NewCustomerPaymentRepository(db *database.DB) payment.CustomerPaymentRepository {
	return &customerPaymentRepository{db: db}
}

const customerPaymentColumns = `
	p.id, p.business_id, p.customer_id, m.name, p.date, p.month, p.method, p.amount,
	p.reference_no, p.bank_name, p.party_name, p.cheque_date, p.slip_date, p.clear_date,
	p.remarks, p.created_at, p.updated_at`

func scanCustomerPayment(row pgx.Row) (payment.CustomerPayment, error) {
	var p payment.CustomerPayment
	err := row.Scan(
		&p.ID, &p.BusinessID, &p.CustomerID, &p.CustomerName, &p.Date, &p.Month, &p.Method, &p.Amount,
		&p.ReferenceNo, &p.BankName, &p.PartyName, &p.ChequeDate, &p.SlipDate, &p.ClearDate,
		&p.Remarks, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *customerPaymentRepository) Create(ctx context.Context, cp payment.CustomerPayment) (payment.CustomerPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH p AS (
			INSERT INTO customer_payments (
				id, business_id, customer_id, date, month, method, amount,
				reference_no, bank_name, party_name, cheque_date, slip_date, clear_date,
				remarks, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
			RETURNING *
		)
		SELECT` + customerPaymentColumns + ` FROM p JOIN customers m ON m.id = p.customer_id`

	created, err := scanCustomerPayment(q.QueryRow(ctx, query,
		newID(), cp.BusinessID, cp.CustomerID, cp.Date, cp.Month, cp.Method, cp.Amount,
		cp.ReferenceNo, cp.BankName, cp.PartyName, cp.ChequeDate, cp.SlipDate, cp.ClearDate,
		cp.Remarks,
	))
	if err != nil {
		return payment.CustomerPayment{}, fmt.Errorf("failed to create customer payment: %w", err)
	}
	return created, nil
}

func (r *customerPaymentRepository) Update(ctx context.Context, cp payment.CustomerPayment) (payment.CustomerPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH p AS (
			UPDATE customer_payments SET
				customer_id = $3, date = $4, month = $5, method = $6, amount = $7,
				reference_no = $8, bank_name = $9, party_name = $10,
				cheque_date = $11, slip_date = $12, clear_date = $13,
				remarks = $14, updated_at = NOW()
			WHERE id = $1 AND business_id = $2
			RETURNING *
		)
		SELECT` + customerPaymentColumns + ` FROM p JOIN customers m ON m.id = p.customer_id`

	updated, err := scanCustomerPayment(q.QueryRow(ctx, query,
		cp.ID, cp.BusinessID, cp.CustomerID, cp.Date, cp.Month, cp.Method, cp.Amount,
		cp.ReferenceNo, cp.BankName, cp.PartyName, cp.ChequeDate, cp.SlipDate, cp.ClearDate,
		cp.Remarks,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payment.CustomerPayment{}, payment.ErrCustomerPaymentNotFound
		}
		return payment.CustomerPayment{}, fmt.Errorf("failed to update customer payment: %w", err)
	}
	return updated, nil
}

func (r *customerPaymentRepository) Delete(ctx context.Context, id string, businessID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM customer_payments WHERE id = $1 AND business_id = $2`, id, businessID)
	if err != nil {
		return fmt.Errorf("failed to delete customer payment: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return payment.ErrCustomerPaymentNotFound
	}
	return nil
}

func (r *customerPaymentRepository) GetByID(ctx context.Context, id string, businessID string) (payment.CustomerPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + customerPaymentColumns + customerPaymentTable.from + ` WHERE p.id = $1 AND p.business_id = $2`
	cp, err := scanCustomerPayment(q.QueryRow(ctx, query, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payment.CustomerPayment{}, payment.ErrCustomerPaymentNotFound
		}
		return payment.CustomerPayment{}, fmt.Errorf("failed to get customer payment: %w", err)
	}
	return cp, nil
}

func (r *customerPaymentRepository) List(ctx context.Context, businessID string, filter payment.Filter) ([]payment.CustomerPayment, int64, error) {
	q := GetQuerier(ctx, r.db)

	where, args, argIdx := customerPaymentTable.where(businessID, filter)
	total, err := customerPaymentTable.count(ctx, q, where, args)
	if err != nil {
		return nil, 0, err
	}

	query, args := customerPaymentTable.page(customerPaymentColumns, where, args, argIdx, filter)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customer payments: %w", err)
	}
	defer rows.Close()

	var payments []payment.CustomerPayment
	for rows.Next() {
		cp, err := scanCustomerPayment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan customer payment: %w", err)
		}
		payments = append(payments, cp)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return payments, total, nil
}

func (r *customerPaymentRepository) Stats(ctx context.Context, businessID string, filter payment.Filter) (payment.Stats, error) {
	return customerPaymentTable.stats(ctx, GetQuerier(ctx, r.db), businessID, filter)
}

func (r *customerPaymentRepository) Months(ctx context.Context, businessID string) ([]string, error) {
	return customerPaymentTable.months(ctx, GetQuerier(ctx, r.db), businessID)
}
