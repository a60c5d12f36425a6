package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type invoiceRepository struct {
	db *database.DB
}

func NewInvoiceRepository(db *database.DB) invoice.InvoiceRepository {
	return &invoiceRepository{db: db}
}

const invoiceColumns = `
	id, business_id, number, customer_id, customer_name, customer_person, order_ids,
	order_count, total_amount, invoice_date, note, created_at, updated_at`

func scanInvoice(row pgx.Row) (invoice.Invoice, error) {
	var inv invoice.Invoice
	err := row.Scan(
		&inv.ID, &inv.BusinessID, &inv.Number, &inv.CustomerID, &inv.CustomerName, &inv.CustomerPerson, &inv.OrderIDs,
		&inv.OrderCount, &inv.TotalAmount, &inv.InvoiceDate, &inv.Note, &inv.CreatedAt, &inv.UpdatedAt,
	)
	return inv, err
}

func (r *invoiceRepository) NextSequence(ctx context.Context, businessID string, year int) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO invoice_counters (business_id, year, seq, updated_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (business_id, year)
		DO UPDATE SET seq = invoice_counters.seq + 1, updated_at = NOW()
		RETURNING seq`

	var seq int
	if err := q.QueryRow(ctx, query, businessID, year).Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to allocate invoice number: %w", err)
	}
	return seq, nil
}

func (r *invoiceRepository) Create(ctx context.Context, inv invoice.Invoice) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO invoices (
			id, business_id, number, customer_id, customer_name, customer_person, order_ids,
			order_count, total_amount, invoice_date, note, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING` + invoiceColumns

	created, err := scanInvoice(q.QueryRow(ctx, query,
		newID(), inv.BusinessID, inv.Number, inv.CustomerID, inv.CustomerName, inv.CustomerPerson, inv.OrderIDs,
		inv.OrderCount, inv.TotalAmount, inv.InvoiceDate, inv.Note,
	))
	if err != nil {
		return invoice.Invoice{}, fmt.Errorf("failed to create invoice: %w", err)
	}
	return created, nil
}

func (r *invoiceRepository) GetByID(ctx context.Context, id string, businessID string) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + invoiceColumns + ` FROM invoices WHERE id = $1 AND business_id = $2`
	inv, err := scanInvoice(q.QueryRow(ctx, query, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invoice.Invoice{}, invoice.ErrInvoiceNotFound
		}
		return invoice.Invoice{}, fmt.Errorf("failed to get invoice: %w", err)
	}
	return inv, nil
}

func (r *invoiceRepository) List(ctx context.Context, businessID string, filter invoice.Filter) ([]invoice.Invoice, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := ` FROM invoices WHERE business_id = $1`
	args := []interface{}{businessID}
	argIdx := 2

	if filter.CustomerID != "" {
		baseQuery += fmt.Sprintf(" AND customer_id = $%d", argIdx)
		args = append(args, filter.CustomerID)
		argIdx++
	}
	if filter.CustomerName != "" {
		baseQuery += fmt.Sprintf(" AND customer_name ILIKE $%d", argIdx)
		args = append(args, "%"+filter.CustomerName+"%")
		argIdx++
	}
	if filter.DateFrom != "" {
		baseQuery += fmt.Sprintf(" AND invoice_date >= $%d", argIdx)
		args = append(args, filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != "" {
		baseQuery += fmt.Sprintf(" AND invoice_date <= $%d", argIdx)
		args = append(args, filter.DateTo)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 30
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`SELECT %s %s ORDER BY invoice_date DESC, created_at DESC LIMIT $%d OFFSET $%d`, invoiceColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []invoice.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id string, businessID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM invoices WHERE id = $1 AND business_id = $2`, id, businessID)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return invoice.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepository) AttachOrders(ctx context.Context, inv invoice.Invoice) (int64, error) {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `
		UPDATE orders SET invoice_id = $1, updated_at = NOW()
		WHERE business_id = $2 AND customer_id = $3 AND id = ANY($4) AND invoice_id IS NULL`,
		inv.ID, inv.BusinessID, inv.CustomerID, inv.OrderIDs,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to attach orders to invoice: %w", err)
	}
	return commandTag.RowsAffected(), nil
}

func (r *invoiceRepository) ReleaseOrders(ctx context.Context, invoiceID string, businessID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE orders SET invoice_id = NULL, updated_at = NOW()
		WHERE invoice_id = $1 AND business_id = $2`,
		invoiceID, businessID,
	)
	if err != nil {
		return fmt.Errorf("failed to release invoice orders: %w", err)
	}
	return nil
}

func (r *invoiceRepository) PriorTotals(ctx context.Context, inv invoice.Invoice) (invoice.PriorTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COALESCE(SUM(total_amount), 0) FROM invoices
				WHERE business_id = $1 AND customer_id = $2 AND id <> $5::uuid
				AND (invoice_date, created_at, id) < ($3::date, $4::timestamptz, $5::uuid)),
			(SELECT COALESCE(SUM(amount), 0) FROM customer_payments
				WHERE business_id = $1 AND customer_id = $2
				AND (date, created_at, id) < ($3::date, $4::timestamptz, $5::uuid))`

	var prior invoice.PriorTotals
	if err := q.QueryRow(ctx, query, inv.BusinessID, inv.CustomerID, inv.InvoiceDate, inv.CreatedAt, inv.ID).Scan(
		&prior.Invoiced, &prior.Paid,
	); err != nil {
		return invoice.PriorTotals{}, fmt.Errorf("failed to sum prior customer ledger: %w", err)
	}
	return prior, nil
}
