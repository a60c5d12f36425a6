package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/ledger"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type ledgerRepository struct {
	db *database.DB
}

func NewLedgerRepository(db *database.DB) ledger.LedgerRepository {
	return &ledgerRepository{db: db}
}

// ledgerSource holds the SQL for one party kind. Debit and credit sources
// yield (business_id, party_id, amount, date); the entry source yields a
// statement line per document.
type ledgerSource struct {
	parties string
	debits  string
	credits string
	entries string
}

var ledgerSources = map[ledger.PartyKind]ledgerSource{
	ledger.PartyStaff: {
		parties: `SELECT id, name, opening_balance, is_active FROM staff`,
		debits: `
			SELECT business_id, staff_id AS party_id, final_amount AS amount, date FROM staff_records
			UNION ALL
			SELECT business_id, staff_id, amount, date FROM staff_payments WHERE type = 'adjustment'`,
		credits: `
			SELECT business_id, staff_id AS party_id, amount, date FROM staff_payments
			WHERE type IN ('advance', 'payment')`,
		entries: `
			SELECT id, 'record' AS kind, date, created_at, attendance AS reference, '' AS description,
				final_amount AS debit, 0::numeric AS credit, business_id, staff_id AS party_id
			FROM staff_records
			UNION ALL
			SELECT id, type, date, created_at, month, remarks,
				CASE WHEN type = 'adjustment' THEN amount ELSE 0 END,
				CASE WHEN type = 'adjustment' THEN 0 ELSE amount END,
				business_id, staff_id
			FROM staff_payments`,
	},
	ledger.PartyCustomer: {
		parties: `SELECT id, name, opening_balance, is_active FROM customers`,
		debits: `
			SELECT business_id, customer_id AS party_id, total_amount AS amount, invoice_date AS date
			FROM invoices`,
		credits: `
			SELECT business_id, customer_id AS party_id, amount, date FROM customer_payments`,
		entries: `
			SELECT id, 'invoice' AS kind, invoice_date AS date, created_at, number AS reference, note AS description,
				total_amount AS debit, 0::numeric AS credit, business_id, customer_id AS party_id
			FROM invoices
			UNION ALL
			SELECT id, 'payment', date, created_at, reference_no, method,
				0::numeric, amount, business_id, customer_id
			FROM customer_payments`,
	},
	ledger.PartySupplier: {
		parties: `SELECT id, name, opening_balance, is_active FROM suppliers`,
		debits: `
			SELECT business_id, supplier_id AS party_id, amount, date FROM expenses
			WHERE expense_type = 'supplier' AND supplier_id IS NOT NULL`,
		credits: `
			SELECT business_id, supplier_id AS party_id, amount, date FROM supplier_payments`,
		entries: `
			SELECT id, 'expense' AS kind, date, created_at, reference_no AS reference, item_name AS description,
				amount AS debit, 0::numeric AS credit, business_id, supplier_id AS party_id
			FROM expenses
			WHERE expense_type = 'supplier' AND supplier_id IS NOT NULL
			UNION ALL
			SELECT id, 'payment', date, created_at, reference_no, method,
				0::numeric, amount, business_id, supplier_id
			FROM supplier_payments`,
	},
}

func sourceFor(kind ledger.PartyKind) (ledgerSource, error) {
	src, ok := ledgerSources[kind]
	if !ok {
		return ledgerSource{}, ledger.ErrUnknownParty
	}
	return src, nil
}

func (r *ledgerRepository) Parties(ctx context.Context, kind ledger.PartyKind, scope ledger.Scope) ([]ledger.Party, error) {
	src, err := sourceFor(kind)
	if err != nil {
		return nil, err
	}
	q := GetQuerier(ctx, r.db)

	query := src.parties + ` WHERE business_id = $1`
	args := []interface{}{scope.BusinessID}
	if scope.PartyID != "" {
		query += ` AND id = $2`
		args = append(args, scope.PartyID)
	}
	query += ` ORDER BY name ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s parties: %w", kind, err)
	}
	defer rows.Close()

	var parties []ledger.Party
	for rows.Next() {
		var p ledger.Party
		if err := rows.Scan(&p.ID, &p.Name, &p.OpeningBalance, &p.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan %s party: %w", kind, err)
		}
		parties = append(parties, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return parties, nil
}

func (r *ledgerRepository) sum(ctx context.Context, kind ledger.PartyKind, source string, scope ledger.Scope) (map[string]decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT party_id, COALESCE(SUM(amount), 0) FROM (` + source + `) src WHERE business_id = $1`
	args := []interface{}{scope.BusinessID}
	argIdx := 2
	if scope.PartyID != "" {
		query += fmt.Sprintf(" AND party_id = $%d", argIdx)
		args = append(args, scope.PartyID)
		argIdx++
	}
	if scope.Before != nil {
		query += fmt.Sprintf(" AND date < $%d", argIdx)
		args = append(args, *scope.Before)
	}
	query += ` GROUP BY party_id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to sum %s ledger: %w", kind, err)
	}
	defer rows.Close()

	out := make(map[string]decimal.Decimal)
	for rows.Next() {
		var (
			id     string
			amount decimal.Decimal
		)
		if err := rows.Scan(&id, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan %s ledger sum: %w", kind, err)
		}
		out[id] = amount
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return out, nil
}

func (r *ledgerRepository) Debits(ctx context.Context, kind ledger.PartyKind, scope ledger.Scope) (map[string]decimal.Decimal, error) {
	src, err := sourceFor(kind)
	if err != nil {
		return nil, err
	}
	return r.sum(ctx, kind, src.debits, scope)
}

func (r *ledgerRepository) Credits(ctx context.Context, kind ledger.PartyKind, scope ledger.Scope) (map[string]decimal.Decimal, error) {
	src, err := sourceFor(kind)
	if err != nil {
		return nil, err
	}
	return r.sum(ctx, kind, src.credits, scope)
}

func (r *ledgerRepository) Entries(ctx context.Context, kind ledger.PartyKind, businessID, partyID string, from, to *time.Time) ([]ledger.Entry, error) {
	src, err := sourceFor(kind)
	if err != nil {
		return nil, err
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, kind, date, created_at, reference, description, debit, credit
		FROM (` + src.entries + `) src
		WHERE business_id = $1 AND party_id = $2`
	args := []interface{}{businessID, partyID}
	argIdx := 3
	if from != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, *from)
		argIdx++
	}
	if to != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)
		args = append(args, *to)
	}
	query += ` ORDER BY date ASC, created_at ASC, id ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s ledger entries: %w", kind, err)
	}
	defer rows.Close()

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ledger.Entry, error) {
		var e ledger.Entry
		err := row.Scan(&e.ID, &e.Kind, &e.Date, &e.CreatedAt, &e.Reference, &e.Description, &e.Debit, &e.Credit)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s ledger entries: %w", kind, err)
	}
	return entries, nil
}
