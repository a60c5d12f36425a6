package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// paymentTable describes one of the three payment tables. All of them are
// queried with alias p and the counterparty joined as m.
type paymentTable struct {
	from     string
	partyCol string
	kindCol  string
	label    string
}

var (
	staffPaymentTable = paymentTable{
		from:     ` FROM staff_payments p JOIN staff m ON m.id = p.staff_id`,
		partyCol: "p.staff_id",
		kindCol:  "p.type",
		label:    "staff payments",
	}
	customerPaymentTable = paymentTable{
		from:     ` FROM customer_payments p JOIN customers m ON m.id = p.customer_id`,
		partyCol: "p.customer_id",
		kindCol:  "p.method",
		label:    "customer payments",
	}
	supplierPaymentTable = paymentTable{
		from:     ` FROM supplier_payments p JOIN suppliers m ON m.id = p.supplier_id`,
		partyCol: "p.supplier_id",
		kindCol:  "p.method",
		label:    "supplier payments",
	}
)

func (t paymentTable) where(businessID string, filter payment.Filter) (string, []interface{}, int) {
	where := t.from + ` WHERE p.business_id = $1`
	args := []interface{}{businessID}
	argIdx := 2

	if filter.PartyID != "" {
		where += fmt.Sprintf(" AND %s = $%d", t.partyCol, argIdx)
		args = append(args, filter.PartyID)
		argIdx++
	}
	if filter.Kind != "" {
		where += fmt.Sprintf(" AND %s = $%d", t.kindCol, argIdx)
		args = append(args, filter.Kind)
		argIdx++
	}
	if filter.Month != "" {
		where += fmt.Sprintf(" AND p.month = $%d", argIdx)
		args = append(args, filter.Month)
		argIdx++
	}
	if filter.DateFrom != "" {
		where += fmt.Sprintf(" AND p.date >= $%d", argIdx)
		args = append(args, filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != "" {
		where += fmt.Sprintf(" AND p.date <= $%d", argIdx)
		args = append(args, filter.DateTo)
		argIdx++
	}
	return where, args, argIdx
}

// page appends ordering and paging and returns the full select query.
func (t paymentTable) page(columns string, where string, args []interface{}, argIdx int, filter payment.Filter) (string, []interface{}) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`SELECT %s %s ORDER BY p.date DESC, p.created_at DESC LIMIT $%d OFFSET $%d`, columns, where, argIdx, argIdx+1)
	return query, append(args, filter.Limit, offset)
}

func (t paymentTable) count(ctx context.Context, q database.Querier, where string, args []interface{}) (int64, error) {
	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", t.label, err)
	}
	return total, nil
}

func (t paymentTable) stats(ctx context.Context, q database.Querier, businessID string, filter payment.Filter) (payment.Stats, error) {
	where, args, _ := t.where(businessID, filter)

	rows, err := q.Query(ctx, fmt.Sprintf(`SELECT %s, COUNT(*), COALESCE(SUM(p.amount), 0) %s GROUP BY %s`, t.kindCol, where, t.kindCol), args...)
	if err != nil {
		return payment.Stats{}, fmt.Errorf("failed to aggregate %s: %w", t.label, err)
	}
	defer rows.Close()

	stats := payment.Stats{ByKind: map[string]payment.KindTotal{}}
	for rows.Next() {
		var (
			kind   string
			count  int64
			amount decimal.Decimal
		)
		if err := rows.Scan(&kind, &count, &amount); err != nil {
			return payment.Stats{}, fmt.Errorf("failed to scan %s totals: %w", t.label, err)
		}
		stats.ByKind[kind] = payment.KindTotal{Count: count, Amount: amount}
		stats.Count += count
		stats.TotalAmount = stats.TotalAmount.Add(amount)
	}
	if err = rows.Err(); err != nil {
		return payment.Stats{}, fmt.Errorf("rows iteration error: %w", err)
	}
	return stats, nil
}

func (t paymentTable) months(ctx context.Context, q database.Querier, businessID string) ([]string, error) {
	query := `SELECT DISTINCT p.month` + t.from + ` WHERE p.business_id = $1 ORDER BY p.month DESC`
	rows, err := q.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s months: %w", t.label, err)
	}
	defer rows.Close()

	months, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s months: %w", t.label, err)
	}
	return months, nil
}
