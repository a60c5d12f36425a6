package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/order"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type orderRepository struct {
	db *database.DB
}

func NewOrderRepository(db *database.DB) order.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `
	id, business_id, customer_id, customer_name, customer_base_rate, description, date,
	machine_no, lot_no, unit, quantity, actual_stitches, apq, apq_chr, rate_input,
	reverse_mode, two_side, rate, design_stitches, qt_pcs, calculated_rate, stitch_rate,
	total_amount, invoice_id, created_at, updated_at`

func scanOrder(row pgx.Row) (order.Order, error) {
	var o order.Order
	err := row.Scan(
		&o.ID, &o.BusinessID, &o.CustomerID, &o.CustomerName, &o.CustomerBaseRate, &o.Description, &o.Date,
		&o.MachineNo, &o.LotNo, &o.Unit, &o.Quantity, &o.ActualStitches, &o.Apq, &o.ApqChr, &o.RateInput,
		&o.Reverse, &o.TwoSide, &o.Rate, &o.DesignStitches, &o.QtPcs, &o.CalculatedRate, &o.StitchRate,
		&o.TotalAmount, &o.InvoiceID, &o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

func (r *orderRepository) Create(ctx context.Context, o order.Order) (order.Order, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO orders (
			id, business_id, customer_id, customer_name, customer_base_rate, description, date,
			machine_no, lot_no, unit, quantity, actual_stitches, apq, apq_chr, rate_input,
			reverse_mode, two_side, rate, design_stitches, qt_pcs, calculated_rate, stitch_rate,
			total_amount, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, NOW(), NOW())
		RETURNING` + orderColumns

	created, err := scanOrder(q.QueryRow(ctx, query,
		newID(), o.BusinessID, o.CustomerID, o.CustomerName, o.CustomerBaseRate, o.Description, o.Date,
		o.MachineNo, o.LotNo, o.Unit, o.Quantity, o.ActualStitches, o.Apq, o.ApqChr, o.RateInput,
		o.Reverse, o.TwoSide, o.Rate, o.DesignStitches, o.QtPcs, o.CalculatedRate, o.StitchRate,
		o.TotalAmount,
	))
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to create order: %w", err)
	}
	return created, nil
}

// Update only touches uninvoiced orders.
func (r *orderRepository) Update(ctx context.Context, o order.Order) (order.Order, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE orders SET
			customer_id = $3, customer_name = $4, customer_base_rate = $5, description = $6, date = $7,
			machine_no = $8, lot_no = $9, unit = $10, quantity = $11, actual_stitches = $12,
			apq = $13, apq_chr = $14, rate_input = $15, reverse_mode = $16, two_side = $17,
			rate = $18, design_stitches = $19, qt_pcs = $20, calculated_rate = $21, stitch_rate = $22,
			total_amount = $23, updated_at = NOW()
		WHERE id = $1 AND business_id = $2 AND invoice_id IS NULL
		RETURNING` + orderColumns

	updated, err := scanOrder(q.QueryRow(ctx, query,
		o.ID, o.BusinessID, o.CustomerID, o.CustomerName, o.CustomerBaseRate, o.Description, o.Date,
		o.MachineNo, o.LotNo, o.Unit, o.Quantity, o.ActualStitches,
		o.Apq, o.ApqChr, o.RateInput, o.Reverse, o.TwoSide,
		o.Rate, o.DesignStitches, o.QtPcs, o.CalculatedRate, o.StitchRate,
		o.TotalAmount,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.Order{}, r.missingOrInvoiced(ctx, o.ID, o.BusinessID)
		}
		return order.Order{}, fmt.Errorf("failed to update order: %w", err)
	}
	return updated, nil
}

func (r *orderRepository) Delete(ctx context.Context, id string, businessID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM orders WHERE id = $1 AND business_id = $2 AND invoice_id IS NULL`, id, businessID)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return r.missingOrInvoiced(ctx, id, businessID)
	}
	return nil
}

// missingOrInvoiced explains why a guarded write matched no row.
func (r *orderRepository) missingOrInvoiced(ctx context.Context, id, businessID string) error {
	o, err := r.GetByID(ctx, id, businessID)
	if err != nil {
		return err
	}
	if o.IsInvoiced() {
		return order.ErrOrderInvoiced
	}
	return order.ErrOrderNotFound
}

func (r *orderRepository) GetByID(ctx context.Context, id string, businessID string) (order.Order, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + orderColumns + ` FROM orders WHERE id = $1 AND business_id = $2`
	o, err := scanOrder(q.QueryRow(ctx, query, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.Order{}, order.ErrOrderNotFound
		}
		return order.Order{}, fmt.Errorf("failed to get order: %w", err)
	}
	return o, nil
}

func (r *orderRepository) GetByIDs(ctx context.Context, ids []string, businessID string) ([]order.Order, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + orderColumns + `
		FROM orders
		WHERE business_id = $1 AND id = ANY($2)
		ORDER BY date ASC, created_at ASC, id ASC`

	rows, err := q.Query(ctx, query, businessID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	defer rows.Close()

	var orders []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return orders, nil
}

func orderWhere(businessID string, filter order.Filter) (string, []interface{}, int) {
	where := ` FROM orders WHERE business_id = $1`
	args := []interface{}{businessID}
	argIdx := 2

	if filter.CustomerID != "" {
		where += fmt.Sprintf(" AND customer_id = $%d", argIdx)
		args = append(args, filter.CustomerID)
		argIdx++
	}
	if filter.CustomerName != "" {
		where += fmt.Sprintf(" AND customer_name ILIKE $%d", argIdx)
		args = append(args, "%"+filter.CustomerName+"%")
		argIdx++
	}
	if filter.MachineNo != "" {
		where += fmt.Sprintf(" AND machine_no ILIKE $%d", argIdx)
		args = append(args, "%"+filter.MachineNo+"%")
		argIdx++
	}
	if filter.Month != "" {
		if start, end, err := validator.MonthRange(filter.Month); err == nil {
			where += fmt.Sprintf(" AND date >= $%d AND date < $%d", argIdx, argIdx+1)
			args = append(args, start, end)
			argIdx += 2
		}
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
	if filter.Uninvoiced {
		where += " AND invoice_id IS NULL"
	}
	return where, args, argIdx
}

func (r *orderRepository) List(ctx context.Context, businessID string, filter order.Filter) ([]order.Order, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery, args, argIdx := orderWhere(businessID, filter)

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 30
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`SELECT %s %s ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d`, orderColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return orders, total, nil
}

func (r *orderRepository) Stats(ctx context.Context, businessID string, filter order.Filter) (order.Stats, error) {
	q := GetQuerier(ctx, r.db)

	where, args, _ := orderWhere(businessID, filter)

	var stats order.Stats
	if err := q.QueryRow(ctx, "SELECT COUNT(*), COALESCE(SUM(total_amount), 0)"+where, args...).Scan(
		&stats.TotalOrders, &stats.TotalAmount,
	); err != nil {
		return order.Stats{}, fmt.Errorf("failed to aggregate orders: %w", err)
	}
	return stats, nil
}

func (r *orderRepository) ListUninvoiced(ctx context.Context, businessID string, customerName string) ([]order.Order, error) {
	q := GetQuerier(ctx, r.db)

	where, args, _ := orderWhere(businessID, order.Filter{CustomerName: customerName, Uninvoiced: true})
	rows, err := q.Query(ctx, `SELECT`+orderColumns+where+` ORDER BY date DESC, created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list uninvoiced orders: %w", err)
	}
	defer rows.Close()

	var orders []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return orders, nil
}
