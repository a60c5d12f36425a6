package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetActivity returns count and amount per collection within [from, to) in single query
func (r *dashboardRepositoryImpl) GetActivity(ctx context.Context, businessID string, from, to time.Time) (*dashboard.ActivityStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM orders WHERE business_id = $1 AND date >= $2 AND date < $3),
			(SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE business_id = $1 AND date >= $2 AND date < $3),
			(SELECT COUNT(*) FROM invoices WHERE business_id = $1 AND invoice_date >= $2 AND invoice_date < $3),
			(SELECT COALESCE(SUM(total_amount), 0) FROM invoices WHERE business_id = $1 AND invoice_date >= $2 AND invoice_date < $3),
			(SELECT COUNT(*) FROM expenses WHERE business_id = $1 AND date >= $2 AND date < $3),
			(SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE business_id = $1 AND date >= $2 AND date < $3),
			(SELECT COUNT(*) FROM customer_payments WHERE business_id = $1 AND date >= $2 AND date < $3),
			(SELECT COALESCE(SUM(amount), 0) FROM customer_payments WHERE business_id = $1 AND date >= $2 AND date < $3),
			(SELECT COUNT(*) FROM supplier_payments WHERE business_id = $1 AND date >= $2 AND date < $3),
			(SELECT COALESCE(SUM(amount), 0) FROM supplier_payments WHERE business_id = $1 AND date >= $2 AND date < $3),
			(SELECT COUNT(*) FROM staff_payments WHERE business_id = $1 AND date >= $2 AND date < $3),
			(SELECT COALESCE(SUM(amount), 0) FROM staff_payments WHERE business_id = $1 AND date >= $2 AND date < $3),
			(SELECT COUNT(*) FROM staff_records WHERE business_id = $1 AND date >= $2 AND date < $3),
			(SELECT COALESCE(SUM(final_amount), 0) FROM staff_records WHERE business_id = $1 AND date >= $2 AND date < $3)
	`

	var s dashboard.ActivityStats
	err := q.QueryRow(ctx, query, businessID, from, to).Scan(
		&s.Orders.Count, &s.Orders.Amount,
		&s.Invoices.Count, &s.Invoices.Amount,
		&s.Expenses.Count, &s.Expenses.Amount,
		&s.CustomerPayments.Count, &s.CustomerPayments.Amount,
		&s.SupplierPayments.Count, &s.SupplierPayments.Amount,
		&s.StaffPayments.Count, &s.StaffPayments.Amount,
		&s.Payroll.Count, &s.Payroll.Amount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard activity: %w", err)
	}
	return &s, nil
}

// GetHeadcount returns active staff, customers and suppliers in single query
func (r *dashboardRepositoryImpl) GetHeadcount(ctx context.Context, businessID string) (*dashboard.HeadcountStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM staff WHERE business_id = $1 AND is_active),
			(SELECT COUNT(*) FROM customers WHERE business_id = $1 AND is_active),
			(SELECT COUNT(*) FROM suppliers WHERE business_id = $1 AND is_active)
	`

	var s dashboard.HeadcountStats
	if err := q.QueryRow(ctx, query, businessID).Scan(&s.ActiveStaff, &s.ActiveCustomers, &s.ActiveSuppliers); err != nil {
		return nil, fmt.Errorf("failed to get headcount: %w", err)
	}
	return &s, nil
}
