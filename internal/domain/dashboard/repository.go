package dashboard

import (
	"context"
	"time"
)

// ActivityStats combines the per-collection totals of one period
type ActivityStats struct {
	Orders           CountAmount
	Invoices         CountAmount
	Expenses         CountAmount
	CustomerPayments CountAmount
	SupplierPayments CountAmount
	StaffPayments    CountAmount
	Payroll          CountAmount
}

type HeadcountStats struct {
	ActiveStaff     int64
	ActiveCustomers int64
	ActiveSuppliers int64
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	// GetActivity returns every collection's count and amount dated within [from, to) in a single query
	GetActivity(ctx context.Context, businessID string, from, to time.Time) (*ActivityStats, error)

	// GetHeadcount returns active staff, customer and supplier counts in a single query
	GetHeadcount(ctx context.Context, businessID string) (*HeadcountStats, error)
}
