package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns today's and the month's activity plus headcounts.
	// An empty month means the current month.
	GetDashboard(ctx context.Context, month string) (*DashboardResponse, error)
}
