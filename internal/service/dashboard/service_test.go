package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type window struct{ from, to time.Time }

type fakeDashboardRepo struct {
	mu      sync.Mutex
	windows []window
	failOn  string
}

func (f *fakeDashboardRepo) GetActivity(_ context.Context, _ string, from, to time.Time) (*dashboard.ActivityStats, error) {
	f.mu.Lock()
	f.windows = append(f.windows, window{from, to})
	f.mu.Unlock()
	if f.failOn == "activity" {
		return nil, errors.New("db down")
	}
	return &dashboard.ActivityStats{
		Orders:           dashboard.CountAmount{Count: 3, Amount: decimal.NewFromInt(3600)},
		CustomerPayments: dashboard.CountAmount{Count: 1, Amount: decimal.NewFromInt(5000)},
		SupplierPayments: dashboard.CountAmount{Count: 1, Amount: decimal.NewFromInt(1200)},
		StaffPayments:    dashboard.CountAmount{Count: 2, Amount: decimal.NewFromInt(800)},
		Expenses:         dashboard.CountAmount{Count: 4, Amount: decimal.NewFromInt(500)},
	}, nil
}

func (f *fakeDashboardRepo) GetHeadcount(_ context.Context, _ string) (*dashboard.HeadcountStats, error) {
	return &dashboard.HeadcountStats{ActiveStaff: 12, ActiveCustomers: 7, ActiveSuppliers: 3}, nil
}

func testCtx() context.Context {
	return jwt.ContextWithPrincipal(context.Background(), user.Principal{UserID: "u-1", BusinessID: "biz-1", Role: user.RoleAdmin})
}

func newService(repo *fakeDashboardRepo) *DashboardServiceImpl {
	svc := NewDashboardService(repo, logger.Discard()).(*DashboardServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 5, 14, 16, 30, 0, 0, time.UTC) }
	return svc
}

func TestGetDashboard_DefaultsToCurrentMonth(t *testing.T) {
	repo := &fakeDashboardRepo{}
	resp, err := newService(repo).GetDashboard(testCtx(), "")
	require.NoError(t, err)

	assert.Equal(t, "2024-05-14", resp.Today.Period)
	assert.Equal(t, "2024-05", resp.Month.Period)
	assert.True(t, decimal.NewFromInt(2500).Equal(resp.Month.Net), resp.Month.Net.String())
	assert.Equal(t, int64(12), resp.Headcount.ActiveStaff)

	require.Len(t, repo.windows, 2)
	assert.Contains(t, repo.windows, window{
		from: time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC),
		to:   time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
	})
	assert.Contains(t, repo.windows, window{
		from: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		to:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
}

func TestGetDashboard_InvalidMonth(t *testing.T) {
	_, err := newService(&fakeDashboardRepo{}).GetDashboard(testCtx(), "2024-13")
	var ve validator.ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.ToMap(), "month")
}

func TestGetDashboard_QueryFailure(t *testing.T) {
	_, err := newService(&fakeDashboardRepo{failOn: "activity"}).GetDashboard(testCtx(), "2024-04")
	assert.EqualError(t, err, "db down")
}
