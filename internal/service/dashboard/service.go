package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/validator"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const module = "dashboard"

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	log *logrus.Logger
	now func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository, log *logrus.Logger) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		log:                 log,
		now:                 time.Now,
	}
}

// GetDashboard runs the three dashboard queries in parallel goroutines
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, month string) (*dashboard.DashboardResponse, error) {
	now := s.now()
	if month == "" {
		month = validator.MonthOf(now)
	}
	monthStart, monthEnd, err := validator.MonthRange(month)
	if err != nil {
		var errs validator.ValidationErrors
		errs.Add("month", "must be in YYYY-MM format")
		return nil, errs
	}

	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}
	businessID := principal.BusinessID

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var (
		todayActivity dashboard.ActivityResponse
		monthActivity dashboard.ActivityResponse
		headcount     dashboard.HeadcountResponse
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Today's activity (1 query)
	g.Go(func() error {
		stats, err := s.GetActivity(gCtx, businessID, today, today.AddDate(0, 0, 1))
		if err != nil {
			return err
		}
		todayActivity = toActivity(today.Format(validator.DateLayout), stats)
		return nil
	})

	// 2. Selected month's activity (1 query)
	g.Go(func() error {
		stats, err := s.GetActivity(gCtx, businessID, monthStart, monthEnd)
		if err != nil {
			return err
		}
		monthActivity = toActivity(month, stats)
		return nil
	})

	// 3. Active headcounts (1 query)
	g.Go(func() error {
		stats, err := s.GetHeadcount(gCtx, businessID)
		if err != nil {
			return err
		}
		headcount = dashboard.HeadcountResponse{
			ActiveStaff:     stats.ActiveStaff,
			ActiveCustomers: stats.ActiveCustomers,
			ActiveSuppliers: stats.ActiveSuppliers,
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.LogError(s.log, module, "GetDashboard", "load dashboard", month, err)
		return nil, err
	}

	return &dashboard.DashboardResponse{
		Today:     todayActivity,
		Month:     monthActivity,
		Headcount: headcount,
	}, nil
}

func toActivity(period string, stats *dashboard.ActivityStats) dashboard.ActivityResponse {
	out := stats.SupplierPayments.Amount.
		Add(stats.StaffPayments.Amount).
		Add(stats.Expenses.Amount)
	return dashboard.ActivityResponse{
		Period:           period,
		Orders:           stats.Orders,
		Invoices:         stats.Invoices,
		Expenses:         stats.Expenses,
		CustomerPayments: stats.CustomerPayments,
		SupplierPayments: stats.SupplierPayments,
		StaffPayments:    stats.StaffPayments,
		Payroll:          stats.Payroll,
		Net:              stats.CustomerPayments.Amount.Sub(out),
	}
}
