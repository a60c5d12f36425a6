package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/ledger"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/staff"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/productionconfig"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/staffrecord"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/repository/postgresql"
	recordsvc "github.com/cmlabs-hris/embroidery-backend-go/internal/service/staffrecord"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBusiness = "biz-integration"

func setupTestDB(t *testing.T) *TestDatabaseSetup {
	t.Helper()
	setup, ok, err := NewTestDatabase()
	if !ok {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, err)
	t.Cleanup(setup.Close)

	ctx := context.Background()
	require.NoError(t, setup.Migrate(ctx))
	require.NoError(t, setup.TruncateAllTables(ctx))
	return setup
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestStaffRepository_DuplicateName(t *testing.T) {
	setup := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewStaffRepository(setup.DB)

	_, err := repo.Create(ctx, staff.Staff{BusinessID: testBusiness, Name: "Ali", Category: staff.CategoryEmbroidery, IsActive: true})
	require.NoError(t, err)

	_, err = repo.Create(ctx, staff.Staff{BusinessID: testBusiness, Name: "Ali", Category: staff.CategoryEmbroidery, IsActive: true})
	assert.ErrorIs(t, err, staff.ErrStaffNameExists)
}

func TestStaffPaymentRepository_CreateAndLedger(t *testing.T) {
	setup := setupTestDB(t)
	ctx := context.Background()
	staffRepo := postgresql.NewStaffRepository(setup.DB)
	paymentRepo := postgresql.NewStaffPaymentRepository(setup.DB)
	ledgerRepo := postgresql.NewLedgerRepository(setup.DB)

	s, err := staffRepo.Create(ctx, staff.Staff{
		BusinessID:     testBusiness,
		Name:           "Bilal",
		Category:       staff.CategoryEmbroidery,
		OpeningBalance: decimal.NewFromInt(100),
		IsActive:       true,
	})
	require.NoError(t, err)

	adj, err := paymentRepo.Create(ctx, payment.StaffPayment{
		BusinessID: testBusiness, StaffID: s.ID, Date: day("2024-03-02"), Month: "2024-03",
		Type: payment.StaffAdjustment, Amount: decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	assert.Equal(t, "Bilal", adj.StaffName)

	_, err = paymentRepo.Create(ctx, payment.StaffPayment{
		BusinessID: testBusiness, StaffID: s.ID, Date: day("2024-03-05"), Month: "2024-03",
		Type: payment.StaffAdvance, Amount: decimal.NewFromInt(30),
	})
	require.NoError(t, err)

	scope := ledger.Scope{BusinessID: testBusiness, PartyID: s.ID}
	debits, err := ledgerRepo.Debits(ctx, ledger.PartyStaff, scope)
	require.NoError(t, err)
	credits, err := ledgerRepo.Credits(ctx, ledger.PartyStaff, scope)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(50).Equal(debits[s.ID]), "debits %s", debits[s.ID])
	assert.True(t, decimal.NewFromInt(30).Equal(credits[s.ID]), "credits %s", credits[s.ID])

	entries, err := ledgerRepo.Entries(ctx, ledger.PartyStaff, testBusiness, s.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, adj.ID, entries[0].ID)

	months, err := paymentRepo.Months(ctx, testBusiness)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03"}, months)
}

func TestStaffPaymentRepository_OtherBusinessNotFound(t *testing.T) {
	setup := setupTestDB(t)
	ctx := context.Background()
	staffRepo := postgresql.NewStaffRepository(setup.DB)
	paymentRepo := postgresql.NewStaffPaymentRepository(setup.DB)

	s, err := staffRepo.Create(ctx, staff.Staff{BusinessID: testBusiness, Name: "Kashif", Category: staff.CategoryEmbroidery, IsActive: true})
	require.NoError(t, err)
	p, err := paymentRepo.Create(ctx, payment.StaffPayment{
		BusinessID: testBusiness, StaffID: s.ID, Date: day("2024-04-01"), Month: "2024-04",
		Type: payment.StaffPayout, Amount: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	_, err = paymentRepo.GetByID(ctx, p.ID, "other-business")
	assert.ErrorIs(t, err, payment.ErrStaffPaymentNotFound)
}

func TestStaffRecordRepository_StoresComputedAmountsExactly(t *testing.T) {
	setup := setupTestDB(t)
	ctx := context.Background()
	staffRepo := postgresql.NewStaffRepository(setup.DB)
	recordRepo := postgresql.NewStaffRecordRepository(setup.DB)

	s, err := staffRepo.Create(ctx, staff.Staff{BusinessID: testBusiness, Name: "Danish", Category: staff.CategoryEmbroidery, IsActive: true})
	require.NoError(t, err)

	cfg := productionconfig.Config{
		ID:             "cfg-1",
		StitchRate:     decimal.RequireFromString("0.37"),
		OnTargetPct:    decimal.RequireFromString("0.3"),
		AfterTargetPct: decimal.RequireFromString("0.4"),
		TargetAmount:   decimal.NewFromInt(1000),
		EffectiveDate:  day("2024-01-01"),
	}
	preview := recordsvc.Build(recordsvc.BuildInput{
		StaffID:    s.ID,
		Date:       day("2024-03-15"),
		Attendance: staffrecord.AttendanceDay,
		Production: []staffrecord.ProductionRow{{
			DesignStitch: decimal.NewFromInt(6123),
			PieceCount:   decimal.NewFromInt(7),
			RoundCount:   decimal.NewFromInt(1),
		}},
	}, cfg)
	preview.BusinessID = testBusiness
	preview.StaffName = s.Name
	require.False(t, preview.FinalAmount.Equal(preview.FinalAmount.Round(2)), "amount should carry more than two decimals")

	created, err := recordRepo.Create(ctx, preview)
	require.NoError(t, err)
	assert.True(t, preview.BaseAmount.Equal(created.BaseAmount), "base %s vs %s", preview.BaseAmount, created.BaseAmount)
	assert.True(t, preview.FinalAmount.Equal(created.FinalAmount), "final %s vs %s", preview.FinalAmount, created.FinalAmount)

	stored, err := recordRepo.GetByID(ctx, created.ID, testBusiness)
	require.NoError(t, err)
	require.NotNil(t, stored.Totals)
	assert.True(t, stored.Totals.OnTargetAmount.Equal(stored.BaseAmount), "base must equal on-target total below target")
	assert.True(t, preview.FinalAmount.Equal(stored.FinalAmount))
}

func TestExpenseItemRepository_CatalogLifecycle(t *testing.T) {
	setup := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewExpenseItemRepository(setup.DB)

	rent, err := repo.Create(ctx, expense.Item{BusinessID: testBusiness, Name: "Rent", Type: expense.TypeFixed, DefaultAmount: decimal.NewFromInt(45000), IsActive: true})
	require.NoError(t, err)
	_, err = repo.Create(ctx, expense.Item{BusinessID: testBusiness, Name: "Tea", Type: expense.TypeCash, IsActive: true})
	require.NoError(t, err)

	_, err = repo.Create(ctx, expense.Item{BusinessID: testBusiness, Name: "Rent", Type: expense.TypeFixed, IsActive: true})
	assert.ErrorIs(t, err, expense.ErrItemNameExists)

	toggled, err := repo.ToggleStatus(ctx, rent.ID, testBusiness)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	all, err := repo.List(ctx, testBusiness, expense.ItemFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Tea", all[0].Name)
	assert.Equal(t, "Rent", all[1].Name)

	active, err := repo.List(ctx, testBusiness, expense.ItemFilter{Status: "active"})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Tea", active[0].Name)

	_, err = repo.GetByID(ctx, rent.ID, "biz-other")
	assert.ErrorIs(t, err, expense.ErrItemNotFound)
}
