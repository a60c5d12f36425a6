package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/ledger"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/order"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/productionconfig"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/staffrecord"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/service/master"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	supplierID = "0190f3a2-7b1c-7d3e-8f4a-00000000d001"
	recordID   = "0190f3a2-7b1c-7d3e-8f4a-00000000e001"
	orderID    = "0190f3a2-7b1c-7d3e-8f4a-0000000000a1"
)

// Fakes embed the service interfaces; unimplemented methods panic if hit.

type fakeConfigService struct {
	productionconfig.ConfigService
	created bool
}

func (f *fakeConfigService) Create(ctx context.Context, req productionconfig.CreateConfigRequest) (productionconfig.ConfigResponse, error) {
	f.created = true
	return productionconfig.ConfigResponse{}, nil
}

type fakeMasterService struct{ master.MasterService }

type fakeRecordService struct {
	staffrecord.RecordService
}

func (fakeRecordService) SlipPDF(ctx context.Context, id string) ([]byte, string, error) {
	return []byte("%PDF-1.3"), "slip-" + id + ".pdf", nil
}

type fakeOrderService struct{ order.OrderService }

func (fakeOrderService) Delete(ctx context.Context, id string) error {
	return order.ErrOrderInvoiced
}

type fakeInvoiceService struct{ invoice.InvoiceService }

type fakePaymentService struct{ payment.PaymentService }

type fakeExpenseService struct{ expense.ExpenseService }

func (fakeExpenseService) ListItems(ctx context.Context, filter expense.ItemFilter) ([]expense.ItemResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return []expense.ItemResponse{{ID: supplierID, Name: "Rent", Type: expense.TypeFixed, IsActive: true}}, nil
}

func (fakeExpenseService) ToggleItemStatus(ctx context.Context, id string) (expense.ItemResponse, error) {
	return expense.ItemResponse{}, expense.ErrItemNotFound
}

type fakeLedgerService struct {
	ledger.LedgerService
	lastKind ledger.PartyKind
}

func (f *fakeLedgerService) Balances(ctx context.Context, kind ledger.PartyKind) ([]ledger.Balance, error) {
	f.lastKind = kind
	return []ledger.Balance{}, nil
}

func (f *fakeLedgerService) ExportStatement(ctx context.Context, kind ledger.PartyKind, id string, req ledger.StatementRequest) ([]byte, string, string, error) {
	return []byte("xlsx"), "statement-" + string(kind) + "-" + id + ".xlsx", export.ContentTypeXLSX, nil
}

type fakeDashboardService struct{}

func (fakeDashboardService) GetDashboard(ctx context.Context, month string) (*dashboard.DashboardResponse, error) {
	if month != "" && !validator.IsValidMonth(month) {
		var errs validator.ValidationErrors
		errs.Add("month", "must be in YYYY-MM format")
		return nil, errs
	}
	return &dashboard.DashboardResponse{}, nil
}

type testServer struct {
	handler http.Handler
	jwt     jwt.Service
	config  *fakeConfigService
	ledger  *fakeLedgerService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		jwt:    jwt.NewJWTService("router-test-secret", "1h"),
		config: &fakeConfigService{},
		ledger: &fakeLedgerService{},
	}
	ts.handler = NewRouter(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		[]string{"http://localhost:3000"},
		ts.jwt,
		NewProductionConfigHandler(ts.config),
		NewMasterHandler(fakeMasterService{}),
		NewStaffRecordHandler(fakeRecordService{}),
		NewOrderHandler(fakeOrderService{}),
		NewInvoiceHandler(fakeInvoiceService{}),
		NewPaymentHandler(fakePaymentService{}),
		NewExpenseHandler(fakeExpenseService{}),
		NewLedgerHandler(ts.ledger),
		NewDashboardHandler(fakeDashboardService{}),
	)
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, body string, role user.Role) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if role != "" {
		token, _, err := ts.jwt.GenerateAccessToken("user-1", "biz-1", role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func TestRouter_RequiresToken(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/api/v1/dashboard", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_AdminOnlyConfigWrites(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/production-configs", `{}`, user.RoleStaff)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, ts.config.created)

	rec = ts.do(t, http.MethodPost, "/api/v1/production-configs", `{}`, user.RoleAdmin)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, ts.config.created)
}

func TestRouter_StaffCannotViewLedger(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/api/v1/ledger/staff", "", user.RoleStaff)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_LedgerPartyKind(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/ledger/customers", "", user.RoleAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ledger.PartyCustomer, ts.ledger.lastKind)

	rec = ts.do(t, http.MethodGet, "/api/v1/ledger/vendors", "", user.RoleAdmin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_StatementExport(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/api/v1/ledger/suppliers/"+supplierID+"/statement?format=xlsx", "", user.RoleAdmin)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentTypeXLSX, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "statement-suppliers-"+supplierID+".xlsx")
}

func TestRouter_SlipPDF(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/api/v1/staff-records/"+recordID+"/slip.pdf", "", user.RoleStaff)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentTypePDF, rec.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.3", rec.Body.String())
}

func TestRouter_InvoicedOrderConflict(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodDelete, "/api/v1/orders/"+orderID, "", user.RoleStaff)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouter_DashboardMonthValidation(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/dashboard?month=2024-13", "", user.RoleAdmin)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/dashboard?month=2024-02", "", user.RoleAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_MalformedBody(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodPost, "/api/v1/staff-payments", `{"amount":`, user.RoleAdmin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_MalformedIDs(t *testing.T) {
	ts := newTestServer(t)
	cases := []struct {
		method, path, field string
	}{
		{http.MethodGet, "/api/v1/staff-records/abc", "id"},
		{http.MethodGet, "/api/v1/staff-records/last/12", "staffId"},
		{http.MethodDelete, "/api/v1/orders/o-1", "id"},
		{http.MethodGet, "/api/v1/invoices/INV-1", "id"},
		{http.MethodGet, "/api/v1/ledger/staff/not-a-uuid/balance", "id"},
		{http.MethodGet, "/api/v1/ledger/customers/42/statement", "id"},
		{http.MethodPatch, "/api/v1/customers/x/toggle", "id"},
		{http.MethodPatch, "/api/v1/expense-items/rent/toggle", "id"},
	}
	for _, c := range cases {
		t.Run(c.method+" "+c.path, func(t *testing.T) {
			rec := ts.do(t, c.method, c.path, "", user.RoleAdmin)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Contains(t, rec.Body.String(), `"`+c.field+`":"must be a valid UUID"`)
		})
	}
}

func TestRouter_ExpenseItems(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/expense-items?expense_type=fixed&status=active", "", user.RoleAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Rent"`)

	rec = ts.do(t, http.MethodGet, "/api/v1/expense-items?status=archived", "", user.RoleAdmin)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status"`)

	rec = ts.do(t, http.MethodPatch, "/api/v1/expense-items/"+supplierID+"/toggle", "", user.RoleAdmin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "expense item not found")
}
