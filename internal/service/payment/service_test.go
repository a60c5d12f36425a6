package payment

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/customer"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/staff"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/supplier"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testBusiness = "biz-1"
	staffAli     = "0190f3a2-7b1c-7d3e-8f4a-00000000b001"
	staffUnknown = "0190f3a2-7b1c-7d3e-8f4a-00000000b009"
	custStar     = "0190f3a2-7b1c-7d3e-8f4a-00000000c001"
	supThread    = "0190f3a2-7b1c-7d3e-8f4a-00000000d001"
)

type fakeStaffRepo struct {
	staff.StaffRepository
	members map[string]staff.Staff
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id, businessID string) (staff.Staff, error) {
	m, ok := f.members[id]
	if !ok || m.BusinessID != businessID {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	return m, nil
}

type fakeCustomerRepo struct {
	customer.CustomerRepository
	customers map[string]customer.Customer
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id, businessID string) (customer.Customer, error) {
	c, ok := f.customers[id]
	if !ok || c.BusinessID != businessID {
		return customer.Customer{}, customer.ErrCustomerNotFound
	}
	return c, nil
}

type fakeSupplierRepo struct {
	supplier.SupplierRepository
	suppliers map[string]supplier.Supplier
}

func (f *fakeSupplierRepo) GetByID(_ context.Context, id, businessID string) (supplier.Supplier, error) {
	s, ok := f.suppliers[id]
	if !ok || s.BusinessID != businessID {
		return supplier.Supplier{}, supplier.ErrSupplierNotFound
	}
	return s, nil
}

type fakeStaffPaymentRepo struct {
	payment.StaffPaymentRepository
	saved map[string]payment.StaffPayment
}

func (f *fakeStaffPaymentRepo) Create(_ context.Context, p payment.StaffPayment) (payment.StaffPayment, error) {
	p.ID = "sp-1"
	f.saved[p.ID] = p
	return p, nil
}

func (f *fakeStaffPaymentRepo) Update(_ context.Context, p payment.StaffPayment) (payment.StaffPayment, error) {
	if existing, ok := f.saved[p.ID]; !ok || existing.BusinessID != p.BusinessID {
		return payment.StaffPayment{}, payment.ErrStaffPaymentNotFound
	}
	f.saved[p.ID] = p
	return p, nil
}

func (f *fakeStaffPaymentRepo) Months(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

type fakeCustomerPaymentRepo struct {
	payment.CustomerPaymentRepository
	created []payment.CustomerPayment
}

func (f *fakeCustomerPaymentRepo) Create(_ context.Context, p payment.CustomerPayment) (payment.CustomerPayment, error) {
	p.ID = "cp-1"
	f.created = append(f.created, p)
	return p, nil
}

type fakeSupplierPaymentRepo struct {
	payment.SupplierPaymentRepository
	created []payment.SupplierPayment
}

func (f *fakeSupplierPaymentRepo) Create(_ context.Context, p payment.SupplierPayment) (payment.SupplierPayment, error) {
	p.ID = "sup-pay-1"
	f.created = append(f.created, p)
	return p, nil
}

type fixture struct {
	svc       payment.PaymentService
	staffPay  *fakeStaffPaymentRepo
	custPay   *fakeCustomerPaymentRepo
	supplyPay *fakeSupplierPaymentRepo
}

func newFixture() fixture {
	f := fixture{
		staffPay:  &fakeStaffPaymentRepo{saved: map[string]payment.StaffPayment{}},
		custPay:   &fakeCustomerPaymentRepo{},
		supplyPay: &fakeSupplierPaymentRepo{},
	}
	f.svc = NewPaymentService(
		&fakeStaffRepo{members: map[string]staff.Staff{
			staffAli: {ID: staffAli, BusinessID: testBusiness, Name: "Ali", IsActive: true},
		}},
		&fakeCustomerRepo{customers: map[string]customer.Customer{
			custStar: {ID: custStar, BusinessID: testBusiness, Name: "Star Textiles", IsActive: true},
		}},
		&fakeSupplierRepo{suppliers: map[string]supplier.Supplier{
			supThread: {ID: supThread, BusinessID: testBusiness, Name: "Thread House", IsActive: true},
		}},
		f.staffPay,
		f.custPay,
		f.supplyPay,
		logger.Discard(),
	)
	return f
}

func testCtx() context.Context {
	return jwt.ContextWithPrincipal(context.Background(), user.Principal{UserID: "u-1", BusinessID: testBusiness, Role: user.RoleAdmin})
}

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve validator.ValidationErrors
	require.ErrorAs(t, err, &ve)
	return ve.ToMap()
}

func TestCreateStaffPayment_MonthDefaultsToDateMonth(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CreateStaffPayment(testCtx(), payment.StaffPaymentRequest{
		StaffID: staffAli,
		Date:    "2024-05-31",
		Type:    "advance",
		Amount:  decimal.NewFromInt(1500),
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-05", resp.Month)
	assert.Equal(t, "Ali", resp.StaffName)
	assert.Equal(t, payment.StaffAdvance, resp.Type)
}

func TestCreateStaffPayment_ExplicitMonthWins(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CreateStaffPayment(testCtx(), payment.StaffPaymentRequest{
		StaffID: staffAli,
		Date:    "2024-06-02",
		Month:   "2024-05",
		Type:    "payment",
		Amount:  decimal.NewFromInt(20000),
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-05", resp.Month)
	assert.Equal(t, "2024-06", validator.MonthOf(f.staffPay.saved["sp-1"].Date))
}

func TestCreateStaffPayment_Rejections(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateStaffPayment(testCtx(), payment.StaffPaymentRequest{
		StaffID: staffAli, Date: "2024-05-01", Type: "bonus", Amount: decimal.Zero,
	})
	fields := validationFields(t, err)
	assert.Contains(t, fields, "type")
	assert.Contains(t, fields, "amount")

	_, err = f.svc.CreateStaffPayment(testCtx(), payment.StaffPaymentRequest{
		StaffID: staffUnknown, Date: "2024-05-01", Type: "advance", Amount: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
}

func TestUpdateStaffPayment_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.UpdateStaffPayment(testCtx(), payment.StaffPaymentRequest{
		ID: "missing", StaffID: staffAli, Date: "2024-05-01", Type: "advance", Amount: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, payment.ErrStaffPaymentNotFound)
}

func TestStaffPaymentMonths_NeverNil(t *testing.T) {
	f := newFixture()

	months, err := f.svc.StaffPaymentMonths(testCtx())
	require.NoError(t, err)
	assert.NotNil(t, months)
	assert.Empty(t, months)
}

func TestCreateCustomerPayment_MethodRules(t *testing.T) {
	base := func() payment.CustomerPaymentRequest {
		return payment.CustomerPaymentRequest{
			CustomerID: custStar,
			Date:       "2024-05-10",
			Amount:     decimal.NewFromInt(5000),
		}
	}
	cases := []struct {
		name       string
		mutate     func(r *payment.CustomerPaymentRequest)
		wantFields []string
	}{
		{"cash needs nothing else", func(r *payment.CustomerPaymentRequest) { r.Method = "cash" }, nil},
		{"online without bank", func(r *payment.CustomerPaymentRequest) {
			r.Method = "online"
			r.ReferenceNo = "TRX-9"
		}, []string{"bank_name"}},
		{"cheque missing dates", func(r *payment.CustomerPaymentRequest) {
			r.Method = "cheque"
			r.ReferenceNo = "000123"
			r.BankName = "HBL"
		}, []string{"cheque_date", "clear_date"}},
		{"cheque clears before issue", func(r *payment.CustomerPaymentRequest) {
			r.Method = "cheque"
			r.ReferenceNo = "000123"
			r.BankName = "HBL"
			r.ChequeDate = "2024-05-12"
			r.ClearDate = "2024-05-11"
		}, []string{"clear_date"}},
		{"slip missing party", func(r *payment.CustomerPaymentRequest) {
			r.Method = "slip"
			r.ReferenceNo = "S-1"
			r.SlipDate = "2024-05-10"
			r.ClearDate = "2024-05-10"
		}, []string{"party_name"}},
		{"unknown method", func(r *payment.CustomerPaymentRequest) { r.Method = "barter" }, []string{"method"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture()
			req := base()
			c.mutate(&req)

			_, err := f.svc.CreateCustomerPayment(testCtx(), req)
			if c.wantFields == nil {
				require.NoError(t, err)
				return
			}
			fields := validationFields(t, err)
			for _, field := range c.wantFields {
				assert.Contains(t, fields, field)
			}
			assert.Empty(t, f.custPay.created)
		})
	}
}

func TestCreateCustomerPayment_SlipAcceptsChequeDateField(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CreateCustomerPayment(testCtx(), payment.CustomerPaymentRequest{
		CustomerID:  custStar,
		Date:        "2024-05-10",
		Method:      "slip",
		Amount:      decimal.NewFromInt(700),
		ReferenceNo: "S-44",
		PartyName:   "Star Textiles",
		ChequeDate:  "2024-05-09",
		ClearDate:   "2024-05-11",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.SlipDate)
	assert.Equal(t, "2024-05-09", *resp.SlipDate)
	assert.Nil(t, resp.ChequeDate)
	assert.Equal(t, "Star Textiles", resp.CustomerName)
}

func TestCreateCustomerPayment_OtherBusinessCustomer(t *testing.T) {
	f := newFixture()
	ctx := jwt.ContextWithPrincipal(context.Background(), user.Principal{UserID: "u-2", BusinessID: "biz-2", Role: user.RoleAdmin})

	_, err := f.svc.CreateCustomerPayment(ctx, payment.CustomerPaymentRequest{
		CustomerID: custStar, Date: "2024-05-10", Method: "cash", Amount: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
}

func TestCreateSupplierPayment(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CreateSupplierPayment(testCtx(), payment.SupplierPaymentRequest{
		SupplierID: supThread,
		Date:       "2024-07-15",
		Method:     "online",
		Amount:     decimal.RequireFromString("1250.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-07", resp.Month)
	assert.Equal(t, "Thread House", resp.SupplierName)
	require.Len(t, f.supplyPay.created, 1)
	assert.True(t, f.supplyPay.created[0].Date.Equal(time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)))

	_, err = f.svc.CreateSupplierPayment(testCtx(), payment.SupplierPaymentRequest{
		SupplierID: supThread, Date: "2024-07-15", Method: "slip", Amount: decimal.NewFromInt(1),
	})
	assert.Contains(t, validationFields(t, err), "method")
}
