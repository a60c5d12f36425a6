package master

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/customer"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/staff"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/supplier"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	biz      = "biz-1"
	otherBiz = "biz-2"
)

type fakeStaffRepo struct {
	rows map[string]staff.Staff
	seq  int
}

func (f *fakeStaffRepo) Create(_ context.Context, s staff.Staff) (staff.Staff, error) {
	for _, existing := range f.rows {
		if existing.BusinessID == s.BusinessID && existing.Name == s.Name {
			return staff.Staff{}, staff.ErrStaffNameExists
		}
	}
	f.seq++
	s.ID = fmt.Sprintf("staff-%d", f.seq)
	f.rows[s.ID] = s
	return s, nil
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id, businessID string) (staff.Staff, error) {
	s, ok := f.rows[id]
	if !ok || s.BusinessID != businessID {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	return s, nil
}

func (f *fakeStaffRepo) List(_ context.Context, businessID string, filter staff.Filter) ([]staff.Staff, int64, error) {
	var out []staff.Staff
	for i := 1; i <= f.seq; i++ {
		s, ok := f.rows[fmt.Sprintf("staff-%d", i)]
		if !ok || s.BusinessID != businessID {
			continue
		}
		if filter.Active != nil && s.IsActive != *filter.Active {
			continue
		}
		out = append(out, s)
	}
	total := int64(len(out))
	start := (filter.Page - 1) * filter.Limit
	if start > len(out) {
		start = len(out)
	}
	end := start + filter.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (f *fakeStaffRepo) Update(_ context.Context, s staff.Staff) (staff.Staff, error) {
	for id, existing := range f.rows {
		if id != s.ID && existing.BusinessID == s.BusinessID && existing.Name == s.Name {
			return staff.Staff{}, staff.ErrStaffNameExists
		}
	}
	f.rows[s.ID] = s
	return s, nil
}

func (f *fakeStaffRepo) Delete(_ context.Context, id, businessID string) error {
	s, ok := f.rows[id]
	if !ok || s.BusinessID != businessID {
		return staff.ErrStaffNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeStaffRepo) ToggleStatus(ctx context.Context, id, businessID string) (staff.Staff, error) {
	s, err := f.GetByID(ctx, id, businessID)
	if err != nil {
		return staff.Staff{}, err
	}
	s.IsActive = !s.IsActive
	f.rows[id] = s
	return s, nil
}

func (f *fakeStaffRepo) Stats(_ context.Context, businessID string) (staff.Stats, error) {
	var st staff.Stats
	for _, s := range f.rows {
		if s.BusinessID != businessID {
			continue
		}
		st.Total++
		if s.IsActive {
			st.Active++
		} else {
			st.Inactive++
		}
	}
	return st, nil
}

type fakeCustomerRepo struct {
	customer.CustomerRepository
	rows map[string]customer.Customer
	seq  int
}

func (f *fakeCustomerRepo) Create(_ context.Context, c customer.Customer) (customer.Customer, error) {
	for _, existing := range f.rows {
		if existing.BusinessID == c.BusinessID && existing.Name == c.Name {
			return customer.Customer{}, customer.ErrCustomerNameExists
		}
	}
	f.seq++
	c.ID = fmt.Sprintf("cust-%d", f.seq)
	f.rows[c.ID] = c
	return c, nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id, businessID string) (customer.Customer, error) {
	c, ok := f.rows[id]
	if !ok || c.BusinessID != businessID {
		return customer.Customer{}, customer.ErrCustomerNotFound
	}
	return c, nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, c customer.Customer) (customer.Customer, error) {
	f.rows[c.ID] = c
	return c, nil
}

func (f *fakeCustomerRepo) ToggleStatus(ctx context.Context, id, businessID string) (customer.Customer, error) {
	c, err := f.GetByID(ctx, id, businessID)
	if err != nil {
		return customer.Customer{}, err
	}
	c.IsActive = !c.IsActive
	f.rows[id] = c
	return c, nil
}

type fakeSupplierRepo struct {
	supplier.SupplierRepository
	rows map[string]supplier.Supplier
	seq  int
}

func (f *fakeSupplierRepo) Create(_ context.Context, s supplier.Supplier) (supplier.Supplier, error) {
	for _, existing := range f.rows {
		if existing.BusinessID == s.BusinessID && existing.Name == s.Name {
			return supplier.Supplier{}, supplier.ErrSupplierNameExists
		}
	}
	f.seq++
	s.ID = fmt.Sprintf("sup-%d", f.seq)
	f.rows[s.ID] = s
	return s, nil
}

func (f *fakeSupplierRepo) GetByID(_ context.Context, id, businessID string) (supplier.Supplier, error) {
	s, ok := f.rows[id]
	if !ok || s.BusinessID != businessID {
		return supplier.Supplier{}, supplier.ErrSupplierNotFound
	}
	return s, nil
}

func (f *fakeSupplierRepo) Update(_ context.Context, s supplier.Supplier) (supplier.Supplier, error) {
	f.rows[s.ID] = s
	return s, nil
}

func (f *fakeSupplierRepo) Delete(_ context.Context, id, businessID string) error {
	s, ok := f.rows[id]
	if !ok || s.BusinessID != businessID {
		return supplier.ErrSupplierNotFound
	}
	delete(f.rows, id)
	return nil
}

type fixture struct {
	svc       MasterService
	staff     *fakeStaffRepo
	customers *fakeCustomerRepo
	suppliers *fakeSupplierRepo
	logs      *bytes.Buffer
}

func newFixture() *fixture {
	f := &fixture{
		staff:     &fakeStaffRepo{rows: map[string]staff.Staff{}},
		customers: &fakeCustomerRepo{rows: map[string]customer.Customer{}},
		suppliers: &fakeSupplierRepo{rows: map[string]supplier.Supplier{}},
		logs:      &bytes.Buffer{},
	}
	f.svc = NewMasterService(f.staff, f.customers, f.suppliers, logger.NewWithOutput("debug", f.logs))
	return f
}

func ctxFor(businessID string) context.Context {
	return jwt.ContextWithPrincipal(context.Background(), user.Principal{UserID: "u-1", BusinessID: businessID, Role: user.RoleAdmin})
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreateStaff_NormalizesCategory(t *testing.T) {
	f := newFixture()
	cases := []struct {
		name     string
		category string
		want     staff.Category
		produces bool
	}{
		{"Ali", "", staff.CategoryEmbroidery, true},
		{"Bilal", "embroidery", staff.CategoryEmbroidery, true},
		{"Kashif", "Packing", staff.CategoryCropping, false},
		{"Danish", " CROPPING ", staff.CategoryCropping, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp, err := f.svc.CreateStaff(ctxFor(biz), staff.CreateStaffRequest{Name: c.name, Category: c.category})
			require.NoError(t, err)
			assert.Equal(t, c.want, resp.Category)
			assert.True(t, resp.IsActive)
			assert.Equal(t, c.produces, f.staff.rows[resp.ID].ProducesEmbroidery())
		})
	}
}

func TestCreateStaff_Validation(t *testing.T) {
	f := newFixture()
	salary := dec("-1")

	_, err := f.svc.CreateStaff(ctxFor(biz), staff.CreateStaffRequest{Category: "Stitching", JoiningDate: "2024-13-01", Salary: &salary})
	var ve validator.ValidationErrors
	require.ErrorAs(t, err, &ve)
	fields := ve.ToMap()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "category")
	assert.Contains(t, fields, "joining_date")
	assert.Contains(t, fields, "salary")
	assert.Empty(t, f.staff.rows)
}

func TestCreateStaff_DuplicateNameIsNotLogged(t *testing.T) {
	f := newFixture()
	_, err := f.svc.CreateStaff(ctxFor(biz), staff.CreateStaffRequest{Name: "Ali"})
	require.NoError(t, err)

	_, err = f.svc.CreateStaff(ctxFor(biz), staff.CreateStaffRequest{Name: "Ali"})
	assert.ErrorIs(t, err, staff.ErrStaffNameExists)
	assert.Empty(t, f.logs.String())

	_, err = f.svc.CreateStaff(ctxFor(otherBiz), staff.CreateStaffRequest{Name: "Ali"})
	assert.NoError(t, err, "names are unique per business")
}

func TestUpdateStaff(t *testing.T) {
	f := newFixture()
	salary := dec("30000")
	created, err := f.svc.CreateStaff(ctxFor(biz), staff.CreateStaffRequest{Name: "Ali", Salary: &salary, JoiningDate: "2023-05-01"})
	require.NoError(t, err)
	require.NotNil(t, created.Salary)
	require.NotNil(t, created.JoiningDate)
	assert.Equal(t, "2023-05-01", *created.JoiningDate)

	packing := "Packing"
	updated, err := f.svc.UpdateStaff(ctxFor(biz), staff.UpdateStaffRequest{ID: created.ID, Category: &packing, ClearSalary: true})
	require.NoError(t, err)
	assert.Equal(t, staff.CategoryCropping, updated.Category)
	assert.Nil(t, updated.Salary)
	assert.Equal(t, "Ali", updated.Name)

	_, err = f.svc.UpdateStaff(ctxFor(otherBiz), staff.UpdateStaffRequest{ID: created.ID, Category: &packing})
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)

	_, err = f.svc.UpdateStaff(ctxFor(biz), staff.UpdateStaffRequest{Category: &packing})
	var ve validator.ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.ToMap(), "id")
}

func TestToggleStaffStatusAndStats(t *testing.T) {
	f := newFixture()
	var ids []string
	for _, name := range []string{"Ali", "Bilal", "Kashif"} {
		resp, err := f.svc.CreateStaff(ctxFor(biz), staff.CreateStaffRequest{Name: name})
		require.NoError(t, err)
		ids = append(ids, resp.ID)
	}
	_, err := f.svc.CreateStaff(ctxFor(otherBiz), staff.CreateStaffRequest{Name: "Other"})
	require.NoError(t, err)

	toggled, err := f.svc.ToggleStaffStatus(ctxFor(biz), ids[1])
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	stats, err := f.svc.StaffStats(ctxFor(biz))
	require.NoError(t, err)
	assert.Equal(t, StatsResponse{Total: 3, Active: 2, Inactive: 1}, stats)

	again, err := f.svc.ToggleStaffStatus(ctxFor(biz), ids[1])
	require.NoError(t, err)
	assert.True(t, again.IsActive)

	_, err = f.svc.ToggleStaffStatus(ctxFor(otherBiz), ids[0])
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
}

func TestListStaff_Paging(t *testing.T) {
	f := newFixture()
	for i := 0; i < 25; i++ {
		_, err := f.svc.CreateStaff(ctxFor(biz), staff.CreateStaffRequest{Name: fmt.Sprintf("Worker %02d", i)})
		require.NoError(t, err)
	}

	first, err := f.svc.ListStaff(ctxFor(biz), staff.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Page)
	assert.Equal(t, 20, first.Limit)
	assert.EqualValues(t, 25, first.TotalCount)
	assert.Equal(t, 2, first.TotalPages)
	assert.Len(t, first.Staff, 20)

	second, err := f.svc.ListStaff(ctxFor(biz), staff.Filter{Page: 2, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, second.Staff, 5)

	active := false
	inactive, err := f.svc.ListStaff(ctxFor(biz), staff.Filter{Active: &active})
	require.NoError(t, err)
	assert.Empty(t, inactive.Staff)
	assert.Equal(t, 0, inactive.TotalPages)
}

func TestDeleteStaff(t *testing.T) {
	f := newFixture()
	created, err := f.svc.CreateStaff(ctxFor(biz), staff.CreateStaffRequest{Name: "Ali"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.DeleteStaff(ctxFor(otherBiz), created.ID), staff.ErrStaffNotFound)
	require.NoError(t, f.svc.DeleteStaff(ctxFor(biz), created.ID))

	_, err = f.svc.GetStaff(ctxFor(biz), created.ID)
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
}

func TestMasterService_RequiresPrincipal(t *testing.T) {
	f := newFixture()
	_, err := f.svc.CreateStaff(context.Background(), staff.CreateStaffRequest{Name: "Ali"})
	assert.Error(t, err)
	assert.Empty(t, f.staff.rows)

	_, err = f.svc.CustomerStats(context.Background())
	assert.Error(t, err)
}

func TestCustomerLifecycle(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateCustomer(ctxFor(biz), customer.CreateCustomerRequest{Name: "Al Noor", Rate: dec("-2")})
	var ve validator.ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.ToMap(), "person")
	assert.Contains(t, ve.ToMap(), "rate")

	created, err := f.svc.CreateCustomer(ctxFor(biz), customer.CreateCustomerRequest{
		Name: "Al Noor", Person: "Imran", Rate: dec("10.5"), OpeningBalance: dec("1000"),
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	_, err = f.svc.CreateCustomer(ctxFor(biz), customer.CreateCustomerRequest{Name: "Al Noor", Person: "Zahid"})
	assert.ErrorIs(t, err, customer.ErrCustomerNameExists)

	rate := dec("12")
	updated, err := f.svc.UpdateCustomer(ctxFor(biz), customer.UpdateCustomerRequest{ID: created.ID, Rate: &rate})
	require.NoError(t, err)
	assert.True(t, rate.Equal(updated.Rate))
	assert.Equal(t, "Imran", updated.Person)
	assert.True(t, dec("1000").Equal(updated.OpeningBalance))

	toggled, err := f.svc.ToggleCustomerStatus(ctxFor(biz), created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	_, err = f.svc.GetCustomer(ctxFor(otherBiz), created.ID)
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
}

func TestSupplierLifecycle(t *testing.T) {
	f := newFixture()

	created, err := f.svc.CreateSupplier(ctxFor(biz), supplier.CreateSupplierRequest{Name: "Thread House", OpeningBalance: dec("250")})
	require.NoError(t, err)

	_, err = f.svc.CreateSupplier(ctxFor(biz), supplier.CreateSupplierRequest{Name: "Thread House"})
	assert.ErrorIs(t, err, supplier.ErrSupplierNameExists)

	_, err = f.svc.CreateSupplier(ctxFor(biz), supplier.CreateSupplierRequest{})
	var ve validator.ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.ToMap(), "name")

	name := "Thread House Ltd"
	updated, err := f.svc.UpdateSupplier(ctxFor(biz), supplier.UpdateSupplierRequest{ID: created.ID, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.True(t, dec("250").Equal(updated.OpeningBalance))

	_, err = f.svc.UpdateSupplier(ctxFor(biz), supplier.UpdateSupplierRequest{Name: &name})
	require.ErrorAs(t, err, &ve)

	require.NoError(t, f.svc.DeleteSupplier(ctxFor(biz), created.ID))
	_, err = f.svc.GetSupplier(ctxFor(biz), created.ID)
	assert.ErrorIs(t, err, supplier.ErrSupplierNotFound)
}
