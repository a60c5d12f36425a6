package fixtures

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/customer"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/staff"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/productionconfig"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/service/master"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConfigService struct {
	productionconfig.ConfigService
	seen  []productionconfig.CreateConfigRequest
	taken map[string]bool
	biz   string
}

func (f *fakeConfigService) Create(ctx context.Context, req productionconfig.CreateConfigRequest) (productionconfig.ConfigResponse, error) {
	p, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return productionconfig.ConfigResponse{}, err
	}
	f.biz = p.BusinessID
	if f.taken[req.EffectiveDate] {
		return productionconfig.ConfigResponse{}, productionconfig.ErrEffectiveDateExists
	}
	f.seen = append(f.seen, req)
	return productionconfig.ConfigResponse{ID: "cfg-1"}, nil
}

type fakeMasterService struct {
	master.MasterService
	staffNames map[string]bool
}

func (f *fakeMasterService) CreateStaff(ctx context.Context, req staff.CreateStaffRequest) (staff.StaffResponse, error) {
	if f.staffNames[req.Name] {
		return staff.StaffResponse{}, staff.ErrStaffNameExists
	}
	f.staffNames[req.Name] = true
	return staff.StaffResponse{ID: "staff-" + req.Name, Name: req.Name}, nil
}

func (f *fakeMasterService) CreateCustomer(ctx context.Context, req customer.CreateCustomerRequest) (customer.CustomerResponse, error) {
	return customer.CustomerResponse{ID: "cust-" + req.Name, Name: req.Name}, nil
}

func TestGetDefaultConfig(t *testing.T) {
	req := GetDefaultConfig("2024-01-01")

	require.NoError(t, req.Validate())
	assert.True(t, req.StitchFormulaEnabled)
	assert.Len(t, req.StitchFormulaRules, 4)
	assert.True(t, productionconfig.DefaultAllowance.Equal(*req.Allowance))
}

func TestSeed_DefaultsAndMasters(t *testing.T) {
	cfg := &fakeConfigService{taken: map[string]bool{}}
	ms := &fakeMasterService{staffNames: map[string]bool{}}
	seeder := NewSeeder(cfg, ms)

	ids, err := seeder.Seed(context.Background(), "biz-1", "2024-01-01", SeedData{
		Staff:     []staff.CreateStaffRequest{{Name: "Ali"}, {Name: "Bilal"}},
		Customers: []customer.CreateCustomerRequest{{Name: "Textile Co", Person: "Imran"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "biz-1", cfg.biz)
	assert.Equal(t, "cfg-1", ids.ConfigID)
	require.Len(t, cfg.seen, 1)
	assert.Equal(t, "2024-01-01", cfg.seen[0].EffectiveDate)
	assert.Equal(t, "staff-Ali", ids.StaffIDs["Ali"])
	assert.Equal(t, "cust-Textile Co", ids.CustomerIDs["Textile Co"])
	assert.Empty(t, ids.Skipped)
}

func TestSeed_RerunSkipsExisting(t *testing.T) {
	cfg := &fakeConfigService{taken: map[string]bool{"2024-01-01": true}}
	ms := &fakeMasterService{staffNames: map[string]bool{"Ali": true}}
	seeder := NewSeeder(cfg, ms)

	ids, err := seeder.Seed(context.Background(), "biz-1", "2024-01-01", SeedData{
		Staff: []staff.CreateStaffRequest{{Name: "Ali"}, {Name: "Bilal"}},
	})
	require.NoError(t, err)

	assert.Empty(t, ids.ConfigID)
	assert.ElementsMatch(t, []string{"production_config 2024-01-01", "staff Ali"}, ids.Skipped)
	assert.Equal(t, "staff-Bilal", ids.StaffIDs["Bilal"])
}
