// Package fixtures seeds the starting data a new business needs before
// daily records can be entered.
package fixtures

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/customer"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/staff"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/supplier"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/productionconfig"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/formula"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/service/master"
)

// ==========================================
// SEED INPUT
// ==========================================

// SeedData is the JSON seed file layout. A nil ProductionConfig seeds
// GetDefaultConfig.
type SeedData struct {
	ProductionConfig *productionconfig.CreateConfigRequest `json:"production_config"`
	Staff            []staff.CreateStaffRequest            `json:"staff"`
	Customers        []customer.CreateCustomerRequest      `json:"customers"`
	Suppliers        []supplier.CreateSupplierRequest      `json:"suppliers"`
}

// ==========================================
// SEEDED DATA RESULT
// ==========================================

// SeededDataIDs holds IDs of everything created by a seed run. Entries that
// already existed are listed in Skipped.
type SeededDataIDs struct {
	ConfigID    string
	StaffIDs    map[string]string // name -> id
	CustomerIDs map[string]string
	SupplierIDs map[string]string
	Skipped     []string
}

func NewSeededDataIDs() *SeededDataIDs {
	return &SeededDataIDs{
		StaffIDs:    make(map[string]string),
		CustomerIDs: make(map[string]string),
		SupplierIDs: make(map[string]string),
	}
}

// ==========================================
// DEFAULT PRODUCTION CONFIG
// ==========================================

// GetDefaultConfig returns the starter configuration: zero rates for the
// owner to fill in and the default stitch formula curve switched on.
func GetDefaultConfig(effectiveDate string) productionconfig.CreateConfigRequest {
	allowance := productionconfig.DefaultAllowance
	bonusRate := productionconfig.DefaultBonusRate
	return productionconfig.CreateConfigRequest{
		Allowance:            &allowance,
		BonusRate:            &bonusRate,
		StitchFormulaEnabled: true,
		StitchFormulaRules:   formula.DefaultRules(),
		EffectiveDate:        effectiveDate,
	}
}

// ==========================================
// SEEDER
// ==========================================

type Seeder struct {
	configService productionconfig.ConfigService
	masterService master.MasterService
}

func NewSeeder(configService productionconfig.ConfigService, masterService master.MasterService) *Seeder {
	return &Seeder{configService: configService, masterService: masterService}
}

// Seed runs as an admin of businessID. It is safe to re-run: duplicates are
// skipped rather than failing the run.
func (s *Seeder) Seed(ctx context.Context, businessID, effectiveDate string, data SeedData) (*SeededDataIDs, error) {
	ctx = jwt.ContextWithPrincipal(ctx, user.Principal{UserID: "seed", BusinessID: businessID, Role: user.RoleAdmin})
	ids := NewSeededDataIDs()

	cfgReq := GetDefaultConfig(effectiveDate)
	if data.ProductionConfig != nil {
		cfgReq = *data.ProductionConfig
	}
	cfg, err := s.configService.Create(ctx, cfgReq)
	switch {
	case errors.Is(err, productionconfig.ErrEffectiveDateExists):
		ids.Skipped = append(ids.Skipped, "production_config "+cfgReq.EffectiveDate)
	case err != nil:
		return nil, fmt.Errorf("failed to seed production config: %w", err)
	default:
		ids.ConfigID = cfg.ID
	}

	for _, req := range data.Staff {
		created, err := s.masterService.CreateStaff(ctx, req)
		if errors.Is(err, staff.ErrStaffNameExists) {
			ids.Skipped = append(ids.Skipped, "staff "+req.Name)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to seed staff %q: %w", req.Name, err)
		}
		ids.StaffIDs[created.Name] = created.ID
	}

	for _, req := range data.Customers {
		created, err := s.masterService.CreateCustomer(ctx, req)
		if errors.Is(err, customer.ErrCustomerNameExists) {
			ids.Skipped = append(ids.Skipped, "customer "+req.Name)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to seed customer %q: %w", req.Name, err)
		}
		ids.CustomerIDs[created.Name] = created.ID
	}

	for _, req := range data.Suppliers {
		created, err := s.masterService.CreateSupplier(ctx, req)
		if errors.Is(err, supplier.ErrSupplierNameExists) {
			ids.Skipped = append(ids.Skipped, "supplier "+req.Name)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to seed supplier %q: %w", req.Name, err)
		}
		ids.SupplierIDs[created.Name] = created.ID
	}

	return ids, nil
}
