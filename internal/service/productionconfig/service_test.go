package productionconfig

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/productionconfig"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConfigRepo struct {
	configs []productionconfig.Config
	seq     int
}

func (f *fakeConfigRepo) Create(_ context.Context, cfg productionconfig.Config) (productionconfig.Config, error) {
	for _, c := range f.configs {
		if c.BusinessID == cfg.BusinessID && c.EffectiveDate.Equal(cfg.EffectiveDate) {
			return productionconfig.Config{}, productionconfig.ErrEffectiveDateExists
		}
	}
	f.seq++
	cfg.ID = "cfg-" + string(rune('0'+f.seq))
	cfg.CreatedAt = time.Date(2024, 1, 1, 0, 0, f.seq, 0, time.UTC)
	f.configs = append(f.configs, cfg)
	return cfg, nil
}

func (f *fakeConfigRepo) Update(_ context.Context, cfg productionconfig.Config) (productionconfig.Config, error) {
	for i, c := range f.configs {
		if c.ID == cfg.ID {
			f.configs[i] = cfg
			return cfg, nil
		}
	}
	return productionconfig.Config{}, productionconfig.ErrConfigNotFound
}

func (f *fakeConfigRepo) Delete(_ context.Context, id, businessID string) error {
	for i, c := range f.configs {
		if c.ID == id && c.BusinessID == businessID {
			f.configs = append(f.configs[:i], f.configs[i+1:]...)
			return nil
		}
	}
	return productionconfig.ErrConfigNotFound
}

func (f *fakeConfigRepo) GetByID(_ context.Context, id, businessID string) (productionconfig.Config, error) {
	for _, c := range f.configs {
		if c.ID == id && c.BusinessID == businessID {
			return c, nil
		}
	}
	return productionconfig.Config{}, productionconfig.ErrConfigNotFound
}

func (f *fakeConfigRepo) List(_ context.Context, businessID string) ([]productionconfig.Config, error) {
	var out []productionconfig.Config
	for _, c := range f.configs {
		if c.BusinessID == businessID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EffectiveDate.After(out[j].EffectiveDate) })
	return out, nil
}

func (f *fakeConfigRepo) FindEffective(ctx context.Context, businessID string, date time.Time) (productionconfig.Config, error) {
	all, _ := f.List(ctx, businessID)
	var eligible []productionconfig.Config
	for _, c := range all {
		if !c.EffectiveDate.After(date) {
			eligible = append(eligible, c)
		}
	}
	if cfg, ok := productionconfig.Resolve(eligible, date); ok {
		return cfg, nil
	}
	return productionconfig.Config{}, productionconfig.ErrConfigNotFound
}

func (f *fakeConfigRepo) FindEarliest(ctx context.Context, businessID string) (productionconfig.Config, error) {
	all, _ := f.List(ctx, businessID)
	if len(all) == 0 {
		return productionconfig.Config{}, productionconfig.ErrConfigNotFound
	}
	return all[len(all)-1], nil
}

func adminCtx() context.Context {
	return jwt.ContextWithPrincipal(context.Background(), user.Principal{UserID: "u1", BusinessID: "biz", Role: user.RoleAdmin})
}

func newService() (productionconfig.ConfigService, *fakeConfigRepo) {
	repo := &fakeConfigRepo{}
	return NewConfigService(repo, logger.Discard()), repo
}

func TestCreate_DuplicateEffectiveDate(t *testing.T) {
	svc, _ := newService()
	ctx := adminCtx()

	_, err := svc.Create(ctx, productionconfig.CreateConfigRequest{EffectiveDate: "2024-01-01"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, productionconfig.CreateConfigRequest{EffectiveDate: "2024-01-01"})
	assert.ErrorIs(t, err, productionconfig.ErrEffectiveDateExists)
}

func TestResolveForDate(t *testing.T) {
	svc, _ := newService()
	ctx := adminCtx()

	jan, err := svc.Create(ctx, productionconfig.CreateConfigRequest{EffectiveDate: "2024-01-01", StitchRate: decimal.NewFromInt(1)})
	require.NoError(t, err)
	jun, err := svc.Create(ctx, productionconfig.CreateConfigRequest{EffectiveDate: "2024-06-01", StitchRate: decimal.NewFromInt(2)})
	require.NoError(t, err)

	cfg, err := svc.ResolveForDate(ctx, "biz", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, jan.ID, cfg.ID)

	cfg, err = svc.ResolveForDate(ctx, "biz", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, jun.ID, cfg.ID)

	cfg, err = svc.ResolveForDate(ctx, "biz", time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, jan.ID, cfg.ID, "dates before every version fall back to the earliest")
}

func TestResolveForDate_NoConfig(t *testing.T) {
	svc, _ := newService()

	_, err := svc.ResolveForDate(adminCtx(), "biz", time.Now())
	assert.ErrorIs(t, err, productionconfig.ErrNoConfigForBusiness)
}

func TestGetEffective_DegradesToEmpty(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.GetEffective(adminCtx(), "2024-01-01")
	require.NoError(t, err)
	assert.Empty(t, resp.ID)
	assert.NotNil(t, resp.StitchFormulaRules)
}

func TestGetEffective_InvalidDate(t *testing.T) {
	svc, _ := newService()

	_, err := svc.GetEffective(adminCtx(), "01/02/2024")
	assert.Error(t, err)
}

func TestUpdate_MergesPatch(t *testing.T) {
	svc, _ := newService()
	ctx := adminCtx()

	created, err := svc.Create(ctx, productionconfig.CreateConfigRequest{
		EffectiveDate: "2024-01-01",
		StitchRate:    decimal.RequireFromString("0.5"),
		TargetAmount:  decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	target := decimal.NewFromInt(1200)
	updated, err := svc.Update(ctx, productionconfig.UpdateConfigRequest{ID: created.ID, TargetAmount: &target})
	require.NoError(t, err)
	assert.Equal(t, "1200", updated.TargetAmount.String())
	assert.Equal(t, "0.5", updated.StitchRate.String())
}

func TestList_ScopedByBusiness(t *testing.T) {
	svc, repo := newService()
	repo.configs = append(repo.configs, productionconfig.Config{ID: "other", BusinessID: "other-biz", EffectiveDate: time.Now()})

	_, err := svc.Create(adminCtx(), productionconfig.CreateConfigRequest{EffectiveDate: "2024-01-01"})
	require.NoError(t, err)

	list, err := svc.List(adminCtx())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestList_FlagsVersionInForce(t *testing.T) {
	svc, _ := newService()
	ctx := adminCtx()

	past, err := svc.Create(ctx, productionconfig.CreateConfigRequest{EffectiveDate: "2020-01-01"})
	require.NoError(t, err)
	latest, err := svc.Create(ctx, productionconfig.CreateConfigRequest{EffectiveDate: "2021-06-01"})
	require.NoError(t, err)
	future, err := svc.Create(ctx, productionconfig.CreateConfigRequest{EffectiveDate: "2999-01-01"})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	current := map[string]bool{}
	for _, c := range list {
		current[c.ID] = c.IsCurrent
	}
	assert.False(t, current[past.ID])
	assert.True(t, current[latest.ID])
	assert.False(t, current[future.ID])
}

func TestList_OnlyFutureVersionIsCurrent(t *testing.T) {
	svc, _ := newService()
	ctx := adminCtx()

	future, err := svc.Create(ctx, productionconfig.CreateConfigRequest{EffectiveDate: "2999-01-01"})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, future.ID, list[0].ID)
	assert.True(t, list[0].IsCurrent, "the earliest version applies when none has started yet")
}
