package productionconfig

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/productionconfig"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/validator"
	"github.com/sirupsen/logrus"
)

const module = "productionconfig"

type ConfigServiceImpl struct {
	repo productionconfig.ConfigRepository
	log  *logrus.Logger
}

func NewConfigService(repo productionconfig.ConfigRepository, log *logrus.Logger) productionconfig.ConfigService {
	return &ConfigServiceImpl{repo: repo, log: log}
}

func (s *ConfigServiceImpl) Create(ctx context.Context, req productionconfig.CreateConfigRequest) (productionconfig.ConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return productionconfig.ConfigResponse{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return productionconfig.ConfigResponse{}, err
	}

	created, err := s.repo.Create(ctx, req.ToEntity(principal.BusinessID))
	if err != nil {
		if !errors.Is(err, productionconfig.ErrEffectiveDateExists) {
			logger.LogError(s.log, module, "Create", "insert config", req.EffectiveDate, err)
		}
		return productionconfig.ConfigResponse{}, err
	}
	return productionconfig.ToResponse(created), nil
}

func (s *ConfigServiceImpl) Update(ctx context.Context, req productionconfig.UpdateConfigRequest) (productionconfig.ConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return productionconfig.ConfigResponse{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return productionconfig.ConfigResponse{}, err
	}

	current, err := s.repo.GetByID(ctx, req.ID, principal.BusinessID)
	if err != nil {
		return productionconfig.ConfigResponse{}, err
	}

	updated, err := s.repo.Update(ctx, req.Apply(current))
	if err != nil {
		if !errors.Is(err, productionconfig.ErrEffectiveDateExists) && !errors.Is(err, productionconfig.ErrConfigNotFound) {
			logger.LogError(s.log, module, "Update", "update config", req.ID, err)
		}
		return productionconfig.ConfigResponse{}, err
	}
	return productionconfig.ToResponse(updated), nil
}

func (s *ConfigServiceImpl) Delete(ctx context.Context, id string) error {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, id, principal.BusinessID)
}

func (s *ConfigServiceImpl) GetByID(ctx context.Context, id string) (productionconfig.ConfigResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return productionconfig.ConfigResponse{}, err
	}
	cfg, err := s.repo.GetByID(ctx, id, principal.BusinessID)
	if err != nil {
		return productionconfig.ConfigResponse{}, err
	}
	return productionconfig.ToResponse(cfg), nil
}

func (s *ConfigServiceImpl) List(ctx context.Context) ([]productionconfig.ConfigResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}
	configs, err := s.repo.List(ctx, principal.BusinessID)
	if err != nil {
		logger.LogError(s.log, module, "List", "list configs", principal.BusinessID, err)
		return nil, err
	}

	current, hasCurrent := productionconfig.Resolve(configs, time.Now().UTC())
	responses := make([]productionconfig.ConfigResponse, 0, len(configs))
	for _, c := range configs {
		resp := productionconfig.ToResponse(c)
		resp.IsCurrent = hasCurrent && c.ID == current.ID
		responses = append(responses, resp)
	}
	return responses, nil
}

// GetEffective returns an empty config instead of an error when the business
// has none.
func (s *ConfigServiceImpl) GetEffective(ctx context.Context, date string) (productionconfig.ConfigResponse, error) {
	asOf := time.Now().UTC()
	if date != "" {
		parsed, ok := validator.IsValidDate(date)
		if !ok {
			return productionconfig.ConfigResponse{}, validator.ValidationErrors{{Field: "date", Message: "must be in YYYY-MM-DD format"}}
		}
		asOf = parsed
	}

	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return productionconfig.ConfigResponse{}, err
	}

	cfg, err := s.ResolveForDate(ctx, principal.BusinessID, asOf)
	if err != nil {
		if errors.Is(err, productionconfig.ErrNoConfigForBusiness) {
			return productionconfig.ToResponse(productionconfig.Config{}), nil
		}
		return productionconfig.ConfigResponse{}, err
	}
	return productionconfig.ToResponse(cfg), nil
}

// ResolveForDate picks the version effective on date, falling back to the
// earliest version when all of them start later.
func (s *ConfigServiceImpl) ResolveForDate(ctx context.Context, businessID string, date time.Time) (productionconfig.Config, error) {
	cfg, err := s.repo.FindEffective(ctx, businessID, date)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, productionconfig.ErrConfigNotFound) {
		logger.LogError(s.log, module, "ResolveForDate", "find effective config", date.Format(validator.DateLayout), err)
		return productionconfig.Config{}, err
	}

	cfg, err = s.repo.FindEarliest(ctx, businessID)
	if err != nil {
		if errors.Is(err, productionconfig.ErrConfigNotFound) {
			return productionconfig.Config{}, productionconfig.ErrNoConfigForBusiness
		}
		logger.LogError(s.log, module, "ResolveForDate", "find earliest config", businessID, err)
		return productionconfig.Config{}, err
	}
	return cfg, nil
}
