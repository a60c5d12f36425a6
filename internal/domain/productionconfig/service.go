package productionconfig

import (
	"context"
	"time"
)

type ConfigService interface {
	Resolver

	Create(ctx context.Context, req CreateConfigRequest) (ConfigResponse, error)
	Update(ctx context.Context, req UpdateConfigRequest) (ConfigResponse, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (ConfigResponse, error)
	List(ctx context.Context) ([]ConfigResponse, error)

	// GetEffective is the read path: an empty response when nothing exists.
	GetEffective(ctx context.Context, date string) (ConfigResponse, error)
}

// Resolver is what the record builder and order pricing depend on.
type Resolver interface {
	// ResolveForDate returns ErrNoConfigForBusiness when the business has no
	// configuration at all.
	ResolveForDate(ctx context.Context, businessID string, date time.Time) (Config, error)
}
