package productionconfig

import (
	"context"
	"time"
)

// ConfigRepository is scoped by business on every call.
type ConfigRepository interface {
	Create(ctx context.Context, cfg Config) (Config, error)
	Update(ctx context.Context, cfg Config) (Config, error)
	Delete(ctx context.Context, id string, businessID string) error
	GetByID(ctx context.Context, id string, businessID string) (Config, error)
	List(ctx context.Context, businessID string) ([]Config, error)

	// FindEffective returns the newest version with effective_date <= date,
	// ordered by (effective_date DESC, created_at DESC).
	FindEffective(ctx context.Context, businessID string, date time.Time) (Config, error)
	// FindEarliest returns the version with the oldest effective_date.
	FindEarliest(ctx context.Context, businessID string) (Config, error)
}
