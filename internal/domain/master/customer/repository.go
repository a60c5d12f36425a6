package customer

import "context"

type CustomerRepository interface {
	Create(ctx context.Context, c Customer) (Customer, error)
	GetByID(ctx context.Context, id string, businessID string) (Customer, error)
	List(ctx context.Context, businessID string, filter Filter) ([]Customer, int64, error)
	Update(ctx context.Context, c Customer) (Customer, error)
	Delete(ctx context.Context, id string, businessID string) error
	ToggleStatus(ctx context.Context, id string, businessID string) (Customer, error)
	Stats(ctx context.Context, businessID string) (Stats, error)
}
