package supplier

import "context"

type SupplierRepository interface {
	Create(ctx context.Context, s Supplier) (Supplier, error)
	GetByID(ctx context.Context, id string, businessID string) (Supplier, error)
	List(ctx context.Context, businessID string, filter Filter) ([]Supplier, int64, error)
	Update(ctx context.Context, s Supplier) (Supplier, error)
	Delete(ctx context.Context, id string, businessID string) error
	ToggleStatus(ctx context.Context, id string, businessID string) (Supplier, error)
	Stats(ctx context.Context, businessID string) (Stats, error)
}
