package staff

import "context"

type StaffRepository interface {
	Create(ctx context.Context, s Staff) (Staff, error)
	GetByID(ctx context.Context, id string, businessID string) (Staff, error)
	List(ctx context.Context, businessID string, filter Filter) ([]Staff, int64, error)
	Update(ctx context.Context, s Staff) (Staff, error)
	Delete(ctx context.Context, id string, businessID string) error
	ToggleStatus(ctx context.Context, id string, businessID string) (Staff, error)
	Stats(ctx context.Context, businessID string) (Stats, error)
}
