package order

import "context"

type OrderRepository interface {
	Create(ctx context.Context, o Order) (Order, error)
	Update(ctx context.Context, o Order) (Order, error)
	// Delete refuses invoiced orders with ErrOrderInvoiced.
	Delete(ctx context.Context, id string, businessID string) error
	GetByID(ctx context.Context, id string, businessID string) (Order, error)
	GetByIDs(ctx context.Context, ids []string, businessID string) ([]Order, error)
	// ListUninvoiced returns open orders, newest first, optionally filtered by
	// customer name.
	ListUninvoiced(ctx context.Context, businessID string, customerName string) ([]Order, error)
	List(ctx context.Context, businessID string, filter Filter) ([]Order, int64, error)
	Stats(ctx context.Context, businessID string, filter Filter) (Stats, error)
}
