package order

import "context"

type OrderService interface {
	Create(ctx context.Context, req CreateOrderRequest) (OrderResponse, error)
	Update(ctx context.Context, req UpdateOrderRequest) (OrderResponse, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (OrderResponse, error)
	List(ctx context.Context, filter Filter) (ListOrderResponse, error)
	Stats(ctx context.Context, filter Filter) (Stats, error)
	// Preview prices inputs without touching storage.
	Preview(ctx context.Context, req PreviewRequest) (Pricing, error)
}
