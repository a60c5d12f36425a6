package invoice

import "context"

type InvoiceService interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (InvoiceResponse, error)
	GetByID(ctx context.Context, id string) (InvoiceDetailResponse, error)
	List(ctx context.Context, filter Filter) (ListInvoiceResponse, error)
	Delete(ctx context.Context, id string) error
	// OrderGroups lists uninvoiced orders grouped by customer.
	OrderGroups(ctx context.Context, customerName string) ([]OrderGroup, error)
}
