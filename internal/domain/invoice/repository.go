package invoice

import "context"

type InvoiceRepository interface {
	// NextSequence increments and returns the business's counter for year.
	NextSequence(ctx context.Context, businessID string, year int) (int, error)
	Create(ctx context.Context, inv Invoice) (Invoice, error)
	GetByID(ctx context.Context, id string, businessID string) (Invoice, error)
	List(ctx context.Context, businessID string, filter Filter) ([]Invoice, int64, error)
	Delete(ctx context.Context, id string, businessID string) error

	// AttachOrders links open orders of the customer to the invoice and
	// reports how many rows were claimed.
	AttachOrders(ctx context.Context, inv Invoice) (int64, error)
	ReleaseOrders(ctx context.Context, invoiceID string, businessID string) error

	PriorTotals(ctx context.Context, inv Invoice) (PriorTotals, error)
}
