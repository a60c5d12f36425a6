package invoice

import "errors"

var (
	ErrInvoiceNotFound   = errors.New("invoice not found")
	ErrTooManyOrders     = errors.New("maximum 7 orders allowed in one invoice")
	ErrOrdersUnavailable = errors.New("some selected orders are missing, from another customer, or already invoiced")
)
