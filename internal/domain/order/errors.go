package order

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrOrderInvoiced = errors.New("order is already invoiced")
	ErrInvalidUnit   = errors.New("unit must be Dzn or Pcs")
)
