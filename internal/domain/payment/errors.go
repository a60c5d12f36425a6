package payment

import "errors"

var (
	ErrStaffPaymentNotFound    = errors.New("staff payment not found")
	ErrCustomerPaymentNotFound = errors.New("customer payment not found")
	ErrSupplierPaymentNotFound = errors.New("supplier payment not found")
)
