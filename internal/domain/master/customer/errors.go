package customer

import "errors"

var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrCustomerNameExists = errors.New("customer name already exists")
	ErrCustomerInactive   = errors.New("customer is inactive")
)
