package supplier

import "errors"

var (
	ErrSupplierNotFound   = errors.New("supplier not found")
	ErrSupplierNameExists = errors.New("supplier name already exists")
)
