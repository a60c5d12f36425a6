package expense

import "errors"

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrNoValidItems    = errors.New("at least one valid expense item is required")
	ErrItemNotFound    = errors.New("expense item not found")
	ErrItemNameExists  = errors.New("expense item with this name already exists for the type")
)
