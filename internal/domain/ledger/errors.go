package ledger

import "errors"

var (
	ErrUnknownParty  = errors.New("party must be one of staff, customers, suppliers")
	ErrUnknownFormat = errors.New("format must be one of json, xlsx, pdf")
	ErrInvalidWindow = errors.New("statement start date must not be after end date")
)
