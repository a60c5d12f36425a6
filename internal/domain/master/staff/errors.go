package staff

import "errors"

var (
	ErrStaffNotFound   = errors.New("staff not found")
	ErrStaffNameExists = errors.New("staff name already exists")
	ErrStaffInactive   = errors.New("staff is inactive")
	ErrStaffIneligible = errors.New("staff category is not eligible for production records")
)
