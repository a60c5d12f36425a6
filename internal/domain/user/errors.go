package user

import "errors"

var (
	ErrAdminPrivilegeRequired  = errors.New("admin privilege required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrBusinessIDRequired      = errors.New("business ID is required")
	ErrUnknownRole             = errors.New("unknown role")
)
