package staffrecord

import "errors"

var (
	ErrRecordNotFound      = errors.New("staff record not found")
	ErrRecordAlreadyExists = errors.New("a record already exists for this staff and date, use update instead")
	ErrInvalidAttendance   = errors.New("attendance must be one of: Day, Night, Half, Absent, Off, Close, Sunday")
)
