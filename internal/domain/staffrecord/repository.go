package staffrecord

import (
	"context"
)

type RecordRepository interface {
	// Create fails with ErrRecordAlreadyExists when (staff_id, date) is taken.
	Create(ctx context.Context, record StaffRecord) (StaffRecord, error)
	Update(ctx context.Context, record StaffRecord) (StaffRecord, error)
	Delete(ctx context.Context, id string, businessID string) error
	GetByID(ctx context.Context, id string, businessID string) (StaffRecord, error)
	List(ctx context.Context, businessID string, filter RecordFilter) ([]StaffRecord, int64, error)
	GetLastByStaff(ctx context.Context, staffID string, businessID string) (StaffRecord, error)
	Stats(ctx context.Context, businessID string, filter RecordFilter) (Stats, error)
	Months(ctx context.Context, businessID string) ([]string, error)
}
