package staffrecord

import "context"

type RecordService interface {
	Create(ctx context.Context, req CreateRecordRequest) (RecordResponse, error)
	Update(ctx context.Context, req UpdateRecordRequest) (RecordResponse, error)
	// Preview runs the same validation and computation as Create without
	// persisting anything.
	Preview(ctx context.Context, req CreateRecordRequest) (RecordResponse, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (RecordResponse, error)
	List(ctx context.Context, filter RecordFilter) (ListRecordResponse, error)
	GetLast(ctx context.Context, staffID string) (RecordResponse, error)
	Stats(ctx context.Context, filter RecordFilter) (StatsResponse, error)
	Months(ctx context.Context) ([]string, error)
	SlipPDF(ctx context.Context, id string) ([]byte, string, error)
}
