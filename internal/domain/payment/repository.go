package payment

import "context"

type StaffPaymentRepository interface {
	Create(ctx context.Context, p StaffPayment) (StaffPayment, error)
	Update(ctx context.Context, p StaffPayment) (StaffPayment, error)
	Delete(ctx context.Context, id string, businessID string) error
	GetByID(ctx context.Context, id string, businessID string) (StaffPayment, error)
	List(ctx context.Context, businessID string, filter Filter) ([]StaffPayment, int64, error)
	Stats(ctx context.Context, businessID string, filter Filter) (Stats, error)
	Months(ctx context.Context, businessID string) ([]string, error)
}

type CustomerPaymentRepository interface {
	Create(ctx context.Context, p CustomerPayment) (CustomerPayment, error)
	Update(ctx context.Context, p CustomerPayment) (CustomerPayment, error)
	Delete(ctx context.Context, id string, businessID string) error
	GetByID(ctx context.Context, id string, businessID string) (CustomerPayment, error)
	List(ctx context.Context, businessID string, filter Filter) ([]CustomerPayment, int64, error)
	Stats(ctx context.Context, businessID string, filter Filter) (Stats, error)
	Months(ctx context.Context, businessID string) ([]string, error)
}

type SupplierPaymentRepository interface {
	Create(ctx context.Context, p SupplierPayment) (SupplierPayment, error)
	Update(ctx context.Context, p SupplierPayment) (SupplierPayment, error)
	Delete(ctx context.Context, id string, businessID string) error
	GetByID(ctx context.Context, id string, businessID string) (SupplierPayment, error)
	List(ctx context.Context, businessID string, filter Filter) ([]SupplierPayment, int64, error)
	Stats(ctx context.Context, businessID string, filter Filter) (Stats, error)
	Months(ctx context.Context, businessID string) ([]string, error)
}
