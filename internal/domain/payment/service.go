package payment

import "context"

type PaymentService interface {
	CreateStaffPayment(ctx context.Context, req StaffPaymentRequest) (StaffPaymentResponse, error)
	UpdateStaffPayment(ctx context.Context, req StaffPaymentRequest) (StaffPaymentResponse, error)
	DeleteStaffPayment(ctx context.Context, id string) error
	GetStaffPayment(ctx context.Context, id string) (StaffPaymentResponse, error)
	ListStaffPayments(ctx context.Context, filter Filter) (ListStaffPaymentResponse, error)
	StaffPaymentStats(ctx context.Context, filter Filter) (Stats, error)
	StaffPaymentMonths(ctx context.Context) ([]string, error)

	CreateCustomerPayment(ctx context.Context, req CustomerPaymentRequest) (CustomerPaymentResponse, error)
	UpdateCustomerPayment(ctx context.Context, req CustomerPaymentRequest) (CustomerPaymentResponse, error)
	DeleteCustomerPayment(ctx context.Context, id string) error
	GetCustomerPayment(ctx context.Context, id string) (CustomerPaymentResponse, error)
	ListCustomerPayments(ctx context.Context, filter Filter) (ListCustomerPaymentResponse, error)
	CustomerPaymentStats(ctx context.Context, filter Filter) (Stats, error)
	CustomerPaymentMonths(ctx context.Context) ([]string, error)

	CreateSupplierPayment(ctx context.Context, req SupplierPaymentRequest) (SupplierPaymentResponse, error)
	UpdateSupplierPayment(ctx context.Context, req SupplierPaymentRequest) (SupplierPaymentResponse, error)
	DeleteSupplierPayment(ctx context.Context, id string) error
	GetSupplierPayment(ctx context.Context, id string) (SupplierPaymentResponse, error)
	ListSupplierPayments(ctx context.Context, filter Filter) (ListSupplierPaymentResponse, error)
	SupplierPaymentStats(ctx context.Context, filter Filter) (Stats, error)
	SupplierPaymentMonths(ctx context.Context) ([]string, error)
}
