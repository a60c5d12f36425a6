package payment

import (
	"context"
	"errors"
	"math"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/customer"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/staff"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/supplier"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/logger"
	"github.com/sirupsen/logrus"
)

const module = "payment"

type PaymentServiceImpl struct {
	staffRepo           staff.StaffRepository
	customerRepo        customer.CustomerRepository
	supplierRepo        supplier.SupplierRepository
	staffPaymentRepo    payment.StaffPaymentRepository
	customerPaymentRepo payment.CustomerPaymentRepository
	supplierPaymentRepo payment.SupplierPaymentRepository
	log                 *logrus.Logger
}

func NewPaymentService(
	staffRepo staff.StaffRepository,
	customerRepo customer.CustomerRepository,
	supplierRepo supplier.SupplierRepository,
	staffPaymentRepo payment.StaffPaymentRepository,
	customerPaymentRepo payment.CustomerPaymentRepository,
	supplierPaymentRepo payment.SupplierPaymentRepository,
	log *logrus.Logger,
) payment.PaymentService {
	return &PaymentServiceImpl{
		staffRepo:           staffRepo,
		customerRepo:        customerRepo,
		supplierRepo:        supplierRepo,
		staffPaymentRepo:    staffPaymentRepo,
		customerPaymentRepo: customerPaymentRepo,
		supplierPaymentRepo: supplierPaymentRepo,
		log:                 log,
	}
}

func pageDefaults(f *payment.Filter) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
}

func totalPages(total int64, limit int) int {
	return int(math.Ceil(float64(total) / float64(limit)))
}

func nonNilMonths(months []string) []string {
	if months == nil {
		return []string{}
	}
	return months
}

// ==================== STAFF ====================

func (s *PaymentServiceImpl) saveStaffPayment(ctx context.Context, req payment.StaffPaymentRequest, update bool) (payment.StaffPaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return payment.StaffPaymentResponse{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return payment.StaffPaymentResponse{}, err
	}

	member, err := s.staffRepo.GetByID(ctx, req.StaffID, principal.BusinessID)
	if err != nil {
		return payment.StaffPaymentResponse{}, err
	}

	p := req.ToEntity(principal.BusinessID)
	var saved payment.StaffPayment
	if update {
		saved, err = s.staffPaymentRepo.Update(ctx, p)
	} else {
		saved, err = s.staffPaymentRepo.Create(ctx, p)
	}
	if err != nil {
		if !errors.Is(err, payment.ErrStaffPaymentNotFound) {
			logger.LogError(s.log, module, "saveStaffPayment", "persist staff payment", req, err)
		}
		return payment.StaffPaymentResponse{}, err
	}
	saved.StaffName = member.Name
	return payment.ToStaffPaymentResponse(saved), nil
}

func (s *PaymentServiceImpl) CreateStaffPayment(ctx context.Context, req payment.StaffPaymentRequest) (payment.StaffPaymentResponse, error) {
	return s.saveStaffPayment(ctx, req, false)
}

func (s *PaymentServiceImpl) UpdateStaffPayment(ctx context.Context, req payment.StaffPaymentRequest) (payment.StaffPaymentResponse, error) {
	return s.saveStaffPayment(ctx, req, true)
}

func (s *PaymentServiceImpl) DeleteStaffPayment(ctx context.Context, id string) error {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return err
	}
	return s.staffPaymentRepo.Delete(ctx, id, principal.BusinessID)
}

func (s *PaymentServiceImpl) GetStaffPayment(ctx context.Context, id string) (payment.StaffPaymentResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return payment.StaffPaymentResponse{}, err
	}
	p, err := s.staffPaymentRepo.GetByID(ctx, id, principal.BusinessID)
	if err != nil {
		return payment.StaffPaymentResponse{}, err
	}
	return payment.ToStaffPaymentResponse(p), nil
}

func (s *PaymentServiceImpl) ListStaffPayments(ctx context.Context, filter payment.Filter) (payment.ListStaffPaymentResponse, error) {
	if err := filter.Validate(); err != nil {
		return payment.ListStaffPaymentResponse{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return payment.ListStaffPaymentResponse{}, err
	}
	pageDefaults(&filter)

	list, total, err := s.staffPaymentRepo.List(ctx, principal.BusinessID, filter)
	if err != nil {
		logger.LogError(s.log, module, "ListStaffPayments", "list staff payments", filter, err)
		return payment.ListStaffPaymentResponse{}, err
	}
	responses := make([]payment.StaffPaymentResponse, 0, len(list))
	for _, p := range list {
		responses = append(responses, payment.ToStaffPaymentResponse(p))
	}
	return payment.ListStaffPaymentResponse{
		Payments:   responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *PaymentServiceImpl) StaffPaymentStats(ctx context.Context, filter payment.Filter) (payment.Stats, error) {
	if err := filter.Validate(); err != nil {
		return payment.Stats{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return payment.Stats{}, err
	}
	stats, err := s.staffPaymentRepo.Stats(ctx, principal.BusinessID, filter)
	if err != nil {
		logger.LogError(s.log, module, "StaffPaymentStats", "aggregate staff payments", filter, err)
		return payment.Stats{}, err
	}
	return stats, nil
}

func (s *PaymentServiceImpl) StaffPaymentMonths(ctx context.Context) ([]string, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}
	months, err := s.staffPaymentRepo.Months(ctx, principal.BusinessID)
	if err != nil {
		logger.LogError(s.log, module, "StaffPaymentMonths", "list staff payment months", principal.BusinessID, err)
		return nil, err
	}
	return nonNilMonths(months), nil
}

// ==================== CUSTOMER ====================

func (s *PaymentServiceImpl) saveCustomerPayment(ctx context.Context, req payment.CustomerPaymentRequest, update bool) (payment.CustomerPaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return payment.CustomerPaymentResponse{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return payment.CustomerPaymentResponse{}, err
	}

	c, err := s.customerRepo.GetByID(ctx, req.CustomerID, principal.BusinessID)
	if err != nil {
		return payment.CustomerPaymentResponse{}, err
	}

	p := req.ToEntity(principal.BusinessID)
	var saved payment.CustomerPayment
	if update {
		saved, err = s.customerPaymentRepo.Update(ctx, p)
	} else {
		saved, err = s.customerPaymentRepo.Create(ctx, p)
	}
	if err != nil {
		if !errors.Is(err, payment.ErrCustomerPaymentNotFound) {
			logger.LogError(s.log, module, "saveCustomerPayment", "persist customer payment", req, err)
		}
		return payment.CustomerPaymentResponse{}, err
	}
	saved.CustomerName = c.Name
	return payment.ToCustomerPaymentResponse(saved), nil
}

func (s *PaymentServiceImpl) CreateCustomerPayment(ctx context.Context, req payment.CustomerPaymentRequest) (payment.CustomerPaymentResponse, error) {
	return s.saveCustomerPayment(ctx, req, false)
}

func (s *PaymentServiceImpl) UpdateCustomerPayment(ctx context.Context, req payment.CustomerPaymentRequest) (payment.CustomerPaymentResponse, error) {
	return s.saveCustomerPayment(ctx, req, true)
}

func (s *PaymentServiceImpl) DeleteCustomerPayment(ctx context.Context, id string) error {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return err
	}
	return s.customerPaymentRepo.Delete(ctx, id, principal.BusinessID)
}

func (s *PaymentServiceImpl) GetCustomerPayment(ctx context.Context, id string) (payment.CustomerPaymentResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return payment.CustomerPaymentResponse{}, err
	}
	p, err := s.customerPaymentRepo.GetByID(ctx, id, principal.BusinessID)
	if err != nil {
		return payment.CustomerPaymentResponse{}, err
	}
	return payment.ToCustomerPaymentResponse(p), nil
}

func (s *PaymentServiceImpl) ListCustomerPayments(ctx context.Context, filter payment.Filter) (payment.ListCustomerPaymentResponse, error) {
	if err := filter.Validate(); err != nil {
		return payment.ListCustomerPaymentResponse{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return payment.ListCustomerPaymentResponse{}, err
	}
	pageDefaults(&filter)

	list, total, err := s.customerPaymentRepo.List(ctx, principal.BusinessID, filter)
	if err != nil {
		logger.LogError(s.log, module, "ListCustomerPayments", "list customer payments", filter, err)
		return payment.ListCustomerPaymentResponse{}, err
	}
	responses := make([]payment.CustomerPaymentResponse, 0, len(list))
	for _, p := range list {
		responses = append(responses, payment.ToCustomerPaymentResponse(p))
	}
	return payment.ListCustomerPaymentResponse{
		Payments:   responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *PaymentServiceImpl) CustomerPaymentStats(ctx context.Context, filter payment.Filter) (payment.Stats, error) {
	if err := filter.Validate(); err != nil {
		return payment.Stats{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return payment.Stats{}, err
	}
	stats, err := s.customerPaymentRepo.Stats(ctx, principal.BusinessID, filter)
	if err != nil {
		logger.LogError(s.log, module, "CustomerPaymentStats", "aggregate customer payments", filter, err)
		return payment.Stats{}, err
	}
	return stats, nil
}

func (s *PaymentServiceImpl) CustomerPaymentMonths(ctx context.Context) ([]string, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}
	months, err := s.customerPaymentRepo.Months(ctx, principal.BusinessID)
	if err != nil {
		logger.LogError(s.log, module, "CustomerPaymentMonths", "list customer payment months", principal.BusinessID, err)
		return nil, err
	}
	return nonNilMonths(months), nil
}

// ==================== SUPPLIER ====================

func (s *PaymentServiceImpl) saveSupplierPayment(ctx context.Context, req payment.SupplierPaymentRequest, update bool) (payment.SupplierPaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return payment.SupplierPaymentResponse{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return payment.SupplierPaymentResponse{}, err
	}

	sup, err := s.supplierRepo.GetByID(ctx, req.SupplierID, principal.BusinessID)
	if err != nil {
		return payment.SupplierPaymentResponse{}, err
	}

	p := req.ToEntity(principal.BusinessID)
	var saved payment.SupplierPayment
	if update {
		saved, err = s.supplierPaymentRepo.Update(ctx, p)
	} else {
		saved, err = s.supplierPaymentRepo.Create(ctx, p)
	}
	if err != nil {
		if !errors.Is(err, payment.ErrSupplierPaymentNotFound) {
			logger.LogError(s.log, module, "saveSupplierPayment", "persist supplier payment", req, err)
		}
		return payment.SupplierPaymentResponse{}, err
	}
	saved.SupplierName = sup.Name
	return payment.ToSupplierPaymentResponse(saved), nil
}

func (s *PaymentServiceImpl) CreateSupplierPayment(ctx context.Context, req payment.SupplierPaymentRequest) (payment.SupplierPaymentResponse, error) {
	return s.saveSupplierPayment(ctx, req, false)
}

func (s *PaymentServiceImpl) UpdateSupplierPayment(ctx context.Context, req payment.SupplierPaymentRequest) (payment.SupplierPaymentResponse, error) {
	return s.saveSupplierPayment(ctx, req, true)
}

func (s *PaymentServiceImpl) DeleteSupplierPayment(ctx context.Context, id string) error {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return err
	}
	return s.supplierPaymentRepo.Delete(ctx, id, principal.BusinessID)
}

func (s *PaymentServiceImpl) GetSupplierPayment(ctx context.Context, id string) (payment.SupplierPaymentResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return payment.SupplierPaymentResponse{}, err
	}
	p, err := s.supplierPaymentRepo.GetByID(ctx, id, principal.BusinessID)
	if err != nil {
		return payment.SupplierPaymentResponse{}, err
	}
	return payment.ToSupplierPaymentResponse(p), nil
}

func (s *PaymentServiceImpl) ListSupplierPayments(ctx context.Context, filter payment.Filter) (payment.ListSupplierPaymentResponse, error) {
	if err := filter.Validate(); err != nil {
		return payment.ListSupplierPaymentResponse{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return payment.ListSupplierPaymentResponse{}, err
	}
	pageDefaults(&filter)

	list, total, err := s.supplierPaymentRepo.List(ctx, principal.BusinessID, filter)
	if err != nil {
		logger.LogError(s.log, module, "ListSupplierPayments", "list supplier payments", filter, err)
		return payment.ListSupplierPaymentResponse{}, err
	}
	responses := make([]payment.SupplierPaymentResponse, 0, len(list))
	for _, p := range list {
		responses = append(responses, payment.ToSupplierPaymentResponse(p))
	}
	return payment.ListSupplierPaymentResponse{
		Payments:   responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *PaymentServiceImpl) SupplierPaymentStats(ctx context.Context, filter payment.Filter) (payment.Stats, error) {
	if err := filter.Validate(); err != nil {
		return payment.Stats{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return payment.Stats{}, err
	}
	stats, err := s.supplierPaymentRepo.Stats(ctx, principal.BusinessID, filter)
	if err != nil {
		logger.LogError(s.log, module, "SupplierPaymentStats", "aggregate supplier payments", filter, err)
		return payment.Stats{}, err
	}
	return stats, nil
}

func (s *PaymentServiceImpl) SupplierPaymentMonths(ctx context.Context) ([]string, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}
	months, err := s.supplierPaymentRepo.Months(ctx, principal.BusinessID)
	if err != nil {
		logger.LogError(s.log, module, "SupplierPaymentMonths", "list supplier payment months", principal.BusinessID, err)
		return nil, err
	}
	return nonNilMonths(months), nil
}
