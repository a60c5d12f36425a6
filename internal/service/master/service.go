package master

import (
	"context"
	"errors"
	"math"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/customer"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/staff"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/supplier"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/logger"
	"github.com/sirupsen/logrus"
)

const module = "master"

type MasterService interface {
	// Staff operations
	CreateStaff(ctx context.Context, req staff.CreateStaffRequest) (staff.StaffResponse, error)
	GetStaff(ctx context.Context, id string) (staff.StaffResponse, error)
	ListStaff(ctx context.Context, filter staff.Filter) (staff.ListStaffResponse, error)
	UpdateStaff(ctx context.Context, req staff.UpdateStaffRequest) (staff.StaffResponse, error)
	DeleteStaff(ctx context.Context, id string) error
	ToggleStaffStatus(ctx context.Context, id string) (staff.StaffResponse, error)
	StaffStats(ctx context.Context) (StatsResponse, error)

	// Customer operations
	CreateCustomer(ctx context.Context, req customer.CreateCustomerRequest) (customer.CustomerResponse, error)
	GetCustomer(ctx context.Context, id string) (customer.CustomerResponse, error)
	ListCustomers(ctx context.Context, filter customer.Filter) (customer.ListCustomerResponse, error)
	UpdateCustomer(ctx context.Context, req customer.UpdateCustomerRequest) (customer.CustomerResponse, error)
	DeleteCustomer(ctx context.Context, id string) error
	ToggleCustomerStatus(ctx context.Context, id string) (customer.CustomerResponse, error)
	CustomerStats(ctx context.Context) (StatsResponse, error)

	// Supplier operations
	CreateSupplier(ctx context.Context, req supplier.CreateSupplierRequest) (supplier.SupplierResponse, error)
	GetSupplier(ctx context.Context, id string) (supplier.SupplierResponse, error)
	ListSuppliers(ctx context.Context, filter supplier.Filter) (supplier.ListSupplierResponse, error)
	UpdateSupplier(ctx context.Context, req supplier.UpdateSupplierRequest) (supplier.SupplierResponse, error)
	DeleteSupplier(ctx context.Context, id string) error
	ToggleSupplierStatus(ctx context.Context, id string) (supplier.SupplierResponse, error)
	SupplierStats(ctx context.Context) (StatsResponse, error)
}

type StatsResponse struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

type masterServiceImpl struct {
	staffRepo    staff.StaffRepository
	customerRepo customer.CustomerRepository
	supplierRepo supplier.SupplierRepository
	log          *logrus.Logger
}

func NewMasterService(
	staffRepo staff.StaffRepository,
	customerRepo customer.CustomerRepository,
	supplierRepo supplier.SupplierRepository,
	log *logrus.Logger,
) MasterService {
	return &masterServiceImpl{
		staffRepo:    staffRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		log:          log,
	}
}

func businessID(ctx context.Context) (string, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return "", err
	}
	return principal.BusinessID, nil
}

func pageCount(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

func normalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return page, limit
}

// ==================== STAFF OPERATIONS ====================

func (s *masterServiceImpl) CreateStaff(ctx context.Context, req staff.CreateStaffRequest) (staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return staff.StaffResponse{}, err
	}
	bizID, err := businessID(ctx)
	if err != nil {
		return staff.StaffResponse{}, err
	}

	created, err := s.staffRepo.Create(ctx, req.ToEntity(bizID))
	if err != nil {
		if !errors.Is(err, staff.ErrStaffNameExists) {
			logger.LogError(s.log, module, "CreateStaff", "insert staff", req.Name, err)
		}
		return staff.StaffResponse{}, err
	}
	return staff.ToResponse(created), nil
}

func (s *masterServiceImpl) GetStaff(ctx context.Context, id string) (staff.StaffResponse, error) {
	bizID, err := businessID(ctx)
	if err != nil {
		return staff.StaffResponse{}, err
	}
	entity, err := s.staffRepo.GetByID(ctx, id, bizID)
	if err != nil {
		return staff.StaffResponse{}, err
	}
	return staff.ToResponse(entity), nil
}

func (s *masterServiceImpl) ListStaff(ctx context.Context, filter staff.Filter) (staff.ListStaffResponse, error) {
	bizID, err := businessID(ctx)
	if err != nil {
		return staff.ListStaffResponse{}, err
	}
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	list, total, err := s.staffRepo.List(ctx, bizID, filter)
	if err != nil {
		logger.LogError(s.log, module, "ListStaff", "list staff", filter, err)
		return staff.ListStaffResponse{}, err
	}

	responses := make([]staff.StaffResponse, 0, len(list))
	for _, st := range list {
		responses = append(responses, staff.ToResponse(st))
	}
	return staff.ListStaffResponse{
		Staff:      responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: pageCount(total, filter.Limit),
	}, nil
}

func (s *masterServiceImpl) UpdateStaff(ctx context.Context, req staff.UpdateStaffRequest) (staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return staff.StaffResponse{}, err
	}
	bizID, err := businessID(ctx)
	if err != nil {
		return staff.StaffResponse{}, err
	}

	current, err := s.staffRepo.GetByID(ctx, req.ID, bizID)
	if err != nil {
		return staff.StaffResponse{}, err
	}
	updated, err := s.staffRepo.Update(ctx, req.Apply(current))
	if err != nil {
		return staff.StaffResponse{}, err
	}
	return staff.ToResponse(updated), nil
}

func (s *masterServiceImpl) DeleteStaff(ctx context.Context, id string) error {
	bizID, err := businessID(ctx)
	if err != nil {
		return err
	}
	return s.staffRepo.Delete(ctx, id, bizID)
}

func (s *masterServiceImpl) ToggleStaffStatus(ctx context.Context, id string) (staff.StaffResponse, error) {
	bizID, err := businessID(ctx)
	if err != nil {
		return staff.StaffResponse{}, err
	}
	toggled, err := s.staffRepo.ToggleStatus(ctx, id, bizID)
	if err != nil {
		return staff.StaffResponse{}, err
	}
	return staff.ToResponse(toggled), nil
}

func (s *masterServiceImpl) StaffStats(ctx context.Context) (StatsResponse, error) {
	bizID, err := businessID(ctx)
	if err != nil {
		return StatsResponse{}, err
	}
	stats, err := s.staffRepo.Stats(ctx, bizID)
	if err != nil {
		logger.LogError(s.log, module, "StaffStats", "count staff", bizID, err)
		return StatsResponse{}, err
	}
	return StatsResponse{Total: stats.Total, Active: stats.Active, Inactive: stats.Inactive}, nil
}

// ==================== CUSTOMER OPERATIONS ====================

func (s *masterServiceImpl) CreateCustomer(ctx context.Context, req customer.CreateCustomerRequest) (customer.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return customer.CustomerResponse{}, err
	}
	bizID, err := businessID(ctx)
	if err != nil {
		return customer.CustomerResponse{}, err
	}

	created, err := s.customerRepo.Create(ctx, customer.Customer{
		BusinessID:     bizID,
		Name:           req.Name,
		Person:         req.Person,
		Rate:           req.Rate,
		OpeningBalance: req.OpeningBalance,
		IsActive:       true,
	})
	if err != nil {
		if !errors.Is(err, customer.ErrCustomerNameExists) {
			logger.LogError(s.log, module, "CreateCustomer", "insert customer", req.Name, err)
		}
		return customer.CustomerResponse{}, err
	}
	return customer.ToResponse(created), nil
}

func (s *masterServiceImpl) GetCustomer(ctx context.Context, id string) (customer.CustomerResponse, error) {
	bizID, err := businessID(ctx)
	if err != nil {
		return customer.CustomerResponse{}, err
	}
	entity, err := s.customerRepo.GetByID(ctx, id, bizID)
	if err != nil {
		return customer.CustomerResponse{}, err
	}
	return customer.ToResponse(entity), nil
}

func (s *masterServiceImpl) ListCustomers(ctx context.Context, filter customer.Filter) (customer.ListCustomerResponse, error) {
	bizID, err := businessID(ctx)
	if err != nil {
		return customer.ListCustomerResponse{}, err
	}
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	list, total, err := s.customerRepo.List(ctx, bizID, filter)
	if err != nil {
		logger.LogError(s.log, module, "ListCustomers", "list customers", filter, err)
		return customer.ListCustomerResponse{}, err
	}

	responses := make([]customer.CustomerResponse, 0, len(list))
	for _, c := range list {
		responses = append(responses, customer.ToResponse(c))
	}
	return customer.ListCustomerResponse{
		Customers:  responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: pageCount(total, filter.Limit),
	}, nil
}

func (s *masterServiceImpl) UpdateCustomer(ctx context.Context, req customer.UpdateCustomerRequest) (customer.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return customer.CustomerResponse{}, err
	}
	bizID, err := businessID(ctx)
	if err != nil {
		return customer.CustomerResponse{}, err
	}

	current, err := s.customerRepo.GetByID(ctx, req.ID, bizID)
	if err != nil {
		return customer.CustomerResponse{}, err
	}
	updated, err := s.customerRepo.Update(ctx, req.Apply(current))
	if err != nil {
		return customer.CustomerResponse{}, err
	}
	return customer.ToResponse(updated), nil
}

func (s *masterServiceImpl) DeleteCustomer(ctx context.Context, id string) error {
	bizID, err := businessID(ctx)
	if err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, id, bizID)
}

func (s *masterServiceImpl) ToggleCustomerStatus(ctx context.Context, id string) (customer.CustomerResponse, error) {
	bizID, err := businessID(ctx)
	if err != nil {
		return customer.CustomerResponse{}, err
	}
	toggled, err := s.customerRepo.ToggleStatus(ctx, id, bizID)
	if err != nil {
		return customer.CustomerResponse{}, err
	}
	return customer.ToResponse(toggled), nil
}

func (s *masterServiceImpl) CustomerStats(ctx context.Context) (StatsResponse, error) {
	bizID, err := businessID(ctx)
	if err != nil {
		return StatsResponse{}, err
	}
	stats, err := s.customerRepo.Stats(ctx, bizID)
	if err != nil {
		logger.LogError(s.log, module, "CustomerStats", "count customers", bizID, err)
		return StatsResponse{}, err
	}
	return StatsResponse{Total: stats.Total, Active: stats.Active, Inactive: stats.Inactive}, nil
}

// ==================== SUPPLIER OPERATIONS ====================

func (s *masterServiceImpl) CreateSupplier(ctx context.Context, req supplier.CreateSupplierRequest) (supplier.SupplierResponse, error) {
	if err := req.Validate(); err != nil {
		return supplier.SupplierResponse{}, err
	}
	bizID, err := businessID(ctx)
	if err != nil {
		return supplier.SupplierResponse{}, err
	}

	created, err := s.supplierRepo.Create(ctx, supplier.Supplier{
		BusinessID:     bizID,
		Name:           req.Name,
		OpeningBalance: req.OpeningBalance,
		IsActive:       true,
	})
	if err != nil {
		if !errors.Is(err, supplier.ErrSupplierNameExists) {
			logger.LogError(s.log, module, "CreateSupplier", "insert supplier", req.Name, err)
		}
		return supplier.SupplierResponse{}, err
	}
	return supplier.ToResponse(created), nil
}

func (s *masterServiceImpl) GetSupplier(ctx context.Context, id string) (supplier.SupplierResponse, error) {
	bizID, err := businessID(ctx)
	if err != nil {
		return supplier.SupplierResponse{}, err
	}
	entity, err := s.supplierRepo.GetByID(ctx, id, bizID)
	if err != nil {
		return supplier.SupplierResponse{}, err
	}
	return supplier.ToResponse(entity), nil
}

func (s *masterServiceImpl) ListSuppliers(ctx context.Context, filter supplier.Filter) (supplier.ListSupplierResponse, error) {
	bizID, err := businessID(ctx)
	if err != nil {
		return supplier.ListSupplierResponse{}, err
	}
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	list, total, err := s.supplierRepo.List(ctx, bizID, filter)
	if err != nil {
		logger.LogError(s.log, module, "ListSuppliers", "list suppliers", filter, err)
		return supplier.ListSupplierResponse{}, err
	}

	responses := make([]supplier.SupplierResponse, 0, len(list))
	for _, sp := range list {
		responses = append(responses, supplier.ToResponse(sp))
	}
	return supplier.ListSupplierResponse{
		Suppliers:  responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: pageCount(total, filter.Limit),
	}, nil
}

func (s *masterServiceImpl) UpdateSupplier(ctx context.Context, req supplier.UpdateSupplierRequest) (supplier.SupplierResponse, error) {
	if err := req.Validate(); err != nil {
		return supplier.SupplierResponse{}, err
	}
	bizID, err := businessID(ctx)
	if err != nil {
		return supplier.SupplierResponse{}, err
	}

	current, err := s.supplierRepo.GetByID(ctx, req.ID, bizID)
	if err != nil {
		return supplier.SupplierResponse{}, err
	}
	updated, err := s.supplierRepo.Update(ctx, req.Apply(current))
	if err != nil {
		return supplier.SupplierResponse{}, err
	}
	return supplier.ToResponse(updated), nil
}

func (s *masterServiceImpl) DeleteSupplier(ctx context.Context, id string) error {
	bizID, err := businessID(ctx)
	if err != nil {
		return err
	}
	return s.supplierRepo.Delete(ctx, id, bizID)
}

func (s *masterServiceImpl) ToggleSupplierStatus(ctx context.Context, id string) (supplier.SupplierResponse, error) {
	bizID, err := businessID(ctx)
	if err != nil {
		return supplier.SupplierResponse{}, err
	}
	toggled, err := s.supplierRepo.ToggleStatus(ctx, id, bizID)
	if err != nil {
		return supplier.SupplierResponse{}, err
	}
	return supplier.ToResponse(toggled), nil
}

func (s *masterServiceImpl) SupplierStats(ctx context.Context) (StatsResponse, error) {
	bizID, err := businessID(ctx)
	if err != nil {
		return StatsResponse{}, err
	}
	stats, err := s.supplierRepo.Stats(ctx, bizID)
	if err != nil {
		logger.LogError(s.log, module, "SupplierStats", "count suppliers", bizID, err)
		return StatsResponse{}, err
	}
	return StatsResponse{Total: stats.Total, Active: stats.Active, Inactive: stats.Inactive}, nil
}
