package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/customer"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/staff"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/supplier"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/service/master"
)

type MasterHandler interface {
	// Staff handlers
	CreateStaff(w http.ResponseWriter, r *http.Request)
	GetStaff(w http.ResponseWriter, r *http.Request)
	ListStaff(w http.ResponseWriter, r *http.Request)
	UpdateStaff(w http.ResponseWriter, r *http.Request)
	DeleteStaff(w http.ResponseWriter, r *http.Request)
	ToggleStaff(w http.ResponseWriter, r *http.Request)
	StaffStats(w http.ResponseWriter, r *http.Request)

	// Customer handlers
	CreateCustomer(w http.ResponseWriter, r *http.Request)
	GetCustomer(w http.ResponseWriter, r *http.Request)
	ListCustomers(w http.ResponseWriter, r *http.Request)
	UpdateCustomer(w http.ResponseWriter, r *http.Request)
	DeleteCustomer(w http.ResponseWriter, r *http.Request)
	ToggleCustomer(w http.ResponseWriter, r *http.Request)
	CustomerStats(w http.ResponseWriter, r *http.Request)

	// Supplier handlers
	CreateSupplier(w http.ResponseWriter, r *http.Request)
	GetSupplier(w http.ResponseWriter, r *http.Request)
	ListSuppliers(w http.ResponseWriter, r *http.Request)
	UpdateSupplier(w http.ResponseWriter, r *http.Request)
	DeleteSupplier(w http.ResponseWriter, r *http.Request)
	ToggleSupplier(w http.ResponseWriter, r *http.Request)
	SupplierStats(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &masterHandlerImpl{
		masterService: masterService,
	}
}

// ==================== STAFF HANDLERS ====================

func (h *masterHandlerImpl) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req staff.CreateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateStaff(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Staff created successfully", result)
}

func (h *masterHandlerImpl) GetStaff(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	result, err := h.masterService.GetStaff(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListStaff(w http.ResponseWriter, r *http.Request) {
	filter := staff.Filter{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		Active:   boolQuery(r, "active"),
	}
	filter.Page, filter.Limit = pagination(r)

	result, err := h.masterService.ListStaff(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	var req staff.UpdateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.ID = id

	result, err := h.masterService.UpdateStaff(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Staff updated successfully", result)
}

func (h *masterHandlerImpl) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if err := h.masterService.DeleteStaff(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Staff deleted successfully", nil)
}

func (h *masterHandlerImpl) ToggleStaff(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	result, err := h.masterService.ToggleStaffStatus(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) StaffStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.StaffStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ==================== CUSTOMER HANDLERS ====================

func (h *masterHandlerImpl) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customer.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateCustomer(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Customer created successfully", result)
}

func (h *masterHandlerImpl) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	result, err := h.masterService.GetCustomer(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListCustomers(w http.ResponseWriter, r *http.Request) {
	filter := customer.Filter{
		Search: r.URL.Query().Get("search"),
		Active: boolQuery(r, "active"),
	}
	filter.Page, filter.Limit = pagination(r)

	result, err := h.masterService.ListCustomers(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customer.UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.ID = id

	result, err := h.masterService.UpdateCustomer(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Customer updated successfully", result)
}

func (h *masterHandlerImpl) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if err := h.masterService.DeleteCustomer(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Customer deleted successfully", nil)
}

func (h *masterHandlerImpl) ToggleCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	result, err := h.masterService.ToggleCustomerStatus(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) CustomerStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.CustomerStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ==================== SUPPLIER HANDLERS ====================

func (h *masterHandlerImpl) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req supplier.CreateSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateSupplier(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Supplier created successfully", result)
}

func (h *masterHandlerImpl) GetSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	result, err := h.masterService.GetSupplier(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	filter := supplier.Filter{
		Search: r.URL.Query().Get("search"),
		Active: boolQuery(r, "active"),
	}
	filter.Page, filter.Limit = pagination(r)

	result, err := h.masterService.ListSuppliers(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	var req supplier.UpdateSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.ID = id

	result, err := h.masterService.UpdateSupplier(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Supplier updated successfully", result)
}

func (h *masterHandlerImpl) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if err := h.masterService.DeleteSupplier(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Supplier deleted successfully", nil)
}

func (h *masterHandlerImpl) ToggleSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	result, err := h.masterService.ToggleSupplierStatus(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) SupplierStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.SupplierStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
