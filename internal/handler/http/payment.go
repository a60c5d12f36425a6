package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/handler/http/response"
)

type PaymentHandler interface {
	// Staff payments
	CreateStaffPayment(w http.ResponseWriter, r *http.Request)
	UpdateStaffPayment(w http.ResponseWriter, r *http.Request)
	DeleteStaffPayment(w http.ResponseWriter, r *http.Request)
	GetStaffPayment(w http.ResponseWriter, r *http.Request)
	ListStaffPayments(w http.ResponseWriter, r *http.Request)
	StaffPaymentStats(w http.ResponseWriter, r *http.Request)
	StaffPaymentMonths(w http.ResponseWriter, r *http.Request)

	// Customer payments
	CreateCustomerPayment(w http.ResponseWriter, r *http.Request)
	UpdateCustomerPayment(w http.ResponseWriter, r *http.Request)
	DeleteCustomerPayment(w http.ResponseWriter, r *http.Request)
	GetCustomerPayment(w http.ResponseWriter, r *http.Request)
	ListCustomerPayments(w http.ResponseWriter, r *http.Request)
	CustomerPaymentStats(w http.ResponseWriter, r *http.Request)
	CustomerPaymentMonths(w http.ResponseWriter, r *http.Request)

	// Supplier payments
	CreateSupplierPayment(w http.ResponseWriter, r *http.Request)
	UpdateSupplierPayment(w http.ResponseWriter, r *http.Request)
	DeleteSupplierPayment(w http.ResponseWriter, r *http.Request)
	GetSupplierPayment(w http.ResponseWriter, r *http.Request)
	ListSupplierPayments(w http.ResponseWriter, r *http.Request)
	SupplierPaymentStats(w http.ResponseWriter, r *http.Request)
	SupplierPaymentMonths(w http.ResponseWriter, r *http.Request)
}

type paymentHandlerImpl struct {
	paymentService payment.PaymentService
}

func NewPaymentHandler(paymentService payment.PaymentService) PaymentHandler {
	return &paymentHandlerImpl{paymentService: paymentService}
}

// paymentFilter reads the shared filter; partyKey and kindKey differ per
// payment kind (staff_id/type, customer_id/method, supplier_id/method).
func paymentFilter(r *http.Request, partyKey, kindKey string) payment.Filter {
	q := r.URL.Query()
	filter := payment.Filter{
		PartyID:  q.Get(partyKey),
		Kind:     q.Get(kindKey),
		Month:    q.Get("month"),
		DateFrom: q.Get("date_from"),
		DateTo:   q.Get("date_to"),
	}
	filter.Page, filter.Limit = pagination(r)
	return filter
}

// ==================== STAFF PAYMENT HANDLERS ====================

func (h *paymentHandlerImpl) CreateStaffPayment(w http.ResponseWriter, r *http.Request) {
	var req payment.StaffPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.paymentService.CreateStaffPayment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Staff payment created successfully", result)
}

func (h *paymentHandlerImpl) UpdateStaffPayment(w http.ResponseWriter, r *http.Request) {
	var req payment.StaffPaymentRequest
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

	result, err := h.paymentService.UpdateStaffPayment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Staff payment updated successfully", result)
}

func (h *paymentHandlerImpl) DeleteStaffPayment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if err := h.paymentService.DeleteStaffPayment(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Staff payment deleted successfully", nil)
}

func (h *paymentHandlerImpl) GetStaffPayment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	result, err := h.paymentService.GetStaffPayment(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *paymentHandlerImpl) ListStaffPayments(w http.ResponseWriter, r *http.Request) {
	result, err := h.paymentService.ListStaffPayments(r.Context(), paymentFilter(r, "staff_id", "type"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *paymentHandlerImpl) StaffPaymentStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.paymentService.StaffPaymentStats(r.Context(), paymentFilter(r, "staff_id", "type"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *paymentHandlerImpl) StaffPaymentMonths(w http.ResponseWriter, r *http.Request) {
	result, err := h.paymentService.StaffPaymentMonths(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ==================== CUSTOMER PAYMENT HANDLERS ====================

func (h *paymentHandlerImpl) CreateCustomerPayment(w http.ResponseWriter, r *http.Request) {
	var req payment.CustomerPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.paymentService.CreateCustomerPayment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Customer payment created successfully", result)
}

func (h *paymentHandlerImpl) UpdateCustomerPayment(w http.ResponseWriter, r *http.Request) {
	var req payment.CustomerPaymentRequest
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

	result, err := h.paymentService.UpdateCustomerPayment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Customer payment updated successfully", result)
}

func (h *paymentHandlerImpl) DeleteCustomerPayment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if err := h.paymentService.DeleteCustomerPayment(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Customer payment deleted successfully", nil)
}

func (h *paymentHandlerImpl) GetCustomerPayment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	result, err := h.paymentService.GetCustomerPayment(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *paymentHandlerImpl) ListCustomerPayments(w http.ResponseWriter, r *http.Request) {
	result, err := h.paymentService.ListCustomerPayments(r.Context(), paymentFilter(r, "customer_id", "method"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *paymentHandlerImpl) CustomerPaymentStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.paymentService.CustomerPaymentStats(r.Context(), paymentFilter(r, "customer_id", "method"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *paymentHandlerImpl) CustomerPaymentMonths(w http.ResponseWriter, r *http.Request) {
	result, err := h.paymentService.CustomerPaymentMonths(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ==================== SUPPLIER PAYMENT HANDLERS ====================

func (h *paymentHandlerImpl) CreateSupplierPayment(w http.ResponseWriter, r *http.Request) {
	var req payment.SupplierPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.paymentService.CreateSupplierPayment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Supplier payment created successfully", result)
}

func (h *paymentHandlerImpl) UpdateSupplierPayment(w http.ResponseWriter, r *http.Request) {
	var req payment.SupplierPaymentRequest
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

	result, err := h.paymentService.UpdateSupplierPayment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Supplier payment updated successfully", result)
}

func (h *paymentHandlerImpl) DeleteSupplierPayment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if err := h.paymentService.DeleteSupplierPayment(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Supplier payment deleted successfully", nil)
}

func (h *paymentHandlerImpl) GetSupplierPayment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	result, err := h.paymentService.GetSupplierPayment(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *paymentHandlerImpl) ListSupplierPayments(w http.ResponseWriter, r *http.Request) {
	result, err := h.paymentService.ListSupplierPayments(r.Context(), paymentFilter(r, "supplier_id", "method"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *paymentHandlerImpl) SupplierPaymentStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.paymentService.SupplierPaymentStats(r.Context(), paymentFilter(r, "supplier_id", "method"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *paymentHandlerImpl) SupplierPaymentMonths(w http.ResponseWriter, r *http.Request) {
	result, err := h.paymentService.SupplierPaymentMonths(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
