package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/handler/http/response"
)

type InvoiceHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	// OrderGroups handles GET /invoices/order-groups?customer_name=
	OrderGroups(w http.ResponseWriter, r *http.Request)
}

type invoiceHandlerImpl struct {
	invoiceService invoice.InvoiceService
}

func NewInvoiceHandler(invoiceService invoice.InvoiceService) InvoiceHandler {
	return &invoiceHandlerImpl{invoiceService: invoiceService}
}

func (h *invoiceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req invoice.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.invoiceService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Invoice created successfully", result)
}

func (h *invoiceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	result, err := h.invoiceService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *invoiceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := invoice.Filter{
		CustomerID:   q.Get("customer_id"),
		CustomerName: q.Get("customer_name"),
		DateFrom:     q.Get("date_from"),
		DateTo:       q.Get("date_to"),
	}
	filter.Page, filter.Limit = pagination(r)

	result, err := h.invoiceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *invoiceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if err := h.invoiceService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invoice deleted successfully", nil)
}

func (h *invoiceHandlerImpl) OrderGroups(w http.ResponseWriter, r *http.Request) {
	result, err := h.invoiceService.OrderGroups(r.Context(), r.URL.Query().Get("customer_name"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
