package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/order"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/handler/http/response"
)

type OrderHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)
}

type orderHandlerImpl struct {
	orderService order.OrderService
}

func NewOrderHandler(orderService order.OrderService) OrderHandler {
	return &orderHandlerImpl{orderService: orderService}
}

func orderFilter(r *http.Request) order.Filter {
	q := r.URL.Query()
	filter := order.Filter{
		CustomerID:   q.Get("customer_id"),
		CustomerName: q.Get("customer_name"),
		MachineNo:    q.Get("machine_no"),
		Month:        q.Get("month"),
		DateFrom:     q.Get("date_from"),
		DateTo:       q.Get("date_to"),
	}
	if u := boolQuery(r, "uninvoiced"); u != nil {
		filter.Uninvoiced = *u
	}
	filter.Page, filter.Limit = pagination(r)
	return filter
}

func (h *orderHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req order.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.orderService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Order created successfully", result)
}

func (h *orderHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req order.UpdateOrderRequest
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

	result, err := h.orderService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Order updated successfully", result)
}

func (h *orderHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if err := h.orderService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Order deleted successfully", nil)
}

func (h *orderHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	result, err := h.orderService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *orderHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.orderService.List(r.Context(), orderFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *orderHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	result, err := h.orderService.Stats(r.Context(), orderFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Preview handles POST /orders/preview
func (h *orderHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	var req order.PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.orderService.Preview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
