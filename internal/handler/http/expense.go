package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/handler/http/response"
)

type ExpenseHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)

	CreateItem(w http.ResponseWriter, r *http.Request)
	UpdateItem(w http.ResponseWriter, r *http.Request)
	ListItems(w http.ResponseWriter, r *http.Request)
	ToggleItem(w http.ResponseWriter, r *http.Request)
}

type expenseHandlerImpl struct {
	expenseService expense.ExpenseService
}

func NewExpenseHandler(expenseService expense.ExpenseService) ExpenseHandler {
	return &expenseHandlerImpl{expenseService: expenseService}
}

func expenseFilter(r *http.Request) expense.Filter {
	q := r.URL.Query()
	filter := expense.Filter{
		ItemName:     q.Get("item_name"),
		Type:         q.Get("expense_type"),
		SupplierID:   q.Get("supplier_id"),
		SupplierName: q.Get("supplier_name"),
		ReferenceNo:  q.Get("reference_no"),
		Month:        q.Get("month"),
		DateFrom:     q.Get("date_from"),
		DateTo:       q.Get("date_to"),
	}
	filter.Page, filter.Limit = pagination(r)
	return filter
}

func (h *expenseHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req expense.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.expenseService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Expenses created successfully", result)
}

func (h *expenseHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req expense.UpdateExpenseRequest
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

	result, err := h.expenseService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Expense updated successfully", result)
}

func (h *expenseHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if err := h.expenseService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Expense deleted successfully", nil)
}

func (h *expenseHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	result, err := h.expenseService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *expenseHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.expenseService.List(r.Context(), expenseFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *expenseHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	result, err := h.expenseService.Stats(r.Context(), expenseFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *expenseHandlerImpl) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req expense.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.expenseService.CreateItem(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Expense item created successfully", result)
}

func (h *expenseHandlerImpl) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req expense.UpdateItemRequest
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

	result, err := h.expenseService.UpdateItem(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Expense item updated successfully", result)
}

func (h *expenseHandlerImpl) ListItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := expense.ItemFilter{
		Type:   q.Get("expense_type"),
		Status: q.Get("status"),
		Name:   strings.TrimSpace(q.Get("name")),
	}

	result, err := h.expenseService.ListItems(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *expenseHandlerImpl) ToggleItem(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	result, err := h.expenseService.ToggleItemStatus(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
