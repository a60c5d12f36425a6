package invoice

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/order"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateInvoiceRequest struct {
	CustomerID  string   `json:"customer_id" validate:"required,uuid7"`
	OrderIDs    []string `json:"order_ids" validate:"required,min=1,dive,uuid7"`
	InvoiceDate string   `json:"invoice_date" validate:"omitempty,date"`
	Note        string   `json:"note" validate:"max=500"`
}

// Validate also de-duplicates OrderIDs.
func (r *CreateInvoiceRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, ve...)
	}

	seen := make(map[string]struct{}, len(r.OrderIDs))
	unique := make([]string, 0, len(r.OrderIDs))
	for _, id := range r.OrderIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	r.OrderIDs = unique
	if len(unique) > MaxOrders {
		errs.Add("order_ids", ErrTooManyOrders.Error())
	}
	r.Note = strings.TrimSpace(r.Note)
	return errs.Err()
}

type Filter struct {
	CustomerID   string
	CustomerName string
	DateFrom     string
	DateTo       string
	Page         int
	Limit        int
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors
	errs.AddID("customer_id", f.CustomerID)
	errs.AddDate("date_from", f.DateFrom)
	errs.AddDate("date_to", f.DateTo)
	return errs.Err()
}

type InvoiceResponse struct {
	ID             string          `json:"id"`
	Number         string          `json:"number"`
	CustomerID     string          `json:"customer_id"`
	CustomerName   string          `json:"customer_name"`
	CustomerPerson string          `json:"customer_person"`
	OrderIDs       []string        `json:"order_ids"`
	OrderCount     int             `json:"order_count"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	InvoiceDate    string          `json:"invoice_date"`
	Note           string          `json:"note"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func ToResponse(inv Invoice) InvoiceResponse {
	ids := inv.OrderIDs
	if ids == nil {
		ids = []string{}
	}
	return InvoiceResponse{
		ID:             inv.ID,
		Number:         inv.Number,
		CustomerID:     inv.CustomerID,
		CustomerName:   inv.CustomerName,
		CustomerPerson: inv.CustomerPerson,
		OrderIDs:       ids,
		OrderCount:     inv.OrderCount,
		TotalAmount:    inv.TotalAmount,
		InvoiceDate:    inv.InvoiceDate.Format(validator.DateLayout),
		Note:           inv.Note,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
}

// InvoiceDetailResponse is the printable view: the billed orders plus the
// customer's balance carried into and out of this invoice.
type InvoiceDetailResponse struct {
	InvoiceResponse
	Orders             []order.OrderResponse `json:"orders"`
	OpeningBalance     decimal.Decimal       `json:"opening_balance"`
	PreviousInvoiced   decimal.Decimal       `json:"previous_invoiced"`
	PaidBeforeInvoice  decimal.Decimal       `json:"paid_before_invoice"`
	OutstandingBalance decimal.Decimal       `json:"outstanding_balance"`
	NewBalance         decimal.Decimal       `json:"new_balance"`
}

type ListInvoiceResponse struct {
	Invoices   []InvoiceResponse `json:"invoices"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

type OrderGroup struct {
	CustomerID      string                `json:"customer_id"`
	CustomerName    string                `json:"customer_name"`
	LatestOrderDate string                `json:"latest_order_date"`
	TotalOrders     int                   `json:"total_orders"`
	TotalAmount     decimal.Decimal       `json:"total_amount"`
	Orders          []order.OrderResponse `json:"orders"`
}
