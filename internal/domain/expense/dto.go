package expense

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ItemInput struct {
	ItemName string          `json:"item_name"`
	Amount   decimal.Decimal `json:"amount"`
}

type CreateExpenseRequest struct {
	Type        string      `json:"expense_type" validate:"required,oneof=cash supplier fixed"`
	SupplierID  string      `json:"supplier_id"`
	Date        string      `json:"date" validate:"omitempty,date"`
	Month       string      `json:"month" validate:"omitempty,month"`
	ReferenceNo string      `json:"reference_no" validate:"max=100"`
	Remarks     string      `json:"remarks" validate:"max=500"`
	Items       []ItemInput `json:"items" validate:"required,min=1"`
}

// Validate checks the request and drops items without a name or a positive
// amount. Fixed expenses are dated on the first day of their month.
func (r *CreateExpenseRequest) Validate() error {
	err := validator.Struct(r)
	var errs validator.ValidationErrors
	if err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = ve
	}

	if r.Month == "" && len(r.Date) >= 7 {
		r.Month = r.Date[:7]
	}
	if !validator.IsValidMonth(r.Month) {
		errs.Add("month", "must be in YYYY-MM format")
	}
	if Type(r.Type) == TypeFixed {
		if validator.IsValidMonth(r.Month) {
			r.Date = r.Month + "-01"
		}
	} else if r.Date == "" {
		errs.Add("date", "is required")
	}
	if Type(r.Type) == TypeSupplier && strings.TrimSpace(r.SupplierID) == "" {
		errs.Add("supplier_id", "is required for supplier expenses")
	}
	errs.AddID("supplier_id", strings.TrimSpace(r.SupplierID))
	if len(errs) > 0 {
		return errs
	}

	items := r.Items[:0]
	for _, it := range r.Items {
		it.ItemName = strings.TrimSpace(it.ItemName)
		if it.ItemName == "" || !it.Amount.IsPositive() {
			continue
		}
		items = append(items, it)
	}
	r.Items = items
	if len(r.Items) == 0 {
		return ErrNoValidItems
	}
	return nil
}

// ToEntities expands the request into one expense per item.
func (r *CreateExpenseRequest) ToEntities(businessID, groupKey string, supplierName string) []Expense {
	date, _ := validator.IsValidDate(r.Date)
	var supplierID *string
	if Type(r.Type) == TypeSupplier {
		id := r.SupplierID
		supplierID = &id
	} else {
		supplierName = ""
	}

	out := make([]Expense, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, Expense{
			BusinessID:   businessID,
			Type:         Type(r.Type),
			ItemName:     it.ItemName,
			Amount:       it.Amount,
			Date:         date,
			Month:        r.Month,
			ReferenceNo:  strings.TrimSpace(r.ReferenceNo),
			Remarks:      strings.TrimSpace(r.Remarks),
			SupplierID:   supplierID,
			SupplierName: supplierName,
			GroupKey:     groupKey,
		})
	}
	return out
}

// UpdateExpenseRequest patches a single item. Type, supplier and group are
// fixed at creation.
type UpdateExpenseRequest struct {
	ID          string           `json:"-"`
	ItemName    *string          `json:"item_name"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        *string          `json:"date"`
	ReferenceNo *string          `json:"reference_no"`
	Remarks     *string          `json:"remarks"`
}

func (r *UpdateExpenseRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.ItemName != nil && validator.IsEmpty(*r.ItemName) {
		errs.Add("item_name", "is required")
	}
	if r.Amount != nil && !r.Amount.IsPositive() {
		errs.Add("amount", "must be greater than 0")
	}
	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs.Add("date", "must be in YYYY-MM-DD format")
		}
	}
	return errs.Err()
}

// Apply returns e with the patch applied; a new date also moves the month.
func (r *UpdateExpenseRequest) Apply(e Expense) Expense {
	if r.ItemName != nil {
		e.ItemName = strings.TrimSpace(*r.ItemName)
	}
	if r.Amount != nil {
		e.Amount = *r.Amount
	}
	if r.Date != nil {
		date, _ := validator.IsValidDate(*r.Date)
		e.Date = date
		e.Month = validator.MonthOf(date)
	}
	if r.ReferenceNo != nil {
		e.ReferenceNo = strings.TrimSpace(*r.ReferenceNo)
	}
	if r.Remarks != nil {
		e.Remarks = strings.TrimSpace(*r.Remarks)
	}
	return e
}

type Filter struct {
	ItemName     string
	Type         string
	SupplierID   string
	SupplierName string
	ReferenceNo  string
	Month        string
	DateFrom     string
	DateTo       string
	Page         int
	Limit        int
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors
	if f.Type != "" {
		switch Type(f.Type) {
		case TypeCash, TypeSupplier, TypeFixed:
		default:
			errs.Add("expense_type", "must be one of: cash, supplier, fixed")
		}
	}
	if f.Month != "" && !validator.IsValidMonth(f.Month) {
		errs.Add("month", "must be in YYYY-MM format")
	}
	errs.AddID("supplier_id", f.SupplierID)
	errs.AddDate("date_from", f.DateFrom)
	errs.AddDate("date_to", f.DateTo)
	return errs.Err()
}

type ExpenseResponse struct {
	ID           string          `json:"id"`
	Type         Type            `json:"expense_type"`
	ItemName     string          `json:"item_name"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
	Month        string          `json:"month"`
	ReferenceNo  string          `json:"reference_no"`
	Remarks      string          `json:"remarks"`
	SupplierID   *string         `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	GroupKey     string          `json:"group_key"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func ToResponse(e Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:           e.ID,
		Type:         e.Type,
		ItemName:     e.ItemName,
		Amount:       e.Amount,
		Date:         e.Date.Format(validator.DateLayout),
		Month:        e.Month,
		ReferenceNo:  e.ReferenceNo,
		Remarks:      e.Remarks,
		SupplierID:   e.SupplierID,
		SupplierName: e.SupplierName,
		GroupKey:     e.GroupKey,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

type ListExpenseResponse struct {
	Expenses   []ExpenseResponse `json:"expenses"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}
