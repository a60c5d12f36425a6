package payment

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

func structErrors(s interface{}) (validator.ValidationErrors, error) {
	err := validator.Struct(s)
	if err == nil {
		return nil, nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, err
	}
	return ve, nil
}

func checkAmount(errs *validator.ValidationErrors, amount decimal.Decimal) {
	if !amount.IsPositive() {
		errs.Add("amount", "must be greater than 0")
	}
}

// resolveMonth keeps an explicit payroll month, else the date's month.
func resolveMonth(month string, date time.Time) string {
	if month != "" {
		return month
	}
	return validator.MonthOf(date)
}

func optionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, ok := validator.IsValidDate(s)
	if !ok {
		return nil
	}
	return &t
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(validator.DateLayout)
	return &s
}

// ==================== STAFF ====================

// StaffPaymentRequest serves both create and update; updates replace every
// field.
type StaffPaymentRequest struct {
	ID      string          `json:"-"`
	StaffID string          `json:"staff_id" validate:"required,uuid7"`
	Date    string          `json:"date" validate:"required,date"`
	Month   string          `json:"month" validate:"omitempty,month"`
	Type    string          `json:"type" validate:"required,oneof=advance payment adjustment"`
	Amount  decimal.Decimal `json:"amount"`
	Remarks string          `json:"remarks" validate:"max=500"`
}

func (r *StaffPaymentRequest) Validate() error {
	errs, err := structErrors(r)
	if err != nil {
		return err
	}
	checkAmount(&errs, r.Amount)
	return errs.Err()
}

func (r *StaffPaymentRequest) ToEntity(businessID string) StaffPayment {
	date, _ := validator.IsValidDate(r.Date)
	return StaffPayment{
		ID:         r.ID,
		BusinessID: businessID,
		StaffID:    r.StaffID,
		Date:       date,
		Month:      resolveMonth(r.Month, date),
		Type:       StaffPaymentType(r.Type),
		Amount:     r.Amount,
		Remarks:    strings.TrimSpace(r.Remarks),
	}
}

type StaffPaymentResponse struct {
	ID        string           `json:"id"`
	StaffID   string           `json:"staff_id"`
	StaffName string           `json:"staff_name"`
	Date      string           `json:"date"`
	Month     string           `json:"month"`
	Type      StaffPaymentType `json:"type"`
	Amount    decimal.Decimal  `json:"amount"`
	Remarks   string           `json:"remarks"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func ToStaffPaymentResponse(p StaffPayment) StaffPaymentResponse {
	return StaffPaymentResponse{
		ID:        p.ID,
		StaffID:   p.StaffID,
		StaffName: p.StaffName,
		Date:      p.Date.Format(validator.DateLayout),
		Month:     p.Month,
		Type:      p.Type,
		Amount:    p.Amount,
		Remarks:   p.Remarks,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type ListStaffPaymentResponse struct {
	Payments   []StaffPaymentResponse `json:"payments"`
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
}

// ==================== CUSTOMER ====================

type CustomerPaymentRequest struct {
	ID          string          `json:"-"`
	CustomerID  string          `json:"customer_id" validate:"required,uuid7"`
	Date        string          `json:"date" validate:"required,date"`
	Month       string          `json:"month" validate:"omitempty,month"`
	Method      string          `json:"method" validate:"required,oneof=cash cheque slip online adjustment"`
	Amount      decimal.Decimal `json:"amount"`
	ReferenceNo string          `json:"reference_no" validate:"max=100"`
	BankName    string          `json:"bank_name" validate:"max=100"`
	PartyName   string          `json:"party_name" validate:"max=150"`
	ChequeDate  string          `json:"cheque_date" validate:"omitempty,date"`
	SlipDate    string          `json:"slip_date" validate:"omitempty,date"`
	ClearDate   string          `json:"clear_date" validate:"omitempty,date"`
	Remarks     string          `json:"remarks" validate:"max=500"`
}

// Validate applies the per-method requirements. Older clients send the slip
// date as cheque_date; that is accepted for slips.
func (r *CustomerPaymentRequest) Validate() error {
	r.ReferenceNo = strings.TrimSpace(r.ReferenceNo)
	r.BankName = strings.TrimSpace(r.BankName)
	r.PartyName = strings.TrimSpace(r.PartyName)
	if Method(r.Method) == MethodSlip && r.SlipDate == "" {
		r.SlipDate, r.ChequeDate = r.ChequeDate, ""
	}

	errs, err := structErrors(r)
	if err != nil {
		return err
	}
	checkAmount(&errs, r.Amount)

	switch Method(r.Method) {
	case MethodOnline:
		requireField(&errs, "reference_no", r.ReferenceNo, "online")
		requireField(&errs, "bank_name", r.BankName, "online")
	case MethodCheque:
		requireField(&errs, "reference_no", r.ReferenceNo, "cheque")
		requireField(&errs, "bank_name", r.BankName, "cheque")
		requireField(&errs, "cheque_date", r.ChequeDate, "cheque")
		requireField(&errs, "clear_date", r.ClearDate, "cheque")
		checkClearAfter(&errs, r.ChequeDate, r.ClearDate, "cheque date")
	case MethodSlip:
		requireField(&errs, "reference_no", r.ReferenceNo, "slip")
		requireField(&errs, "party_name", r.PartyName, "slip")
		requireField(&errs, "slip_date", r.SlipDate, "slip")
		requireField(&errs, "clear_date", r.ClearDate, "slip")
		checkClearAfter(&errs, r.SlipDate, r.ClearDate, "slip date")
	}
	return errs.Err()
}

func requireField(errs *validator.ValidationErrors, field, value, method string) {
	if value == "" {
		errs.Add(field, "is required for "+method+" payments")
	}
}

func checkClearAfter(errs *validator.ValidationErrors, from, clear, label string) {
	start, ok1 := validator.IsValidDate(from)
	end, ok2 := validator.IsValidDate(clear)
	if ok1 && ok2 && end.Before(start) {
		errs.Add("clear_date", "must be on or after the "+label)
	}
}

func (r *CustomerPaymentRequest) ToEntity(businessID string) CustomerPayment {
	date, _ := validator.IsValidDate(r.Date)
	return CustomerPayment{
		ID:          r.ID,
		BusinessID:  businessID,
		CustomerID:  r.CustomerID,
		Date:        date,
		Month:       resolveMonth(r.Month, date),
		Method:      Method(r.Method),
		Amount:      r.Amount,
		ReferenceNo: r.ReferenceNo,
		BankName:    r.BankName,
		PartyName:   r.PartyName,
		ChequeDate:  optionalDate(r.ChequeDate),
		SlipDate:    optionalDate(r.SlipDate),
		ClearDate:   optionalDate(r.ClearDate),
		Remarks:     strings.TrimSpace(r.Remarks),
	}
}

type CustomerPaymentResponse struct {
	ID           string          `json:"id"`
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Date         string          `json:"date"`
	Month        string          `json:"month"`
	Method       Method          `json:"method"`
	Amount       decimal.Decimal `json:"amount"`
	ReferenceNo  string          `json:"reference_no"`
	BankName     string          `json:"bank_name"`
	PartyName    string          `json:"party_name"`
	ChequeDate   *string         `json:"cheque_date"`
	SlipDate     *string         `json:"slip_date"`
	ClearDate    *string         `json:"clear_date"`
	Remarks      string          `json:"remarks"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func ToCustomerPaymentResponse(p CustomerPayment) CustomerPaymentResponse {
	return CustomerPaymentResponse{
		ID:           p.ID,
		CustomerID:   p.CustomerID,
		CustomerName: p.CustomerName,
		Date:         p.Date.Format(validator.DateLayout),
		Month:        p.Month,
		Method:       p.Method,
		Amount:       p.Amount,
		ReferenceNo:  p.ReferenceNo,
		BankName:     p.BankName,
		PartyName:    p.PartyName,
		ChequeDate:   formatOptionalDate(p.ChequeDate),
		SlipDate:     formatOptionalDate(p.SlipDate),
		ClearDate:    formatOptionalDate(p.ClearDate),
		Remarks:      p.Remarks,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

type ListCustomerPaymentResponse struct {
	Payments   []CustomerPaymentResponse `json:"payments"`
	TotalCount int64                     `json:"total_count"`
	Page       int                       `json:"page"`
	Limit      int                       `json:"limit"`
	TotalPages int                       `json:"total_pages"`
}

// ==================== SUPPLIER ====================

type SupplierPaymentRequest struct {
	ID          string          `json:"-"`
	SupplierID  string          `json:"supplier_id" validate:"required,uuid7"`
	Date        string          `json:"date" validate:"required,date"`
	Method      string          `json:"method" validate:"required,oneof=cash cheque online"`
	Amount      decimal.Decimal `json:"amount"`
	ReferenceNo string          `json:"reference_no" validate:"max=100"`
	Remarks     string          `json:"remarks" validate:"max=500"`
}

func (r *SupplierPaymentRequest) Validate() error {
	errs, err := structErrors(r)
	if err != nil {
		return err
	}
	checkAmount(&errs, r.Amount)
	return errs.Err()
}

// ToEntity derives the month from the payment date.
func (r *SupplierPaymentRequest) ToEntity(businessID string) SupplierPayment {
	date, _ := validator.IsValidDate(r.Date)
	return SupplierPayment{
		ID:          r.ID,
		BusinessID:  businessID,
		SupplierID:  r.SupplierID,
		Date:        date,
		Month:       validator.MonthOf(date),
		Method:      Method(r.Method),
		Amount:      r.Amount,
		ReferenceNo: strings.TrimSpace(r.ReferenceNo),
		Remarks:     strings.TrimSpace(r.Remarks),
	}
}

type SupplierPaymentResponse struct {
	ID           string          `json:"id"`
	SupplierID   string          `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	Date         string          `json:"date"`
	Month        string          `json:"month"`
	Method       Method          `json:"method"`
	Amount       decimal.Decimal `json:"amount"`
	ReferenceNo  string          `json:"reference_no"`
	Remarks      string          `json:"remarks"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func ToSupplierPaymentResponse(p SupplierPayment) SupplierPaymentResponse {
	return SupplierPaymentResponse{
		ID:           p.ID,
		SupplierID:   p.SupplierID,
		SupplierName: p.SupplierName,
		Date:         p.Date.Format(validator.DateLayout),
		Month:        p.Month,
		Method:       p.Method,
		Amount:       p.Amount,
		ReferenceNo:  p.ReferenceNo,
		Remarks:      p.Remarks,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

type ListSupplierPaymentResponse struct {
	Payments   []SupplierPaymentResponse `json:"payments"`
	TotalCount int64                     `json:"total_count"`
	Page       int                       `json:"page"`
	Limit      int                       `json:"limit"`
	TotalPages int                       `json:"total_pages"`
}

// ==================== FILTER ====================

// Filter is shared by the three payment lists. PartyID is the staff,
// customer or supplier id; Kind is the staff payment type or the method.
type Filter struct {
	PartyID  string
	Kind     string
	Month    string
	DateFrom string
	DateTo   string
	Page     int
	Limit    int
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors
	if f.Month != "" && !validator.IsValidMonth(f.Month) {
		errs.Add("month", "must be in YYYY-MM format")
	}
	errs.AddID("party_id", f.PartyID)
	errs.AddDate("date_from", f.DateFrom)
	errs.AddDate("date_to", f.DateTo)
	return errs.Err()
}
