package order

import (
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// PricingInput is the part of a request the calculator reads.
type PricingInput struct {
	Unit           string           `json:"unit"`
	Quantity       decimal.Decimal  `json:"quantity"`
	ActualStitches decimal.Decimal  `json:"actual_stitches"`
	Apq            *decimal.Decimal `json:"apq"`
	ApqChr         *decimal.Decimal `json:"apq_chr"`
	Rate           decimal.Decimal  `json:"rate"`
	Reverse        bool             `json:"reverse"`
	TwoSide        bool             `json:"two_side"`
}

func (p PricingInput) validate(errs *validator.ValidationErrors) {
	if _, ok := ParseUnit(p.Unit); !ok {
		errs.Add("unit", ErrInvalidUnit.Error())
	}
	if p.Quantity.IsNegative() {
		errs.Add("quantity", "must be non-negative")
	}
	if p.ActualStitches.IsNegative() {
		errs.Add("actual_stitches", "must be non-negative")
	}
	if p.Rate.IsNegative() {
		errs.Add("rate", "must be non-negative")
	}
}

// Inputs converts the request fields; apq normalization happens in pricing.
func (p PricingInput) Inputs(baseRate decimal.Decimal) Inputs {
	unit, _ := ParseUnit(p.Unit)
	return Inputs{
		CustomerBaseRate: baseRate,
		Unit:             unit,
		Quantity:         p.Quantity,
		ActualStitches:   p.ActualStitches,
		Apq:              p.Apq,
		ApqChr:           p.ApqChr,
		RateInput:        p.Rate,
		Reverse:          p.Reverse,
		TwoSide:          p.TwoSide,
	}
}

type CreateOrderRequest struct {
	CustomerID  string `json:"customer_id" validate:"required,uuid7"`
	Description string `json:"description" validate:"max=500"`
	Date        string `json:"date" validate:"required,date"`
	MachineNo   string `json:"machine_no" validate:"required,max=50"`
	LotNo       string `json:"lot_no" validate:"max=50"`
	PricingInput
}

func (r *CreateOrderRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, ve...)
	}
	r.PricingInput.validate(&errs)
	return errs.Err()
}

// UpdateOrderRequest patches an order. Nil fields keep their stored value.
type UpdateOrderRequest struct {
	ID             string           `json:"-"`
	CustomerID     *string          `json:"customer_id,omitempty" validate:"omitempty,uuid7"`
	Description    *string          `json:"description,omitempty" validate:"omitempty,max=500"`
	Date           *string          `json:"date,omitempty" validate:"omitempty,date"`
	MachineNo      *string          `json:"machine_no,omitempty" validate:"omitempty,min=1,max=50"`
	LotNo          *string          `json:"lot_no,omitempty" validate:"omitempty,max=50"`
	Unit           *string          `json:"unit,omitempty"`
	Quantity       *decimal.Decimal `json:"quantity,omitempty"`
	ActualStitches *decimal.Decimal `json:"actual_stitches,omitempty"`
	Apq            *decimal.Decimal `json:"apq,omitempty"`
	ClearApq       bool             `json:"clear_apq,omitempty"`
	ApqChr         *decimal.Decimal `json:"apq_chr,omitempty"`
	ClearApqChr    bool             `json:"clear_apq_chr,omitempty"`
	Rate           *decimal.Decimal `json:"rate,omitempty"`
	Reverse        *bool            `json:"reverse,omitempty"`
	TwoSide        *bool            `json:"two_side,omitempty"`
}

func (r *UpdateOrderRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "is required")
	}
	if err := validator.Struct(r); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, ve...)
	}
	if r.Unit != nil {
		if _, ok := ParseUnit(*r.Unit); !ok {
			errs.Add("unit", ErrInvalidUnit.Error())
		}
	}
	amounts := []struct {
		name  string
		value *decimal.Decimal
	}{
		{"quantity", r.Quantity},
		{"actual_stitches", r.ActualStitches},
		{"rate", r.Rate},
	}
	for _, a := range amounts {
		if a.value != nil && a.value.IsNegative() {
			errs.Add(a.name, "must be non-negative")
		}
	}
	return errs.Err()
}

// Apply merges the patch onto the stored order. Pricing is left for the
// caller to recompute.
func (r *UpdateOrderRequest) Apply(o Order) Order {
	if r.CustomerID != nil {
		o.CustomerID = *r.CustomerID
	}
	if r.Description != nil {
		o.Description = *r.Description
	}
	if r.Date != nil {
		if d, ok := validator.IsValidDate(*r.Date); ok {
			o.Date = d
		}
	}
	if r.MachineNo != nil {
		o.MachineNo = *r.MachineNo
	}
	if r.LotNo != nil {
		o.LotNo = *r.LotNo
	}
	if r.Unit != nil {
		o.Unit, _ = ParseUnit(*r.Unit)
	}
	if r.Quantity != nil {
		o.Quantity = *r.Quantity
	}
	if r.ActualStitches != nil {
		o.ActualStitches = *r.ActualStitches
	}
	if r.ClearApq {
		o.Apq = nil
	} else if r.Apq != nil {
		o.Apq = r.Apq
	}
	if r.ClearApqChr {
		o.ApqChr = nil
	} else if r.ApqChr != nil {
		o.ApqChr = r.ApqChr
	}
	if r.Rate != nil {
		o.RateInput = *r.Rate
	}
	if r.Reverse != nil {
		o.Reverse = *r.Reverse
	}
	if r.TwoSide != nil {
		o.TwoSide = *r.TwoSide
	}
	return o
}

// PreviewRequest prices an order without saving it. CustomerBaseRate, when
// set, takes precedence over the customer's stored rate.
type PreviewRequest struct {
	CustomerID       string           `json:"customer_id" validate:"omitempty,uuid7"`
	CustomerBaseRate *decimal.Decimal `json:"customer_base_rate,omitempty"`
	Date             string           `json:"date" validate:"omitempty,date"`
	PricingInput
}

func (r *PreviewRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, ve...)
	}
	if r.CustomerID == "" && r.CustomerBaseRate == nil {
		errs.Add("customer_id", "customer_id or customer_base_rate is required")
	}
	if r.CustomerBaseRate != nil && r.CustomerBaseRate.IsNegative() {
		errs.Add("customer_base_rate", "must be non-negative")
	}
	r.PricingInput.validate(&errs)
	return errs.Err()
}

type Filter struct {
	CustomerID   string
	CustomerName string
	MachineNo    string
	Month        string
	DateFrom     string
	DateTo       string
	Uninvoiced   bool
	Page         int
	Limit        int
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors
	if f.Month != "" && !validator.IsValidMonth(f.Month) {
		errs.Add("month", "must be in YYYY-MM format")
	}
	errs.AddID("customer_id", f.CustomerID)
	errs.AddDate("date_from", f.DateFrom)
	errs.AddDate("date_to", f.DateTo)
	return errs.Err()
}

type OrderResponse struct {
	ID               string           `json:"id"`
	CustomerID       string           `json:"customer_id"`
	CustomerName     string           `json:"customer_name"`
	CustomerBaseRate decimal.Decimal  `json:"customer_base_rate"`
	Description      string           `json:"description"`
	Date             string           `json:"date"`
	MachineNo        string           `json:"machine_no"`
	LotNo            string           `json:"lot_no"`
	Unit             Unit             `json:"unit"`
	Quantity         decimal.Decimal  `json:"quantity"`
	ActualStitches   decimal.Decimal  `json:"actual_stitches"`
	Apq              *decimal.Decimal `json:"apq"`
	ApqChr           *decimal.Decimal `json:"apq_chr"`
	RateInput        decimal.Decimal  `json:"rate_input"`
	Reverse          bool             `json:"reverse"`
	TwoSide          bool             `json:"two_side"`
	Pricing
	InvoiceID *string   `json:"invoice_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToResponse(o Order) OrderResponse {
	return OrderResponse{
		ID:               o.ID,
		CustomerID:       o.CustomerID,
		CustomerName:     o.CustomerName,
		CustomerBaseRate: o.CustomerBaseRate,
		Description:      o.Description,
		Date:             o.Date.Format(validator.DateLayout),
		MachineNo:        o.MachineNo,
		LotNo:            o.LotNo,
		Unit:             o.Unit,
		Quantity:         o.Quantity,
		ActualStitches:   o.ActualStitches,
		Apq:              o.Apq,
		ApqChr:           o.ApqChr,
		RateInput:        o.RateInput,
		Reverse:          o.Reverse,
		TwoSide:          o.TwoSide,
		Pricing:          o.Pricing,
		InvoiceID:        o.InvoiceID,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

type ListOrderResponse struct {
	Orders     []OrderResponse `json:"orders"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

type Stats struct {
	TotalOrders int64           `json:"total_orders"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
