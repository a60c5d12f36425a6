package customer

import (
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateCustomerRequest struct {
	Name           string          `json:"name" validate:"required,max=150"`
	Person         string          `json:"person" validate:"required,max=150"`
	Rate           decimal.Decimal `json:"rate"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

func (r *CreateCustomerRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, ve...)
	}
	if r.Rate.IsNegative() {
		errs.Add("rate", "must be non-negative")
	}
	return errs.Err()
}

type UpdateCustomerRequest struct {
	ID             string           `json:"-"`
	Name           *string          `json:"name,omitempty" validate:"omitempty,min=1,max=150"`
	Person         *string          `json:"person,omitempty" validate:"omitempty,min=1,max=150"`
	Rate           *decimal.Decimal `json:"rate,omitempty"`
	OpeningBalance *decimal.Decimal `json:"opening_balance,omitempty"`
}

func (r *UpdateCustomerRequest) Validate() error {
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
	if r.Rate != nil && r.Rate.IsNegative() {
		errs.Add("rate", "must be non-negative")
	}
	return errs.Err()
}

func (r *UpdateCustomerRequest) Apply(c Customer) Customer {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Person != nil {
		c.Person = *r.Person
	}
	if r.Rate != nil {
		c.Rate = *r.Rate
	}
	if r.OpeningBalance != nil {
		c.OpeningBalance = *r.OpeningBalance
	}
	return c
}

type Filter struct {
	Search string
	Active *bool
	Page   int
	Limit  int
}

type CustomerResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Person         string          `json:"person"`
	Rate           decimal.Decimal `json:"rate"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
}

func ToResponse(c Customer) CustomerResponse {
	return CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		Person:         c.Person,
		Rate:           c.Rate,
		OpeningBalance: c.OpeningBalance,
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
	}
}

type ListCustomerResponse struct {
	Customers  []CustomerResponse `json:"customers"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}
