package supplier

import (
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateSupplierRequest struct {
	Name           string          `json:"name" validate:"required,max=150"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

func (r *CreateSupplierRequest) Validate() error {
	return validator.Struct(r)
}

type UpdateSupplierRequest struct {
	ID             string           `json:"-"`
	Name           *string          `json:"name,omitempty" validate:"omitempty,min=1,max=150"`
	OpeningBalance *decimal.Decimal `json:"opening_balance,omitempty"`
}

func (r *UpdateSupplierRequest) Validate() error {
	if validator.IsEmpty(r.ID) {
		return validator.ValidationErrors{{Field: "id", Message: "is required"}}
	}
	return validator.Struct(r)
}

func (r *UpdateSupplierRequest) Apply(s Supplier) Supplier {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.OpeningBalance != nil {
		s.OpeningBalance = *r.OpeningBalance
	}
	return s
}

type Filter struct {
	Search string
	Active *bool
	Page   int
	Limit  int
}

type SupplierResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
}

func ToResponse(s Supplier) SupplierResponse {
	return SupplierResponse{
		ID:             s.ID,
		Name:           s.Name,
		OpeningBalance: s.OpeningBalance,
		IsActive:       s.IsActive,
		CreatedAt:      s.CreatedAt,
	}
}

type ListSupplierResponse struct {
	Suppliers  []SupplierResponse `json:"suppliers"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}
