package expense

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Item is a catalog entry that prefills expense forms. Names are unique per
// business and expense type.
type Item struct {
	ID            string
	BusinessID    string
	Name          string
	Type          Type
	DefaultAmount decimal.Decimal
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type CreateItemRequest struct {
	Name          string          `json:"name" validate:"required,max=150"`
	Type          string          `json:"expense_type" validate:"required,oneof=cash supplier fixed"`
	DefaultAmount decimal.Decimal `json:"default_amount"`
}

func (r *CreateItemRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = ve
	}
	if r.DefaultAmount.IsNegative() {
		errs.Add("default_amount", "must be non-negative")
	}
	return errs.Err()
}

func (r *CreateItemRequest) ToEntity(businessID string) Item {
	return Item{
		BusinessID:    businessID,
		Name:          r.Name,
		Type:          Type(r.Type),
		DefaultAmount: r.DefaultAmount.Round(2),
		IsActive:      true,
	}
}

type UpdateItemRequest struct {
	ID            string           `json:"-"`
	Name          *string          `json:"name,omitempty"`
	Type          *string          `json:"expense_type,omitempty" validate:"omitempty,oneof=cash supplier fixed"`
	DefaultAmount *decimal.Decimal `json:"default_amount,omitempty"`
}

func (r *UpdateItemRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "is required")
	}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
		if name == "" {
			errs.Add("name", "is required")
		} else if len(name) > 150 {
			errs.Add("name", "must be at most 150 characters")
		}
	}
	if err := validator.Struct(r); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, ve...)
	}
	if r.DefaultAmount != nil && r.DefaultAmount.IsNegative() {
		errs.Add("default_amount", "must be non-negative")
	}
	return errs.Err()
}

func (r *UpdateItemRequest) Apply(it Item) Item {
	if r.Name != nil {
		it.Name = *r.Name
	}
	if r.Type != nil {
		it.Type = Type(*r.Type)
	}
	if r.DefaultAmount != nil {
		it.DefaultAmount = r.DefaultAmount.Round(2)
	}
	return it
}

// ItemFilter narrows the catalog; Status is "active", "inactive" or empty.
type ItemFilter struct {
	Type   string
	Status string
	Name   string
}

func (f *ItemFilter) Validate() error {
	var errs validator.ValidationErrors
	switch Type(f.Type) {
	case "", TypeCash, TypeSupplier, TypeFixed:
	default:
		errs.Add("expense_type", "must be one of: cash, supplier, fixed")
	}
	switch f.Status {
	case "", "active", "inactive":
	default:
		errs.Add("status", "must be one of: active, inactive")
	}
	return errs.Err()
}

// Active maps Status onto an is_active predicate; nil means either.
func (f *ItemFilter) Active() *bool {
	var active bool
	switch f.Status {
	case "active":
		active = true
	case "inactive":
	default:
		return nil
	}
	return &active
}

type ItemResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Type          Type            `json:"expense_type"`
	DefaultAmount decimal.Decimal `json:"default_amount"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func ToItemResponse(it Item) ItemResponse {
	return ItemResponse{
		ID:            it.ID,
		Name:          it.Name,
		Type:          it.Type,
		DefaultAmount: it.DefaultAmount,
		IsActive:      it.IsActive,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}
