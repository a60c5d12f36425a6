package staff

import (
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateStaffRequest struct {
	Name           string           `json:"name" validate:"required,max=150"`
	Category       string           `json:"category"`
	JoiningDate    string           `json:"joining_date" validate:"omitempty,date"`
	Salary         *decimal.Decimal `json:"salary,omitempty"`
	OpeningBalance decimal.Decimal  `json:"opening_balance"`
}

func (r *CreateStaffRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, ve...)
	}
	if _, ok := NormalizeCategory(r.Category); !ok {
		errs.Add("category", "must be one of: Embroidery, Cropping")
	}
	if r.Salary != nil && r.Salary.IsNegative() {
		errs.Add("salary", "must be non-negative")
	}
	return errs.Err()
}

func (r *CreateStaffRequest) ToEntity(businessID string) Staff {
	category, _ := NormalizeCategory(r.Category)
	return Staff{
		BusinessID:     businessID,
		Name:           r.Name,
		Category:       category,
		JoiningDate:    parseOptionalDate(r.JoiningDate),
		Salary:         r.Salary,
		OpeningBalance: r.OpeningBalance,
		IsActive:       true,
	}
}

type UpdateStaffRequest struct {
	ID             string           `json:"-"`
	Name           *string          `json:"name,omitempty" validate:"omitempty,min=1,max=150"`
	Category       *string          `json:"category,omitempty"`
	JoiningDate    *string          `json:"joining_date,omitempty" validate:"omitempty,date"`
	Salary         *decimal.Decimal `json:"salary,omitempty"`
	ClearSalary    bool             `json:"clear_salary,omitempty"`
	OpeningBalance *decimal.Decimal `json:"opening_balance,omitempty"`
}

func (r *UpdateStaffRequest) Validate() error {
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
	if r.Category != nil {
		if _, ok := NormalizeCategory(*r.Category); !ok {
			errs.Add("category", "must be one of: Embroidery, Cropping")
		}
	}
	if r.Salary != nil && r.Salary.IsNegative() {
		errs.Add("salary", "must be non-negative")
	}
	return errs.Err()
}

func (r *UpdateStaffRequest) Apply(s Staff) Staff {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Category != nil {
		s.Category, _ = NormalizeCategory(*r.Category)
	}
	if r.JoiningDate != nil {
		s.JoiningDate = parseOptionalDate(*r.JoiningDate)
	}
	if r.ClearSalary {
		s.Salary = nil
	} else if r.Salary != nil {
		v := *r.Salary
		s.Salary = &v
	}
	if r.OpeningBalance != nil {
		s.OpeningBalance = *r.OpeningBalance
	}
	return s
}

type Filter struct {
	Search   string
	Category string
	Active   *bool
	Page     int
	Limit    int
}

type StaffResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Category       Category         `json:"category"`
	JoiningDate    *string          `json:"joining_date"`
	Salary         *decimal.Decimal `json:"salary"`
	OpeningBalance decimal.Decimal  `json:"opening_balance"`
	IsActive       bool             `json:"is_active"`
	CreatedAt      time.Time        `json:"created_at"`
}

func ToResponse(s Staff) StaffResponse {
	var joining *string
	if s.JoiningDate != nil {
		v := s.JoiningDate.Format(validator.DateLayout)
		joining = &v
	}
	return StaffResponse{
		ID:             s.ID,
		Name:           s.Name,
		Category:       s.Category,
		JoiningDate:    joining,
		Salary:         s.Salary,
		OpeningBalance: s.OpeningBalance,
		IsActive:       s.IsActive,
		CreatedAt:      s.CreatedAt,
	}
}

type ListStaffResponse struct {
	Staff      []StaffResponse `json:"staff"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

func parseOptionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	if d, ok := validator.IsValidDate(s); ok {
		return &d
	}
	return nil
}
