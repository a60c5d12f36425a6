package staff

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryEmbroidery Category = "Embroidery"
	CategoryCropping   Category = "Cropping"
)

// NormalizeCategory maps free text onto a category. Empty means Embroidery
// and the legacy "Packing" label is Cropping.
func NormalizeCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "embroidery":
		return CategoryEmbroidery, true
	case "cropping", "packing":
		return CategoryCropping, true
	}
	return "", false
}

type Staff struct {
	ID             string
	BusinessID     string
	Name           string
	Category       Category
	JoiningDate    *time.Time
	Salary         *decimal.Decimal
	OpeningBalance decimal.Decimal
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsSalaried reports a fixed monthly salary. Zero counts as no salary.
func (s Staff) IsSalaried() bool {
	return s.Salary != nil && s.Salary.IsPositive()
}

// ProducesEmbroidery reports whether the production engine pays this staff
// member; Cropping staff are paid from a separate rate sheet.
func (s Staff) ProducesEmbroidery() bool {
	return s.Category != CategoryCropping
}

type Stats struct {
	Total    int64
	Active   int64
	Inactive int64
}
