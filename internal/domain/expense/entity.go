package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeCash     Type = "cash"
	TypeSupplier Type = "supplier"
	TypeFixed    Type = "fixed"
)

// Expense is a single line item. Items created together share a GroupKey.
// Supplier expenses add to what the business owes that supplier.
type Expense struct {
	ID           string
	BusinessID   string
	Type         Type
	ItemName     string
	Amount       decimal.Decimal
	Date         time.Time
	Month        string
	ReferenceNo  string
	Remarks      string
	SupplierID   *string
	SupplierName string
	GroupKey     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Stats struct {
	Total         int64           `json:"total"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CashCount     int64           `json:"cash_count"`
	SupplierCount int64           `json:"supplier_count"`
	FixedCount    int64           `json:"fixed_count"`
}
