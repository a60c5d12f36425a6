package invoice

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MaxOrders caps how many orders one invoice may bill.
const MaxOrders = 7

type Invoice struct {
	ID             string
	BusinessID     string
	Number         string
	CustomerID     string
	CustomerName   string
	CustomerPerson string
	OrderIDs       []string
	OrderCount     int
	TotalAmount    decimal.Decimal
	InvoiceDate    time.Time
	Note           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FormatNumber renders the per-year sequence, e.g. INV-2024-0007.
func FormatNumber(year, seq int) string {
	return fmt.Sprintf("INV-%d-%04d", year, seq)
}

// PriorTotals are the customer's invoices and payments ordered strictly
// before an invoice by (date, created_at, id).
type PriorTotals struct {
	Invoiced decimal.Decimal
	Paid     decimal.Decimal
}
