package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Unit string

const (
	UnitDozen Unit = "Dzn"
	UnitPiece Unit = "Pcs"
)

// ParseUnit accepts the unit labels used on order sheets. Empty means dozen.
func ParseUnit(s string) (Unit, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dzn", "dozen":
		return UnitDozen, true
	case "pcs", "pc", "piece", "pieces":
		return UnitPiece, true
	}
	return "", false
}

// Inputs are the operator-entered fields an order is priced from.
type Inputs struct {
	CustomerBaseRate decimal.Decimal
	Unit             Unit
	Quantity         decimal.Decimal
	ActualStitches   decimal.Decimal
	Apq              *decimal.Decimal
	ApqChr           *decimal.Decimal
	RateInput        decimal.Decimal
	Reverse          bool
	TwoSide          bool
}

// Pricing holds the derived fields. They are recomputed on every write.
type Pricing struct {
	Rate           decimal.Decimal `json:"rate"`
	DesignStitches decimal.Decimal `json:"design_stitches"`
	QtPcs          decimal.Decimal `json:"qt_pcs"`
	CalculatedRate decimal.Decimal `json:"calculated_rate"`
	StitchRate     decimal.Decimal `json:"stitch_rate"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

type Order struct {
	ID           string
	BusinessID   string
	CustomerID   string
	CustomerName string
	Description  string
	Date         time.Time
	MachineNo    string
	LotNo        string
	Inputs
	Pricing
	InvoiceID *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o Order) IsInvoiced() bool {
	return o.InvoiceID != nil && *o.InvoiceID != ""
}
