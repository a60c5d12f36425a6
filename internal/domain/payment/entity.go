package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

type StaffPaymentType string

const (
	StaffAdvance    StaffPaymentType = "advance"
	StaffPayout     StaffPaymentType = "payment"
	StaffAdjustment StaffPaymentType = "adjustment"
)

func (t StaffPaymentType) Valid() bool {
	switch t {
	case StaffAdvance, StaffPayout, StaffAdjustment:
		return true
	}
	return false
}

type Method string

const (
	MethodCash       Method = "cash"
	MethodCheque     Method = "cheque"
	MethodSlip       Method = "slip"
	MethodOnline     Method = "online"
	MethodAdjustment Method = "adjustment"
)

// StaffPayment moves money between the business and a staff member.
// Adjustments add to the balance owed; advances and payments reduce it.
type StaffPayment struct {
	ID         string
	BusinessID string
	StaffID    string
	StaffName  string
	Date       time.Time
	Month      string
	Type       StaffPaymentType
	Amount     decimal.Decimal
	Remarks    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type CustomerPayment struct {
	ID           string
	BusinessID   string
	CustomerID   string
	CustomerName string
	Date         time.Time
	Month        string
	Method       Method
	Amount       decimal.Decimal
	ReferenceNo  string
	BankName     string
	PartyName    string
	ChequeDate   *time.Time
	SlipDate     *time.Time
	ClearDate    *time.Time
	Remarks      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type SupplierPayment struct {
	ID           string
	BusinessID   string
	SupplierID   string
	SupplierName string
	Date         time.Time
	Month        string
	Method       Method
	Amount       decimal.Decimal
	ReferenceNo  string
	Remarks      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// KindTotal is the count and amount for one payment type or method.
type KindTotal struct {
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

type Stats struct {
	Count       int64                `json:"count"`
	TotalAmount decimal.Decimal      `json:"total_amount"`
	ByKind      map[string]KindTotal `json:"by_kind"`
}
