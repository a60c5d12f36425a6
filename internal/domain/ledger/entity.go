// Package ledger derives running balances for staff, customers and suppliers
// from their opening balance and the documents that move money.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type PartyKind string

const (
	PartyStaff    PartyKind = "staff"
	PartyCustomer PartyKind = "customers"
	PartySupplier PartyKind = "suppliers"
)

func ParsePartyKind(s string) (PartyKind, bool) {
	switch PartyKind(s) {
	case PartyStaff, PartyCustomer, PartySupplier:
		return PartyKind(s), true
	}
	return "", false
}

// EntryKind names the document behind a ledger line.
type EntryKind string

const (
	EntryRecord     EntryKind = "record"
	EntryAdjustment EntryKind = "adjustment"
	EntryAdvance    EntryKind = "advance"
	EntryPayment    EntryKind = "payment"
	EntryInvoice    EntryKind = "invoice"
	EntryExpense    EntryKind = "expense"
)

type Party struct {
	ID             string
	Name           string
	OpeningBalance decimal.Decimal
	IsActive       bool
}

// Entry is one dated document. Debits raise the balance owed, credits lower
// it. Exactly one of the two is non-zero.
type Entry struct {
	ID          string
	Kind        EntryKind
	Date        time.Time
	CreatedAt   time.Time
	Reference   string
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// Totals holds the summed debits and credits of one party.
type Totals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Scope narrows an aggregate query. An empty PartyID covers every party of
// the business; a nil Before covers all dates.
type Scope struct {
	BusinessID string
	PartyID    string
	Before     *time.Time
}

type Balance struct {
	PartyID        string          `json:"party_id"`
	Name           string          `json:"name"`
	IsActive       bool            `json:"is_active"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	TotalDebit     decimal.Decimal `json:"total_debit"`
	TotalCredit    decimal.Decimal `json:"total_credit"`
	Balance        decimal.Decimal `json:"balance"`
}

type StatementRow struct {
	Entry
	Balance decimal.Decimal
}

type Statement struct {
	Party          Party
	Kind           PartyKind
	From           *time.Time
	To             *time.Time
	OpeningBalance decimal.Decimal
	Rows           []StatementRow
	TotalDebit     decimal.Decimal
	TotalCredit    decimal.Decimal
	ClosingBalance decimal.Decimal
}
