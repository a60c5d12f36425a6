package ledger

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// BalanceOf folds a party's summed documents onto its opening balance.
func BalanceOf(p ledger.Party, t ledger.Totals) ledger.Balance {
	return ledger.Balance{
		PartyID:        p.ID,
		Name:           p.Name,
		IsActive:       p.IsActive,
		OpeningBalance: p.OpeningBalance,
		TotalDebit:     t.Debit,
		TotalCredit:    t.Credit,
		Balance:        p.OpeningBalance.Add(t.Debit).Sub(t.Credit),
	}
}

// Balances pairs every party with its totals. Parties without documents
// keep their opening balance. Order follows parties.
func Balances(parties []ledger.Party, totals map[string]ledger.Totals) []ledger.Balance {
	out := make([]ledger.Balance, 0, len(parties))
	for _, p := range parties {
		out = append(out, BalanceOf(p, totals[p.ID]))
	}
	return out
}

// SumEntries totals debits and credits regardless of order.
func SumEntries(entries []ledger.Entry) ledger.Totals {
	var t ledger.Totals
	for _, e := range entries {
		t.Debit = t.Debit.Add(e.Debit)
		t.Credit = t.Credit.Add(e.Credit)
	}
	return t
}

// SortEntries orders entries by (date, createdAt, id) ascending.
func SortEntries(entries []ledger.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// BuildStatement runs a balance through the window's entries. opening is the
// balance as of the window start; the closing balance always equals the last
// row's balance, or opening when the window is empty.
func BuildStatement(kind ledger.PartyKind, party ledger.Party, opening decimal.Decimal, from, to *time.Time, entries []ledger.Entry) ledger.Statement {
	sorted := make([]ledger.Entry, len(entries))
	copy(sorted, entries)
	SortEntries(sorted)

	st := ledger.Statement{
		Party:          party,
		Kind:           kind,
		From:           from,
		To:             to,
		OpeningBalance: opening,
		Rows:           make([]ledger.StatementRow, 0, len(sorted)),
	}
	running := opening
	for _, e := range sorted {
		running = running.Add(e.Debit).Sub(e.Credit)
		st.TotalDebit = st.TotalDebit.Add(e.Debit)
		st.TotalCredit = st.TotalCredit.Add(e.Credit)
		st.Rows = append(st.Rows, ledger.StatementRow{Entry: e, Balance: running})
	}
	st.ClosingBalance = running
	return st
}
