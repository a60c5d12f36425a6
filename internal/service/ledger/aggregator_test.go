package ledger

import (
	"math/rand"
	"testing"
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(d int) time.Time {
	return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)
}

// staffEntries mirrors a month of one staff member: records and adjustments
// are debits, advances and payments are credits.
func staffEntries() []ledger.Entry {
	return []ledger.Entry{
		{ID: "r1", Kind: ledger.EntryRecord, Date: day(1), Debit: dec("1200")},
		{ID: "r2", Kind: ledger.EntryRecord, Date: day(2), Debit: dec("4408")},
		{ID: "a1", Kind: ledger.EntryAdvance, Date: day(2), Credit: dec("1500")},
		{ID: "j1", Kind: ledger.EntryAdjustment, Date: day(3), Debit: dec("250.50")},
		{ID: "p1", Kind: ledger.EntryPayment, Date: day(5), Credit: dec("3000")},
		{ID: "r3", Kind: ledger.EntryRecord, Date: day(6), Debit: dec("0")},
	}
}

func TestBalanceOf(t *testing.T) {
	party := ledger.Party{ID: "s1", Name: "Ali", OpeningBalance: dec("-500")}
	b := BalanceOf(party, SumEntries(staffEntries()))

	assert.True(t, dec("5858.50").Equal(b.TotalDebit), b.TotalDebit.String())
	assert.True(t, dec("4500").Equal(b.TotalCredit), b.TotalCredit.String())
	assert.True(t, dec("858.50").Equal(b.Balance), b.Balance.String())
}

func TestBalance_OrderIndependent(t *testing.T) {
	party := ledger.Party{ID: "s1", OpeningBalance: dec("100")}
	want := BalanceOf(party, SumEntries(staffEntries())).Balance

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 25; i++ {
		entries := staffEntries()
		rng.Shuffle(len(entries), func(a, b int) { entries[a], entries[b] = entries[b], entries[a] })

		got := BalanceOf(party, SumEntries(entries)).Balance
		require.True(t, want.Equal(got), "permutation %d: %s != %s", i, got, want)

		st := BuildStatement(ledger.PartyStaff, party, party.OpeningBalance, nil, nil, entries)
		require.True(t, want.Equal(st.ClosingBalance), "statement permutation %d", i)
	}
}

func TestBalances_PartiesWithoutDocuments(t *testing.T) {
	parties := []ledger.Party{
		{ID: "c1", Name: "Star", OpeningBalance: dec("1000")},
		{ID: "c2", Name: "Moon", OpeningBalance: dec("0")},
	}
	totals := map[string]ledger.Totals{"c1": {Debit: dec("2000"), Credit: dec("2500")}}

	got := Balances(parties, totals)
	require.Len(t, got, 2)
	assert.True(t, dec("500").Equal(got[0].Balance))
	assert.True(t, got[1].Balance.IsZero())
	assert.Equal(t, "Moon", got[1].Name)
}

func TestBuildStatement_Reconciles(t *testing.T) {
	party := ledger.Party{ID: "s1", OpeningBalance: dec("200")}
	all := staffEntries()

	from := day(2)
	var before, within []ledger.Entry
	for _, e := range all {
		if e.Date.Before(from) {
			before = append(before, e)
		} else {
			within = append(within, e)
		}
	}
	opening := BalanceOf(party, SumEntries(before)).Balance
	assert.True(t, dec("1400").Equal(opening), opening.String())

	st := BuildStatement(ledger.PartyStaff, party, opening, &from, nil, within)

	require.Len(t, st.Rows, 5)
	expectedClosing := st.OpeningBalance.Add(st.TotalDebit).Sub(st.TotalCredit)
	assert.True(t, expectedClosing.Equal(st.ClosingBalance))
	assert.True(t, st.Rows[len(st.Rows)-1].Balance.Equal(st.ClosingBalance))
	assert.True(t, BalanceOf(party, SumEntries(all)).Balance.Equal(st.ClosingBalance))
}

func TestBuildStatement_TieBreak(t *testing.T) {
	created := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	entries := []ledger.Entry{
		{ID: "b", Date: day(2), CreatedAt: created, Credit: dec("10")},
		{ID: "c", Date: day(2), CreatedAt: created.Add(-time.Hour), Debit: dec("5")},
		{ID: "a", Date: day(2), CreatedAt: created, Debit: dec("30")},
		{ID: "z", Date: day(1), CreatedAt: created.Add(time.Hour), Debit: dec("1")},
	}

	st := BuildStatement(ledger.PartyCustomer, ledger.Party{ID: "c1"}, decimal.Zero, nil, nil, entries)

	var order []string
	for _, r := range st.Rows {
		order = append(order, r.ID)
	}
	assert.Equal(t, []string{"z", "c", "a", "b"}, order)
	assert.Equal(t, []string{"1", "6", "36", "26"}, balances(st))
	assert.Equal(t, "b", entries[0].ID, "input must not be reordered")
}

func TestBuildStatement_EmptyWindow(t *testing.T) {
	from, to := day(10), day(20)
	st := BuildStatement(ledger.PartySupplier, ledger.Party{ID: "s"}, dec("75"), &from, &to, nil)

	assert.Empty(t, st.Rows)
	assert.True(t, dec("75").Equal(st.ClosingBalance))
	assert.True(t, st.TotalDebit.IsZero())
}

func balances(st ledger.Statement) []string {
	out := make([]string, 0, len(st.Rows))
	for _, r := range st.Rows {
		out = append(out, r.Balance.String())
	}
	return out
}
