package ledger

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/ledger"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/customer"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const biz = "biz-1"

// memoryLedger answers every query from a fixed set of customer documents.
type memoryLedger struct {
	parties []ledger.Party
	entries map[string][]ledger.Entry
}

func (m *memoryLedger) Parties(_ context.Context, _ ledger.PartyKind, scope ledger.Scope) ([]ledger.Party, error) {
	var out []ledger.Party
	for _, p := range m.parties {
		if scope.PartyID == "" || scope.PartyID == p.ID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memoryLedger) sum(scope ledger.Scope, side func(ledger.Entry) decimal.Decimal) map[string]decimal.Decimal {
	out := map[string]decimal.Decimal{}
	for id, entries := range m.entries {
		if scope.PartyID != "" && scope.PartyID != id {
			continue
		}
		for _, e := range entries {
			if scope.Before != nil && !e.Date.Before(*scope.Before) {
				continue
			}
			out[id] = out[id].Add(side(e))
		}
	}
	return out
}

func (m *memoryLedger) Debits(_ context.Context, _ ledger.PartyKind, scope ledger.Scope) (map[string]decimal.Decimal, error) {
	return m.sum(scope, func(e ledger.Entry) decimal.Decimal { return e.Debit }), nil
}

func (m *memoryLedger) Credits(_ context.Context, _ ledger.PartyKind, scope ledger.Scope) (map[string]decimal.Decimal, error) {
	return m.sum(scope, func(e ledger.Entry) decimal.Decimal { return e.Credit }), nil
}

func (m *memoryLedger) Entries(_ context.Context, _ ledger.PartyKind, _ string, partyID string, from, to *time.Time) ([]ledger.Entry, error) {
	var out []ledger.Entry
	for _, e := range m.entries[partyID] {
		if from != nil && e.Date.Before(*from) {
			continue
		}
		if to != nil && e.Date.After(*to) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func newLedger() *memoryLedger {
	return &memoryLedger{
		parties: []ledger.Party{
			{ID: "c1", Name: "Star Textiles", OpeningBalance: dec("1000"), IsActive: true},
			{ID: "c2", Name: "Moon Fabrics", OpeningBalance: dec("50"), IsActive: false},
		},
		entries: map[string][]ledger.Entry{
			"c1": {
				{ID: "i1", Kind: ledger.EntryInvoice, Date: day(3), Reference: "INV-2024-0001", Debit: dec("1500")},
				{ID: "p1", Kind: ledger.EntryPayment, Date: day(10), Reference: "cash", Credit: dec("700")},
				{ID: "i2", Kind: ledger.EntryInvoice, Date: day(15), Reference: "INV-2024-0002", Debit: dec("900")},
				{ID: "p2", Kind: ledger.EntryPayment, Date: day(28), Reference: "cheque", Credit: dec("1200")},
			},
		},
	}
}

func testCtx() context.Context {
	return jwt.ContextWithPrincipal(context.Background(), user.Principal{UserID: "u-1", BusinessID: biz, Role: user.RoleAdmin})
}

func TestLedgerService_Balance(t *testing.T) {
	svc := NewLedgerService(newLedger(), logger.Discard())

	b, err := svc.Balance(testCtx(), ledger.PartyCustomer, "c1")
	require.NoError(t, err)
	assert.True(t, dec("1500").Equal(b.Balance), b.Balance.String())
	assert.True(t, dec("2400").Equal(b.TotalDebit))
	assert.True(t, dec("1900").Equal(b.TotalCredit))

	_, err = svc.Balance(testCtx(), ledger.PartyCustomer, "c9")
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)

	_, err = svc.Balance(testCtx(), ledger.PartyKind("banks"), "c1")
	assert.ErrorIs(t, err, ledger.ErrUnknownParty)
}

func TestLedgerService_Balances(t *testing.T) {
	svc := NewLedgerService(newLedger(), logger.Discard())

	list, err := svc.Balances(testCtx(), ledger.PartyCustomer)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, dec("1500").Equal(list[0].Balance))
	assert.True(t, dec("50").Equal(list[1].Balance))
	assert.False(t, list[1].IsActive)
}

func TestLedgerService_StatementWindow(t *testing.T) {
	svc := NewLedgerService(newLedger(), logger.Discard())

	st, err := svc.Statement(testCtx(), ledger.PartyCustomer, "c1", ledger.StatementRequest{From: "2024-05-10", To: "2024-05-20"})
	require.NoError(t, err)

	assert.True(t, dec("2500").Equal(st.OpeningBalance), st.OpeningBalance.String())
	require.Len(t, st.Rows, 2)
	assert.Equal(t, "p1", st.Rows[0].ID)
	assert.True(t, dec("1800").Equal(st.Rows[0].Balance))
	assert.True(t, dec("2700").Equal(st.ClosingBalance))
	assert.Equal(t, "2024-05-10", *st.From)
	assert.Equal(t, "Star Textiles", st.PartyName)
}

func TestLedgerService_StatementWithoutStart(t *testing.T) {
	svc := NewLedgerService(newLedger(), logger.Discard())

	st, err := svc.Statement(testCtx(), ledger.PartyCustomer, "c1", ledger.StatementRequest{})
	require.NoError(t, err)
	assert.True(t, dec("1000").Equal(st.OpeningBalance))
	assert.Len(t, st.Rows, 4)
	assert.True(t, dec("1500").Equal(st.ClosingBalance))
	assert.Nil(t, st.From)
}

func TestLedgerService_StatementValidation(t *testing.T) {
	svc := NewLedgerService(newLedger(), logger.Discard())

	_, err := svc.Statement(testCtx(), ledger.PartyCustomer, "c1", ledger.StatementRequest{From: "2024-05-20", To: "2024-05-10"})
	assert.ErrorIs(t, err, ledger.ErrInvalidWindow)

	_, err = svc.Statement(testCtx(), ledger.PartyCustomer, "c1", ledger.StatementRequest{From: "10/05/2024", Format: "csv"})
	var ve validator.ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.ToMap(), "from")
	assert.Contains(t, ve.ToMap(), "format")
}

func TestLedgerService_ExportStatement(t *testing.T) {
	svc := NewLedgerService(newLedger(), logger.Discard())

	out, name, contentType, err := svc.ExportStatement(testCtx(), ledger.PartyCustomer, "c1", ledger.StatementRequest{Format: ledger.FormatPDF})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Equal(t, "statement-customers-c1.pdf", name)
	assert.Equal(t, export.ContentTypePDF, contentType)

	out, name, contentType, err = svc.ExportStatement(testCtx(), ledger.PartyCustomer, "c1", ledger.StatementRequest{Format: ledger.FormatXLSX})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("PK")))
	assert.Equal(t, "statement-customers-c1.xlsx", name)
	assert.Equal(t, export.ContentTypeXLSX, contentType)

	_, _, _, err = svc.ExportStatement(testCtx(), ledger.PartyCustomer, "c1", ledger.StatementRequest{Format: ledger.FormatJSON})
	assert.ErrorIs(t, err, ledger.ErrUnknownFormat)
}
