package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRepository reads the ledger sources. Each method is a single
// statement; results of separate calls are not mutually consistent.
type LedgerRepository interface {
	Parties(ctx context.Context, kind PartyKind, scope Scope) ([]Party, error)
	// Debits and Credits sum each party's documents on either side.
	Debits(ctx context.Context, kind PartyKind, scope Scope) (map[string]decimal.Decimal, error)
	Credits(ctx context.Context, kind PartyKind, scope Scope) (map[string]decimal.Decimal, error)
	// Entries lists the party's documents dated within [from, to]; nil
	// bounds are open.
	Entries(ctx context.Context, kind PartyKind, businessID, partyID string, from, to *time.Time) ([]Entry, error)
}
