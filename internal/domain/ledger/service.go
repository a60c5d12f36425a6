package ledger

import "context"

type LedgerService interface {
	Balance(ctx context.Context, kind PartyKind, partyID string) (Balance, error)
	Balances(ctx context.Context, kind PartyKind) ([]Balance, error)
	Statement(ctx context.Context, kind PartyKind, partyID string, req StatementRequest) (StatementResponse, error)
	// ExportStatement renders the statement as xlsx or pdf and returns the
	// bytes, a file name and a content type.
	ExportStatement(ctx context.Context, kind PartyKind, partyID string, req StatementRequest) ([]byte, string, string, error)
}
