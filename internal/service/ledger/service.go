package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/ledger"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/customer"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/staff"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/supplier"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const module = "ledger"

type LedgerServiceImpl struct {
	repo ledger.LedgerRepository
	log  *logrus.Logger
}

func NewLedgerService(repo ledger.LedgerRepository, log *logrus.Logger) ledger.LedgerService {
	return &LedgerServiceImpl{repo: repo, log: log}
}

func partyNotFound(kind ledger.PartyKind) error {
	switch kind {
	case ledger.PartyStaff:
		return staff.ErrStaffNotFound
	case ledger.PartyCustomer:
		return customer.ErrCustomerNotFound
	case ledger.PartySupplier:
		return supplier.ErrSupplierNotFound
	}
	return ledger.ErrUnknownParty
}

func checkKind(kind ledger.PartyKind) error {
	if _, ok := ledger.ParsePartyKind(string(kind)); !ok {
		return ledger.ErrUnknownParty
	}
	return nil
}

// snapshot issues the party, debit and credit queries concurrently. Each
// query sees its own point in time.
func (s *LedgerServiceImpl) snapshot(ctx context.Context, kind ledger.PartyKind, scope ledger.Scope) ([]ledger.Party, map[string]ledger.Totals, error) {
	var (
		parties []ledger.Party
		debits  map[string]decimal.Decimal
		credits map[string]decimal.Decimal
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		parties, err = s.repo.Parties(gCtx, kind, scope)
		return err
	})
	g.Go(func() error {
		var err error
		debits, err = s.repo.Debits(gCtx, kind, scope)
		return err
	})
	g.Go(func() error {
		var err error
		credits, err = s.repo.Credits(gCtx, kind, scope)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	totals := make(map[string]ledger.Totals, len(parties))
	for _, p := range parties {
		totals[p.ID] = ledger.Totals{Debit: debits[p.ID], Credit: credits[p.ID]}
	}
	return parties, totals, nil
}

func (s *LedgerServiceImpl) Balance(ctx context.Context, kind ledger.PartyKind, partyID string) (ledger.Balance, error) {
	if err := checkKind(kind); err != nil {
		return ledger.Balance{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return ledger.Balance{}, err
	}

	parties, totals, err := s.snapshot(ctx, kind, ledger.Scope{BusinessID: principal.BusinessID, PartyID: partyID})
	if err != nil {
		logger.LogError(s.log, module, "Balance", "aggregate balance", map[string]string{"kind": string(kind), "id": partyID}, err)
		return ledger.Balance{}, err
	}
	if len(parties) == 0 {
		return ledger.Balance{}, partyNotFound(kind)
	}
	return BalanceOf(parties[0], totals[parties[0].ID]), nil
}

func (s *LedgerServiceImpl) Balances(ctx context.Context, kind ledger.PartyKind) ([]ledger.Balance, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}

	parties, totals, err := s.snapshot(ctx, kind, ledger.Scope{BusinessID: principal.BusinessID})
	if err != nil {
		logger.LogError(s.log, module, "Balances", "aggregate balances", kind, err)
		return nil, err
	}
	return Balances(parties, totals), nil
}

func (s *LedgerServiceImpl) statement(ctx context.Context, kind ledger.PartyKind, partyID string, req *ledger.StatementRequest) (ledger.Statement, error) {
	if err := checkKind(kind); err != nil {
		return ledger.Statement{}, err
	}
	from, to, err := req.Window()
	if err != nil {
		return ledger.Statement{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return ledger.Statement{}, err
	}
	biz := principal.BusinessID

	var (
		parties []ledger.Party
		before  map[string]ledger.Totals
		entries []ledger.Entry
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		parties, before, err = s.snapshot(gCtx, kind, ledger.Scope{BusinessID: biz, PartyID: partyID, Before: from})
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.repo.Entries(gCtx, kind, biz, partyID, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.LogError(s.log, module, "Statement", "load statement", map[string]string{"kind": string(kind), "id": partyID}, err)
		return ledger.Statement{}, err
	}
	if len(parties) == 0 {
		return ledger.Statement{}, partyNotFound(kind)
	}

	party := parties[0]
	opening := party.OpeningBalance
	if from != nil {
		opening = BalanceOf(party, before[party.ID]).Balance
	}
	return BuildStatement(kind, party, opening, from, to, entries), nil
}

func (s *LedgerServiceImpl) Statement(ctx context.Context, kind ledger.PartyKind, partyID string, req ledger.StatementRequest) (ledger.StatementResponse, error) {
	st, err := s.statement(ctx, kind, partyID, &req)
	if err != nil {
		return ledger.StatementResponse{}, err
	}
	return ledger.ToStatementResponse(st), nil
}

func (s *LedgerServiceImpl) ExportStatement(ctx context.Context, kind ledger.PartyKind, partyID string, req ledger.StatementRequest) ([]byte, string, string, error) {
	if req.Format != ledger.FormatXLSX && req.Format != ledger.FormatPDF {
		return nil, "", "", ledger.ErrUnknownFormat
	}
	st, err := s.statement(ctx, kind, partyID, &req)
	if err != nil {
		return nil, "", "", err
	}

	doc := statementDocument(st)
	name := fmt.Sprintf("statement-%s-%s.%s", kind, st.Party.ID, req.Format)
	if req.Format == ledger.FormatXLSX {
		out, err := export.XLSX(doc)
		if err != nil {
			logger.LogError(s.log, module, "ExportStatement", "render xlsx", partyID, err)
			return nil, "", "", err
		}
		return out, name, export.ContentTypeXLSX, nil
	}
	out, err := export.PDF(doc)
	if err != nil {
		logger.LogError(s.log, module, "ExportStatement", "render pdf", partyID, err)
		return nil, "", "", err
	}
	return out, name, export.ContentTypePDF, nil
}

func boundLabel(t *time.Time, open string) string {
	if t == nil {
		return open
	}
	return t.Format(validator.DateLayout)
}

func statementDocument(st ledger.Statement) export.Document {
	doc := export.Document{
		Title: "Account Statement",
		Header: []export.Field{
			{Label: "Account", Value: st.Party.Name},
			{Label: "Period", Value: boundLabel(st.From, "start") + " to " + boundLabel(st.To, "today")},
			{Label: "Opening balance", Value: st.OpeningBalance.StringFixed(2)},
		},
		Columns: []string{"Date", "Type", "Reference", "Description", "Debit", "Credit", "Balance"},
	}
	for _, r := range st.Rows {
		doc.Rows = append(doc.Rows, []string{
			r.Date.Format(validator.DateLayout),
			string(r.Kind),
			r.Reference,
			r.Description,
			amountCell(r.Debit),
			amountCell(r.Credit),
			r.Balance.StringFixed(2),
		})
	}
	doc.Summary = []export.Field{
		{Label: "Total debit", Value: st.TotalDebit.StringFixed(2)},
		{Label: "Total credit", Value: st.TotalCredit.StringFixed(2)},
		{Label: "Closing balance", Value: st.ClosingBalance.StringFixed(2)},
	}
	return doc
}

func amountCell(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.StringFixed(2)
}
