package ledger

import (
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const (
	FormatJSON = "json"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

type StatementRequest struct {
	From   string
	To     string
	Format string
}

// Window validates the request and returns its parsed bounds.
func (r *StatementRequest) Window() (*time.Time, *time.Time, error) {
	var errs validator.ValidationErrors
	from := parseBound(&errs, "from", r.From)
	to := parseBound(&errs, "to", r.To)
	if r.Format == "" {
		r.Format = FormatJSON
	}
	switch r.Format {
	case FormatJSON, FormatXLSX, FormatPDF:
	default:
		errs.Add("format", ErrUnknownFormat.Error())
	}
	if err := errs.Err(); err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, ErrInvalidWindow
	}
	return from, to, nil
}

func parseBound(errs *validator.ValidationErrors, field, value string) *time.Time {
	if value == "" {
		return nil
	}
	t, ok := validator.IsValidDate(value)
	if !ok {
		errs.Add(field, "must be in YYYY-MM-DD format")
		return nil
	}
	return &t
}

type StatementRowResponse struct {
	ID          string          `json:"id"`
	Kind        EntryKind       `json:"kind"`
	Date        string          `json:"date"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

type StatementResponse struct {
	PartyID        string                 `json:"party_id"`
	PartyName      string                 `json:"party_name"`
	Kind           PartyKind              `json:"kind"`
	From           *string                `json:"from"`
	To             *string                `json:"to"`
	OpeningBalance decimal.Decimal        `json:"opening_balance"`
	Rows           []StatementRowResponse `json:"rows"`
	TotalDebit     decimal.Decimal        `json:"total_debit"`
	TotalCredit    decimal.Decimal        `json:"total_credit"`
	ClosingBalance decimal.Decimal        `json:"closing_balance"`
}

func formatBound(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(validator.DateLayout)
	return &s
}

func ToStatementResponse(s Statement) StatementResponse {
	rows := make([]StatementRowResponse, 0, len(s.Rows))
	for _, r := range s.Rows {
		rows = append(rows, StatementRowResponse{
			ID:          r.ID,
			Kind:        r.Kind,
			Date:        r.Date.Format(validator.DateLayout),
			Reference:   r.Reference,
			Description: r.Description,
			Debit:       r.Debit,
			Credit:      r.Credit,
			Balance:     r.Balance,
		})
	}
	return StatementResponse{
		PartyID:        s.Party.ID,
		PartyName:      s.Party.Name,
		Kind:           s.Kind,
		From:           formatBound(s.From),
		To:             formatBound(s.To),
		OpeningBalance: s.OpeningBalance,
		Rows:           rows,
		TotalDebit:     s.TotalDebit,
		TotalCredit:    s.TotalCredit,
		ClosingBalance: s.ClosingBalance,
	}
}
