package http

import (
	"net/http"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/ledger"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LedgerHandler interface {
	// Balances handles GET /ledger/{party}
	Balances(w http.ResponseWriter, r *http.Request)
	// Balance handles GET /ledger/{party}/{id}/balance
	Balance(w http.ResponseWriter, r *http.Request)
	// Statement handles GET /ledger/{party}/{id}/statement?from=&to=&format=
	Statement(w http.ResponseWriter, r *http.Request)
}

type ledgerHandlerImpl struct {
	ledgerService ledger.LedgerService
}

func NewLedgerHandler(ledgerService ledger.LedgerService) LedgerHandler {
	return &ledgerHandlerImpl{ledgerService: ledgerService}
}

func partyKind(r *http.Request) (ledger.PartyKind, error) {
	kind, ok := ledger.ParsePartyKind(chi.URLParam(r, "party"))
	if !ok {
		return "", ledger.ErrUnknownParty
	}
	return kind, nil
}

func (h *ledgerHandlerImpl) Balances(w http.ResponseWriter, r *http.Request) {
	kind, err := partyKind(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.ledgerService.Balances(r.Context(), kind)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *ledgerHandlerImpl) Balance(w http.ResponseWriter, r *http.Request) {
	kind, err := partyKind(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	result, err := h.ledgerService.Balance(r.Context(), kind, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *ledgerHandlerImpl) Statement(w http.ResponseWriter, r *http.Request) {
	kind, err := partyKind(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	q := r.URL.Query()
	req := ledger.StatementRequest{
		From:   q.Get("from"),
		To:     q.Get("to"),
		Format: q.Get("format"),
	}
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if req.Format == "" || req.Format == ledger.FormatJSON {
		result, err := h.ledgerService.Statement(r.Context(), kind, id, req)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, result)
		return
	}

	data, filename, contentType, err := h.ledgerService.ExportStatement(r.Context(), kind, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, contentType, filename, data)
}
