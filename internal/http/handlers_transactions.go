package http

import (
	"errors"
	"net/http"

	"fokus/internal/core"
	"fokus/internal/log"
	"fokus/internal/store"
)

type createTransactionRequest struct {
	Type     string `json:"type"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Note     string `json:"note"`
	Date     string `json:"date"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var typ core.TxType
	switch req.Type {
	case "income":
		typ = core.Income
	case "expense":
		typ = core.Expense
	default:
		writeError(w, http.StatusUnprocessableEntity, "type must be income or expense")
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount: "+req.Amount)
		return
	}

	category := sanitizeInput(req.Category)
	if typ == core.Income && category == "" {
		category = core.IncomeCategory
	}

	tx, err := s.session.RecordTransaction(r.Context(), typ,
		core.Money{Cents: cents}, category, sanitizeInput(req.Note), core.Date(req.Date))
	if err != nil {
		// The ledger keeps the entry when only the save failed, so the
		// response carries it alongside the failure flag and cached views
		// are dropped as on any applied mutation.
		if errors.Is(err, store.ErrPersistence) {
			s.invalidateViews()
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"error":       err.Error(),
				"saved":       false,
				"transaction": tx,
			})
			return
		}
		writeDomainError(w, err)
		return
	}

	s.invalidateViews()
	s.metrics.transactionsCreated.Add(1)
	s.logger.InfoContext(r.Context(), "Transaction created",
		log.FieldOperation, "create_transaction",
		log.FieldCategory, tx.Category,
		log.FieldAmountCents, tx.Amount.Cents)

	writeJSON(w, http.StatusCreated, map[string]any{
		"saved":       true,
		"transaction": tx,
	})
}
