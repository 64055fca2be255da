package handler

import (
	"net/http"

	"github.com/google/uuid"
)

// ListTransactions handles GET /transactions.
// Supports ?card_id= to filter by card, plus ?page= and ?limit=.
func (s *Server) ListTransactions(w http.ResponseWriter, r *http.Request) {
	var cardID *uuid.UUID
	if raw := r.URL.Query().Get("card_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			badRequest(w, "invalid card_id")
			return
		}
		cardID = &id
	}

	params := pageParams(r)
	txs, total, err := s.transactions.List(r.Context(), cardID, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pagedResponse(txs, params, total))
}
