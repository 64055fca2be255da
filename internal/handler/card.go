package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/metrosync/backend/internal/domain"
)

// createCardRequest is the body for POST /cards. Balance defaults to zero;
// status defaults to Active. Amounts are JSON strings ("25.00") because
// decimals must not pass through float64.
type createCardRequest struct {
	Number      string           `json:"number"`
	Balance     *decimal.Decimal `json:"balance,omitempty"`
	Status      string           `json:"status,omitempty"`
	PassengerID *uuid.UUID       `json:"passenger_id,omitempty"`
	CardTypeID  *uuid.UUID       `json:"card_type_id,omitempty"`
}

// topUpRequest is the body for POST /cards/{id}/topup.
type topUpRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// updateCardStatusRequest is the body for PATCH /cards/{id}/status.
type updateCardStatusRequest struct {
	Status string `json:"status"`
}

// CreateCard handles POST /cards.
func (s *Server) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req createCardRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	card := domain.Card{
		Number:      req.Number,
		Status:      domain.CardStatus(req.Status),
		PassengerID: req.PassengerID,
		CardTypeID:  req.CardTypeID,
	}
	if req.Balance != nil {
		card.Balance = *req.Balance
	}

	created, err := s.cards.Issue(r.Context(), card)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// GetCard handles GET /cards/{id}.
func (s *Server) GetCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid card id")
		return
	}

	card, err := s.cards.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, card)
}

// ListCards handles GET /cards.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max 100).
func (s *Server) ListCards(w http.ResponseWriter, r *http.Request) {
	params := pageParams(r)
	cards, total, err := s.cards.List(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pagedResponse(cards, params, total))
}

// TopUpCard handles POST /cards/{id}/topup.
func (s *Server) TopUpCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid card id")
		return
	}

	var req topUpRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	card, err := s.cards.TopUp(r.Context(), id, req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, card)
}

// UpdateCardStatus handles PATCH /cards/{id}/status.
func (s *Server) UpdateCardStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid card id")
		return
	}

	var req updateCardStatusRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	card, err := s.cards.UpdateStatus(r.Context(), id, domain.CardStatus(req.Status))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, card)
}
