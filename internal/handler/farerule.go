package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/metrosync/backend/internal/domain"
)

// createFareRuleRequest is the body for POST /fare-rules.
type createFareRuleRequest struct {
	StartStationID uuid.UUID       `json:"start_station_id"`
	EndStationID   uuid.UUID       `json:"end_station_id"`
	FareType       string          `json:"fare_type"`
	Amount         decimal.Decimal `json:"amount"`
}

// updateFareRuleRequest is the body for PUT /fare-rules/{id}.
// The station pair of a rule is immutable; only type and amount change.
type updateFareRuleRequest struct {
	FareType string          `json:"fare_type"`
	Amount   decimal.Decimal `json:"amount"`
}

// CreateFareRule handles POST /fare-rules.
func (s *Server) CreateFareRule(w http.ResponseWriter, r *http.Request) {
	var req createFareRuleRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	created, err := s.fareRules.Create(r.Context(), domain.FareRule{
		StartStationID: req.StartStationID,
		EndStationID:   req.EndStationID,
		FareType:       req.FareType,
		Amount:         req.Amount,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListFareRules handles GET /fare-rules.
func (s *Server) ListFareRules(w http.ResponseWriter, r *http.Request) {
	rules, err := s.fareRules.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rules)
}

// UpdateFareRule handles PUT /fare-rules/{id}.
func (s *Server) UpdateFareRule(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid fare rule id")
		return
	}

	var req updateFareRuleRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	updated, err := s.fareRules.Update(r.Context(), id, req.FareType, req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteFareRule handles DELETE /fare-rules/{id}.
func (s *Server) DeleteFareRule(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid fare rule id")
		return
	}

	if err := s.fareRules.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
