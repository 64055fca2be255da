package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// openTripRequest is the body for POST /trips (tap-in).
// EntryTime is optional; absent means "now".
type openTripRequest struct {
	CardID         uuid.UUID  `json:"card_id"`
	EntryStationID uuid.UUID  `json:"entry_station_id"`
	EntryTime      *time.Time `json:"entry_time,omitempty"`
}

// closeTripRequest is the body for POST /trips/{id}/close (tap-out).
// FareType overrides the card type's default when non-empty (e.g. "Peak").
type closeTripRequest struct {
	ExitStationID uuid.UUID  `json:"exit_station_id"`
	FareType      string     `json:"fare_type,omitempty"`
	ExitTime      *time.Time `json:"exit_time,omitempty"`
}

// OpenTrip handles POST /trips: a card taps in at a station.
func (s *Server) OpenTrip(w http.ResponseWriter, r *http.Request) {
	var req openTripRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.CardID == uuid.Nil || req.EntryStationID == uuid.Nil {
		badRequest(w, "card_id and entry_station_id are required")
		return
	}

	trip, err := s.trips.Open(r.Context(), req.CardID, req.EntryStationID, req.EntryTime)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, trip)
}

// CloseTrip handles POST /trips/{id}/close: a card taps out and the trip is
// settled — fare computed, card debited, transaction recorded.
func (s *Server) CloseTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	var req closeTripRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.ExitStationID == uuid.Nil {
		badRequest(w, "exit_station_id is required")
		return
	}

	settlement, err := s.trips.Close(r.Context(), id, req.ExitStationID, req.FareType, req.ExitTime)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, settlement)
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, trip)
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max 100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	params := pageParams(r)
	trips, total, err := s.trips.List(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pagedResponse(trips, params, total))
}
