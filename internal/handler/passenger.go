package handler

import (
	"net/http"

	"github.com/metrosync/backend/internal/domain"
)

// createPassengerRequest is the body for POST /passengers.
type createPassengerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

// CreatePassenger handles POST /passengers.
func (s *Server) CreatePassenger(w http.ResponseWriter, r *http.Request) {
	var req createPassengerRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	created, err := s.passengers.Register(r.Context(), domain.Passenger{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// GetPassenger handles GET /passengers/{id}.
func (s *Server) GetPassenger(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid passenger id")
		return
	}

	passenger, err := s.passengers.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, passenger)
}

// ListPassengers handles GET /passengers.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max 100).
func (s *Server) ListPassengers(w http.ResponseWriter, r *http.Request) {
	params := pageParams(r)
	passengers, total, err := s.passengers.List(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pagedResponse(passengers, params, total))
}
