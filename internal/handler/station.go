package handler

import (
	"net/http"

	"github.com/metrosync/backend/internal/domain"
)

// createStationRequest is the body for POST /stations.
type createStationRequest struct {
	Name string `json:"name"`
	Line string `json:"line,omitempty"`
}

// CreateStation handles POST /stations.
func (s *Server) CreateStation(w http.ResponseWriter, r *http.Request) {
	var req createStationRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	created, err := s.stations.Create(r.Context(), domain.Station{Name: req.Name, Line: req.Line})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// GetStation handles GET /stations/{id}.
func (s *Server) GetStation(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, "invalid station id")
		return
	}

	station, err := s.stations.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, station)
}

// ListStations handles GET /stations. The station set is small and static,
// so the list is unpaginated, ordered by name.
func (s *Server) ListStations(w http.ResponseWriter, r *http.Request) {
	stations, err := s.stations.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, stations)
}

// ListCardTypes handles GET /card-types.
func (s *Server) ListCardTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.cardTypes.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types)
}
