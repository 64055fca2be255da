package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/metrosync/backend/internal/domain"
)

// Routes registers every API endpoint on a fresh chi router.
// Middleware (request ID, logging, CORS, body limits) is applied by the
// caller so tests can mount a bare router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/passengers", func(r chi.Router) {
		r.Get("/", s.ListPassengers)
		r.Post("/", s.CreatePassenger)
		r.Get("/{id}", s.GetPassenger)
	})

	r.Route("/stations", func(r chi.Router) {
		r.Get("/", s.ListStations)
		r.Post("/", s.CreateStation)
		r.Get("/{id}", s.GetStation)
	})

	r.Get("/card-types", s.ListCardTypes)

	r.Route("/cards", func(r chi.Router) {
		r.Get("/", s.ListCards)
		r.Post("/", s.CreateCard)
		r.Get("/{id}", s.GetCard)
		r.Post("/{id}/topup", s.TopUpCard)
		r.Patch("/{id}/status", s.UpdateCardStatus)
	})

	r.Route("/fare-rules", func(r chi.Router) {
		r.Get("/", s.ListFareRules)
		r.Post("/", s.CreateFareRule)
		r.Put("/{id}", s.UpdateFareRule)
		r.Delete("/{id}", s.DeleteFareRule)
	})

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.OpenTrip)
		r.Get("/{id}", s.GetTrip)
		r.Post("/{id}/close", s.CloseTrip)
	})

	r.Get("/transactions", s.ListTransactions)

	return r
}

// PagedResponse is the envelope for paginated list endpoints.
type PagedResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Pagination echoes the applied page parameters and the total row count.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

func pagedResponse[T any](data []T, params domain.PaginationParams, total int64) PagedResponse[T] {
	return PagedResponse[T]{
		Data:       data,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: total},
	}
}

// decodeBody decodes the JSON request body into v, rejecting unknown fields.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// pathUUID parses the {id}-style chi URL parameter named key.
func pathUUID(r *http.Request, key string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, key))
}

// pageParams reads optional ?page= and ?limit= query parameters.
// Unparseable values are ignored and fall back to the defaults.
func pageParams(r *http.Request) domain.PaginationParams {
	var page, limit *int
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page = &v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		limit = &v
	}
	return domain.NewPaginationParams(page, limit)
}
