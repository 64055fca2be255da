package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/metrosync/backend/internal/domain"
)

// ErrorResponse is the JSON body returned for every non-2xx outcome.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code and a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON serializes v with the given status. Encoding failures are logged
// but not surfaced — the status line has already been written.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError maps a service-layer error to an HTTP status and error body.
// Sentinel checks run most-specific first; anything unmatched is a storage
// or programming failure and becomes a 500 with no internal detail leaked.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errBody("validation_error", unwrapMessage(err)))
	case errors.Is(err, domain.ErrFareNotFound):
		writeJSON(w, http.StatusNotFound, errBody("fare_not_found", unwrapMessage(err)))
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errBody("not_found", unwrapMessage(err)))
	case errors.Is(err, domain.ErrTripAlreadyOpen):
		writeJSON(w, http.StatusConflict, errBody("trip_already_open", unwrapMessage(err)))
	case errors.Is(err, domain.ErrTripAlreadyClosed):
		writeJSON(w, http.StatusConflict, errBody("trip_already_closed", unwrapMessage(err)))
	case errors.Is(err, domain.ErrCardNotEligible):
		writeJSON(w, http.StatusConflict, errBody("card_not_eligible", unwrapMessage(err)))
	case errors.Is(err, domain.ErrInsufficientBalance):
		writeJSON(w, http.StatusConflict, errBody("insufficient_balance", unwrapMessage(err)))
	case errors.Is(err, domain.ErrDuplicate):
		writeJSON(w, http.StatusConflict, errBody("duplicate", unwrapMessage(err)))
	default:
		slog.ErrorContext(r.Context(), "unexpected error", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errBody("internal_error", "internal server error"))
	}
}

// badRequest rejects a request before it reaches the service layer
// (e.g. malformed JSON, unparseable UUID in the path).
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errBody("bad_request", message))
}

func errBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// unwrapMessage strips the "service.X.Y:" call-site prefixes that the layers
// add with %w wrapping, leaving the human-readable tail.
// e.g. "service.TripService.Open: card: not found" → "card: not found".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for {
		i := strings.Index(msg, ": ")
		if i < 0 {
			return msg
		}
		prefix := msg[:i]
		if strings.HasPrefix(prefix, "service.") || strings.HasPrefix(prefix, "repo.") {
			msg = msg[i+2:]
			continue
		}
		return msg
	}
}
