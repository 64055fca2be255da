package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"

	"github.com/metrosync/backend/internal/middleware"
)

// The middleware must emit one structured JSON line per request with method,
// path, status, duration, and the request ID that chi's RequestID middleware
// put in the context.
func TestSlogLogger_LogsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := middleware.NewSlogLogger(logger)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}),
	)

	req := httptest.NewRequest(http.MethodPost, "/trips", nil)

	// Inject a known request ID instead of running the RequestID middleware,
	// keeping the assertion deterministic.
	ctx := context.WithValue(req.Context(), chimiddleware.RequestIDKey, "req-42")
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	require.Equal(t, "POST", entry["method"])
	require.Equal(t, "/trips", entry["path"])
	require.EqualValues(t, http.StatusCreated, entry["status"])
	require.Equal(t, "req-42", entry["request_id"])
	require.NotNil(t, entry["duration_ms"])
}

// Handlers that never call WriteHeader still log a 200.
func TestSlogLogger_DefaultsStatusTo200(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := middleware.NewSlogLogger(logger)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.EqualValues(t, http.StatusOK, entry["status"])
}
