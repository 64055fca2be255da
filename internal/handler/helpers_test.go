package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/metrosync/backend/internal/handler"
)

// serverOpts carries the servicer mocks a test wants to install; everything
// left nil stays nil on the Server, so a handler reaching for a dependency
// the test did not expect panics loudly.
type serverOpts struct {
	passengers   handler.PassengerServicer
	stations     handler.StationServicer
	cardTypes    handler.CardTypeServicer
	cards        handler.CardServicer
	fareRules    handler.FareRuleServicer
	trips        handler.TripServicer
	transactions handler.TransactionServicer
	db           handler.Pinger
}

// newHandler builds the full chi router around a Server wired with the given
// mocks — the same wiring main.go uses, minus the middleware stack.
func newHandler(opts serverOpts) http.Handler {
	srv := handler.NewServer(
		opts.passengers,
		opts.stations,
		opts.cardTypes,
		opts.cards,
		opts.fareRules,
		opts.trips,
		opts.transactions,
		opts.db,
	)
	return srv.Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// doRequest runs an HTTP request through the router and returns the recorder.
func doRequest(h http.Handler, method, target string, body *bytes.Buffer) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeResponse unmarshals the recorded JSON body into v.
func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), "body: %s", rec.Body.String())
}
