package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cartabinaria/forecast/auth"
	"github.com/cartabinaria/forecast/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var tokens = auth.NewTokenService("test-signing-key", 0)

type envelope[T any] struct {
	Status  string `json:"status"`
	Kind    Kind   `json:"kind"`
	Message any    `json:"message"`
	Results *int   `json:"results"`
	Data    T      `json:"data"`
}

func newServer(t *testing.T) (*gorm.DB, http.Handler) {
	t.Helper()
	db := testutil.NewDB(t)
	return db, NewMux(tokens)
}

// do sends a request with an optional JSON body. headers are key value
// pairs.
func do(t *testing.T, h http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }
