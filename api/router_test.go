package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	_ "github.com/cartabinaria/forecast/docs"
	"github.com/cartabinaria/forecast/tally"
	"github.com/cartabinaria/forecast/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationalRoutes(t *testing.T) {
	_, h := newServer(t)

	rec := do(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success","database":"ok"}`, rec.Body.String())

	// bump a counter so the vector shows up in the exposition
	do(t, h, http.MethodPost, "/api/v1/accounts/login", CredentialsRequest{Username: "nobody", Password: "pw"})
	rec = do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "forecast_logins_total")
	assert.Contains(t, rec.Body.String(), "forecast_predictions_awaiting_resolution")

	rec = do(t, h, http.MethodGet, "/swagger/doc.json", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := decode[map[string]any](t, rec)
	assert.Equal(t, "2.0", doc["swagger"])
	assert.Contains(t, doc["paths"], "/api/v1/accounts/register")

	paths := doc["paths"].(map[string]any)
	bump := paths["/api/v1/votes/tallies/{tally_value}/{id}"].(map[string]any)["put"].(map[string]any)
	assert.Contains(t, bump["description"], "counts it twice")
	cast := paths["/api/v1/votes"].(map[string]any)["post"].(map[string]any)
	assert.Contains(t, cast["description"], "do not also bump")
}

func TestMethodDispatch(t *testing.T) {
	_, h := newServer(t)

	rec := do(t, h, http.MethodPatch, "/api/v1/predictions", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/predictions/timeframe", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/accounts/register", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/predictions/not-a-number", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, KindValidation, decode[envelope[any]](t, rec).Kind)
}

func TestStaticSegmentsWinOverParameters(t *testing.T) {
	db, h := newServer(t)
	account := testutil.NewAccount(t, db, "voter")
	prediction := testutil.NewPrediction(t, db, account.UserID, "complete", time.Now().UTC())
	_, err := tally.Create(db, prediction.PredictionID)
	require.NoError(t, err)

	rec := do(t, h, http.MethodGet, "/api/v1/votes/tallies", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"tallies"`)

	rec = do(t, h, http.MethodGet, fmt.Sprintf("/api/v1/votes/%d", prediction.PredictionID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"votes"`)

	rec = do(t, h, http.MethodGet, "/api/v1/predictions/timeframe", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"predictions"`)
}
