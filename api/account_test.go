package api

import (
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cartabinaria/forecast/auth"
	"github.com/cartabinaria/forecast/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func register(t *testing.T, h http.Handler, username, email, password string) TokenResponse {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/v1/accounts/register", CredentialsRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[TokenResponse](t, rec)
}

func countAccounts(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Account{}).Count(&n).Error)
	return n
}

func TestRegisterVerifyDashboard(t *testing.T) {
	db, h := newServer(t)

	registered := register(t, h, "alice", "alice@example.com", "hunter22")
	assert.Equal(t, StatusSuccess, registered.Status)
	require.NotEmpty(t, registered.Token)

	var account models.Account
	require.NoError(t, db.Where("username = ?", "alice").Take(&account).Error)
	assert.NotEqual(t, "hunter22", account.Password)
	assert.True(t, auth.CheckPassword("hunter22", account.Password))

	claims, err := tokens.Verify(registered.Token)
	require.NoError(t, err)
	assert.Equal(t, account.UserID, claims.User)

	rec := do(t, h, http.MethodGet, "/api/v1/accounts/verification", nil, auth.TokenHeader, registered.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "true", rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/v1/accounts/dashboard", nil, auth.TokenHeader, registered.Token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	dashboard := decode[DashboardResponse](t, rec)
	assert.Equal(t, StatusSuccess, dashboard.Status)
	assert.Equal(t, DashboardUser{UserID: account.UserID, Username: "alice", PredictionScore: 0}, dashboard.User)
	assert.Equal(t, "Successfully gathered user information for alice", dashboard.Message)
}

func TestDashboardByID(t *testing.T) {
	_, h := newServer(t)
	register(t, h, "bob", "bob@example.com", "secret")

	rec := do(t, h, http.MethodGet, "/api/v1/accounts/dashboard/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bob", decode[DashboardResponse](t, rec).User.Username)

	rec = do(t, h, http.MethodGet, "/api/v1/accounts/dashboard/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, KindNotFound, decode[envelope[any]](t, rec).Kind)

	rec = do(t, h, http.MethodGet, "/api/v1/accounts/dashboard/abc", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterCollisions(t *testing.T) {
	cases := []struct {
		name     string
		username string
		email    string
		status   string
	}{
		{"username", "carol", "other@example.com", "username exists"},
		{"email", "other", "carol@example.com", "email exists"},
		{"both", "carol", "carol@example.com", "username and email exist"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, h := newServer(t)
			register(t, h, "carol", "carol@example.com", "secret")

			rec := do(t, h, http.MethodPost, "/api/v1/accounts/register", CredentialsRequest{
				Username: tc.username,
				Email:    tc.email,
				Password: "secret",
			})
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			failure := decode[AuthFailure](t, rec)
			assert.Equal(t, tc.status, failure.Status)
			assert.EqualValues(t, 1, countAccounts(t, db))
		})
	}
}

func TestRegisterBothCollisionsMessage(t *testing.T) {
	_, h := newServer(t)
	register(t, h, "dave", "dave@example.com", "secret")

	rec := do(t, h, http.MethodPost, "/api/v1/accounts/register", CredentialsRequest{
		Username: "dave",
		Email:    "dave@example.com",
		Password: "secret",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	failure := decode[AuthFailure](t, rec)
	message, ok := failure.Message.(map[string]any)
	require.True(t, ok, "message should be an object")
	assert.Contains(t, message, "username_exists")
	assert.Contains(t, message, "email_exists")
}

func TestRegisterMissingCredentials(t *testing.T) {
	cases := map[string]CredentialsRequest{
		"no username": {Email: "eve@example.com", Password: "secret"},
		"no email":    {Username: "eve", Password: "secret"},
		"no password": {Username: "eve", Email: "eve@example.com"},
		"blank":       {Username: "   ", Email: "eve@example.com", Password: "secret"},
	}
	for name, creds := range cases {
		t.Run(name, func(t *testing.T) {
			db, h := newServer(t)
			rec := do(t, h, http.MethodPost, "/api/v1/accounts/register", creds)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Missing Credentials", decode[AuthFailure](t, rec).Status)
			assert.Zero(t, countAccounts(t, db))
		})
	}
}

func TestRegisterInvalidEmail(t *testing.T) {
	db, h := newServer(t)
	rec := do(t, h, http.MethodPost, "/api/v1/accounts/register", CredentialsRequest{
		Username: "frank",
		Email:    "frank-at-example",
		Password: "secret",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid Email Adress", decode[AuthFailure](t, rec).Status)
	assert.Zero(t, countAccounts(t, db))
}

func TestRegisterCredentialLimits(t *testing.T) {
	cases := map[string]CredentialsRequest{
		"long password": {Username: "heidi", Email: "heidi@example.com", Password: strings.Repeat("p", auth.MaxPasswordBytes+8)},
		"long username": {Username: strings.Repeat("h", 256), Email: "heidi@example.com", Password: "secret"},
		"long email":    {Username: "heidi", Email: strings.Repeat("h", 250) + "@example.com", Password: "secret"},
	}
	for name, creds := range cases {
		t.Run(name, func(t *testing.T) {
			db, h := newServer(t)
			rec := do(t, h, http.MethodPost, "/api/v1/accounts/register", creds)
			require.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
			failure := decode[AuthFailure](t, rec)
			assert.Equal(t, "Invalid Credentials", failure.Status)
			assert.NotEmpty(t, failure.Message)
			assert.Zero(t, countAccounts(t, db))
		})
	}

	_, h := newServer(t)
	register(t, h, "heidi", "heidi@example.com", strings.Repeat("p", auth.MaxPasswordBytes))
}

func TestRegisterLosesRace(t *testing.T) {
	db, h := newServer(t)

	// another registration takes the name between the lookup and the insert
	var once sync.Once
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:concurrent_register", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*models.Account); !ok {
			return
		}
		once.Do(func() {
			now := time.Now().UTC()
			err := tx.Session(&gorm.Session{NewDB: true}).Exec(
				"INSERT INTO accounts (username, email, password, prediction_score, created_at, updated_at) VALUES (?, ?, ?, 0, ?, ?)",
				"ivan", "ivan@example.com", "not-a-real-digest", now, now).Error
			require.NoError(t, err)
		})
	}))

	rec := do(t, h, http.MethodPost, "/api/v1/accounts/register", CredentialsRequest{
		Username: "ivan",
		Email:    "ivan@example.com",
		Password: "secret",
	})
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	assert.Equal(t, KindConflict, decode[envelope[any]](t, rec).Kind)
	assert.EqualValues(t, 1, countAccounts(t, db))
}

func TestLogin(t *testing.T) {
	db, h := newServer(t)
	register(t, h, "grace", "grace@example.com", "correct horse")

	rec := do(t, h, http.MethodPost, "/api/v1/accounts/login", CredentialsRequest{Username: "grace", Password: "wrong"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "password failure", body["status"])
	assert.NotContains(t, body, "token")

	rec = do(t, h, http.MethodPost, "/api/v1/accounts/login", CredentialsRequest{Username: "nobody", Password: "correct horse"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "username failure", decode[AuthFailure](t, rec).Status)

	rec = do(t, h, http.MethodPost, "/api/v1/accounts/login", CredentialsRequest{Username: "grace"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Missing Credentials", decode[AuthFailure](t, rec).Status)

	rec = do(t, h, http.MethodPost, "/api/v1/accounts/login", CredentialsRequest{Username: "grace", Password: "correct horse"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	login := decode[TokenResponse](t, rec)

	var account models.Account
	require.NoError(t, db.Where("username = ?", "grace").Take(&account).Error)
	claims, err := tokens.Verify(login.Token)
	require.NoError(t, err)
	assert.Equal(t, account.UserID, claims.User)
}

func TestProtectedRoutesRejectBadTokens(t *testing.T) {
	_, h := newServer(t)

	rec := do(t, h, http.MethodGet, "/api/v1/accounts/dashboard", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Failed authorization: no JWT", decode[AuthFailure](t, rec).Status)

	rec = do(t, h, http.MethodGet, "/api/v1/accounts/verification", nil, auth.TokenHeader, "not-a-token")
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Failed authorization", decode[AuthFailure](t, rec).Status)

	foreign, err := auth.NewTokenService("another-key", 0).Issue(1)
	require.NoError(t, err)
	rec = do(t, h, http.MethodGet, "/api/v1/accounts/verification", nil, auth.TokenHeader, foreign)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDashboardOfDeletedAccount(t *testing.T) {
	db, h := newServer(t)
	token := register(t, h, "heidi", "heidi@example.com", "secret").Token
	require.NoError(t, db.Where("username = ?", "heidi").Delete(&models.Account{}).Error)

	rec := do(t, h, http.MethodGet, "/api/v1/accounts/dashboard", nil, auth.TokenHeader, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAccountsOnlyPublicFields(t *testing.T) {
	_, h := newServer(t)
	register(t, h, "ivan", "ivan@example.com", "secret")
	register(t, h, "judy", "judy@example.com", "secret")

	rec := do(t, h, http.MethodGet, "/api/v1/accounts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[envelope[struct {
		Users []map[string]any `json:"users"`
	}]](t, rec)
	require.Len(t, body.Data.Users, 2)
	for _, user := range body.Data.Users {
		assert.Len(t, user, 2)
		assert.Contains(t, user, "user_id")
		assert.Contains(t, user, "username")
	}
	assert.Equal(t, "judy", body.Data.Users[1]["username"])
}
