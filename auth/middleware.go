package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cartabinaria/auth/pkg/httputil"
)

// TokenHeader is the request header carrying the session token.
const TokenHeader = "token"

var ErrNoUser = errors.New("no authenticated user in request")

type userKey struct{}

type authFailure struct {
	Status string `json:"status"`
}

// RequireToken rejects requests without a valid session token with 403 and
// stores the token's account id in the request context otherwise.
func RequireToken(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(TokenHeader)
			if raw == "" {
				httputil.WriteData(w, http.StatusForbidden, authFailure{Status: "Failed authorization: no JWT"})
				return
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				slog.Warn("rejected session token", "err", err, "path", r.URL.Path)
				httputil.WriteData(w, http.StatusForbidden, authFailure{Status: "Failed authorization"})
				return
			}

			ctx := context.WithValue(r.Context(), userKey{}, claims.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser returns the account id stored by RequireToken.
func GetUser(r *http.Request) (uint, error) {
	userID, ok := r.Context().Value(userKey{}).(uint)
	if !ok {
		return 0, ErrNoUser
	}
	return userID, nil
}

// MustGetUser is GetUser for handlers mounted behind RequireToken.
func MustGetUser(r *http.Request) uint {
	userID, err := GetUser(r)
	if err != nil {
		panic(err)
	}
	return userID
}
