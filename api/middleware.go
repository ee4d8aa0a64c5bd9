package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/cartabinaria/auth/pkg/httputil"
	"github.com/cartabinaria/forecast/auth"
)

var emailRegex = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)

const (
	statusMissingCredentials = "Missing Credentials"
	// kept as existing clients compare against it
	statusInvalidEmail       = "Invalid Email Adress"
	statusInvalidCredentials = "Invalid Credentials"
)

// maxCredentialLength is the column size of accounts.username and email.
const maxCredentialLength = 255

type credentialsKey struct{}

// ValidEmail reports whether email looks like a deliverable address.
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateRegistration rejects registrations missing a field or carrying a
// malformed email. The decoded credentials are handed to the next handler.
func ValidateRegistration(next http.Handler) http.Handler {
	return validateCredentials(next, true)
}

// ValidateLogin rejects logins missing the username or the password.
func ValidateLogin(next http.Handler) http.Handler {
	return validateCredentials(next, false)
}

func validateCredentials(next http.Handler, register bool) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		var creds CredentialsRequest
		if err := json.NewDecoder(req.Body).Decode(&creds); err != nil {
			httputil.WriteData(res, http.StatusUnauthorized, AuthFailure{Status: statusMissingCredentials})
			return
		}
		creds.Username = strings.TrimSpace(creds.Username)
		creds.Email = strings.TrimSpace(creds.Email)

		if creds.Username == "" || creds.Password == "" || (register && creds.Email == "") {
			httputil.WriteData(res, http.StatusUnauthorized, AuthFailure{Status: statusMissingCredentials})
			return
		}
		if register && !ValidEmail(creds.Email) {
			httputil.WriteData(res, http.StatusUnauthorized, AuthFailure{Status: statusInvalidEmail})
			return
		}
		if register {
			if msg := credentialLimits(creds); msg != "" {
				httputil.WriteData(res, http.StatusUnauthorized, AuthFailure{Status: statusInvalidCredentials, Message: msg})
				return
			}
		}

		ctx := context.WithValue(req.Context(), credentialsKey{}, creds)
		next.ServeHTTP(res, req.WithContext(ctx))
	})
}

func credentialLimits(creds CredentialsRequest) string {
	switch {
	case len(creds.Password) > auth.MaxPasswordBytes:
		return fmt.Sprintf("password must be at most %d bytes", auth.MaxPasswordBytes)
	case utf8.RuneCountInString(creds.Username) > maxCredentialLength:
		return fmt.Sprintf("username must be at most %d characters", maxCredentialLength)
	case utf8.RuneCountInString(creds.Email) > maxCredentialLength:
		return fmt.Sprintf("email must be at most %d characters", maxCredentialLength)
	}
	return ""
}

// credentials returns what the validators decoded. Handlers mounted without
// a validator get ok false.
func credentials(req *http.Request) (CredentialsRequest, bool) {
	creds, ok := req.Context().Value(credentialsKey{}).(CredentialsRequest)
	return creds, ok
}
