package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cartabinaria/auth/pkg/httputil"
	"github.com/cartabinaria/forecast/auth"
	"github.com/cartabinaria/forecast/metrics"
	"github.com/cartabinaria/forecast/models"
	"github.com/cartabinaria/forecast/util"
	"gorm.io/gorm"
)

// @Summary		List accounts
// @Description	Public id and username of every account
// @Tags			account
// @Produce		json
// @Success		200	{object}	Envelope
// @Router			/api/v1/accounts [get]
func GetAccountsHandler(res http.ResponseWriter, req *http.Request) {
	if methodNotAllowed(res, req, http.MethodGet) {
		return
	}

	var users []AccountSummary
	if err := util.GetDb().Model(&models.Account{}).Select("user_id", "username").Order("user_id").Find(&users).Error; err != nil {
		writeServerError(res, "could not list accounts", err)
		return
	}
	writeData(res, http.StatusOK, "Successfully retrieved all users' information.", map[string]any{"users": users})
}

// existing reports which of username and email are already taken.
func existing(db *gorm.DB, username, email string) (usernameTaken, emailTaken bool, err error) {
	var count int64
	if err = db.Model(&models.Account{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return
	}
	usernameTaken = count > 0
	if err = db.Model(&models.Account{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return
	}
	emailTaken = count > 0
	return
}

// @Summary		Register an account
// @Description	Create an account and open a session for it. A malformed email is rejected with status "Invalid Email Adress" (sic), as existing clients expect. Passwords are limited to 72 bytes.
// @Tags			account
// @Param			credentials	body	CredentialsRequest	true	"Username, email and password"
// @Produce		json
// @Success		201	{object}	TokenResponse
// @Failure		401	{object}	AuthFailure
// @Failure		409	{object}	Envelope
// @Router			/api/v1/accounts/register [post]
func RegisterHandler(tokens *auth.TokenService) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		if methodNotAllowed(res, req, http.MethodPost) {
			return
		}
		creds, ok := credentials(req)
		if !ok {
			httputil.WriteData(res, http.StatusUnauthorized, AuthFailure{Status: statusMissingCredentials})
			return
		}

		db := util.GetDb()
		usernameTaken, emailTaken, err := existing(db, creds.Username, creds.Email)
		if err != nil {
			writeServerError(res, "could not look up credentials", err)
			return
		}
		switch {
		case usernameTaken && emailTaken:
			httputil.WriteData(res, http.StatusUnauthorized, AuthFailure{
				Status: "username and email exist",
				Message: map[string]string{
					"username_exists": "Failed to register: Username already in use.",
					"email_exists":    "Failed to register: Email already in use.",
				},
			})
			return
		case usernameTaken:
			httputil.WriteData(res, http.StatusUnauthorized, AuthFailure{
				Status:  "username exists",
				Message: "Failed to register: Username already exists.",
			})
			return
		case emailTaken:
			httputil.WriteData(res, http.StatusUnauthorized, AuthFailure{
				Status:  "email exists",
				Message: "Failed to register: Email already in use.",
			})
			return
		}

		digest, err := auth.HashPassword(creds.Password)
		if err != nil {
			writeServerError(res, "could not hash password", err)
			return
		}

		account := models.Account{
			Username: creds.Username,
			Email:    creds.Email,
			Password: digest,
		}
		// a concurrent registration may have taken the name after the lookup
		if err := db.Create(&account).Error; err != nil {
			writeDbError(res, "account", err)
			return
		}

		token, err := tokens.Issue(account.UserID)
		if err != nil {
			writeServerError(res, "could not issue token", err)
			return
		}
		metrics.AccountsRegistered.Inc()
		slog.Info("registered account", "user_id", account.UserID)

		httputil.WriteData(res, http.StatusCreated, TokenResponse{
			Status:  StatusSuccess,
			Message: "Successfully registered new user account.",
			Token:   token,
		})
	}
}

// @Summary		Log in
// @Description	Check the credentials and open a session
// @Tags			account
// @Param			credentials	body	CredentialsRequest	true	"Username and password"
// @Produce		json
// @Success		201	{object}	TokenResponse
// @Failure		401	{object}	AuthFailure
// @Router			/api/v1/accounts/login [post]
func LoginHandler(tokens *auth.TokenService) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		if methodNotAllowed(res, req, http.MethodPost) {
			return
		}
		creds, ok := credentials(req)
		if !ok {
			httputil.WriteData(res, http.StatusUnauthorized, AuthFailure{Status: statusMissingCredentials})
			return
		}

		var account models.Account
		err := util.GetDb().Where("username = ?", creds.Username).First(&account).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.Logins.WithLabelValues(metrics.LoginFailed).Inc()
			httputil.WriteData(res, http.StatusUnauthorized, AuthFailure{
				Status:  "username failure",
				Message: "Failed to log in: Username is incorrect.",
			})
			return
		} else if err != nil {
			writeServerError(res, "could not look up account", err)
			return
		}

		if !auth.CheckPassword(creds.Password, account.Password) {
			metrics.Logins.WithLabelValues(metrics.LoginFailed).Inc()
			httputil.WriteData(res, http.StatusUnauthorized, AuthFailure{
				Status:  "password failure",
				Message: "Failed to log in: Password is incorrect.",
			})
			return
		}

		token, err := tokens.Issue(account.UserID)
		if err != nil {
			writeServerError(res, "could not issue token", err)
			return
		}
		metrics.Logins.WithLabelValues(metrics.LoginSucceeded).Inc()

		httputil.WriteData(res, http.StatusCreated, TokenResponse{
			Status:  StatusSuccess,
			Message: "Successfully logged in.",
			Token:   token,
		})
	}
}

// @Summary		Check a session token
// @Tags			account
// @Param			token	header	string	true	"Session token"
// @Produce		json
// @Success		200	{boolean}	boolean
// @Failure		403	{object}	AuthFailure
// @Router			/api/v1/accounts/verification [get]
func VerificationHandler(res http.ResponseWriter, req *http.Request) {
	if methodNotAllowed(res, req, http.MethodGet) {
		return
	}
	httputil.WriteData(res, http.StatusOK, true)
}

func writeDashboard(res http.ResponseWriter, userID uint) {
	var user DashboardUser
	err := util.GetDb().Model(&models.Account{}).
		Select("user_id", "username", "prediction_score").
		Where("user_id = ?", userID).
		Take(&user).Error
	if err != nil {
		writeDbError(res, "account", err)
		return
	}

	httputil.WriteData(res, http.StatusOK, DashboardResponse{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("Successfully gathered user information for %s", user.Username),
		User:    user,
	})
}

// @Summary		Current account
// @Description	Summary of the account owning the session token
// @Tags			account
// @Param			token	header	string	true	"Session token"
// @Produce		json
// @Success		200	{object}	DashboardResponse
// @Failure		403	{object}	AuthFailure
// @Failure		404	{object}	Envelope
// @Router			/api/v1/accounts/dashboard [get]
func DashboardHandler(res http.ResponseWriter, req *http.Request) {
	if methodNotAllowed(res, req, http.MethodGet) {
		return
	}
	writeDashboard(res, auth.MustGetUser(req))
}

// @Summary		Account by id
// @Description	Public summary of any account
// @Tags			account
// @Param			id	path	int	true	"Account id"
// @Produce		json
// @Success		200	{object}	DashboardResponse
// @Failure		404	{object}	Envelope
// @Router			/api/v1/accounts/dashboard/{id} [get]
func GetDashboardByIdHandler(res http.ResponseWriter, req *http.Request) {
	if methodNotAllowed(res, req, http.MethodGet) {
		return
	}
	userID, ok := getID(res, "id")
	if !ok {
		return
	}
	writeDashboard(res, userID)
}
