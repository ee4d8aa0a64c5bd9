package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/cartabinaria/auth/pkg/httputil"
	"github.com/cartabinaria/forecast/tally"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kataras/muxie"
	"gorm.io/gorm"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Kind classifies a failed request.
type Kind string

const (
	KindValidation Kind = "Validation"
	KindNotFound   Kind = "NotFound"
	KindConflict   Kind = "Conflict"
	KindInternal   Kind = "Internal"
)

// Envelope is the body of every JSON response of the API.
type Envelope struct {
	Status  string         `json:"status"`
	Kind    Kind           `json:"kind,omitempty"`
	Message any            `json:"message,omitempty"`
	Results *int           `json:"results,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

func writeData(res http.ResponseWriter, status int, message string, data map[string]any) {
	httputil.WriteData(res, status, Envelope{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	})
}

func writeList(res http.ResponseWriter, message string, key string, items any, count int) {
	httputil.WriteData(res, http.StatusOK, Envelope{
		Status:  StatusSuccess,
		Message: message,
		Results: &count,
		Data:    map[string]any{key: items},
	})
}

func writeFailure(res http.ResponseWriter, status int, kind Kind, message string) {
	httputil.WriteData(res, status, Envelope{
		Status:  StatusFailure,
		Kind:    kind,
		Message: message,
	})
}

func writeServerError(res http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "err", err)
	writeFailure(res, http.StatusInternalServerError, KindInternal, "Server error.")
}

// writeDbError answers with the status matching a store error. what names
// the resource in the client message.
func writeDbError(res http.ResponseWriter, what string, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		writeFailure(res, http.StatusNotFound, KindNotFound, what+" not found")
	case errors.Is(err, tally.ErrNoTally):
		writeFailure(res, http.StatusNotFound, KindNotFound, "tally not found for this prediction")
	case errors.Is(err, tally.ErrNoBallot):
		writeFailure(res, http.StatusNotFound, KindNotFound, "vote not found")
	case errors.Is(err, tally.ErrNoComment):
		writeFailure(res, http.StatusNotFound, KindNotFound, "comment not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		writeFailure(res, http.StatusConflict, KindConflict, what+" already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		writeFailure(res, http.StatusUnauthorized, KindValidation, what+" references a record that does not exist")
	case isValueTooLong(err):
		writeFailure(res, http.StatusUnauthorized, KindValidation, what+" has a field longer than allowed")
	default:
		writeServerError(res, fmt.Sprintf("could not process %s", what), err)
	}
}

func isValueTooLong(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22001" // string_data_right_truncation
}

// fieldLimit pairs a request field with the size of its column.
type fieldLimit struct {
	name  string
	value *string
	size  int
}

// exceedsLimit names the first field longer than its column, or returns ""
// when every field fits. Nil fields fit.
func exceedsLimit(limits ...fieldLimit) string {
	for _, l := range limits {
		if l.value != nil && utf8.RuneCountInString(*l.value) > l.size {
			return fmt.Sprintf("%s must be at most %d characters", l.name, l.size)
		}
	}
	return ""
}

// getID parses the named path parameter. On failure the response has been
// written and ok is false.
func getID(res http.ResponseWriter, name string) (id uint, ok bool) {
	raw := muxie.GetParam(res, name)
	parsed, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || parsed == 0 {
		writeFailure(res, http.StatusUnauthorized, KindValidation, fmt.Sprintf("invalid %s", name))
		return 0, false
	}
	return uint(parsed), true
}

// decodeBody decodes the JSON request body into v. On failure the response
// has been written and ok is false.
func decodeBody(res http.ResponseWriter, req *http.Request, v any) (ok bool) {
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		writeFailure(res, http.StatusUnauthorized, KindValidation, fmt.Sprintf("decode error: %v", err))
		return false
	}
	return true
}

func methodNotAllowed(res http.ResponseWriter, req *http.Request, method string) bool {
	if req.Method != method {
		httputil.WriteError(res, http.StatusMethodNotAllowed, "invalid method")
		return true
	}
	return false
}
