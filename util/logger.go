package util

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// NewLoggerMiddleware logs one line per request. It wraps the response
// writer, so it has to sit outside the router: muxie stores path parameters
// in the writer it hands to handlers.
func NewLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.Header.Get("X-Forwarded-For")
		if ip == "" {
			ip = r.RemoteAddr
		}

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		rec := &statusRecorder{
			ResponseWriter: w,
			status:         200, // default status to 200
		}

		start := time.Now()
		next.ServeHTTP(rec, r)
		slog.Info("HTTP",
			"method", r.Method,
			"status", rec.status,
			"path", r.URL.Path,
			"ip", ip,
			"duration", time.Since(start),
			"request_id", requestID,
		)
	})
}
