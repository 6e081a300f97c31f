package middleware

import (
	"net/http"

	"github.com/api-sage/core-banking/internal/logger"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

// RequestID tags each request with an identifier, honoring one supplied by
// the caller, and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)

		logger.Info("request id middleware", logger.Fields{
			"method":    r.Method,
			"path":      r.URL.Path,
			"requestId": id,
		})
		next.ServeHTTP(w, r)
	})
}
