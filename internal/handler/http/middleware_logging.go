package http

import (
	"net/http"
	"time"

	"github.com/lexisync/lexisync/internal/logger"
)

// withLogging emits one structured line per request once the handler
// chain returns: route, status, wall time, and response size. Sits after
// withTraceID so every line carries the trace ID.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		tracked := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(tracked, r)

		logger.FromRequest(r).Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", tracked.status).
			Int("size", tracked.size).
			Dur("duration", time.Since(started)).
			Send()
	})
}
