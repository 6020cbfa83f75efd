package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const traceIDHeader = "X-Trace-ID"

// withTraceID threads a trace ID through every request: the client's
// X-Trace-ID when supplied (mobile clients reuse one ID across the
// upload and download legs of a sync), a fresh UUID otherwise. The ID
// is bound to the request-scoped logger and echoed back in the response
// so client and server logs line up.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		scoped := h.logger.GetChildLogger()
		scoped.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(scoped.WithContext(r.Context())))
	})
}
