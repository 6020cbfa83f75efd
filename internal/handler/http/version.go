package http

import (
	"net/http"
)

// buildVersion is stamped at build time via -ldflags.
var buildVersion = "N/A"

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(buildVersion))
}
