package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getServerVersion)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/sync", func(r chi.Router) {
			r.Post("/upload", h.upload)
			r.Get("/download", h.download)
			r.Post("/force", h.forceSync)
			r.Post("/resolve-conflicts", h.resolveConflicts)
			r.Get("/status", h.status)
			r.Get("/history", h.history)
			r.Delete("/cleanup", h.cleanup)
			r.Get("/devices", h.listDevices)
			r.Post("/devices/{deviceID}/deactivate", h.deactivateDevice)
		})
	})

	return router
}
