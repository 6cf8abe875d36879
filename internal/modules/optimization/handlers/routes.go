package handlers

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RegisterRoutes registers all optimization routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	// A 20k-trial run is fast, but leave room for slow dataset fetches.
	r.With(middleware.Timeout(60 * time.Second)).
		Post("/api/optimize", h.HandleOptimize)
}
