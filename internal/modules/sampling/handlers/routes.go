package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all sampling routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/sample", h.HandleSample)
}
