package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/stickybar/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stickybar/internal/httpserver/handlers"
)

func init() { Register(registerHealthz) }

// /healthz stays open so orchestrator probes work from anywhere.
func registerHealthz(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
}
