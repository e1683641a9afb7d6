package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/stickybar/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stickybar/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/stickybar/internal/httpserver/mw"
)

func init() { Register(registerPublic) }

// registerPublic wires the viewer-facing routes. They share one per-IP
// limiter.
func registerPublic(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.RateLimitBurst,
		RefillPerIPPerMin: d.RateLimitRefill,
		MaxEntries:        d.RateLimitEntries,
		IdleTTL:           15 * time.Minute,
		TrustProxy:        d.TrustProxy,
	})

	r.Group(func(r chi.Router) {
		r.Use(limit)
		r.Get("/", handlers.Page(d))
		r.Get("/banner", handlers.BannerFragment(d))
		r.Get("/api/banner", handlers.BannerJSON(d))
	})
}
