package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/stickybar/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stickybar/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/stickybar/internal/httpserver/mw"
)

func init() { Register(registerAdmin) }

func registerAdmin(r chi.Router, d deps.Deps) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
		r.Use(mw.CSRF(mw.CSRFConfig{AuthKey: d.CSRFKey, TrustedOrigins: d.CSRFTrustedOrigins}, d.Logger))

		r.Get("/settings", handlers.SettingsForm(d))
		r.Post("/settings", handlers.SettingsSave(d))
		r.Get("/posts", handlers.PostIndex(d))
		r.Get("/posts/{id}/sticky", handlers.StickyForm(d))
		r.Post("/posts/{id}/sticky", handlers.StickySave(d))
		r.Post("/selection/clear", handlers.ClearSelection(d))
	})
}
