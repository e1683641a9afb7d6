package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/stickybar/internal/domain"
	"github.com/MrSnakeDoc/stickybar/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stickybar/internal/logger"
	"github.com/MrSnakeDoc/stickybar/internal/render"
)

// resolve returns the banner for viewCtx. Failures are logged and turned into
// "no banner": a viewer never sees a storage error.
func resolve(r *http.Request, d deps.Deps, viewCtx domain.ViewContext) *domain.BannerView {
	view, err := d.Resolver.ResolveActiveBanner(r.Context(), d.Now(), viewCtx)
	if err != nil {
		d.Logger.Error("banner resolution failed",
			logger.String("context", viewCtx.String()),
			logger.Error(err))
		return nil
	}
	return view
}

// BannerFragment serves the front-end banner markup, or 204 when nothing is
// shown, for page templates that include it server side.
func BannerFragment(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")

		view := resolve(r, d, domain.FrontEnd)
		if view == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		var buf bytes.Buffer
		if err := render.Banner(&buf, view); err != nil {
			d.Logger.Error("failed to render banner", logger.Error(err))
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = buf.WriteTo(w)
	}
}

type bannerResponse struct {
	Banner *domain.BannerView `json:"banner"`
}

// BannerJSON serves the resolved view as JSON; "banner" is null when nothing
// is shown.
func BannerJSON(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(bannerResponse{Banner: resolve(r, d, domain.FrontEnd)})
	}
}
