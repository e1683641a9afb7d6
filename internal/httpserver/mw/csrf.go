package mw

import (
	"net/http"

	csrf "filippo.io/csrf/gorilla"

	"github.com/MrSnakeDoc/stickybar/internal/logger"
)

// CSRFConfig holds configuration for CSRF protection.
// filippo.io/csrf/gorilla relies on Fetch metadata headers instead of
// cookies and tokens, so the forms need no hidden field.
type CSRFConfig struct {
	// AuthKey is kept for API compatibility with gorilla/csrf.
	AuthKey []byte

	// TrustedOrigins are host:port values allowed to POST cross-origin.
	TrustedOrigins []string
}

// CSRF returns a middleware rejecting cross-origin state-changing requests.
func CSRF(cfg CSRFConfig, log logger.Logger) func(http.Handler) http.Handler {
	opts := []csrf.Option{
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reason := "unknown"
			if err := csrf.FailureReason(r); err != nil {
				reason = err.Error()
			}
			log.Warn("csrf validation failed",
				logger.String("reason", reason),
				logger.String("method", r.Method),
				logger.String("path", r.URL.Path),
				logger.String("origin", r.Header.Get("Origin")),
				logger.String("sec_fetch_site", r.Header.Get("Sec-Fetch-Site")),
			)
			http.Error(w, "Forbidden - CSRF validation failed", http.StatusForbidden)
		})),
	}

	if len(cfg.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(cfg.TrustedOrigins))
	}

	return csrf.Protect(cfg.AuthKey, opts...)
}
