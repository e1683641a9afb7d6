package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/stickybar/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready  bool              `json:"ready"`
	Failed map[string]string `json:"failed,omitempty"`
}

// runChecks pings every dependency with a shared deadline and returns the
// failures by name.
func runChecks(ctx context.Context, checks []deps.Check) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	failed := map[string]string{}
	for _, c := range checks {
		if err := c.Ping(ctx); err != nil {
			failed[c.Name] = err.Error()
		}
	}
	return failed
}

func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")

		failed := runChecks(r.Context(), d.Checks)
		resp := readyzResponse{Ready: len(failed) == 0}
		if !resp.Ready {
			resp.Failed = failed
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}

		_ = json.NewEncoder(w).Encode(resp)
	}
}
