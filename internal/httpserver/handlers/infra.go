package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/stickybar/internal/httpserver/deps"
)

type componentStatus struct {
	OK          bool   `json:"ok"`
	Backend     string `json:"backend,omitempty"`
	PostsLoaded *int   `json:"posts_loaded,omitempty"`
	Published   *int   `json:"published,omitempty"`
	PostID      int64  `json:"post_id,omitempty"`
	Active      *bool  `json:"active,omitempty"`
	Expiry      string `json:"expiry,omitempty"`
	Error       string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of the stores, the post catalog and the current
// selection.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")

		ctx := r.Context()
		failed := runChecks(ctx, d.Checks)
		components := make(map[string]componentStatus, len(d.Checks)+2)
		for _, c := range d.Checks {
			components[c.Name] = componentStatus{OK: failed[c.Name] == "", Error: failed[c.Name]}
		}

		components["posts"] = postsStatus(r, d)
		components["selection"] = selectionStatus(r, d)

		response := infraResponse{
			Status:     determineStatus(components),
			Components: components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

func postsStatus(r *http.Request, d deps.Deps) componentStatus {
	status := componentStatus{Backend: d.PostsBackend}
	if d.PostList == nil {
		status.Error = "post listing not available"
		return status
	}
	posts, err := d.PostList.ListPosts(r.Context())
	if err != nil {
		status.Error = err.Error()
		return status
	}
	total, published := len(posts), 0
	for _, p := range posts {
		if p.IsPublished() {
			published++
		}
	}
	status.OK = total > 0
	status.PostsLoaded = &total
	status.Published = &published
	return status
}

func selectionStatus(r *http.Request, d deps.Deps) componentStatus {
	status := componentStatus{Backend: d.StoreBackend}
	sel, err := d.Selection.Current(r.Context())
	if err != nil {
		status.Error = err.Error()
		return status
	}
	status.OK = true
	status.PostID = sel.PostID
	status.Active = &sel.IsActive
	if sel.IsExpirable {
		status.Expiry = sel.Expiry
	}
	return status
}

// determineStatus: a failing store is critical, an empty catalog only
// degrades the service (no banner can render, nothing breaks).
func determineStatus(components map[string]componentStatus) string {
	for name, c := range components {
		if name != "posts" && !c.OK {
			return "critical"
		}
	}
	if posts, ok := components["posts"]; ok && !posts.OK {
		return "degraded"
	}
	return "ok"
}
