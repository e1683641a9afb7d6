package handlers

import (
	"io"
	"net/http"

	"github.com/MrSnakeDoc/stickybar/internal/domain"
	"github.com/MrSnakeDoc/stickybar/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stickybar/internal/logger"
	"github.com/MrSnakeDoc/stickybar/internal/render"
)

// Page serves the demo front page with the banner injected after <body>.
func Page(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := render.PageData{
			SiteTitle: d.SiteTitle,
			Banner:    resolve(r, d, domain.FrontEnd),
		}

		if d.PostList != nil {
			posts, err := d.PostList.ListPosts(r.Context())
			if err != nil {
				d.Logger.Warn("failed to list posts", logger.Error(err))
			}
			for _, p := range posts {
				if !p.IsPublished() {
					continue
				}
				data.Posts = append(data.Posts, render.PostLink{Title: p.Title, URL: d.Links.Permalink(p)})
			}
		}

		writeHTML(w, d, func(buf io.Writer) error { return render.Page(buf, data) })
	}
}
