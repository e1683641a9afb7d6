package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/stickybar/internal/domain"
	"github.com/MrSnakeDoc/stickybar/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stickybar/internal/logger"
	"github.com/MrSnakeDoc/stickybar/internal/render"
)

// settingsPage renders the settings form with a live admin preview.
func settingsPage(w http.ResponseWriter, r *http.Request, d deps.Deps, opts domain.GlobalOptions, errs []domain.FieldError, saved bool) {
	sel, err := d.Selection.Current(r.Context())
	if err != nil {
		internalError(w, d, "failed to load selection", err)
		return
	}

	data := render.SettingsData{
		Options:      opts,
		Errors:       errs,
		Saved:        saved,
		Preview:      resolve(r, d, domain.Admin),
		HasSelection: !sel.IsEmpty(),
	}

	status := http.StatusOK
	if len(errs) > 0 {
		status = http.StatusUnprocessableEntity
	}
	writeHTMLStatus(w, d, status, func(buf io.Writer) error { return render.Settings(buf, data) })
}

// SettingsForm shows the global settings.
func SettingsForm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := d.Options.Current(r.Context())
		if err != nil {
			internalError(w, d, "failed to load options", err)
			return
		}
		settingsPage(w, r, d, opts, nil, false)
	}
}

// SettingsSave validates and stores the global settings. Invalid colours are
// reported next to the form while the rest of the submission is kept.
func SettingsSave(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := parseForm(w, r); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		form := domain.OptionsForm{
			Title:      r.PostForm.Get("title"),
			Background: r.PostForm.Get("background"),
			Color:      r.PostForm.Get("color"),
		}

		opts, errs, err := d.Options.Save(r.Context(), form)
		if err != nil {
			internalError(w, d, "failed to save options", err)
			return
		}

		d.Logger.Info("sticky bar settings saved",
			logger.Int("field_errors", len(errs)))
		settingsPage(w, r, d, opts, errs, true)
	}
}

// loadPost resolves the {id} URL parameter to a post, answering 404 itself
// when it cannot.
func loadPost(w http.ResponseWriter, r *http.Request, d deps.Deps) (*domain.Post, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return nil, false
	}

	post, err := d.Posts.GetPost(r.Context(), id)
	if err != nil {
		internalError(w, d, "failed to load post", err)
		return nil, false
	}
	if post == nil {
		http.NotFound(w, r)
		return nil, false
	}
	return post, true
}

func stickyEditorPage(w http.ResponseWriter, r *http.Request, d deps.Deps, post *domain.Post, saved, skipped bool) {
	form, err := d.Selection.FormFor(r.Context(), post.ID)
	if err != nil {
		internalError(w, d, "failed to load selection", err)
		return
	}

	data := render.StickyEditorData{
		Post:     post,
		Form:     form,
		Action:   "/admin/posts/" + strconv.FormatInt(post.ID, 10) + "/sticky",
		Timezone: d.Resolver.Location().String(),
		Saved:    saved,
		Skipped:  skipped,
	}
	writeHTML(w, d, func(buf io.Writer) error { return render.StickyEditor(buf, data) })
}

// StickyForm shows the per-post sticky bar editor.
func StickyForm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, ok := loadPost(w, r, d)
		if !ok {
			return
		}
		stickyEditorPage(w, r, d, post, false, false)
	}
}

// StickySave applies the per-post editor submission. A submission for
// another post that does not tick "sticky" leaves the live selection alone.
func StickySave(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, ok := loadPost(w, r, d)
		if !ok {
			return
		}
		if err := parseForm(w, r); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		form := domain.SelectionForm{
			IsActive:    r.PostForm.Get("sbr_is_active"),
			CustomTitle: r.PostForm.Get("sbr_custom_title"),
			IsExpirable: r.PostForm.Get("sbr_is_expirable"),
			Expiry:      r.PostForm.Get("sbr_expiry"),
		}

		saved, err := d.Selection.Save(r.Context(), post.ID, form)
		if err != nil {
			internalError(w, d, "failed to save selection", err)
			return
		}

		d.Logger.Info("sticky bar selection submitted",
			logger.Int64("post_id", post.ID),
			logger.Bool("saved", saved))
		stickyEditorPage(w, r, d, post, saved, !saved)
	}
}

// ClearSelection removes the current sticky post.
func ClearSelection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Selection.Clear(r.Context()); err != nil {
			internalError(w, d, "failed to clear selection", err)
			return
		}
		d.Logger.Info("sticky bar selection cleared")
		http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
	}
}

// PostIndex lists posts with a link to each sticky editor.
func PostIndex(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := d.PostList.ListPosts(r.Context())
		if err != nil {
			internalError(w, d, "failed to list posts", err)
			return
		}
		sel, err := d.Selection.Current(r.Context())
		if err != nil {
			internalError(w, d, "failed to load selection", err)
			return
		}
		data := render.PostsData{Posts: posts, SelectedID: sel.PostID}
		writeHTML(w, d, func(buf io.Writer) error { return render.Posts(buf, data) })
	}
}
