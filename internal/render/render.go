// Package render draws the banner and the admin pages from embedded
// html/template files. All values go through contextual escaping.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/MrSnakeDoc/stickybar/internal/domain"
)

//go:embed templates/*.html
var files embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"preview": func(s domain.StyleVariant) bool { return s == domain.StyleInlinePreview },
	"checked": domain.IsChecked,
}).ParseFS(files, "templates/*.html"))

// PostLink is one entry of the demo front page.
type PostLink struct {
	Title string
	URL   string
}

// PageData feeds the demo front-end page.
type PageData struct {
	SiteTitle string
	Banner    *domain.BannerView
	Posts     []PostLink
}

// SettingsData feeds the global settings form.
type SettingsData struct {
	Options           domain.GlobalOptions
	Errors            []domain.FieldError
	Saved             bool
	Preview           *domain.BannerView
	HasSelection      bool
	DefaultBackground string
	DefaultColor      string
}

// StickyEditorData feeds the per-post editor.
type StickyEditorData struct {
	Post     *domain.Post
	Form     domain.SelectionForm
	Action   string
	Timezone string
	Saved    bool
	Skipped  bool
}

// PostsData feeds the admin post index.
type PostsData struct {
	Posts      []*domain.Post
	SelectedID int64
}

// Banner writes the banner markup, or nothing at all for a nil view.
func Banner(w io.Writer, v *domain.BannerView) error {
	if v == nil {
		return nil
	}
	return execute(w, "banner", v)
}

// Page writes the demo page; the banner sits right after <body>.
func Page(w io.Writer, data PageData) error {
	return execute(w, "page.html", data)
}

// Settings writes the settings form with its live preview.
func Settings(w io.Writer, data SettingsData) error {
	if data.DefaultBackground == "" {
		data.DefaultBackground = domain.DefaultBackground
	}
	if data.DefaultColor == "" {
		data.DefaultColor = domain.DefaultColor
	}
	return execute(w, "settings.html", data)
}

// StickyEditor writes the per-post sticky bar form.
func StickyEditor(w io.Writer, data StickyEditorData) error {
	if data.Post == nil {
		return fmt.Errorf("sticky editor: missing post")
	}
	return execute(w, "sticky_editor.html", data)
}

// Posts writes the admin post index.
func Posts(w io.Writer, data PostsData) error {
	return execute(w, "posts.html", data)
}

// execute renders into a buffer first so a template error never leaves half
// a page on the wire.
func execute(w io.Writer, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
