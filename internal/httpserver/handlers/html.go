package handlers

import (
	"bytes"
	"io"
	"net/http"

	"github.com/MrSnakeDoc/stickybar/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stickybar/internal/logger"
)

// maxFormBytes caps admin form bodies.
const maxFormBytes = 64 << 10

// writeHTML renders into a buffer and only then commits the response, so a
// template failure turns into a clean 500.
func writeHTML(w http.ResponseWriter, d deps.Deps, fn func(w io.Writer) error) {
	writeHTMLStatus(w, d, http.StatusOK, fn)
}

func writeHTMLStatus(w http.ResponseWriter, d deps.Deps, status int, fn func(w io.Writer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		d.Logger.Error("failed to render page", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// internalError logs err and answers a generic 500.
func internalError(w http.ResponseWriter, d deps.Deps, msg string, err error) {
	d.Logger.Error(msg, logger.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// parseForm limits and parses a urlencoded admin form.
func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	return r.ParseForm()
}
