package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// CheckboxOn is the value a ticked editor checkbox submits.
const CheckboxOn = "yes"

// SelectionForm is the raw per-post sticky editor submission. It is also
// used to pre-fill the editor.
type SelectionForm struct {
	IsActive    string `form:"sbr_is_active"`
	CustomTitle string `form:"sbr_custom_title"`
	IsExpirable string `form:"sbr_is_expirable"`
	Expiry      string `form:"sbr_expiry" validate:"omitempty,stickydatetime"`
}

// SelectionEditor applies per-post editor submissions to the selection record.
type SelectionEditor struct {
	store    SelectionStore
	validate *validator.Validate
	location *time.Location
}

// NewSelectionEditor builds an editor over store. loc is used to present
// stored expiries back to the administrator.
func NewSelectionEditor(store SelectionStore, loc *time.Location) *SelectionEditor {
	if loc == nil {
		loc = time.UTC
	}
	return &SelectionEditor{store: store, validate: newValidator(), location: loc}
}

// Current returns the stored selection.
func (e *SelectionEditor) Current(ctx context.Context) (StickySelection, error) {
	return e.store.GetSelection(ctx)
}

// FormFor returns the editor state for postID. Only the currently selected
// post sees stored values; every other post gets an empty form.
func (e *SelectionEditor) FormFor(ctx context.Context, postID int64) (SelectionForm, error) {
	form := SelectionForm{IsActive: "no", IsExpirable: "no"}

	sel, err := e.store.GetSelection(ctx)
	if err != nil {
		return form, fmt.Errorf("load selection: %w", err)
	}
	if sel.IsEmpty() || sel.PostID != postID {
		return form, nil
	}

	form.IsActive = checkbox(sel.IsActive)
	form.IsExpirable = checkbox(sel.IsExpirable)
	form.CustomTitle = sel.CustomTitle
	if t, ok := ParseExpiry(sel.Expiry, e.location); ok {
		form.Expiry = t.In(e.location).Format(ExpiryFormLayout)
	}
	return form, nil
}

// Normalize sanitizes a submission into the record it would store for postID.
// A malformed expiry is dropped rather than rejected.
func (e *SelectionEditor) Normalize(postID int64, form SelectionForm) (StickySelection, error) {
	form.IsActive = SanitizeText(form.IsActive)
	form.CustomTitle = SanitizeText(form.CustomTitle)
	form.IsExpirable = SanitizeText(form.IsExpirable)
	form.Expiry = SanitizeText(form.Expiry)

	failed, err := invalidFields(e.validate, form)
	if err != nil {
		return StickySelection{}, fmt.Errorf("validate selection: %w", err)
	}
	if failed["sbr_expiry"] {
		form.Expiry = ""
	}

	return StickySelection{
		PostID:      postID,
		IsActive:    IsChecked(form.IsActive),
		CustomTitle: form.CustomTitle,
		IsExpirable: IsChecked(form.IsExpirable),
		Expiry:      form.Expiry,
	}, nil
}

// Save applies a submission for postID and reports whether it was written.
//
// The write replaces the record only when no post is selected, when postID
// is already the selected post, or when postID is being marked active. This
// keeps a stale editor for another post from wiping the live selection.
func (e *SelectionEditor) Save(ctx context.Context, postID int64, form SelectionForm) (bool, error) {
	if postID <= 0 {
		return false, fmt.Errorf("invalid post id %d", postID)
	}

	next, err := e.Normalize(postID, form)
	if err != nil {
		return false, err
	}

	prev, err := e.store.GetSelection(ctx)
	if err != nil {
		return false, fmt.Errorf("load selection: %w", err)
	}
	if !overwriteAllowed(prev, postID, next.IsActive) {
		return false, nil
	}

	if err := e.store.SaveSelection(ctx, next); err != nil {
		return false, fmt.Errorf("save selection: %w", err)
	}
	return true, nil
}

// Clear resets the selection to the empty record.
func (e *SelectionEditor) Clear(ctx context.Context) error {
	if err := e.store.ClearSelection(ctx); err != nil {
		return fmt.Errorf("clear selection: %w", err)
	}
	return nil
}

func overwriteAllowed(prev StickySelection, postID int64, active bool) bool {
	return prev.IsEmpty() || prev.PostID == postID || active
}

func checkbox(on bool) string {
	if on {
		return CheckboxOn
	}
	return "no"
}

// IsChecked reports whether a form checkbox value is ticked.
func IsChecked(v string) bool {
	return strings.TrimSpace(v) == CheckboxOn
}
