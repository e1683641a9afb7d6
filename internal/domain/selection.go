package domain

import (
	"strings"
	"time"
)

// ExpiryInputLayout is the layout accepted from the sticky editor
// ("2024-05-01 18:30"; the datetime-local "T" separator is normalised first).
const ExpiryInputLayout = "2006-01-02 15:04"

// ExpiryFormLayout is the layout used to pre-fill a datetime-local input.
const ExpiryFormLayout = "2006-01-02T15:04"

// expiryLayouts are tried in order when reading a stored expiry.
var expiryLayouts = []string{
	ExpiryInputLayout,
	ExpiryFormLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// StickySelection is the singleton record naming the promoted post.
// A zero PostID means nothing is selected.
type StickySelection struct {
	PostID      int64  `json:"post_id,omitempty"`
	IsActive    bool   `json:"is_active"`
	CustomTitle string `json:"custom_title,omitempty"`
	IsExpirable bool   `json:"is_expirable"`
	Expiry      string `json:"expiry,omitempty"`
}

// IsEmpty reports whether the record selects no post.
func (s StickySelection) IsEmpty() bool {
	return s.PostID == 0
}

// ParseExpiry reads a stored expiry. Values without a zone are interpreted in loc.
func ParseExpiry(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	for _, layout := range expiryLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsValidExpiryInput reports whether raw is a well-formed editor value:
// exactly "YYYY-MM-DD HH:MM", with "T" accepted as the separator.
func IsValidExpiryInput(raw string) bool {
	normalized := strings.Replace(raw, "T", " ", 1)
	t, err := time.Parse(ExpiryInputLayout, normalized)
	if err != nil {
		return false
	}
	return t.Format(ExpiryInputLayout) == normalized
}

// ExpiredAt reports whether the selection has expired at now.
//
// Non-expirable selections never expire. An expiry that cannot be parsed is
// treated as not yet reached so a valid banner is not hidden by bad data.
func (s StickySelection) ExpiredAt(now time.Time, loc *time.Location) bool {
	if !s.IsExpirable || strings.TrimSpace(s.Expiry) == "" {
		return false
	}
	expiry, ok := ParseExpiry(s.Expiry, loc)
	if !ok {
		return false
	}
	return now.After(expiry)
}

// EffectiveTitle picks the custom title when it has content, else the post title.
func (s StickySelection) EffectiveTitle(post *Post) string {
	if strings.TrimSpace(s.CustomTitle) != "" {
		return s.CustomTitle
	}
	if post == nil {
		return ""
	}
	return post.Title
}
