package domain

import (
	"regexp"
	"strings"
)

const (
	// DefaultBackground is used when no background colour has been stored.
	DefaultBackground = "#1e73be"
	// DefaultColor is used when no text colour has been stored.
	DefaultColor = "#ffffff"
)

var hexColorPattern = regexp.MustCompile(`(?i)^#[0-9a-f]{6}$`)

// GlobalOptions is the site-wide banner configuration record.
//
// Empty colour fields mean "unset": the resolver falls back to the defaults.
// The options editor guarantees stored colours are either empty or valid.
type GlobalOptions struct {
	Title      string `json:"title"`
	Background string `json:"background,omitempty"`
	Color      string `json:"color,omitempty"`
}

// IsValidColor reports whether s is a six digit hex colour with a leading hash.
func IsValidColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// EffectiveBackground returns the stored background or the default.
func (o GlobalOptions) EffectiveBackground() string {
	if strings.TrimSpace(o.Background) == "" {
		return DefaultBackground
	}
	return o.Background
}

// EffectiveColor returns the stored text colour or the default.
func (o GlobalOptions) EffectiveColor() string {
	if strings.TrimSpace(o.Color) == "" {
		return DefaultColor
	}
	return o.Color
}
