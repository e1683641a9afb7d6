package domain

import "time"

// Post statuses as the host CMS reports them. Only StatusPublish is ever rendered.
const (
	StatusPublish = "publish"
	StatusDraft   = "draft"
	StatusPending = "pending"
	StatusPrivate = "private"
	StatusFuture  = "future"
	StatusTrash   = "trash"
)

// Post is the subset of a CMS post the banner needs.
type Post struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Slug   string `json:"slug,omitempty"`
	Status string `json:"status"`

	// UpdatedAt is set by the catalog import when the status last changed.
	UpdatedAt time.Time `json:"updated_at"`
}

// IsPublished reports whether the post may be shown to visitors.
func (p *Post) IsPublished() bool {
	return p != nil && p.Status == StatusPublish
}
