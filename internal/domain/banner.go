package domain

// ViewContext tells the resolver who the banner is rendered for.
type ViewContext int

const (
	// FrontEnd is a regular site visitor.
	FrontEnd ViewContext = iota
	// Admin is the settings page preview.
	Admin
)

func (c ViewContext) String() string {
	if c == Admin {
		return "admin"
	}
	return "front-end"
}

// StyleVariant selects the banner layout.
type StyleVariant string

const (
	// StyleFixedFullWidth is the full-width bar pinned to the top of the page.
	StyleFixedFullWidth StyleVariant = "fixed-full-width"
	// StyleInlinePreview is the 95% wide, larger font block used in admin previews.
	StyleInlinePreview StyleVariant = "inline-preview"
)

// StyleFor returns the layout used for a view context.
func StyleFor(c ViewContext) StyleVariant {
	if c == Admin {
		return StyleInlinePreview
	}
	return StyleFixedFullWidth
}

// BannerView is everything the renderer needs to draw one banner.
type BannerView struct {
	PrefixTitle     string       `json:"prefix_title"`
	Link            string       `json:"link"`
	EffectiveTitle  string       `json:"effective_title"`
	BackgroundColor string       `json:"background_color"`
	TextColor       string       `json:"text_color"`
	Style           StyleVariant `json:"style_variant"`
	PostID          int64        `json:"post_id"`
}
