package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/stickybar/internal/domain"
)

func frontView() *domain.BannerView {
	return &domain.BannerView{
		PrefixTitle:     "Featured",
		Link:            "https://example.com/autumn-post/",
		EffectiveTitle:  "Autumn Post",
		BackgroundColor: domain.DefaultBackground,
		TextColor:       domain.DefaultColor,
		Style:           domain.StyleFixedFullWidth,
		PostID:          7,
	}
}

func TestBanner_Nil(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Banner(&buf, nil))
	assert.Zero(t, buf.Len())
}

func TestBanner_FrontEnd(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Banner(&buf, frontView()))

	out := buf.String()
	assert.Contains(t, out, "padding:10px;width:100%;position:fixed;background:#1e73be;color:#ffffff;")
	assert.Contains(t, out, `Featured: <a href="https://example.com/autumn-post/" style="color:#ffffff;">Autumn Post</a>`)
	assert.NotContains(t, out, "font-size:16px")
}

func TestBanner_AdminPreview(t *testing.T) {
	v := frontView()
	v.Style = domain.StyleInlinePreview
	v.Link = "https://admin.example.com/admin/posts/7/sticky"

	var buf bytes.Buffer
	require.NoError(t, Banner(&buf, v))

	out := buf.String()
	assert.Contains(t, out, "padding:10px;width:95%;font-size:16px;background:#1e73be;")
	assert.NotContains(t, out, "position:fixed")
	assert.Contains(t, out, `href="https://admin.example.com/admin/posts/7/sticky"`)
}

func TestBanner_EscapesUserInput(t *testing.T) {
	v := frontView()
	v.PrefixTitle = `<script>alert("x")</script>`
	v.EffectiveTitle = `Tom & "Jerry" <b>`
	v.Link = `javascript:alert(1)`

	var buf bytes.Buffer
	require.NoError(t, Banner(&buf, v))

	out := buf.String()
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "Tom &amp; &#34;Jerry&#34; &lt;b&gt;")
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, "#ZgotmplZ")
}

func TestBanner_RejectsInjectedColor(t *testing.T) {
	v := frontView()
	v.BackgroundColor = `red;}</style><script>x</script>`

	var buf bytes.Buffer
	require.NoError(t, Banner(&buf, v))

	out := buf.String()
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "background:ZgotmplZ;")
}

func TestBanner_AttributeLinkEscaping(t *testing.T) {
	v := frontView()
	v.Link = `https://example.com/a"onmouseover="x/`

	var buf bytes.Buffer
	require.NoError(t, Banner(&buf, v))
	assert.NotContains(t, buf.String(), `"onmouseover="`)
}

func TestPage_BannerRightAfterBody(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Page(&buf, PageData{
		SiteTitle: "Example",
		Banner:    frontView(),
		Posts:     []PostLink{{Title: "Autumn Post", URL: "https://example.com/autumn-post/"}},
	}))

	out := buf.String()
	body := strings.Index(out, "<body>")
	banner := strings.Index(out, `<div id="stickybar"`)
	main := strings.Index(out, "<main>")
	require.True(t, body >= 0 && banner >= 0 && main >= 0, out)
	assert.Less(t, body, banner)
	assert.Less(t, banner, main)
	assert.Empty(t, strings.TrimSpace(out[body+len("<body>"):banner]))
}

func TestPage_NoBanner(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Page(&buf, PageData{SiteTitle: "Example"}))
	assert.NotContains(t, buf.String(), "stickybar")
	assert.Contains(t, buf.String(), "Nothing published yet.")
}

func TestSettings(t *testing.T) {
	preview := frontView()
	preview.Style = domain.StyleInlinePreview

	var buf bytes.Buffer
	require.NoError(t, Settings(&buf, SettingsData{
		Options:      domain.GlobalOptions{Title: `News "today"`, Background: "#123456"},
		Errors:       []domain.FieldError{{Field: "color", Message: "Insert a valid color for Color"}},
		Saved:        true,
		Preview:      preview,
		HasSelection: true,
	}))

	out := buf.String()
	assert.Contains(t, out, "Settings saved.")
	assert.Contains(t, out, "Insert a valid color for Color")
	assert.Contains(t, out, `value="News &#34;today&#34;"`)
	assert.Contains(t, out, `value="#123456"`)
	assert.Contains(t, out, `placeholder="#ffffff"`)
	assert.Contains(t, out, "width:95%;font-size:16px;")
	assert.Contains(t, out, `action="/admin/selection/clear"`)
}

func TestStickyEditor(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, StickyEditor(&buf, StickyEditorData{
		Post:     &domain.Post{ID: 7, Title: "Autumn Post", Status: domain.StatusDraft},
		Form:     domain.SelectionForm{IsActive: "yes", IsExpirable: "no", Expiry: "2024-05-01T18:30"},
		Action:   "/admin/posts/7/sticky",
		Timezone: "Europe/Paris",
		Skipped:  true,
	}))

	out := buf.String()
	assert.Contains(t, out, `name="sbr_is_active" value="yes" checked`)
	assert.NotContains(t, out, `name="sbr_is_expirable" value="yes" checked`)
	assert.Contains(t, out, `value="2024-05-01T18:30"`)
	assert.Contains(t, out, "Another post is the current sticky bar.")
	assert.Contains(t, out, "This post is not published")
	assert.Contains(t, out, "Europe/Paris")
}

func TestStickyEditor_MissingPost(t *testing.T) {
	assert.Error(t, StickyEditor(&bytes.Buffer{}, StickyEditorData{}))
}

func TestPosts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Posts(&buf, PostsData{
		Posts: []*domain.Post{
			{ID: 7, Title: "Autumn Post", Status: domain.StatusPublish},
			{ID: 8, Title: "Draft", Status: domain.StatusDraft},
		},
		SelectedID: 7,
	}))

	out := buf.String()
	assert.Contains(t, out, `href="/admin/posts/8/sticky"`)
	assert.Equal(t, 1, strings.Count(out, "(sticky)"))
}
