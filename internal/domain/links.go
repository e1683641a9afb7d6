package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// LinkBuilder produces the public and administrative URLs of a post.
type LinkBuilder interface {
	Permalink(p *Post) string
	EditLink(p *Post) string
}

// URLLinks builds links from two base URLs.
//
//	Permalink: <public>/<slug>/ or <public>/?p=<id> when the post has no slug
//	EditLink:  <admin>/admin/posts/<id>/sticky
type URLLinks struct {
	PublicBase string
	AdminBase  string
}

// NewURLLinks trims trailing slashes from both bases.
func NewURLLinks(publicBase, adminBase string) URLLinks {
	return URLLinks{
		PublicBase: strings.TrimRight(publicBase, "/"),
		AdminBase:  strings.TrimRight(adminBase, "/"),
	}
}

func (l URLLinks) Permalink(p *Post) string {
	id := strconv.FormatInt(p.ID, 10)
	if p.Slug == "" {
		return l.PublicBase + "/?p=" + id
	}
	return l.PublicBase + "/" + url.PathEscape(p.Slug) + "/"
}

func (l URLLinks) EditLink(p *Post) string {
	return l.AdminBase + "/admin/posts/" + strconv.FormatInt(p.ID, 10) + "/sticky"
}
