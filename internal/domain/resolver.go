package domain

import (
	"context"
	"fmt"
	"time"
)

// Resolution outcomes reported to a ResolutionObserver.
const (
	OutcomeShown           = "shown"
	OutcomeNoSelection     = "no_selection"
	OutcomeExpired         = "expired"
	OutcomePostUnavailable = "post_unavailable"
	OutcomeError           = "error"
)

// ResolutionObserver receives one outcome per resolution. It may be nil.
type ResolutionObserver interface {
	ObserveResolution(outcome string)
}

// Resolver decides which banner, if any, is shown.
//
// Both records are read fresh on every call; nothing is cached between
// resolutions.
type Resolver struct {
	options   OptionsStore
	selection SelectionStore
	posts     PostFinder
	links     LinkBuilder
	location  *time.Location
	observer  ResolutionObserver
}

// ResolverOption customises a Resolver.
type ResolverOption func(*Resolver)

// WithLocation sets the timezone used for expiries stored without an offset.
func WithLocation(loc *time.Location) ResolverOption {
	return func(r *Resolver) {
		if loc != nil {
			r.location = loc
		}
	}
}

// WithObserver attaches a ResolutionObserver.
func WithObserver(o ResolutionObserver) ResolverOption {
	return func(r *Resolver) { r.observer = o }
}

// NewResolver wires a resolver over its collaborators.
func NewResolver(options OptionsStore, selection SelectionStore, posts PostFinder, links LinkBuilder, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		options:   options,
		selection: selection,
		posts:     posts,
		links:     links,
		location:  time.UTC,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Location returns the timezone expiries are interpreted in.
func (r *Resolver) Location() *time.Location {
	return r.location
}

// ResolveActiveBanner returns the banner to draw at now for the given
// context, or nil when nothing should be shown.
//
// An expired selection is cleared from storage as a side effect. Errors only
// report storage failures; the view is always nil alongside an error.
func (r *Resolver) ResolveActiveBanner(ctx context.Context, now time.Time, viewCtx ViewContext) (*BannerView, error) {
	view, outcome, err := r.resolve(ctx, now, viewCtx)
	if r.observer != nil {
		r.observer.ObserveResolution(outcome)
	}
	return view, err
}

func (r *Resolver) resolve(ctx context.Context, now time.Time, viewCtx ViewContext) (*BannerView, string, error) {
	sel, err := r.selection.GetSelection(ctx)
	if err != nil {
		return nil, OutcomeError, fmt.Errorf("load selection: %w", err)
	}
	if !sel.IsActive || sel.IsEmpty() {
		return nil, OutcomeNoSelection, nil
	}

	if sel.ExpiredAt(now, r.location) {
		if err := r.selection.ClearSelection(ctx); err != nil {
			return nil, OutcomeError, fmt.Errorf("clear expired selection: %w", err)
		}
		return nil, OutcomeExpired, nil
	}

	post, err := r.posts.GetPost(ctx, sel.PostID)
	if err != nil {
		return nil, OutcomeError, fmt.Errorf("load post %d: %w", sel.PostID, err)
	}
	if !post.IsPublished() {
		return nil, OutcomePostUnavailable, nil
	}

	opts, err := r.options.GetOptions(ctx)
	if err != nil {
		return nil, OutcomeError, fmt.Errorf("load options: %w", err)
	}

	link := r.links.Permalink(post)
	if viewCtx == Admin {
		link = r.links.EditLink(post)
	}

	return &BannerView{
		PrefixTitle:     opts.Title,
		Link:            link,
		EffectiveTitle:  sel.EffectiveTitle(post),
		BackgroundColor: opts.EffectiveBackground(),
		TextColor:       opts.EffectiveColor(),
		Style:           StyleFor(viewCtx),
		PostID:          post.ID,
	}, OutcomeShown, nil
}
