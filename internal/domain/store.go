package domain

import "context"

// OptionsStore persists the GlobalOptions record. A missing record reads as
// the zero value.
type OptionsStore interface {
	GetOptions(ctx context.Context) (GlobalOptions, error)
	SaveOptions(ctx context.Context, opts GlobalOptions) error
}

// SelectionStore persists the StickySelection record. A missing record reads
// as the zero value; clearing an empty record is a no-op.
type SelectionStore interface {
	GetSelection(ctx context.Context) (StickySelection, error)
	SaveSelection(ctx context.Context, sel StickySelection) error
	ClearSelection(ctx context.Context) error
}

// PostFinder looks posts up by ID. Implementations return (nil, nil) when the
// post does not exist.
type PostFinder interface {
	GetPost(ctx context.Context, id int64) (*Post, error)
}

// PostLister lists posts for the admin index.
type PostLister interface {
	ListPosts(ctx context.Context) ([]*Post, error)
}
