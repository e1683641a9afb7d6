package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MrSnakeDoc/stickybar/internal/domain"
)

// Store keeps the options record, the selection record and a post catalog in
// process memory. It satisfies the same interfaces as the Redis store and is
// used for local runs and tests.
type Store struct {
	mu          sync.RWMutex
	options     domain.GlobalOptions
	selection   domain.StickySelection
	posts       map[int64]*domain.Post
	lastCatalog time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		posts: make(map[int64]*domain.Post),
	}
}

func (s *Store) GetOptions(_ context.Context) (domain.GlobalOptions, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.options, nil
}

func (s *Store) SaveOptions(_ context.Context, opts domain.GlobalOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options = opts
	return nil
}

func (s *Store) GetSelection(_ context.Context) (domain.StickySelection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection, nil
}

func (s *Store) SaveSelection(_ context.Context, sel domain.StickySelection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = sel
	return nil
}

func (s *Store) ClearSelection(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = domain.StickySelection{}
	return nil
}

// GetPost returns a copy of the post, or nil when unknown.
func (s *Store) GetPost(_ context.Context, id int64) (*domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// SavePostsMany upserts posts into the catalog.
func (s *Store) SavePostsMany(_ context.Context, posts []*domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range posts {
		cp := *p
		s.posts[p.ID] = &cp
	}
	s.lastCatalog = time.Now()
	return nil
}

// GetAllPosts returns the catalog ordered by ID.
func (s *Store) GetAllPosts(_ context.Context) ([]*domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Post, 0, len(s.posts))
	for _, p := range s.posts {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) DeletePost(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.posts, id)
	return nil
}

// LastCatalogUpdate returns when posts were last saved.
func (s *Store) LastCatalogUpdate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastCatalog
}

// ListPosts satisfies domain.PostLister.
func (s *Store) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	return s.GetAllPosts(ctx)
}
