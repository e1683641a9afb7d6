package redis

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/stickybar/internal/domain"
)

// GetOptions loads the global options; a missing record reads as empty
func (s *Store) GetOptions(ctx context.Context) (domain.GlobalOptions, error) {
	var opts domain.GlobalOptions
	if _, err := s.getJSON(ctx, KeyOptions, &opts); err != nil {
		return domain.GlobalOptions{}, err
	}
	return opts, nil
}

// SaveOptions replaces the global options record
func (s *Store) SaveOptions(ctx context.Context, opts domain.GlobalOptions) error {
	return s.setJSON(ctx, KeyOptions, opts)
}

// GetSelection loads the sticky selection; a missing record reads as empty
func (s *Store) GetSelection(ctx context.Context) (domain.StickySelection, error) {
	var sel domain.StickySelection
	if _, err := s.getJSON(ctx, KeySelection, &sel); err != nil {
		return domain.StickySelection{}, err
	}
	return sel, nil
}

// SaveSelection replaces the sticky selection record
func (s *Store) SaveSelection(ctx context.Context, sel domain.StickySelection) error {
	return s.setJSON(ctx, KeySelection, sel)
}

// ClearSelection removes the selection record. Deleting a missing key is a no-op.
func (s *Store) ClearSelection(ctx context.Context) error {
	if err := s.client.Del(ctx, KeySelection).Err(); err != nil {
		return fmt.Errorf("failed to clear selection: %w", err)
	}
	return nil
}
