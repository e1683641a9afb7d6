package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/stickybar/internal/domain"
	"github.com/MrSnakeDoc/stickybar/internal/logger"
	"github.com/MrSnakeDoc/stickybar/internal/sources/catalog"
)

// ReloadObserver is told about every reload attempt.
type ReloadObserver interface {
	ObserveCatalogReload(err error)
}

// CatalogReloader handles periodic reloading of the post catalog file
type CatalogReloader struct {
	loader        *catalog.Loader
	mapper        *catalog.Mapper
	store         CatalogStore
	logger        logger.Logger
	interval      time.Duration
	now           func() time.Time
	observer      ReloadObserver
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewCatalogReloader creates a new catalog reloader
func NewCatalogReloader(
	catalogFile string,
	store CatalogStore,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *CatalogReloader {
	return &CatalogReloader{
		loader:        catalog.NewLoader(catalogFile),
		mapper:        catalog.NewMapper(),
		store:         store,
		logger:        log,
		interval:      interval,
		now:           time.Now,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the catalog once, then keeps reloading it on the ticker and on
// manual triggers until Stop is called or ctx is done.
func (cr *CatalogReloader) Start(ctx context.Context) error {
	if err := cr.Reload(ctx); err != nil {
		return fmt.Errorf("initial reload failed: %w", err)
	}

	ticker := time.NewTicker(cr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload catalog", logger.Error(err))
				}
			case <-cr.manualTrigger:
				cr.logger.Info("manual reload triggered")
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload catalog", logger.Error(err))
				}
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// SetObserver attaches a ReloadObserver. Call before Start.
func (cr *CatalogReloader) SetObserver(o ReloadObserver) {
	cr.observer = o
}

// Stop stops the reloader
func (cr *CatalogReloader) Stop() {
	close(cr.stopCh)
}

// Reload imports the catalog file into the store. Posts that disappeared from
// the file are kept but moved to trash, so a selection pointing at them stops
// rendering.
func (cr *CatalogReloader) Reload(ctx context.Context) error {
	err := cr.reload(ctx)
	if cr.observer != nil {
		cr.observer.ObserveCatalogReload(err)
	}
	return err
}

func (cr *CatalogReloader) reload(ctx context.Context) error {
	cr.logger.Info("reloading post catalog", logger.String("file", cr.loader.Path()))

	file, err := cr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	posts, err := cr.mapper.MapPosts(file)
	if err != nil {
		return fmt.Errorf("failed to map catalog: %w", err)
	}

	existing, err := cr.store.GetAllPosts(ctx)
	if err != nil {
		return fmt.Errorf("failed to read current catalog: %w", err)
	}

	now := cr.now()
	previous := make(map[int64]*domain.Post, len(existing))
	for _, p := range existing {
		previous[p.ID] = p
	}

	seen := make(map[int64]bool, len(posts))
	for _, p := range posts {
		seen[p.ID] = true
		if old, ok := previous[p.ID]; ok && old.Status == p.Status && !old.UpdatedAt.IsZero() {
			p.UpdatedAt = old.UpdatedAt
		} else {
			p.UpdatedAt = now
		}
	}

	var trashed []*domain.Post
	for _, old := range existing {
		if seen[old.ID] || old.Status == domain.StatusTrash {
			continue
		}
		old.Status = domain.StatusTrash
		old.UpdatedAt = now
		trashed = append(trashed, old)
	}

	if len(trashed) > 0 {
		cr.logger.Info("moving removed posts to trash", logger.Int("count", len(trashed)))
	}

	if err := cr.store.SavePostsMany(ctx, append(posts, trashed...)); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}

	cr.logger.Info("post catalog loaded", logger.Int("count", len(posts)))
	return nil
}
