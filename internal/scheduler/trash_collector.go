package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/stickybar/internal/domain"
	"github.com/MrSnakeDoc/stickybar/internal/logger"
)

const (
	// DefaultTrashRetention is how long a trashed post stays in the catalog
	DefaultTrashRetention = 30 * 24 * time.Hour // 30 days
)

// TrashCollector purges catalog posts that have been in trash for longer
// than the retention period.
type TrashCollector struct {
	store     CatalogStore
	logger    logger.Logger
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
	stopCh    chan struct{}
}

// NewTrashCollector creates a new trash collector
func NewTrashCollector(
	store CatalogStore,
	log logger.Logger,
	interval time.Duration,
	retention time.Duration,
) *TrashCollector {
	if retention == 0 {
		retention = DefaultTrashRetention
	}

	return &TrashCollector{
		store:     store,
		logger:    log,
		interval:  interval,
		retention: retention,
		now:       time.Now,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the periodic collection
func (tc *TrashCollector) Start(ctx context.Context) {
	if _, err := tc.Collect(ctx); err != nil {
		tc.logger.Warn("initial trash collection failed", logger.Error(err))
	}

	ticker := time.NewTicker(tc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := tc.Collect(ctx); err != nil {
					tc.logger.Error("trash collection failed", logger.Error(err))
				}
			case <-tc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the collector
func (tc *TrashCollector) Stop() {
	close(tc.stopCh)
}

// Collect deletes expired trash and returns how many posts were removed.
// Posts without an UpdatedAt are never collected.
func (tc *TrashCollector) Collect(ctx context.Context) (int, error) {
	posts, err := tc.store.GetAllPosts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list catalog: %w", err)
	}

	now := tc.now()
	deleted := 0

	for _, post := range posts {
		if post.Status != domain.StatusTrash || post.UpdatedAt.IsZero() {
			continue
		}

		age := now.Sub(post.UpdatedAt)
		if age < tc.retention {
			continue
		}

		if err := tc.store.DeletePost(ctx, post.ID); err != nil {
			tc.logger.Warn("failed to delete trashed post",
				logger.Int64("post_id", post.ID),
				logger.Error(err))
			continue
		}

		tc.logger.Info("purged trashed post",
			logger.Int64("post_id", post.ID),
			logger.String("trashed_for", age.String()))
		deleted++
	}

	if deleted == 0 {
		tc.logger.Debug("no trashed posts to purge")
	}

	return deleted, nil
}
