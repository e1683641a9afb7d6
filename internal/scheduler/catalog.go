package scheduler

import (
	"context"

	"github.com/MrSnakeDoc/stickybar/internal/domain"
)

// CatalogStore is the post catalog written by the import jobs. Both the Redis
// and the in-memory stores satisfy it.
type CatalogStore interface {
	GetAllPosts(ctx context.Context) ([]*domain.Post, error)
	SavePostsMany(ctx context.Context, posts []*domain.Post) error
	DeletePost(ctx context.Context, id int64) error
}
