package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/MrSnakeDoc/stickybar/internal/domain"
)

// GetPost retrieves a catalog post by ID; (nil, nil) when unknown
func (s *Store) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	var post domain.Post
	found, err := s.getJSON(ctx, PostKey(id), &post)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &post, nil
}

// GetAllPosts retrieves every catalog post, ordered by ID
func (s *Store) GetAllPosts(ctx context.Context) ([]*domain.Post, error) {
	ids, err := s.client.SMembers(ctx, AllPostsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get post IDs: %w", err)
	}

	posts := make([]*domain.Post, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		post, err := s.GetPost(ctx, id)
		if err != nil || post == nil {
			// Skip posts that couldn't be retrieved
			continue
		}
		posts = append(posts, post)
	}

	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

// DeletePost removes a post from the catalog
func (s *Store) DeletePost(ctx context.Context, id int64) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, PostKey(id))
	pipe.SRem(ctx, AllPostsKey(), strconv.FormatInt(id, 10))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

// SavePostsMany stores multiple posts in Redis (bulk operation)
func (s *Store) SavePostsMany(ctx context.Context, posts []*domain.Post) error {
	if len(posts) == 0 {
		return nil
	}
	pipe := s.client.Pipeline()

	for _, post := range posts {
		data, err := json.Marshal(post)
		if err != nil {
			return fmt.Errorf("failed to marshal post %d: %w", post.ID, err)
		}

		pipe.Set(ctx, PostKey(post.ID), data, 0)
		pipe.SAdd(ctx, AllPostsKey(), strconv.FormatInt(post.ID, 10))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save posts: %w", err)
	}

	return nil
}

// ListPosts satisfies domain.PostLister
func (s *Store) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	return s.GetAllPosts(ctx)
}
