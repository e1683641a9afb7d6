package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/MrSnakeDoc/stickybar/internal/domain"
)

// postRow mirrors the columns read from the host CMS posts table.
type postRow struct {
	ID     int64          `db:"id"`
	Title  string         `db:"title"`
	Slug   sql.NullString `db:"slug"`
	Status string         `db:"status"`
}

func (r postRow) toDomain() *domain.Post {
	return &domain.Post{
		ID:     r.ID,
		Title:  r.Title,
		Slug:   r.Slug.String,
		Status: r.Status,
	}
}

// PostRepository reads posts owned by the host CMS. It never writes.
type PostRepository struct {
	db    *sqlx.DB
	table string
}

// NewPostRepository constructs the repository. table defaults to "posts".
func NewPostRepository(db *sqlx.DB, table string) *PostRepository {
	if table == "" {
		table = "posts"
	}
	return &PostRepository{db: db, table: table}
}

// GetPost fetches a post by ID; (nil, nil) when it does not exist.
func (r *PostRepository) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	query := fmt.Sprintf(`SELECT id, title, slug, status FROM %s WHERE id = $1`, r.table)
	var row postRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	return row.toDomain(), nil
}

// ListPublished returns published posts, newest ID first, for the editor index.
func (r *PostRepository) ListPublished(ctx context.Context, limit int) ([]*domain.Post, error) {
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(`SELECT id, title, slug, status FROM %s WHERE status = $1 ORDER BY id DESC LIMIT $2`, r.table)
	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, query, domain.StatusPublish, limit); err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	posts := make([]*domain.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toDomain())
	}
	return posts, nil
}

// ListPosts satisfies domain.PostLister with the default page size.
func (r *PostRepository) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	return r.ListPublished(ctx, 0)
}
