package catalog

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/stickybar/internal/domain"
)

var knownStatuses = map[string]bool{
	domain.StatusPublish: true,
	domain.StatusDraft:   true,
	domain.StatusPending: true,
	domain.StatusPrivate: true,
	domain.StatusFuture:  true,
	domain.StatusTrash:   true,
}

// Mapper converts catalog entries to domain.Post values
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapPosts converts a catalog file to posts. Entries without a positive ID
// or a title are skipped; a duplicated ID keeps the last entry.
func (m *Mapper) MapPosts(file *File) ([]*domain.Post, error) {
	if file == nil {
		return nil, fmt.Errorf("empty catalog")
	}

	byID := make(map[int64]int, len(file.Posts))
	var posts []*domain.Post

	for _, entry := range file.Posts {
		title := domain.SanitizeText(entry.Title)
		if entry.ID <= 0 || title == "" {
			continue
		}

		status := strings.ToLower(strings.TrimSpace(entry.Status))
		if status == "" {
			status = domain.StatusPublish
		}
		if !knownStatuses[status] {
			return nil, fmt.Errorf("post %d: unknown status %q", entry.ID, entry.Status)
		}

		post := &domain.Post{
			ID:     entry.ID,
			Title:  title,
			Slug:   strings.Trim(strings.TrimSpace(entry.Slug), "/"),
			Status: status,
		}

		if idx, dup := byID[post.ID]; dup {
			posts[idx] = post
			continue
		}
		byID[post.ID] = len(posts)
		posts = append(posts, post)
	}

	if len(posts) == 0 {
		return nil, fmt.Errorf("no valid posts found in catalog")
	}

	return posts, nil
}
