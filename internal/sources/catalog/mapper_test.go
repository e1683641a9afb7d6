package catalog

import (
	"testing"

	"github.com/MrSnakeDoc/stickybar/internal/domain"
)

func TestMapperMapPosts(t *testing.T) {
	file := &File{Posts: []PostEntry{
		{ID: 7, Title: "Autumn Post", Slug: "/autumn-post/"},
		{ID: 8, Title: "Winter <em>Draft</em>", Status: "Draft"},
		{ID: 0, Title: "no id"},
		{ID: 9, Title: "   "},
	}}

	posts, err := NewMapper().MapPosts(file)
	if err != nil {
		t.Fatalf("MapPosts() error = %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("MapPosts() returned %d posts, want 2", len(posts))
	}

	if posts[0].Status != domain.StatusPublish {
		t.Errorf("default status = %q, want publish", posts[0].Status)
	}
	if posts[0].Slug != "autumn-post" {
		t.Errorf("slug = %q, want autumn-post", posts[0].Slug)
	}
	if posts[1].Title != "Winter Draft" || posts[1].Status != domain.StatusDraft {
		t.Errorf("second post = %+v", posts[1])
	}
}

func TestMapperDuplicateKeepsLast(t *testing.T) {
	posts, err := NewMapper().MapPosts(&File{Posts: []PostEntry{
		{ID: 1, Title: "First"},
		{ID: 1, Title: "Second"},
	}})
	if err != nil {
		t.Fatalf("MapPosts() error = %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "Second" {
		t.Errorf("MapPosts() = %+v, want single post titled Second", posts)
	}
}

func TestMapperErrors(t *testing.T) {
	tests := []struct {
		name string
		file *File
	}{
		{name: "nil file", file: nil},
		{name: "no valid posts", file: &File{Posts: []PostEntry{{ID: 0, Title: "x"}}}},
		{name: "unknown status", file: &File{Posts: []PostEntry{{ID: 1, Title: "x", Status: "archived"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMapper().MapPosts(tt.file); err == nil {
				t.Error("MapPosts() should fail")
			}
		})
	}
}
