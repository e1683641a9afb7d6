package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/MrSnakeDoc/stickybar/internal/domain"
)

func TestNewStore(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	opts, err := s.GetOptions(ctx)
	if err != nil || opts != (domain.GlobalOptions{}) {
		t.Errorf("GetOptions() = %+v, %v, want zero value", opts, err)
	}
	sel, err := s.GetSelection(ctx)
	if err != nil || !sel.IsEmpty() {
		t.Errorf("GetSelection() = %+v, %v, want empty", sel, err)
	}
	if !s.LastCatalogUpdate().IsZero() {
		t.Error("LastCatalogUpdate() should be zero before any import")
	}
}

func TestSavePostsManyUpserts(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if err := s.SavePostsMany(ctx, []*domain.Post{
		{ID: 9, Title: "Winter", Status: domain.StatusPublish},
		{ID: 7, Title: "Autumn", Status: domain.StatusPublish},
	}); err != nil {
		t.Fatalf("SavePostsMany() error = %v", err)
	}
	if err := s.SavePostsMany(ctx, []*domain.Post{{ID: 7, Title: "Autumn v2", Status: domain.StatusDraft}}); err != nil {
		t.Fatalf("SavePostsMany() error = %v", err)
	}

	posts, err := s.ListPosts(ctx)
	if err != nil {
		t.Fatalf("ListPosts() error = %v", err)
	}
	if len(posts) != 2 || posts[0].ID != 7 || posts[1].ID != 9 {
		t.Fatalf("ListPosts() = %+v, want IDs [7 9]", posts)
	}
	if posts[0].Title != "Autumn v2" || posts[0].Status != domain.StatusDraft {
		t.Errorf("post 7 = %+v, want updated copy", posts[0])
	}
	if s.LastCatalogUpdate().IsZero() {
		t.Error("LastCatalogUpdate() should be set after an import")
	}
}

func TestGetPostReturnsCopy(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_ = s.SavePostsMany(ctx, []*domain.Post{{ID: 7, Title: "Autumn"}})

	p, err := s.GetPost(ctx, 7)
	if err != nil || p == nil {
		t.Fatalf("GetPost() = %v, %v", p, err)
	}
	p.Title = "mutated"

	again, _ := s.GetPost(ctx, 7)
	if again.Title != "Autumn" {
		t.Errorf("GetPost() leaked internal state, title = %q", again.Title)
	}

	missing, err := s.GetPost(ctx, 99)
	if err != nil || missing != nil {
		t.Errorf("GetPost(99) = %v, %v, want nil, nil", missing, err)
	}
}

func TestSelectionLifecycle(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	want := domain.StickySelection{PostID: 7, IsActive: true, CustomTitle: "Sale!"}
	_ = s.SaveSelection(ctx, want)
	got, _ := s.GetSelection(ctx)
	if got != want {
		t.Errorf("GetSelection() = %+v, want %+v", got, want)
	}

	_ = s.ClearSelection(ctx)
	_ = s.ClearSelection(ctx)
	got, _ = s.GetSelection(ctx)
	if !got.IsEmpty() {
		t.Errorf("GetSelection() after clear = %+v, want empty", got)
	}
}

func TestDeletePost(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_ = s.SavePostsMany(ctx, []*domain.Post{{ID: 7}, {ID: 8}})

	_ = s.DeletePost(ctx, 7)
	_ = s.DeletePost(ctx, 42)

	posts, _ := s.GetAllPosts(ctx)
	if len(posts) != 1 || posts[0].ID != 8 {
		t.Errorf("GetAllPosts() = %+v, want only post 8", posts)
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_ = s.SavePostsMany(ctx, []*domain.Post{{ID: 1, Status: domain.StatusPublish}})

	var wg sync.WaitGroup

	// Concurrent reads
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.GetSelection(ctx)
			_, _ = s.GetPost(ctx, 1)
		}()
	}

	// Concurrent writes
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_ = s.SaveSelection(ctx, domain.StickySelection{PostID: id, IsActive: true})
		}(int64(i + 1))
	}

	wg.Wait()

	sel, _ := s.GetSelection(ctx)
	if sel.PostID < 1 || sel.PostID > 100 {
		t.Errorf("GetSelection().PostID = %d, want one of the written IDs", sel.PostID)
	}
}
