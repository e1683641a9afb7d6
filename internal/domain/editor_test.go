package domain_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/stickybar/internal/domain"
	"github.com/MrSnakeDoc/stickybar/internal/store/memory"
)

func TestOptionsEditor_Save(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	editor := domain.NewOptionsEditor(store)

	saved, errs, err := editor.Save(ctx, domain.OptionsForm{Title: "  Breaking <b>news</b> ", Background: "#1E73BE", Color: "#ffffff"})
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, domain.GlobalOptions{Title: "Breaking news", Background: "#1E73BE", Color: "#ffffff"}, saved)

	stored, err := store.GetOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, stored)
}

func TestOptionsEditor_InvalidColorKeepsPrevious(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.SaveOptions(ctx, domain.GlobalOptions{Title: "Old", Background: "#123456", Color: "#abcdef"}))
	editor := domain.NewOptionsEditor(store)

	saved, errs, err := editor.Save(ctx, domain.OptionsForm{Title: "New", Background: "#zzzzzz", Color: "#000000"})
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "background", errs[0].Field)

	assert.Equal(t, "New", saved.Title)
	assert.Equal(t, "#123456", saved.Background)
	assert.Equal(t, "#000000", saved.Color)

	stored, err := store.GetOptions(ctx)
	require.NoError(t, err)
	assert.True(t, domain.IsValidColor(stored.Background))
	assert.True(t, domain.IsValidColor(stored.Color))
}

func TestOptionsEditor_InvalidColorWithoutPreviousStaysUnset(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	editor := domain.NewOptionsEditor(store)

	saved, errs, err := editor.Save(ctx, domain.OptionsForm{Background: "blue", Color: "#fff"})
	require.NoError(t, err)
	assert.Len(t, errs, 2)
	assert.Empty(t, saved.Background)
	assert.Empty(t, saved.Color)
	assert.Equal(t, domain.DefaultBackground, saved.EffectiveBackground())
}

func TestOptionsEditor_BlankColorUnsets(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.SaveOptions(ctx, domain.GlobalOptions{Background: "#123456"}))
	editor := domain.NewOptionsEditor(store)

	saved, errs, err := editor.Save(ctx, domain.OptionsForm{Background: "   "})
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Empty(t, saved.Background)
}

func TestSelectionEditor_SaveAndForm(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	editor := domain.NewSelectionEditor(store, time.UTC)

	saved, err := editor.Save(ctx, 7, domain.SelectionForm{
		IsActive:    "yes",
		CustomTitle: "<i>Sale!</i>",
		IsExpirable: "yes",
		Expiry:      "2024-05-01T18:30",
	})
	require.NoError(t, err)
	assert.True(t, saved)

	sel, err := store.GetSelection(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StickySelection{
		PostID:      7,
		IsActive:    true,
		CustomTitle: "Sale!",
		IsExpirable: true,
		Expiry:      "2024-05-01T18:30",
	}, sel)

	form, err := editor.FormFor(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "yes", form.IsActive)
	assert.Equal(t, "2024-05-01T18:30", form.Expiry)

	other, err := editor.FormFor(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, domain.SelectionForm{IsActive: "no", IsExpirable: "no"}, other)
}

func TestSelectionEditor_MalformedExpiryDropped(t *testing.T) {
	store := memory.NewStore()
	editor := domain.NewSelectionEditor(store, time.UTC)

	for _, raw := range []string{"2024-13-01 10:00", "01/05/2024 10:00", "2024-05-01", "2024-5-1 9:00"} {
		sel, err := editor.Normalize(7, domain.SelectionForm{IsActive: "yes", IsExpirable: "yes", Expiry: raw})
		require.NoError(t, err)
		assert.Empty(t, sel.Expiry, raw)
	}
}

func TestSelectionEditor_OverwriteGuard(t *testing.T) {
	tests := []struct {
		name      string
		prev      domain.StickySelection
		postID    int64
		form      domain.SelectionForm
		wantSaved bool
		wantPost  int64
	}{
		{
			name:      "no previous selection",
			prev:      domain.StickySelection{},
			postID:    8,
			form:      domain.SelectionForm{IsActive: "no"},
			wantSaved: true,
			wantPost:  8,
		},
		{
			name:      "same post unchecks",
			prev:      domain.StickySelection{PostID: 7, IsActive: true},
			postID:    7,
			form:      domain.SelectionForm{IsActive: "no"},
			wantSaved: true,
			wantPost:  7,
		},
		{
			name:      "other post marked active takes over",
			prev:      domain.StickySelection{PostID: 7, IsActive: true},
			postID:    8,
			form:      domain.SelectionForm{IsActive: "yes"},
			wantSaved: true,
			wantPost:  8,
		},
		{
			name:      "other post not active leaves selection alone",
			prev:      domain.StickySelection{PostID: 7, IsActive: true},
			postID:    8,
			form:      domain.SelectionForm{IsActive: ""},
			wantSaved: false,
			wantPost:  7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := memory.NewStore()
			require.NoError(t, store.SaveSelection(ctx, tt.prev))
			editor := domain.NewSelectionEditor(store, time.UTC)

			saved, err := editor.Save(ctx, tt.postID, tt.form)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSaved, saved)

			sel, err := store.GetSelection(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPost, sel.PostID)
		})
	}
}

func TestSelectionEditor_Clear(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	editor := domain.NewSelectionEditor(store, nil)
	require.NoError(t, store.SaveSelection(ctx, domain.StickySelection{PostID: 7, IsActive: true}))

	require.NoError(t, editor.Clear(ctx))
	require.NoError(t, editor.Clear(ctx))

	sel, err := editor.Current(ctx)
	require.NoError(t, err)
	assert.True(t, sel.IsEmpty())
}

func TestSelectionEditor_RejectsInvalidPostID(t *testing.T) {
	editor := domain.NewSelectionEditor(memory.NewStore(), time.UTC)
	_, err := editor.Save(context.Background(), 0, domain.SelectionForm{IsActive: "yes"})
	assert.Error(t, err)
}
