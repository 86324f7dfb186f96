package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-extractor/internal/core/storage"
	"recipe-extractor/internal/pkg/common"
)

func sampleRecipe(title string) *common.ParsedRecipe {
	r := common.NewParsedRecipe()
	r.Title = title
	r.Instructions = []string{"cook it"}
	return r
}

func TestMemoryStore_SaveAndGet(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	stored, err := store.Save(ctx, sampleRecipe("Pancakes"), "https://example.com/p")
	require.NoError(t, err)
	require.NotEmpty(t, stored.ID)

	got, err := store.Get(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", got.Recipe.Title)
	assert.Equal(t, "https://example.com/p", got.SourceURL)
}

func TestMemoryStore_SaveClonesInput(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	recipe := sampleRecipe("Original")
	stored, err := store.Save(ctx, recipe, "")
	require.NoError(t, err)

	recipe.Title = "Mutated"
	got, err := store.Get(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Recipe.Title)
}

func TestMemoryStore_EmptyRecipeRejected(t *testing.T) {
	store := storage.NewMemoryStore()

	_, err := store.Save(context.Background(), common.NewParsedRecipe(), "")
	require.Error(t, err)
	assert.True(t, common.IsValidationError(err))
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store := storage.NewMemoryStore()

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	stored, err := store.Save(ctx, sampleRecipe("ToDelete"), "")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, stored.ID))
	_, err = store.Get(ctx, stored.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, stored.ID), common.ErrNotFound)
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	_, err := store.Save(ctx, sampleRecipe("First"), "")
	require.NoError(t, err)
	_, err = store.Save(ctx, sampleRecipe("Second"), "")
	require.NoError(t, err)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
}
