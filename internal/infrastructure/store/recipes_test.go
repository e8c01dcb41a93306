package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createRecipe(t *testing.T, s *Store, userID, title, ingredients string) *Recipe {
	t.Helper()
	r := &Recipe{UserID: userID, Title: title, Ingredients: ingredients}
	require.NoError(t, s.CreateRecipe(context.Background(), r))
	return r
}

func TestRecipe_CRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	r := createRecipe(t, s, "u1", "Omelette", "2 eggs\n1 cup milk")
	assert.NotEmpty(t, r.ID)

	got, err := s.GetRecipe(ctx, "u1", r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Omelette", got.Title)
	assert.Equal(t, "2 eggs\n1 cup milk", got.Ingredients)
	assert.True(t, got.CreatedAt.Equal(r.CreatedAt))

	got.Title = "Big omelette"
	got.Ingredients = "4 eggs"
	require.NoError(t, s.UpdateRecipe(ctx, got))

	updated, err := s.GetRecipe(ctx, "u1", r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Big omelette", updated.Title)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	require.NoError(t, s.DeleteRecipe(ctx, "u1", r.ID))
	_, err = s.GetRecipe(ctx, "u1", r.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecipe_ScopedToUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	r := createRecipe(t, s, "u1", "Soup", "1 onion")

	_, err := s.GetRecipe(ctx, "u2", r.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.DeleteRecipe(ctx, "u2", r.ID), ErrNotFound)
	assert.ErrorIs(t, s.UpdateRecipe(ctx, &Recipe{ID: r.ID, UserID: "u2", Title: "x"}), ErrNotFound)

	list, err := s.ListRecipes(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListRecipes_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	createRecipe(t, s, "u1", "First", "")
	createRecipe(t, s, "u1", "Second", "")
	createRecipe(t, s, "u1", "Third", "")

	list, err := s.ListRecipes(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Third", "Second", "First"},
		[]string{list[0].Title, list[1].Title, list[2].Title})
}

func TestListIngredients(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	r := createRecipe(t, s, "u1", "Toast", "- 1) 2 tbsp butter\n0 bread\n\n3 slices bread")

	got, err := s.ListIngredients(ctx, "u1", r.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, RecipeIngredient{Position: 0, Line: "- 1) 2 tbsp butter", Label: "tbsp butter", Quantity: 2}, got[0])
	assert.Equal(t, "slices bread", got[1].Label)
	assert.Equal(t, 3.0, got[1].Quantity)

	// 更新時重建
	r.Ingredients = "1 lemon"
	require.NoError(t, s.UpdateRecipe(ctx, r))
	got, err = s.ListIngredients(ctx, "u1", r.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "lemon", got[0].Label)

	_, err = s.ListIngredients(ctx, "u2", r.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
