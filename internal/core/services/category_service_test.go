package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple name", "Electronics", "electronics"},
		{"spaces become dashes", "Home & Garden", "home-garden"},
		{"extra whitespace trimmed", "  Fashion  ", "fashion"},
		{"mixed punctuation collapsed", "Toys, Games & Hobbies!", "toys-games-hobbies"},
		{"numbers kept", "Top 10 Deals", "top-10-deals"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestCategoryService(t *testing.T) {
	ctx := context.Background()

	t.Run("create derives slug and activates", func(t *testing.T) {
		svc := NewCategoryService(newFakeCategoryRepo())

		category, err := svc.Create(ctx, &CategoryInput{Name: "Home & Garden"})
		require.NoError(t, err)
		assert.Equal(t, "home-garden", category.Slug)
		assert.True(t, category.Active)
	})

	t.Run("create rejects duplicate names and slugs", func(t *testing.T) {
		svc := NewCategoryService(newFakeCategoryRepo())

		_, err := svc.Create(ctx, &CategoryInput{Name: "Electronics"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, &CategoryInput{Name: "Electronics"})
		assert.ErrorIs(t, err, ErrCategoryAlreadyExists)

		// Different name, same slug after normalization
		_, err = svc.Create(ctx, &CategoryInput{Name: "electronics!"})
		assert.ErrorIs(t, err, ErrCategoryAlreadyExists)
	})

	t.Run("create rejects missing parent", func(t *testing.T) {
		svc := NewCategoryService(newFakeCategoryRepo())
		missing := uint(42)

		_, err := svc.Create(ctx, &CategoryInput{Name: "Phones", ParentCategoryID: &missing})
		assert.ErrorIs(t, err, ErrParentCategoryMissing)
	})

	t.Run("update renames with fresh slug", func(t *testing.T) {
		svc := NewCategoryService(newFakeCategoryRepo())
		category, err := svc.Create(ctx, &CategoryInput{Name: "Vehicles"})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, category.ID, &CategoryInput{Name: "Cars & Trucks"})
		require.NoError(t, err)
		assert.Equal(t, "cars-trucks", updated.Slug)
	})

	t.Run("update keeps fields that were not sent", func(t *testing.T) {
		svc := NewCategoryService(newFakeCategoryRepo())
		featured := true
		sortOrder := 3
		category, err := svc.Create(ctx, &CategoryInput{
			Name:        "Fashion",
			Description: "Clothes and accessories",
			EmojiSymbol: "👗",
			SortOrder:   &sortOrder,
			Featured:    &featured,
		})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, category.ID, &CategoryInput{Name: "Fashion & Beauty"})
		require.NoError(t, err)
		assert.Equal(t, "Clothes and accessories", updated.Description)
		assert.Equal(t, "👗", updated.EmojiSymbol)
		assert.Equal(t, 3, updated.SortOrder)
		assert.True(t, updated.Featured)

		unfeatured := false
		updated, err = svc.Update(ctx, category.ID, &CategoryInput{Featured: &unfeatured})
		require.NoError(t, err)
		assert.False(t, updated.Featured)
		assert.Equal(t, "Fashion & Beauty", updated.Name)
	})

	t.Run("deactivate blocked while listings remain", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		svc := NewCategoryService(repo)
		category, err := svc.Create(ctx, &CategoryInput{Name: "Agriculture"})
		require.NoError(t, err)

		require.NoError(t, repo.AdjustItemCount(ctx, category.ID, 1))
		assert.ErrorIs(t, svc.Deactivate(ctx, category.ID), ErrCategoryHasListings)

		require.NoError(t, repo.AdjustItemCount(ctx, category.ID, -1))
		require.NoError(t, svc.Deactivate(ctx, category.ID))

		saved, err := repo.GetByID(ctx, category.ID)
		require.NoError(t, err)
		assert.False(t, saved.Active)
	})

	t.Run("list children requires existing parent", func(t *testing.T) {
		svc := NewCategoryService(newFakeCategoryRepo())

		_, err := svc.ListChildren(ctx, 999)
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}
