package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linka-backend/internal/adapters/persistence/models"
)

func TestExpirySweep(t *testing.T) {
	ctx := context.Background()

	categories := newFakeCategoryRepo()
	listings := newFakeListingRepo()
	category := &models.Category{Name: "Electronics", Slug: "electronics", Active: true, ItemCount: 2}
	require.NoError(t, categories.Create(ctx, category))

	pastExpiry := time.Now().Add(-time.Hour)
	futureExpiry := time.Now().Add(time.Hour)

	stale := &models.Listing{
		Title: "Old phone", CategoryID: category.ID, SellerID: 1,
		Status: models.ListingStatusActive, ExpiresAt: &pastExpiry,
	}
	fresh := &models.Listing{
		Title: "New phone", CategoryID: category.ID, SellerID: 1,
		Status: models.ListingStatusActive, ExpiresAt: &futureExpiry,
	}
	lapsed := &models.Listing{
		Title: "Promoted blender", CategoryID: category.ID, SellerID: 2,
		Status: models.ListingStatusActive, ExpiresAt: &futureExpiry,
		Featured: true, FeaturedUntil: &pastExpiry,
	}
	require.NoError(t, listings.Create(ctx, stale))
	require.NoError(t, listings.Create(ctx, fresh))
	require.NoError(t, listings.Create(ctx, lapsed))

	svc := NewListingExpiryService(listings, categories)
	svc.Sweep()

	staleSaved, err := listings.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	freshSaved, err := listings.GetByID(ctx, fresh.ID)
	require.NoError(t, err)
	lapsedSaved, err := listings.GetByID(ctx, lapsed.ID)
	require.NoError(t, err)

	assert.Equal(t, models.ListingStatusExpired, staleSaved.Status)
	assert.Equal(t, models.ListingStatusActive, freshSaved.Status)
	assert.Equal(t, 1, category.ItemCount)

	assert.False(t, lapsedSaved.Featured)
	assert.Nil(t, lapsedSaved.FeaturedUntil)
	assert.Equal(t, models.ListingStatusActive, lapsedSaved.Status)
}
