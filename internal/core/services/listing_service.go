package services

import (
	"context"
	"errors"
	"log"
	"time"

	"linka-backend/internal/adapters/persistence/models"
	"linka-backend/internal/adapters/persistence/repositories"
	"linka-backend/internal/pkg/pagination"
)

// Listing errors
var (
	ErrListingNotFound     = errors.New("listing not found")
	ErrListingNotOwned     = errors.New("listing belongs to another seller")
	ErrListingNotActive    = errors.New("listing is not active")
	ErrInvalidListingInput = errors.New("invalid listing input")
	ErrInvalidPriceRange   = errors.New("invalid price range")
	ErrListingNotEditable  = errors.New("listing can no longer be edited")
)

// DefaultListingLifetime is how long an active listing stays up before
// the expiry sweep retires it
const DefaultListingLifetime = 60 * 24 * time.Hour

// ListingService handles listing management and discovery
type ListingService struct {
	listingRepo  repositories.ListingRepository
	categoryRepo repositories.CategoryRepository
}

// NewListingService creates a new listing service
func NewListingService(listingRepo repositories.ListingRepository, categoryRepo repositories.CategoryRepository) *ListingService {
	return &ListingService{
		listingRepo:  listingRepo,
		categoryRepo: categoryRepo,
	}
}

// ListingInput represents listing create/update input
type ListingInput struct {
	Title             string   `json:"title" validate:"required,max=200"`
	Description       string   `json:"description"`
	Price             float64  `json:"price" validate:"required,gt=0"`
	OriginalPrice     *float64 `json:"originalPrice"`
	ListingType       string   `json:"listingType"`
	ConditionType     string   `json:"conditionType"`
	CategoryID        uint     `json:"categoryId" validate:"required"`
	Location          string   `json:"location"`
	City              string   `json:"city"`
	District          string   `json:"district"`
	MainImage         string   `json:"mainImage"`
	QuantityAvailable int      `json:"quantityAvailable"`
	Negotiable        bool     `json:"negotiable"`
	Tags              string   `json:"tags"`
}

func validListingType(t string) bool {
	switch t {
	case models.ListingTypeSell, models.ListingTypeRent, models.ListingTypeService:
		return true
	}
	return false
}

func validConditionType(c string) bool {
	switch c {
	case models.ConditionNew, models.ConditionUsed, models.ConditionRefurbished:
		return true
	}
	return false
}

// Create creates a new draft listing for the seller
func (s *ListingService) Create(ctx context.Context, sellerID uint, input *ListingInput) (*models.ListingResponse, error) {
	// 1. Validate enums, defaulting where empty
	if input.ListingType == "" {
		input.ListingType = models.ListingTypeSell
	}
	if input.ConditionType == "" {
		input.ConditionType = models.ConditionNew
	}
	if !validListingType(input.ListingType) || !validConditionType(input.ConditionType) {
		return nil, ErrInvalidListingInput
	}
	if input.Title == "" || input.Price <= 0 {
		return nil, ErrInvalidListingInput
	}

	// 2. Category must exist and be active
	category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil || !category.Active {
		return nil, ErrCategoryNotFound
	}

	quantity := input.QuantityAvailable
	if quantity <= 0 {
		quantity = 1
	}

	listing := &models.Listing{
		Title:             input.Title,
		Description:       input.Description,
		Price:             input.Price,
		OriginalPrice:     input.OriginalPrice,
		ListingType:       input.ListingType,
		ConditionType:     input.ConditionType,
		Status:            models.ListingStatusDraft,
		CategoryID:        input.CategoryID,
		SellerID:          sellerID,
		Location:          input.Location,
		City:              input.City,
		District:          input.District,
		MainImage:         input.MainImage,
		QuantityAvailable: quantity,
		Negotiable:        input.Negotiable,
		Tags:              input.Tags,
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	log.Printf("✅ Listing created: #%d %q by seller %d", listing.ID, listing.Title, sellerID)
	return listing.ToResponse(), nil
}

// GetByID returns a listing and bumps its view counter when active
func (s *ListingService) GetByID(ctx context.Context, id uint) (*models.ListingResponse, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrListingNotFound
	}

	if listing.Status == models.ListingStatusActive {
		if err := s.listingRepo.IncrementViewCount(ctx, id); err != nil {
			log.Printf("⚠️ Failed to bump view count for listing %d: %v", id, err)
		}
		listing.ViewCount++
	}

	return listing.ToResponse(), nil
}

// getOwned fetches a listing and enforces seller ownership. Admins
// bypass the ownership check.
func (s *ListingService) getOwned(ctx context.Context, id, actorID uint, actorIsAdmin bool) (*models.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrListingNotFound
	}
	if !actorIsAdmin && listing.SellerID != actorID {
		return nil, ErrListingNotOwned
	}
	return listing, nil
}

// Update edits a draft or active listing
func (s *ListingService) Update(ctx context.Context, id, actorID uint, actorIsAdmin bool, input *ListingInput) (*models.ListingResponse, error) {
	listing, err := s.getOwned(ctx, id, actorID, actorIsAdmin)
	if err != nil {
		return nil, err
	}

	if listing.Status != models.ListingStatusDraft && listing.Status != models.ListingStatusActive {
		return nil, ErrListingNotEditable
	}

	if input.CategoryID != 0 && input.CategoryID != listing.CategoryID {
		category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
		if err != nil || !category.Active {
			return nil, ErrCategoryNotFound
		}
		// Move the listing count between categories if already published
		if listing.Status == models.ListingStatusActive {
			s.adjustItemCount(ctx, listing.CategoryID, -1)
			s.adjustItemCount(ctx, input.CategoryID, 1)
		}
		listing.CategoryID = input.CategoryID
	}

	if input.Title != "" {
		listing.Title = input.Title
	}
	if input.Description != "" {
		listing.Description = input.Description
	}
	if input.Price > 0 {
		listing.Price = input.Price
	}
	if input.OriginalPrice != nil {
		listing.OriginalPrice = input.OriginalPrice
	}
	if input.ListingType != "" {
		if !validListingType(input.ListingType) {
			return nil, ErrInvalidListingInput
		}
		listing.ListingType = input.ListingType
	}
	if input.ConditionType != "" {
		if !validConditionType(input.ConditionType) {
			return nil, ErrInvalidListingInput
		}
		listing.ConditionType = input.ConditionType
	}
	if input.Location != "" {
		listing.Location = input.Location
	}
	if input.City != "" {
		listing.City = input.City
	}
	if input.District != "" {
		listing.District = input.District
	}
	if input.MainImage != "" {
		listing.MainImage = input.MainImage
	}
	if input.QuantityAvailable > 0 {
		listing.QuantityAvailable = input.QuantityAvailable
	}
	if input.Tags != "" {
		listing.Tags = input.Tags
	}
	listing.Negotiable = input.Negotiable

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	log.Printf("✅ Listing updated: #%d", listing.ID)
	return listing.ToResponse(), nil
}

// Publish moves a draft listing to active and stamps its expiry window
func (s *ListingService) Publish(ctx context.Context, id, actorID uint, actorIsAdmin bool) (*models.ListingResponse, error) {
	listing, err := s.getOwned(ctx, id, actorID, actorIsAdmin)
	if err != nil {
		return nil, err
	}

	if listing.Status != models.ListingStatusDraft {
		return nil, ErrListingNotEditable
	}

	expiresAt := time.Now().Add(DefaultListingLifetime)
	listing.Status = models.ListingStatusActive
	listing.ExpiresAt = &expiresAt

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}
	s.adjustItemCount(ctx, listing.CategoryID, 1)

	log.Printf("✅ Listing published: #%d", listing.ID)
	return listing.ToResponse(), nil
}

// MarkSold marks an active listing as sold
func (s *ListingService) MarkSold(ctx context.Context, id, actorID uint, actorIsAdmin bool) (*models.ListingResponse, error) {
	listing, err := s.getOwned(ctx, id, actorID, actorIsAdmin)
	if err != nil {
		return nil, err
	}

	if listing.Status != models.ListingStatusActive {
		return nil, ErrListingNotActive
	}

	listing.Status = models.ListingStatusSold
	listing.QuantityAvailable = 0

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}
	s.adjustItemCount(ctx, listing.CategoryID, -1)

	log.Printf("✅ Listing marked sold: #%d", listing.ID)
	return listing.ToResponse(), nil
}

// Delete soft-deletes a listing
func (s *ListingService) Delete(ctx context.Context, id, actorID uint, actorIsAdmin bool) error {
	listing, err := s.getOwned(ctx, id, actorID, actorIsAdmin)
	if err != nil {
		return err
	}

	wasActive := listing.Status == models.ListingStatusActive
	listing.Status = models.ListingStatusDeleted

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return err
	}
	if wasActive {
		s.adjustItemCount(ctx, listing.CategoryID, -1)
	}

	log.Printf("✅ Listing deleted: #%d", listing.ID)
	return nil
}

// Suspend takes a listing off the marketplace, admin only at the route level
func (s *ListingService) Suspend(ctx context.Context, id uint) (*models.ListingResponse, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrListingNotFound
	}

	wasActive := listing.Status == models.ListingStatusActive
	listing.Status = models.ListingStatusSuspended

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}
	if wasActive {
		s.adjustItemCount(ctx, listing.CategoryID, -1)
	}

	log.Printf("✅ Listing suspended: #%d", listing.ID)
	return listing.ToResponse(), nil
}

// Favorite bumps a listing's favorite counter and returns the new total
func (s *ListingService) Favorite(ctx context.Context, id uint) (int, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return 0, ErrListingNotFound
	}
	if err := s.listingRepo.IncrementFavoriteCount(ctx, id); err != nil {
		return 0, err
	}
	return listing.FavoriteCount + 1, nil
}

// RecordContact bumps a listing's contact counter and returns the new total
func (s *ListingService) RecordContact(ctx context.Context, id uint) (int, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return 0, ErrListingNotFound
	}
	if err := s.listingRepo.IncrementContactCount(ctx, id); err != nil {
		return 0, err
	}
	return listing.ContactCount + 1, nil
}

// adjustItemCount keeps the category counter in step with active listings
func (s *ListingService) adjustItemCount(ctx context.Context, categoryID uint, delta int) {
	if err := s.categoryRepo.AdjustItemCount(ctx, categoryID, delta); err != nil {
		log.Printf("⚠️ Failed to adjust item count for category %d: %v", categoryID, err)
	}
}

// toResponses maps listings to DTOs
func toResponses(listings []*models.Listing) []*models.ListingResponse {
	responses := make([]*models.ListingResponse, len(listings))
	for i, l := range listings {
		responses[i] = l.ToResponse()
	}
	return responses
}

// ListActive lists active listings
func (s *ListingService) ListActive(ctx context.Context, params *pagination.Params) ([]*models.ListingResponse, int64, error) {
	listings, total, err := s.listingRepo.ListByStatus(ctx, models.ListingStatusActive, params)
	if err != nil {
		return nil, 0, err
	}
	return toResponses(listings), total, nil
}

// ListBySeller lists a seller's own listings across statuses
func (s *ListingService) ListBySeller(ctx context.Context, sellerID uint, params *pagination.Params) ([]*models.ListingResponse, int64, error) {
	statuses := []string{
		models.ListingStatusDraft,
		models.ListingStatusActive,
		models.ListingStatusSold,
		models.ListingStatusExpired,
		models.ListingStatusSuspended,
	}
	listings, total, err := s.listingRepo.ListBySeller(ctx, sellerID, statuses, params)
	if err != nil {
		return nil, 0, err
	}
	return toResponses(listings), total, nil
}

// ListActiveBySeller lists a seller's listings as the public sees them
func (s *ListingService) ListActiveBySeller(ctx context.Context, sellerID uint, params *pagination.Params) ([]*models.ListingResponse, int64, error) {
	listings, total, err := s.listingRepo.ListBySeller(ctx, sellerID, []string{models.ListingStatusActive}, params)
	if err != nil {
		return nil, 0, err
	}
	return toResponses(listings), total, nil
}

// ListByCategory lists active listings in a category
func (s *ListingService) ListByCategory(ctx context.Context, categoryID uint, params *pagination.Params) ([]*models.ListingResponse, int64, error) {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		return nil, 0, ErrCategoryNotFound
	}
	listings, total, err := s.listingRepo.ListByCategory(ctx, categoryID, params)
	if err != nil {
		return nil, 0, err
	}
	return toResponses(listings), total, nil
}

// Search searches active listings by keyword
func (s *ListingService) Search(ctx context.Context, keyword string, params *pagination.Params) ([]*models.ListingResponse, int64, error) {
	listings, total, err := s.listingRepo.Search(ctx, keyword, params)
	if err != nil {
		return nil, 0, err
	}
	return toResponses(listings), total, nil
}

// ListByPriceRange lists active listings within a price band
func (s *ListingService) ListByPriceRange(ctx context.Context, minPrice, maxPrice float64, params *pagination.Params) ([]*models.ListingResponse, int64, error) {
	if minPrice < 0 || maxPrice < minPrice {
		return nil, 0, ErrInvalidPriceRange
	}
	listings, total, err := s.listingRepo.ListByPriceRange(ctx, minPrice, maxPrice, params)
	if err != nil {
		return nil, 0, err
	}
	return toResponses(listings), total, nil
}

// ListByLocation lists active listings in an exact location
func (s *ListingService) ListByLocation(ctx context.Context, location string, params *pagination.Params) ([]*models.ListingResponse, int64, error) {
	listings, total, err := s.listingRepo.ListByLocation(ctx, location, params)
	if err != nil {
		return nil, 0, err
	}
	return toResponses(listings), total, nil
}

// ListFeatured lists currently featured listings
func (s *ListingService) ListFeatured(ctx context.Context, params *pagination.Params) ([]*models.ListingResponse, int64, error) {
	listings, total, err := s.listingRepo.ListFeatured(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return toResponses(listings), total, nil
}

// ListPopular lists active listings ranked by views
func (s *ListingService) ListPopular(ctx context.Context, params *pagination.Params) ([]*models.ListingResponse, int64, error) {
	params.SortBy = "view_count"
	params.SortDir = "desc"
	listings, total, err := s.listingRepo.ListPopular(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return toResponses(listings), total, nil
}

// ListLatest lists the most recently published listings
func (s *ListingService) ListLatest(ctx context.Context, params *pagination.Params) ([]*models.ListingResponse, int64, error) {
	params.SortBy = "created_at"
	params.SortDir = "desc"
	listings, total, err := s.listingRepo.ListLatest(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return toResponses(listings), total, nil
}

// ListTrending lists listings created in the last week ranked by views
func (s *ListingService) ListTrending(ctx context.Context, params *pagination.Params) ([]*models.ListingResponse, int64, error) {
	params.SortBy = "view_count"
	params.SortDir = "desc"
	since := time.Now().AddDate(0, 0, -7)
	listings, total, err := s.listingRepo.ListTrending(ctx, since, params)
	if err != nil {
		return nil, 0, err
	}
	return toResponses(listings), total, nil
}
