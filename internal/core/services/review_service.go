package services

import (
	"context"
	"errors"
	"log"

	"linka-backend/internal/adapters/persistence/models"
	"linka-backend/internal/adapters/persistence/repositories"
	"linka-backend/internal/pkg/pagination"
)

// Review errors
var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrDuplicateReview = errors.New("listing already reviewed")
	ErrSelfReview      = errors.New("cannot review your own listing")
)

// ReviewService handles seller reviews and rating aggregation
type ReviewService struct {
	reviewRepo  repositories.ReviewRepository
	listingRepo repositories.ListingRepository
	txRepo      repositories.TransactionRepository
	userRepo    repositories.UserRepository
}

// NewReviewService creates a new review service
func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	listingRepo repositories.ListingRepository,
	txRepo repositories.TransactionRepository,
	userRepo repositories.UserRepository,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		listingRepo: listingRepo,
		txRepo:      txRepo,
		userRepo:    userRepo,
	}
}

// CreateReviewInput represents review submission input
type CreateReviewInput struct {
	ListingID uint   `json:"listingId" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// Create submits a review of a listing's seller
func (s *ReviewService) Create(ctx context.Context, reviewerID uint, input *CreateReviewInput) (*models.Review, error) {
	// 1. Rating bounds
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	// 2. Listing must exist and not belong to the reviewer
	listing, err := s.listingRepo.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, ErrListingNotFound
	}
	if listing.SellerID == reviewerID {
		return nil, ErrSelfReview
	}

	// 3. One review per reviewer per listing
	exists, err := s.reviewRepo.ExistsByReviewerAndListing(ctx, reviewerID, input.ListingID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateReview
	}

	// 4. Completed purchases mark the review as verified
	verified, err := s.txRepo.ExistsCompletedPurchase(ctx, reviewerID, input.ListingID)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		ListingID:        input.ListingID,
		ReviewerID:       reviewerID,
		RevieweeID:       listing.SellerID,
		Rating:           input.Rating,
		Comment:          input.Comment,
		VerifiedPurchase: verified,
		Public:           true,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	// 5. Refresh the seller's rating aggregate
	s.refreshAggregate(ctx, listing.SellerID)

	log.Printf("✅ Review created: listing #%d rated %d by user %d", input.ListingID, input.Rating, reviewerID)
	return review, nil
}

// refreshAggregate recomputes a seller's average rating from the reviews table
func (s *ReviewService) refreshAggregate(ctx context.Context, revieweeID uint) {
	avg, count, err := s.reviewRepo.AggregateForUser(ctx, revieweeID)
	if err != nil {
		log.Printf("⚠️ Failed to aggregate reviews for user %d: %v", revieweeID, err)
		return
	}

	user, err := s.userRepo.GetByID(ctx, revieweeID)
	if err != nil {
		return
	}

	user.RatingAverage = avg
	user.RatingCount = int(count)
	if err := s.userRepo.Update(ctx, user); err != nil {
		log.Printf("⚠️ Failed to update rating aggregate for user %d: %v", revieweeID, err)
	}
}

// GetByID gets a review by ID
func (s *ReviewService) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

// ListByListing lists public reviews of a listing
func (s *ReviewService) ListByListing(ctx context.Context, listingID uint, params *pagination.Params) ([]*models.Review, int64, error) {
	if _, err := s.listingRepo.GetByID(ctx, listingID); err != nil {
		return nil, 0, ErrListingNotFound
	}
	return s.reviewRepo.ListByListing(ctx, listingID, params)
}

// ListBySeller lists public reviews received by a seller
func (s *ReviewService) ListBySeller(ctx context.Context, sellerID uint, params *pagination.Params) ([]*models.Review, int64, error) {
	if _, err := s.userRepo.GetByID(ctx, sellerID); err != nil {
		return nil, 0, ErrUserNotFound
	}
	return s.reviewRepo.ListByReviewee(ctx, sellerID, params)
}
