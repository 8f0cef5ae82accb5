package repositories

import (
	"context"
	"time"

	"linka-backend/internal/adapters/persistence/models"
	"linka-backend/internal/pkg/pagination"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByPhoneNumber(ctx context.Context, phone string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, search string, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhoneNumber(ctx context.Context, phone string) (bool, error)
}

// CategoryRepository defines category repository interface
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	ListActive(ctx context.Context) ([]*models.Category, error)
	ListFeatured(ctx context.Context) ([]*models.Category, error)
	ListPopular(ctx context.Context, limit int) ([]*models.Category, error)
	ListParents(ctx context.Context) ([]*models.Category, error)
	ListChildren(ctx context.Context, parentID uint) ([]*models.Category, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	AdjustItemCount(ctx context.Context, id uint, delta int) error
}

// ListingRepository defines listing repository interface
type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	GetByID(ctx context.Context, id uint) (*models.Listing, error)
	Update(ctx context.Context, listing *models.Listing) error
	ListByStatus(ctx context.Context, status string, params *pagination.Params) ([]*models.Listing, int64, error)
	ListBySeller(ctx context.Context, sellerID uint, statuses []string, params *pagination.Params) ([]*models.Listing, int64, error)
	ListByCategory(ctx context.Context, categoryID uint, params *pagination.Params) ([]*models.Listing, int64, error)
	Search(ctx context.Context, keyword string, params *pagination.Params) ([]*models.Listing, int64, error)
	ListByPriceRange(ctx context.Context, minPrice, maxPrice float64, params *pagination.Params) ([]*models.Listing, int64, error)
	ListByLocation(ctx context.Context, location string, params *pagination.Params) ([]*models.Listing, int64, error)
	ListFeatured(ctx context.Context, params *pagination.Params) ([]*models.Listing, int64, error)
	ListPopular(ctx context.Context, params *pagination.Params) ([]*models.Listing, int64, error)
	ListLatest(ctx context.Context, params *pagination.Params) ([]*models.Listing, int64, error)
	ListTrending(ctx context.Context, since time.Time, params *pagination.Params) ([]*models.Listing, int64, error)
	IncrementViewCount(ctx context.Context, id uint) error
	IncrementFavoriteCount(ctx context.Context, id uint) error
	IncrementContactCount(ctx context.Context, id uint) error
	ListExpired(ctx context.Context, now time.Time) ([]*models.Listing, error)
	ListExpiredFeatured(ctx context.Context, now time.Time) ([]*models.Listing, error)
}

// TransactionRepository defines transaction repository interface
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, id uint) (*models.Transaction, error)
	GetByReference(ctx context.Context, reference string) (*models.Transaction, error)
	Update(ctx context.Context, tx *models.Transaction) error
	ListByBuyer(ctx context.Context, buyerID uint, params *pagination.Params) ([]*models.Transaction, int64, error)
	ListBySeller(ctx context.Context, sellerID uint, params *pagination.Params) ([]*models.Transaction, int64, error)
	ExistsCompletedPurchase(ctx context.Context, buyerID, listingID uint) (bool, error)
}

// ReviewRepository defines review repository interface
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	ListByListing(ctx context.Context, listingID uint, params *pagination.Params) ([]*models.Review, int64, error)
	ListByReviewee(ctx context.Context, revieweeID uint, params *pagination.Params) ([]*models.Review, int64, error)
	ExistsByReviewerAndListing(ctx context.Context, reviewerID, listingID uint) (bool, error)
	AggregateForUser(ctx context.Context, revieweeID uint) (avg float64, count int64, err error)
}
