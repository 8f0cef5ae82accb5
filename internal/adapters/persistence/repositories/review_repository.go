package repositories

import (
	"context"

	"linka-backend/internal/adapters/persistence/models"
	"linka-backend/internal/pkg/pagination"

	"gorm.io/gorm"
)

// reviewRepository implements ReviewRepository interface
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Preload("Reviewer").
		Where("id = ?", id).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) paginate(q *gorm.DB, params *pagination.Params) ([]*models.Review, int64, error) {
	var reviews []*models.Review
	var total int64

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Reviewer").
		Order(params.OrderClause()).
		Offset(params.Offset).
		Limit(params.Size).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *reviewRepository) ListByListing(ctx context.Context, listingID uint, params *pagination.Params) ([]*models.Review, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("listing_id = ? AND public = ?", listingID, true)
	return r.paginate(q, params)
}

func (r *reviewRepository) ListByReviewee(ctx context.Context, revieweeID uint, params *pagination.Params) ([]*models.Review, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("reviewee_id = ? AND public = ?", revieweeID, true)
	return r.paginate(q, params)
}

// ExistsByReviewerAndListing enforces one review per reviewer per listing
func (r *reviewRepository) ExistsByReviewerAndListing(ctx context.Context, reviewerID, listingID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("reviewer_id = ? AND listing_id = ?", reviewerID, listingID).
		Count(&count).Error
	return count > 0, err
}

// AggregateForUser computes the average rating and review count for a user
func (r *reviewRepository) AggregateForUser(ctx context.Context, revieweeID uint) (float64, int64, error) {
	var result struct {
		Avg   float64
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("reviewee_id = ? AND public = ?", revieweeID, true).
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}
	return result.Avg, result.Count, nil
}
