package repositories

import (
	"context"
	"time"

	"linka-backend/internal/adapters/persistence/models"
	"linka-backend/internal/pkg/pagination"

	"gorm.io/gorm"
)

// listingRepository implements ListingRepository interface
type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new listing repository
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, listing *models.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *listingRepository) GetByID(ctx context.Context, id uint) (*models.Listing, error) {
	var listing models.Listing
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Seller").
		Where("id = ?", id).
		First(&listing).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) Update(ctx context.Context, listing *models.Listing) error {
	return r.db.WithContext(ctx).Save(listing).Error
}

// paginate runs a count plus page fetch over the given query
func (r *listingRepository) paginate(q *gorm.DB, params *pagination.Params) ([]*models.Listing, int64, error) {
	var listings []*models.Listing
	var total int64

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Category").Preload("Seller").
		Order(params.OrderClause()).
		Offset(params.Offset).
		Limit(params.Size).
		Find(&listings).Error
	if err != nil {
		return nil, 0, err
	}

	return listings, total, nil
}

func (r *listingRepository) ListByStatus(ctx context.Context, status string, params *pagination.Params) ([]*models.Listing, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Listing{}).Where("status = ?", status)
	return r.paginate(q, params)
}

func (r *listingRepository) ListBySeller(ctx context.Context, sellerID uint, statuses []string, params *pagination.Params) ([]*models.Listing, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Listing{}).Where("seller_id = ?", sellerID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	return r.paginate(q, params)
}

func (r *listingRepository) ListByCategory(ctx context.Context, categoryID uint, params *pagination.Params) ([]*models.Listing, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Listing{}).
		Where("category_id = ? AND status = ?", categoryID, models.ListingStatusActive)
	return r.paginate(q, params)
}

// Search matches active listings on title, description or tags
func (r *listingRepository) Search(ctx context.Context, keyword string, params *pagination.Params) ([]*models.Listing, int64, error) {
	like := "%" + keyword + "%"
	q := r.db.WithContext(ctx).Model(&models.Listing{}).
		Where("status = ?", models.ListingStatusActive).
		Where("title LIKE ? OR description LIKE ? OR tags LIKE ?", like, like, like)
	return r.paginate(q, params)
}

func (r *listingRepository) ListByPriceRange(ctx context.Context, minPrice, maxPrice float64, params *pagination.Params) ([]*models.Listing, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Listing{}).
		Where("status = ? AND price BETWEEN ? AND ?", models.ListingStatusActive, minPrice, maxPrice)
	return r.paginate(q, params)
}

// ListFeatured lists active listings whose featured window has not passed
func (r *listingRepository) ListFeatured(ctx context.Context, params *pagination.Params) ([]*models.Listing, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Listing{}).
		Where("status = ? AND featured = ? AND (featured_until IS NULL OR featured_until > ?)",
			models.ListingStatusActive, true, time.Now())
	return r.paginate(q, params)
}

func (r *listingRepository) ListPopular(ctx context.Context, params *pagination.Params) ([]*models.Listing, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Listing{}).
		Where("status = ?", models.ListingStatusActive)
	return r.paginate(q, params)
}

func (r *listingRepository) ListLatest(ctx context.Context, params *pagination.Params) ([]*models.Listing, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Listing{}).
		Where("status = ?", models.ListingStatusActive)
	return r.paginate(q, params)
}

func (r *listingRepository) ListByLocation(ctx context.Context, location string, params *pagination.Params) ([]*models.Listing, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Listing{}).
		Where("status = ? AND location = ?", models.ListingStatusActive, location)
	return r.paginate(q, params)
}

// ListTrending lists recently created active listings ranked by views
func (r *listingRepository) ListTrending(ctx context.Context, since time.Time, params *pagination.Params) ([]*models.Listing, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Listing{}).
		Where("status = ? AND created_at >= ?", models.ListingStatusActive, since)
	return r.paginate(q, params)
}

// IncrementViewCount bumps the view counter without touching updated_at
func (r *listingRepository) IncrementViewCount(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Listing{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// IncrementFavoriteCount bumps the favorite counter without touching updated_at
func (r *listingRepository) IncrementFavoriteCount(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Listing{}).
		Where("id = ?", id).
		UpdateColumn("favorite_count", gorm.Expr("favorite_count + 1")).Error
}

// IncrementContactCount bumps the contact counter without touching updated_at
func (r *listingRepository) IncrementContactCount(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Listing{}).
		Where("id = ?", id).
		UpdateColumn("contact_count", gorm.Expr("contact_count + 1")).Error
}

// ListExpired finds active listings past their expiry date
func (r *listingRepository) ListExpired(ctx context.Context, now time.Time) ([]*models.Listing, error) {
	var listings []*models.Listing
	err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", models.ListingStatusActive, now).
		Find(&listings).Error
	return listings, err
}

// ListExpiredFeatured finds listings whose featured window has passed
func (r *listingRepository) ListExpiredFeatured(ctx context.Context, now time.Time) ([]*models.Listing, error) {
	var listings []*models.Listing
	err := r.db.WithContext(ctx).
		Where("featured = ? AND featured_until IS NOT NULL AND featured_until < ?", true, now).
		Find(&listings).Error
	return listings, err
}
