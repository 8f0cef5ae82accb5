package repositories

import (
	"context"

	"linka-backend/internal/adapters/persistence/models"
	"linka-backend/internal/pkg/pagination"

	"gorm.io/gorm"
)

// transactionRepository implements TransactionRepository interface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *transactionRepository) GetByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Listing").
		Preload("Buyer").
		Preload("Seller").
		Where("id = ?", id).
		First(&tx).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) GetByReference(ctx context.Context, reference string) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Listing").
		Preload("Buyer").
		Preload("Seller").
		Where("transaction_reference = ?", reference).
		First(&tx).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) Update(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

func (r *transactionRepository) paginate(q *gorm.DB, params *pagination.Params) ([]*models.Transaction, int64, error) {
	var txs []*models.Transaction
	var total int64

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Listing").
		Order(params.OrderClause()).
		Offset(params.Offset).
		Limit(params.Size).
		Find(&txs).Error
	if err != nil {
		return nil, 0, err
	}

	return txs, total, nil
}

func (r *transactionRepository) ListByBuyer(ctx context.Context, buyerID uint, params *pagination.Params) ([]*models.Transaction, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Transaction{}).Where("buyer_id = ?", buyerID)
	return r.paginate(q, params)
}

func (r *transactionRepository) ListBySeller(ctx context.Context, sellerID uint, params *pagination.Params) ([]*models.Transaction, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Transaction{}).Where("seller_id = ?", sellerID)
	return r.paginate(q, params)
}

// ExistsCompletedPurchase reports whether the buyer completed a purchase
// of the listing, used to mark reviews as verified
func (r *transactionRepository) ExistsCompletedPurchase(ctx context.Context, buyerID, listingID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("buyer_id = ? AND listing_id = ? AND transaction_status = ?", buyerID, listingID, models.TxStatusCompleted).
		Count(&count).Error
	return count > 0, err
}
