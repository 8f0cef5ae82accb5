package services

import (
	"context"
	"errors"
	"log"
	"math"

	"linka-backend/internal/adapters/persistence/models"
	"linka-backend/internal/adapters/persistence/repositories"
	"linka-backend/internal/pkg/pagination"

	"github.com/google/uuid"
)

// Transaction errors
var (
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrTransactionForbidden = errors.New("transaction belongs to another user")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrInsufficientQuantity = errors.New("not enough quantity available")
	ErrOwnListingPurchase   = errors.New("cannot purchase your own listing")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidTransition    = errors.New("invalid status transition")
)

// PlatformFeeRate is the marketplace commission applied to each purchase
const PlatformFeeRate = 0.05

// TransactionService handles the purchase lifecycle
type TransactionService struct {
	txRepo      repositories.TransactionRepository
	listingRepo repositories.ListingRepository
	userRepo    repositories.UserRepository
	notifier    Notifier
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	txRepo repositories.TransactionRepository,
	listingRepo repositories.ListingRepository,
	userRepo repositories.UserRepository,
	notifier Notifier,
) *TransactionService {
	return &TransactionService{
		txRepo:      txRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// CreateTransactionInput represents purchase initiation input
type CreateTransactionInput struct {
	ListingID       uint   `json:"listingId" validate:"required"`
	Quantity        int    `json:"quantity"`
	PaymentMethod   string `json:"paymentMethod" validate:"required"`
	DeliveryAddress string `json:"deliveryAddress"`
	DeliveryCity    string `json:"deliveryCity"`
	DeliveryPhone   string `json:"deliveryPhone"`
}

// allowed forward transitions of the transaction lifecycle
var txTransitions = map[string][]string{
	models.TxStatusInitiated:      {models.TxStatusPaymentPending, models.TxStatusCancelled},
	models.TxStatusPaymentPending: {models.TxStatusPaid, models.TxStatusCancelled},
	models.TxStatusPaid:           {models.TxStatusDelivered, models.TxStatusCancelled},
	models.TxStatusDelivered:      {models.TxStatusCompleted},
}

func validPaymentMethod(m string) bool {
	switch m {
	case models.PaymentMethodMobileMoney, models.PaymentMethodCard, models.PaymentMethodCashOnDelivery:
		return true
	}
	return false
}

// roundMoney rounds to two decimal places
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// Create initiates a purchase against an active listing
func (s *TransactionService) Create(ctx context.Context, buyerID uint, input *CreateTransactionInput) (*models.Transaction, error) {
	// 1. Validate inputs
	if input.Quantity <= 0 {
		input.Quantity = 1
	}
	if !validPaymentMethod(input.PaymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}

	// 2. Listing must be active with enough quantity
	listing, err := s.listingRepo.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, ErrListingNotFound
	}
	if listing.Status != models.ListingStatusActive {
		return nil, ErrListingNotActive
	}
	if listing.SellerID == buyerID {
		return nil, ErrOwnListingPurchase
	}
	if listing.QuantityAvailable < input.Quantity {
		return nil, ErrInsufficientQuantity
	}

	// 3. Compute amounts
	amount := roundMoney(listing.Price * float64(input.Quantity))
	fee := roundMoney(amount * PlatformFeeRate)

	tx := &models.Transaction{
		TransactionReference: uuid.New().String(),
		ListingID:            listing.ID,
		BuyerID:              buyerID,
		SellerID:             listing.SellerID,
		Amount:               amount,
		PlatformFee:          fee,
		TotalAmount:          roundMoney(amount + fee),
		PaymentMethod:        input.PaymentMethod,
		PaymentStatus:        models.PaymentStatusPending,
		TransactionStatus:    models.TxStatusInitiated,
		Quantity:             input.Quantity,
		DeliveryAddress:      input.DeliveryAddress,
		DeliveryCity:         input.DeliveryCity,
		DeliveryPhone:        input.DeliveryPhone,
	}

	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	// 4. Reserve quantity, selling out retires the listing
	listing.QuantityAvailable -= input.Quantity
	if listing.QuantityAvailable == 0 {
		listing.Status = models.ListingStatusSold
	}
	if err := s.listingRepo.Update(ctx, listing); err != nil {
		log.Printf("⚠️ Failed to decrement quantity for listing %d: %v", listing.ID, err)
	}

	log.Printf("✅ Transaction created: %s (listing #%d, buyer %d)", tx.TransactionReference, listing.ID, buyerID)
	return tx, nil
}

// GetByID returns a transaction visible to its buyer, seller, or an admin
func (s *TransactionService) GetByID(ctx context.Context, id, actorID uint, actorIsAdmin bool) (*models.Transaction, error) {
	tx, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrTransactionNotFound
	}
	if !actorIsAdmin && tx.BuyerID != actorID && tx.SellerID != actorID {
		return nil, ErrTransactionForbidden
	}
	return tx, nil
}

// UpdateStatus advances a transaction along its lifecycle
func (s *TransactionService) UpdateStatus(ctx context.Context, id, actorID uint, actorIsAdmin bool, newStatus string) (*models.Transaction, error) {
	tx, err := s.GetByID(ctx, id, actorID, actorIsAdmin)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range txTransitions[tx.TransactionStatus] {
		if next == newStatus {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, ErrInvalidTransition
	}

	tx.TransactionStatus = newStatus
	switch newStatus {
	case models.TxStatusPaid:
		tx.PaymentStatus = models.PaymentStatusCompleted
	case models.TxStatusCancelled:
		if tx.PaymentStatus == models.PaymentStatusCompleted {
			tx.PaymentStatus = models.PaymentStatusRefunded
		} else {
			tx.PaymentStatus = models.PaymentStatusFailed
		}
	}

	if err := s.txRepo.Update(ctx, tx); err != nil {
		return nil, err
	}

	switch newStatus {
	case models.TxStatusCompleted:
		s.recordCompletion(ctx, tx)
	case models.TxStatusCancelled:
		s.restoreQuantity(ctx, tx)
	}

	log.Printf("✅ Transaction %s -> %s", tx.TransactionReference, newStatus)
	return tx, nil
}

// recordCompletion bumps the trade counters and notifies the buyer
func (s *TransactionService) recordCompletion(ctx context.Context, tx *models.Transaction) {
	if seller, err := s.userRepo.GetByID(ctx, tx.SellerID); err == nil {
		seller.TotalSales++
		if err := s.userRepo.Update(ctx, seller); err != nil {
			log.Printf("⚠️ Failed to bump sales counter for user %d: %v", seller.ID, err)
		}
	}

	buyer, err := s.userRepo.GetByID(ctx, tx.BuyerID)
	if err != nil {
		return
	}
	buyer.TotalPurchases++
	if err := s.userRepo.Update(ctx, buyer); err != nil {
		log.Printf("⚠️ Failed to bump purchase counter for user %d: %v", buyer.ID, err)
	}

	go s.notifier.SendTransactionConfirmation(buyer.Email, buyer.FullName(), tx.TransactionReference, tx.TotalAmount)
}

// restoreQuantity returns reserved stock after a cancellation
func (s *TransactionService) restoreQuantity(ctx context.Context, tx *models.Transaction) {
	listing, err := s.listingRepo.GetByID(ctx, tx.ListingID)
	if err != nil {
		return
	}

	listing.QuantityAvailable += tx.Quantity
	if listing.Status == models.ListingStatusSold {
		listing.Status = models.ListingStatusActive
	}
	if err := s.listingRepo.Update(ctx, listing); err != nil {
		log.Printf("⚠️ Failed to restore quantity for listing %d: %v", listing.ID, err)
	}
}

// ListPurchases lists a buyer's transactions
func (s *TransactionService) ListPurchases(ctx context.Context, buyerID uint, params *pagination.Params) ([]*models.Transaction, int64, error) {
	return s.txRepo.ListByBuyer(ctx, buyerID, params)
}

// ListSales lists a seller's transactions
func (s *TransactionService) ListSales(ctx context.Context, sellerID uint, params *pagination.Params) ([]*models.Transaction, int64, error) {
	return s.txRepo.ListBySeller(ctx, sellerID, params)
}
