package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linka-backend/internal/adapters/persistence/models"
)

type txFixture struct {
	svc      *TransactionService
	txRepo   *fakeTransactionRepo
	listings *fakeListingRepo
	users    *fakeUserRepo
	notifier *fakeNotifier
	buyer    *models.User
	seller   *models.User
	listing  *models.Listing
}

func newTxFixture(t *testing.T) *txFixture {
	t.Helper()
	ctx := context.Background()

	txRepo := newFakeTransactionRepo()
	listings := newFakeListingRepo()
	users := newFakeUserRepo()
	notifier := &fakeNotifier{}

	buyer := &models.User{
		Email: "buyer@example.com", PhoneNumber: "+256700000010",
		FirstName: "Brian", LastName: "Okello",
		UserType: models.UserTypeBuyer, Status: models.UserStatusActive,
	}
	seller := &models.User{
		Email: "seller@example.com", PhoneNumber: "+256700000011",
		FirstName: "Sarah", LastName: "Achen",
		UserType: models.UserTypeSeller, Status: models.UserStatusActive,
	}
	require.NoError(t, users.Create(ctx, buyer))
	require.NoError(t, users.Create(ctx, seller))

	listing := &models.Listing{
		Title:             "Samsung Galaxy A14",
		Description:       "Slightly used, good condition",
		CategoryID:        1,
		SellerID:          seller.ID,
		Price:             450000,
		QuantityAvailable: 3,
		Status:            models.ListingStatusActive,
	}
	require.NoError(t, listings.Create(ctx, listing))

	return &txFixture{
		svc:      NewTransactionService(txRepo, listings, users, notifier),
		txRepo:   txRepo,
		listings: listings,
		users:    users,
		notifier: notifier,
		buyer:    buyer,
		seller:   seller,
		listing:  listing,
	}
}

func (f *txFixture) savedListing(t *testing.T) *models.Listing {
	t.Helper()
	l, err := f.listings.GetByID(context.Background(), f.listing.ID)
	require.NoError(t, err)
	return l
}

func (f *txFixture) purchase(t *testing.T, quantity int) *models.Transaction {
	t.Helper()
	tx, err := f.svc.Create(context.Background(), f.buyer.ID, &CreateTransactionInput{
		ListingID:     f.listing.ID,
		Quantity:      quantity,
		PaymentMethod: models.PaymentMethodMobileMoney,
	})
	require.NoError(t, err)
	return tx
}

func TestCreateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("computes amounts with platform fee", func(t *testing.T) {
		f := newTxFixture(t)

		tx := f.purchase(t, 2)
		assert.Equal(t, 900000.0, tx.Amount)
		assert.Equal(t, 45000.0, tx.PlatformFee)
		assert.Equal(t, 945000.0, tx.TotalAmount)
		assert.Equal(t, models.TxStatusInitiated, tx.TransactionStatus)
		assert.Equal(t, models.PaymentStatusPending, tx.PaymentStatus)
		assert.NotEmpty(t, tx.TransactionReference)
	})

	t.Run("reserves quantity and retires sold-out listing", func(t *testing.T) {
		f := newTxFixture(t)

		f.purchase(t, 2)
		saved := f.savedListing(t)
		assert.Equal(t, 1, saved.QuantityAvailable)
		assert.Equal(t, models.ListingStatusActive, saved.Status)

		f.purchase(t, 1)
		saved = f.savedListing(t)
		assert.Equal(t, 0, saved.QuantityAvailable)
		assert.Equal(t, models.ListingStatusSold, saved.Status)
	})

	t.Run("zero quantity defaults to one", func(t *testing.T) {
		f := newTxFixture(t)

		tx := f.purchase(t, 0)
		assert.Equal(t, 1, tx.Quantity)
		assert.Equal(t, 450000.0, tx.Amount)
	})

	t.Run("rejects buying own listing", func(t *testing.T) {
		f := newTxFixture(t)

		_, err := f.svc.Create(ctx, f.seller.ID, &CreateTransactionInput{
			ListingID:     f.listing.ID,
			Quantity:      1,
			PaymentMethod: models.PaymentMethodMobileMoney,
		})
		assert.ErrorIs(t, err, ErrOwnListingPurchase)
	})

	t.Run("rejects quantity beyond stock", func(t *testing.T) {
		f := newTxFixture(t)

		_, err := f.svc.Create(ctx, f.buyer.ID, &CreateTransactionInput{
			ListingID:     f.listing.ID,
			Quantity:      4,
			PaymentMethod: models.PaymentMethodMobileMoney,
		})
		assert.ErrorIs(t, err, ErrInsufficientQuantity)
	})

	t.Run("rejects unknown payment method", func(t *testing.T) {
		f := newTxFixture(t)

		_, err := f.svc.Create(ctx, f.buyer.ID, &CreateTransactionInput{
			ListingID:     f.listing.ID,
			Quantity:      1,
			PaymentMethod: "BARTER",
		})
		assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
	})

	t.Run("rejects inactive listing", func(t *testing.T) {
		f := newTxFixture(t)
		f.listing.Status = models.ListingStatusDraft
		require.NoError(t, f.listings.Update(ctx, f.listing))

		_, err := f.svc.Create(ctx, f.buyer.ID, &CreateTransactionInput{
			ListingID:     f.listing.ID,
			Quantity:      1,
			PaymentMethod: models.PaymentMethodMobileMoney,
		})
		assert.ErrorIs(t, err, ErrListingNotActive)
	})
}

func TestTransactionVisibility(t *testing.T) {
	ctx := context.Background()
	f := newTxFixture(t)
	tx := f.purchase(t, 1)

	t.Run("buyer and seller can read", func(t *testing.T) {
		_, err := f.svc.GetByID(ctx, tx.ID, f.buyer.ID, false)
		assert.NoError(t, err)
		_, err = f.svc.GetByID(ctx, tx.ID, f.seller.ID, false)
		assert.NoError(t, err)
	})

	t.Run("admin can read", func(t *testing.T) {
		_, err := f.svc.GetByID(ctx, tx.ID, 999, true)
		assert.NoError(t, err)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		_, err := f.svc.GetByID(ctx, tx.ID, 999, false)
		assert.ErrorIs(t, err, ErrTransactionForbidden)
	})
}

func TestUpdateTransactionStatus(t *testing.T) {
	ctx := context.Background()

	advance := func(t *testing.T, f *txFixture, tx *models.Transaction, statuses ...string) *models.Transaction {
		t.Helper()
		var err error
		for _, status := range statuses {
			tx, err = f.svc.UpdateStatus(ctx, tx.ID, f.buyer.ID, false, status)
			require.NoError(t, err)
		}
		return tx
	}

	t.Run("walks the full lifecycle to completion", func(t *testing.T) {
		f := newTxFixture(t)
		tx := f.purchase(t, 1)

		tx = advance(t, f, tx,
			models.TxStatusPaymentPending,
			models.TxStatusPaid,
			models.TxStatusDelivered,
			models.TxStatusCompleted,
		)
		assert.Equal(t, models.TxStatusCompleted, tx.TransactionStatus)
		assert.Equal(t, models.PaymentStatusCompleted, tx.PaymentStatus)

		seller, _ := f.users.GetByID(ctx, f.seller.ID)
		buyer, _ := f.users.GetByID(ctx, f.buyer.ID)
		assert.Equal(t, 1, seller.TotalSales)
		assert.Equal(t, 1, buyer.TotalPurchases)
	})

	t.Run("rejects skipping states", func(t *testing.T) {
		f := newTxFixture(t)
		tx := f.purchase(t, 1)

		_, err := f.svc.UpdateStatus(ctx, tx.ID, f.buyer.ID, false, models.TxStatusCompleted)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("rejects leaving a terminal state", func(t *testing.T) {
		f := newTxFixture(t)
		tx := f.purchase(t, 1)
		advance(t, f, tx, models.TxStatusCancelled)

		_, err := f.svc.UpdateStatus(ctx, tx.ID, f.buyer.ID, false, models.TxStatusPaymentPending)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("cancellation before payment restores stock and fails payment", func(t *testing.T) {
		f := newTxFixture(t)
		tx := f.purchase(t, 3)
		assert.Equal(t, models.ListingStatusSold, f.savedListing(t).Status)

		tx = advance(t, f, tx, models.TxStatusCancelled)
		assert.Equal(t, models.PaymentStatusFailed, tx.PaymentStatus)
		saved := f.savedListing(t)
		assert.Equal(t, 3, saved.QuantityAvailable)
		assert.Equal(t, models.ListingStatusActive, saved.Status)
	})

	t.Run("cancellation after payment refunds", func(t *testing.T) {
		f := newTxFixture(t)
		tx := f.purchase(t, 1)

		tx = advance(t, f, tx, models.TxStatusPaymentPending, models.TxStatusPaid, models.TxStatusCancelled)
		assert.Equal(t, models.PaymentStatusRefunded, tx.PaymentStatus)
	})
}
