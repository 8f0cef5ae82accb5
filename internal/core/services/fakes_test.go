package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"linka-backend/internal/adapters/persistence/models"
	"linka-backend/internal/pkg/pagination"
)

var errNotFound = errors.New("record not found")

// fakeUserRepo is an in-memory UserRepository used across service tests
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[uint]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, errNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, errNotFound
}

func (r *fakeUserRepo) GetByPhoneNumber(_ context.Context, phone string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.PhoneNumber == phone {
			clone := *u
			return &clone, nil
		}
	}
	return nil, errNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return errNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, search string, offset, limit int) ([]*models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.User
	for _, u := range r.users {
		if search == "" || strings.Contains(u.Email, search) ||
			strings.Contains(u.FirstName, search) || strings.Contains(u.LastName, search) {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepo) ExistsByPhoneNumber(ctx context.Context, phone string) (bool, error) {
	_, err := r.GetByPhoneNumber(ctx, phone)
	return err == nil, nil
}

// fakeNotifier records outbound notifications
type fakeNotifier struct {
	mu            sync.Mutex
	emails        []string
	smses         []string
	resets        []string
	confirmations []string
}

func (n *fakeNotifier) SendVerificationEmail(email, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.emails = append(n.emails, email)
}

func (n *fakeNotifier) SendVerificationSMS(phone string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.smses = append(n.smses, phone)
}

func (n *fakeNotifier) SendPasswordReset(email, _, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.resets = append(n.resets, email)
}

func (n *fakeNotifier) SendTransactionConfirmation(email, _, _ string, _ float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmations = append(n.confirmations, email)
}

// fakeCategoryRepo is an in-memory CategoryRepository
type fakeCategoryRepo struct {
	nextID     uint
	categories map[uint]*models.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{nextID: 1, categories: map[uint]*models.Category{}}
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *models.Category) error {
	c.ID = r.nextID
	r.nextID++
	r.categories[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id uint) (*models.Category, error) {
	if c, ok := r.categories[id]; ok {
		return c, nil
	}
	return nil, errNotFound
}

func (r *fakeCategoryRepo) GetBySlug(_ context.Context, slug string) (*models.Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, errNotFound
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *models.Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return errNotFound
	}
	r.categories[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) ListActive(_ context.Context) ([]*models.Category, error) {
	var out []*models.Category
	for _, c := range r.categories {
		if c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) ListFeatured(_ context.Context) ([]*models.Category, error) {
	var out []*models.Category
	for _, c := range r.categories {
		if c.Active && c.Featured {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) ListPopular(ctx context.Context, _ int) ([]*models.Category, error) {
	return r.ListActive(ctx)
}

func (r *fakeCategoryRepo) ListParents(_ context.Context) ([]*models.Category, error) {
	var out []*models.Category
	for _, c := range r.categories {
		if c.Active && c.ParentCategoryID == nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) ListChildren(_ context.Context, parentID uint) ([]*models.Category, error) {
	var out []*models.Category
	for _, c := range r.categories {
		if c.ParentCategoryID != nil && *c.ParentCategoryID == parentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) ExistsBySlug(_ context.Context, slug string) (bool, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, c := range r.categories {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) AdjustItemCount(_ context.Context, id uint, delta int) error {
	if c, ok := r.categories[id]; ok {
		c.ItemCount += delta
		return nil
	}
	return errNotFound
}

// fakeListingRepo is an in-memory ListingRepository
type fakeListingRepo struct {
	nextID   uint
	listings map[uint]*models.Listing
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{nextID: 1, listings: map[uint]*models.Listing{}}
}

func (r *fakeListingRepo) Create(_ context.Context, l *models.Listing) error {
	l.ID = r.nextID
	r.nextID++
	l.CreatedAt = time.Now()
	clone := *l
	r.listings[l.ID] = &clone
	return nil
}

func (r *fakeListingRepo) GetByID(_ context.Context, id uint) (*models.Listing, error) {
	if l, ok := r.listings[id]; ok {
		clone := *l
		return &clone, nil
	}
	return nil, errNotFound
}

func (r *fakeListingRepo) Update(_ context.Context, l *models.Listing) error {
	if _, ok := r.listings[l.ID]; !ok {
		return errNotFound
	}
	clone := *l
	r.listings[l.ID] = &clone
	return nil
}

func (r *fakeListingRepo) byFilter(keep func(*models.Listing) bool) ([]*models.Listing, int64, error) {
	var out []*models.Listing
	for _, l := range r.listings {
		if keep(l) {
			clone := *l
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeListingRepo) ListByStatus(_ context.Context, status string, _ *pagination.Params) ([]*models.Listing, int64, error) {
	return r.byFilter(func(l *models.Listing) bool { return l.Status == status })
}

func (r *fakeListingRepo) ListBySeller(_ context.Context, sellerID uint, statuses []string, _ *pagination.Params) ([]*models.Listing, int64, error) {
	return r.byFilter(func(l *models.Listing) bool {
		if l.SellerID != sellerID {
			return false
		}
		for _, s := range statuses {
			if l.Status == s {
				return true
			}
		}
		return len(statuses) == 0
	})
}

func (r *fakeListingRepo) ListByCategory(_ context.Context, categoryID uint, _ *pagination.Params) ([]*models.Listing, int64, error) {
	return r.byFilter(func(l *models.Listing) bool {
		return l.CategoryID == categoryID && l.Status == models.ListingStatusActive
	})
}

func (r *fakeListingRepo) Search(_ context.Context, keyword string, _ *pagination.Params) ([]*models.Listing, int64, error) {
	return r.byFilter(func(l *models.Listing) bool {
		return l.Status == models.ListingStatusActive &&
			(strings.Contains(l.Title, keyword) || strings.Contains(l.Description, keyword))
	})
}

func (r *fakeListingRepo) ListByPriceRange(_ context.Context, minPrice, maxPrice float64, _ *pagination.Params) ([]*models.Listing, int64, error) {
	return r.byFilter(func(l *models.Listing) bool {
		return l.Status == models.ListingStatusActive && l.Price >= minPrice && l.Price <= maxPrice
	})
}

func (r *fakeListingRepo) ListFeatured(_ context.Context, _ *pagination.Params) ([]*models.Listing, int64, error) {
	return r.byFilter(func(l *models.Listing) bool {
		return l.Status == models.ListingStatusActive && l.Featured
	})
}

func (r *fakeListingRepo) ListPopular(_ context.Context, _ *pagination.Params) ([]*models.Listing, int64, error) {
	return r.byFilter(func(l *models.Listing) bool { return l.Status == models.ListingStatusActive })
}

func (r *fakeListingRepo) ListLatest(_ context.Context, _ *pagination.Params) ([]*models.Listing, int64, error) {
	return r.byFilter(func(l *models.Listing) bool { return l.Status == models.ListingStatusActive })
}

func (r *fakeListingRepo) ListTrending(_ context.Context, since time.Time, _ *pagination.Params) ([]*models.Listing, int64, error) {
	return r.byFilter(func(l *models.Listing) bool {
		return l.Status == models.ListingStatusActive && l.CreatedAt.After(since)
	})
}

func (r *fakeListingRepo) ListByLocation(_ context.Context, location string, _ *pagination.Params) ([]*models.Listing, int64, error) {
	return r.byFilter(func(l *models.Listing) bool {
		return l.Status == models.ListingStatusActive && l.Location == location
	})
}

func (r *fakeListingRepo) IncrementViewCount(_ context.Context, id uint) error {
	if l, ok := r.listings[id]; ok {
		l.ViewCount++
		return nil
	}
	return errNotFound
}

func (r *fakeListingRepo) IncrementFavoriteCount(_ context.Context, id uint) error {
	if l, ok := r.listings[id]; ok {
		l.FavoriteCount++
		return nil
	}
	return errNotFound
}

func (r *fakeListingRepo) IncrementContactCount(_ context.Context, id uint) error {
	if l, ok := r.listings[id]; ok {
		l.ContactCount++
		return nil
	}
	return errNotFound
}

func (r *fakeListingRepo) ListExpired(_ context.Context, now time.Time) ([]*models.Listing, error) {
	out, _, _ := r.byFilter(func(l *models.Listing) bool {
		return l.Status == models.ListingStatusActive && l.ExpiresAt != nil && l.ExpiresAt.Before(now)
	})
	return out, nil
}

func (r *fakeListingRepo) ListExpiredFeatured(_ context.Context, now time.Time) ([]*models.Listing, error) {
	out, _, _ := r.byFilter(func(l *models.Listing) bool {
		return l.Featured && l.FeaturedUntil != nil && l.FeaturedUntil.Before(now)
	})
	return out, nil
}

// fakeTransactionRepo is an in-memory TransactionRepository
type fakeTransactionRepo struct {
	nextID uint
	txs    map[uint]*models.Transaction
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{nextID: 1, txs: map[uint]*models.Transaction{}}
}

func (r *fakeTransactionRepo) Create(_ context.Context, tx *models.Transaction) error {
	tx.ID = r.nextID
	r.nextID++
	clone := *tx
	r.txs[tx.ID] = &clone
	return nil
}

func (r *fakeTransactionRepo) GetByID(_ context.Context, id uint) (*models.Transaction, error) {
	if tx, ok := r.txs[id]; ok {
		clone := *tx
		return &clone, nil
	}
	return nil, errNotFound
}

func (r *fakeTransactionRepo) GetByReference(_ context.Context, reference string) (*models.Transaction, error) {
	for _, tx := range r.txs {
		if tx.TransactionReference == reference {
			clone := *tx
			return &clone, nil
		}
	}
	return nil, errNotFound
}

func (r *fakeTransactionRepo) Update(_ context.Context, tx *models.Transaction) error {
	if _, ok := r.txs[tx.ID]; !ok {
		return errNotFound
	}
	clone := *tx
	r.txs[tx.ID] = &clone
	return nil
}

func (r *fakeTransactionRepo) ListByBuyer(_ context.Context, buyerID uint, _ *pagination.Params) ([]*models.Transaction, int64, error) {
	var out []*models.Transaction
	for _, tx := range r.txs {
		if tx.BuyerID == buyerID {
			clone := *tx
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeTransactionRepo) ListBySeller(_ context.Context, sellerID uint, _ *pagination.Params) ([]*models.Transaction, int64, error) {
	var out []*models.Transaction
	for _, tx := range r.txs {
		if tx.SellerID == sellerID {
			clone := *tx
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeTransactionRepo) ExistsCompletedPurchase(_ context.Context, buyerID, listingID uint) (bool, error) {
	for _, tx := range r.txs {
		if tx.BuyerID == buyerID && tx.ListingID == listingID && tx.TransactionStatus == models.TxStatusCompleted {
			return true, nil
		}
	}
	return false, nil
}

// fakeReviewRepo is an in-memory ReviewRepository
type fakeReviewRepo struct {
	nextID  uint
	reviews map[uint]*models.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{nextID: 1, reviews: map[uint]*models.Review{}}
}

func (r *fakeReviewRepo) Create(_ context.Context, review *models.Review) error {
	review.ID = r.nextID
	r.nextID++
	clone := *review
	r.reviews[review.ID] = &clone
	return nil
}

func (r *fakeReviewRepo) GetByID(_ context.Context, id uint) (*models.Review, error) {
	if rv, ok := r.reviews[id]; ok {
		clone := *rv
		return &clone, nil
	}
	return nil, errNotFound
}

func (r *fakeReviewRepo) ListByListing(_ context.Context, listingID uint, _ *pagination.Params) ([]*models.Review, int64, error) {
	var out []*models.Review
	for _, rv := range r.reviews {
		if rv.ListingID == listingID && rv.Public {
			clone := *rv
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeReviewRepo) ListByReviewee(_ context.Context, revieweeID uint, _ *pagination.Params) ([]*models.Review, int64, error) {
	var out []*models.Review
	for _, rv := range r.reviews {
		if rv.RevieweeID == revieweeID && rv.Public {
			clone := *rv
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeReviewRepo) ExistsByReviewerAndListing(_ context.Context, reviewerID, listingID uint) (bool, error) {
	for _, rv := range r.reviews {
		if rv.ReviewerID == reviewerID && rv.ListingID == listingID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReviewRepo) AggregateForUser(_ context.Context, revieweeID uint) (float64, int64, error) {
	var sum, count int
	for _, rv := range r.reviews {
		if rv.RevieweeID == revieweeID && rv.Public {
			sum += rv.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), int64(count), nil
}
