package services

import (
	"context"
	"log"
	"time"

	"linka-backend/internal/adapters/persistence/models"
	"linka-backend/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// ListingExpiryService retires listings past their expiry date and
// clears lapsed featured windows on a daily schedule
type ListingExpiryService struct {
	listingRepo  repositories.ListingRepository
	categoryRepo repositories.CategoryRepository
	scheduler    *cron.Cron
}

// NewListingExpiryService creates a new expiry service
func NewListingExpiryService(listingRepo repositories.ListingRepository, categoryRepo repositories.CategoryRepository) *ListingExpiryService {
	return &ListingExpiryService{
		listingRepo:  listingRepo,
		categoryRepo: categoryRepo,
		scheduler:    cron.New(),
	}
}

// Start schedules the nightly sweep at 00:15
func (s *ListingExpiryService) Start() error {
	if _, err := s.scheduler.AddFunc("15 0 * * *", s.Sweep); err != nil {
		return err
	}

	s.scheduler.Start()
	log.Println("🚀 ListingExpiryService started (daily at 00:15)")
	return nil
}

// Stop stops the scheduler, waiting for a running sweep to finish
func (s *ListingExpiryService) Stop() {
	ctx := s.scheduler.Stop()
	<-ctx.Done()
	log.Println("🛑 ListingExpiryService stopped")
}

// Sweep expires stale listings and unfeatures lapsed ones
func (s *ListingExpiryService) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	now := time.Now()
	s.expireListings(ctx, now)
	s.unfeatureListings(ctx, now)
}

func (s *ListingExpiryService) expireListings(ctx context.Context, now time.Time) {
	listings, err := s.listingRepo.ListExpired(ctx, now)
	if err != nil {
		log.Printf("❌ Expiry query error: %v", err)
		return
	}

	expired := 0
	for _, listing := range listings {
		listing.Status = models.ListingStatusExpired
		if err := s.listingRepo.Update(ctx, listing); err != nil {
			log.Printf("❌ Failed to expire listing %d: %v", listing.ID, err)
			continue
		}
		if err := s.categoryRepo.AdjustItemCount(ctx, listing.CategoryID, -1); err != nil {
			log.Printf("⚠️ Failed to adjust item count for category %d: %v", listing.CategoryID, err)
		}
		expired++
	}

	if expired > 0 {
		log.Printf("✅ Expired %d listings", expired)
	}
}

func (s *ListingExpiryService) unfeatureListings(ctx context.Context, now time.Time) {
	listings, err := s.listingRepo.ListExpiredFeatured(ctx, now)
	if err != nil {
		log.Printf("❌ Featured expiry query error: %v", err)
		return
	}

	cleared := 0
	for _, listing := range listings {
		listing.Featured = false
		listing.FeaturedUntil = nil
		if err := s.listingRepo.Update(ctx, listing); err != nil {
			log.Printf("❌ Failed to unfeature listing %d: %v", listing.ID, err)
			continue
		}
		cleared++
	}

	if cleared > 0 {
		log.Printf("✅ Cleared featured flag on %d listings", cleared)
	}
}
