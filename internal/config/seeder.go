package config

import (
	"log"

	"linka-backend/internal/adapters/persistence/models"
	"linka-backend/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedUsers(); err != nil {
		log.Printf("⚠️ User seeder skipped: %v", err)
	}

	if err := s.seedCategories(); err != nil {
		log.Printf("⚠️ Category seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedUsers seeds default admin, buyer and seller accounts
// This is for development/testing only
// In production, create admin through secure process
func (s *Seeder) seedUsers() error {
	var count int64
	s.db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return nil // Users already exist
	}

	defaults := []struct {
		email    string
		phone    string
		first    string
		last     string
		userType string
		raw      string
	}{
		{"admin@linka.ug", "+256700000001", "System", "Administrator", models.UserTypeAdmin, "admin123456"},
		{"john@linka.ug", "+256700000002", "John", "Okello", models.UserTypeBuyer, "buyer123456"},
		{"jane@linka.ug", "+256700000003", "Jane", "Namukasa", models.UserTypeSeller, "seller123456"},
	}

	for _, d := range defaults {
		hashedPassword, err := password.Hash(d.raw)
		if err != nil {
			return err
		}

		user := &models.User{
			Email:         d.email,
			PhoneNumber:   d.phone,
			FirstName:     d.first,
			LastName:      d.last,
			Password:      hashedPassword,
			UserType:      d.userType,
			Status:        models.UserStatusActive,
			EmailVerified: true,
			PhoneVerified: true,
		}

		if err := s.db.Create(user).Error; err != nil {
			return err
		}

		log.Printf("✅ User created: %s [%s]", user.Email, user.UserType)
	}

	return nil
}

// seedCategories seeds the default category tree
func (s *Seeder) seedCategories() error {
	var count int64
	s.db.Model(&models.Category{}).Count(&count)
	if count > 0 {
		return nil // Categories already exist
	}

	defaults := []models.Category{
		{Name: "Electronics", Slug: "electronics", Description: "Phones, computers and accessories", SortOrder: 1, Active: true, Featured: true},
		{Name: "Fashion", Slug: "fashion", Description: "Clothing, shoes and accessories", SortOrder: 2, Active: true, Featured: true},
		{Name: "Home & Garden", Slug: "home-garden", Description: "Furniture, appliances and decor", SortOrder: 3, Active: true},
		{Name: "Vehicles", Slug: "vehicles", Description: "Cars, motorcycles and spare parts", SortOrder: 4, Active: true},
		{Name: "Agriculture", Slug: "agriculture", Description: "Produce, livestock and farm supplies", SortOrder: 5, Active: true},
		{Name: "Services", Slug: "services", Description: "Professional and personal services", SortOrder: 6, Active: true},
	}

	for i := range defaults {
		if err := s.db.Create(&defaults[i]).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d categories", len(defaults))
	return nil
}
