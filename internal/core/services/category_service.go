package services

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"

	"linka-backend/internal/adapters/persistence/models"
	"linka-backend/internal/adapters/persistence/repositories"
)

// Category errors
var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")
	ErrCategoryHasListings   = errors.New("category has active listings")
	ErrParentCategoryMissing = errors.New("parent category not found")
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a category name into a URL slug
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// CategoryService handles category management
type CategoryService struct {
	categoryRepo repositories.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CategoryInput represents category create/update input. Updates apply
// only the fields that were sent.
type CategoryInput struct {
	Name             string `json:"name" validate:"required,max=100"`
	Description      string `json:"description"`
	IconName         string `json:"iconName"`
	EmojiSymbol      string `json:"emojiSymbol"`
	ColorCode        string `json:"colorCode"`
	ParentCategoryID *uint  `json:"parentCategoryId"`
	SortOrder        *int   `json:"sortOrder"`
	Featured         *bool  `json:"featured"`
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, input *CategoryInput) (*models.Category, error) {
	// 1. Name must be unique
	exists, err := s.categoryRepo.ExistsByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCategoryAlreadyExists
	}

	// 2. Slug derived from the name must be unique too
	slug := Slugify(input.Name)
	exists, err = s.categoryRepo.ExistsBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCategoryAlreadyExists
	}

	// 3. Parent must exist when given
	if input.ParentCategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *input.ParentCategoryID); err != nil {
			return nil, ErrParentCategoryMissing
		}
	}

	category := &models.Category{
		Name:             input.Name,
		Slug:             slug,
		Description:      input.Description,
		IconName:         input.IconName,
		EmojiSymbol:      input.EmojiSymbol,
		ColorCode:        input.ColorCode,
		ParentCategoryID: input.ParentCategoryID,
		Active:           true,
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}
	if input.Featured != nil {
		category.Featured = *input.Featured
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	log.Printf("✅ Category created: %s", category.Slug)
	return category, nil
}

// Update updates an existing category
func (s *CategoryService) Update(ctx context.Context, id uint, input *CategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrCategoryNotFound
	}

	if input.Name != "" && input.Name != category.Name {
		exists, err := s.categoryRepo.ExistsByName(ctx, input.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrCategoryAlreadyExists
		}
		category.Name = input.Name
		category.Slug = Slugify(input.Name)
	}

	if input.Description != "" {
		category.Description = input.Description
	}
	if input.IconName != "" {
		category.IconName = input.IconName
	}
	if input.EmojiSymbol != "" {
		category.EmojiSymbol = input.EmojiSymbol
	}
	if input.ColorCode != "" {
		category.ColorCode = input.ColorCode
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}
	if input.Featured != nil {
		category.Featured = *input.Featured
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	log.Printf("✅ Category updated: %s", category.Slug)
	return category, nil
}

// Deactivate hides a category without removing it
func (s *CategoryService) Deactivate(ctx context.Context, id uint) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return ErrCategoryNotFound
	}

	if category.ItemCount > 0 {
		return ErrCategoryHasListings
	}

	category.Active = false
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return err
	}

	log.Printf("✅ Category deactivated: %s", category.Slug)
	return nil
}

// GetByID gets a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// GetBySlug gets a category by its slug
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// ListActive lists all active categories
func (s *CategoryService) ListActive(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.ListActive(ctx)
}

// ListFeatured lists featured categories
func (s *CategoryService) ListFeatured(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.ListFeatured(ctx)
}

// ListPopular lists categories ranked by listing count
func (s *CategoryService) ListPopular(ctx context.Context, limit int) ([]*models.Category, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.categoryRepo.ListPopular(ctx, limit)
}

// ListParents lists root categories
func (s *CategoryService) ListParents(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.ListParents(ctx)
}

// ListChildren lists the subcategories of a category
func (s *CategoryService) ListChildren(ctx context.Context, parentID uint) ([]*models.Category, error) {
	if _, err := s.categoryRepo.GetByID(ctx, parentID); err != nil {
		return nil, ErrCategoryNotFound
	}
	return s.categoryRepo.ListChildren(ctx, parentID)
}
