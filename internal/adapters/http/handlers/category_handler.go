package handlers

import (
	"errors"

	"linka-backend/internal/core/services"
	"linka-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	categoryService *services.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List lists active categories
// @Summary List categories
// @Description List all active categories
// @Tags Categories
// @Produce json
// @Success 200 {object} response.Response
// @Router /categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.categoryService.ListActive(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list categories")
	}
	return response.Success(c, "Categories retrieved", categories)
}

// ListFeatured lists featured categories
// @Summary Featured categories
// @Tags Categories
// @Produce json
// @Success 200 {object} response.Response
// @Router /categories/featured [get]
func (h *CategoryHandler) ListFeatured(c *fiber.Ctx) error {
	categories, err := h.categoryService.ListFeatured(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list categories")
	}
	return response.Success(c, "Featured categories retrieved", categories)
}

// ListPopular lists categories by listing count
// @Summary Popular categories
// @Tags Categories
// @Produce json
// @Param limit query int false "Result limit"
// @Success 200 {object} response.Response
// @Router /categories/popular [get]
func (h *CategoryHandler) ListPopular(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	categories, err := h.categoryService.ListPopular(c.Context(), limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list categories")
	}
	return response.Success(c, "Popular categories retrieved", categories)
}

// ListParents lists root categories
// @Summary Root categories
// @Tags Categories
// @Produce json
// @Success 200 {object} response.Response
// @Router /categories/parents [get]
func (h *CategoryHandler) ListParents(c *fiber.Ctx) error {
	categories, err := h.categoryService.ListParents(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list categories")
	}
	return response.Success(c, "Root categories retrieved", categories)
}

// ListChildren lists subcategories
// @Summary Subcategories
// @Tags Categories
// @Produce json
// @Param id path int true "Parent category ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /categories/{id}/children [get]
func (h *CategoryHandler) ListChildren(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid category ID")
	}

	categories, err := h.categoryService.ListChildren(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			return response.NotFound(c, "Category not found")
		}
		return response.InternalServerError(c, "Failed to list subcategories")
	}
	return response.Success(c, "Subcategories retrieved", categories)
}

// Get gets a category by ID
// @Summary Get category
// @Tags Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /categories/{id} [get]
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid category ID")
	}

	category, err := h.categoryService.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "Category not found")
	}
	return response.Success(c, "Category retrieved", category)
}

// GetBySlug gets a category by slug
// @Summary Get category by slug
// @Tags Categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /categories/slug/{slug} [get]
func (h *CategoryHandler) GetBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return response.BadRequest(c, "Slug is required")
	}

	category, err := h.categoryService.GetBySlug(c.Context(), slug)
	if err != nil {
		return response.NotFound(c, "Category not found")
	}
	return response.Success(c, "Category retrieved", category)
}

// Create creates a category
// @Summary Create category
// @Tags Categories
// @Accept json
// @Produce json
// @Param body body services.CategoryInput true "Category data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var input services.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Name == "" {
		return response.BadRequest(c, "Name is required")
	}

	category, err := h.categoryService.Create(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryAlreadyExists):
			return response.Conflict(c, "Category already exists")
		case errors.Is(err, services.ErrParentCategoryMissing):
			return response.BadRequest(c, "Parent category not found")
		default:
			return response.InternalServerError(c, "Failed to create category")
		}
	}

	return response.Created(c, "Category created", category)
}

// Update updates a category
// @Summary Update category
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param body body services.CategoryInput true "Category data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid category ID")
	}

	var input services.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	category, err := h.categoryService.Update(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryNotFound):
			return response.NotFound(c, "Category not found")
		case errors.Is(err, services.ErrCategoryAlreadyExists):
			return response.Conflict(c, "Category name already in use")
		default:
			return response.InternalServerError(c, "Failed to update category")
		}
	}

	return response.Success(c, "Category updated", category)
}

// Delete deactivates a category
// @Summary Delete category
// @Description Deactivate a category with no active listings
// @Tags Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid category ID")
	}

	if err := h.categoryService.Deactivate(c.Context(), uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryNotFound):
			return response.NotFound(c, "Category not found")
		case errors.Is(err, services.ErrCategoryHasListings):
			return response.Conflict(c, "Category has active listings")
		default:
			return response.InternalServerError(c, "Failed to delete category")
		}
	}

	return response.Success(c, "Category deactivated", nil)
}
