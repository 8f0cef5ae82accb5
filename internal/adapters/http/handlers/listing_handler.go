package handlers

import (
	"errors"

	"linka-backend/internal/adapters/http/middleware"
	"linka-backend/internal/core/services"
	"linka-backend/internal/pkg/pagination"
	"linka-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// listingSorts are the sortable columns exposed on browse endpoints
var listingSorts = []string{"created_at", "price", "view_count", "title"}

// ListingHandler handles listing endpoints
type ListingHandler struct {
	listingService *services.ListingService
}

// NewListingHandler creates a new listing handler
func NewListingHandler(listingService *services.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

func (h *ListingHandler) params(c *fiber.Ctx) *pagination.Params {
	return pagination.GetParams(c, "created_at", listingSorts...)
}

// browse wraps the shared list-and-paginate flow
func (h *ListingHandler) browse(c *fiber.Ctx, list func(*pagination.Params) (interface{}, int64, error)) error {
	params := h.params(c)

	listings, total, err := list(params)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryNotFound):
			return response.NotFound(c, "Category not found")
		case errors.Is(err, services.ErrInvalidPriceRange):
			return response.BadRequest(c, "Invalid price range")
		default:
			return response.InternalServerError(c, "Failed to list listings")
		}
	}

	return c.JSON(pagination.NewResponse(listings, params, total))
}

// List lists active listings
// @Summary Browse listings
// @Tags Listings
// @Produce json
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Param sortBy query string false "Sort column"
// @Success 200 {object} pagination.Response
// @Router /listings [get]
func (h *ListingHandler) List(c *fiber.Ctx) error {
	return h.browse(c, func(p *pagination.Params) (interface{}, int64, error) {
		return h.listingService.ListActive(c.Context(), p)
	})
}

// Featured lists featured listings
// @Summary Featured listings
// @Tags Listings
// @Produce json
// @Success 200 {object} pagination.Response
// @Router /listings/featured [get]
func (h *ListingHandler) Featured(c *fiber.Ctx) error {
	return h.browse(c, func(p *pagination.Params) (interface{}, int64, error) {
		return h.listingService.ListFeatured(c.Context(), p)
	})
}

// Popular lists listings by view count
// @Summary Popular listings
// @Tags Listings
// @Produce json
// @Success 200 {object} pagination.Response
// @Router /listings/popular [get]
func (h *ListingHandler) Popular(c *fiber.Ctx) error {
	return h.browse(c, func(p *pagination.Params) (interface{}, int64, error) {
		return h.listingService.ListPopular(c.Context(), p)
	})
}

// Latest lists the newest listings
// @Summary Latest listings
// @Tags Listings
// @Produce json
// @Success 200 {object} pagination.Response
// @Router /listings/latest [get]
func (h *ListingHandler) Latest(c *fiber.Ctx) error {
	return h.browse(c, func(p *pagination.Params) (interface{}, int64, error) {
		return h.listingService.ListLatest(c.Context(), p)
	})
}

// Trending lists listings trending over the last week
// @Summary Trending listings
// @Tags Listings
// @Produce json
// @Success 200 {object} pagination.Response
// @Router /listings/trending [get]
func (h *ListingHandler) Trending(c *fiber.Ctx) error {
	return h.browse(c, func(p *pagination.Params) (interface{}, int64, error) {
		return h.listingService.ListTrending(c.Context(), p)
	})
}

// Search searches listings by keyword
// @Summary Search listings
// @Tags Listings
// @Produce json
// @Param q query string true "Search keyword"
// @Success 200 {object} pagination.Response
// @Router /listings/search [get]
func (h *ListingHandler) Search(c *fiber.Ctx) error {
	keyword := c.Query("q")
	if keyword == "" {
		return response.BadRequest(c, "Search keyword is required")
	}

	return h.browse(c, func(p *pagination.Params) (interface{}, int64, error) {
		return h.listingService.Search(c.Context(), keyword, p)
	})
}

// PriceRange lists listings within a price band
// @Summary Listings by price range
// @Tags Listings
// @Produce json
// @Param min query number true "Minimum price"
// @Param max query number true "Maximum price"
// @Success 200 {object} pagination.Response
// @Router /listings/price-range [get]
func (h *ListingHandler) PriceRange(c *fiber.Ctx) error {
	minPrice := c.QueryFloat("min", 0)
	maxPrice := c.QueryFloat("max", 0)

	return h.browse(c, func(p *pagination.Params) (interface{}, int64, error) {
		return h.listingService.ListByPriceRange(c.Context(), minPrice, maxPrice, p)
	})
}

// ByLocation lists active listings in a location
// @Summary Listings by location
// @Tags Listings
// @Produce json
// @Param location query string true "Location name"
// @Success 200 {object} pagination.Response
// @Router /listings/location [get]
func (h *ListingHandler) ByLocation(c *fiber.Ctx) error {
	location := c.Query("location")
	if location == "" {
		return response.BadRequest(c, "Location is required")
	}

	return h.browse(c, func(p *pagination.Params) (interface{}, int64, error) {
		return h.listingService.ListByLocation(c.Context(), location, p)
	})
}

// ByCategory lists active listings in a category
// @Summary Listings by category
// @Tags Listings
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} pagination.Response
// @Router /listings/category/{id} [get]
func (h *ListingHandler) ByCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid category ID")
	}

	return h.browse(c, func(p *pagination.Params) (interface{}, int64, error) {
		return h.listingService.ListByCategory(c.Context(), uint(id), p)
	})
}

// BySeller lists a seller's active listings
// @Summary Listings by seller
// @Tags Listings
// @Produce json
// @Param id path int true "Seller ID"
// @Success 200 {object} pagination.Response
// @Router /listings/user/{id} [get]
func (h *ListingHandler) BySeller(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid seller ID")
	}

	return h.browse(c, func(p *pagination.Params) (interface{}, int64, error) {
		return h.listingService.ListActiveBySeller(c.Context(), uint(id), p)
	})
}

// Get returns one listing and counts the view
// @Summary Get listing
// @Tags Listings
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /listings/{id} [get]
func (h *ListingHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid listing ID")
	}

	listing, err := h.listingService.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "Listing not found")
	}

	return response.Success(c, "Listing retrieved", listing)
}

// Create creates a draft listing
// @Summary Create listing
// @Tags Listings
// @Accept json
// @Produce json
// @Param body body services.ListingInput true "Listing data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /listings [post]
func (h *ListingHandler) Create(c *fiber.Ctx) error {
	var input services.ListingInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	listing, err := h.listingService.Create(c.Context(), middleware.CurrentUserID(c), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidListingInput):
			return response.BadRequest(c, "Invalid listing data")
		case errors.Is(err, services.ErrCategoryNotFound):
			return response.BadRequest(c, "Category not found or inactive")
		default:
			return response.InternalServerError(c, "Failed to create listing")
		}
	}

	return response.Created(c, "Listing created as draft", listing)
}

// mutate wraps the shared ownership-checked mutation flow
func (h *ListingHandler) mutate(c *fiber.Ctx, action func(id uint) (interface{}, error), message string) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid listing ID")
	}

	listing, err := action(uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrListingNotFound):
			return response.NotFound(c, "Listing not found")
		case errors.Is(err, services.ErrListingNotOwned):
			return response.Forbidden(c, "Listing belongs to another seller")
		case errors.Is(err, services.ErrListingNotEditable), errors.Is(err, services.ErrListingNotActive):
			return response.Conflict(c, "Listing is not in an editable state")
		case errors.Is(err, services.ErrInvalidListingInput):
			return response.BadRequest(c, "Invalid listing data")
		case errors.Is(err, services.ErrCategoryNotFound):
			return response.BadRequest(c, "Category not found or inactive")
		default:
			return response.InternalServerError(c, "Failed to update listing")
		}
	}

	return response.Success(c, message, listing)
}

// Update edits a listing
// @Summary Update listing
// @Tags Listings
// @Accept json
// @Produce json
// @Param id path int true "Listing ID"
// @Param body body services.ListingInput true "Listing data"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /listings/{id} [put]
func (h *ListingHandler) Update(c *fiber.Ctx) error {
	var input services.ListingInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	return h.mutate(c, func(id uint) (interface{}, error) {
		return h.listingService.Update(c.Context(), id, middleware.CurrentUserID(c), middleware.IsAdmin(c), &input)
	}, "Listing updated")
}

// Publish moves a draft listing to active
// @Summary Publish listing
// @Tags Listings
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /listings/{id}/publish [post]
func (h *ListingHandler) Publish(c *fiber.Ctx) error {
	return h.mutate(c, func(id uint) (interface{}, error) {
		return h.listingService.Publish(c.Context(), id, middleware.CurrentUserID(c), middleware.IsAdmin(c))
	}, "Listing published")
}

// MarkSold marks a listing as sold
// @Summary Mark listing sold
// @Tags Listings
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /listings/{id}/sold [post]
func (h *ListingHandler) MarkSold(c *fiber.Ctx) error {
	return h.mutate(c, func(id uint) (interface{}, error) {
		return h.listingService.MarkSold(c.Context(), id, middleware.CurrentUserID(c), middleware.IsAdmin(c))
	}, "Listing marked as sold")
}

// Delete soft-deletes a listing
// @Summary Delete listing
// @Tags Listings
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /listings/{id} [delete]
func (h *ListingHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid listing ID")
	}

	if err := h.listingService.Delete(c.Context(), uint(id), middleware.CurrentUserID(c), middleware.IsAdmin(c)); err != nil {
		switch {
		case errors.Is(err, services.ErrListingNotFound):
			return response.NotFound(c, "Listing not found")
		case errors.Is(err, services.ErrListingNotOwned):
			return response.Forbidden(c, "Listing belongs to another seller")
		default:
			return response.InternalServerError(c, "Failed to delete listing")
		}
	}

	return response.Success(c, "Listing deleted", nil)
}

// Favorite adds the listing to the caller's favorites
// @Summary Favorite listing
// @Tags Listings
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /listings/{id}/favorite [post]
func (h *ListingHandler) Favorite(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid listing ID")
	}

	count, err := h.listingService.Favorite(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrListingNotFound) {
			return response.NotFound(c, "Listing not found")
		}
		return response.InternalServerError(c, "Failed to favorite listing")
	}

	return response.Success(c, "Added to favorites", fiber.Map{"favorite_count": count})
}

// Contact records a buyer reaching out about the listing
// @Summary Record listing contact
// @Tags Listings
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /listings/{id}/contact [post]
func (h *ListingHandler) Contact(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid listing ID")
	}

	count, err := h.listingService.RecordContact(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrListingNotFound) {
			return response.NotFound(c, "Listing not found")
		}
		return response.InternalServerError(c, "Failed to record contact")
	}

	return response.Success(c, "Contact recorded", fiber.Map{"contact_count": count})
}

// Suspend takes a listing off the marketplace
// @Summary Suspend listing
// @Tags Admin
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /admin/listings/{id}/suspend [post]
func (h *ListingHandler) Suspend(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid listing ID")
	}

	listing, err := h.listingService.Suspend(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrListingNotFound) {
			return response.NotFound(c, "Listing not found")
		}
		return response.InternalServerError(c, "Failed to suspend listing")
	}

	return response.Success(c, "Listing suspended", listing)
}

// MyListings lists the authenticated seller's own listings
// @Summary My listings
// @Description List the caller's listings across all statuses
// @Tags Seller
// @Produce json
// @Success 200 {object} pagination.Response
// @Security BearerAuth
// @Router /seller/listings [get]
func (h *ListingHandler) MyListings(c *fiber.Ctx) error {
	return h.browse(c, func(p *pagination.Params) (interface{}, int64, error) {
		return h.listingService.ListBySeller(c.Context(), middleware.CurrentUserID(c), p)
	})
}
