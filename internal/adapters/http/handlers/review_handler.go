package handlers

import (
	"errors"

	"linka-backend/internal/adapters/http/middleware"
	"linka-backend/internal/core/services"
	"linka-backend/internal/pkg/pagination"
	"linka-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles review endpoints
type ReviewHandler struct {
	reviewService *services.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Create submits a review
// @Summary Create review
// @Description Review the seller of a listing
// @Tags Reviews
// @Accept json
// @Produce json
// @Param body body services.CreateReviewInput true "Review data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /user/reviews [post]
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var input services.CreateReviewInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	review, err := h.reviewService.Create(c.Context(), middleware.CurrentUserID(c), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRating):
			return response.BadRequest(c, "Rating must be between 1 and 5")
		case errors.Is(err, services.ErrListingNotFound):
			return response.NotFound(c, "Listing not found")
		case errors.Is(err, services.ErrSelfReview):
			return response.BadRequest(c, "Cannot review your own listing")
		case errors.Is(err, services.ErrDuplicateReview):
			return response.Conflict(c, "You have already reviewed this listing")
		default:
			return response.InternalServerError(c, "Failed to create review")
		}
	}

	return response.Created(c, "Review created", review)
}

// ByListing lists public reviews of a listing
// @Summary Reviews for listing
// @Tags Reviews
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} pagination.Response
// @Router /reviews/listing/{id} [get]
func (h *ReviewHandler) ByListing(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid listing ID")
	}

	params := pagination.GetParams(c, "created_at", "created_at", "rating")

	reviews, total, err := h.reviewService.ListByListing(c.Context(), uint(id), params)
	if err != nil {
		if errors.Is(err, services.ErrListingNotFound) {
			return response.NotFound(c, "Listing not found")
		}
		return response.InternalServerError(c, "Failed to list reviews")
	}

	return c.JSON(pagination.NewResponse(reviews, params, total))
}

// BySeller lists public reviews received by a seller
// @Summary Reviews for seller
// @Tags Reviews
// @Produce json
// @Param id path int true "Seller user ID"
// @Success 200 {object} pagination.Response
// @Router /reviews/seller/{id} [get]
func (h *ReviewHandler) BySeller(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid seller ID")
	}

	params := pagination.GetParams(c, "created_at", "created_at", "rating")

	reviews, total, err := h.reviewService.ListBySeller(c.Context(), uint(id), params)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "Seller not found")
		}
		return response.InternalServerError(c, "Failed to list reviews")
	}

	return c.JSON(pagination.NewResponse(reviews, params, total))
}

// Get returns one review
// @Summary Get review
// @Tags Reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reviews/{id} [get]
func (h *ReviewHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid review ID")
	}

	review, err := h.reviewService.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "Review not found")
	}

	return response.Success(c, "Review retrieved", review)
}
