package handlers

import (
	"errors"

	"linka-backend/internal/core/services"
	"linka-backend/internal/pkg/pagination"
	"linka-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user administration endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// SetUserTypeRequest represents user type change request body
type SetUserTypeRequest struct {
	UserType string `json:"userType"`
}

// List lists users
// @Summary List users
// @Description List users with optional search over name and email
// @Tags Admin
// @Produce json
// @Param search query string false "Search term"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} pagination.Response
// @Security BearerAuth
// @Router /admin/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c, "created_at", "created_at", "email", "first_name", "last_login")
	search := c.Query("search")

	users, total, err := h.userService.List(c.Context(), search, params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	return c.JSON(pagination.NewResponse(users, params, total))
}

// Get gets one user
// @Summary Get user
// @Description Get a user by ID
// @Tags Admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /admin/users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "User not found")
	}

	return response.Success(c, "User retrieved", user)
}

// statusAction wraps the shared status-change flow
func (h *UserHandler) statusAction(c *fiber.Ctx, action func(uint) (interface{}, error), message string) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := action(uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, services.ErrInvalidUserStatus):
			return response.Conflict(c, "User already in that status")
		default:
			return response.InternalServerError(c, "Failed to update user")
		}
	}

	return response.Success(c, message, user)
}

// Suspend suspends a user
// @Summary Suspend user
// @Tags Admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /admin/users/{id}/suspend [post]
func (h *UserHandler) Suspend(c *fiber.Ctx) error {
	return h.statusAction(c, func(id uint) (interface{}, error) {
		return h.userService.Suspend(c.Context(), id)
	}, "User suspended")
}

// Ban bans a user
// @Summary Ban user
// @Tags Admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /admin/users/{id}/ban [post]
func (h *UserHandler) Ban(c *fiber.Ctx) error {
	return h.statusAction(c, func(id uint) (interface{}, error) {
		return h.userService.Ban(c.Context(), id)
	}, "User banned")
}

// Deactivate deactivates a user
// @Summary Deactivate user
// @Tags Admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /admin/users/{id}/deactivate [post]
func (h *UserHandler) Deactivate(c *fiber.Ctx) error {
	return h.statusAction(c, func(id uint) (interface{}, error) {
		return h.userService.Deactivate(c.Context(), id)
	}, "User deactivated")
}

// Activate reactivates a user
// @Summary Activate user
// @Tags Admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /admin/users/{id}/activate [post]
func (h *UserHandler) Activate(c *fiber.Ctx) error {
	return h.statusAction(c, func(id uint) (interface{}, error) {
		return h.userService.Activate(c.Context(), id)
	}, "User activated")
}

// Unlock clears a user's login lockout
// @Summary Unlock user
// @Description Clear a user's failed-login lockout before it expires
// @Tags Admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /admin/users/{id}/unlock [post]
func (h *UserHandler) Unlock(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.Unlock(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to unlock user")
	}

	return response.Success(c, "User unlocked", user)
}

// SetUserType changes a user's marketplace role
// @Summary Set user type
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param body body SetUserTypeRequest true "New user type"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /admin/users/{id}/type [put]
func (h *UserHandler) SetUserType(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req SetUserTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.SetUserType(c.Context(), uint(id), req.UserType)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidUserType):
			return response.BadRequest(c, "Invalid user type")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to change user type")
		}
	}

	return response.Success(c, "User type updated", user)
}
