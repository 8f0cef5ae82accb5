package handlers

import (
	"errors"
	"strings"

	"linka-backend/internal/adapters/http/middleware"
	"linka-backend/internal/config"
	"linka-backend/internal/core/services"
	"linka-backend/internal/pkg/password"
	"linka-backend/internal/pkg/response"
	"linka-backend/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// RegisterRequest represents registration request body
type RegisterRequest struct {
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Location        string `json:"location"`
	City            string `json:"city"`
	District        string `json:"district"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest represents password change request body
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ResetPasswordRequest represents password reset request body
type ResetPasswordRequest struct {
	Email string `json:"email"`
}

// Register handles user registration
// @Summary Register new user
// @Description Register a new marketplace account pending verification
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if req.PhoneNumber == "" {
		return response.BadRequest(c, "Phone number is required")
	}
	if req.FirstName == "" || req.LastName == "" {
		return response.BadRequest(c, "First and last name are required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}

	input := &services.RegisterInput{
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		PhoneNumber:     strings.TrimSpace(req.PhoneNumber),
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Location:        strings.TrimSpace(req.Location),
		City:            strings.TrimSpace(req.City),
		District:        strings.TrimSpace(req.District),
	}

	result, err := h.authService.Register(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPasswordMismatch):
			return response.BadRequest(c, "Passwords do not match")
		case errors.Is(err, password.ErrPasswordTooShort):
			return response.BadRequest(c, "Password must be at least 8 characters")
		case errors.Is(err, services.ErrInvalidPhoneNumber):
			return response.BadRequest(c, "Invalid Ugandan phone number")
		case errors.Is(err, services.ErrEmailAlreadyExists):
			return response.Conflict(c, "Email already registered")
		case errors.Is(err, services.ErrPhoneAlreadyExists):
			return response.Conflict(c, "Phone number already registered")
		default:
			return response.InternalServerError(c, "Failed to register user")
		}
	}

	return response.Created(c, "User registered successfully", fiber.Map{
		"access_token": result.AccessToken,
		"user":         result.User,
	})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate user and return an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}

	input := &services.LoginInput{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: req.Password,
	}

	result, err := h.authService.Login(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccountNotActive):
			return response.Forbidden(c, "Account is not active")
		default:
			return response.Unauthorized(c, "Invalid email or password")
		}
	}

	return response.Success(c, "Login successful", fiber.Map{
		"access_token": result.AccessToken,
		"user":         result.User,
	})
}

// Logout handles user logout
// @Summary Logout user
// @Description Log out the current user; the client discards the token
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	email := middleware.CurrentEmail(c)
	if email != "" {
		_ = h.authService.Logout(c.Context(), email)
	}
	return response.Success(c, "Logout successful", nil)
}

// Check reports whether the request carries a valid identity
// @Summary Check authentication
// @Description Report whether the caller is authenticated
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/check [get]
func (h *AuthHandler) Check(c *fiber.Ctx) error {
	authenticated, _ := c.Locals("authenticated").(bool)
	data := fiber.Map{"authenticated": authenticated}
	if authenticated {
		data["email"] = middleware.CurrentEmail(c)
		data["user_type"] = c.Locals("userType")
	}
	return response.Success(c, "Authentication status", data)
}

// bearerEmail resolves the caller's email straight from the bearer
// token. Verification endpoints need this because pending accounts are
// still anonymous to the authentication gateway.
func (h *AuthHandler) bearerEmail(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	accessToken := strings.TrimPrefix(authHeader, "Bearer ")
	if !token.Validate(accessToken, h.cfg.JWT.Secret) {
		return ""
	}
	email, err := token.ExtractEmail(accessToken, h.cfg.JWT.Secret)
	if err != nil {
		return ""
	}
	return email
}

// VerifyEmail marks the caller's email as verified
// @Summary Verify email
// @Description Mark the token holder's email as verified
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Security BearerAuth
// @Router /auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	email := h.bearerEmail(c)
	if email == "" {
		return response.Unauthorized(c, "Valid token required")
	}

	user, err := h.authService.VerifyEmail(c.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyVerified):
			return response.BadRequest(c, "Email already verified")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to verify email")
		}
	}
	return response.Success(c, "Email verified", user)
}

// VerifyPhone marks the caller's phone as verified
// @Summary Verify phone
// @Description Mark the token holder's phone as verified
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Security BearerAuth
// @Router /auth/verify-phone [post]
func (h *AuthHandler) VerifyPhone(c *fiber.Ctx) error {
	email := h.bearerEmail(c)
	if email == "" {
		return response.Unauthorized(c, "Valid token required")
	}

	user, err := h.authService.VerifyPhone(c.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyVerified):
			return response.BadRequest(c, "Phone already verified")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to verify phone")
		}
	}
	return response.Success(c, "Phone verified", user)
}

// ChangePassword changes the caller's password
// @Summary Change password
// @Description Change the authenticated user's password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body ChangePasswordRequest true "Password change data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		return response.BadRequest(c, "Current and new passwords are required")
	}

	input := &services.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	}

	if err := h.authService.ChangePassword(c.Context(), middleware.CurrentEmail(c), input); err != nil {
		switch {
		case errors.Is(err, services.ErrWrongPassword):
			return response.BadRequest(c, "Current password is incorrect")
		case errors.Is(err, services.ErrPasswordMismatch):
			return response.BadRequest(c, "Passwords do not match")
		case errors.Is(err, password.ErrPasswordTooShort):
			return response.BadRequest(c, "Password must be at least 8 characters")
		default:
			return response.InternalServerError(c, "Failed to change password")
		}
	}

	return response.Success(c, "Password changed successfully", nil)
}

// ResetPassword issues a temporary password by email
// @Summary Reset password
// @Description Send a temporary password to the given email
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body ResetPasswordRequest true "Account email"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}

	if err := h.authService.ResetPassword(c.Context(), strings.ToLower(strings.TrimSpace(req.Email))); err != nil {
		return response.InternalServerError(c, "Failed to reset password")
	}

	// Same answer whether or not the email exists
	return response.Success(c, "If the email exists, a temporary password has been sent", nil)
}

// GetProfile returns the caller's profile
// @Summary Get profile
// @Description Get the authenticated user's profile
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Security BearerAuth
// @Router /auth/profile [get]
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	user, err := h.authService.GetProfile(c.Context(), middleware.CurrentEmail(c))
	if err != nil {
		return response.NotFound(c, "User not found")
	}
	return response.Success(c, "Profile retrieved", user)
}

// UpdateProfile updates the caller's profile
// @Summary Update profile
// @Description Update the authenticated user's profile fields
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.UpdateProfileInput true "Profile fields"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var input services.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.authService.UpdateProfile(c.Context(), middleware.CurrentEmail(c), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPhoneNumber):
			return response.BadRequest(c, "Invalid Ugandan phone number")
		case errors.Is(err, services.ErrPhoneAlreadyExists):
			return response.Conflict(c, "Phone number already registered")
		case errors.Is(err, services.ErrEmailAlreadyExists):
			return response.Conflict(c, "Email already registered")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to update profile")
		}
	}

	return response.Success(c, "Profile updated", user)
}
