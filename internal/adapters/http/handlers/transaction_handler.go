package handlers

import (
	"errors"

	"linka-backend/internal/adapters/http/middleware"
	"linka-backend/internal/core/services"
	"linka-backend/internal/pkg/pagination"
	"linka-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TransactionHandler handles transaction endpoints
type TransactionHandler struct {
	txService *services.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(txService *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{txService: txService}
}

// UpdateStatusRequest represents status change request body
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Create initiates a purchase
// @Summary Create transaction
// @Description Initiate a purchase against an active listing
// @Tags Transactions
// @Accept json
// @Produce json
// @Param body body services.CreateTransactionInput true "Purchase data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var input services.CreateTransactionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	tx, err := h.txService.Create(c.Context(), middleware.CurrentUserID(c), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrListingNotFound):
			return response.NotFound(c, "Listing not found")
		case errors.Is(err, services.ErrListingNotActive):
			return response.Conflict(c, "Listing is not active")
		case errors.Is(err, services.ErrOwnListingPurchase):
			return response.BadRequest(c, "Cannot purchase your own listing")
		case errors.Is(err, services.ErrInsufficientQuantity):
			return response.Conflict(c, "Not enough quantity available")
		case errors.Is(err, services.ErrInvalidPaymentMethod):
			return response.BadRequest(c, "Invalid payment method")
		default:
			return response.InternalServerError(c, "Failed to create transaction")
		}
	}

	return response.Created(c, "Transaction created", tx)
}

// Get returns one transaction
// @Summary Get transaction
// @Description Get a transaction visible to its buyer, seller, or an admin
// @Tags Transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid transaction ID")
	}

	tx, err := h.txService.GetByID(c.Context(), uint(id), middleware.CurrentUserID(c), middleware.IsAdmin(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTransactionForbidden):
			return response.Forbidden(c, "Transaction belongs to another user")
		default:
			return response.NotFound(c, "Transaction not found")
		}
	}

	return response.Success(c, "Transaction retrieved", tx)
}

// UpdateStatus advances a transaction
// @Summary Update transaction status
// @Description Advance a transaction along its lifecycle
// @Tags Transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /transactions/{id}/status [put]
func (h *TransactionHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid transaction ID")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Status == "" {
		return response.BadRequest(c, "Status is required")
	}

	tx, err := h.txService.UpdateStatus(c.Context(), uint(id), middleware.CurrentUserID(c), middleware.IsAdmin(c), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTransactionNotFound):
			return response.NotFound(c, "Transaction not found")
		case errors.Is(err, services.ErrTransactionForbidden):
			return response.Forbidden(c, "Transaction belongs to another user")
		case errors.Is(err, services.ErrInvalidTransition):
			return response.Conflict(c, "Invalid status transition")
		default:
			return response.InternalServerError(c, "Failed to update transaction")
		}
	}

	return response.Success(c, "Transaction updated", tx)
}

// Purchases lists the caller's purchases
// @Summary My purchases
// @Tags User
// @Produce json
// @Success 200 {object} pagination.Response
// @Security BearerAuth
// @Router /user/purchases [get]
func (h *TransactionHandler) Purchases(c *fiber.Ctx) error {
	params := pagination.GetParams(c, "created_at", "created_at", "total_amount")

	txs, total, err := h.txService.ListPurchases(c.Context(), middleware.CurrentUserID(c), params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list purchases")
	}

	return c.JSON(pagination.NewResponse(txs, params, total))
}

// Sales lists the caller's sales
// @Summary My sales
// @Tags Seller
// @Produce json
// @Success 200 {object} pagination.Response
// @Security BearerAuth
// @Router /seller/sales [get]
func (h *TransactionHandler) Sales(c *fiber.Ctx) error {
	params := pagination.GetParams(c, "created_at", "created_at", "total_amount")

	txs, total, err := h.txService.ListSales(c.Context(), middleware.CurrentUserID(c), params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list sales")
	}

	return c.JSON(pagination.NewResponse(txs, params, total))
}
