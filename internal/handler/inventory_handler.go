package handler

import (
	"errors"

	"go-sweetshop/internal/service"
	"go-sweetshop/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// PurchaseRequest is the purchase body. The coupon is optional.
type PurchaseRequest struct {
	QuantityToPurchase int    `json:"quantity_to_purchase" validate:"required,gt=0"`
	Coupon             string `json:"coupon"`
}

// RestockRequest is the restock body.
type RestockRequest struct {
	QuantityToAdd int `json:"quantity_to_add" validate:"required,gt=0"`
}

// Purchase decrements stock and computes pricing
// POST /api/sweets/:id/purchase
func (h *InventoryHandler) Purchase(c *fiber.Ctx) error {
	id, err := parseSweetID(c)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Invalid sweet ID"})
	}

	var req PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "Validation failed",
			"detail": errs,
		})
	}

	result, err := h.service.Purchase(id, req.QuantityToPurchase, req.Coupon)
	if err != nil {
		var stockErr *service.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": stockErr.Error()})
		case errors.Is(err, service.ErrSweetNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Sweet not found"})
		case errors.Is(err, service.ErrNonPositiveQuantity):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
		}
	}

	return c.JSON(result)
}

// Restock increments stock
// POST /api/sweets/:id/restock (admin)
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	id, err := parseSweetID(c)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Invalid sweet ID"})
	}

	var req RestockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "Validation failed",
			"detail": errs,
		})
	}

	result, err := h.service.Restock(id, req.QuantityToAdd)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSweetNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Sweet not found"})
		case errors.Is(err, service.ErrNonPositiveQuantity):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
		}
	}

	return c.JSON(result)
}
