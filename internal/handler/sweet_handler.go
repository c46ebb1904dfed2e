package handler

import (
	"errors"
	"strconv"

	"go-sweetshop/internal/model"
	"go-sweetshop/internal/repository"
	"go-sweetshop/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SweetHandler struct {
	service service.InventoryService
}

func NewSweetHandler(s service.InventoryService) *SweetHandler {
	return &SweetHandler{service: s}
}

// parseSweetID extracts the numeric sweet id from the path.
func parseSweetID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// sweetError maps service errors onto the wire contract.
func sweetError(c *fiber.Ctx, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "Validation failed",
			"detail": verr.Fields,
		})
	case errors.Is(err, service.ErrSweetNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Sweet not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}

// Create adds a new sweet to the catalog
// POST /api/sweets (admin)
func (h *SweetHandler) Create(c *fiber.Ctx) error {
	var req service.CreateSweetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	created, err := h.service.CreateSweet(&req)
	if err != nil {
		return sweetError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// List returns the full catalog
// GET /api/sweets
func (h *SweetHandler) List(c *fiber.Ctx) error {
	sweets, err := h.service.GetAllSweets()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	if sweets == nil {
		sweets = []model.Sweet{}
	}
	return c.JSON(sweets)
}

// Search filters the catalog by name, category and price band
// GET /api/sweets/search?name&category&min_price&max_price
func (h *SweetHandler) Search(c *fiber.Ctx) error {
	filter := repository.SearchFilter{
		Name:     c.Query("name"),
		Category: c.Query("category"),
	}

	if raw := c.Query("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "min_price must be a non-negative number"})
		}
		filter.MinPrice = &v
	}
	if raw := c.Query("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "max_price must be a non-negative number"})
		}
		filter.MaxPrice = &v
	}

	sweets, err := h.service.SearchSweets(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	if sweets == nil {
		sweets = []model.Sweet{}
	}
	return c.JSON(sweets)
}

// Update applies a partial update to a sweet
// PUT /api/sweets/:id (admin)
func (h *SweetHandler) Update(c *fiber.Ctx) error {
	id, err := parseSweetID(c)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Invalid sweet ID"})
	}

	var patch model.SweetPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateSweet(id, &patch)
	if err != nil {
		return sweetError(c, err)
	}

	return c.JSON(updated)
}

// Delete removes a sweet from the catalog
// DELETE /api/sweets/:id (admin)
func (h *SweetHandler) Delete(c *fiber.Ctx) error {
	id, err := parseSweetID(c)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Invalid sweet ID"})
	}

	if err := h.service.DeleteSweet(id); err != nil {
		return sweetError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
