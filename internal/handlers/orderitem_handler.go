package handlers

import (
	"errors"
	"fmt"
	"log"

	"supermart/internal/models"
	"supermart/internal/repositories"
	"supermart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderItemHandler handles HTTP requests for order items.
type OrderItemHandler struct {
	service  *services.OrderItemService
	validate *validator.Validate
}

// NewOrderItemHandler creates a new OrderItemHandler.
func NewOrderItemHandler(service *services.OrderItemService) *OrderItemHandler {
	return &OrderItemHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order item routes with the Fiber app.
func (h *OrderItemHandler) RegisterRoutes(router fiber.Router) {
	routes := router.Group("/OrderItems")
	routes.Get("/", h.HandleList)
	routes.Get("/:id", h.HandleGetByID)
	routes.Post("/", h.HandleCreate)
	routes.Put("/:id", h.HandleUpdate)
	routes.Delete("/:id", h.HandleDelete)
}

// OrderItemForm is the multipart form for order item create and update.
// Quantity and subtotal are stored as supplied, not checked against the
// product's price or stock.
type OrderItemForm struct {
	OrderID   *uint  `form:"orderId"`
	ProductID *uint  `form:"productId"`
	Quantity  int    `form:"quantity" validate:"gte=0"`
	Subtotal  string `form:"subtotal"`
}

// HandleList returns one page of order items with order and product
// attached.
func (h *OrderItemHandler) HandleList(c *fiber.Ctx) error {
	pageNumber, pageSize, ok := parsePagination(c, 10)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": paginationErrorMessage,
		})
	}

	page, err := h.service.List(pageNumber, pageSize)
	if err != nil {
		log.Printf("Error listing order items: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order items",
			"error":   err.Error(),
		})
	}
	return c.JSON(page)
}

// HandleGetByID returns a single order item with order and product
// attached.
func (h *OrderItemHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid id."})
	}

	item, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order item not found."})
		}
		log.Printf("Error getting order item %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order item",
			"error":   err.Error(),
		})
	}
	return c.JSON(item)
}

// parseOrderItemForm binds and validates the multipart form.
func (h *OrderItemHandler) parseOrderItemForm(c *fiber.Ctx) (*models.OrderItem, error) {
	var form OrderItemForm
	if err := c.BodyParser(&form); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	if err := h.validate.Struct(form); err != nil {
		return nil, err
	}

	subtotal, err := parseDecimal(form.Subtotal)
	if err != nil {
		return nil, fmt.Errorf("subtotal must be a decimal")
	}

	return &models.OrderItem{
		OrderID:   form.OrderID,
		ProductID: form.ProductID,
		Quantity:  form.Quantity,
		Subtotal:  subtotal,
	}, nil
}

// HandleCreate creates a new order item, storing the uploaded image first
// when one is attached.
func (h *OrderItemHandler) HandleCreate(c *fiber.Ctx) error {
	item, err := h.parseOrderItemForm(c)
	if err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return validationError(c, err)
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	image, _ := c.FormFile("image")
	if err := h.service.Create(item, image); err != nil {
		log.Printf("Error creating order item: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create order item",
			"error":   err.Error(),
		})
	}

	c.Set(fiber.HeaderLocation, fmt.Sprintf("/api/OrderItems/%d", item.OrderItemID))
	return c.JSON(item)
}

// HandleUpdate overwrites every mutable field of an existing order item.
// Omitting the image keeps the previous imageUrl.
func (h *OrderItemHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid id."})
	}

	fields, err := h.parseOrderItemForm(c)
	if err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return validationError(c, err)
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	image, _ := c.FormFile("image")
	if err := h.service.Update(id, *fields, image); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order item not found."})
		}
		log.Printf("Error updating order item %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update order item",
			"error":   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDelete removes an order item.
func (h *OrderItemHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid id."})
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order item not found."})
		}
		log.Printf("Error deleting order item %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete order item",
			"error":   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
