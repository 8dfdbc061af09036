package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"supermart/internal/models"
	"supermart/internal/repositories"
	"supermart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders. Create and update take a
// multipart form so a receipt image can ride along.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	routes := router.Group("/Orders")
	routes.Get("/", h.HandleList)
	routes.Get("/:id", h.HandleGetByID)
	routes.Post("/", h.HandleCreate)
	routes.Put("/:id", h.HandleUpdate)
	routes.Delete("/:id", h.HandleDelete)
}

// OrderForm is the multipart form for order create and update. The total
// amount is caller-supplied and never recomputed from the order items.
type OrderForm struct {
	OrderDate   string `form:"orderDate" validate:"required"`
	CustomerID  *uint  `form:"customerId"`
	TotalAmount string `form:"totalAmount"`
}

// parseOrderDate accepts RFC 3339 timestamps and plain dates.
func parseOrderDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// HandleList returns one page of orders with customer and order items
// attached.
func (h *OrderHandler) HandleList(c *fiber.Ctx) error {
	pageNumber, pageSize, ok := parsePagination(c, 10)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": paginationErrorMessage,
		})
	}

	page, err := h.service.List(pageNumber, pageSize)
	if err != nil {
		log.Printf("Error listing orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(page)
}

// HandleGetByID returns a single order with customer and order items
// attached.
func (h *OrderHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid id."})
	}

	order, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found."})
		}
		log.Printf("Error getting order %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
			"error":   err.Error(),
		})
	}
	return c.JSON(order)
}

// parseOrderForm binds and validates the multipart form.
func (h *OrderHandler) parseOrderForm(c *fiber.Ctx) (*models.Order, error) {
	var form OrderForm
	if err := c.BodyParser(&form); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	if err := h.validate.Struct(form); err != nil {
		return nil, err
	}

	orderDate, err := parseOrderDate(form.OrderDate)
	if err != nil {
		return nil, fmt.Errorf("orderDate must be an RFC 3339 timestamp or a YYYY-MM-DD date")
	}
	totalAmount, err := parseDecimal(form.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("totalAmount must be a decimal")
	}

	return &models.Order{
		OrderDate:   orderDate,
		CustomerID:  form.CustomerID,
		TotalAmount: totalAmount,
	}, nil
}

// HandleCreate creates a new order, storing the uploaded image first when
// one is attached.
func (h *OrderHandler) HandleCreate(c *fiber.Ctx) error {
	order, err := h.parseOrderForm(c)
	if err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return validationError(c, err)
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	image, _ := c.FormFile("image")
	if err := h.service.Create(order, image); err != nil {
		log.Printf("Error creating order: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create order",
			"error":   err.Error(),
		})
	}

	c.Set(fiber.HeaderLocation, fmt.Sprintf("/api/Orders/%d", order.OrderID))
	return c.JSON(order)
}

// HandleUpdate overwrites every mutable field of an existing order.
// Omitting the image keeps the previous imageUrl.
func (h *OrderHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid id."})
	}

	fields, err := h.parseOrderForm(c)
	if err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return validationError(c, err)
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	image, _ := c.FormFile("image")
	if err := h.service.Update(id, *fields, image); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found."})
		}
		log.Printf("Error updating order %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update order",
			"error":   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDelete removes an order.
func (h *OrderHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid id."})
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found."})
		}
		log.Printf("Error deleting order %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete order",
			"error":   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
