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

// CustomerHandler handles HTTP requests for customers.
type CustomerHandler struct {
	service  *services.CustomerService
	validate *validator.Validate
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(service *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the customer routes with the Fiber app. The
// group name is singular, matching the published API surface.
func (h *CustomerHandler) RegisterRoutes(router fiber.Router) {
	routes := router.Group("/Customer")
	routes.Get("/", h.HandleList)
	routes.Get("/:id", h.HandleGetByID)
	routes.Post("/", h.HandleCreate)
	routes.Put("/:id", h.HandleUpdate)
	routes.Delete("/:id", h.HandleDelete)
}

// CustomerRequest is the JSON body for customer create and update.
type CustomerRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"required"`
}

// HandleList returns one page of customers.
func (h *CustomerHandler) HandleList(c *fiber.Ctx) error {
	pageNumber, pageSize, ok := parsePagination(c, 10)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": paginationErrorMessage,
		})
	}

	page, err := h.service.List(pageNumber, pageSize)
	if err != nil {
		log.Printf("Error listing customers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve customers",
			"error":   err.Error(),
		})
	}
	return c.JSON(page)
}

// HandleGetByID returns a single customer.
func (h *CustomerHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid id."})
	}

	customer, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Customer not found."})
		}
		log.Printf("Error getting customer %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve customer",
			"error":   err.Error(),
		})
	}
	return c.JSON(customer)
}

// HandleCreate creates a new customer.
func (h *CustomerHandler) HandleCreate(c *fiber.Ctx) error {
	var req CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	customer := models.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	if err := h.service.Create(&customer); err != nil {
		log.Printf("Error creating customer: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create customer",
			"error":   err.Error(),
		})
	}

	c.Set(fiber.HeaderLocation, fmt.Sprintf("/api/Customer/%d", customer.CustomerID))
	return c.JSON(customer)
}

// HandleUpdate overwrites every mutable field of an existing customer.
func (h *CustomerHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid id."})
	}

	var req CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	fields := models.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	if err := h.service.Update(id, fields); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Customer not found."})
		}
		log.Printf("Error updating customer %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update customer",
			"error":   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDelete removes a customer.
func (h *CustomerHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid id."})
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Customer not found."})
		}
		log.Printf("Error deleting customer %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete customer",
			"error":   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
