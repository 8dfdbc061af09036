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

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the category routes with the Fiber app.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	routes := router.Group("/Categories")
	routes.Get("/", h.HandleList)
	routes.Get("/:id", h.HandleGetByID)
	routes.Post("/", h.HandleCreate)
	routes.Put("/:id", h.HandleUpdate)
	routes.Delete("/:id", h.HandleDelete)
}

// CategoryRequest is the JSON body for category create and update.
type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// HandleList returns one page of categories. Categories default to a page
// size of 5, unlike every other resource.
func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	pageNumber, pageSize, ok := parsePagination(c, 5)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": paginationErrorMessage,
		})
	}

	page, err := h.service.List(pageNumber, pageSize)
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve categories",
			"error":   err.Error(),
		})
	}
	return c.JSON(page)
}

// HandleGetByID returns a single category.
func (h *CategoryHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid id."})
	}

	category, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Category not found."})
		}
		log.Printf("Error getting category %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve category",
			"error":   err.Error(),
		})
	}
	return c.JSON(category)
}

// HandleCreate creates a new category and answers 200 with the persisted
// entity, plus a Location header for the lookup endpoint.
func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	category := models.Category{Name: req.Name}
	if err := h.service.Create(&category); err != nil {
		log.Printf("Error creating category: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create category",
			"error":   err.Error(),
		})
	}

	c.Set(fiber.HeaderLocation, fmt.Sprintf("/api/Categories/%d", category.CategoryID))
	return c.JSON(category)
}

// HandleUpdate overwrites every mutable field of an existing category.
func (h *CategoryHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid id."})
	}

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	if err := h.service.Update(id, models.Category{Name: req.Name}); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Category not found."})
		}
		log.Printf("Error updating category %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update category",
			"error":   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDelete removes a category.
func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid id."})
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Category not found."})
		}
		log.Printf("Error deleting category %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete category",
			"error":   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
