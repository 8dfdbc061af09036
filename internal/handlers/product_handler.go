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

// ProductHandler handles HTTP requests for products. Create and update
// take a multipart form so a product image can ride along.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	routes := router.Group("/Products")
	routes.Get("/", h.HandleList)
	routes.Get("/:id", h.HandleGetByID)
	routes.Post("/", h.HandleCreate)
	routes.Put("/:id", h.HandleUpdate)
	routes.Delete("/:id", h.HandleDelete)
}

// ProductForm is the multipart form for product create and update. Price
// arrives as a string and is parsed into a decimal.
type ProductForm struct {
	Name          string `form:"name" validate:"required"`
	Description   string `form:"description"`
	Price         string `form:"price" validate:"required"`
	StockQuantity int    `form:"stockQuantity" validate:"gte=0"`
	CategoryID    *uint  `form:"categoryId"`
}

// HandleList returns one page of products with categories attached.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	pageNumber, pageSize, ok := parsePagination(c, 10)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": paginationErrorMessage,
		})
	}

	page, err := h.service.List(pageNumber, pageSize)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(page)
}

// HandleGetByID returns a single product with its category attached.
func (h *ProductHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid id."})
	}

	product, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found."})
		}
		log.Printf("Error getting product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
			"error":   err.Error(),
		})
	}
	return c.JSON(product)
}

// parseProductForm binds and validates the multipart form, converting the
// price into a non-negative decimal.
func (h *ProductHandler) parseProductForm(c *fiber.Ctx) (*models.Product, error) {
	var form ProductForm
	if err := c.BodyParser(&form); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	if err := h.validate.Struct(form); err != nil {
		return nil, err
	}

	price, err := parseDecimal(form.Price)
	if err != nil || price.IsNegative() {
		return nil, fmt.Errorf("price must be a non-negative decimal")
	}

	return &models.Product{
		Name:          form.Name,
		Description:   form.Description,
		Price:         price,
		StockQuantity: form.StockQuantity,
		CategoryID:    form.CategoryID,
	}, nil
}

// HandleCreate creates a new product, storing the uploaded image first
// when one is attached.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	product, err := h.parseProductForm(c)
	if err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return validationError(c, err)
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	image, _ := c.FormFile("image")
	if err := h.service.Create(product, image); err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create product",
			"error":   err.Error(),
		})
	}

	c.Set(fiber.HeaderLocation, fmt.Sprintf("/api/Products/%d", product.ProductID))
	return c.JSON(product)
}

// HandleUpdate overwrites every mutable field of an existing product.
// Omitting the image keeps the previous imageUrl.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid id."})
	}

	fields, err := h.parseProductForm(c)
	if err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return validationError(c, err)
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	image, _ := c.FormFile("image")
	if err := h.service.Update(id, *fields, image); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found."})
		}
		log.Printf("Error updating product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update product",
			"error":   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDelete removes a product.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid id."})
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found."})
		}
		log.Printf("Error deleting product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete product",
			"error":   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
