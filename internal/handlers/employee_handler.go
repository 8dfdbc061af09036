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

// EmployeeHandler handles HTTP requests for employees. Create and update
// take a multipart form so a photo can ride along.
type EmployeeHandler struct {
	service  *services.EmployeeService
	validate *validator.Validate
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(service *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the employee routes with the Fiber app.
func (h *EmployeeHandler) RegisterRoutes(router fiber.Router) {
	routes := router.Group("/Employees")
	routes.Get("/", h.HandleList)
	routes.Get("/:id", h.HandleGetByID)
	routes.Post("/", h.HandleCreate)
	routes.Put("/:id", h.HandleUpdate)
	routes.Delete("/:id", h.HandleDelete)
}

// EmployeeForm is the multipart form for employee create and update.
type EmployeeForm struct {
	FirstName string `form:"firstName" validate:"required"`
	LastName  string `form:"lastName" validate:"required"`
	Role      string `form:"role"`
	Salary    string `form:"salary"`
}

// HandleList returns one page of employees.
func (h *EmployeeHandler) HandleList(c *fiber.Ctx) error {
	pageNumber, pageSize, ok := parsePagination(c, 10)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": paginationErrorMessage,
		})
	}

	page, err := h.service.List(pageNumber, pageSize)
	if err != nil {
		log.Printf("Error listing employees: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve employees",
			"error":   err.Error(),
		})
	}
	return c.JSON(page)
}

// HandleGetByID returns a single employee.
func (h *EmployeeHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid id."})
	}

	employee, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Employee not found."})
		}
		log.Printf("Error getting employee %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve employee",
			"error":   err.Error(),
		})
	}
	return c.JSON(employee)
}

// parseEmployeeForm binds and validates the multipart form. First and last
// name are required, the only server-side field requirement carried by this
// resource family.
func (h *EmployeeHandler) parseEmployeeForm(c *fiber.Ctx) (*models.Employee, error) {
	var form EmployeeForm
	if err := c.BodyParser(&form); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	if err := h.validate.Struct(form); err != nil {
		return nil, err
	}

	salary, err := parseDecimal(form.Salary)
	if err != nil {
		return nil, fmt.Errorf("salary must be a decimal")
	}

	return &models.Employee{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Role:      form.Role,
		Salary:    salary,
	}, nil
}

// HandleCreate creates a new employee, storing the uploaded image first
// when one is attached.
func (h *EmployeeHandler) HandleCreate(c *fiber.Ctx) error {
	employee, err := h.parseEmployeeForm(c)
	if err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return validationError(c, err)
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	image, _ := c.FormFile("image")
	if err := h.service.Create(employee, image); err != nil {
		log.Printf("Error creating employee: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create employee",
			"error":   err.Error(),
		})
	}

	c.Set(fiber.HeaderLocation, fmt.Sprintf("/api/Employees/%d", employee.EmployeeID))
	return c.JSON(employee)
}

// HandleUpdate overwrites every mutable field of an existing employee.
// Omitting the image keeps the previous imageUrl.
func (h *EmployeeHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid id."})
	}

	fields, err := h.parseEmployeeForm(c)
	if err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return validationError(c, err)
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	image, _ := c.FormFile("image")
	if err := h.service.Update(id, *fields, image); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Employee not found."})
		}
		log.Printf("Error updating employee %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update employee",
			"error":   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDelete removes an employee.
func (h *EmployeeHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid id."})
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Employee not found."})
		}
		log.Printf("Error deleting employee %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete employee",
			"error":   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
