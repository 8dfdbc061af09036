package handlers

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// paginationErrorMessage is the exact message returned for pageNumber or
// pageSize below 1.
const paginationErrorMessage = "Page number and page size must be greater than 0."

// parsePagination reads pageNumber and pageSize from the query string.
// Both default when absent and must be >= 1; ok is false otherwise and the
// caller answers 400 without ever touching the store.
func parsePagination(c *fiber.Ctx, defaultPageSize int) (pageNumber, pageSize int, ok bool) {
	pageNumber, ok = queryInt(c, "pageNumber", 1)
	if !ok {
		return 0, 0, false
	}
	pageSize, ok = queryInt(c, "pageSize", defaultPageSize)
	if !ok {
		return 0, 0, false
	}
	if pageNumber < 1 || pageSize < 1 {
		return 0, 0, false
	}
	return pageNumber, pageSize, true
}

// queryInt reads an integer query parameter. Missing means the default;
// an unparseable value is a validation failure, never a silent fallback.
func queryInt(c *fiber.Ctx, key string, defaultValue int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}

// parseID reads the integer id path parameter.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", c.Params("id"))
	}
	return uint(id), nil
}

// parseDecimal converts a form value into a decimal, treating the empty
// string as zero.
func parseDecimal(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(value)
}

// validationError renders validator failures in a field -> reason map.
func validationError(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
