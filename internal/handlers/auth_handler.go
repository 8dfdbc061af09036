package handlers

import (
	"errors"
	"log"

	"supermart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
// These are the only routes outside the bearer-token middleware.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/Authentication")
	authRoutes.Post("/SignUp", h.HandleSignUp)
	authRoutes.Post("/login", h.HandleLogin)
}

// StatusResponse is the body returned by SignUp, matching the published
// contract's capitalized keys.
type StatusResponse struct {
	Status  string `json:"Status"`
	Message string `json:"Message"`
}

// SignUpRequest is the JSON body for registration.
type SignUpRequest struct {
	UserName string `json:"UserName" validate:"required"`
	Email    string `json:"Email" validate:"required"`
	Password string `json:"Password" validate:"required"`
}

// LoginRequest is the JSON body for login.
type LoginRequest struct {
	UserName string `json:"UserName" validate:"required"`
	Password string `json:"Password" validate:"required"`
}

// HandleSignUp registers a new user. A taken username answers 404 with an
// error body; any store failure answers 500.
func (h *AuthHandler) HandleSignUp(c *fiber.Ctx) error {
	var req SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	if err := h.authService.SignUp(req.UserName, req.Email, req.Password); err != nil {
		if errors.Is(err, services.ErrUserNameTaken) {
			return c.Status(fiber.StatusNotFound).JSON(StatusResponse{
				Status:  "Error Message",
				Message: "Username already exists",
			})
		}
		log.Printf("Error registering user %s: %v", req.UserName, err)
		return c.Status(fiber.StatusInternalServerError).JSON(StatusResponse{
			Status:  "Error Message",
			Message: "User Created Failed",
		})
	}

	return c.JSON(StatusResponse{
		Status:  "Success",
		Message: "User Created Successfully",
	})
}

// HandleLogin verifies credentials and issues a bearer token. Unknown user
// and wrong password both answer a bare 401.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	token, err := h.authService.Login(req.UserName, req.Password)
	if err != nil {
		log.Printf("Login failed for user %s", req.UserName)
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	return c.JSON(fiber.Map{"token": token})
}
