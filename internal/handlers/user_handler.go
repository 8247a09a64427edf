package handlers

import (
	"errors"

	"ivr/internal/models"
	"ivr/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for the user registry.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/users", h.HandleCreateUser)
	router.Get("/users", h.HandleGetUsers)
	router.Delete("/users/:id", h.HandleDeleteUser)
	router.Get("/user/:email", h.HandleGetUserByEmail)
}

// HandleCreateUser registers a user and returns the stored record.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return invalidBody(c, err)
	}
	user.ID = ""
	if err := h.validate.Struct(user); err != nil {
		return validationFailed(c, err)
	}

	err := h.service.CreateUser(c.UserContext(), &user)
	switch {
	case errors.Is(err, services.ErrAlreadyExists):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "User already exists"})
	case err != nil:
		return internalError(c, err, "Failed to create user")
	}
	return c.JSON(user)
}

// HandleGetUserByEmail retrieves a single user by email.
func (h *UserHandler) HandleGetUserByEmail(c *fiber.Ctx) error {
	user, err := h.service.GetUserByEmail(c.UserContext(), c.Params("email"))
	switch {
	case errors.Is(err, services.ErrNotFound):
		return notFound(c, "User not found")
	case err != nil:
		return internalError(c, err, "Failed to fetch user")
	}
	return c.JSON(user)
}

// HandleGetUsers retrieves all users.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers(c.UserContext())
	if err != nil {
		return internalError(c, err, "Failed to fetch users")
	}
	return c.JSON(users)
}

// HandleDeleteUser deletes a user by ID.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	err := h.service.DeleteUser(c.UserContext(), c.Params("id"))
	switch {
	case errors.Is(err, services.ErrNotFound):
		return notFound(c, "User not found")
	case err != nil:
		return internalError(c, err, "Failed to delete user")
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
