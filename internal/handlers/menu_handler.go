package handlers

import (
	"errors"

	"ivr/internal/models"
	"ivr/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MenuHandler handles HTTP requests for the menu.
type MenuHandler struct {
	service  *services.MenuService
	validate *validator.Validate
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(service *services.MenuService) *MenuHandler {
	return &MenuHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the menu routes with the Fiber app.
func (h *MenuHandler) RegisterRoutes(router fiber.Router) {
	menuRoutes := router.Group("/menu")
	menuRoutes.Get("/", h.HandleGetMenu)
	menuRoutes.Post("/", h.HandleCreateMenuItem)
	menuRoutes.Patch("/:id", h.HandleUpdateMenuItem)
	menuRoutes.Delete("/:id", h.HandleDeleteMenuItem)
}

// HandleGetMenu retrieves all menu items.
func (h *MenuHandler) HandleGetMenu(c *fiber.Ctx) error {
	items, err := h.service.GetMenu(c.UserContext())
	if err != nil {
		return internalError(c, err, "Failed to fetch menu")
	}
	return c.JSON(items)
}

// HandleCreateMenuItem creates a new menu item.
func (h *MenuHandler) HandleCreateMenuItem(c *fiber.Ctx) error {
	var item models.MenuItem
	if err := c.BodyParser(&item); err != nil {
		return invalidBody(c, err)
	}
	// IDs are assigned by the store.
	item.ID = ""
	if err := h.validate.Struct(item); err != nil {
		return validationFailed(c, err)
	}

	if err := h.service.CreateMenuItem(c.UserContext(), &item); err != nil {
		return internalError(c, err, "Failed to create menu item")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdateMenuItem applies the supplied fields to a menu item.
func (h *MenuHandler) HandleUpdateMenuItem(c *fiber.Ctx) error {
	var update models.MenuItemUpdate
	if err := c.BodyParser(&update); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(update); err != nil {
		return validationFailed(c, err)
	}

	item, err := h.service.UpdateMenuItem(c.UserContext(), c.Params("id"), update)
	switch {
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "No fields to update"})
	case errors.Is(err, services.ErrNotFound):
		return notFound(c, "Menu item not found")
	case err != nil:
		return internalError(c, err, "Failed to update menu item")
	}
	return c.JSON(item)
}

// HandleDeleteMenuItem deletes a menu item.
func (h *MenuHandler) HandleDeleteMenuItem(c *fiber.Ctx) error {
	err := h.service.DeleteMenuItem(c.UserContext(), c.Params("id"))
	switch {
	case errors.Is(err, services.ErrNotFound):
		return notFound(c, "Menu item not found")
	case err != nil:
		return internalError(c, err, "Failed to delete menu item")
	}
	return c.JSON(fiber.Map{"message": "Menu item deleted successfully"})
}
