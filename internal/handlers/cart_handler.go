package handlers

import (
	"errors"

	"ivr/internal/models"
	"ivr/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for shopping carts.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Post("/", h.HandleAddItem)
	cartRoutes.Get("/:userId", h.HandleGetCart)
	cartRoutes.Patch("/:userId/item/:itemId", h.HandleUpdateItemQuantity)
	cartRoutes.Delete("/:userId/item/:itemId", h.HandleRemoveItem)
	cartRoutes.Delete("/:userId", h.HandleClearCart)
}

type addItemRequest struct {
	UserID string          `json:"userId"`
	Item   models.CartLine `json:"item"`
}

type updateQuantityRequest struct {
	NewQuantity *int `json:"newQuantity"`
}

// HandleAddItem merges an item into the user's cart and returns the whole cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "User ID is required"})
	}

	cart, err := h.service.AddItem(c.UserContext(), req.UserID, req.Item)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Item ID is required"})
		}
		return internalError(c, err, "Failed to add item to cart")
	}
	return c.JSON(cartBody(cart))
}

// HandleGetCart returns the user's cart, or {"items": []} if there is none.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(c.UserContext(), c.Params("userId"))
	if err != nil {
		return internalError(c, err, "Failed to fetch cart")
	}
	return c.JSON(cartBody(cart))
}

// HandleUpdateItemQuantity sets one line's quantity. Zero or less removes the line.
func (h *CartHandler) HandleUpdateItemQuantity(c *fiber.Ctx) error {
	var req updateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if req.NewQuantity == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "newQuantity is required"})
	}

	cart, err := h.service.UpdateItemQuantity(c.UserContext(), c.Params("userId"), c.Params("itemId"), *req.NewQuantity)
	switch {
	case errors.Is(err, services.ErrCartNotFound):
		return notFound(c, "Cart not found")
	case errors.Is(err, services.ErrItemNotFound):
		return notFound(c, "Item not found in cart")
	case err != nil:
		return internalError(c, err, "Failed to update cart")
	}
	return c.JSON(cartBody(cart))
}

// HandleRemoveItem drops an item from the user's cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	err := h.service.RemoveItem(c.UserContext(), c.Params("userId"), c.Params("itemId"))
	switch {
	case errors.Is(err, services.ErrNotFound):
		return notFound(c, "Cart not found")
	case err != nil:
		return internalError(c, err, "Failed to remove item")
	}
	return c.JSON(fiber.Map{"message": "Item removed successfully"})
}

// HandleClearCart deletes the user's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	if err := h.service.ClearCart(c.UserContext(), c.Params("userId")); err != nil {
		return internalError(c, err, "Failed to clear cart")
	}
	return c.JSON(fiber.Map{"message": "Cart cleared successfully"})
}
