package handlers

import (
	"log"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the caller's cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes, all requiring a bearer token.
func (h *CartHandler) RegisterRoutes(protected fiber.Router) {
	cartRoutes := protected.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Put("/items/:id", h.HandleUpdateItem)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// HandleGetCart returns the caller's cart, creating it on first access.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(currentUserID(c))
	if err != nil {
		log.Printf("Error getting cart: %v", err)
		return respondError(c, "Could not retrieve cart", err)
	}
	return c.JSON(models.NewCartView(cart))
}

// AddToCartRequest represents the request body for adding a product.
type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
}

// HandleAddItem adds a product to the caller's cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	req := AddToCartRequest{Quantity: 1}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	cart, err := h.service.AddItem(currentUserID(c), req.ProductID, req.Quantity)
	if err != nil {
		log.Printf("Error adding item to cart: %v", err)
		return respondError(c, "Could not add product to cart", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product added to cart successfully",
		"cart":    models.NewCartView(cart),
	})
}

// UpdateCartItemRequest represents the request body for a quantity change.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// HandleUpdateItem sets the quantity of a cart line. Quantity zero
// removes the line.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req UpdateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	cart, err := h.service.UpdateItem(currentUserID(c), c.Params("id"), req.Quantity)
	if err != nil {
		return respondError(c, "Could not update cart item", err)
	}

	message := "Cart item updated successfully"
	if req.Quantity == 0 {
		message = "Item removed from cart"
	}
	return c.JSON(fiber.Map{
		"message": message,
		"cart":    models.NewCartView(cart),
	})
}

// HandleRemoveItem deletes a line from the caller's cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	cart, err := h.service.RemoveItem(currentUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, "Could not remove cart item", err)
	}
	return c.JSON(fiber.Map{
		"message": "Item removed from cart successfully",
		"cart":    models.NewCartView(cart),
	})
}

// HandleClearCart deletes every line from the caller's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	cart, err := h.service.ClearCart(currentUserID(c))
	if err != nil {
		return respondError(c, "Could not clear cart", err)
	}
	return c.JSON(fiber.Map{
		"message": "Cart cleared successfully",
		"cart":    models.NewCartView(cart),
	})
}
