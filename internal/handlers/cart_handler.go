package handlers

import (
	"log"

	"kasir/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the cart.
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

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Post("/add", h.HandleAddItem)
	cartRoutes.Delete("/clear/:userId", h.HandleClear)
	cartRoutes.Get("/:userId", h.HandleList)
	cartRoutes.Put("/:id", h.HandleUpdateQuantity)
	cartRoutes.Delete("/:id", h.HandleRemoveItem)
}

// AddCartRequest is the body of POST /cart/add.
type AddCartRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// HandleAddItem adds a product to the user's cart, incrementing the
// quantity when the product is already there.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddCartRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	cartID, err := h.service.AddItem(c.UserContext(), req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		log.Printf("Error adding item to cart: %v", err)
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Item added to cart successfully.",
		"cartId":  cartID,
	})
}

// HandleList returns the user's cart joined with product details.
func (h *CartHandler) HandleList(c *fiber.Ctx) error {
	lines, err := h.service.List(c.UserContext(), c.Params("userId"))
	if err != nil {
		log.Printf("Error listing cart: %v", err)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"cartItems": lines,
	})
}

// UpdateCartRequest is the body of PUT /cart/:id.
type UpdateCartRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// HandleUpdateQuantity sets a cart item's quantity.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	var req UpdateCartRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	if err := h.service.UpdateQuantity(c.UserContext(), c.Params("id"), req.Quantity); err != nil {
		log.Printf("Error updating cart item %s: %v", c.Params("id"), err)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Cart item updated successfully.",
	})
}

// HandleRemoveItem deletes a cart item.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	if err := h.service.RemoveItem(c.UserContext(), c.Params("id")); err != nil {
		log.Printf("Error removing cart item %s: %v", c.Params("id"), err)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Item removed from cart.",
	})
}

// HandleClear empties the user's cart.
func (h *CartHandler) HandleClear(c *fiber.Ctx) error {
	if err := h.service.Clear(c.UserContext(), c.Params("userId")); err != nil {
		log.Printf("Error clearing cart for user %s: %v", c.Params("userId"), err)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Cart cleared successfully.",
	})
}
