package services

import (
	"context"

	"kasir/internal/models"
	"kasir/internal/repositories"
)

// CartService handles business logic for a user's cart.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// List returns the user's cart joined with product name and current
// price. An unknown user gets an empty list.
func (s *CartService) List(ctx context.Context, userID string) ([]models.CartLine, error) {
	lines, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, classify(err, "cart not found")
	}
	return lines, nil
}

// AddItem adds quantity of a product to the user's cart. An existing
// (user, product) row has its quantity incremented instead of being
// duplicated. Returns the id of the affected row.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) (string, error) {
	if userID == "" || productID == "" {
		return "", NewValidationError("user_id and product_id are required")
	}
	if quantity <= 0 {
		return "", NewValidationError("quantity must be a positive integer")
	}

	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return "", classify(err, "product not found")
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.AddItem(ctx, item); err != nil {
		return "", classify(err, "cart item not found")
	}
	return item.ID, nil
}

// UpdateQuantity sets the quantity of a cart item.
func (s *CartService) UpdateQuantity(ctx context.Context, cartItemID string, quantity int) error {
	if cartItemID == "" {
		return NewValidationError("cart item id is required")
	}
	if quantity <= 0 {
		return NewValidationError("quantity must be a positive integer")
	}
	if err := s.cartRepo.UpdateQuantity(ctx, cartItemID, quantity); err != nil {
		return classify(err, "cart item not found")
	}
	return nil
}

// RemoveItem deletes a cart item. Removing an absent item is an error.
func (s *CartService) RemoveItem(ctx context.Context, cartItemID string) error {
	if cartItemID == "" {
		return NewValidationError("cart item id is required")
	}
	if err := s.cartRepo.Remove(ctx, cartItemID); err != nil {
		return classify(err, "cart item not found")
	}
	return nil
}

// Clear empties the user's cart. Clearing an already-empty cart succeeds.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return NewValidationError("user id is required")
	}
	if err := s.cartRepo.ClearForUser(ctx, userID); err != nil {
		return classify(err, "cart not found")
	}
	return nil
}
