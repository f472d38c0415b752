package repositories

import (
	"context"

	"kasir/internal/models"
)

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	// ListByUser returns the user's cart joined with product name and
	// current price, ordered by row id. An unknown user yields an empty
	// slice, not an error.
	ListByUser(ctx context.Context, userID string) ([]models.CartLine, error)
	// AddItem inserts the item or, if a row for the same (user, product)
	// pair exists, increments its quantity — atomically, in a single
	// statement. On return item.ID is the id of the affected row.
	AddItem(ctx context.Context, item *models.CartItem) error
	UpdateQuantity(ctx context.Context, cartItemID string, quantity int) error
	Remove(ctx context.Context, cartItemID string) error
	ClearForUser(ctx context.Context, userID string) error
	// ItemsForCheckout reads the user's cart rows for the checkout
	// transaction, locking them against concurrent checkouts where the
	// store supports row locks.
	ItemsForCheckout(ctx context.Context, userID string) ([]models.CartItem, error)
}
