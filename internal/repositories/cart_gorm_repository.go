package repositories

import (
	"context"
	"fmt"
	"time"

	"kasir/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

// ListByUser returns the user's cart items joined with the product catalog.
func (r *GORMCartRepository) ListByUser(ctx context.Context, userID string) ([]models.CartLine, error) {
	lines := []models.CartLine{}
	err := r.db.WithContext(ctx).
		Table("cart_items").
		Select("cart_items.id, cart_items.user_id, cart_items.product_id, cart_items.quantity, product.name, product.price").
		Joins("JOIN product ON product.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.id asc").
		Scan(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cart for user %s: %w", userID, err)
	}
	return lines, nil
}

// AddItem performs an atomic insert-or-increment on the (user_id,
// product_id) unique index. Two concurrent adds for the same pair both
// land on the same row; quantities accumulate instead of racing.
func (r *GORMCartRepository) AddItem(ctx context.Context, item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.AddedAt = time.Now()

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
		}),
	}).Create(item).Error
	if err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	// On conflict the insert was folded into the existing row; report
	// that row's id to the caller.
	var stored models.CartItem
	err = r.db.WithContext(ctx).
		First(&stored, "user_id = ? AND product_id = ?", item.UserID, item.ProductID).Error
	if err != nil {
		return fmt.Errorf("failed to read back cart item: %w", err)
	}
	*item = stored
	return nil
}

// UpdateQuantity sets the quantity of a cart item.
func (r *GORMCartRepository) UpdateQuantity(ctx context.Context, cartItemID string, quantity int) error {
	res := r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ?", cartItemID).
		Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("failed to update cart item %s: %w", cartItemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Remove deletes a single cart item.
func (r *GORMCartRepository) Remove(ctx context.Context, cartItemID string) error {
	res := r.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", cartItemID)
	if res.Error != nil {
		return fmt.Errorf("failed to remove cart item %s: %w", cartItemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearForUser deletes all cart items for a user. Zero rows is not an error.
func (r *GORMCartRepository) ClearForUser(ctx context.Context, userID string) error {
	if err := r.db.WithContext(ctx).Delete(&models.CartItem{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to clear cart for user %s: %w", userID, err)
	}
	return nil
}

// ItemsForCheckout reads the user's cart rows inside the checkout
// transaction. On Postgres the rows are locked FOR UPDATE so concurrent
// checkouts for the same user serialize; SQLite has a single writer and
// rejects the clause, so it is skipped there.
func (r *GORMCartRepository) ItemsForCheckout(ctx context.Context, userID string) ([]models.CartItem, error) {
	tx := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	items := []models.CartItem{}
	if err := tx.Where("user_id = ?", userID).Order("id asc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to read cart for checkout: %w", err)
	}
	return items, nil
}
