package models

import "time"

// CartItem is one pending line selection in a user's cart. The composite
// unique index makes the add-or-increment upsert a single statement, so
// a (user, product) pair can never appear twice.
type CartItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_product" validate:"required"`
	ProductID string    `json:"product_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_product" validate:"required"`
	Quantity  int       `json:"quantity" gorm:"not null" validate:"required,gt=0"`
	AddedAt   time.Time `json:"added_at"`
}

func (CartItem) TableName() string { return "cart_items" }

// CartLine is a cart item joined with its product's name and current
// catalog price, as listed back to the client.
type CartLine struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}
