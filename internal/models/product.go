package models

import "time"

// Category groups products in the catalog.
type Category struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// TableName keeps the legacy singular table name.
func (Category) TableName() string { return "category" }

// Product represents a catalog entry. The cart and order workflows treat
// it as read-only; stock is informational only.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" gorm:"type:varchar(150)" validate:"required,min=3,max=150"`
	Description string    `json:"description" validate:"omitempty,max=500"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	Image       string    `json:"image" gorm:"type:varchar(255)"`
	Stock       int       `json:"stock" validate:"gte=0"`
	CategoryID  string    `json:"category_id" gorm:"type:varchar(36)"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Product) TableName() string { return "product" }
