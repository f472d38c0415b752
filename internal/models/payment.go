package models

import "time"

// PaymentStatus is the settlement state of a payment attempt.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// ValidPaymentStatus reports whether s is one of the known payment statuses.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return true
	}
	return false
}

// Payment records one settlement attempt against an order. The current
// scope allows at most one payment per order; reads return the latest.
type Payment struct {
	ID        string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string        `json:"order_id" gorm:"type:varchar(36);index;not null"`
	Amount    float64       `json:"amount" gorm:"not null"`
	Method    string        `json:"method" gorm:"type:varchar(50);not null"`
	Status    PaymentStatus `json:"status" gorm:"type:varchar(20);default:'completed'"`
	CreatedAt time.Time     `json:"created_at"`
}

func (Payment) TableName() string { return "payment" }
