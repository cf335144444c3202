package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending" // awaiting the payment webhook
	OrderStatusPaid    OrderStatus = "paid"    // terminal
)

type DeliveryPayment string

const (
	DeliveryPaymentBefore DeliveryPayment = "before"
	DeliveryPaymentAfter  DeliveryPayment = "after"
)

type Order struct {
	ID              string          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          string          `gorm:"not null;index" json:"user_id"`
	AmountCents     int64           `gorm:"not null" json:"amount_cents"`
	Currency        string          `gorm:"type:VARCHAR(3);default:'GHS'" json:"currency"`
	Status          OrderStatus     `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	Provider        string          `gorm:"type:VARCHAR(20);default:'paystack'" json:"provider"`
	Phone           string          `json:"phone"`
	City            string          `json:"city"`
	Address         string          `json:"address"`
	DeliveryPayment DeliveryPayment `gorm:"type:VARCHAR(10);default:'before'" json:"delivery_payment"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderItem is an immutable snapshot of a product at order time, decoupled
// from later product edits.
type OrderItem struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	OrderID        string `gorm:"type:uuid;index" json:"order_id"`
	ProductID      string `gorm:"type:uuid" json:"product_id"`
	Title          string `json:"title"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
	LineTotalCents int64  `json:"line_total_cents"`
}
