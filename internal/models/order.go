package models

import (
	"time"

	"github.com/gocql/gocql"
)

const (
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID             gocql.UUID  `json:"id" db:"order_id"`
	UserID         string      `json:"user_id" db:"user_id"`
	Email          string      `json:"email" db:"email"`
	Status         string      `json:"status" db:"status"`
	Items          []OrderItem `json:"items"`
	ItemsTotal     float64     `json:"items_total" db:"items_total"`
	ShippingName   string      `json:"shipping_name" db:"shipping_name"`
	ShippingAmount float64     `json:"shipping_amount" db:"shipping_amount"`
	Discount       float64     `json:"discount" db:"discount"`
	AmountTotal    float64     `json:"amount_total" db:"amount_total"`
	Currency       string      `json:"currency" db:"currency"`
	AddressID      string      `json:"address_id" db:"address_id"`
	StripeID       string      `json:"stripe_id" db:"stripe_id"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at" db:"updated_at"`
}

type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}
