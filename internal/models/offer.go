package models

import (
	"time"

	"github.com/gocql/gocql"
)

const (
	OfferStatusPending   = "pending"
	OfferStatusAccepted  = "accepted"
	OfferStatusRejected  = "rejected"
	OfferStatusCountered = "countered"
	OfferStatusExpired   = "expired"
)

// Offer is one round of the "make an offer" negotiation on a product.
type Offer struct {
	ID            gocql.UUID `json:"id" db:"offer_id"`
	ProductID     gocql.UUID `json:"product_id" db:"product_id"`
	ProductName   string     `json:"product_name" db:"product_name"`
	UserID        string     `json:"user_id" db:"user_id"`
	UserEmail     string     `json:"user_email" db:"user_email"`
	Amount        float64    `json:"amount" db:"amount"`
	ListPrice     float64    `json:"list_price" db:"list_price"`
	Message       string     `json:"message,omitempty" db:"message"`
	Status        string     `json:"status" db:"status"`
	CounterAmount float64    `json:"counter_amount,omitempty" db:"counter_amount"`
	DecidedBy     string     `json:"decided_by,omitempty" db:"decided_by"`
	ExpiresAt     time.Time  `json:"expires_at" db:"expires_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}
