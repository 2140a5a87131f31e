package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Product struct {
	ID                gocql.UUID `json:"id" db:"product_id"`
	Name              string     `json:"name" db:"name"`
	Description       string     `json:"description" db:"description"`
	Brand             string     `json:"brand" db:"brand"`
	AgeRange          string     `json:"age_range" db:"age_range"` // e.g. "3-5", "8+"
	Category          string     `json:"category" db:"category"`
	Price             float64    `json:"price" db:"price"`
	Stock             int        `json:"stock" db:"stock"`
	LowStockThreshold int        `json:"low_stock_threshold" db:"low_stock_threshold"`
	SKU               string     `json:"sku" db:"sku"`
	WeightKg          float64    `json:"weight_kg" db:"weight_kg"`
	ImageKeys         []string   `json:"image_keys" db:"image_keys"` // MinIO object keys
	Tags              []string   `json:"tags" db:"tags"`
	IsActive          bool       `json:"is_active" db:"is_active"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}
