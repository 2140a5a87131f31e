package models

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`     // "customer" or "admin"
	Provider     string    `json:"provider"` // "local", "google", "facebook"
	CreatedAt    time.Time `json:"created_at"`
}
