package models

import "github.com/gocql/gocql"

type Address struct {
	ID         gocql.UUID `json:"id" db:"address_id"`
	UserID     string     `json:"user_id" db:"user_id"`
	Name       string     `json:"name" db:"name"`
	Street1    string     `json:"street1" db:"street1"`
	Street2    string     `json:"street2,omitempty" db:"street2"`
	City       string     `json:"city" db:"city"`
	State      string     `json:"state,omitempty" db:"state"`
	PostalCode string     `json:"postal_code" db:"postal_code"`
	Country    string     `json:"country" db:"country"`
	Phone      string     `json:"phone,omitempty" db:"phone"`
	IsDefault  bool       `json:"is_default" db:"is_default"`
}
