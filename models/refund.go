package models

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies what an expense was for
type Category string

const (
	CategoryFood          Category = "food"
	CategoryOthers        Category = "others"
	CategoryServices      Category = "services"
	CategoryTransport     Category = "transport"
	CategoryAccommodation Category = "accommodation"
)

// Categories lists every accepted category
var Categories = []Category{
	CategoryFood,
	CategoryOthers,
	CategoryServices,
	CategoryTransport,
	CategoryAccommodation,
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Refund represents a reimbursement request backed by an uploaded receipt
type Refund struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	Category Category  `json:"category"`
	Amount   float64   `json:"amount"`

	// FileName is the durable receipt name returned by the upload endpoint
	FileName string `json:"fileName"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `json:"user,omitempty"`
}
