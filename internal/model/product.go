package model

import (
	"time"

	"crunchy-cruise/internal/money"

	"github.com/google/uuid"
)

// Product represents a snack in the catalogue.
type Product struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	PriceDisplay string    `json:"price" db:"price"`
	Image        string    `json:"image" db:"image"`
	Available    bool      `json:"available" db:"available"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// UnitPrice returns the amount encoded in the display price.
func (p Product) UnitPrice() int64 {
	return money.ParsePrice(p.PriceDisplay)
}

// ProductRequest is the admin payload for creating or updating a product.
// Catalogue seed files use the same shape, one record per line.
type ProductRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"max=2000"`
	Price       string `json:"price" validate:"required,containsany=0123456789"`
	Image       string `json:"image" validate:"max=500"`
	Available   *bool  `json:"available,omitempty"`
}

// IsAvailable reports the requested availability, defaulting to true.
func (r ProductRequest) IsAvailable() bool {
	if r.Available == nil {
		return true
	}
	return *r.Available
}
