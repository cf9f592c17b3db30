package model

import "time"

// CropType is a price-per-rai lookup row for a crop (rice, sugarcane, ...).
// Only active rows participate in quoting and in the chatbot price card.
type CropType struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	PricePerRai float64   `json:"price_per_rai"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SprayType is a price-per-rai lookup row for a spray programme
// (herbicide, fertilizer, hormone, ...).
type SprayType struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	PricePerRai float64   `json:"price_per_rai"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
