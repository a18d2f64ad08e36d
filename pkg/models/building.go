// Package models contains domain types for ainareports.
package models

import (
	"github.com/google/uuid"
)

// Building represents a residential building or condo project.
// Slug is the externally-visible stable identifier; lookups by slug are
// case-insensitive.
type Building struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Zip       string    `json:"zip"`
	YearBuilt int       `json:"year_built"`
	Zoning    string    `json:"zoning"`
	Floors    int       `json:"floors"`
	UnitCount int       `json:"unit_count"`
	TMK       string    `json:"tmk"` // tax map key
}

// Unit represents a single unit within a building. UnitNumber is
// human-assigned and unique only within its building.
type Unit struct {
	ID           uuid.UUID `json:"id"`
	BuildingID   uuid.UUID `json:"building_id"`
	UnitNumber   string    `json:"unit_number"`
	OwnerName    string    `json:"owner_name"`
	Floor        int       `json:"floor"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    float64   `json:"bathrooms"`
	SquareFeet   int       `json:"square_feet"`
	ParcelNumber string    `json:"parcel_number"`
}
