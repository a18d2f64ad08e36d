package models

import (
	"github.com/google/uuid"
)

// TierPaid marks a verified/certified partner. Paid-tier vendors sort before
// all others in listings regardless of activity count.
const TierPaid = "paid"

// Contractor is a vendor that has performed work at a building. EventCount is
// always derived from the event list in scope, never stored.
type Contractor struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	License     string    `json:"license,omitempty"`
	Tier        string    `json:"tier,omitempty"`
	EventCount  int       `json:"event_count"`
}

// PropertyManager is a management company with units under management at a
// building.
type PropertyManager struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Tier        string    `json:"tier,omitempty"`
	UnitCount   int       `json:"unit_count"`
}

// AOAOOrganization is the association of apartment owners governing a
// building. At most one is in scope per building.
type AOAOOrganization struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Tier        string    `json:"tier,omitempty"`
}
