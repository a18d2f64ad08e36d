package models

import (
	"time"

	"github.com/google/uuid"
)

// Severity constants for event severity levels.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Event represents something that happened at a building: a repair, an
// inspection, a permit filing. Events may reference zero or more units by id;
// the association is an id list, not a foreign key, so a listed unit may no
// longer exist.
type Event struct {
	ID           uuid.UUID   `json:"id"`
	BuildingID   uuid.UUID   `json:"building_id"`
	UnitIDs      []uuid.UUID `json:"unit_ids,omitempty"`
	OccurredAt   time.Time   `json:"occurred_at"`
	Severity     string      `json:"severity,omitempty"` // high, medium, low, or empty when unset
	EventType    string      `json:"event_type"`
	Description  string      `json:"description,omitempty"`
	ContractorID *uuid.UUID  `json:"contractor_id,omitempty"`
	DocumentID   *uuid.UUID  `json:"document_id,omitempty"`
}

// Document represents a stored file attached to a building, and optionally to
// specific units and/or the event that produced it. Exactly one of FileURL or
// StorageKey locates the content: FileURL is a direct link, StorageKey
// requires a proxied download.
type Document struct {
	ID          uuid.UUID   `json:"id"`
	BuildingID  uuid.UUID   `json:"building_id"`
	UnitIDs     []uuid.UUID `json:"unit_ids,omitempty"`
	EventID     *uuid.UUID  `json:"event_id,omitempty"`
	Category    string      `json:"category"`
	Subcategory string      `json:"subcategory,omitempty"`
	Title       string      `json:"title"`
	FileURL     string      `json:"file_url,omitempty"`
	StorageKey  string      `json:"storage_key,omitempty"`
	UploadedBy  *uuid.UUID  `json:"uploaded_by,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}
