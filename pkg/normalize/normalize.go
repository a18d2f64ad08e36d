// Package normalize maps heterogeneous upstream records into the canonical
// shapes in pkg/models. The relational store and the reporting API name the
// same fields differently (company_name vs name, zip vs zip_code), and the
// reporting API is duck-typed, so every field goes through flexible coercion.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/btcbarkeep/ainareports/pkg/jsonutil"
	"github.com/btcbarkeep/ainareports/pkg/models"
)

// EntityType tags a raw record with the canonical shape it should map to.
type EntityType string

const (
	EntityBuilding         EntityType = "building"
	EntityUnit             EntityType = "unit"
	EntityEvent            EntityType = "event"
	EntityDocument         EntityType = "document"
	EntityContractor       EntityType = "contractor"
	EntityPropertyManager  EntityType = "property_manager"
	EntityAOAOOrganization EntityType = "aoao_organization"
)

// RawRecord is a decoded JSON object from either upstream source.
type RawRecord map[string]any

// UnrecognizedEntityError indicates a record was tagged with an entity type
// this package does not know. It signals an upstream schema change and must
// not be swallowed.
type UnrecognizedEntityError struct {
	EntityType EntityType
}

func (e *UnrecognizedEntityError) Error() string {
	return fmt.Sprintf("unrecognized entity type %q", string(e.EntityType))
}

// Fallback display names for vendor entities with no usable name field.
const (
	fallbackContractorName      = "Contractor"
	fallbackPropertyManagerName = "Property Manager"
	fallbackAOAOName            = "AOAO"
)

// Normalize dispatches a raw record to the mapper for its entity type.
// Unknown types return an *UnrecognizedEntityError.
func Normalize(entityType EntityType, raw RawRecord) (any, error) {
	switch entityType {
	case EntityBuilding:
		return Building(raw), nil
	case EntityUnit:
		return Unit(raw), nil
	case EntityEvent:
		return Event(raw), nil
	case EntityDocument:
		return Document(raw), nil
	case EntityContractor:
		return Contractor(raw), nil
	case EntityPropertyManager:
		return PropertyManager(raw), nil
	case EntityAOAOOrganization:
		return AOAOOrganization(raw), nil
	default:
		return nil, &UnrecognizedEntityError{EntityType: entityType}
	}
}

// Building maps a raw building record to its canonical shape.
func Building(raw RawRecord) *models.Building {
	return &models.Building{
		ID:        uuidField(raw, "id"),
		Slug:      stringField(raw, "slug"),
		Name:      firstNonEmpty(raw, "name", "building_name"),
		Address:   firstNonEmpty(raw, "address", "street_address"),
		City:      stringField(raw, "city"),
		State:     stringField(raw, "state"),
		Zip:       firstNonEmpty(raw, "zip", "zip_code"),
		YearBuilt: intField(raw, "year_built"),
		Zoning:    stringField(raw, "zoning"),
		Floors:    firstInt(raw, "floors", "floor_count"),
		UnitCount: firstInt(raw, "unit_count", "units"),
		TMK:       stringField(raw, "tmk"),
	}
}

// Unit maps a raw unit record to its canonical shape.
func Unit(raw RawRecord) *models.Unit {
	return &models.Unit{
		ID:           uuidField(raw, "id"),
		BuildingID:   uuidField(raw, "building_id"),
		UnitNumber:   firstNonEmpty(raw, "unit_number", "number"),
		OwnerName:    firstNonEmpty(raw, "owner_name", "owner"),
		Floor:        intField(raw, "floor"),
		Bedrooms:     firstInt(raw, "bedrooms", "beds"),
		Bathrooms:    floatField(raw, "bathrooms"),
		SquareFeet:   firstInt(raw, "square_feet", "sqft"),
		ParcelNumber: firstNonEmpty(raw, "parcel_number", "parcel"),
	}
}

// Event maps a raw event record to its canonical shape. Severity values
// outside the known set collapse to the unset sentinel (empty string).
func Event(raw RawRecord) *models.Event {
	return &models.Event{
		ID:           uuidField(raw, "id"),
		BuildingID:   uuidField(raw, "building_id"),
		UnitIDs:      uuidListField(raw, "unit_ids", "units"),
		OccurredAt:   timeField(raw, "occurred_at", "date"),
		Severity:     severity(firstNonEmpty(raw, "severity")),
		EventType:    firstNonEmpty(raw, "event_type", "type"),
		Description:  stringField(raw, "description"),
		ContractorID: uuidPtrField(raw, "contractor_id", "contractor"),
		DocumentID:   uuidPtrField(raw, "document_id", "document"),
	}
}

// Document maps a raw document record to its canonical shape.
func Document(raw RawRecord) *models.Document {
	return &models.Document{
		ID:          uuidField(raw, "id"),
		BuildingID:  uuidField(raw, "building_id"),
		UnitIDs:     uuidListField(raw, "unit_ids", "units"),
		EventID:     uuidPtrField(raw, "event_id"),
		Category:    stringField(raw, "category"),
		Subcategory: stringField(raw, "subcategory"),
		Title:       firstNonEmpty(raw, "title", "name"),
		FileURL:     firstNonEmpty(raw, "file_url", "url"),
		StorageKey:  firstNonEmpty(raw, "storage_key", "key"),
		UploadedBy:  uuidPtrField(raw, "uploaded_by", "uploader_id"),
		CreatedAt:   timeField(raw, "created_at"),
	}
}

// Contractor maps a raw contractor record to its canonical shape. Name falls
// back to the literal "Contractor" when neither company_name nor name is
// usable; phone takes the first present of contact_phone and phone (never
// merged); count falls back to 0.
func Contractor(raw RawRecord) *models.Contractor {
	name := firstNonEmpty(raw, "company_name", "name")
	if name == "" {
		name = fallbackContractorName
	}
	return &models.Contractor{
		ID:          uuidField(raw, "id"),
		Name:        name,
		ContactName: firstNonEmpty(raw, "contact_name", "contact"),
		Phone:       firstPresent(raw, "contact_phone", "phone"),
		Email:       firstPresent(raw, "contact_email", "email"),
		License:     firstNonEmpty(raw, "license", "license_number"),
		Tier:        firstNonEmpty(raw, "tier", "subscription_tier"),
		EventCount:  firstInt(raw, "event_count", "count"),
	}
}

// PropertyManager maps a raw property-management record to its canonical
// shape, with the same name-resolution policy as Contractor.
func PropertyManager(raw RawRecord) *models.PropertyManager {
	name := firstNonEmpty(raw, "company_name", "name")
	if name == "" {
		name = fallbackPropertyManagerName
	}
	return &models.PropertyManager{
		ID:          uuidField(raw, "id"),
		Name:        name,
		ContactName: firstNonEmpty(raw, "contact_name", "contact"),
		Phone:       firstPresent(raw, "contact_phone", "phone"),
		Email:       firstPresent(raw, "contact_email", "email"),
		Tier:        firstNonEmpty(raw, "tier", "subscription_tier"),
		UnitCount:   firstInt(raw, "unit_count", "units_managed"),
	}
}

// AOAOOrganization maps a raw AOAO governance record to its canonical shape.
func AOAOOrganization(raw RawRecord) *models.AOAOOrganization {
	name := firstNonEmpty(raw, "name", "organization_name")
	if name == "" {
		name = fallbackAOAOName
	}
	return &models.AOAOOrganization{
		ID:          uuidField(raw, "id"),
		Name:        name,
		ContactName: firstNonEmpty(raw, "contact_name", "contact"),
		Phone:       firstPresent(raw, "contact_phone", "phone"),
		Email:       firstPresent(raw, "contact_email", "email"),
		Tier:        firstNonEmpty(raw, "tier", "subscription_tier"),
	}
}

// severity collapses unknown severity values to the unset sentinel.
func severity(v string) string {
	switch strings.ToLower(v) {
	case models.SeverityHigh, models.SeverityMedium, models.SeverityLow:
		return strings.ToLower(v)
	default:
		return ""
	}
}

// stringField coerces the named field to a string, empty when absent.
func stringField(raw RawRecord, key string) string {
	v, ok := raw[key]
	if !ok {
		return ""
	}
	return jsonutil.StringValue(v)
}

// firstNonEmpty returns the first key whose coerced value is a non-empty
// string.
func firstNonEmpty(raw RawRecord, keys ...string) string {
	for _, key := range keys {
		if s := stringField(raw, key); s != "" {
			return s
		}
	}
	return ""
}

// firstPresent returns the value of the first key present with a non-null
// value, even if that value coerces to empty. Later aliases are never
// consulted once a more specific field is present.
func firstPresent(raw RawRecord, keys ...string) string {
	for _, key := range keys {
		if v, ok := raw[key]; ok && v != nil {
			return jsonutil.StringValue(v)
		}
	}
	return ""
}

func intField(raw RawRecord, key string) int {
	v, ok := raw[key]
	if !ok {
		return 0
	}
	return jsonutil.IntValue(v)
}

func firstInt(raw RawRecord, keys ...string) int {
	for _, key := range keys {
		if v, ok := raw[key]; ok && v != nil {
			return jsonutil.IntValue(v)
		}
	}
	return 0
}

func floatField(raw RawRecord, key string) float64 {
	v, ok := raw[key]
	if !ok {
		return 0
	}
	return jsonutil.FloatValue(v)
}

// uuidField parses the named field as a UUID, returning uuid.Nil on any
// failure. Upstream ids are strings; malformed ids must not fail the page.
func uuidField(raw RawRecord, key string) uuid.UUID {
	id, err := uuid.Parse(stringField(raw, key))
	if err != nil {
		return uuid.Nil
	}
	return id
}

func uuidPtrField(raw RawRecord, keys ...string) *uuid.UUID {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		id, err := uuid.Parse(jsonutil.StringValue(v))
		if err != nil {
			continue
		}
		return &id
	}
	return nil
}

// uuidListField parses an id-list field, dropping malformed entries.
func uuidListField(raw RawRecord, keys ...string) []uuid.UUID {
	for _, key := range keys {
		list, ok := raw[key].([]any)
		if !ok {
			continue
		}
		ids := make([]uuid.UUID, 0, len(list))
		for _, item := range list {
			id, err := uuid.Parse(jsonutil.StringValue(item))
			if err != nil {
				continue
			}
			ids = append(ids, id)
		}
		if len(ids) == 0 {
			return nil
		}
		return ids
	}
	return nil
}

// timeField parses the named field as a timestamp, trying RFC 3339 and then
// a bare date. The zero time marks an absent or unparsable value.
func timeField(raw RawRecord, keys ...string) time.Time {
	for _, key := range keys {
		s := stringField(raw, key)
		if s == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return t
		}
	}
	return time.Time{}
}
