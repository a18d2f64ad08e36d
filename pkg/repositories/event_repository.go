package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/btcbarkeep/ainareports/pkg/database"
	"github.com/btcbarkeep/ainareports/pkg/models"
)

// EventRepository defines the interface for event lookups.
type EventRepository interface {
	// ListByBuilding returns a building's events, newest first, limited.
	ListByBuilding(ctx context.Context, buildingID uuid.UUID, limit int) ([]*models.Event, error)
	// ListByUnit returns events referencing a unit, newest first, limited.
	ListByUnit(ctx context.Context, unitID uuid.UUID, limit int) ([]*models.Event, error)
}

// eventRepository implements EventRepository using PostgreSQL.
type eventRepository struct {
	db *database.DB
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *database.DB) EventRepository {
	return &eventRepository{db: db}
}

// Unit-id lists and the optional references come back as text so scanning
// stays independent of driver-side uuid array support.
const eventColumns = `id, building_id, COALESCE(unit_ids, '{}')::text[],
	occurred_at, COALESCE(severity, ''), COALESCE(event_type, ''),
	COALESCE(description, ''), contractor_id::text, document_id::text`

func (r *eventRepository) ListByBuilding(ctx context.Context, buildingID uuid.UUID, limit int) ([]*models.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE building_id = $1
		ORDER BY occurred_at DESC
		LIMIT $2`

	return r.queryEvents(ctx, query, buildingID, limit)
}

func (r *eventRepository) ListByUnit(ctx context.Context, unitID uuid.UUID, limit int) ([]*models.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE $1 = ANY(unit_ids)
		ORDER BY occurred_at DESC
		LIMIT $2`

	return r.queryEvents(ctx, query, unitID, limit)
}

func (r *eventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]*models.Event, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	return events, nil
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	var unitIDs []string
	var contractorID, documentID *string

	err := row.Scan(
		&e.ID, &e.BuildingID, &unitIDs, &e.OccurredAt,
		&e.Severity, &e.EventType, &e.Description,
		&contractorID, &documentID,
	)
	if err != nil {
		return nil, err
	}

	e.UnitIDs = parseUUIDs(unitIDs)
	e.ContractorID = parseUUIDPtr(contractorID)
	e.DocumentID = parseUUIDPtr(documentID)
	return &e, nil
}

// parseUUIDs parses a text uuid list, dropping malformed entries.
func parseUUIDs(values []string) []uuid.UUID {
	if len(values) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := uuid.Parse(v)
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

func parseUUIDPtr(value *string) *uuid.UUID {
	if value == nil {
		return nil
	}
	id, err := uuid.Parse(*value)
	if err != nil {
		return nil
	}
	return &id
}

// Ensure eventRepository implements EventRepository at compile time.
var _ EventRepository = (*eventRepository)(nil)
