//go:build integration

package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/btcbarkeep/ainareports/pkg/apperrors"
	"github.com/btcbarkeep/ainareports/pkg/testhelpers"
)

// buildingTestContext holds test dependencies for building and unit
// repository tests.
type buildingTestContext struct {
	t          *testing.T
	testDB     *testhelpers.TestDB
	buildings  BuildingRepository
	units      UnitRepository
	events     EventRepository
	buildingID uuid.UUID
	unitID     uuid.UUID
}

func setupBuildingTest(t *testing.T) *buildingTestContext {
	testDB := testhelpers.GetTestDB(t)
	tc := &buildingTestContext{
		t:          t,
		testDB:     testDB,
		buildings:  NewBuildingRepository(testDB.DB),
		units:      NewUnitRepository(testDB.DB),
		events:     NewEventRepository(testDB.DB),
		buildingID: uuid.MustParse("00000000-0000-0000-0000-000000000010"),
		unitID:     uuid.MustParse("00000000-0000-0000-0000-000000000011"),
	}
	tc.seed()
	return tc
}

func (tc *buildingTestContext) seed() {
	tc.t.Helper()
	ctx := context.Background()

	_, err := tc.testDB.DB.Exec(ctx, `
		INSERT INTO buildings (id, slug, name, address, city, state, zip, unit_count)
		VALUES ($1, 'ala-moana-towers', 'Ala Moana Towers', '1234 Ala Moana Blvd', 'Honolulu', 'HI', '96815', 250)
		ON CONFLICT (id) DO NOTHING
	`, tc.buildingID)
	if err != nil {
		tc.t.Fatalf("failed to seed building: %v", err)
	}

	_, err = tc.testDB.DB.Exec(ctx, `
		INSERT INTO units (id, building_id, unit_number, owner_name, floor)
		VALUES ($1, $2, '1201', 'Kahale Trust', 12)
		ON CONFLICT (id) DO NOTHING
	`, tc.unitID, tc.buildingID)
	if err != nil {
		tc.t.Fatalf("failed to seed unit: %v", err)
	}

	_, err = tc.testDB.DB.Exec(ctx, `
		INSERT INTO events (building_id, unit_ids, severity, event_type, description)
		VALUES ($1, ARRAY[$2]::uuid[], 'high', 'leak', 'Supply line failure')
	`, tc.buildingID, tc.unitID)
	if err != nil {
		tc.t.Fatalf("failed to seed event: %v", err)
	}
}

func (tc *buildingTestContext) cleanup() {
	tc.t.Helper()
	ctx := context.Background()
	for _, stmt := range []string{
		"DELETE FROM events WHERE building_id = $1",
		"DELETE FROM units WHERE building_id = $1",
		"DELETE FROM buildings WHERE id = $1",
	} {
		if _, err := tc.testDB.DB.Exec(ctx, stmt, tc.buildingID); err != nil {
			tc.t.Fatalf("cleanup failed: %v", err)
		}
	}
}

func TestBuildingRepository_GetBySlug(t *testing.T) {
	tc := setupBuildingTest(t)
	defer tc.cleanup()
	ctx := context.Background()

	building, err := tc.buildings.GetBySlug(ctx, "ALA-MOANA-TOWERS")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if building.ID != tc.buildingID {
		t.Errorf("expected building %s, got %s", tc.buildingID, building.ID)
	}
	if building.Name != "Ala Moana Towers" {
		t.Errorf("expected name 'Ala Moana Towers', got %q", building.Name)
	}

	_, err = tc.buildings.GetBySlug(ctx, "no-such-building")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBuildingRepository_SearchByWords(t *testing.T) {
	tc := setupBuildingTest(t)
	defer tc.cleanup()
	ctx := context.Background()

	buildings, err := tc.buildings.SearchByWords(ctx, []string{"moana"})
	if err != nil {
		t.Fatalf("SearchByWords failed: %v", err)
	}
	found := false
	for _, b := range buildings {
		if b.ID == tc.buildingID {
			found = true
		}
	}
	if !found {
		t.Error("expected seeded building in search results")
	}
}

func TestUnitRepository_GetByBuildingAndNumber(t *testing.T) {
	tc := setupBuildingTest(t)
	defer tc.cleanup()
	ctx := context.Background()

	unit, err := tc.units.GetByBuildingAndNumber(ctx, tc.buildingID, "1201")
	if err != nil {
		t.Fatalf("GetByBuildingAndNumber failed: %v", err)
	}
	if unit.OwnerName != "Kahale Trust" {
		t.Errorf("expected owner 'Kahale Trust', got %q", unit.OwnerName)
	}

	_, err = tc.units.GetByBuildingAndNumber(ctx, tc.buildingID, "9999")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestEventRepository_ListByUnit(t *testing.T) {
	tc := setupBuildingTest(t)
	defer tc.cleanup()
	ctx := context.Background()

	events, err := tc.events.ListByUnit(ctx, tc.unitID, 10)
	if err != nil {
		t.Fatalf("ListByUnit failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Severity != "high" {
		t.Errorf("expected severity 'high', got %q", events[0].Severity)
	}
}
