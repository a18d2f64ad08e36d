package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/btcbarkeep/ainareports/pkg/apperrors"
	"github.com/btcbarkeep/ainareports/pkg/database"
	"github.com/btcbarkeep/ainareports/pkg/models"
)

// UnitRepository defines the interface for unit lookups.
type UnitRepository interface {
	// GetByBuildingAndNumber finds a unit by building and unit number,
	// case-insensitively on the unit number.
	GetByBuildingAndNumber(ctx context.Context, buildingID uuid.UUID, unitNumber string) (*models.Unit, error)
	// ListByBuilding returns all units in a building in natural unit-number
	// order.
	ListByBuilding(ctx context.Context, buildingID uuid.UUID) ([]*models.Unit, error)
	// ListByBuildings returns units belonging to any of the given buildings.
	ListByBuildings(ctx context.Context, buildingIDs []uuid.UUID) ([]*models.Unit, error)
	// SearchByNumber finds units whose unit number contains the query as a
	// case-insensitive substring.
	SearchByNumber(ctx context.Context, query string) ([]*models.Unit, error)
	// SearchByBuildingText finds units whose building's name, address, city,
	// or state contains the query (the relational join pass of global search).
	SearchByBuildingText(ctx context.Context, query string) ([]*models.Unit, error)
}

// unitRepository implements UnitRepository using PostgreSQL.
type unitRepository struct {
	db *database.DB
}

// NewUnitRepository creates a new unit repository.
func NewUnitRepository(db *database.DB) UnitRepository {
	return &unitRepository{db: db}
}

const unitColumns = `id, building_id, unit_number, COALESCE(owner_name, ''),
	COALESCE(floor, 0), COALESCE(bedrooms, 0), COALESCE(bathrooms, 0),
	COALESCE(square_feet, 0), COALESCE(parcel_number, '')`

func (r *unitRepository) GetByBuildingAndNumber(ctx context.Context, buildingID uuid.UUID, unitNumber string) (*models.Unit, error) {
	query := `
		SELECT ` + unitColumns + `
		FROM units
		WHERE building_id = $1 AND LOWER(unit_number) = LOWER($2)`

	unit, err := scanUnit(r.db.QueryRow(ctx, query, buildingID, unitNumber))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}
	return unit, nil
}

func (r *unitRepository) ListByBuilding(ctx context.Context, buildingID uuid.UUID) ([]*models.Unit, error) {
	query := `
		SELECT ` + unitColumns + `
		FROM units
		WHERE building_id = $1
		ORDER BY unit_number`

	return r.queryUnits(ctx, query, buildingID)
}

func (r *unitRepository) ListByBuildings(ctx context.Context, buildingIDs []uuid.UUID) ([]*models.Unit, error) {
	if len(buildingIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + unitColumns + `
		FROM units
		WHERE building_id = ANY($1)
		ORDER BY unit_number`

	return r.queryUnits(ctx, query, buildingIDs)
}

func (r *unitRepository) SearchByNumber(ctx context.Context, query string) ([]*models.Unit, error) {
	sql := `
		SELECT ` + unitColumns + `
		FROM units
		WHERE unit_number ILIKE $1
		ORDER BY unit_number`

	return r.queryUnits(ctx, sql, "%"+escapeLike(query)+"%")
}

func (r *unitRepository) SearchByBuildingText(ctx context.Context, query string) ([]*models.Unit, error) {
	sql := `
		SELECT ` + unitPrefixedColumns("u") + `
		FROM units u
		JOIN buildings b ON b.id = u.building_id
		WHERE concat_ws(' ', b.name, b.address, b.city, b.state) ILIKE $1
		ORDER BY u.unit_number`

	return r.queryUnits(ctx, sql, "%"+escapeLike(query)+"%")
}

func (r *unitRepository) queryUnits(ctx context.Context, query string, args ...any) ([]*models.Unit, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query units: %w", err)
	}
	defer rows.Close()

	var units []*models.Unit
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		units = append(units, unit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read units: %w", err)
	}
	return units, nil
}

func scanUnit(row pgx.Row) (*models.Unit, error) {
	var u models.Unit
	err := row.Scan(
		&u.ID, &u.BuildingID, &u.UnitNumber, &u.OwnerName,
		&u.Floor, &u.Bedrooms, &u.Bathrooms, &u.SquareFeet, &u.ParcelNumber,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func unitPrefixedColumns(alias string) string {
	return alias + `.id, ` + alias + `.building_id, ` + alias + `.unit_number,
	COALESCE(` + alias + `.owner_name, ''), COALESCE(` + alias + `.floor, 0),
	COALESCE(` + alias + `.bedrooms, 0), COALESCE(` + alias + `.bathrooms, 0),
	COALESCE(` + alias + `.square_feet, 0), COALESCE(` + alias + `.parcel_number, '')`
}

// Ensure unitRepository implements UnitRepository at compile time.
var _ UnitRepository = (*unitRepository)(nil)
