// Package repositories contains PostgreSQL data access for ainareports.
// Repositories are constructed with an explicit database handle so tests can
// substitute an in-memory fake behind the interface.
package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/btcbarkeep/ainareports/pkg/apperrors"
	"github.com/btcbarkeep/ainareports/pkg/database"
	"github.com/btcbarkeep/ainareports/pkg/models"
)

// BuildingRepository defines the interface for building lookups.
type BuildingRepository interface {
	// GetBySlug finds a building by its slug, case-insensitively.
	GetBySlug(ctx context.Context, slug string) (*models.Building, error)
	// SearchByWords finds buildings whose name, address, city, state, or zip
	// contains any of the given words (case-insensitive substring).
	SearchByWords(ctx context.Context, words []string) ([]*models.Building, error)
	// GetByIDs returns the buildings for the given id set.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Building, error)
}

// buildingRepository implements BuildingRepository using PostgreSQL.
type buildingRepository struct {
	db *database.DB
}

// NewBuildingRepository creates a new building repository.
func NewBuildingRepository(db *database.DB) BuildingRepository {
	return &buildingRepository{db: db}
}

const buildingColumns = `id, slug, name, address, city, state, zip,
	COALESCE(year_built, 0), COALESCE(zoning, ''), COALESCE(floors, 0),
	COALESCE(unit_count, 0), COALESCE(tmk, '')`

// GetBySlug retrieves a building by slug, case-insensitively.
func (r *buildingRepository) GetBySlug(ctx context.Context, slug string) (*models.Building, error) {
	query := `
		SELECT ` + buildingColumns + `
		FROM buildings
		WHERE LOWER(slug) = LOWER($1)`

	row := r.db.QueryRow(ctx, query, slug)
	building, err := scanBuilding(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get building by slug: %w", err)
	}
	return building, nil
}

// SearchByWords finds buildings matching any of the query words.
func (r *buildingRepository) SearchByWords(ctx context.Context, words []string) ([]*models.Building, error) {
	if len(words) == 0 {
		return nil, nil
	}

	// One ILIKE pattern per word, matched against the concatenated text
	// fields. ANY keeps this a single round trip regardless of word count.
	patterns := make([]string, 0, len(words))
	for _, word := range words {
		patterns = append(patterns, "%"+escapeLike(word)+"%")
	}

	query := `
		SELECT ` + buildingColumns + `
		FROM buildings
		WHERE concat_ws(' ', name, address, city, state, zip) ILIKE ANY($1)
		ORDER BY name`

	rows, err := r.db.Query(ctx, query, patterns)
	if err != nil {
		return nil, fmt.Errorf("failed to search buildings: %w", err)
	}
	defer rows.Close()

	var buildings []*models.Building
	for rows.Next() {
		building, err := scanBuilding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan building: %w", err)
		}
		buildings = append(buildings, building)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read buildings: %w", err)
	}
	return buildings, nil
}

// GetByIDs returns the buildings for the given id set.
func (r *buildingRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Building, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + buildingColumns + `
		FROM buildings
		WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query buildings: %w", err)
	}
	defer rows.Close()

	var buildings []*models.Building
	for rows.Next() {
		building, err := scanBuilding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan building: %w", err)
		}
		buildings = append(buildings, building)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read buildings: %w", err)
	}
	return buildings, nil
}

func scanBuilding(row pgx.Row) (*models.Building, error) {
	var b models.Building
	err := row.Scan(
		&b.ID, &b.Slug, &b.Name, &b.Address, &b.City, &b.State, &b.Zip,
		&b.YearBuilt, &b.Zoning, &b.Floors, &b.UnitCount, &b.TMK,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// escapeLike escapes LIKE metacharacters in user-provided search text.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// Ensure buildingRepository implements BuildingRepository at compile time.
var _ BuildingRepository = (*buildingRepository)(nil)
