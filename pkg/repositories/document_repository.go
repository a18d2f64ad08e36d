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

// DocumentRepository defines the interface for document lookups.
type DocumentRepository interface {
	// Get retrieves a document by id.
	Get(ctx context.Context, id uuid.UUID) (*models.Document, error)
	// ListByBuilding returns a building's documents, newest first, limited.
	ListByBuilding(ctx context.Context, buildingID uuid.UUID, limit int) ([]*models.Document, error)
	// ListByUnit returns documents attached to a unit, newest first, limited.
	ListByUnit(ctx context.Context, unitID uuid.UUID, limit int) ([]*models.Document, error)
}

// documentRepository implements DocumentRepository using PostgreSQL.
type documentRepository struct {
	db *database.DB
}

// NewDocumentRepository creates a new document repository.
func NewDocumentRepository(db *database.DB) DocumentRepository {
	return &documentRepository{db: db}
}

const documentColumns = `id, building_id, COALESCE(unit_ids, '{}')::text[],
	event_id::text, COALESCE(category, ''), COALESCE(subcategory, ''),
	COALESCE(title, ''), COALESCE(file_url, ''), COALESCE(storage_key, ''),
	uploaded_by::text, created_at`

func (r *documentRepository) Get(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE id = $1`

	doc, err := scanDocument(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return doc, nil
}

func (r *documentRepository) ListByBuilding(ctx context.Context, buildingID uuid.UUID, limit int) ([]*models.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE building_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	return r.queryDocuments(ctx, query, buildingID, limit)
}

func (r *documentRepository) ListByUnit(ctx context.Context, unitID uuid.UUID, limit int) ([]*models.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE $1 = ANY(unit_ids)
		ORDER BY created_at DESC
		LIMIT $2`

	return r.queryDocuments(ctx, query, unitID, limit)
}

func (r *documentRepository) queryDocuments(ctx context.Context, query string, args ...any) ([]*models.Document, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var documents []*models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		documents = append(documents, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read documents: %w", err)
	}
	return documents, nil
}

func scanDocument(row pgx.Row) (*models.Document, error) {
	var d models.Document
	var unitIDs []string
	var eventID, uploadedBy *string

	err := row.Scan(
		&d.ID, &d.BuildingID, &unitIDs, &eventID,
		&d.Category, &d.Subcategory, &d.Title,
		&d.FileURL, &d.StorageKey, &uploadedBy, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	d.UnitIDs = parseUUIDs(unitIDs)
	d.EventID = parseUUIDPtr(eventID)
	d.UploadedBy = parseUUIDPtr(uploadedBy)
	return &d, nil
}

// Ensure documentRepository implements DocumentRepository at compile time.
var _ DocumentRepository = (*documentRepository)(nil)
