package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/btcbarkeep/ainareports/pkg/database"
	"github.com/btcbarkeep/ainareports/pkg/models"
)

// ContractorRepository defines the interface for contractor lookups.
type ContractorRepository interface {
	// GetByIDs returns the contractors for the given id set, in no particular
	// order. Missing ids are simply absent from the result.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Contractor, error)
}

// contractorRepository implements ContractorRepository using PostgreSQL.
type contractorRepository struct {
	db *database.DB
}

// NewContractorRepository creates a new contractor repository.
func NewContractorRepository(db *database.DB) ContractorRepository {
	return &contractorRepository{db: db}
}

func (r *contractorRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Contractor, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, COALESCE(company_name, ''), COALESCE(contact_name, ''),
			COALESCE(contact_phone, ''), COALESCE(contact_email, ''),
			COALESCE(license, ''), COALESCE(tier, '')
		FROM contractors
		WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query contractors: %w", err)
	}
	defer rows.Close()

	var contractors []*models.Contractor
	for rows.Next() {
		var c models.Contractor
		err := rows.Scan(&c.ID, &c.Name, &c.ContactName, &c.Phone, &c.Email, &c.License, &c.Tier)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contractor: %w", err)
		}
		contractors = append(contractors, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read contractors: %w", err)
	}
	return contractors, nil
}

// Ensure contractorRepository implements ContractorRepository at compile time.
var _ ContractorRepository = (*contractorRepository)(nil)
