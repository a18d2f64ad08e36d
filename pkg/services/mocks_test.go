package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/btcbarkeep/ainareports/pkg/models"
	"github.com/btcbarkeep/ainareports/pkg/reporting"
)

// mockReportFetcher is a configurable mock for the reporting client.
type mockReportFetcher struct {
	report *reporting.BuildingReportData
	err    error

	capturedSlug string
}

func (m *mockReportFetcher) GetBuildingReport(ctx context.Context, slug string) (*reporting.BuildingReportData, error) {
	m.capturedSlug = slug
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

// mockBuildingRepository is a configurable mock for BuildingRepository.
type mockBuildingRepository struct {
	building  *models.Building
	buildings []*models.Building
	byIDs     []*models.Building
	getErr    error
	searchErr error
	byIDsErr  error

	capturedSlug  string
	capturedWords []string
}

func (m *mockBuildingRepository) GetBySlug(ctx context.Context, slug string) (*models.Building, error) {
	m.capturedSlug = slug
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.building, nil
}

func (m *mockBuildingRepository) SearchByWords(ctx context.Context, words []string) ([]*models.Building, error) {
	m.capturedWords = words
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.buildings, nil
}

func (m *mockBuildingRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Building, error) {
	if m.byIDsErr != nil {
		return nil, m.byIDsErr
	}
	return m.byIDs, nil
}

// mockUnitRepository is a configurable mock for UnitRepository.
type mockUnitRepository struct {
	unit           *models.Unit
	units          []*models.Unit
	byBuildings    []*models.Unit
	byNumber       []*models.Unit
	byBuildingText []*models.Unit
	getErr         error
	listErr        error

	capturedUnitNumber string
	capturedQuery      string
}

func (m *mockUnitRepository) GetByBuildingAndNumber(ctx context.Context, buildingID uuid.UUID, unitNumber string) (*models.Unit, error) {
	m.capturedUnitNumber = unitNumber
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.unit, nil
}

func (m *mockUnitRepository) ListByBuilding(ctx context.Context, buildingID uuid.UUID) ([]*models.Unit, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.units, nil
}

func (m *mockUnitRepository) ListByBuildings(ctx context.Context, buildingIDs []uuid.UUID) ([]*models.Unit, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.byBuildings, nil
}

func (m *mockUnitRepository) SearchByNumber(ctx context.Context, query string) ([]*models.Unit, error) {
	m.capturedQuery = query
	return m.byNumber, nil
}

func (m *mockUnitRepository) SearchByBuildingText(ctx context.Context, query string) ([]*models.Unit, error) {
	return m.byBuildingText, nil
}

// mockEventRepository is a configurable mock for EventRepository.
type mockEventRepository struct {
	events []*models.Event
	err    error

	capturedLimit int
}

func (m *mockEventRepository) ListByBuilding(ctx context.Context, buildingID uuid.UUID, limit int) ([]*models.Event, error) {
	m.capturedLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.events, nil
}

func (m *mockEventRepository) ListByUnit(ctx context.Context, unitID uuid.UUID, limit int) ([]*models.Event, error) {
	m.capturedLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.events, nil
}

// mockDocumentRepository is a configurable mock for DocumentRepository.
type mockDocumentRepository struct {
	document  *models.Document
	documents []*models.Document
	err       error
}

func (m *mockDocumentRepository) Get(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.document, nil
}

func (m *mockDocumentRepository) ListByBuilding(ctx context.Context, buildingID uuid.UUID, limit int) ([]*models.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.documents, nil
}

func (m *mockDocumentRepository) ListByUnit(ctx context.Context, unitID uuid.UUID, limit int) ([]*models.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.documents, nil
}

// mockContractorRepository is a configurable mock for ContractorRepository.
type mockContractorRepository struct {
	contractors []*models.Contractor
	err         error

	capturedIDs []uuid.UUID
}

func (m *mockContractorRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Contractor, error) {
	m.capturedIDs = ids
	if m.err != nil {
		return nil, m.err
	}
	return m.contractors, nil
}

// mockUserRepository is a configurable mock for UserRepository.
type mockUserRepository struct {
	users []*models.User
	err   error
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.users, nil
}
