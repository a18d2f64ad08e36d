package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/btcbarkeep/ainareports/pkg/models"
	"github.com/btcbarkeep/ainareports/pkg/services"
)

// mockBuildingReportService is a configurable mock for BuildingReportService.
type mockBuildingReportService struct {
	report    *services.BuildingReport
	units     []*models.Unit
	reportErr error
	searchErr error

	capturedSlug  string
	capturedQuery string
}

func (m *mockBuildingReportService) GetReport(ctx context.Context, slug string) (*services.BuildingReport, error) {
	m.capturedSlug = slug
	if m.reportErr != nil {
		return nil, m.reportErr
	}
	return m.report, nil
}

func (m *mockBuildingReportService) SearchUnits(ctx context.Context, slug, query string) ([]*models.Unit, error) {
	m.capturedSlug = slug
	m.capturedQuery = query
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.units, nil
}

// mockUnitReportService is a configurable mock for UnitReportService.
type mockUnitReportService struct {
	report *services.UnitReport
	err    error

	capturedSlug string
	capturedUnit string
}

func (m *mockUnitReportService) GetReport(ctx context.Context, slug, unitNumber string) (*services.UnitReport, error) {
	m.capturedSlug = slug
	m.capturedUnit = unitNumber
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

// mockSearchService is a configurable mock for SearchService.
type mockSearchService struct {
	results *services.SearchResults
	err     error

	capturedQuery string
}

func (m *mockSearchService) Search(ctx context.Context, query string) (*services.SearchResults, error) {
	m.capturedQuery = query
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

// mockDocumentRepository is a configurable mock for DocumentRepository.
type mockDocumentRepository struct {
	document *models.Document
	err      error

	capturedID uuid.UUID
}

func (m *mockDocumentRepository) Get(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	m.capturedID = id
	if m.err != nil {
		return nil, m.err
	}
	return m.document, nil
}

func (m *mockDocumentRepository) ListByBuilding(ctx context.Context, buildingID uuid.UUID, limit int) ([]*models.Document, error) {
	return nil, nil
}

func (m *mockDocumentRepository) ListByUnit(ctx context.Context, unitID uuid.UUID, limit int) ([]*models.Document, error) {
	return nil, nil
}
