package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/btcbarkeep/ainareports/pkg/repositories"
)

// fetchLimit bounds the secondary-collection queries behind a unit page. The
// page renders at most five per section; the extra rows feed the contractor
// activity counts.
const fetchLimit = 25

// UnitReportService assembles the unit page view-model from the relational
// store.
type UnitReportService interface {
	// GetReport returns the assembled unit report, or apperrors.ErrNotFound
	// when the building or unit doesn't exist.
	GetReport(ctx context.Context, slug, unitNumber string) (*UnitReport, error)
}

// unitReportService implements UnitReportService.
type unitReportService struct {
	buildings   repositories.BuildingRepository
	units       repositories.UnitRepository
	events      repositories.EventRepository
	documents   repositories.DocumentRepository
	contractors repositories.ContractorRepository
	users       repositories.UserRepository
	logger      *zap.Logger
}

// NewUnitReportService creates a new unit report service.
func NewUnitReportService(
	buildings repositories.BuildingRepository,
	units repositories.UnitRepository,
	events repositories.EventRepository,
	documents repositories.DocumentRepository,
	contractors repositories.ContractorRepository,
	users repositories.UserRepository,
	logger *zap.Logger,
) UnitReportService {
	return &unitReportService{
		buildings:   buildings,
		units:       units,
		events:      events,
		documents:   documents,
		contractors: contractors,
		users:       users,
		logger:      logger,
	}
}

// GetReport looks up the unit and aggregates its events, documents, and
// contractors. Building and unit lookups are authoritative: a miss is
// not-found. Every secondary collection degrades to empty on failure so the
// page still renders with whatever loaded.
func (s *unitReportService) GetReport(ctx context.Context, slug, unitNumber string) (*UnitReport, error) {
	building, err := s.buildings.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	unit, err := s.units.GetByBuildingAndNumber(ctx, building.ID, unitNumber)
	if err != nil {
		return nil, err
	}

	events, err := s.events.ListByUnit(ctx, unit.ID, fetchLimit)
	if err != nil {
		s.logger.Warn("Failed to load unit events; rendering empty section",
			zap.String("slug", slug),
			zap.String("unit", unitNumber),
			zap.Error(err))
		events = nil
	}

	documents, err := s.documents.ListByUnit(ctx, unit.ID, fetchLimit)
	if err != nil {
		s.logger.Warn("Failed to load unit documents; rendering empty section",
			zap.String("slug", slug),
			zap.String("unit", unitNumber),
			zap.Error(err))
		documents = nil
	}

	contractors := contractorsForEvents(ctx, s.contractors, s.logger, events)

	docsByEvent := associateDocumentsWithEvents(documents)
	backfillEventDocuments(events, docsByEvent)
	applyContractorActivity(contractors, computeContractorActivity(events))
	sortContractorsByTier(contractors)

	unitIndex := map[uuid.UUID]string{unit.ID: unit.UnitNumber}
	uploaderNames := resolveUploaderNames(ctx, s.users, s.logger, documents)

	return &UnitReport{
		Building:         building,
		FormattedAddress: formatAddress(building.Address, building.City, building.State, building.Zip),
		Unit:             unit,
		Events:           newSection(assembleEventViews(events, unitIndex, contractors, documents), 0, "event"),
		Documents:        newSection(assembleDocumentViews(documents, uploaderNames), 0, "document"),
		Contractors:      contractors,
	}, nil
}

// Ensure unitReportService implements UnitReportService at compile time.
var _ UnitReportService = (*unitReportService)(nil)
