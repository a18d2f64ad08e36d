// Package services assembles report view-models from the relational store and
// the reporting API. All aggregation is request-scoped: every value is
// reconstructed per request and nothing is cached or mutated.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/btcbarkeep/ainareports/pkg/apperrors"
	"github.com/btcbarkeep/ainareports/pkg/models"
	"github.com/btcbarkeep/ainareports/pkg/normalize"
	"github.com/btcbarkeep/ainareports/pkg/reporting"
	"github.com/btcbarkeep/ainareports/pkg/repositories"
)

// ReportFetcher is the slice of the reporting client this service needs.
type ReportFetcher interface {
	GetBuildingReport(ctx context.Context, slug string) (*reporting.BuildingReportData, error)
}

// BuildingReportService assembles the building page view-model.
type BuildingReportService interface {
	// GetReport returns the assembled building report, or
	// apperrors.ErrNotFound when the slug resolves to nothing.
	GetReport(ctx context.Context, slug string) (*BuildingReport, error)
	// SearchUnits returns at most five of the building's units matching the
	// free-text query; an empty query returns the first five.
	SearchUnits(ctx context.Context, slug, query string) ([]*models.Unit, error)
}

// buildingReportService implements BuildingReportService.
type buildingReportService struct {
	reports     ReportFetcher
	buildings   repositories.BuildingRepository
	units       repositories.UnitRepository
	events      repositories.EventRepository
	documents   repositories.DocumentRepository
	contractors repositories.ContractorRepository
	users       repositories.UserRepository
	logger      *zap.Logger
}

// NewBuildingReportService creates a new building report service.
func NewBuildingReportService(
	reports ReportFetcher,
	buildings repositories.BuildingRepository,
	units repositories.UnitRepository,
	events repositories.EventRepository,
	documents repositories.DocumentRepository,
	contractors repositories.ContractorRepository,
	users repositories.UserRepository,
	logger *zap.Logger,
) BuildingReportService {
	return &buildingReportService{
		reports:     reports,
		buildings:   buildings,
		units:       units,
		events:      events,
		documents:   documents,
		contractors: contractors,
		users:       users,
		logger:      logger,
	}
}

// GetReport fetches the nested report for a slug and reshapes it for the
// building page. An unrecognized response shape is treated as not-found after
// the client has logged it.
func (s *buildingReportService) GetReport(ctx context.Context, slug string) (*BuildingReport, error) {
	data, err := s.reports.GetBuildingReport(ctx, slug)
	if err != nil {
		if errors.Is(err, apperrors.ErrShapeMismatch) {
			return nil, apperrors.ErrNotFound
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.logger.Warn("Reporting API unavailable; assembling page from relational store",
			zap.String("slug", slug),
			zap.Error(err))
		return s.relationalReport(ctx, slug)
	}

	building := normalize.Building(data.Building)
	if building.Slug == "" {
		building.Slug = slug
	}

	units := normalizeUnits(data.Units)
	events := normalizeEvents(data.Events)
	documents := normalizeDocuments(data.Documents)
	contractors := normalizeContractors(data.Contractors)
	managers := normalizePropertyManagers(data.PropertyManagers)

	var aoao *models.AOAOOrganization
	if len(data.AOAOOrganizations) > 0 {
		aoao = normalize.AOAOOrganization(data.AOAOOrganizations[0])
	}

	// Join: lookup maps first, then every cross-reference resolves in O(1).
	unitIndex := buildUnitNumberIndex(units)
	docsByEvent := associateDocumentsWithEvents(documents)
	backfillEventDocuments(events, docsByEvent)
	applyContractorActivity(contractors, computeContractorActivity(events))

	sortContractorsByTier(contractors)
	sortPropertyManagersByTier(managers)

	var mostActive *models.Contractor
	if len(contractors) > 0 {
		mostActive = contractors[0]
	}

	uploaderNames := resolveUploaderNames(ctx, s.users, s.logger, documents)

	return &BuildingReport{
		Building:         building,
		FormattedAddress: formatAddress(building.Address, building.City, building.State, building.Zip),
		Events:           newSection(assembleEventViews(events, unitIndex, contractors, documents), data.Stats.TotalEvents, "event"),
		Documents:        newSection(assembleDocumentViews(documents, uploaderNames), data.Stats.TotalDocuments, "document"),
		Contractors:      contractors,
		MostActive:       mostActive,
		PropertyManagers: managers,
		AOAO:             aoao,
		Units:            newSection(units, data.Stats.TotalUnits, "unit"),
	}, nil
}

// relationalReport assembles a degraded building page from the relational
// store when the reporting API cannot be reached. An unknown slug is still
// not-found. Totals fall back to fetched lengths, and the upstream-only
// sections (property managers, AOAO) render empty.
func (s *buildingReportService) relationalReport(ctx context.Context, slug string) (*BuildingReport, error) {
	building, err := s.buildings.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	units, err := s.units.ListByBuilding(ctx, building.ID)
	if err != nil {
		s.logger.Warn("Failed to load building units; rendering empty section",
			zap.String("slug", slug),
			zap.Error(err))
		units = nil
	}

	events, err := s.events.ListByBuilding(ctx, building.ID, fetchLimit)
	if err != nil {
		s.logger.Warn("Failed to load building events; rendering empty section",
			zap.String("slug", slug),
			zap.Error(err))
		events = nil
	}

	documents, err := s.documents.ListByBuilding(ctx, building.ID, fetchLimit)
	if err != nil {
		s.logger.Warn("Failed to load building documents; rendering empty section",
			zap.String("slug", slug),
			zap.Error(err))
		documents = nil
	}

	contractors := contractorsForEvents(ctx, s.contractors, s.logger, events)

	unitIndex := buildUnitNumberIndex(units)
	docsByEvent := associateDocumentsWithEvents(documents)
	backfillEventDocuments(events, docsByEvent)
	applyContractorActivity(contractors, computeContractorActivity(events))
	sortContractorsByTier(contractors)

	var mostActive *models.Contractor
	if len(contractors) > 0 {
		mostActive = contractors[0]
	}

	uploaderNames := resolveUploaderNames(ctx, s.users, s.logger, documents)

	return &BuildingReport{
		Building:         building,
		FormattedAddress: formatAddress(building.Address, building.City, building.State, building.Zip),
		Events:           newSection(assembleEventViews(events, unitIndex, contractors, documents), 0, "event"),
		Documents:        newSection(assembleDocumentViews(documents, uploaderNames), 0, "document"),
		Contractors:      contractors,
		MostActive:       mostActive,
		Units:            newSection(units, 0, "unit"),
	}, nil
}

// SearchUnits loads the building's units from the relational store and
// filters them in memory.
func (s *buildingReportService) SearchUnits(ctx context.Context, slug, query string) ([]*models.Unit, error) {
	building, err := s.buildings.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	units, err := s.units.ListByBuilding(ctx, building.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}

	return searchUnits(units, query), nil
}

// applyContractorActivity overwrites each contractor's event count with the
// count derived from the events in scope. Counts are never trusted from
// upstream.
func applyContractorActivity(contractors []*models.Contractor, activity map[uuid.UUID]int) {
	for _, c := range contractors {
		c.EventCount = activity[c.ID]
	}
}

// assembleEventViews produces display-ready events: resolved unit numbers,
// contractor names, document links.
func assembleEventViews(
	events []*models.Event,
	unitIndex map[uuid.UUID]string,
	contractors []*models.Contractor,
	documents []*models.Document,
) []*EventView {
	contractorNames := make(map[uuid.UUID]string, len(contractors))
	for _, c := range contractors {
		contractorNames[c.ID] = c.Name
	}
	docsByID := make(map[uuid.UUID]*models.Document, len(documents))
	for _, d := range documents {
		docsByID[d.ID] = d
	}

	views := make([]*EventView, 0, len(events))
	for _, e := range events {
		numbers, first := resolveEventUnitNumbers(e, unitIndex)
		view := &EventView{
			ID:          e.ID,
			Date:        formatDate(e.OccurredAt),
			Severity:    e.Severity,
			EventType:   e.EventType,
			Description: e.Description,
			UnitNumbers: numbers,
			UnitNumber:  first,
			DocumentURL: eventDocumentURL(e, docsByID),
		}
		if e.ContractorID != nil {
			view.ContractorName = contractorNames[*e.ContractorID]
		}
		views = append(views, view)
	}
	return views
}

// assembleDocumentViews produces display-ready documents with a usable
// download link per record.
func assembleDocumentViews(documents []*models.Document, uploaderNames map[uuid.UUID]string) []*DocumentView {
	views := make([]*DocumentView, 0, len(documents))
	for _, d := range documents {
		view := &DocumentView{
			ID:          d.ID,
			Category:    d.Category,
			Subcategory: d.Subcategory,
			Title:       d.Title,
			Date:        formatDate(d.CreatedAt),
			DownloadURL: documentDownloadURL(d),
		}
		if d.UploadedBy != nil {
			view.UploadedBy = uploaderNames[*d.UploadedBy]
		}
		views = append(views, view)
	}
	return views
}

func normalizeUnits(raw []normalize.RawRecord) []*models.Unit {
	units := make([]*models.Unit, 0, len(raw))
	for _, r := range raw {
		units = append(units, normalize.Unit(r))
	}
	return units
}

func normalizeEvents(raw []normalize.RawRecord) []*models.Event {
	events := make([]*models.Event, 0, len(raw))
	for _, r := range raw {
		events = append(events, normalize.Event(r))
	}
	return events
}

func normalizeDocuments(raw []normalize.RawRecord) []*models.Document {
	documents := make([]*models.Document, 0, len(raw))
	for _, r := range raw {
		documents = append(documents, normalize.Document(r))
	}
	return documents
}

func normalizeContractors(raw []normalize.RawRecord) []*models.Contractor {
	contractors := make([]*models.Contractor, 0, len(raw))
	for _, r := range raw {
		contractors = append(contractors, normalize.Contractor(r))
	}
	return contractors
}

func normalizePropertyManagers(raw []normalize.RawRecord) []*models.PropertyManager {
	managers := make([]*models.PropertyManager, 0, len(raw))
	for _, r := range raw {
		managers = append(managers, normalize.PropertyManager(r))
	}
	return managers
}

// Ensure buildingReportService implements BuildingReportService at compile time.
var _ BuildingReportService = (*buildingReportService)(nil)
