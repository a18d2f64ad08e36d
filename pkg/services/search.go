package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/btcbarkeep/ainareports/pkg/models"
	"github.com/btcbarkeep/ainareports/pkg/repositories"
)

// SearchService is the global top-level search across buildings and units.
type SearchService interface {
	// Search runs the unscoped query. An empty query returns empty results.
	Search(ctx context.Context, query string) (*SearchResults, error)
}

// searchService implements SearchService.
type searchService struct {
	buildings repositories.BuildingRepository
	units     repositories.UnitRepository
	logger    *zap.Logger
}

// NewSearchService creates a new global search service.
func NewSearchService(
	buildings repositories.BuildingRepository,
	units repositories.UnitRepository,
	logger *zap.Logger,
) SearchService {
	return &searchService{
		buildings: buildings,
		units:     units,
		logger:    logger,
	}
}

// Search tokenizes the query on whitespace and assembles the candidate sets.
// Buildings match when any word appears in their text fields. Units are the
// union of three passes: membership in a candidate building (narrowed by a
// digit-bearing unit-number token when one exists), a unit-number match on
// the full query, and a building-text join on the full query. Units dedupe by
// id, last seen wins.
func (s *searchService) Search(ctx context.Context, query string) (*SearchResults, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &SearchResults{}, nil
	}

	words := strings.Fields(strings.ToLower(query))
	token := unitNumberToken(words)

	buildings, err := s.buildings.SearchByWords(ctx, words)
	if err != nil {
		s.logger.Warn("Building search failed; returning unit matches only",
			zap.Error(err))
		buildings = nil
	}

	merged := newUnitSet()

	// Pass 1: units in candidate buildings, narrowed by the unit-number token.
	if len(buildings) > 0 {
		ids := make([]uuid.UUID, 0, len(buildings))
		for _, b := range buildings {
			ids = append(ids, b.ID)
		}
		members, err := s.units.ListByBuildings(ctx, ids)
		if err != nil {
			s.logger.Warn("Unit membership search failed", zap.Error(err))
		}
		for _, u := range members {
			if token != "" && !strings.Contains(strings.ToLower(u.UnitNumber), token) {
				continue
			}
			merged.add(u)
		}
	}

	// Pass 2: units whose own number matches the full query.
	byNumber, err := s.units.SearchByNumber(ctx, query)
	if err != nil {
		s.logger.Warn("Unit number search failed", zap.Error(err))
	}
	for _, u := range byNumber {
		merged.add(u)
	}

	// Pass 3: units whose building text matches the full query.
	byBuildingText, err := s.units.SearchByBuildingText(ctx, query)
	if err != nil {
		s.logger.Warn("Unit building-text search failed", zap.Error(err))
	}
	for _, u := range byBuildingText {
		merged.add(u)
	}

	return &SearchResults{
		Buildings: buildings,
		Units:     s.assembleHits(ctx, merged.ordered(), buildings),
	}, nil
}

// assembleHits attaches building display fields to each unit hit, fetching
// buildings not already in the candidate set.
func (s *searchService) assembleHits(ctx context.Context, units []*models.Unit, candidates []*models.Building) []*UnitSearchHit {
	byID := make(map[uuid.UUID]*models.Building, len(candidates))
	for _, b := range candidates {
		byID[b.ID] = b
	}

	var missing []uuid.UUID
	seen := make(map[uuid.UUID]bool)
	for _, u := range units {
		if _, ok := byID[u.BuildingID]; !ok && !seen[u.BuildingID] {
			seen[u.BuildingID] = true
			missing = append(missing, u.BuildingID)
		}
	}
	if len(missing) > 0 {
		fetched, err := s.buildings.GetByIDs(ctx, missing)
		if err != nil {
			s.logger.Warn("Failed to resolve buildings for unit hits", zap.Error(err))
		}
		for _, b := range fetched {
			byID[b.ID] = b
		}
	}

	hits := make([]*UnitSearchHit, 0, len(units))
	for _, u := range units {
		hit := &UnitSearchHit{Unit: u}
		if b, ok := byID[u.BuildingID]; ok {
			hit.BuildingName = b.Name
			hit.BuildingSlug = b.Slug
		}
		hits = append(hits, hit)
	}
	return hits
}

// unitSet deduplicates units by id while preserving first-seen position.
// A duplicate id replaces the stored unit (last seen wins), which is harmless
// since all copies of the same id are field-identical.
type unitSet struct {
	index map[uuid.UUID]int
	items []*models.Unit
}

func newUnitSet() *unitSet {
	return &unitSet{index: make(map[uuid.UUID]int)}
}

func (s *unitSet) add(u *models.Unit) {
	if i, ok := s.index[u.ID]; ok {
		s.items[i] = u
		return
	}
	s.index[u.ID] = len(s.items)
	s.items = append(s.items, u)
}

func (s *unitSet) ordered() []*models.Unit {
	return s.items
}

// Ensure searchService implements SearchService at compile time.
var _ SearchService = (*searchService)(nil)
