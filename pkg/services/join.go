package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/btcbarkeep/ainareports/pkg/models"
	"github.com/btcbarkeep/ainareports/pkg/repositories"
)

// The joiner builds id→value lookup maps once per request and resolves every
// cross-reference through them. A scan-per-item approach degenerates to
// O(n*m) on buildings with long event histories.

// buildUnitNumberIndex maps unit id → unit_number for O(1) resolution.
func buildUnitNumberIndex(units []*models.Unit) map[uuid.UUID]string {
	index := make(map[uuid.UUID]string, len(units))
	for _, u := range units {
		index[u.ID] = u.UnitNumber
	}
	return index
}

// resolveEventUnitNumbers looks up each of the event's unit ids in the index.
// Unresolved ids are dropped silently: an event referencing a deleted unit
// must not crash the page. The second return is the first resolved number,
// empty when none resolved, for compact display.
func resolveEventUnitNumbers(event *models.Event, index map[uuid.UUID]string) ([]string, string) {
	var numbers []string
	for _, id := range event.UnitIDs {
		if number, ok := index[id]; ok {
			numbers = append(numbers, number)
		}
	}
	first := ""
	if len(numbers) > 0 {
		first = numbers[0]
	}
	return numbers, first
}

// associateDocumentsWithEvents indexes documents by originating event id,
// last-write-wins on duplicates (document list order is source order). The
// index backfills an event's DocumentID when the event itself doesn't carry
// one.
func associateDocumentsWithEvents(documents []*models.Document) map[uuid.UUID]*models.Document {
	index := make(map[uuid.UUID]*models.Document)
	for _, d := range documents {
		if d.EventID != nil {
			index[*d.EventID] = d
		}
	}
	return index
}

// backfillEventDocuments sets DocumentID on events that lack one but have an
// associated document. Events with an explicit DocumentID keep it.
func backfillEventDocuments(events []*models.Event, docsByEvent map[uuid.UUID]*models.Document) {
	for _, e := range events {
		if e.DocumentID != nil {
			continue
		}
		if d, ok := docsByEvent[e.ID]; ok {
			id := d.ID
			e.DocumentID = &id
		}
	}
}

// computeContractorActivity counts events per contractor id, ignoring events
// with no contractor reference. The most active contractor falls out of the
// tier sort over these counts, not out of this map.
func computeContractorActivity(events []*models.Event) map[uuid.UUID]int {
	counts := make(map[uuid.UUID]int)
	for _, e := range events {
		if e.ContractorID == nil {
			continue
		}
		counts[*e.ContractorID]++
	}
	return counts
}

// contractorsForEvents fetches the contractors referenced by the event list.
// Failure degrades to an empty list, not a failed page.
func contractorsForEvents(ctx context.Context, repo repositories.ContractorRepository, logger *zap.Logger, events []*models.Event) []*models.Contractor {
	var ids []uuid.UUID
	seen := make(map[uuid.UUID]bool)
	for _, e := range events {
		if e.ContractorID != nil && !seen[*e.ContractorID] {
			seen[*e.ContractorID] = true
			ids = append(ids, *e.ContractorID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	contractors, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		logger.Warn("Failed to load contractors; rendering empty section",
			zap.Error(err))
		return nil
	}
	return contractors
}

// resolveUploaderNames maps uploader ids to display names via the user
// directory. A directory failure degrades to anonymous documents, not a
// failed page.
func resolveUploaderNames(ctx context.Context, users repositories.UserRepository, logger *zap.Logger, documents []*models.Document) map[uuid.UUID]string {
	var ids []uuid.UUID
	seen := make(map[uuid.UUID]bool)
	for _, d := range documents {
		if d.UploadedBy != nil && !seen[*d.UploadedBy] {
			seen[*d.UploadedBy] = true
			ids = append(ids, *d.UploadedBy)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	resolved, err := users.GetByIDs(ctx, ids)
	if err != nil {
		logger.Warn("Failed to resolve document uploaders; rendering without names",
			zap.Error(err))
		return nil
	}

	names := make(map[uuid.UUID]string, len(resolved))
	for _, u := range resolved {
		names[u.ID] = u.DisplayName
	}
	return names
}
