package reporting

import (
	"encoding/json"
	"fmt"

	"github.com/btcbarkeep/ainareports/pkg/apperrors"
	"github.com/btcbarkeep/ainareports/pkg/jsonutil"
	"github.com/btcbarkeep/ainareports/pkg/models"
	"github.com/btcbarkeep/ainareports/pkg/normalize"
)

// Shape identifies which of the known response envelopes a report arrived in.
// The API has shipped all three over time; decoding tries them in order and
// rejects anything else instead of guessing.
type Shape string

const (
	// ShapeData nests the report under a top-level "data" key.
	ShapeData Shape = "data"
	// ShapeBuilding carries the building record under "building" with sibling
	// collections at the top level.
	ShapeBuilding Shape = "building"
	// ShapeFlat has the building's own fields at the top level alongside the
	// collections.
	ShapeFlat Shape = "flat"
)

// BuildingReportData is the decoded but not-yet-normalized report payload.
// Records stay raw; pkg/normalize owns field-name mapping.
type BuildingReportData struct {
	Building          normalize.RawRecord
	Units             []normalize.RawRecord
	Events            []normalize.RawRecord
	Documents         []normalize.RawRecord
	Contractors       []normalize.RawRecord
	PropertyManagers  []normalize.RawRecord
	AOAOOrganizations []normalize.RawRecord
	Stats             models.ReportStats
}

// decodeReport tries the three known envelope shapes in order. No match
// returns apperrors.ErrShapeMismatch.
func decodeReport(body []byte) (*BuildingReportData, Shape, error) {
	var root map[string]any
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, "", fmt.Errorf("failed to parse report: %w", err)
	}

	if data, ok := root["data"].(map[string]any); ok {
		if report := extractReport(data); report != nil {
			return report, ShapeData, nil
		}
	}

	if report := extractReport(root); report != nil {
		if _, nested := root["building"].(map[string]any); nested {
			return report, ShapeBuilding, nil
		}
		return report, ShapeFlat, nil
	}

	return nil, "", apperrors.ErrShapeMismatch
}

// extractReport reads a report from an envelope object. The building record
// is either nested under "building" or the envelope itself when it carries
// identifying fields. Returns nil when no building is recognizable.
func extractReport(envelope map[string]any) *BuildingReportData {
	building, ok := envelope["building"].(map[string]any)
	if !ok {
		if !looksLikeBuilding(envelope) {
			return nil
		}
		building = envelope
	}

	return &BuildingReportData{
		Building:          normalize.RawRecord(building),
		Units:             recordList(envelope, "units"),
		Events:            recordList(envelope, "events"),
		Documents:         recordList(envelope, "documents"),
		Contractors:       recordList(envelope, "contractors"),
		PropertyManagers:  recordList(envelope, "property_managers", "management_companies"),
		AOAOOrganizations: recordList(envelope, "aoao_organizations", "aoao"),
		Stats:             extractStats(envelope),
	}
}

// looksLikeBuilding reports whether an object carries the identifying fields
// of a flat building record.
func looksLikeBuilding(obj map[string]any) bool {
	_, hasSlug := obj["slug"]
	_, hasName := obj["name"]
	return hasSlug && hasName
}

// recordList reads a list of raw records under the first present key.
func recordList(envelope map[string]any, keys ...string) []normalize.RawRecord {
	for _, key := range keys {
		list, ok := envelope[key].([]any)
		if !ok {
			continue
		}
		records := make([]normalize.RawRecord, 0, len(list))
		for _, item := range list {
			if obj, ok := item.(map[string]any); ok {
				records = append(records, normalize.RawRecord(obj))
			}
		}
		return records
	}
	return nil
}

// extractStats reads the summary statistics block ("stats" or "summary").
// Absent statistics stay zero; callers fall back to fetched lengths.
func extractStats(envelope map[string]any) models.ReportStats {
	var stats models.ReportStats
	block, ok := envelope["stats"].(map[string]any)
	if !ok {
		block, ok = envelope["summary"].(map[string]any)
	}
	if !ok {
		return stats
	}

	stats.TotalEvents = statValue(block, "total_events", "events")
	stats.TotalDocuments = statValue(block, "total_documents", "documents")
	stats.TotalUnits = statValue(block, "total_units", "units")
	return stats
}

func statValue(block map[string]any, keys ...string) int {
	for _, key := range keys {
		if v, ok := block[key]; ok {
			return jsonutil.IntValue(v)
		}
	}
	return 0
}
