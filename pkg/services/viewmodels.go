package services

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/inflection"

	"github.com/btcbarkeep/ainareports/pkg/models"
)

// sectionLimit caps every truncated report section at five items.
const sectionLimit = 5

// Section is a truncated list plus the true total behind it. Total is the
// authoritative source-provided statistic when present, else the fetched
// length; it is never smaller than len(Items).
type Section[T any] struct {
	Items []T    `json:"items"`
	Total int    `json:"total"`
	More  string `json:"more,omitempty"`
}

// newSection truncates items to the section limit and fills in the total and
// the "N more available" message. noun is the singular display noun for the
// section's contents.
func newSection[T any](items []T, authoritativeTotal int, noun string) Section[T] {
	total := len(items)
	if authoritativeTotal > total {
		total = authoritativeTotal
	}
	if len(items) > sectionLimit {
		items = items[:sectionLimit]
	}

	s := Section[T]{Items: items, Total: total}
	if remaining := total - len(items); remaining > 0 {
		word := noun
		if remaining != 1 {
			word = inflection.Plural(noun)
		}
		s.More = fmt.Sprintf("%d more %s available", remaining, word)
	}
	return s
}

// EventView is the display shape of an event: resolved unit numbers, the
// contractor's name instead of its id, and a ready-to-use document link.
type EventView struct {
	ID             uuid.UUID `json:"id"`
	Date           string    `json:"date"` // MM/DD, empty when unknown
	Severity       string    `json:"severity,omitempty"`
	EventType      string    `json:"event_type"`
	Description    string    `json:"description,omitempty"`
	UnitNumbers    []string  `json:"unit_numbers,omitempty"`
	UnitNumber     string    `json:"unit_number,omitempty"` // first resolved, for compact display
	ContractorName string    `json:"contractor_name,omitempty"`
	DocumentURL    string    `json:"document_url,omitempty"`
}

// DocumentView is the display shape of a document.
type DocumentView struct {
	ID          uuid.UUID `json:"id"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory,omitempty"`
	Title       string    `json:"title"`
	Date        string    `json:"date"` // MM/DD, empty when unknown
	UploadedBy  string    `json:"uploaded_by,omitempty"`
	DownloadURL string    `json:"download_url"`
}

// BuildingReport is the assembled view-model for a building page.
type BuildingReport struct {
	Building         *models.Building           `json:"building"`
	FormattedAddress string                     `json:"formatted_address"`
	Events           Section[*EventView]        `json:"events"`
	Documents        Section[*DocumentView]     `json:"documents"`
	Contractors      []*models.Contractor       `json:"contractors"`
	MostActive       *models.Contractor         `json:"most_active_contractor,omitempty"`
	PropertyManagers []*models.PropertyManager  `json:"property_managers"`
	AOAO             *models.AOAOOrganization   `json:"aoao,omitempty"`
	Units            Section[*models.Unit]      `json:"units"`
}

// UnitReport is the assembled view-model for a unit page.
type UnitReport struct {
	Building         *models.Building       `json:"building"`
	FormattedAddress string                 `json:"formatted_address"`
	Unit             *models.Unit           `json:"unit"`
	Events           Section[*EventView]    `json:"events"`
	Documents        Section[*DocumentView] `json:"documents"`
	Contractors      []*models.Contractor   `json:"contractors"`
}

// SearchResults is the view-model for the global search page.
type SearchResults struct {
	Buildings []*models.Building `json:"buildings"`
	Units     []*UnitSearchHit   `json:"units"`
}

// UnitSearchHit pairs a unit with its building for display in search results.
type UnitSearchHit struct {
	Unit         *models.Unit `json:"unit"`
	BuildingName string       `json:"building_name"`
	BuildingSlug string       `json:"building_slug"`
}

// formatAddress joins the non-empty parts of (street, city, STATE, zip) with
// ", ". Absent parts are omitted entirely, never left as stray separators.
func formatAddress(street, city, state, zip string) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{street, city, strings.ToUpper(state), zip} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// formatDate renders a timestamp as zero-padded MM/DD. The zero time (absent
// or unparsable upstream value) renders as empty string.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("01/02")
}

// isDirectURL reports whether a document locator is a well-formed http(s)
// URL usable as a direct link.
func isDirectURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// documentDownloadURL picks a direct link when the document carries a
// well-formed URL, else the proxied download path.
func documentDownloadURL(d *models.Document) string {
	if isDirectURL(d.FileURL) {
		return d.FileURL
	}
	return fmt.Sprintf("/api/documents/%s/download", d.ID)
}

// eventDocumentURL is the proxied link for an event's backing document, empty
// when the event has none.
func eventDocumentURL(e *models.Event, docsByID map[uuid.UUID]*models.Document) string {
	if e.DocumentID == nil {
		return ""
	}
	if d, ok := docsByID[*e.DocumentID]; ok {
		return documentDownloadURL(d)
	}
	return fmt.Sprintf("/api/documents/%s/download", *e.DocumentID)
}
