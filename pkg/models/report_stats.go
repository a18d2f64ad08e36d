package models

// ReportStats carries the authoritative totals the reporting API computes
// server-side. Fetched collections are truncated; these are not. A zero value
// means the statistic was absent from the response, in which case callers
// fall back to the length of the fetched collection.
type ReportStats struct {
	TotalEvents      int `json:"total_events"`
	TotalDocuments   int `json:"total_documents"`
	TotalUnits       int `json:"total_units"`
}
