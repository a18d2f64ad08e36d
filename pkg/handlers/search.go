package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/btcbarkeep/ainareports/pkg/audit"
	"github.com/btcbarkeep/ainareports/pkg/services"
)

// SearchHandler handles global search HTTP requests.
type SearchHandler struct {
	search  services.SearchService
	auditor *audit.SecurityAuditor
	logger  *zap.Logger
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(search services.SearchService, auditor *audit.SecurityAuditor, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		search:  search,
		auditor: auditor,
		logger:  logger,
	}
}

// RegisterRoutes registers the search handler's routes on the given mux.
func (h *SearchHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/search", h.Search)
}

// Search handles GET /api/search?q=
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	if query != "" {
		if fingerprint, hit := audit.ScreenSearchInput(query); hit {
			h.auditor.LogInjectionAttempt(r.Context(), audit.InjectionDetails{
				ParamName:   "q",
				ParamValue:  query,
				Fingerprint: fingerprint,
				Route:       "/api/search",
			}, r.RemoteAddr)
		}
	}

	results, err := h.search.Search(r.Context(), query)
	if err != nil {
		h.logger.Error("Search failed",
			zap.String("query", query),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "search_failed", "Search failed"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, results); err != nil {
		h.logger.Error("Failed to encode search results", zap.Error(err))
	}
}
