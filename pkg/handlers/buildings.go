package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/btcbarkeep/ainareports/pkg/apperrors"
	"github.com/btcbarkeep/ainareports/pkg/audit"
	"github.com/btcbarkeep/ainareports/pkg/auth"
	"github.com/btcbarkeep/ainareports/pkg/models"
	"github.com/btcbarkeep/ainareports/pkg/services"
)

// UnitSearchResponse for GET /api/buildings/{slug}/units
type UnitSearchResponse struct {
	Units []*models.Unit `json:"units"`
}

// RecentBuildingsResponse for GET /api/buildings/recent
type RecentBuildingsResponse struct {
	Slugs []string `json:"slugs"`
}

// BuildingHandler handles building and unit report HTTP requests.
type BuildingHandler struct {
	reports     services.BuildingReportService
	unitReports services.UnitReportService
	recent      *auth.RecentStore
	auditor     *audit.SecurityAuditor
	logger      *zap.Logger
}

// NewBuildingHandler creates a new building handler.
func NewBuildingHandler(
	reports services.BuildingReportService,
	unitReports services.UnitReportService,
	recent *auth.RecentStore,
	auditor *audit.SecurityAuditor,
	logger *zap.Logger,
) *BuildingHandler {
	return &BuildingHandler{
		reports:     reports,
		unitReports: unitReports,
		recent:      recent,
		auditor:     auditor,
		logger:      logger,
	}
}

// RegisterRoutes registers the building handler's routes on the given mux.
func (h *BuildingHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/buildings/recent", h.Recent)
	mux.HandleFunc("GET /api/buildings/{slug}", authMiddleware.OptionalAuth(h.Get))
	mux.HandleFunc("GET /api/buildings/{slug}/units", h.SearchUnits)
	mux.HandleFunc("GET /api/buildings/{slug}/units/{unit}", authMiddleware.OptionalAuth(h.GetUnit))
}

// Get handles GET /api/buildings/{slug}
func (h *BuildingHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	report, err := h.reports.GetReport(r.Context(), slug)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.auditor.LogNotFoundProbe(r.Context(), "/api/buildings/{slug}", slug, r.RemoteAddr)
			h.writeError(w, http.StatusNotFound, "building_not_found", "Building not found")
			return
		}
		h.logger.Error("Failed to build building report",
			zap.String("slug", slug),
			zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "report_failed", "Failed to build report")
		return
	}

	if err := h.recent.RecordView(w, r, slug); err != nil {
		h.logger.Debug("Failed to record recent view", zap.Error(err))
	}

	if err := WriteJSON(w, http.StatusOK, report); err != nil {
		h.logger.Error("Failed to encode building report", zap.Error(err))
	}
}

// GetUnit handles GET /api/buildings/{slug}/units/{unit}
func (h *BuildingHandler) GetUnit(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	unitNumber := r.PathValue("unit")

	report, err := h.unitReports.GetReport(r.Context(), slug, unitNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.auditor.LogNotFoundProbe(r.Context(), "/api/buildings/{slug}/units/{unit}", slug+"/"+unitNumber, r.RemoteAddr)
			h.writeError(w, http.StatusNotFound, "unit_not_found", "Unit not found")
			return
		}
		h.logger.Error("Failed to build unit report",
			zap.String("slug", slug),
			zap.String("unit", unitNumber),
			zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "report_failed", "Failed to build report")
		return
	}

	if err := WriteJSON(w, http.StatusOK, report); err != nil {
		h.logger.Error("Failed to encode unit report", zap.Error(err))
	}
}

// SearchUnits handles GET /api/buildings/{slug}/units?q=
func (h *BuildingHandler) SearchUnits(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	query := r.URL.Query().Get("q")

	h.screenQuery(r, query, "/api/buildings/{slug}/units")

	units, err := h.reports.SearchUnits(r.Context(), slug, query)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "building_not_found", "Building not found")
			return
		}
		h.logger.Error("Failed to search units",
			zap.String("slug", slug),
			zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "unit_search_failed", "Failed to search units")
		return
	}

	if err := WriteJSON(w, http.StatusOK, UnitSearchResponse{Units: units}); err != nil {
		h.logger.Error("Failed to encode unit search response", zap.Error(err))
	}
}

// Recent handles GET /api/buildings/recent
func (h *BuildingHandler) Recent(w http.ResponseWriter, r *http.Request) {
	slugs := h.recent.Recent(r)
	if slugs == nil {
		slugs = []string{}
	}
	if err := WriteJSON(w, http.StatusOK, RecentBuildingsResponse{Slugs: slugs}); err != nil {
		h.logger.Error("Failed to encode recent buildings", zap.Error(err))
	}
}

// screenQuery runs injection telemetry on free-text input. The query is
// served either way; it only ever reaches the store through bind parameters.
func (h *BuildingHandler) screenQuery(r *http.Request, query, route string) {
	if query == "" {
		return
	}
	if fingerprint, hit := audit.ScreenSearchInput(query); hit {
		h.auditor.LogInjectionAttempt(r.Context(), audit.InjectionDetails{
			ParamName:   "q",
			ParamValue:  query,
			Fingerprint: fingerprint,
			Route:       route,
		}, r.RemoteAddr)
	}
}

func (h *BuildingHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	if err := ErrorResponse(w, status, code, message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}
