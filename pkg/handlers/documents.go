package handlers

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/btcbarkeep/ainareports/pkg/apperrors"
	"github.com/btcbarkeep/ainareports/pkg/auth"
	"github.com/btcbarkeep/ainareports/pkg/repositories"
)

// DocumentHandler serves document downloads. Documents carrying a direct URL
// redirect; stored documents stream through the server so the object store
// stays private.
type DocumentHandler struct {
	documents      repositories.DocumentRepository
	storageBaseURL string
	client         *http.Client
	logger         *zap.Logger
}

// NewDocumentHandler creates a new document handler. storageBaseURL may be
// empty, in which case stored documents are unavailable.
func NewDocumentHandler(documents repositories.DocumentRepository, storageBaseURL string, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		documents:      documents,
		storageBaseURL: storageBaseURL,
		client:         &http.Client{Timeout: 60 * time.Second},
		logger:         logger,
	}
}

// RegisterRoutes registers the document handler's routes on the given mux.
// Downloads require an authenticated caller; report pages stay public but the
// underlying files do not.
func (h *DocumentHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/documents/{id}/download", authMiddleware.RequireAuth(h.Download))
}

// Download handles GET /api/documents/{id}/download
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_document_id", "Invalid document ID")
		return
	}

	doc, err := h.documents.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "document_not_found", "Document not found")
			return
		}
		h.logger.Error("Failed to load document",
			zap.String("document_id", id.String()),
			zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "document_failed", "Failed to load document")
		return
	}

	if isDirectURL(doc.FileURL) {
		http.Redirect(w, r, doc.FileURL, http.StatusFound)
		return
	}

	if doc.StorageKey == "" || h.storageBaseURL == "" {
		h.logger.Warn("Document has no usable locator",
			zap.String("document_id", id.String()))
		h.writeError(w, http.StatusNotFound, "document_unavailable", "Document content unavailable")
		return
	}

	h.stream(w, r, doc.StorageKey)
}

// stream proxies the stored object to the client.
func (h *DocumentHandler) stream(w http.ResponseWriter, r *http.Request, storageKey string) {
	target := strings.TrimSuffix(h.storageBaseURL, "/") + "/" + strings.TrimPrefix(storageKey, "/")

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target, nil)
	if err != nil {
		h.logger.Error("Failed to build storage request", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "document_failed", "Failed to load document")
		return
	}

	resp, err := h.client.Do(req)
	if err != nil {
		h.logger.Error("Storage fetch failed",
			zap.String("storage_key", storageKey),
			zap.Error(err))
		h.writeError(w, http.StatusBadGateway, "storage_unavailable", "Document storage unavailable")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		h.logger.Warn("Storage returned non-200",
			zap.String("storage_key", storageKey),
			zap.Int("status", resp.StatusCode))
		h.writeError(w, http.StatusBadGateway, "storage_unavailable", "Document storage unavailable")
		return
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		w.Header().Set("Content-Length", cl)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		// Headers are already out; nothing to do but log.
		h.logger.Debug("Document stream interrupted", zap.Error(err))
	}
}

// isDirectURL reports whether a locator is a well-formed http(s) URL.
func isDirectURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (h *DocumentHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	if err := ErrorResponse(w, status, code, message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}
