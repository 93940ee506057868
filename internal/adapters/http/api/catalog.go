// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
)

// CatalogHandler handles catalog browse requests.
type CatalogHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps Dependencies, maxLimit int) *CatalogHandler {
	return &CatalogHandler{deps: deps, maxLimit: maxLimit}
}

// HandleGetCatalog handles GET /catalog?limit=N requests, returning the
// most effective entries first.
func (h *CatalogHandler) HandleGetCatalog(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_catalog"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n := h.maxLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if parsed > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
			return
		}
		n = parsed
	}
	entries, err := h.deps.TopEffective(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
