package handlers

import (
	"encoding/json"
	"net/http"

	"bharatlaw-ai/internal/service"
)

// ActsHandler serves the ingested sections file for the legal library page.
type ActsHandler struct {
	catalog service.CatalogService
}

// NewActsHandler creates a new ActsHandler.
func NewActsHandler(catalog service.CatalogService) *ActsHandler {
	return &ActsHandler{catalog: catalog}
}

// ServeHTTP returns every record of the acts file as one JSON array.
func (h *ActsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.catalog.Records(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to load acts")
		return
	}
	if records == nil {
		records = []json.RawMessage{}
	}
	writeJSON(ctx, w, http.StatusOK, records)
}
