package api

import (
	"net/http"
	"strconv"

	"github.com/courseforge/courseforge-api/internal/api/shared"
	"github.com/courseforge/courseforge-api/internal/domain"
	"github.com/courseforge/courseforge-api/internal/store"
)

// UsageHandler handles usage-log API requests.
type UsageHandler struct {
	usageStore store.UsageStore
}

// NewUsageHandler creates a new UsageHandler.
func NewUsageHandler(usageStore store.UsageStore) *UsageHandler {
	return &UsageHandler{usageStore: usageStore}
}

// List handles GET /usage, returning the authenticated user's recent
// usage records, newest first.
func (h *UsageHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	limit := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		limit = v
	}

	records, err := h.usageStore.ListByUser(r.Context(), userID, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list usage records")
		return
	}

	out := make([]UsageRecordResponse, 0, len(records))
	for _, record := range records {
		out = append(out, NewUsageRecordResponse(record))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, out)
}
