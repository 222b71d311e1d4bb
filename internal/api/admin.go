package api

import (
	"net/http"
	"strconv"

	"agencysite/internal/assistant"
)

// AuditLogHandler lists recent admin tool calls. It runs behind the
// identity resolver and is only served in admin mode.
func (h *Handler) AuditLogHandler(w http.ResponseWriter, r *http.Request) {
	if assistant.ModeFromContext(r.Context()) != assistant.ModeAdmin {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := h.auditService.RecentToolCalls(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load audit log")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
