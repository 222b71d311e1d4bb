package api

import (
	"errors"
	"net/http"

	"agencysite/internal/content"

	"github.com/go-chi/chi/v5"
)

// ListContentHandler serves the visible rows of table in presentation order.
func (h *Handler) ListContentHandler(table content.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := h.contentService.Published(r.Context(), table)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "could not load content")
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func (h *Handler) BlogPostHandler(w http.ResponseWriter, r *http.Request) {
	post, err := h.contentService.BlogPostBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, content.ErrPostNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
		} else {
			writeError(w, http.StatusInternalServerError, "could not load post")
		}
		return
	}
	writeJSON(w, http.StatusOK, post)
}
