package api

import (
	"errors"
	"net/http"

	"agencysite/internal/booking"
)

type BookingResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

func (h *Handler) BookingHandler(w http.ResponseWriter, r *http.Request) {
	var req booking.Request
	if !decodeBody(w, r, &req) {
		return
	}

	id, err := h.bookingService.Submit(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrMissingFields):
			writeError(w, http.StatusBadRequest, "Missing required fields")
		case errors.Is(err, booking.ErrInvalidEmail):
			writeError(w, http.StatusBadRequest, "Invalid email address")
		case errors.Is(err, booking.ErrFieldTooLong):
			writeError(w, http.StatusBadRequest, "Field length exceeded")
		case errors.Is(err, booking.ErrNotConfigured):
			writeError(w, http.StatusInternalServerError, "Email service not configured")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to send email")
		}
		return
	}
	writeJSON(w, http.StatusOK, BookingResponse{Success: true, ID: id})
}
