package api

import (
	"errors"
	"net/http"

	"agencysite/internal/assistant"
	"agencysite/internal/content"

	"github.com/sirupsen/logrus"
)

const leadCaptureHeader = "X-Lead-Capture"

type ChatRequest struct {
	Messages     []assistant.Message `json:"messages"`
	LeadCaptured bool                `json:"lead_captured,omitempty"`
	LeadPrompted bool                `json:"lead_prompted,omitempty"`
}

type AdminChatResponse struct {
	Content string `json:"content"`
	Admin   bool   `json:"admin"`
}

// ChatHandler answers in the mode resolved for the caller: an event stream
// for visitors, one JSON document for admins.
func (h *Handler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "messages are required")
		return
	}

	mode := assistant.ModeFromContext(r.Context())
	h.metrics.ChatRequest(string(mode))

	switch mode {
	case assistant.ModeAdmin:
		h.adminChat(w, r, req)
	default:
		h.visitorChat(w, r, req)
	}
}

func (h *Handler) adminChat(w http.ResponseWriter, r *http.Request, req ChatRequest) {
	reply, err := h.assistantService.RunAdmin(r.Context(), req.Messages)
	if err != nil {
		writeChatError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AdminChatResponse{Content: reply.Content, Admin: true})
}

func (h *Handler) visitorChat(w http.ResponseWriter, r *http.Request, req ChatRequest) {
	stream, err := h.assistantService.OpenVisitorStream(r.Context(), req.Messages)
	if err != nil {
		writeChatError(w, err)
		return
	}

	flusher, _ := w.(http.Flusher)
	flush := func() {
		if flusher != nil {
			flusher.Flush()
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	if assistant.ShouldPromptForLead(req.Messages, req.LeadCaptured, req.LeadPrompted) {
		w.Header().Set(leadCaptureHeader, "prompt")
	}
	w.WriteHeader(http.StatusOK)
	flush()

	if _, err := stream.Relay(w, flush); err != nil {
		logrus.Errorf("visitor stream ended with error: %v", err)
	}
}

func writeChatError(w http.ResponseWriter, err error) {
	var upErr *assistant.UpstreamError
	if errors.As(err, &upErr) {
		writeError(w, upErr.Kind.HTTPStatus(), upErr.Kind.Message())
		return
	}
	logrus.Errorf("chat request failed: %v", err)
	writeError(w, http.StatusInternalServerError, assistant.ErrorUpstream.Message())
}

type LeadResponse struct {
	Success bool `json:"success"`
}

func (h *Handler) CaptureLeadHandler(w http.ResponseWriter, r *http.Request) {
	var lead content.ChatLead
	if !decodeBody(w, r, &lead) {
		return
	}

	if _, err := h.contentService.CaptureLead(r.Context(), lead); err != nil {
		switch {
		case errors.Is(err, content.ErrLeadNameRequired), errors.Is(err, content.ErrLeadInvalidEmail):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "could not save your details")
		}
		return
	}
	writeJSON(w, http.StatusCreated, LeadResponse{Success: true})
}
