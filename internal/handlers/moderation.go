package handlers

import (
	"net/http"

	"really-simple-feedback/internal/feedback"
	"really-simple-feedback/internal/respond"

	"github.com/go-chi/chi/v5"
)

// ModerationHandler serves the read/unread toggles. The router guards both
// routes with the moderation capability.
type ModerationHandler struct {
	moderation *feedback.ModerationService
}

func NewModerationHandler(moderation *feedback.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderation: moderation}
}

// --- POST /mark_as_read/{id} ---

func (h *ModerationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	ack, err := h.moderation.MarkAsRead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Message(w, http.StatusOK, ack.Message())
}

// --- POST /mark_as_unread/{id} ---

func (h *ModerationHandler) MarkAsUnread(w http.ResponseWriter, r *http.Request) {
	ack, err := h.moderation.MarkAsUnread(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Message(w, http.StatusOK, ack.Message())
}
