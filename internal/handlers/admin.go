package handlers

import (
	"net/http"

	"really-simple-feedback/internal/apperrors"
	"really-simple-feedback/internal/auth"
	"really-simple-feedback/internal/middleware"
	"really-simple-feedback/internal/models"
	"really-simple-feedback/internal/presenter"
	"really-simple-feedback/internal/repository"
	"really-simple-feedback/internal/respond"
)

type AdminHandler struct {
	store   repository.RecordStore
	issuer  *auth.TokenIssuer
	siteURL string
}

func NewAdminHandler(store repository.RecordStore, issuer *auth.TokenIssuer, siteURL string) *AdminHandler {
	return &AdminHandler{store: store, issuer: issuer, siteURL: siteURL}
}

// AdminConfig is injected into the admin list page for the row scripts.
type AdminConfig struct {
	SiteURL          string `json:"site_url"`
	Nonce            string `json:"nonce"`
	MarkAsReadText   string `json:"mark_as_read_text"`
	MarkAsUnreadText string `json:"mark_as_unread_text"`
}

// --- GET /admin/feedback ---

func (h *AdminHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.List(r.Context(), models.FeedbackCategory)
	if err != nil {
		respond.Error(w, r, apperrors.Wrap(err, "failed to list feedback"))
		return
	}

	respond.JSON(w, http.StatusOK, presenter.BuildList(records, presenter.DefaultRowActions, presenter.DefaultBulkActions()))
}

// --- GET /admin/config ---

func (h *AdminHandler) Config(w http.ResponseWriter, r *http.Request) {
	nonce, err := h.issuer.IssueNonce(middleware.GetPrincipal(r.Context()))
	if err != nil {
		respond.Error(w, r, apperrors.Wrap(err, "failed to create nonce"))
		return
	}

	respond.JSON(w, http.StatusOK, AdminConfig{
		SiteURL:          h.siteURL,
		Nonce:            nonce,
		MarkAsReadText:   presenter.MarkAsReadText,
		MarkAsUnreadText: presenter.MarkAsUnreadText,
	})
}
