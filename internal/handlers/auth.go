package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"really-simple-feedback/internal/apperrors"
	"really-simple-feedback/internal/auth"
	"really-simple-feedback/internal/logger"
	"really-simple-feedback/internal/mailer"
	"really-simple-feedback/internal/models"
	"really-simple-feedback/internal/repository"
	"really-simple-feedback/internal/respond"

	"github.com/google/uuid"
)

const loginTokenTTL = 15 * time.Minute

type AuthHandler struct {
	tokens   repository.AuthTokenStore
	issuer   *auth.TokenIssuer
	resolver *auth.CapabilityResolver
	mail     mailer.Sender
	baseURL  string
}

func NewAuthHandler(tokens repository.AuthTokenStore, issuer *auth.TokenIssuer, resolver *auth.CapabilityResolver, mail mailer.Sender, baseURL string) *AuthHandler {
	return &AuthHandler{
		tokens:   tokens,
		issuer:   issuer,
		resolver: resolver,
		mail:     mail,
		baseURL:  baseURL,
	}
}

// --- Request / Response types ---

type RequestLoginRequest struct {
	Email string `json:"email"`
}

type VerifyResponse struct {
	Token     string            `json:"token"`
	Principal *models.Principal `json:"principal"`
}

const loginRequestedMessage = "If that address belongs to an administrator, a login link is on its way."

// --- POST /auth/request ---

func (h *AuthHandler) RequestLogin(w http.ResponseWriter, r *http.Request) {
	var req RequestLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, apperrors.InvalidBody("invalid request body"))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		respond.Error(w, r, apperrors.InvalidBody("email is required"))
		return
	}

	// Only administrators get a link; the response does not reveal who is one.
	if len(h.resolver.Principal(email).Capabilities) == 0 {
		logger.Get().Infow("Login requested for non-admin address", "email", email)
		respond.Message(w, http.StatusOK, loginRequestedMessage)
		return
	}

	authToken := &models.AuthToken{
		Email:     email,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(loginTokenTTL),
	}
	if err := h.tokens.Create(r.Context(), authToken); err != nil {
		respond.Error(w, r, apperrors.Wrap(err, "failed to create login token"))
		return
	}

	link := fmt.Sprintf("%s/auth/verify?token=%s", h.loginBaseURL(r), authToken.Token)
	if err := h.mail.Send(r.Context(), loginEmail(email, link)); err != nil {
		// The token exists; delivery is best-effort.
		logger.Get().Warnw("Failed to send login email", "email", email, "error", err)
	}

	respond.Message(w, http.StatusOK, loginRequestedMessage)
}

// --- GET /auth/verify ---

func (h *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	tokenValue := r.URL.Query().Get("token")
	if tokenValue == "" {
		respond.Error(w, r, apperrors.InvalidBody("token is required"))
		return
	}

	authToken, err := h.tokens.FindByToken(r.Context(), tokenValue)
	if err != nil {
		respond.Error(w, r, apperrors.Wrap(err, "failed to verify token"))
		return
	}
	if authToken == nil || authToken.IsExpired() {
		respond.Error(w, r, apperrors.NotAuthenticated())
		return
	}

	consumed, err := h.tokens.MarkUsed(r.Context(), tokenValue)
	if err != nil {
		respond.Error(w, r, apperrors.Wrap(err, "failed to verify token"))
		return
	}
	if !consumed {
		respond.Error(w, r, apperrors.NotAuthenticated())
		return
	}

	principal := h.resolver.Principal(authToken.Email)
	session, err := h.issuer.IssueSession(principal)
	if err != nil {
		respond.Error(w, r, apperrors.Wrap(err, "failed to create session"))
		return
	}

	respond.JSON(w, http.StatusOK, VerifyResponse{Token: session, Principal: principal})
}

// loginBaseURL prefers the configured BASE_URL and falls back to the
// incoming request's scheme and host.
func (h *AuthHandler) loginBaseURL(r *http.Request) string {
	if h.baseURL != "" {
		return strings.TrimRight(h.baseURL, "/")
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, r.Host)
}

func loginEmail(to, link string) mailer.Message {
	return mailer.Message{
		To:      to,
		Subject: "Your feedback admin login link",
		HTML: fmt.Sprintf(`
			<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
				<h2 style="color: #333;">Review your feedback</h2>
				<p>Click the button below to log in to the feedback admin:</p>
				<a href="%s" style="display: inline-block; background: #6366f1; color: white; padding: 12px 24px; border-radius: 8px; text-decoration: none; font-weight: 600;">
					Log in
				</a>
				<p style="color: #888; font-size: 14px; margin-top: 16px;">
					This link expires in 15 minutes and can only be used once.
				</p>
			</div>
		`, link),
	}
}
