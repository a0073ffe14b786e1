package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"really-simple-feedback/internal/auth"
	"really-simple-feedback/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protected(issuer *auth.TokenIssuer) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	resolver := auth.NewCapabilityResolver([]string{"admin@example.com"})
	return JWTAuth(issuer, resolver)(RequireCapability(Can(models.CapEditOthersPosts))(ok))
}

func TestRequireCapability(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret")
	adminPrincipal := &models.Principal{Email: "admin@example.com", Capabilities: []string{models.CapEditOthersPosts}}
	admin, err := issuer.IssueSession(adminPrincipal)
	require.NoError(t, err)
	adminNonce, err := issuer.IssueNonce(adminPrincipal)
	require.NoError(t, err)
	visitor, err := issuer.IssueSession(&models.Principal{Email: "visitor@example.com"})
	require.NoError(t, err)
	formerAdmin, err := issuer.IssueSession(&models.Principal{Email: "ex-admin@example.com", Capabilities: []string{models.CapEditOthersPosts}})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		value  string
		want   int
	}{
		{"no credentials", "", "", http.StatusUnauthorized},
		{"invalid token", "Authorization", "Bearer not-a-token", http.StatusUnauthorized},
		{"missing capability", "Authorization", "Bearer " + visitor, http.StatusForbidden},
		{"admin bearer", "Authorization", "Bearer " + admin, http.StatusNoContent},
		{"admin nonce", NonceHeader, adminNonce, http.StatusNoContent},
		{"session token as nonce", NonceHeader, admin, http.StatusUnauthorized},
		{"nonce as bearer", "Authorization", "Bearer " + adminNonce, http.StatusUnauthorized},
		{"stale capabilities in token", "Authorization", "Bearer " + formerAdmin, http.StatusForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/mark_as_read/1", nil)
			if tc.header != "" {
				req.Header.Set(tc.header, tc.value)
			}
			w := httptest.NewRecorder()

			protected(issuer).ServeHTTP(w, req)

			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestPolicyIsPluggable(t *testing.T) {
	denyAll := RequireCapability(func(*http.Request) bool { return false })(http.NotFoundHandler())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithPrincipal(req.Context(), &models.Principal{Email: "a@example.com", Capabilities: []string{models.CapEditOthersPosts}}))
	w := httptest.NewRecorder()

	denyAll.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"code":"forbidden","message":"Sorry, you are not allowed to do that.","data":{"status":403}}`, w.Body.String())
}

func TestPolicyNeedsPrincipal(t *testing.T) {
	allowAll := RequireCapability(func(*http.Request) bool { return true })(http.NotFoundHandler())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	allowAll.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
