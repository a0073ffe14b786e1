package middleware

import (
	"context"
	"net/http"
	"strings"

	"really-simple-feedback/internal/apperrors"
	"really-simple-feedback/internal/auth"
	"really-simple-feedback/internal/logger"
	"really-simple-feedback/internal/models"
	"really-simple-feedback/internal/respond"
)

type contextKey string

const principalKey contextKey = "principal"

// NonceHeader carries the REST nonce from admin scripts.
const NonceHeader = "X-WP-Nonce"

// Policy decides whether an authenticated request may proceed. It is only
// consulted once a principal is attached to the context.
type Policy func(r *http.Request) bool

// JWTAuth attaches the caller's principal to the request context when a valid
// session bearer token or REST nonce is present. Each credential must carry
// its own scope, and capabilities are resolved fresh on every request rather
// than read from the token. It never rejects a request itself;
// RequireCapability does that for the routes that need it.
func JWTAuth(issuer *auth.TokenIssuer, resolver *auth.CapabilityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, scope := bearerToken(r), auth.ScopeSession
			if token == "" {
				token, scope = r.Header.Get(NonceHeader), auth.ScopeREST
			}
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			identity, tokenScope, err := issuer.Parse(token)
			if err != nil {
				logger.Get().Debugw("Ignoring invalid token", "error", err, "path", r.URL.Path)
				next.ServeHTTP(w, r)
				return
			}
			if tokenScope != scope {
				logger.Get().Debugw("Ignoring token with wrong scope", "scope", tokenScope, "want", scope, "path", r.URL.Path)
				next.ServeHTTP(w, r)
				return
			}
			principal := resolver.Principal(identity.Email)
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// RequireCapability short-circuits with 401 when no principal is attached and
// 403 when the policy refuses.
func RequireCapability(policy Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetPrincipal(r.Context()) == nil {
				respond.Error(w, r, apperrors.NotAuthenticated())
				return
			}
			if !policy(r) {
				respond.Error(w, r, apperrors.NotAllowed())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Can builds a Policy requiring one capability of the request's principal.
func Can(capability string) Policy {
	return func(r *http.Request) bool {
		return GetPrincipal(r.Context()).Can(capability)
	}
}

func WithPrincipal(ctx context.Context, p *models.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal returns the authenticated caller, or nil.
func GetPrincipal(ctx context.Context) *models.Principal {
	p, _ := ctx.Value(principalKey).(*models.Principal)
	return p
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
