// Package auth issues and verifies the signed tokens that identify admin
// callers: 30 day session tokens and short-lived REST nonces.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"really-simple-feedback/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Token scopes.
const (
	ScopeSession = "session"
	ScopeREST    = "wp_rest"
)

const (
	SessionTTL = 30 * 24 * time.Hour
	NonceTTL   = 12 * time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Capabilities []string `json:"caps"`
	Scope        string   `json:"scope"`
	jwt.RegisteredClaims
}

type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

func (i *TokenIssuer) IssueSession(p *models.Principal) (string, error) {
	return i.issue(p, ScopeSession, SessionTTL)
}

// IssueNonce mints the REST nonce handed to admin scripts.
func (i *TokenIssuer) IssueNonce(p *models.Principal) (string, error) {
	return i.issue(p, ScopeREST, NonceTTL)
}

func (i *TokenIssuer) issue(p *models.Principal, scope string, ttl time.Duration) (string, error) {
	now := i.now()
	claims := Claims{
		Capabilities: p.Capabilities,
		Scope:        scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and returns its principal and scope.
func (i *TokenIssuer) Parse(tokenString string) (*models.Principal, string, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return &models.Principal{Email: claims.Subject, Capabilities: claims.Capabilities}, claims.Scope, nil
}

// CapabilityResolver grants capabilities by email address.
type CapabilityResolver struct {
	admins map[string]struct{}
}

func NewCapabilityResolver(adminEmails []string) *CapabilityResolver {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	return &CapabilityResolver{admins: admins}
}

func (r *CapabilityResolver) Principal(email string) *models.Principal {
	email = strings.ToLower(strings.TrimSpace(email))
	p := &models.Principal{Email: email, Capabilities: []string{}}
	if _, ok := r.admins[email]; ok {
		p.Capabilities = append(p.Capabilities, models.CapEditOthersPosts)
	}
	return p
}
