package repository

import (
	"context"
	"errors"

	"really-simple-feedback/internal/models"
)

// ErrNotFound is returned by attribute writes against a missing record.
var ErrNotFound = errors.New("record not found")

// RecordStore persists category-tagged records with string attributes.
// Create commits the record and all of its attributes as one write. Get
// returns (nil, nil) for unknown or malformed ids.
type RecordStore interface {
	Create(ctx context.Context, category string, attributes map[string]string) (string, error)
	Get(ctx context.Context, id string) (*models.Record, error)
	SetAttribute(ctx context.Context, id, key, value string) error
	DeleteAttribute(ctx context.Context, id, key string) error
	List(ctx context.Context, category string) ([]*models.Record, error)
}

// AuthTokenStore keeps admin login tokens. MarkUsed reports whether this call
// consumed the token, so a token can be redeemed only once.
type AuthTokenStore interface {
	Create(ctx context.Context, token *models.AuthToken) error
	FindByToken(ctx context.Context, token string) (*models.AuthToken, error)
	MarkUsed(ctx context.Context, token string) (bool, error)
}

// IndexEnsurer is implemented by stores that need indexes created at startup.
type IndexEnsurer interface {
	EnsureIndexes(ctx context.Context) error
}
