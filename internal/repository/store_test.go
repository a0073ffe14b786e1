package repository

import (
	"context"
	"testing"
	"time"

	"really-simple-feedback/internal/database"
	"really-simple-feedback/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLStores(t *testing.T) (*SQLRecordRepo, *SQLAuthTokenRepo) {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)

	records := NewSQLRecordRepo(db)
	require.NoError(t, records.Migrate())
	tokens := NewSQLAuthTokenRepo(db)
	require.NoError(t, tokens.Migrate())
	return records, tokens
}

// newMongoStores is set when the package is built with the integration tag.
var newMongoStores func(t *testing.T) (*MongoRecordRepo, *MongoAuthTokenRepo)

func recordStores(t *testing.T) map[string]RecordStore {
	sqlRecords, _ := newSQLStores(t)
	stores := map[string]RecordStore{
		"memory": NewMemoryRecordStore(),
		"sqlite": sqlRecords,
	}
	if newMongoStores != nil {
		stores["mongo"], _ = newMongoStores(t)
	}
	return stores
}

func tokenStores(t *testing.T) map[string]AuthTokenStore {
	_, sqlTokens := newSQLStores(t)
	stores := map[string]AuthTokenStore{
		"memory": NewMemoryAuthTokenStore(),
		"sqlite": sqlTokens,
	}
	if newMongoStores != nil {
		_, stores["mongo"] = newMongoStores(t)
	}
	return stores
}

func TestRecordStoreCreateAndGet(t *testing.T) {
	ctx := context.Background()
	for name, store := range recordStores(t) {
		t.Run(name, func(t *testing.T) {
			id, err := store.Create(ctx, models.FeedbackCategory, map[string]string{
				models.AttrRating:  "satisfied",
				models.AttrComment: "Great job",
			})
			require.NoError(t, err)
			require.NotEmpty(t, id)

			rec, err := store.Get(ctx, id)
			require.NoError(t, err)
			require.NotNil(t, rec)
			assert.Equal(t, id, rec.ID)
			assert.Equal(t, models.FeedbackCategory, rec.Category)
			assert.Equal(t, "satisfied", rec.Attribute(models.AttrRating))
			assert.Equal(t, "Great job", rec.Attribute(models.AttrComment))
			assert.False(t, rec.HasAttribute(models.AttrMarkedAsRead))
			assert.WithinDuration(t, time.Now(), rec.CreatedAt, time.Minute)
		})
	}
}

func TestRecordStoreGetMissing(t *testing.T) {
	ctx := context.Background()
	for name, store := range recordStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, id := range []string{"999", "not-an-id", ""} {
				rec, err := store.Get(ctx, id)
				assert.NoError(t, err)
				assert.Nil(t, rec)
			}
		})
	}
}

func TestRecordStoreAttributes(t *testing.T) {
	ctx := context.Background()
	for name, store := range recordStores(t) {
		t.Run(name, func(t *testing.T) {
			id, err := store.Create(ctx, models.FeedbackCategory, map[string]string{models.AttrRating: "unsatisfied"})
			require.NoError(t, err)

			require.NoError(t, store.SetAttribute(ctx, id, models.AttrMarkedAsRead, "1"))
			require.NoError(t, store.SetAttribute(ctx, id, models.AttrMarkedAsRead, "1"))
			rec, err := store.Get(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, "1", rec.Attribute(models.AttrMarkedAsRead))

			require.NoError(t, store.DeleteAttribute(ctx, id, models.AttrMarkedAsRead))
			require.NoError(t, store.DeleteAttribute(ctx, id, models.AttrMarkedAsRead))
			rec, err = store.Get(ctx, id)
			require.NoError(t, err)
			assert.False(t, rec.HasAttribute(models.AttrMarkedAsRead))
			assert.Equal(t, "unsatisfied", rec.Attribute(models.AttrRating))

			assert.ErrorIs(t, store.SetAttribute(ctx, "12345", "k", "v"), ErrNotFound)
			assert.ErrorIs(t, store.DeleteAttribute(ctx, "12345", "k"), ErrNotFound)
		})
	}
}

func TestRecordStoreListFiltersByCategoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	for name, store := range recordStores(t) {
		t.Run(name, func(t *testing.T) {
			first, err := store.Create(ctx, models.FeedbackCategory, map[string]string{models.AttrComment: "first"})
			require.NoError(t, err)
			_, err = store.Create(ctx, "page", map[string]string{"title": "About"})
			require.NoError(t, err)
			second, err := store.Create(ctx, models.FeedbackCategory, map[string]string{models.AttrComment: "second"})
			require.NoError(t, err)

			records, err := store.List(ctx, models.FeedbackCategory)
			require.NoError(t, err)
			require.Len(t, records, 2)
			assert.Equal(t, second, records[0].ID)
			assert.Equal(t, first, records[1].ID)

			empty, err := store.List(ctx, "attachment")
			require.NoError(t, err)
			assert.Empty(t, empty)
		})
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRecordStore()
	attrs := map[string]string{models.AttrComment: "original"}
	id, err := store.Create(ctx, models.FeedbackCategory, attrs)
	require.NoError(t, err)

	attrs[models.AttrComment] = "changed by caller"
	rec, err := store.Get(ctx, id)
	require.NoError(t, err)
	rec.Attributes[models.AttrComment] = "changed again"

	again, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "original", again.Attribute(models.AttrComment))
}

func TestAuthTokenStoreSingleUse(t *testing.T) {
	ctx := context.Background()
	for name, store := range tokenStores(t) {
		t.Run(name, func(t *testing.T) {
			token := &models.AuthToken{
				Email:     "admin@example.com",
				Token:     "tok-1",
				ExpiresAt: time.Now().Add(15 * time.Minute),
			}
			require.NoError(t, store.Create(ctx, token))

			found, err := store.FindByToken(ctx, "tok-1")
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, "admin@example.com", found.Email)
			assert.False(t, found.IsUsed)

			used, err := store.MarkUsed(ctx, "tok-1")
			require.NoError(t, err)
			assert.True(t, used)

			used, err = store.MarkUsed(ctx, "tok-1")
			require.NoError(t, err)
			assert.False(t, used)

			missing, err := store.FindByToken(ctx, "nope")
			require.NoError(t, err)
			assert.Nil(t, missing)
		})
	}
}
