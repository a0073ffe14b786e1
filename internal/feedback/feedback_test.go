package feedback

import (
	"context"
	"errors"
	"testing"

	"really-simple-feedback/internal/apperrors"
	"really-simple-feedback/internal/models"
	"really-simple-feedback/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

// failingStore rejects every call.
type failingStore struct{ *repository.MemoryRecordStore }

func (failingStore) Create(context.Context, string, map[string]string) (string, error) {
	return "", errors.New("store unavailable")
}

func (failingStore) Get(context.Context, string) (*models.Record, error) {
	return nil, errors.New("store unavailable")
}

func newServices() (*repository.MemoryRecordStore, *SubmissionService, *ModerationService) {
	store := repository.NewMemoryRecordStore()
	log := zap.NewNop().Sugar()
	return store, NewSubmissionService(store, log), NewModerationService(store, log)
}

func countFeedback(t *testing.T, store repository.RecordStore) int {
	t.Helper()
	records, err := store.List(context.Background(), models.FeedbackCategory)
	require.NoError(t, err)
	return len(records)
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		kind    apperrors.Kind
	}{
		{"missing rating", Payload{Comment: "Great job"}, apperrors.MissingRating},
		{"missing rating and comment", Payload{}, apperrors.MissingRating},
		{"empty rating", Payload{Rating: strPtr(""), Comment: "Great job"}, apperrors.InvalidRating},
		{"capitalised rating", Payload{Rating: strPtr("Satisfied"), Comment: "Great job"}, apperrors.InvalidRating},
		{"unknown rating before comment", Payload{Rating: strPtr("meh")}, apperrors.InvalidRating},
		{"missing comment", Payload{Rating: strPtr("satisfied")}, apperrors.MissingComment},
		{"whitespace comment", Payload{Rating: strPtr("unsatisfied"), Comment: "  \n\t "}, apperrors.MissingComment},
		{"markup only comment", Payload{Rating: strPtr("unsatisfied"), Comment: "<br/>"}, apperrors.MissingComment},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store, submissions, _ := newServices()

			_, err := submissions.Submit(context.Background(), tc.payload)

			require.Error(t, err)
			assert.True(t, apperrors.IsKind(err, tc.kind), "got %v", err)
			assert.Equal(t, 400, apperrors.From(err).Status)
			assert.Zero(t, countFeedback(t, store))
		})
	}
}

func TestSubmitPersistsUnreadRecord(t *testing.T) {
	store, submissions, _ := newServices()

	summary, err := submissions.Submit(context.Background(), Payload{
		Rating:       strPtr("satisfied"),
		Comment:      " Great <em>job</em> ",
		ReferringURL: "https://example.com/pricing",
		UserAgent:    "Mozilla/5.0",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, summary.ID)
	assert.Equal(t, "Successfully created feedback #"+summary.ID, summary.Message())

	rec, err := store.Get(context.Background(), summary.ID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	fb := models.FeedbackFromRecord(rec)
	assert.Equal(t, models.FeedbackCategory, rec.Category)
	assert.Equal(t, models.RatingSatisfied, fb.Rating)
	assert.Equal(t, "Great job", fb.Comment)
	assert.Equal(t, "https://example.com/pricing", fb.ReferringURL)
	assert.Equal(t, "Mozilla/5.0", fb.UserAgent)
	assert.False(t, fb.MarkedAsRead)
}

func TestValidate(t *testing.T) {
	_, submissions, _ := newServices()

	fb, err := submissions.Validate(Payload{Rating: strPtr("unsatisfied"), Comment: "  Too <b>slow</b> ", UserAgent: "curl/8"})
	require.NoError(t, err)
	assert.Equal(t, models.Feedback{Rating: models.RatingUnsatisfied, Comment: "Too slow", UserAgent: "curl/8"}, fb)

	// Rating is reported before the comment when both fail.
	_, err = submissions.Validate(Payload{Rating: strPtr("meh"), Comment: " "})
	assert.True(t, apperrors.IsKind(err, apperrors.InvalidRating), "got %v", err)
}

func TestSubmitKeepsEncodedMarkupAsText(t *testing.T) {
	tests := []struct {
		comment string
		want    string
	}{
		{"&lt;b&gt;hi&lt;/b&gt;", "&lt;b&gt;hi&lt;/b&gt;"},
		{"&nbsp;", "&nbsp;"},
		{"&#32;", "&#32;"},
	}

	for _, tc := range tests {
		t.Run(tc.comment, func(t *testing.T) {
			store, submissions, _ := newServices()

			summary, err := submissions.Submit(context.Background(), Payload{Rating: strPtr("satisfied"), Comment: tc.comment})
			require.NoError(t, err)

			rec, err := store.Get(context.Background(), summary.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, rec.Attribute(models.AttrComment))
		})
	}
}

func TestSubmitOmitsMissingContext(t *testing.T) {
	store, submissions, _ := newServices()

	summary, err := submissions.Submit(context.Background(), Payload{Rating: strPtr("unsatisfied"), Comment: "Too slow"})
	require.NoError(t, err)

	rec, err := store.Get(context.Background(), summary.ID)
	require.NoError(t, err)
	assert.False(t, rec.HasAttribute(models.AttrURL))
	assert.False(t, rec.HasAttribute(models.AttrUserAgent))
}

func TestSubmitStoreFailure(t *testing.T) {
	submissions := NewSubmissionService(failingStore{}, zap.NewNop().Sugar())

	_, err := submissions.Submit(context.Background(), Payload{Rating: strPtr("satisfied"), Comment: "ok"})

	assert.True(t, apperrors.IsKind(err, apperrors.Internal))
	assert.Equal(t, 500, apperrors.From(err).Status)
}

func TestMarkAsReadThenUnread(t *testing.T) {
	ctx := context.Background()
	store, submissions, moderation := newServices()
	summary, err := submissions.Submit(ctx, Payload{Rating: strPtr("satisfied"), Comment: "Great job"})
	require.NoError(t, err)

	ack, err := moderation.MarkAsRead(ctx, summary.ID)
	require.NoError(t, err)
	assert.Equal(t, Ack{ID: summary.ID, MarkedAsRead: true}, ack)
	assert.Equal(t, "Successfully marked feedback #"+summary.ID+" as read.", ack.Message())

	rec, _ := store.Get(ctx, summary.ID)
	assert.True(t, models.FeedbackFromRecord(rec).MarkedAsRead)

	ack, err = moderation.MarkAsUnread(ctx, summary.ID)
	require.NoError(t, err)
	assert.Equal(t, "Successfully marked feedback #"+summary.ID+" as unread.", ack.Message())

	rec, _ = store.Get(ctx, summary.ID)
	assert.False(t, models.FeedbackFromRecord(rec).MarkedAsRead)
	assert.False(t, rec.HasAttribute(models.AttrMarkedAsRead))
}

func TestModerationRepeatedCallsSucceed(t *testing.T) {
	ctx := context.Background()
	_, submissions, moderation := newServices()
	summary, err := submissions.Submit(ctx, Payload{Rating: strPtr("satisfied"), Comment: "Great job"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = moderation.MarkAsRead(ctx, summary.ID)
		assert.NoError(t, err)
	}
	for i := 0; i < 2; i++ {
		_, err = moderation.MarkAsUnread(ctx, summary.ID)
		assert.NoError(t, err)
	}
}

func TestModerationErrors(t *testing.T) {
	ctx := context.Background()
	store, _, moderation := newServices()
	pageID, err := store.Create(ctx, "page", map[string]string{"title": "About"})
	require.NoError(t, err)

	_, err = moderation.MarkAsRead(ctx, "404")
	assert.True(t, apperrors.IsKind(err, apperrors.NotFound))

	_, err = moderation.MarkAsUnread(ctx, "404")
	assert.True(t, apperrors.IsKind(err, apperrors.NotFound))

	_, err = moderation.MarkAsRead(ctx, pageID)
	assert.True(t, apperrors.IsKind(err, apperrors.WrongRecordType))

	rec, _ := store.Get(ctx, pageID)
	assert.False(t, rec.HasAttribute(models.AttrMarkedAsRead))
}

func TestModerationStoreFailure(t *testing.T) {
	moderation := NewModerationService(failingStore{}, zap.NewNop().Sugar())

	_, err := moderation.MarkAsRead(context.Background(), "1")

	assert.True(t, apperrors.IsKind(err, apperrors.Internal))
}
