package feedback

import (
	"context"
	"errors"
	"fmt"

	"really-simple-feedback/internal/apperrors"
	"really-simple-feedback/internal/models"
	"really-simple-feedback/internal/repository"

	"go.uber.org/zap"
)

type Ack struct {
	ID           string `json:"id"`
	MarkedAsRead bool   `json:"marked_as_read"`
}

func (a Ack) Message() string {
	state := "unread"
	if a.MarkedAsRead {
		state = "read"
	}
	return fmt.Sprintf("Successfully marked feedback #%s as %s.", a.ID, state)
}

// ModerationService toggles the read state of feedback. Callers must have
// authorized the request already. Concurrent toggles are last-writer-wins.
type ModerationService struct {
	store repository.RecordStore
	log   *zap.SugaredLogger
}

func NewModerationService(store repository.RecordStore, log *zap.SugaredLogger) *ModerationService {
	return &ModerationService{store: store, log: log}
}

func (s *ModerationService) MarkAsRead(ctx context.Context, id string) (Ack, error) {
	return s.setRead(ctx, id, true)
}

func (s *ModerationService) MarkAsUnread(ctx context.Context, id string) (Ack, error) {
	return s.setRead(ctx, id, false)
}

func (s *ModerationService) setRead(ctx context.Context, id string, read bool) (Ack, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return Ack{}, apperrors.Wrap(err, "failed to load feedback")
	}
	if rec == nil {
		return Ack{}, apperrors.FeedbackNotFound(id)
	}
	if rec.Category != models.FeedbackCategory {
		return Ack{}, apperrors.WrongPostType(models.FeedbackCategory)
	}

	if read {
		err = s.store.SetAttribute(ctx, rec.ID, models.AttrMarkedAsRead, "1")
	} else {
		err = s.store.DeleteAttribute(ctx, rec.ID, models.AttrMarkedAsRead)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return Ack{}, apperrors.FeedbackNotFound(id)
	}
	if err != nil {
		return Ack{}, apperrors.Wrap(err, "failed to update feedback")
	}

	s.log.Infow("Feedback moderated", "id", rec.ID, "marked_as_read", read)
	return Ack{ID: rec.ID, MarkedAsRead: read}, nil
}
