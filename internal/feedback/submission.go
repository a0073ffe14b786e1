// Package feedback holds the submission and moderation services for
// feedback records.
package feedback

import (
	"context"
	"errors"
	"fmt"

	"really-simple-feedback/internal/apperrors"
	"really-simple-feedback/internal/models"
	"really-simple-feedback/internal/repository"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Payload is an untrusted submission. Rating is nil when the client sent none.
type Payload struct {
	Rating       *string
	Comment      string
	ReferringURL string
	UserAgent    string
}

type Summary struct {
	ID string `json:"id"`
}

func (s Summary) Message() string {
	return fmt.Sprintf("Successfully created feedback #%s", s.ID)
}

// submission is a payload after sanitising, ready for validation.
type submission struct {
	Rating  *string `validate:"required,oneof=satisfied unsatisfied"`
	Comment string  `validate:"required"`
}

type SubmissionService struct {
	store repository.RecordStore
	valid *validator.Validate
	log   *zap.SugaredLogger
}

func NewSubmissionService(store repository.RecordStore, log *zap.SugaredLogger) *SubmissionService {
	return &SubmissionService{store: store, valid: validator.New(), log: log}
}

// Validate sanitises the payload and reports the first failing rule, rating
// before comment.
func (s *SubmissionService) Validate(p Payload) (models.Feedback, error) {
	req := submission{Rating: p.Rating, Comment: SanitizeTextField(p.Comment)}
	if err := s.valid.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			return models.Feedback{}, apperrors.Wrap(err, "failed to validate feedback")
		}
		return models.Feedback{}, validationError(fieldErrs[0])
	}
	return models.Feedback{
		Rating:       models.Rating(*req.Rating),
		Comment:      req.Comment,
		ReferringURL: p.ReferringURL,
		UserAgent:    p.UserAgent,
	}, nil
}

func validationError(fe validator.FieldError) *apperrors.AppError {
	switch {
	case fe.Field() == "Rating" && fe.Tag() == "required":
		return apperrors.NoRating()
	case fe.Field() == "Rating":
		return apperrors.IncorrectRating()
	default:
		return apperrors.NoComment()
	}
}

// Submit validates the payload and persists a new unread feedback record.
func (s *SubmissionService) Submit(ctx context.Context, p Payload) (Summary, error) {
	fb, err := s.Validate(p)
	if err != nil {
		return Summary{}, err
	}

	id, err := s.store.Create(ctx, models.FeedbackCategory, fb.Attributes())
	if err != nil {
		return Summary{}, apperrors.Wrap(err, "failed to submit feedback")
	}

	s.log.Infow("Feedback created", "id", id, "rating", fb.Rating)
	return Summary{ID: id}, nil
}
