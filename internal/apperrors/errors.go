// Package apperrors defines the client-visible error taxonomy. Every error
// returned by the services is translated 1:1 into an AppError response at the
// HTTP boundary.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	MissingRating   Kind = "MissingRating"
	InvalidRating   Kind = "InvalidRating"
	MissingComment  Kind = "MissingComment"
	NotFound        Kind = "NotFound"
	WrongRecordType Kind = "WrongRecordType"
	Unauthorized    Kind = "Unauthorized"
	Forbidden       Kind = "Forbidden"
	BadRequest      Kind = "BadRequest"
	Internal        Kind = "Internal"
)

// AppError carries a machine readable code, a human message and the HTTP
// status the error maps to.
type AppError struct {
	Kind    Kind   `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Raw     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Raw)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Raw
}

func New(kind Kind, code, message string, status int) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message, Status: status}
}

func NoRating() *AppError {
	return New(MissingRating, "no_rating",
		`There was no rating provided. The rating must be either "satisfied" or "unsatisfied"`,
		http.StatusBadRequest)
}

func IncorrectRating() *AppError {
	return New(InvalidRating, "incorrect_rating",
		`The rating must be either "satisfied" or "unsatisfied"`,
		http.StatusBadRequest)
}

func NoComment() *AppError {
	return New(MissingComment, "no_comment", "There was no comment provided.", http.StatusBadRequest)
}

func FeedbackNotFound(id string) *AppError {
	return New(NotFound, "not_found", fmt.Sprintf("No feedback exists with id %q", id), http.StatusBadRequest)
}

func WrongPostType(category string) *AppError {
	return New(WrongRecordType, "wrong_post_type",
		fmt.Sprintf("This post is not of post type %q", category),
		http.StatusBadRequest)
}

func NotAuthenticated() *AppError {
	return New(Unauthorized, "unauthorized", "You must be logged in to do that.", http.StatusUnauthorized)
}

func NotAllowed() *AppError {
	return New(Forbidden, "forbidden", "Sorry, you are not allowed to do that.", http.StatusForbidden)
}

func InvalidBody(message string) *AppError {
	return New(BadRequest, "invalid_request", message, http.StatusBadRequest)
}

// Wrap turns an unexpected (store, mailer) failure into a generic 500.
func Wrap(err error, message string) *AppError {
	return &AppError{
		Kind:    Internal,
		Code:    "internal_error",
		Message: message,
		Status:  http.StatusInternalServerError,
		Raw:     err,
	}
}

// From returns err as an AppError, wrapping anything unknown as Internal.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "internal server error")
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}
