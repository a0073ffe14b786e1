package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"really-simple-feedback/internal/apperrors"
	"really-simple-feedback/internal/feedback"
	"really-simple-feedback/internal/respond"
)

type FeedbackHandler struct {
	submissions *feedback.SubmissionService
}

func NewFeedbackHandler(submissions *feedback.SubmissionService) *FeedbackHandler {
	return &FeedbackHandler{submissions: submissions}
}

// submitParams holds the raw request values; any JSON type may show up.
type submitParams map[string]interface{}

// --- POST /feedback ---

func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	params, err := readParams(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	payload := feedback.Payload{ReferringURL: r.Referer()}
	if rating, ok := params.text("rating"); ok {
		payload.Rating = &rating
	}
	payload.Comment, _ = params.text("comment")
	payload.UserAgent, _ = params.text("userAgent")

	summary, err := h.submissions.Submit(r.Context(), payload)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.Message(w, http.StatusCreated, summary.Message())
}

// readParams merges query parameters with a JSON or form encoded body; body
// values win.
func readParams(r *http.Request) (submitParams, error) {
	params := submitParams{}
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(1 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, apperrors.InvalidBody("invalid form body")
		}
		for key, values := range r.PostForm {
			if len(values) > 0 {
				params[key] = values[0]
			}
		}
	default:
		var body map[string]interface{}
		err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&body)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, apperrors.InvalidBody("invalid request body")
		}
		for key, value := range body {
			params[key] = value
		}
	}
	return params, nil
}

// text returns the value for key as a string and whether it was present.
// JSON null counts as absent.
func (p submitParams) text(key string) (string, bool) {
	value, ok := p[key]
	if !ok || value == nil {
		return "", false
	}
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		if v {
			return "1", true
		}
		return "", true
	default:
		return "", true
	}
}
