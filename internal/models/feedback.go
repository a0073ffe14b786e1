package models

import "time"

// FeedbackCategory tags feedback records in the shared record store.
const FeedbackCategory = "rsf"

// Attribute keys of a feedback record.
const (
	AttrRating       = "rating"
	AttrComment      = "comment"
	AttrURL          = "url"
	AttrUserAgent    = "user_agent"
	AttrMarkedAsRead = "marked_as_read"
)

type Rating string

const (
	RatingSatisfied   Rating = "satisfied"
	RatingUnsatisfied Rating = "unsatisfied"
)

type Feedback struct {
	ID           string    `json:"id"`
	Rating       Rating    `json:"rating"`
	Comment      string    `json:"comment"`
	ReferringURL string    `json:"referring_url,omitempty"`
	UserAgent    string    `json:"user_agent,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	MarkedAsRead bool      `json:"marked_as_read"`
}

// Attributes returns the persisted attribute set. Empty optional fields and an
// unread state are omitted.
func (f *Feedback) Attributes() map[string]string {
	attrs := map[string]string{
		AttrRating:  string(f.Rating),
		AttrComment: f.Comment,
	}
	if f.ReferringURL != "" {
		attrs[AttrURL] = f.ReferringURL
	}
	if f.UserAgent != "" {
		attrs[AttrUserAgent] = f.UserAgent
	}
	if f.MarkedAsRead {
		attrs[AttrMarkedAsRead] = "1"
	}
	return attrs
}

// FeedbackFromRecord reads a feedback view out of a generic record.
func FeedbackFromRecord(r *Record) Feedback {
	return Feedback{
		ID:           r.ID,
		Rating:       Rating(r.Attribute(AttrRating)),
		Comment:      r.Attribute(AttrComment),
		ReferringURL: r.Attribute(AttrURL),
		UserAgent:    r.Attribute(AttrUserAgent),
		CreatedAt:    r.CreatedAt,
		MarkedAsRead: r.Attribute(AttrMarkedAsRead) != "",
	}
}
