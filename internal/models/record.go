package models

import "time"

// Record is a generic stored record: a category tag plus opaque string
// attributes. Feedback is one category of record.
type Record struct {
	ID         string            `json:"id"`
	Category   string            `json:"category"`
	Attributes map[string]string `json:"attributes"`
	CreatedAt  time.Time         `json:"created_at"`
}

// Attribute returns the value for key, or "" when absent.
func (r *Record) Attribute(key string) string {
	if r.Attributes == nil {
		return ""
	}
	return r.Attributes[key]
}

func (r *Record) HasAttribute(key string) bool {
	_, ok := r.Attributes[key]
	return ok
}

// Clone returns a deep copy so callers never share the attribute map.
func (r *Record) Clone() *Record {
	attrs := make(map[string]string, len(r.Attributes))
	for k, v := range r.Attributes {
		attrs[k] = v
	}
	return &Record{ID: r.ID, Category: r.Category, Attributes: attrs, CreatedAt: r.CreatedAt}
}
