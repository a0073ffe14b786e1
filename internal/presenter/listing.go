// Package presenter renders feedback records for the admin list view. It is
// a pure view model: nothing here performs I/O or mutates a record.
package presenter

import (
	"fmt"
	"html"
	"net/url"

	"really-simple-feedback/internal/models"
)

// Row decoration classes.
const (
	ClassFeedback = "rsf-post"
	ClassUnread   = "rsf-post-unread"
)

// Column keys, in display order.
const (
	ColumnCheckbox  = "cb"
	ColumnRating    = "rating"
	ColumnComment   = "comment"
	ColumnURL       = "url"
	ColumnUserAgent = "user_agent"
	ColumnDate      = "date"
)

const dateLayout = "2006/01/02 at 3:04 pm"

type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type Cell struct {
	Column string `json:"column"`
	HTML   string `json:"html"`
}

type Row struct {
	ID      string   `json:"id"`
	Cells   []Cell   `json:"cells"`
	Classes []string `json:"classes"`
	Actions []Action `json:"actions"`
}

type ListView struct {
	Columns     []Column `json:"columns"`
	Rows        []Row    `json:"rows"`
	BulkActions []Action `json:"bulk_actions"`
}

// Columns returns the admin list columns in their fixed order.
func Columns() []Column {
	return []Column{
		{Key: ColumnCheckbox, Label: `<input type="checkbox" />`},
		{Key: ColumnRating, Label: "Rating"},
		{Key: ColumnComment, Label: "Comment"},
		{Key: ColumnURL, Label: "Referred URL"},
		{Key: ColumnUserAgent, Label: "User Agent"},
		{Key: ColumnDate, Label: "Date"},
	}
}

func RatingLabel(r models.Rating) string {
	switch r {
	case models.RatingSatisfied:
		return "Satisfied"
	case models.RatingUnsatisfied:
		return "Unsatisfied"
	}
	return ""
}

// RenderCell returns the HTML for one column of a feedback row. Text is
// escaped; the referred URL becomes a link only for http(s) URLs.
func RenderCell(column string, fb models.Feedback) string {
	switch column {
	case ColumnCheckbox:
		return fmt.Sprintf(`<input type="checkbox" name="post[]" value="%s" />`, html.EscapeString(fb.ID))
	case ColumnRating:
		return RatingLabel(fb.Rating)
	case ColumnComment:
		return html.EscapeString(fb.Comment)
	case ColumnURL:
		return renderURL(fb.ReferringURL)
	case ColumnUserAgent:
		return html.EscapeString(fb.UserAgent)
	case ColumnDate:
		if fb.CreatedAt.IsZero() {
			return ""
		}
		return fb.CreatedAt.Format(dateLayout)
	}
	return ""
}

func renderURL(raw string) string {
	if raw == "" {
		return ""
	}
	escaped := html.EscapeString(raw)
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return escaped
	}
	return fmt.Sprintf(`<a target="_blank" href="%s">%s</a>`, escaped, escaped)
}

// Classes returns the decoration classes for a record. Records of other
// categories get none.
func Classes(rec *models.Record) []string {
	if rec.Category != models.FeedbackCategory {
		return nil
	}
	classes := []string{ClassFeedback}
	if rec.Attribute(models.AttrMarkedAsRead) == "" {
		classes = append(classes, ClassUnread)
	}
	return classes
}

func BuildRow(rec *models.Record, defaults []Action) Row {
	fb := models.FeedbackFromRecord(rec)
	columns := Columns()
	cells := make([]Cell, 0, len(columns))
	for _, c := range columns {
		cells = append(cells, Cell{Column: c.Key, HTML: RenderCell(c.Key, fb)})
	}
	return Row{
		ID:      rec.ID,
		Cells:   cells,
		Classes: Classes(rec),
		Actions: RowActions(rec, defaults),
	}
}

// BuildList renders every record with the host's default row and bulk actions.
func BuildList(records []*models.Record, rowDefaults func(id string) []Action, bulkDefaults []Action) ListView {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, BuildRow(rec, rowDefaults(rec.ID)))
	}
	return ListView{
		Columns:     Columns(),
		Rows:        rows,
		BulkActions: BulkActions(bulkDefaults),
	}
}

func hasClass(classes []string, class string) bool {
	for _, c := range classes {
		if c == class {
			return true
		}
	}
	return false
}
