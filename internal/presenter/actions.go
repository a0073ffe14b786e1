package presenter

import (
	"fmt"
	"html"

	"really-simple-feedback/internal/models"
)

// Action keys understood by the admin list.
const (
	ActionEdit         = "edit"
	ActionQuickEdit    = "inline hide-if-no-js"
	ActionTrash        = "trash"
	ActionMarkAsRead   = "mark_as_read"
	ActionMarkAsUnread = "mark_as_unread"
)

const (
	MarkAsReadText   = "Mark as Read"
	MarkAsUnreadText = "Mark as Unread"
)

type Action struct {
	Key  string `json:"key"`
	HTML string `json:"html"`
}

// DefaultRowActions are the host's stock row actions for a record.
func DefaultRowActions(id string) []Action {
	escaped := html.EscapeString(id)
	return []Action{
		{Key: ActionEdit, HTML: fmt.Sprintf(`<a href="post.php?post=%s&amp;action=edit">Edit</a>`, escaped)},
		{Key: ActionQuickEdit, HTML: `<button type="button" class="button-link editinline">Quick&nbsp;Edit</button>`},
		{Key: ActionTrash, HTML: fmt.Sprintf(`<a href="post.php?post=%s&amp;action=trash" class="submitdelete">Trash</a>`, escaped)},
	}
}

// DefaultBulkActions are the host's stock bulk actions.
func DefaultBulkActions() []Action {
	return []Action{
		{Key: ActionEdit, HTML: "Edit"},
		{Key: ActionTrash, HTML: "Move to Trash"},
	}
}

// RowActions drops quick edit from feedback rows and appends the read toggle
// matching the record's current state. The anchors are picked up by the admin
// script through their class and data-postid.
func RowActions(rec *models.Record, defaults []Action) []Action {
	if rec.Category != models.FeedbackCategory {
		return defaults
	}

	actions := make([]Action, 0, len(defaults)+1)
	for _, a := range defaults {
		if a.Key == ActionQuickEdit {
			continue
		}
		actions = append(actions, a)
	}

	id := html.EscapeString(rec.ID)
	if hasClass(Classes(rec), ClassUnread) {
		actions = append(actions, Action{
			Key:  ActionMarkAsRead,
			HTML: fmt.Sprintf(`<a class="rsf-js-mark-as-read" data-postid="%s" href="#">%s</a>`, id, MarkAsReadText),
		})
	} else {
		actions = append(actions, Action{
			Key:  ActionMarkAsUnread,
			HTML: fmt.Sprintf(`<a class="rsf-js-mark-as-unread" data-postid="%s" href="#">%s</a>`, id, MarkAsUnreadText),
		})
	}
	return actions
}

// BulkActions removes bulk edit; feedback records are not editable in bulk.
func BulkActions(defaults []Action) []Action {
	actions := make([]Action, 0, len(defaults))
	for _, a := range defaults {
		if a.Key != ActionEdit {
			actions = append(actions, a)
		}
	}
	return actions
}
