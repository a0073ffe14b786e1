package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeTextField(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Great job", "Great job"},
		{"trims", "   Great job  ", "Great job"},
		{"strips tags", "Great <b>job</b>", "Great job"},
		{"drops script body", "<script>alert(1)</script>Nice page", "Nice page"},
		{"collapses line breaks and tabs", "line one\n\tline two", "line one line two"},
		{"keeps entities as text", "Tom &amp; Jerry", "Tom &amp; Jerry"},
		{"bare ampersand", "Tom & <i>Jerry</i>", "Tom & Jerry"},
		{"encoded markup stays encoded", "&lt;b&gt;hi&lt;/b&gt;", "&lt;b&gt;hi&lt;/b&gt;"},
		{"encoded markup next to tags", "<p>&lt;script&gt;</p>", "&lt;script&gt;"},
		{"encoded space is text", "&nbsp;", "&nbsp;"},
		{"numeric reference is text", "&#32;", "&#32;"},
		{"removes octets", "100%25 done", "100 done"},
		{"whitespace only", " \n\t ", ""},
		{"markup only", "<p></p>", ""},
		{"invalid utf8", "bad \xff byte", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeTextField(tc.input))
		})
	}
}
