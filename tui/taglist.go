package tui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// TagList edits a list of strings. Typed text becomes a pending entry that
// Enter commits as a new tag; Backspace on an empty entry removes the last
// tag.
type TagList struct {
	editNotifier

	tags    []string
	pending []rune
}

// NewTagList creates an empty tag list.
func NewTagList() *TagList {
	return &TagList{}
}

// SetValue replaces the tags. Accepts []string or []any of strings; the
// pending entry is discarded.
func (t *TagList) SetValue(value any) {
	t.pending = t.pending[:0]

	switch v := value.(type) {
	case []string:
		t.tags = append(t.tags[:0], v...)
	case []any:
		t.tags = t.tags[:0]
		for _, item := range v {
			if s, ok := item.(string); ok {
				t.tags = append(t.tags, s)
			}
		}
	}
}

// Value returns a copy of the committed tags.
func (t *TagList) Value() any {
	out := make([]string, len(t.tags))
	copy(out, t.tags)
	return out
}

func (t *TagList) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyRune:
		t.pending = append(t.pending, ev.Rune())
		return true

	case tcell.KeyEnter:
		tag := strings.TrimSpace(string(t.pending))
		t.pending = t.pending[:0]
		if tag == "" {
			return true
		}
		t.tags = append(t.tags, tag)
		t.emit(t.Value())
		return true

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(t.pending) > 0 {
			t.pending = t.pending[:len(t.pending)-1]
			return true
		}
		if len(t.tags) > 0 {
			t.tags = t.tags[:len(t.tags)-1]
			t.emit(t.Value())
		}
		return true

	default:
		return false
	}
}

func (t *TagList) Draw(screen tcell.Screen, x, y, width int, style tcell.Style) {
	parts := make([]string, 0, len(t.tags)+1)
	for _, tag := range t.tags {
		parts = append(parts, "["+tag+"]")
	}
	if len(t.pending) > 0 {
		parts = append(parts, string(t.pending))
	}
	drawText(screen, x, y, width, strings.Join(parts, " "), style)
}
