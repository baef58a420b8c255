package tui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// TextInput is a single-line text editor. With Masked set it renders
// asterisks in place of content, for password fields.
type TextInput struct {
	editNotifier

	runes  []rune
	cursor int

	// Masked hides the content when drawing.
	Masked bool
}

// NewTextInput creates an empty text input.
func NewTextInput() *TextInput {
	return &TextInput{}
}

// SetValue replaces the content without firing edit handlers.
func (t *TextInput) SetValue(value any) {
	s, _ := value.(string)
	t.runes = []rune(s)
	t.cursor = len(t.runes)
}

// Value returns the current text.
func (t *TextInput) Value() any {
	return string(t.runes)
}

// Text returns the current text as a string.
func (t *TextInput) Text() string {
	return string(t.runes)
}

func (t *TextInput) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyRune:
		t.runes = append(t.runes[:t.cursor], append([]rune{ev.Rune()}, t.runes[t.cursor:]...)...)
		t.cursor++
		t.emit(t.Text())
		return true

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if t.cursor == 0 {
			return true
		}
		t.runes = append(t.runes[:t.cursor-1], t.runes[t.cursor:]...)
		t.cursor--
		t.emit(t.Text())
		return true

	case tcell.KeyDelete:
		if t.cursor >= len(t.runes) {
			return true
		}
		t.runes = append(t.runes[:t.cursor], t.runes[t.cursor+1:]...)
		t.emit(t.Text())
		return true

	case tcell.KeyLeft:
		if t.cursor > 0 {
			t.cursor--
		}
		return true

	case tcell.KeyRight:
		if t.cursor < len(t.runes) {
			t.cursor++
		}
		return true

	case tcell.KeyHome, tcell.KeyCtrlA:
		t.cursor = 0
		return true

	case tcell.KeyEnd, tcell.KeyCtrlE:
		t.cursor = len(t.runes)
		return true

	case tcell.KeyCtrlU:
		if len(t.runes) == 0 {
			return true
		}
		t.runes = t.runes[:0]
		t.cursor = 0
		t.emit(t.Text())
		return true

	default:
		return false
	}
}

func (t *TextInput) Draw(screen tcell.Screen, x, y, width int, style tcell.Style) {
	text := t.Text()
	if t.Masked {
		text = strings.Repeat("*", len(t.runes))
	}
	drawText(screen, x, y, width, text, style)
}

// TextArea is a text input that also accepts embedded newlines; Enter
// inserts one. Content renders on a single row with newlines shown as a
// return symbol.
type TextArea struct {
	*TextInput
}

// NewTextArea creates an empty text area.
func NewTextArea() *TextArea {
	return &TextArea{TextInput: NewTextInput()}
}

func (t *TextArea) HandleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEnter {
		t.runes = append(t.runes[:t.cursor], append([]rune{'\n'}, t.runes[t.cursor:]...)...)
		t.cursor++
		t.emit(t.Text())
		return true
	}
	return t.TextInput.HandleKey(ev)
}

func (t *TextArea) Draw(screen tcell.Screen, x, y, width int, style tcell.Style) {
	drawText(screen, x, y, width, strings.ReplaceAll(t.Text(), "\n", "⏎"), style)
}
