package tui

import (
	"github.com/gdamore/tcell/v2"
)

// Checkbox edits a boolean. Space or Enter toggles it.
type Checkbox struct {
	editNotifier

	checked bool
}

// NewCheckbox creates an unchecked checkbox.
func NewCheckbox() *Checkbox {
	return &Checkbox{}
}

func (c *Checkbox) SetValue(value any) {
	b, _ := value.(bool)
	c.checked = b
}

func (c *Checkbox) Value() any { return c.checked }

func (c *Checkbox) HandleKey(ev *tcell.EventKey) bool {
	toggle := ev.Key() == tcell.KeyEnter ||
		(ev.Key() == tcell.KeyRune && ev.Rune() == ' ')
	if !toggle {
		return false
	}
	c.checked = !c.checked
	c.emit(c.checked)
	return true
}

func (c *Checkbox) Draw(screen tcell.Screen, x, y, width int, style tcell.Style) {
	mark := "[ ]"
	if c.checked {
		mark = "[x]"
	}
	drawText(screen, x, y, width, mark, style)
}
