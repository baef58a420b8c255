package tui

import (
	"github.com/gdamore/tcell/v2"
)

// Select cycles through a fixed list of choices with the arrow keys.
type Select struct {
	editNotifier

	choices []string
	index   int
}

// NewSelect creates a select over the given choices.
func NewSelect(choices []string) *Select {
	return &Select{choices: choices}
}

// SetValue selects the choice equal to value. Unknown values leave the
// selection untouched.
func (s *Select) SetValue(value any) {
	text, ok := value.(string)
	if !ok {
		return
	}
	for i, choice := range s.choices {
		if choice == text {
			s.index = i
			return
		}
	}
}

func (s *Select) Value() any {
	if len(s.choices) == 0 {
		return ""
	}
	return s.choices[s.index]
}

func (s *Select) HandleKey(ev *tcell.EventKey) bool {
	if len(s.choices) == 0 {
		return false
	}

	switch ev.Key() {
	case tcell.KeyUp, tcell.KeyLeft:
		s.index = (s.index - 1 + len(s.choices)) % len(s.choices)
	case tcell.KeyDown, tcell.KeyRight:
		s.index = (s.index + 1) % len(s.choices)
	default:
		return false
	}

	s.emit(s.choices[s.index])
	return true
}

func (s *Select) Draw(screen tcell.Screen, x, y, width int, style tcell.Style) {
	current := ""
	if len(s.choices) > 0 {
		current = s.choices[s.index]
	}
	drawText(screen, x, y, width, "< "+current+" >", style)
}
