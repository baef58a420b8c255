package tui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
)

// IntSpinner edits an integer with arrow keys. Min and Max, when non-nil,
// clamp the value.
type IntSpinner struct {
	editNotifier

	value int
	Step  int
	Min   *int
	Max   *int
}

// NewIntSpinner creates a spinner stepping by 1.
func NewIntSpinner() *IntSpinner {
	return &IntSpinner{Step: 1}
}

func (s *IntSpinner) SetValue(value any) {
	switch v := value.(type) {
	case int:
		s.value = v
	case int64:
		s.value = int(v)
	case float64:
		s.value = int(v)
	}
}

func (s *IntSpinner) Value() any { return s.value }

func (s *IntSpinner) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		s.adjust(s.Step)
		return true
	case tcell.KeyDown:
		s.adjust(-s.Step)
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case '+':
			s.adjust(s.Step)
			return true
		case '-':
			s.adjust(-s.Step)
			return true
		}
	}
	return false
}

func (s *IntSpinner) adjust(delta int) {
	next := s.value + delta
	if s.Min != nil && next < *s.Min {
		next = *s.Min
	}
	if s.Max != nil && next > *s.Max {
		next = *s.Max
	}
	if next == s.value {
		return
	}
	s.value = next
	s.emit(s.value)
}

func (s *IntSpinner) Draw(screen tcell.Screen, x, y, width int, style tcell.Style) {
	drawText(screen, x, y, width, strconv.Itoa(s.value), style)
}

// FloatSpinner edits a floating-point value with arrow keys.
type FloatSpinner struct {
	editNotifier

	value float64
	Step  float64
	Min   *float64
	Max   *float64
}

// NewFloatSpinner creates a spinner stepping by 0.1.
func NewFloatSpinner() *FloatSpinner {
	return &FloatSpinner{Step: 0.1}
}

func (s *FloatSpinner) SetValue(value any) {
	switch v := value.(type) {
	case float64:
		s.value = v
	case float32:
		s.value = float64(v)
	case int:
		s.value = float64(v)
	}
}

func (s *FloatSpinner) Value() any { return s.value }

func (s *FloatSpinner) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		s.adjust(s.Step)
		return true
	case tcell.KeyDown:
		s.adjust(-s.Step)
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case '+':
			s.adjust(s.Step)
			return true
		case '-':
			s.adjust(-s.Step)
			return true
		}
	}
	return false
}

func (s *FloatSpinner) adjust(delta float64) {
	next := s.value + delta
	if s.Min != nil && next < *s.Min {
		next = *s.Min
	}
	if s.Max != nil && next > *s.Max {
		next = *s.Max
	}
	if next == s.value {
		return
	}
	s.value = next
	s.emit(s.value)
}

func (s *FloatSpinner) Draw(screen tcell.Screen, x, y, width int, style tcell.Style) {
	drawText(screen, x, y, width, strconv.FormatFloat(s.value, 'f', -1, 64), style)
}
