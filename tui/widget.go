package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// FieldWidget is a bindable widget that can also draw itself and respond
// to key events. All widgets in this package implement it.
type FieldWidget interface {
	SetValue(value any)
	Value() any
	OnEdit(handler func(value any))

	// HandleKey processes a key event, returning true if consumed.
	HandleKey(ev *tcell.EventKey) bool

	// Draw renders the widget at (x, y) in at most width cells.
	Draw(screen tcell.Screen, x, y, width int, style tcell.Style)
}

// editNotifier implements OnEdit and fan-out for widget edit listeners.
type editNotifier struct {
	handlers []func(any)
}

func (n *editNotifier) OnEdit(handler func(value any)) {
	n.handlers = append(n.handlers, handler)
}

func (n *editNotifier) emit(value any) {
	for _, h := range n.handlers {
		h(value)
	}
}

// displayWidth returns the terminal cell width of s, grapheme-aware.
func displayWidth(s string) int {
	return uniseg.StringWidth(s)
}

// truncateToWidth trims s to fit width cells without splitting grapheme
// clusters.
func truncateToWidth(s string, width int) string {
	if displayWidth(s) <= width {
		return s
	}

	var out []byte
	used := 0
	state := -1
	remainder := s
	for len(remainder) > 0 {
		var cluster string
		var w int
		cluster, remainder, w, state = uniseg.FirstGraphemeClusterInString(remainder, state)
		if used+w > width {
			break
		}
		out = append(out, cluster...)
		used += w
	}
	return string(out)
}

// drawText renders s at (x, y), truncated to width and padded with the
// style's background.
func drawText(screen tcell.Screen, x, y, width int, s string, style tcell.Style) {
	s = truncateToWidth(s, width)

	col := x
	state := -1
	remainder := s
	for len(remainder) > 0 {
		var cluster string
		var w int
		cluster, remainder, w, state = uniseg.FirstGraphemeClusterInString(remainder, state)

		runes := []rune(cluster)
		screen.SetContent(col, y, runes[0], runes[1:], style)
		col += w
	}

	for ; col < x+width; col++ {
		screen.SetContent(col, y, ' ', nil, style)
	}
}
