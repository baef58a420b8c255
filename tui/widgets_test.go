package tui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	homedir "github.com/mitchellh/go-homedir"
)

func keyRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func typeString(t *testing.T, w FieldWidget, s string) {
	t.Helper()
	for _, r := range s {
		if !w.HandleKey(keyRune(r)) {
			t.Fatalf("rune %q not consumed", r)
		}
	}
}

// screenRow reads back one row of a simulation screen as a string.
func screenRow(t *testing.T, screen tcell.SimulationScreen, y, width int) string {
	t.Helper()
	var b strings.Builder
	for x := 0; x < width; x++ {
		mainc, combc, _, _ := screen.GetContent(x, y)
		b.WriteRune(mainc)
		for _, c := range combc {
			b.WriteRune(c)
		}
	}
	return b.String()
}

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func TestTextInput_TypingEmits(t *testing.T) {
	input := NewTextInput()

	var got []string
	input.OnEdit(func(v any) { got = append(got, v.(string)) })

	typeString(t, input, "hi")

	if input.Text() != "hi" {
		t.Errorf("text = %q, want hi", input.Text())
	}
	if len(got) != 2 || got[1] != "hi" {
		t.Errorf("emissions = %v, want [h hi]", got)
	}
}

func TestTextInput_Editing(t *testing.T) {
	input := NewTextInput()
	input.SetValue("abc")

	input.HandleKey(key(tcell.KeyBackspace2))
	if input.Text() != "ab" {
		t.Errorf("after backspace: %q, want ab", input.Text())
	}

	input.HandleKey(key(tcell.KeyLeft))
	input.HandleKey(keyRune('X'))
	if input.Text() != "aXb" {
		t.Errorf("after insert: %q, want aXb", input.Text())
	}

	input.HandleKey(key(tcell.KeyHome))
	input.HandleKey(key(tcell.KeyDelete))
	if input.Text() != "Xb" {
		t.Errorf("after delete at home: %q, want Xb", input.Text())
	}

	input.HandleKey(key(tcell.KeyCtrlU))
	if input.Text() != "" {
		t.Errorf("after kill: %q, want empty", input.Text())
	}
}

func TestTextInput_SetValueQuiet(t *testing.T) {
	input := NewTextInput()

	fired := 0
	input.OnEdit(func(any) { fired++ })
	input.SetValue("quiet")

	if fired != 0 {
		t.Errorf("SetValue fired %d edit events, want 0", fired)
	}
}

func TestTextInput_MaskedDraw(t *testing.T) {
	screen := newTestScreen(t)

	input := NewTextInput()
	input.Masked = true
	input.SetValue("secret")
	input.Draw(screen, 0, 0, 10, tcell.StyleDefault)

	row := screenRow(t, screen, 0, 10)
	if !strings.HasPrefix(row, "******") {
		t.Errorf("masked row = %q, want asterisks", row)
	}
	if strings.Contains(row, "secret") {
		t.Errorf("masked row leaked content: %q", row)
	}
}

func TestTextArea_EnterInsertsNewline(t *testing.T) {
	area := NewTextArea()
	typeString(t, area, "ab")
	area.HandleKey(key(tcell.KeyEnter))
	typeString(t, area, "cd")

	if area.Text() != "ab\ncd" {
		t.Errorf("text = %q, want ab\\ncd", area.Text())
	}
}

func TestIntSpinner_StepAndClamp(t *testing.T) {
	spinner := NewIntSpinner()
	min, max := 2, 4
	spinner.Min = &min
	spinner.Max = &max
	spinner.SetValue(3)

	var got []any
	spinner.OnEdit(func(v any) { got = append(got, v) })

	spinner.HandleKey(key(tcell.KeyUp))
	spinner.HandleKey(key(tcell.KeyUp)) // clamped, no emission
	if spinner.Value() != 4 {
		t.Errorf("value = %v, want 4", spinner.Value())
	}

	spinner.HandleKey(key(tcell.KeyDown))
	spinner.HandleKey(key(tcell.KeyDown))
	spinner.HandleKey(key(tcell.KeyDown)) // clamped
	if spinner.Value() != 2 {
		t.Errorf("value = %v, want 2", spinner.Value())
	}

	if len(got) != 3 {
		t.Errorf("emissions = %v, want 3 changes", got)
	}
}

func TestIntSpinner_AcceptsFloatValue(t *testing.T) {
	spinner := NewIntSpinner()
	spinner.SetValue(float64(7))
	if spinner.Value() != 7 {
		t.Errorf("value = %v, want 7", spinner.Value())
	}
}

func TestFloatSpinner_Steps(t *testing.T) {
	spinner := NewFloatSpinner()
	spinner.Step = 0.5
	spinner.SetValue(1.0)

	spinner.HandleKey(keyRune('+'))
	if got := spinner.Value().(float64); got != 1.5 {
		t.Errorf("value = %v, want 1.5", got)
	}
	spinner.HandleKey(key(tcell.KeyDown))
	spinner.HandleKey(key(tcell.KeyDown))
	if got := spinner.Value().(float64); got != 0.5 {
		t.Errorf("value = %v, want 0.5", got)
	}
}

func TestCheckbox_Toggles(t *testing.T) {
	box := NewCheckbox()

	var got []any
	box.OnEdit(func(v any) { got = append(got, v) })

	box.HandleKey(keyRune(' '))
	if box.Value() != true {
		t.Errorf("value = %v, want true", box.Value())
	}
	box.HandleKey(key(tcell.KeyEnter))
	if box.Value() != false {
		t.Errorf("value = %v, want false", box.Value())
	}
	if len(got) != 2 {
		t.Errorf("emissions = %d, want 2", len(got))
	}
}

func TestSelect_Cycles(t *testing.T) {
	sel := NewSelect([]string{"small", "medium", "large"})
	sel.SetValue("medium")

	sel.HandleKey(key(tcell.KeyDown))
	if sel.Value() != "large" {
		t.Errorf("value = %v, want large", sel.Value())
	}
	sel.HandleKey(key(tcell.KeyDown))
	if sel.Value() != "small" {
		t.Errorf("wrapped value = %v, want small", sel.Value())
	}
	sel.HandleKey(key(tcell.KeyUp))
	if sel.Value() != "large" {
		t.Errorf("value = %v, want large", sel.Value())
	}
}

func TestSelect_UnknownValueIgnored(t *testing.T) {
	sel := NewSelect([]string{"a", "b"})
	sel.SetValue("b")
	sel.SetValue("zzz")
	if sel.Value() != "b" {
		t.Errorf("value = %v, want b", sel.Value())
	}
}

func TestTagList_CommitAndRemove(t *testing.T) {
	tags := NewTagList()
	tags.SetValue([]string{"one"})

	var got []any
	tags.OnEdit(func(v any) { got = append(got, v) })

	typeString(t, tags, "two")
	tags.HandleKey(key(tcell.KeyEnter))

	want := []string{"one", "two"}
	if v := tags.Value().([]string); len(v) != 2 || v[0] != want[0] || v[1] != want[1] {
		t.Errorf("tags = %v, want %v", v, want)
	}

	// Backspace with no pending entry removes the last tag.
	tags.HandleKey(key(tcell.KeyBackspace2))
	if v := tags.Value().([]string); len(v) != 1 || v[0] != "one" {
		t.Errorf("tags = %v, want [one]", v)
	}

	if len(got) != 2 {
		t.Errorf("emissions = %d, want 2", len(got))
	}
}

func TestTagList_EmptyEntryNotCommitted(t *testing.T) {
	tags := NewTagList()

	fired := 0
	tags.OnEdit(func(any) { fired++ })

	typeString(t, tags, "   ")
	tags.HandleKey(key(tcell.KeyEnter))

	if v := tags.Value().([]string); len(v) != 0 {
		t.Errorf("tags = %v, want empty", v)
	}
	if fired != 0 {
		t.Errorf("emissions = %d, want 0", fired)
	}
}

func TestPathInput_ExpandsHome(t *testing.T) {
	home, err := homedir.Dir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	input := NewPathInput()

	var last string
	input.OnEdit(func(v any) { last = v.(string) })

	typeString(t, input, "~/notes")
	input.HandleKey(key(tcell.KeyEnter))

	want := home + "/notes"
	if last != want {
		t.Errorf("emitted %q, want %q", last, want)
	}
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "abc", 5, "abc"},
		{"exact", "abc", 3, "abc"},
		{"cut", "abcdef", 3, "abc"},
		{"wide runes", "你好世界", 5, "你好"},
		{"zero", "abc", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateToWidth(tt.in, tt.width); got != tt.want {
				t.Errorf("truncateToWidth(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}
