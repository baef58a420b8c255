package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/formbind/bind"
	"github.com/dshills/formbind/schema"
	"github.com/dshills/formbind/settings"
)

// Form lays out one widget per non-excluded schema field, grouped the way
// the schema groups them, and keeps every widget synchronized with the
// model through a bind.Bridge.
type Form struct {
	model  *settings.Model
	bridge *bind.Bridge
	theme  Theme

	groups []formGroup
	rows   []*formRow
	byName map[string]*formRow
	focus  int
}

type formGroup struct {
	name string
	rows []*formRow
}

type formRow struct {
	field  *schema.Field
	widget FieldWidget
}

// FormOption configures a Form.
type FormOption func(*Form)

// WithTheme overrides the default theme.
func WithTheme(theme Theme) FormOption {
	return func(f *Form) {
		f.theme = theme
	}
}

// NewForm builds a form for every editable field in the model's schema and
// binds the widgets to the model.
func NewForm(model *settings.Model, opts ...FormOption) (*Form, error) {
	f := &Form{
		model:  model,
		bridge: bind.NewBridge(model),
		theme:  DefaultTheme(),
		byName: make(map[string]*formRow),
	}
	for _, opt := range opts {
		opt(f)
	}

	s := model.Schema()
	for _, groupName := range s.Groups() {
		fields, err := s.Group(groupName)
		if err != nil {
			return nil, err
		}

		group := formGroup{name: groupName}
		for _, field := range fields {
			if field.Exclude {
				continue
			}

			widget, err := widgetFor(field)
			if err != nil {
				return nil, err
			}
			if err := f.bridge.Bind(field.Name, widget); err != nil {
				return nil, err
			}

			row := &formRow{field: field, widget: widget}
			group.rows = append(group.rows, row)
			f.rows = append(f.rows, row)
			f.byName[field.Name] = row
		}

		if len(group.rows) > 0 {
			f.groups = append(f.groups, group)
		}
	}

	return f, nil
}

// widgetFor constructs the widget matching a field's resolved kind.
func widgetFor(field *schema.Field) (FieldWidget, error) {
	kind, err := schema.KindFor(field)
	if err != nil {
		return nil, err
	}

	switch kind {
	case schema.KindPassword:
		input := NewTextInput()
		input.Masked = true
		return input, nil

	case schema.KindTextArea:
		return NewTextArea(), nil

	case schema.KindIntSpinner:
		spinner := NewIntSpinner()
		if field.Minimum != nil {
			min := int(*field.Minimum)
			spinner.Min = &min
		}
		if field.Maximum != nil {
			max := int(*field.Maximum)
			spinner.Max = &max
		}
		return spinner, nil

	case schema.KindFloatSpinner:
		spinner := NewFloatSpinner()
		spinner.Min = field.Minimum
		spinner.Max = field.Maximum
		return spinner, nil

	case schema.KindToggle:
		return NewCheckbox(), nil

	case schema.KindSelect:
		return NewSelect(field.Choices), nil

	case schema.KindTagList:
		return NewTagList(), nil

	case schema.KindPathBrowse:
		return NewPathInput(), nil

	default:
		return NewTextInput(), nil
	}
}

// Widget returns the widget bound to a field, or nil if the field has none.
func (f *Form) Widget(fieldName string) FieldWidget {
	row, ok := f.byName[fieldName]
	if !ok {
		return nil
	}
	return row.widget
}

// Model returns the settings model the form edits.
func (f *Form) Model() *settings.Model {
	return f.model
}

// Close releases the form's bindings.
func (f *Form) Close() {
	f.bridge.Close()
}

// FocusNext moves focus to the next widget, wrapping around.
func (f *Form) FocusNext() {
	if len(f.rows) == 0 {
		return
	}
	f.focus = (f.focus + 1) % len(f.rows)
}

// FocusPrev moves focus to the previous widget, wrapping around.
func (f *Form) FocusPrev() {
	if len(f.rows) == 0 {
		return
	}
	f.focus = (f.focus - 1 + len(f.rows)) % len(f.rows)
}

// Focused returns the name of the focused field, or empty for an empty
// form.
func (f *Form) Focused() string {
	if len(f.rows) == 0 {
		return ""
	}
	return f.rows[f.focus].field.Name
}

// HandleEvent routes a key event: Tab and Backtab move focus, anything
// else goes to the focused widget. Returns true if consumed.
func (f *Form) HandleEvent(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}

	switch key.Key() {
	case tcell.KeyTab:
		f.FocusNext()
		return true
	case tcell.KeyBacktab:
		f.FocusPrev()
		return true
	}

	if len(f.rows) == 0 {
		return false
	}
	return f.rows[f.focus].widget.HandleKey(key)
}

// Draw renders the form from the top-left corner of the screen.
func (f *Form) Draw(screen tcell.Screen) {
	width, _ := screen.Size()
	labelWidth := f.labelWidth()

	y := 0
	for _, group := range f.groups {
		drawText(screen, 0, y, width, group.name, f.theme.Group)
		y++

		for _, row := range group.rows {
			drawText(screen, 2, y, labelWidth, row.field.EffectiveTitle(), f.theme.Label)

			style := f.theme.Field
			if f.rows[f.focus] == row {
				style = f.theme.Focused
			}
			widgetX := 2 + labelWidth + 1
			row.widget.Draw(screen, widgetX, y, width-widgetX, style)
			y++
		}

		y++ // blank line between groups
	}
}

func (f *Form) labelWidth() int {
	max := 0
	for _, row := range f.rows {
		if w := displayWidth(row.field.EffectiveTitle()); w > max {
			max = w
		}
	}
	return max
}

// Run drives the form's event loop on a screen until Escape or Ctrl+C.
// The screen must already be initialized.
func (f *Form) Run(screen tcell.Screen) error {
	for {
		screen.Clear()
		f.Draw(screen)
		screen.Show()

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()

		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				return nil
			}
			f.HandleEvent(ev)

		case nil:
			// Screen was finalized.
			return nil
		}
	}
}
