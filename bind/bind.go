// Package bind mediates synchronized updates between a settings model and
// the live widgets displaying its fields.
//
// Each (field, widget) pair holds its own update guard. When the model
// changes, the bridge pushes the new value into every bound widget with the
// guard raised, so the widget's resulting change signal is not mistaken for
// a user edit; when a user edits a widget, the raw value is converted to
// the field's semantic type and routed through the model's normal mutator.
// A single logical change therefore produces at most one persisted save and
// one refresh per bound widget, no matter how many widgets share a field.
package bind

import (
	"github.com/dshills/formbind/logger"
	"github.com/dshills/formbind/notify"
	"github.com/dshills/formbind/schema"
	"github.com/dshills/formbind/settings"
)

// Widget is the abstract handle the bridge requires of any toolkit widget.
type Widget interface {
	// SetValue pushes a display value into the widget.
	SetValue(value any)

	// Value reads the widget's current raw value.
	Value() any

	// OnEdit registers a listener for user-initiated edits. The widget
	// must also invoke it for programmatic SetValue calls if the toolkit
	// does not distinguish the two; the bridge's guard handles both.
	OnEdit(handler func(value any))
}

// binding associates one field with one widget and carries the pair's
// update guard.
type binding struct {
	field  *schema.Field
	widget Widget

	// pushing is raised while the bridge writes into the widget; edit
	// signals arriving with it raised are echoes, not user edits.
	pushing bool
}

// Bridge keeps a model and its bound widgets synchronized.
type Bridge struct {
	model    *settings.Model
	bindings map[string][]*binding
	sub      *notify.Subscription
}

// NewBridge creates a bridge for the model and subscribes to its change
// notifications.
func NewBridge(model *settings.Model) *Bridge {
	b := &Bridge{
		model:    model,
		bindings: make(map[string][]*binding),
	}
	b.sub = model.Notifier().Subscribe(b.onModelChange)
	return b
}

// Bind associates a widget with a field and seeds the widget with the
// field's current value. Binding an unknown or excluded field is an error.
func (b *Bridge) Bind(fieldName string, w Widget) error {
	field, err := b.model.FieldInfo(fieldName)
	if err != nil {
		return err
	}
	if field.Exclude {
		return schema.ErrFieldExcluded
	}

	rec := &binding{field: field, widget: w}
	b.bindings[fieldName] = append(b.bindings[fieldName], rec)

	w.OnEdit(func(raw any) {
		b.onWidgetEdit(rec, raw)
	})

	// Seed the display from the current model value.
	current, err := b.model.Get(fieldName)
	if err != nil {
		return err
	}
	b.push(rec, current)

	logger.TraceMessage("Bound widget to field '%s'.", fieldName)
	return nil
}

// Unbind removes every binding for the field, used when its widgets are
// destroyed.
func (b *Bridge) Unbind(fieldName string) {
	delete(b.bindings, fieldName)
}

// Close detaches the bridge from the model.
func (b *Bridge) Close() {
	if b.sub != nil {
		b.sub.Unsubscribe()
		b.sub = nil
	}
	b.bindings = make(map[string][]*binding)
}

// BindingCount returns the number of live bindings for a field.
func (b *Bridge) BindingCount(fieldName string) int {
	return len(b.bindings[fieldName])
}

// bound reports whether the binding is still registered. Edits from
// widgets released by Unbind or Close must not reach the model.
func (b *Bridge) bound(rec *binding) bool {
	for _, r := range b.bindings[rec.field.Name] {
		if r == rec {
			return true
		}
	}
	return false
}

// onModelChange pushes a changed value into every widget bound to the
// field.
func (b *Bridge) onModelChange(change notify.Change) {
	for _, rec := range b.bindings[change.Field] {
		b.push(rec, change.NewValue)
	}
}

// push writes a value into a widget with the pair's guard raised.
func (b *Bridge) push(rec *binding, value any) {
	display, err := displayValue(b.model.Codec(), rec.field, value)
	if err != nil {
		logger.WarnMessage("Cannot render field '%s' for display: %s", rec.field.Name, err.Error())
		return
	}

	rec.pushing = true
	rec.widget.SetValue(display)
	rec.pushing = false
}

// onWidgetEdit routes a user edit into the model. Edit signals caused by
// the bridge's own push are ignored; that is the cycle-breaker.
func (b *Bridge) onWidgetEdit(rec *binding, raw any) {
	if rec.pushing || !b.bound(rec) {
		return
	}

	value, err := widgetValue(b.model.Codec(), rec.field, raw)
	if err != nil {
		logger.WarnMessage("Rejected edit on field '%s': %s", rec.field.Name, err.Error())
		return
	}

	if err := b.model.Set(rec.field.Name, value); err != nil {
		logger.WarnMessage("Cannot update field '%s': %s", rec.field.Name, err.Error())
	}
}
