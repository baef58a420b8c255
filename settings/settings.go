// Package settings holds the live values of a declarative settings schema
// and keeps them synchronized with persisted storage.
//
// A Model is constructed from a schema, seeded with schema defaults, and
// optionally attached to a storage backend by loading a file. All writes
// route through the single Set mutator, which performs the equality check,
// fires change notifications and persists the new state; there is no way
// to mutate a field that bypasses this.
package settings

import (
	"fmt"
	"path/filepath"
	"reflect"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/dshills/formbind/codec"
	"github.com/dshills/formbind/logger"
	"github.com/dshills/formbind/notify"
	"github.com/dshills/formbind/schema"
	"github.com/dshills/formbind/storage"
)

// Model holds current field values and their persistence state.
type Model struct {
	schema   *schema.Schema
	codec    *codec.Codec
	backends *storage.Registry
	notifier *notify.Notifier

	values map[string]any

	// Persistence state, set by Load. Save fails until both are set.
	backend storage.Backend
	path    string
}

// Option configures a Model.
type Option func(*Model)

// WithCodec sets the value codec. Defaults to codec.New().
func WithCodec(c *codec.Codec) Option {
	return func(m *Model) {
		m.codec = c
	}
}

// WithBackends sets the storage backend registry. Defaults to
// storage.DefaultRegistry().
func WithBackends(r *storage.Registry) Option {
	return func(m *Model) {
		m.backends = r
	}
}

// New creates a model seeded with the schema defaults.
func New(s *schema.Schema, opts ...Option) *Model {
	m := &Model{
		schema:   s,
		notifier: notify.New(),
		values:   make(map[string]any),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.codec == nil {
		m.codec = codec.New()
	}
	if m.backends == nil {
		m.backends = storage.DefaultRegistry()
	}

	for name, value := range s.Defaults() {
		m.values[name] = value
	}

	return m
}

// Schema returns the model's schema.
func (m *Model) Schema() *schema.Schema {
	return m.schema
}

// Codec returns the model's value codec.
func (m *Model) Codec() *codec.Codec {
	return m.codec
}

// Notifier returns the model's change notifier.
func (m *Model) Notifier() *notify.Notifier {
	return m.notifier
}

// ConfigPath returns the path set by Load, or empty.
func (m *Model) ConfigPath() string {
	return m.path
}

// FieldInfo returns the schema definition for name. Unknown names are a
// lookup error.
func (m *Model) FieldInfo(name string) (*schema.Field, error) {
	return m.schema.Field(name)
}

// Load resolves a backend for path by extension, reads the stored document,
// decodes tagged values through the codec and applies them over the schema
// defaults. Fields absent from the stored document keep their defaults.
// The resolved backend and path are retained for later saves.
func (m *Model) Load(path string) error {
	backend, err := m.backends.Resolve(path)
	if err != nil {
		return err
	}

	raw, err := backend.Load(path)
	if err != nil {
		return err
	}

	decoded, err := m.codec.Parse(raw)
	if err != nil {
		return err
	}
	document, ok := decoded.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: document is %T", storage.ErrInvalidDocument, decoded)
	}

	for name, value := range flattenDocument(m.schema, document) {
		m.values[name] = value
	}

	m.backend = backend
	m.path = path

	logger.DebugMessage("Loaded settings from '%s'.", path)
	return nil
}

// Save persists the current values. It is a configuration error to call
// Save before Load has attached a path and backend.
func (m *Model) Save() error {
	if m.path == "" {
		return ErrNoConfigPath
	}
	if m.backend == nil {
		return ErrNoConfigBackend
	}

	document, err := m.document()
	if err != nil {
		return err
	}

	if err := m.backend.Save(document, m.path); err != nil {
		return err
	}

	logger.TraceMessage("Saved settings to '%s'.", m.path)
	return nil
}

// document builds the grouped, serialized form of the current values.
// Fields with no explicit group go under the default group; excluded
// fields are omitted entirely.
func (m *Model) document() (map[string]any, error) {
	document := make(map[string]any)

	for _, f := range m.schema.Fields() {
		if f.Exclude {
			continue
		}

		serialized, err := m.codec.Serialize(m.values[f.Name])
		if err != nil {
			return nil, err
		}

		groupName := f.EffectiveGroup()
		group, ok := document[groupName].(map[string]any)
		if !ok {
			group = make(map[string]any)
			document[groupName] = group
		}
		group[f.Name] = serialized
	}

	return document, nil
}

// Get returns the current value of a field.
func (m *Model) Get(name string) (any, error) {
	if _, err := m.schema.Field(name); err != nil {
		return nil, err
	}
	return m.values[name], nil
}

// Set routes a field write through the model. Writing the current value is
// a no-op with no side effects. A changed value is validated against the
// schema, stored, announced to observers, and persisted when a backend is
// configured; without a backend the change is accepted without
// persistence.
func (m *Model) Set(name string, value any) error {
	field, err := m.schema.Field(name)
	if err != nil {
		return err
	}

	old := m.values[name]
	if equalValues(old, value) {
		return nil
	}

	if err := field.Validate(value); err != nil {
		return fmt.Errorf("%w for field %s: %v", ErrInvalidValue, name, err)
	}

	m.values[name] = value
	m.notifier.Notify(notify.Change{
		Field:    name,
		OldValue: old,
		NewValue: value,
		Source:   "model",
	})

	if m.path != "" && m.backend != nil {
		return m.Save()
	}
	return nil
}

// Reload re-reads the stored document and applies changed fields,
// announcing each change with source "reload". Unchanged fields are left
// alone, so bound widgets only refresh for actual differences.
func (m *Model) Reload() error {
	if m.path == "" {
		return ErrNoConfigPath
	}
	if m.backend == nil {
		return ErrNoConfigBackend
	}

	raw, err := m.backend.Load(m.path)
	if err != nil {
		return err
	}
	decoded, err := m.codec.Parse(raw)
	if err != nil {
		return err
	}
	document, ok := decoded.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: document is %T", storage.ErrInvalidDocument, decoded)
	}

	batch := m.notifier.NewBatch()
	for name, value := range flattenDocument(m.schema, document) {
		old := m.values[name]
		if equalValues(old, value) {
			continue
		}
		m.values[name] = value
		batch.Add(notify.Change{
			Field:    name,
			OldValue: old,
			NewValue: value,
			Source:   "reload",
		})
	}
	batch.Commit()

	logger.DebugMessage("Reloaded settings from '%s'.", m.path)
	return nil
}

// DefaultPath returns ~/.config/<app>/<file>, the conventional location
// for a settings document.
func DefaultPath(app, file string) (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", app, file), nil
}

// flattenDocument maps a stored document onto schema field names. Stored
// documents are grouped, but flat documents are accepted too: a top-level
// mapping is treated as a group unless its key names a schema field.
func flattenDocument(s *schema.Schema, document map[string]any) map[string]any {
	values := make(map[string]any)
	for key, value := range document {
		if s.Has(key) {
			values[key] = value
			continue
		}
		group, ok := value.(map[string]any)
		if !ok {
			continue
		}
		for name, v := range group {
			if s.Has(name) {
				values[name] = v
			}
		}
	}
	return values
}

// equalValues compares two field values structurally.
func equalValues(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
