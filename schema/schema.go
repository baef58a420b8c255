// Package schema defines the declarative settings schema: field
// definitions with their types, defaults, validation rules and display
// metadata, plus the policy mapping a field to the widget kind that edits
// it.
package schema

import (
	"fmt"
	"regexp"
	"sort"
)

// DefaultGroup is the group fields belong to when none is declared.
const DefaultGroup = "General"

// Field defines one setting with its metadata.
type Field struct {
	// Name uniquely identifies the field within a schema.
	Name string

	// Type is the field's data type.
	Type FieldType

	// Default is the schema default value.
	Default any

	// Title is the display title. Empty falls back to Name.
	Title string

	// Description is human-readable documentation, used as help text.
	Description string

	// Group places the field under a named group in forms and in the
	// persisted document. Empty means DefaultGroup.
	Group string

	// Widget optionally forces a widget kind by name (e.g. "password",
	// "textarea").
	Widget string

	// Choices lists allowed values; a non-empty list selects a choice
	// widget.
	Choices []string

	// Minimum for numeric types (nil means no minimum).
	Minimum *float64

	// Maximum for numeric types (nil means no maximum).
	Maximum *float64

	// Pattern for string validation (regex).
	Pattern string

	// Exclude omits the field from persistence and widget construction.
	Exclude bool

	// Tags for filtering/grouping fields.
	Tags []string

	// compiledPattern is the compiled regex pattern (lazily initialized).
	compiledPattern *regexp.Regexp
}

// EffectiveTitle returns the display title, falling back to the name.
func (f *Field) EffectiveTitle() string {
	if f.Title != "" {
		return f.Title
	}
	return f.Name
}

// EffectiveGroup returns the group name, falling back to DefaultGroup.
func (f *Field) EffectiveGroup() string {
	if f.Group != "" {
		return f.Group
	}
	return DefaultGroup
}

// Schema is an ordered collection of field definitions.
type Schema struct {
	fields []*Field
	byName map[string]*Field
}

// New creates an empty schema.
func New() *Schema {
	return &Schema{byName: make(map[string]*Field)}
}

// Add appends a field definition. Returns an error if a field with the
// same name already exists.
func (s *Schema) Add(field Field) error {
	if field.Name == "" {
		return fmt.Errorf("%w: empty field name", ErrInvalidField)
	}
	if _, exists := s.byName[field.Name]; exists {
		return fmt.Errorf("%w: %s", ErrFieldAlreadyDefined, field.Name)
	}

	f := &field
	s.fields = append(s.fields, f)
	s.byName[field.Name] = f
	return nil
}

// MustAdd adds a field and panics on error. Useful for declaring a schema
// at init time.
func (s *Schema) MustAdd(field Field) {
	if err := s.Add(field); err != nil {
		panic(err)
	}
}

// Field returns the definition for name, or an error if the schema has no
// such field.
func (s *Schema) Field(name string) (*Field, error) {
	f, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, name)
	}
	return f, nil
}

// Has checks if a field is defined.
func (s *Schema) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Fields returns all fields in declaration order.
func (s *Schema) Fields() []*Field {
	out := make([]*Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Groups returns group names in order of first appearance.
func (s *Schema) Groups() []string {
	var names []string
	seen := make(map[string]bool)
	for _, f := range s.fields {
		g := f.EffectiveGroup()
		if !seen[g] {
			seen[g] = true
			names = append(names, g)
		}
	}
	return names
}

// Group returns the fields declared under the given group, in declaration
// order. Returns an error if no field belongs to the group.
func (s *Schema) Group(name string) ([]*Field, error) {
	var out []*Field
	for _, f := range s.fields {
		if f.EffectiveGroup() == name {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, name)
	}
	return out, nil
}

// Defaults returns a map of field name to schema default.
func (s *Schema) Defaults() map[string]any {
	out := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		out[f.Name] = f.Default
	}
	return out
}

// ByTag returns all fields carrying the given tag, sorted by name.
func (s *Schema) ByTag(tag string) []*Field {
	var out []*Field
	for _, f := range s.fields {
		for _, t := range f.Tags {
			if t == tag {
				out = append(out, f)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// MinValue creates a pointer to a float64 for use as Minimum.
func MinValue(v float64) *float64 {
	return &v
}

// MaxValue creates a pointer to a float64 for use as Maximum.
func MaxValue(v float64) *float64 {
	return &v
}
