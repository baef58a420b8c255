package schema

import (
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/dshills/formbind/codec"
)

// Validate checks if a value is valid for this field.
func (f *Field) Validate(value any) error {
	if err := f.validateType(value); err != nil {
		return err
	}

	if len(f.Choices) > 0 {
		if err := f.validateChoice(value); err != nil {
			return err
		}
	}

	if f.Type == TypeInt || f.Type == TypeFloat {
		if err := f.validateRange(value); err != nil {
			return err
		}
	}

	if f.Type == TypeString && f.Pattern != "" {
		if err := f.validatePattern(value); err != nil {
			return err
		}
	}

	return nil
}

// validateType checks if the value matches the declared field type.
func (f *Field) validateType(value any) error {
	if value == nil {
		return nil
	}

	switch f.Type {
	case TypeString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
	case TypeInt:
		switch value.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			// Valid
		default:
			return fmt.Errorf("expected integer, got %T", value)
		}
	case TypeFloat:
		switch value.(type) {
		case float32, float64, int, int64:
			// Valid (integers are acceptable for float)
		default:
			return fmt.Errorf("expected number, got %T", value)
		}
	case TypeBool:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("expected boolean, got %T", value)
		}
	case TypeStringList:
		switch value.(type) {
		case []string, []any:
			// Valid
		default:
			return fmt.Errorf("expected string list, got %T", value)
		}
	case TypePath:
		switch value.(type) {
		case codec.Path, string:
			// Valid (strings are coerced at the binding boundary)
		default:
			return fmt.Errorf("expected path, got %T", value)
		}
	case TypeDate:
		if _, ok := value.(codec.Date); !ok {
			return fmt.Errorf("expected date, got %T", value)
		}
	case TypeDateTime:
		if _, ok := value.(time.Time); !ok {
			return fmt.Errorf("expected datetime, got %T", value)
		}
	case TypeURL:
		if _, ok := value.(*url.URL); !ok {
			return fmt.Errorf("expected url, got %T", value)
		}
	}
	return nil
}

// validateChoice checks if the value is one of the allowed choices.
func (f *Field) validateChoice(value any) error {
	s, ok := value.(string)
	if !ok {
		return nil // Non-string, choice check doesn't apply
	}
	for _, choice := range f.Choices {
		if choice == s {
			return nil
		}
	}
	return fmt.Errorf("value must be one of: %v", f.Choices)
}

// validateRange checks if a numeric value is within the allowed range.
func (f *Field) validateRange(value any) error {
	var v float64
	switch n := value.(type) {
	case int:
		v = float64(n)
	case int64:
		v = float64(n)
	case float32:
		v = float64(n)
	case float64:
		v = n
	default:
		return nil // Non-numeric, skip range check
	}

	if f.Minimum != nil && v < *f.Minimum {
		return fmt.Errorf("value %v is less than minimum %v", value, *f.Minimum)
	}
	if f.Maximum != nil && v > *f.Maximum {
		return fmt.Errorf("value %v is greater than maximum %v", value, *f.Maximum)
	}
	return nil
}

// validatePattern checks if a string value matches the required pattern.
func (f *Field) validatePattern(value any) error {
	s, ok := value.(string)
	if !ok {
		return nil
	}

	if f.compiledPattern == nil {
		var err error
		f.compiledPattern, err = regexp.Compile(f.Pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern: %w", err)
		}
	}

	if !f.compiledPattern.MatchString(s) {
		return fmt.Errorf("value does not match pattern %s", f.Pattern)
	}
	return nil
}
