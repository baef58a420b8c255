package settings

import (
	"fmt"
	"net/url"
	"time"

	"github.com/dshills/formbind/codec"
)

// String returns a string field value.
func (m *Model) String(name string) (string, error) {
	value, err := m.Get(name)
	if err != nil {
		return "", err
	}
	if value == nil {
		return "", nil
	}

	s, ok := value.(string)
	if !ok {
		return "", typeError(name, "string", value)
	}
	return s, nil
}

// Int returns an integer field value. Whole floats are accepted since
// JSON decodes numbers as float64.
func (m *Model) Int(name string) (int, error) {
	value, err := m.Get(name)
	if err != nil {
		return 0, err
	}
	if value == nil {
		return 0, nil
	}

	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}
		return 0, typeError(name, "integer", value)
	default:
		return 0, typeError(name, "integer", value)
	}
}

// Float returns a floating-point field value.
func (m *Model) Float(name string) (float64, error) {
	value, err := m.Get(name)
	if err != nil {
		return 0, err
	}
	if value == nil {
		return 0, nil
	}

	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, typeError(name, "number", value)
	}
}

// Bool returns a boolean field value.
func (m *Model) Bool(name string) (bool, error) {
	value, err := m.Get(name)
	if err != nil {
		return false, err
	}
	if value == nil {
		return false, nil
	}

	b, ok := value.(bool)
	if !ok {
		return false, typeError(name, "boolean", value)
	}
	return b, nil
}

// Strings returns a string-list field value. Mixed []any lists are
// accepted when every element is a string.
func (m *Model) Strings(name string) ([]string, error) {
	value, err := m.Get(name)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}

	switch v := value.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, nil
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, typeError(name, "string list", value)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, typeError(name, "string list", value)
	}
}

// PathValue returns a path field value. Plain strings are accepted and
// converted.
func (m *Model) PathValue(name string) (codec.Path, error) {
	value, err := m.Get(name)
	if err != nil {
		return "", err
	}
	if value == nil {
		return "", nil
	}

	switch v := value.(type) {
	case codec.Path:
		return v, nil
	case string:
		return codec.Path(v), nil
	default:
		return "", typeError(name, "path", value)
	}
}

// DateValue returns a date field value.
func (m *Model) DateValue(name string) (codec.Date, error) {
	value, err := m.Get(name)
	if err != nil {
		return codec.Date{}, err
	}
	if value == nil {
		return codec.Date{}, nil
	}

	d, ok := value.(codec.Date)
	if !ok {
		return codec.Date{}, typeError(name, "date", value)
	}
	return d, nil
}

// TimeValue returns a datetime field value.
func (m *Model) TimeValue(name string) (time.Time, error) {
	value, err := m.Get(name)
	if err != nil {
		return time.Time{}, err
	}
	if value == nil {
		return time.Time{}, nil
	}

	t, ok := value.(time.Time)
	if !ok {
		return time.Time{}, typeError(name, "datetime", value)
	}
	return t, nil
}

// URLValue returns a URL field value.
func (m *Model) URLValue(name string) (*url.URL, error) {
	value, err := m.Get(name)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}

	u, ok := value.(*url.URL)
	if !ok {
		return nil, typeError(name, "url", value)
	}
	return u, nil
}

func typeError(name, expected string, value any) error {
	return fmt.Errorf("%w for field %s: expected %s, got %T", ErrTypeMismatch, name, expected, value)
}
