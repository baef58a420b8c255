package bind

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/formbind/codec"
	"github.com/dshills/formbind/schema"
)

// fieldKeyword maps semantic field types to their codec keyword.
func fieldKeyword(t schema.FieldType) string {
	switch t {
	case schema.TypePath:
		return "path"
	case schema.TypeDate:
		return "date"
	case schema.TypeDateTime:
		return "datetime"
	case schema.TypeURL:
		return "url"
	default:
		return ""
	}
}

// displayValue converts a model value into what a widget displays. Typed
// values render as their untagged payload text; lists normalize to
// []string; everything else passes through.
func displayValue(c *codec.Codec, field *schema.Field, value any) (any, error) {
	if value == nil {
		if field.Type == schema.TypeStringList {
			return []string{}, nil
		}
		return "", nil
	}

	if keyword := fieldKeyword(field.Type); keyword != "" {
		// Paths may live in the model as plain strings; display them
		// verbatim rather than round-tripping through the handler.
		if s, ok := value.(string); ok {
			return s, nil
		}
		return c.SerializePayload(value, keyword)
	}

	if field.Type == schema.TypeStringList {
		return toStringList(value)
	}

	return value, nil
}

// widgetValue converts a raw widget value into the field's semantic type.
func widgetValue(c *codec.Codec, field *schema.Field, raw any) (any, error) {
	if keyword := fieldKeyword(field.Type); keyword != "" {
		if s, ok := raw.(string); ok {
			return c.ParsePayload(keyword, s)
		}
		return raw, nil
	}

	switch field.Type {
	case schema.TypeInt:
		return toInt(raw)

	case schema.TypeFloat:
		return toFloat(raw)

	case schema.TypeBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("expected boolean from widget, got %T", raw)
		}
		return b, nil

	case schema.TypeStringList:
		list, err := toStringList(raw)
		if err != nil {
			return nil, err
		}
		// Model values use []any so they compare equal with loaded
		// documents.
		out := make([]any, len(list))
		for i, s := range list {
			out[i] = s
		}
		return out, nil

	default:
		if s, ok := raw.(string); ok {
			return s, nil
		}
		return nil, fmt.Errorf("expected string from widget, got %T", raw)
	}
}

func toInt(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("invalid integer %q", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected integer from widget, got %T", raw)
	}
}

func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("expected number from widget, got %T", raw)
	}
}

func toStringList(raw any) ([]string, error) {
	switch v := raw.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, nil
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected string list element, got %T", item)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected string list, got %T", raw)
	}
}
