package codec

import (
	"fmt"
	"reflect"
	"strings"
)

// ParseFunc converts a token payload into a typed value.
type ParseFunc func(payload string) (any, error)

// SerializeFunc renders a typed value back into a token payload.
type SerializeFunc func(value any) (string, error)

// Handler is the registered (parse, serialize, type) triple for one keyword.
type Handler struct {
	// Keyword is the tag this handler is registered under.
	Keyword string

	// Parse converts a payload into the handler's value type.
	Parse ParseFunc

	// Serialize converts a value back into a payload. If nil, the value is
	// passed through with fmt.Sprint.
	Serialize SerializeFunc

	// ValueType enables type-driven serialization: a value whose runtime
	// type matches is serialized by this handler without an explicit
	// keyword. May be nil.
	ValueType reflect.Type

	// serializeAs overrides the tag applied during type-driven
	// serialization. Used by the built-in datetime handler, which tags its
	// output "@date" unless the caller asks for "datetime" explicitly.
	serializeAs string
}

// tagKeyword returns the keyword used when tagging serialized output.
func (h Handler) tagKeyword() string {
	if h.serializeAs != "" {
		return h.serializeAs
	}
	return h.Keyword
}

func (h Handler) serialize(value any) (string, error) {
	if h.Serialize == nil {
		if s, ok := value.(string); ok {
			return s, nil
		}
		return fmt.Sprint(value), nil
	}
	return h.Serialize(value)
}

// Codec is a registry of named type handlers. A Codec is an explicit
// instance rather than process-wide state so that independently configured
// codecs can coexist; New returns one with the built-in handlers installed.
//
// A Codec is not safe for concurrent mutation; register handlers before
// sharing it.
type Codec struct {
	handlers map[string]Handler
	order    []string
}

// New creates a codec pre-registered with the built-in path, date, datetime
// and url handlers.
func New() *Codec {
	c := NewEmpty()
	registerBuiltins(c)
	return c
}

// NewEmpty creates a codec with no handlers registered.
func NewEmpty() *Codec {
	return &Codec{handlers: make(map[string]Handler)}
}

// Register installs a handler under its keyword. Registering an existing
// keyword overwrites the previous handler.
func (c *Codec) Register(h Handler) {
	if h.Keyword == "" {
		return
	}
	if _, exists := c.handlers[h.Keyword]; !exists {
		c.order = append(c.order, h.Keyword)
	}
	c.handlers[h.Keyword] = h
}

// RegisterFunc is a convenience wrapper around Register. A nil serialize
// falls back to pass-through and valueType may be nil.
func (c *Codec) RegisterFunc(keyword string, parse ParseFunc, serialize SerializeFunc, valueType reflect.Type) {
	c.Register(Handler{
		Keyword:   keyword,
		Parse:     parse,
		Serialize: serialize,
		ValueType: valueType,
	})
}

// Handler returns the handler registered under keyword, if any.
func (c *Codec) Handler(keyword string) (Handler, bool) {
	h, ok := c.handlers[keyword]
	return h, ok
}

// Keywords returns the registered keywords in registration order.
func (c *Codec) Keywords() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Parse converts tagged tokens into typed values. Maps and slices are walked
// recursively with key sets and element order preserved; strings carrying a
// registered tag are parsed; everything else is returned unchanged. Handler
// errors propagate as *FormatError.
func (c *Codec) Parse(input any) (any, error) {
	switch v := input.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			parsed, err := c.Parse(val)
			if err != nil {
				return nil, err
			}
			out[key] = parsed
		}
		return out, nil

	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			parsed, err := c.Parse(val)
			if err != nil {
				return nil, err
			}
			out[i] = parsed
		}
		return out, nil

	case []string:
		out := make([]any, len(v))
		for i, val := range v {
			parsed, err := c.Parse(val)
			if err != nil {
				return nil, err
			}
			out[i] = parsed
		}
		return out, nil

	case string:
		return c.parseString(v)

	default:
		return input, nil
	}
}

// parseString parses a single candidate token. Strings without a leading
// "@", without a space after the keyword, or with an unregistered keyword
// pass through unchanged.
func (c *Codec) parseString(s string) (any, error) {
	if !strings.HasPrefix(s, "@") {
		return s, nil
	}

	keyword, payload, found := strings.Cut(s[1:], " ")
	if !found {
		return s, nil
	}

	h, ok := c.handlers[keyword]
	if !ok {
		return s, nil
	}

	value, err := h.Parse(payload)
	if err != nil {
		return nil, &FormatError{Keyword: keyword, Payload: payload, Err: err}
	}
	return value, nil
}

// Serialize converts typed values back into tagged tokens, recursing over
// maps and slices. A value whose runtime type matches a registered handler
// is serialized and tagged; values with no matching handler are returned
// unchanged.
func (c *Codec) Serialize(value any) (any, error) {
	return c.serialize(value, "")
}

// SerializeAs serializes value using the handler registered under keyword
// and tags the result with that keyword. Unknown keywords are an error.
func (c *Codec) SerializeAs(value any, keyword string) (any, error) {
	if _, ok := c.handlers[keyword]; !ok {
		return nil, &UnknownKeywordError{Keyword: keyword}
	}
	return c.serialize(value, keyword)
}

// ParsePayload applies the handler registered under keyword directly to an
// untagged payload. Used at widget boundaries, where display text carries
// no tag.
func (c *Codec) ParsePayload(keyword, payload string) (any, error) {
	h, ok := c.handlers[keyword]
	if !ok {
		return nil, &UnknownKeywordError{Keyword: keyword}
	}
	value, err := h.Parse(payload)
	if err != nil {
		return nil, &FormatError{Keyword: keyword, Payload: payload, Err: err}
	}
	return value, nil
}

// SerializePayload renders value as untagged payload text using the handler
// registered under keyword.
func (c *Codec) SerializePayload(value any, keyword string) (string, error) {
	h, ok := c.handlers[keyword]
	if !ok {
		return "", &UnknownKeywordError{Keyword: keyword}
	}
	text, err := h.serialize(value)
	if err != nil {
		return "", &FormatError{Keyword: keyword, Err: err}
	}
	return text, nil
}

func (c *Codec) serialize(value any, keyword string) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			serialized, err := c.serialize(val, "")
			if err != nil {
				return nil, err
			}
			out[key] = serialized
		}
		return out, nil

	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			serialized, err := c.serialize(val, "")
			if err != nil {
				return nil, err
			}
			out[i] = serialized
		}
		return out, nil
	}

	if keyword != "" {
		h := c.handlers[keyword] // existence checked by SerializeAs
		text, err := h.serialize(value)
		if err != nil {
			return nil, &FormatError{Keyword: keyword, Err: err}
		}
		return encodeSerialized(text, keyword), nil
	}

	valueType := reflect.TypeOf(value)
	for _, kw := range c.order {
		h := c.handlers[kw]
		if h.ValueType == nil || h.ValueType != valueType {
			continue
		}
		text, err := h.serialize(value)
		if err != nil {
			return nil, &FormatError{Keyword: kw, Err: err}
		}
		return encodeSerialized(text, h.tagKeyword()), nil
	}

	// No matching handler: silent pass-through.
	return value, nil
}

// encodeSerialized applies the tagging rule to serializer output. Output
// that is already tagged is left alone, so round-trip serialization is
// stable even when a serializer returns a tagged string. Output that begins
// with the bare keyword only needs the "@" restored.
func encodeSerialized(text, keyword string) string {
	if strings.HasPrefix(text, "@") {
		return text
	}
	if strings.HasPrefix(text, keyword+" ") {
		return "@" + text
	}
	return "@" + keyword + " " + text
}
