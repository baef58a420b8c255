package codec

import "fmt"

// FormatError is returned when a handler rejects a payload or value.
// Handler errors are never swallowed; they surface to the caller of Parse
// or Serialize wrapped in a FormatError.
type FormatError struct {
	// Keyword is the handler that rejected the input.
	Keyword string
	// Payload is the offending payload (empty for serialize failures).
	Payload string
	// Err is the underlying handler error.
	Err error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Payload != "" {
		return fmt.Sprintf("invalid %s value %q: %v", e.Keyword, e.Payload, e.Err)
	}
	return fmt.Sprintf("cannot serialize %s value: %v", e.Keyword, e.Err)
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// UnknownKeywordError is returned by SerializeAs for an unregistered keyword.
type UnknownKeywordError struct {
	Keyword string
}

// Error implements the error interface.
func (e *UnknownKeywordError) Error() string {
	return fmt.Sprintf("no handler registered for keyword %q", e.Keyword)
}
