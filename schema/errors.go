package schema

import "errors"

// Errors returned by schema operations.
var (
	// ErrFieldNotFound indicates the field name is not part of the schema.
	ErrFieldNotFound = errors.New("no such field")

	// ErrGroupNotFound indicates no field belongs to the named group.
	ErrGroupNotFound = errors.New("no such group")

	// ErrFieldAlreadyDefined indicates an attempt to define a duplicate field.
	ErrFieldAlreadyDefined = errors.New("field already defined")

	// ErrInvalidField indicates a malformed field definition.
	ErrInvalidField = errors.New("invalid field definition")

	// ErrFieldExcluded indicates a widget was requested for an excluded field.
	ErrFieldExcluded = errors.New("field widget was disabled or excluded")
)
