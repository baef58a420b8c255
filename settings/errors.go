package settings

import "errors"

// Errors returned by model operations.
var (
	// ErrNoConfigPath indicates Save was called before a config path was set.
	ErrNoConfigPath = errors.New("config path not set")

	// ErrNoConfigBackend indicates Save was called before a backend was
	// resolved.
	ErrNoConfigBackend = errors.New("config backend not set")

	// ErrInvalidValue indicates a write was rejected by schema validation.
	ErrInvalidValue = errors.New("invalid value")

	// ErrTypeMismatch indicates a typed accessor was used on a value of a
	// different type.
	ErrTypeMismatch = errors.New("type mismatch")
)
