// Package storage persists settings documents. A document is a mapping
// from group name to a mapping from field name to serialized value; the
// codec has already reduced every leaf to a plain JSON-compatible scalar,
// list or map before it reaches a backend.
//
// Backends are resolved by file extension through a Registry. The default
// registry ships JSON, TOML, YAML and Bolt backends.
package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// Errors returned by storage operations.
var (
	// ErrNoBackend indicates no backend is registered for a file extension.
	ErrNoBackend = errors.New("no storage backend registered")

	// ErrInvalidDocument indicates the persisted file does not hold a
	// top-level mapping.
	ErrInvalidDocument = errors.New("invalid settings document")
)

// Backend reads and writes settings documents.
type Backend interface {
	// Load reads the document at path. A missing file is not an error;
	// it yields an empty document.
	Load(path string) (map[string]any, error)

	// Save writes the document to path, creating parent directories as
	// needed.
	Save(document map[string]any, path string) error
}

// Registry resolves backends by file extension.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]Backend
}

// NewRegistry creates an empty backend registry.
func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]Backend)}
}

// DefaultRegistry creates a registry with the built-in backends registered
// under their usual extensions.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(".json", NewJSONBackend())
	r.Register(".toml", NewTOMLBackend())
	r.Register(".yaml", NewYAMLBackend())
	r.Register(".yml", NewYAMLBackend())
	r.Register(".db", NewBoltBackend())
	return r
}

// Register installs a backend for an extension (with or without the
// leading dot). Registering an existing extension overwrites it.
func (r *Registry) Register(ext string, backend Backend) {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends[strings.ToLower(ext)] = backend
}

// Resolve returns the backend for the path's extension. The error names
// the unresolved extension.
func (r *Registry) Resolve(path string) (Backend, error) {
	ext := strings.ToLower(filepath.Ext(path))

	r.mu.RLock()
	defer r.mu.RUnlock()

	backend, ok := r.backends[ext]
	if !ok {
		return nil, fmt.Errorf("%w for extension %q", ErrNoBackend, ext)
	}
	return backend, nil
}

// Extensions returns the registered extensions.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.backends))
	for ext := range r.backends {
		out = append(out, ext)
	}
	return out
}
