package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// TOMLBackend stores documents as TOML, one table per group.
type TOMLBackend struct {
	fs afero.Fs
}

// NewTOMLBackend creates a TOML backend on the OS filesystem.
func NewTOMLBackend() *TOMLBackend {
	return &TOMLBackend{fs: afero.NewOsFs()}
}

// NewTOMLBackendWithFs creates a TOML backend on a custom filesystem.
func NewTOMLBackendWithFs(fs afero.Fs) *TOMLBackend {
	return &TOMLBackend{fs: fs}
}

// Load reads the document at path. A missing file yields an empty document.
func (b *TOMLBackend) Load(path string) (map[string]any, error) {
	data, err := afero.ReadFile(b.fs, path)
	if os.IsNotExist(err) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}

	document := map[string]any{}
	if err := toml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return document, nil
}

// Save writes the document as TOML.
func (b *TOMLBackend) Save(document map[string]any, path string) error {
	data, err := toml.Marshal(document)
	if err != nil {
		return fmt.Errorf("encoding TOML document: %w", err)
	}

	if err := b.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(b.fs, path, data, 0o644)
}
