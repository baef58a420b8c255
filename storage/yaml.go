package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// YAMLBackend stores documents as YAML.
type YAMLBackend struct {
	fs afero.Fs
}

// NewYAMLBackend creates a YAML backend on the OS filesystem.
func NewYAMLBackend() *YAMLBackend {
	return &YAMLBackend{fs: afero.NewOsFs()}
}

// NewYAMLBackendWithFs creates a YAML backend on a custom filesystem.
func NewYAMLBackendWithFs(fs afero.Fs) *YAMLBackend {
	return &YAMLBackend{fs: fs}
}

// Load reads the document at path. A missing file yields an empty document.
func (b *YAMLBackend) Load(path string) (map[string]any, error) {
	data, err := afero.ReadFile(b.fs, path)
	if os.IsNotExist(err) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}

	document := map[string]any{}
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return document, nil
}

// Save writes the document as YAML.
func (b *YAMLBackend) Save(document map[string]any, path string) error {
	data, err := yaml.Marshal(document)
	if err != nil {
		return fmt.Errorf("encoding YAML document: %w", err)
	}

	if err := b.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(b.fs, path, data, 0o644)
}
