package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// JSONBackend stores documents as pretty-printed JSON.
type JSONBackend struct {
	fs afero.Fs
}

// NewJSONBackend creates a JSON backend on the OS filesystem.
func NewJSONBackend() *JSONBackend {
	return &JSONBackend{fs: afero.NewOsFs()}
}

// NewJSONBackendWithFs creates a JSON backend on a custom filesystem.
func NewJSONBackendWithFs(fs afero.Fs) *JSONBackend {
	return &JSONBackend{fs: fs}
}

// Load reads the document at path. A missing file yields an empty document.
func (b *JSONBackend) Load(path string) (map[string]any, error) {
	data, err := afero.ReadFile(b.fs, path)
	if os.IsNotExist(err) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return map[string]any{}, nil
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: %s is not valid JSON", ErrInvalidDocument, path)
	}

	value := gjson.ParseBytes(data).Value()
	document, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s does not hold a top-level mapping", ErrInvalidDocument, path)
	}
	return document, nil
}

// Save writes the document as JSON, with groups and fields in sorted order
// so repeated saves are byte-stable.
func (b *JSONBackend) Save(document map[string]any, path string) error {
	doc := []byte("{}")

	var err error
	for _, key := range sortedKeys(document) {
		doc, err = sjson.SetBytes(doc, escapeJSONPath(key), document[key])
		if err != nil {
			return fmt.Errorf("encoding group %q: %w", key, err)
		}
	}

	pretty := gjson.GetBytes(doc, "@pretty").String()

	if err := b.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(b.fs, path, []byte(pretty), 0o644)
}

// escapeJSONPath escapes path metacharacters in a literal key.
func escapeJSONPath(key string) string {
	replacer := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`)
	return replacer.Replace(key)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
