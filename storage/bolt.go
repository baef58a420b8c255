package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	bolt "go.etcd.io/bbolt"
)

// boltBucket holds the settings document inside the database.
var boltBucket = []byte("settings")

// boltDocumentKey is the key the encoded document is stored under.
var boltDocumentKey = []byte("document")

// BoltBackend stores documents in a bbolt database file. bbolt manages its
// own file I/O, so this backend does not go through afero.
type BoltBackend struct{}

// NewBoltBackend creates a Bolt backend.
func NewBoltBackend() *BoltBackend {
	return &BoltBackend{}
}

// Load reads the document from the database at path. A missing database
// yields an empty document.
func (b *BoltBackend) Load(path string) (map[string]any, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return map[string]any{}, nil
	}

	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	document := map[string]any{}
	err = db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(boltBucket)
		if bucket == nil {
			return nil
		}
		data := bucket.Get(boltDocumentKey)
		if len(data) == 0 {
			return nil
		}
		if !gjson.ValidBytes(data) {
			return fmt.Errorf("%w: corrupt document in %s", ErrInvalidDocument, path)
		}
		value, ok := gjson.ParseBytes(data).Value().(map[string]any)
		if !ok {
			return fmt.Errorf("%w: %s does not hold a top-level mapping", ErrInvalidDocument, path)
		}
		document = value
		return nil
	})
	if err != nil {
		return nil, err
	}
	return document, nil
}

// Save writes the document into the database at path.
func (b *BoltBackend) Save(document map[string]any, path string) error {
	doc := []byte("{}")
	var err error
	for _, key := range sortedKeys(document) {
		doc, err = sjson.SetBytes(doc, escapeJSONPath(key), document[key])
		if err != nil {
			return fmt.Errorf("encoding group %q: %w", key, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(boltBucket)
		if err != nil {
			return err
		}
		return bucket.Put(boltDocumentKey, doc)
	})
}
