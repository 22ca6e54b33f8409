// Package storage provides durable key-value string stores for the
// recent-search journal. All implementations satisfy journal.Store.
package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/quillboard/searchkit/internal/utils"
)

// FileStore keeps each key as a small file under a directory, the closest
// filesystem analogue of per-origin browser storage.
type FileStore struct {
	dir string
}

// NewFileStore creates the backing directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) path(key string) string {
	// Keys are fixed internal identifiers, but sanitize anyway so a bad key
	// cannot escape the store directory.
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return '_'
	}, key)
	return filepath.Join(fs.dir, safe+".json")
}

// Get returns the stored value and whether the key exists.
func (fs *FileStore) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(fs.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

// Set replaces the value for key. The write goes through a temp file and
// rename so a crash never leaves a half-written value behind.
func (fs *FileStore) Set(key, value string) error {
	target := fs.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}
