// internal/store/file.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"palmier/internal/models"
)

// FileStore persists one pretty-printed JSON document per session, named
// <code>.json under dir. The directory is created lazily on the first save.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory does not need to
// exist yet.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) path(code string) string {
	return filepath.Join(f.dir, code+".json")
}

func (f *FileStore) Load(ctx context.Context, code string) (*models.Session, error) {
	data, err := os.ReadFile(f.path(code))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read session %s: %w", code, err)
	}
	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", code, err)
	}
	return &sess, nil
}

func (f *FileStore) Save(ctx context.Context, code string, sess *models.Session) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir %s: %w", f.dir, err)
	}
	data, err := json.MarshalIndent(sess, "", "    ")
	if err != nil {
		return fmt.Errorf("encode session %s: %w", code, err)
	}
	// Write a temp file and rename it into place so a concurrent Load never
	// observes a partially written record.
	tmp := f.path(code) + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write session %s: %w", code, err)
	}
	if err := os.Rename(tmp, f.path(code)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("commit session %s: %w", code, err)
	}
	return nil
}

func (f *FileStore) ListCodes(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if errors.Is(err, os.ErrNotExist) {
		// Nothing saved yet.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list data dir %s: %w", f.dir, err)
	}
	var codes []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		codes = append(codes, strings.TrimSuffix(name, ".json"))
	}
	return codes, nil
}
