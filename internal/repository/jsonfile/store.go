// Package jsonfile stores submissions, prayer wall posts and RSVPs as JSON
// documents under a data directory. Every read-modify-write cycle on a file runs
// under that file's mutex and is written through a temp file and rename, so a
// crash leaves either the old or the new document on disk.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// DB is a directory of JSON documents with one mutex per file.
type DB struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Open returns a DB rooted at dir, creating it if needed.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &DB{dir: dir, locks: make(map[string]*sync.Mutex)}, nil
}

// Dir returns the root directory.
func (db *DB) Dir() string { return db.dir }

func (db *DB) path(name string) string {
	return filepath.Join(db.dir, filepath.FromSlash(name))
}

func (db *DB) lock(name string) func() {
	db.mu.Lock()
	l, ok := db.locks[name]
	if !ok {
		l = &sync.Mutex{}
		db.locks[name] = l
	}
	db.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// read loads name into v. It reports false, with v untouched, when the file does not exist.
func (db *DB) read(name string, v any) (bool, error) {
	raw, err := os.ReadFile(db.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", name, err)
	}
	if len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", name, err)
	}
	return true, nil
}

// readRaw returns the file contents, or nil when it does not exist.
func (db *DB) readRaw(name string) ([]byte, error) {
	raw, err := os.ReadFile(db.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return raw, nil
}

// write replaces name with v atomically: temp file in the same directory, fsync, rename.
func (db *DB) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	target := db.path(name)
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create dir for %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", name, err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op once renamed.
		_ = os.Remove(tmpName)
	}()
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("rename %s: %w", name, err)
	}
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}
