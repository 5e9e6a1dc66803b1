package tracker

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// LoadStore opens, decodes and returns the position store persisted at
// 'path'. A missing file is not an error: it returns an empty store, so a
// first run starts from nothing.
func LoadStore(path string) (*Store, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewStore(), nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load", Path: path, Err: err}
	}
	defer f.Close()

	s, err := DecodeStore(f)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Path: path, Err: err}
	}
	return s, nil
}

// Save persists the store to 'path'. It writes to a temporary file in the
// same directory and renames it into place, so a failed write never
// corrupts the previous file.
func (s *Store) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*")
	if err != nil {
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}
	defer os.Remove(tmp.Name())

	if err := EncodeStore(tmp, s); err != nil {
		tmp.Close()
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}
	return nil
}
