package cart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// StorageKey is the fixed name the cart is saved under.
const StorageKey = "carrito"

// Store keeps serialized carts by name. Load returns nil data for a missing entry.
type Store interface {
	Load(name string) ([]byte, error)
	Save(name string, data []byte) error
	Delete(name string) error
}

// FileStore saves each entry as <Dir>/<name>.json.
type FileStore struct {
	Dir string
}

func (s FileStore) path(name string) string {
	return filepath.Join(s.Dir, name+".json")
}

func (s FileStore) Load(name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

// Save replaces the file atomically.
func (s FileStore) Save(name string, data []byte) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.Dir, name+"-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", s.path(name), err)
	}
	return nil
}

func (s FileStore) Delete(name string) error {
	err := os.Remove(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
