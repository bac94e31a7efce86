package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStorage) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// FileStorage keeps values in a JSON object on disk. Writes are buffered
// until Commit.
type FileStorage struct {
	path string
	mem  *MemoryStorage
}

func OpenFileStorage(path string) (*FileStorage, error) {
	fs := &FileStorage{path: path, mem: NewMemoryStorage()}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if len(data) == 0 {
		return fs, nil
	}
	if err := json.Unmarshal(data, &fs.mem.values); err != nil {
		return nil, fmt.Errorf("decode session file %s: %w", path, err)
	}
	if fs.mem.values == nil {
		fs.mem.values = make(map[string]string)
	}
	return fs, nil
}

func (f *FileStorage) Path() string { return f.path }

func (f *FileStorage) Get(key string) (string, bool) { return f.mem.Get(key) }

func (f *FileStorage) Set(key, value string) error { return f.mem.Set(key, value) }

func (f *FileStorage) Remove(key string) error { return f.mem.Remove(key) }

// Commit replaces the file atomically.
func (f *FileStorage) Commit() error {
	f.mem.mu.RLock()
	data, err := json.MarshalIndent(f.mem.values, "", "  ")
	f.mem.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".session-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}
