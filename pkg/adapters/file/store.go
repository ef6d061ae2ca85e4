package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/aretw0/scormkit/pkg/domain"
)

// DefaultNamespace is used when no storage session ID is given.
const DefaultNamespace = "default"

// ErrInvalidNamespace is returned for namespaces that would escape the base path.
var ErrInvalidNamespace = errors.New("invalid storage namespace")

// Store implements ports.Storage using the local filesystem.
// Each namespace (storage session) is one JSON object file in BasePath.
type Store struct {
	BasePath  string
	Namespace string

	mu sync.Mutex
}

// New creates a new Store for namespace under basePath.
// If basePath is empty, it defaults to ".scormkit/storage".
func New(basePath, namespace string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".scormkit", "storage")
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Store{BasePath: basePath, Namespace: namespace}
}

// GetItem reads key from the namespace file.
func (s *Store) GetItem(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return "", err
	}
	v, ok := items[key]
	if !ok {
		return "", domain.ErrItemNotFound
	}
	return v, nil
}

// SetItem writes key to the namespace file.
func (s *Store) SetItem(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}
	items[key] = value
	return s.save(items)
}

// RemoveItem deletes key from the namespace file.
func (s *Store) RemoveItem(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	return s.save(items)
}

// Keys returns the stored keys in sorted order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(items)), nil
}

// Clear removes the namespace file.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.path()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete storage file: %w", err)
	}
	return nil
}

// Snapshot returns every item of the namespace.
func (s *Store) Snapshot(ctx context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Namespaces returns the storage sessions present in BasePath.
func (s *Store) Namespaces(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list storage sessions: %w", err)
	}

	var namespaces []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || strings.HasPrefix(name, "tmp-") {
			continue
		}
		namespaces = append(namespaces, strings.TrimSuffix(name, ".json"))
	}
	return namespaces, nil
}

func (s *Store) path() (string, error) {
	ns := s.Namespace
	if ns == "" || ns != filepath.Base(ns) || ns == "." || ns == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidNamespace, ns)
	}
	return filepath.Join(s.BasePath, ns+".json"), nil
}

func (s *Store) load() (map[string]string, error) {
	path, err := s.path()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to read storage file: %w", err)
	}

	items := make(map[string]string)
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal storage file: %w", err)
	}
	return items, nil
}

// save writes items atomically: temp file in the same directory, fsync, rename.
func (s *Store) save(items map[string]string) error {
	path, err := s.path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure storage directory: %w", err)
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal storage: %w", err)
	}

	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+s.Namespace+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Windows cannot rename over an existing file.
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove existing storage file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
