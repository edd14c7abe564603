// Package storage persists the script library to disk.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/breeze-rmm/scriptkit/internal/category"
	"github.com/breeze-rmm/scriptkit/internal/script"
)

// Library is the on-disk unit: the scripts plus the category forest they are
// organized under. OriginalFilename records where the library was loaded
// from; backups carry it so they can be traced back to their source file.
type Library struct {
	Scripts          []*script.Script `json:"scripts"`
	Categories       []*category.Node `json:"categories"`
	OriginalFilename string           `json:"original_filename,omitempty"`
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{
		Scripts:    []*script.Script{},
		Categories: []*category.Node{},
	}
}

// JSONStore handles JSON file persistence for a library.
type JSONStore struct {
	FilePath string
}

// NewJSONStore creates a new JSON store for the given file path.
func NewJSONStore(filePath string) *JSONStore {
	return &JSONStore{
		FilePath: filePath,
	}
}

// Load loads a library from the store's file. A missing file yields an empty
// library rather than an error.
func (s *JSONStore) Load() (*Library, error) {
	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return NewLibrary(), nil
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var lib Library
	if err := json.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	// Bad status values should surface at load, not deep inside a filter.
	for _, sc := range lib.Scripts {
		if sc.Status != "" && !sc.Status.Valid() {
			return nil, fmt.Errorf("script %q has unknown status %q", sc.ID, sc.Status)
		}
	}

	return &lib, nil
}

// Save saves a library to the store's file, creating the directory if
// needed.
func (s *JSONStore) Save(lib *Library) error {
	dir := filepath.Dir(s.FilePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(lib, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(s.FilePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// FileExists checks if the library file exists.
func (s *JSONStore) FileExists() bool {
	_, err := os.Stat(s.FilePath)
	return err == nil
}
