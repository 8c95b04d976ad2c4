package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"hotel-scout/models"
)

// JSONWriter writes listings as an indented JSON array.
type JSONWriter struct {
	path string
}

// NewJSONWriter creates a JSONWriter for path.
func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path}
}

// Write replaces the file with the listings. Absent fields become null and an
// empty input is written as [].
func (j *JSONWriter) Write(listings []models.Listing) error {
	if listings == nil {
		listings = []models.Listing{}
	}

	if err := os.MkdirAll(filepath.Dir(j.path), 0755); err != nil {
		return fmt.Errorf("json: create output dir: %w", err)
	}

	data, err := json.MarshalIndent(listings, "", "  ")
	if err != nil {
		return fmt.Errorf("json: marshal: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(j.path, data, 0644); err != nil {
		return fmt.Errorf("json: write file %q: %w", j.path, err)
	}
	return nil
}

// Close is a no-op; each Write opens and closes its own file.
func (j *JSONWriter) Close() error { return nil }

// Path returns the output file path.
func (j *JSONWriter) Path() string { return j.path }
