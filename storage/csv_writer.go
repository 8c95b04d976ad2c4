package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"hotel-scout/models"
)

var csvHeader = []string{"name", "rating", "price", "currency"}

// CSVWriter writes listings to a CSV file, replacing any previous content.
type CSVWriter struct {
	path string
}

// NewCSVWriter creates a CSVWriter for path. The file is created on Write.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Write creates (or truncates) the file and writes the header plus one row
// per listing. Absent fields are written as empty strings.
func (c *CSVWriter) Write(listings []models.Listing) (err error) {
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", c.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("csv: close file %q: %w", c.path, cerr)
		}
	}()

	return writeRows(f, listings)
}

func writeRows(out io.Writer, listings []models.Listing) error {
	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, l := range listings {
		row := []string{
			l.Name,
			formatOptional(l.Rating),
			formatOptional(l.Price),
			l.CurrencyCode(),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	return nil
}

// Close is a no-op; each Write opens and closes its own file.
func (c *CSVWriter) Close() error { return nil }

// Path returns the output file path.
func (c *CSVWriter) Path() string { return c.path }

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
