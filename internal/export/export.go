// Package export serializes record collections for sharing outside the
// application.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"ecoacustica/internal/records"
)

// WriteJSON streams the collection as pretty-printed JSON.
func WriteJSON(w io.Writer, collection records.Collection) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(collection); err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}
	return nil
}

// DefaultFileName names an export file after the current date.
func DefaultFileName(now time.Time) string {
	return "analisis_acusticos_" + now.Format("2006-01-02") + ".json"
}

// ToFile writes the collection to path, creating parent directories.
func ToFile(path string, collection records.Collection) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()

	if err := WriteJSON(file, collection); err != nil {
		return err
	}
	return file.Close()
}
