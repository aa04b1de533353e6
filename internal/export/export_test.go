package export_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ecoacustica/internal/export"
	"ecoacustica/internal/records"
)

func TestWriteJSONRoundTrips(t *testing.T) {
	collection := records.Seed(time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	if err := export.WriteJSON(&buf, collection); err != nil {
		t.Fatalf("WriteJSON returned error: %v", err)
	}

	var decoded records.Collection
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("export output is not valid JSON: %v", err)
	}
	if len(decoded) != len(collection) {
		t.Fatalf("decoded %d records, want %d", len(decoded), len(collection))
	}
	if decoded[0].ID != collection[0].ID {
		t.Fatalf("first record = %s, want %s", decoded[0].ID, collection[0].ID)
	}
	if !strings.Contains(buf.String(), "\n  {") {
		t.Fatal("expected indented output")
	}
}

func TestWriteJSONEmptyCollection(t *testing.T) {
	var buf bytes.Buffer
	if err := export.WriteJSON(&buf, nil); err != nil {
		t.Fatalf("WriteJSON returned error: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "null" && got != "[]" {
		t.Fatalf("unexpected output for empty collection: %q", got)
	}
}

func TestToFileCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exports", "nested", "out.json")

	collection := records.Seed(time.Now())
	if err := export.ToFile(path, collection); err != nil {
		t.Fatalf("ToFile returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export file: %v", err)
	}
	var decoded records.Collection
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("file is not valid JSON: %v", err)
	}
	if len(decoded) != len(collection) {
		t.Fatalf("file has %d records, want %d", len(decoded), len(collection))
	}
}

func TestDefaultFileName(t *testing.T) {
	now := time.Date(2026, 8, 29, 9, 30, 0, 0, time.UTC)
	got := export.DefaultFileName(now)
	want := "analisis_acusticos_2026-08-29.json"
	if got != want {
		t.Fatalf("DefaultFileName = %q, want %q", got, want)
	}
}
