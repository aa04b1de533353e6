package logs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeLog(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ecoacustica.log")
	if err := os.WriteFile(path, []byte(lines), 0o644); err != nil {
		t.Fatalf("write log fixture: %v", err)
	}
	return path
}

func TestLastLinesReturnsTrailingWindow(t *testing.T) {
	path := writeLog(t, "one\ntwo\nthree\nfour\n")

	lines, offset, err := LastLines(path, 2)
	if err != nil {
		t.Fatalf("LastLines returned error: %v", err)
	}
	if len(lines) != 2 || lines[0] != "three" || lines[1] != "four" {
		t.Fatalf("lines = %v", lines)
	}
	if offset == 0 {
		t.Fatal("expected non-zero offset for non-empty file")
	}
}

func TestLastLinesShortFile(t *testing.T) {
	path := writeLog(t, "only\n")

	lines, _, err := LastLines(path, 10)
	if err != nil {
		t.Fatalf("LastLines returned error: %v", err)
	}
	if len(lines) != 1 || lines[0] != "only" {
		t.Fatalf("lines = %v", lines)
	}
}

func TestLastLinesMissingFile(t *testing.T) {
	lines, offset, err := LastLines(filepath.Join(t.TempDir(), "absent.log"), 5)
	if err != nil {
		t.Fatalf("LastLines returned error: %v", err)
	}
	if len(lines) != 0 || offset != 0 {
		t.Fatalf("lines = %v, offset = %d", lines, offset)
	}
}

func TestReadFromPicksUpNewLines(t *testing.T) {
	path := writeLog(t, "first\n")

	_, offset, err := LastLines(path, 0)
	if err != nil {
		t.Fatalf("LastLines returned error: %v", err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open for append: %v", err)
	}
	if _, err := file.WriteString("second\nthird\n"); err != nil {
		t.Fatalf("append: %v", err)
	}
	file.Close()

	lines, newOffset, err := ReadFrom(path, offset)
	if err != nil {
		t.Fatalf("ReadFrom returned error: %v", err)
	}
	if len(lines) != 2 || lines[0] != "second" || lines[1] != "third" {
		t.Fatalf("lines = %v", lines)
	}
	if newOffset <= offset {
		t.Fatalf("offset did not advance: %d -> %d", offset, newOffset)
	}
}
