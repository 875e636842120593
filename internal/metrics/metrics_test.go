package metrics

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestWriter_Write(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "metrics.ndjson")

	w, err := New(logPath)
	if err != nil {
		t.Fatalf("failed to create writer: %v", err)
	}
	defer func() { _ = w.Close() }()

	rec := Record{Stage: "rolematch", RecordsIn: 10, MatchesOut: 4}
	if err := w.Write(rec); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	_ = w.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	var parsed Record
	if err := json.Unmarshal(data[:len(data)-1], &parsed); err != nil {
		t.Fatalf("failed to parse log line as JSON: %v", err)
	}

	if parsed.Stage != "rolematch" {
		t.Errorf("expected stage 'rolematch', got %q", parsed.Stage)
	}
	if parsed.ID == "" {
		t.Error("expected a non-empty ULID id")
	}
	if parsed.Timestamp == "" {
		t.Error("expected a non-empty timestamp")
	}
}

func TestWriter_Rotation(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "metrics.ndjson")

	big := make([]byte, defaultMaxLogBytes)
	if err := os.WriteFile(logPath, big, 0600); err != nil {
		t.Fatalf("failed to seed large log file: %v", err)
	}

	w, err := New(logPath)
	if err != nil {
		t.Fatalf("failed to create writer: %v", err)
	}
	defer func() { _ = w.Close() }()

	if err := w.Write(Record{Stage: "pipeline"}); err != nil {
		t.Fatalf("write after rotation failed: %v", err)
	}

	rotated := logPath + ".1.gz"
	f, err := os.Open(rotated)
	if err != nil {
		t.Fatalf("expected rotated gzip backup %s: %v", rotated, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("rotated backup is not valid gzip: %v", err)
	}
	defer gz.Close()

	scanner := bufio.NewScanner(gz)
	lines := 0
	for scanner.Scan() {
		lines++
	}
	if lines != 0 {
		t.Errorf("expected the pre-rotation seed (no NDJSON lines) to round-trip through gzip, got %d lines", lines)
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("fresh log file missing: %v", err)
	}
	if info.Size() >= defaultMaxLogBytes {
		t.Errorf("fresh log file is still %d bytes; expected < %d", info.Size(), defaultMaxLogBytes)
	}
}

func TestWriter_FilePermissions(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "metrics.ndjson")

	w, err := New(logPath)
	if err != nil {
		t.Fatalf("failed to create writer: %v", err)
	}
	_ = w.Close()

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("failed to stat log file: %v", err)
	}

	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected file permissions 0600, got %04o", perm)
	}
}
