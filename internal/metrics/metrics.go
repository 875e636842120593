// Package metrics appends one NDJSON record per pipeline-stage observation
// to a rotating log file, for the batch driver's observability needs.
// Rotated backups are gzip-compressed, and every record carries a monotonic
// ULID id rather than relying on timestamp alone for ordering, since two
// records from different workers can share a wall-clock millisecond.
package metrics

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/oklog/ulid/v2"
)

// defaultMaxLogBytes is the file size at which the log rotates (10 MB).
const defaultMaxLogBytes = 10 * 1024 * 1024

// Record is one NDJSON line: a pipeline-stage observation.
type Record struct {
	ID          string  `json:"id"`
	Timestamp   string  `json:"timestamp"`
	Stage       string  `json:"stage"`
	RecordsIn   int     `json:"records_in"`
	MatchesOut  int     `json:"matches_out"`
	AnchorsSeen int     `json:"anchors_seen,omitempty"`
	Windowed    int     `json:"windowed,omitempty"`
	DurationMS  float64 `json:"duration_ms,omitempty"`
	Error       string  `json:"error,omitempty"`
}

// Writer is an append-only NDJSON metrics sink with size-based rotation.
// Safe for concurrent use across worker goroutines.
type Writer struct {
	path string
	file *os.File
	mu   sync.Mutex
	ent  *ulid.MonotonicEntropy
}

// New opens (creating if needed) the NDJSON file at path for appending.
func New(path string) (*Writer, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}
	return &Writer{path: path, file: file, ent: ulid.Monotonic(rand.Reader, 0)}, nil
}

// Write appends rec to the log, stamping a fresh ULID id and the current
// timestamp, rotating the file first if it has crossed defaultMaxLogBytes.
func (w *Writer) Write(rec Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.rotateIfNeeded(); err != nil {
		fmt.Fprintf(os.Stderr, "taxaclassify: warning: metrics log rotation failed: %v\n", err)
	}

	now := time.Now()
	id, err := ulid.New(ulid.Timestamp(now), w.ent)
	if err != nil {
		return fmt.Errorf("generating record id: %w", err)
	}
	rec.ID = id.String()
	if rec.Timestamp == "" {
		rec.Timestamp = now.UTC().Format(time.RFC3339Nano)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.file.Write(data)
	return err
}

// rotateIfNeeded gzip-compresses the current log into a ".1.gz" backup
// (replacing any prior backup) and starts a fresh file, once size reaches
// defaultMaxLogBytes. Must be called with w.mu held.
func (w *Writer) rotateIfNeeded() error {
	info, err := w.file.Stat()
	if err != nil {
		return fmt.Errorf("stat metrics log: %w", err)
	}
	if info.Size() < defaultMaxLogBytes {
		return nil
	}

	if err := w.file.Close(); err != nil {
		return fmt.Errorf("close metrics log before rotation: %w", err)
	}

	if err := gzipRotate(w.path); err != nil {
		return fmt.Errorf("rotate metrics log: %w", err)
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open fresh metrics log after rotation: %w", err)
	}
	w.file = f
	return nil
}

func gzipRotate(path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	rotated := path + ".1.gz"
	_ = os.Remove(rotated)

	dst, err := os.OpenFile(rotated, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer dst.Close()

	gw := gzip.NewWriter(dst)
	if _, err := io.Copy(gw, src); err != nil {
		gw.Close()
		return err
	}
	if err := gw.Close(); err != nil {
		return err
	}

	return os.Remove(path)
}

// Close closes the underlying file handle.
func (w *Writer) Close() error {
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}
