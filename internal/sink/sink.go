// Package sink persists assembled reports. Persistence is an explicit
// call composed by the caller after computing a report, never an implicit
// wrapper around the reporting functions.
package sink

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Sink stores a serialized report under a name. An empty name asks the
// sink to generate one. Write failures are returned, never swallowed.
type Sink interface {
	Persist(name string, report any) (string, error)
}

// FileSink writes indented JSON files into a directory, generating
// report_<timestamp>.json names when the caller does not supply one.
type FileSink struct {
	dir string
	now func() time.Time
}

func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir, now: time.Now}
}

// Persist writes the report and returns the path it ended up at.
func (s *FileSink) Persist(name string, report any) (string, error) {
	if name == "" {
		name = fmt.Sprintf("report_%s.json", s.now().Format("20060102_150405"))
	}
	if filepath.Ext(name) == "" {
		name += ".json"
	}

	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, payload, 0644); err != nil {
		return "", fmt.Errorf("write report %s: %w", path, err)
	}
	return path, nil
}
