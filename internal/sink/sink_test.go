package sink

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFileSinkPersistNamed(t *testing.T) {
	dir := t.TempDir()
	s := NewFileSink(dir)

	path, err := s.Persist("cashback_2024_03", map[string]int{"Fuel": 3})
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "cashback_2024_03.json" {
		t.Errorf("path = %q, extension must be appended", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var back map[string]int
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatal(err)
	}
	if back["Fuel"] != 3 {
		t.Errorf("round trip = %v", back)
	}
	if !strings.Contains(string(raw), "\n") {
		t.Error("output must be indented")
	}
}

func TestFileSinkGeneratesTimestampedName(t *testing.T) {
	s := NewFileSink(t.TempDir())
	s.now = func() time.Time { return time.Date(2024, 5, 15, 19, 35, 32, 0, time.UTC) }

	path, err := s.Persist("", map[string]string{"k": "v"})
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "report_20240515_193532.json" {
		t.Errorf("generated name = %q", filepath.Base(path))
	}
}

func TestFileSinkReportsWriteFailures(t *testing.T) {
	// A file where the directory should be makes MkdirAll fail.
	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocked, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewFileSink(filepath.Join(blocked, "reports"))
	if _, err := s.Persist("r", map[string]string{}); err == nil {
		t.Fatal("write failure must surface to the caller")
	}
}
