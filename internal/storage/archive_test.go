package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := NewArchive(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestArchiveSaveAndGet(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	id, err := a.SaveReport(ctx, "home_page", `{"ref":"2024-05-15"}`, []byte(`{"greeting":"Good morning"}`))
	if err != nil {
		t.Fatal(err)
	}

	got, err := a.GetReport(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != "home_page" {
		t.Errorf("kind = %q", got.Kind)
	}
	if string(got.Payload) != `{"greeting":"Good morning"}` {
		t.Errorf("payload = %s", got.Payload)
	}
	if got.ExportedAt != nil {
		t.Error("new report must not be marked exported")
	}
}

func TestArchiveGetMissing(t *testing.T) {
	a := newTestArchive(t)
	_, err := a.GetReport(context.Background(), 42)
	if !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}

func TestArchiveListFiltersByKind(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	for _, kind := range []string{"home_page", "spending", "home_page"} {
		if _, err := a.SaveReport(ctx, kind, "", []byte(`{}`)); err != nil {
			t.Fatal(err)
		}
	}

	got, err := a.ListReports(ctx, "home_page", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 home_page reports, got %d", len(got))
	}

	all, err := a.ListReports(ctx, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 reports, got %d", len(all))
	}
}

func TestArchiveMarkExported(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	id, err := a.SaveReport(ctx, "spending", "", []byte(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := a.MarkExported(ctx, id); err != nil {
		t.Fatal(err)
	}

	got, err := a.GetReport(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if got.ExportedAt == nil {
		t.Error("report must be marked exported")
	}

	if err := a.MarkExported(ctx, 9999); !errors.Is(err, ErrReportNotFound) {
		t.Errorf("expected ErrReportNotFound for unknown id, got %v", err)
	}
}
