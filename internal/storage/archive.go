// Package storage keeps generated reports in a SQLite archive so the
// export worker can pick them up and the history stays queryable.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ReportRecord is one archived report.
type ReportRecord struct {
	ID         int64
	Kind       string
	Params     string
	Payload    []byte
	CreatedAt  time.Time
	ExportedAt *time.Time
}

// ErrReportNotFound is returned when an archive ID does not exist.
var ErrReportNotFound = errors.New("report not found in archive")

type Archive struct {
	db *sql.DB
}

// NewArchive opens (creating if needed) the archive database and runs
// migrations.
func NewArchive(dbPath string) (*Archive, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Archive{db: db}, nil
}

func (a *Archive) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// SaveReport stores a serialized report and returns its archive ID.
func (a *Archive) SaveReport(ctx context.Context, kind, params string, payload []byte) (int64, error) {
	res, err := a.db.ExecContext(ctx,
		`INSERT INTO reports (kind, params, payload, created_at) VALUES (?, ?, ?, ?)`,
		kind, params, string(payload), time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("insert report: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("report id: %w", err)
	}
	return id, nil
}

// GetReport fetches one archived report by ID.
func (a *Archive) GetReport(ctx context.Context, id int64) (ReportRecord, error) {
	row := a.db.QueryRowContext(ctx,
		`SELECT id, kind, params, payload, created_at, exported_at FROM reports WHERE id = ?`, id)

	var r ReportRecord
	var payload string
	if err := row.Scan(&r.ID, &r.Kind, &r.Params, &payload, &r.CreatedAt, &r.ExportedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ReportRecord{}, ErrReportNotFound
		}
		return ReportRecord{}, fmt.Errorf("scan report: %w", err)
	}
	r.Payload = []byte(payload)
	return r, nil
}

// ListReports returns the most recent reports, optionally filtered by
// kind. limit <= 0 means 50.
func (a *Archive) ListReports(ctx context.Context, kind string, limit int) ([]ReportRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, kind, params, payload, created_at, exported_at FROM reports`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []ReportRecord
	for rows.Next() {
		var r ReportRecord
		var payload string
		if err := rows.Scan(&r.ID, &r.Kind, &r.Params, &payload, &r.CreatedAt, &r.ExportedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		r.Payload = []byte(payload)
		out = append(out, r)
	}
	return out, rows.Err()
}

// MarkExported stamps a report as written out by the export worker.
func (a *Archive) MarkExported(ctx context.Context, id int64) error {
	res, err := a.db.ExecContext(ctx,
		`UPDATE reports SET exported_at = ? WHERE id = ?`, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("mark exported: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark exported: %w", err)
	}
	if n == 0 {
		return ErrReportNotFound
	}
	return nil
}
