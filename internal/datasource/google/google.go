// Package google loads transactions from a Google Sheets spreadsheet.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"finlens/internal/core"
	"finlens/internal/datasource"
)

type Source struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	layout        datasource.DateLayout
}

// Config carries what the client needs. Credentials come either inline
// (JSON) or from a file; inline wins when both are set.
type Config struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsJSON string
	CredentialsFile string
	Layout          datasource.DateLayout
}

// New creates a read-only Sheets client for the configured spreadsheet.
func New(ctx context.Context, cfg Config) (*Source, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	if cfg.SheetName == "" {
		return nil, errors.New("missing sheet name")
	}

	credentials := []byte(cfg.CredentialsJSON)
	if len(credentials) == 0 && cfg.CredentialsFile != "" {
		raw, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		credentials = raw
	}
	if len(credentials) == 0 {
		return nil, errors.New("missing Google credentials")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentials),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Source{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
		layout:        cfg.Layout,
	}, nil
}

// Load fetches the whole sheet and normalizes it.
func (s *Source) Load(ctx context.Context) (core.Table, error) {
	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, s.sheetName).
		Context(ctx).
		Do()
	if err != nil {
		return core.Table{}, fmt.Errorf("read sheet %q: %w", s.sheetName, err)
	}
	if len(resp.Values) == 0 {
		return core.Table{}, fmt.Errorf("sheet %q: %w", s.sheetName, core.ErrEmptyTable)
	}

	headers := toStrings(resp.Values[0])
	rows := make([][]string, 0, len(resp.Values)-1)
	for _, v := range resp.Values[1:] {
		rows = append(rows, toStrings(v))
	}

	table, err := datasource.BuildTable(headers, rows, s.layout)
	if err != nil {
		return core.Table{}, fmt.Errorf("sheet %q: %w", s.sheetName, err)
	}
	return table, nil
}

func toStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = fmt.Sprint(v)
	}
	return out
}
