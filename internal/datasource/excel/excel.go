// Package excel loads transactions from an .xlsx workbook, the format
// the bank hands out.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"finlens/internal/core"
	"finlens/internal/datasource"
)

type Source struct {
	path   string
	sheet  string // empty means the workbook's first sheet
	layout datasource.DateLayout
}

func New(path, sheet string, layout datasource.DateLayout) *Source {
	return &Source{path: path, sheet: sheet, layout: layout}
}

// Load opens the workbook and normalizes its rows. Open/read failures
// and a missing required column are errors; individual bad cells follow
// the per-row skip policy inside the table.
func (s *Source) Load(_ context.Context) (core.Table, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return core.Table{}, fmt.Errorf("open workbook %s: %w", s.path, err)
	}
	defer f.Close()

	sheet := s.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return core.Table{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return core.Table{}, fmt.Errorf("sheet %q: %w", sheet, core.ErrEmptyTable)
	}

	table, err := datasource.BuildTable(rows[0], rows[1:], s.layout)
	if err != nil {
		return core.Table{}, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	return table, nil
}
