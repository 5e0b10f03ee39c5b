// Package memory provides an in-memory transaction source for tests and
// the default dev backend.
package memory

import (
	"context"
	"encoding/csv"
	"os"
	"sync"

	"finlens/internal/core"
	"finlens/internal/datasource"
)

type Store struct {
	mu    sync.Mutex
	table core.Table
}

// New builds a store over already-normalized rows. Columns defaults to
// the full column set so schema checks pass for hand-built fixtures.
func New(rows []core.Transaction, columns ...string) *Store {
	if len(columns) == 0 {
		columns = []string{
			core.ColOperationDate, core.ColPaymentDate, core.ColCategory,
			core.ColOperationAmount, core.ColPaymentAmount, core.ColDescription,
			core.ColCardNumber, core.ColStatus, core.ColCashback,
		}
	}
	return &Store{table: core.Table{Columns: columns, Rows: rows}}
}

// NewFromFile seeds the store from a CSV file whose first line holds the
// column headers. A missing file yields an empty store rather than an
// error, matching the dev-backend convention.
func NewFromFile(path string, layout datasource.DateLayout) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return New(nil), nil
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return New(nil), nil
	}
	table, err := datasource.BuildTable(records[0], records[1:], layout)
	if err != nil {
		return nil, err
	}
	return &Store{table: table}, nil
}

func (s *Store) Load(_ context.Context) (core.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := append([]core.Transaction(nil), s.table.Rows...)
	cols := append([]string(nil), s.table.Columns...)
	return core.Table{Columns: cols, Rows: rows}, nil
}

// Add appends rows, mostly useful from tests.
func (s *Store) Add(rows ...core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table.Rows = append(s.table.Rows, rows...)
}
