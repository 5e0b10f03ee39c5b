// Package datasource defines the transaction-source port and the shared
// normalization that turns raw spreadsheet rows into the engine's table.
package datasource

import (
	"context"

	"finlens/internal/core"
)

// Source loads the normalized transaction table from wherever the data
// lives. Implementations surface schema and parse failures as typed
// errors, never a nil table.
type Source interface {
	Load(ctx context.Context) (core.Table, error)
}
