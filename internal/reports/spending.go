package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"finlens/internal/core"
)

// DefaultWindowDays is the trailing window for category spending reports.
const DefaultWindowDays = 90

// SpendingByCategory sums operation amounts for one category over the
// trailing window [asOf-windowDays, asOf], both ends inclusive. A zero
// asOf means "now"; windowDays <= 0 selects the 90-day default.
//
// Rows whose operation date never parsed are skipped silently. A category
// absent from the data yields a zero total and an empty transaction list,
// never an error.
func SpendingByCategory(rows []core.Transaction, category string, asOf time.Time, windowDays int) core.SpendingReport {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	start := asOf.AddDate(0, 0, -windowDays)

	report := core.SpendingReport{
		Category:     category,
		Total:        decimal.Zero,
		Transactions: []core.SpendingEntry{},
	}
	for _, tx := range rows {
		if tx.Category != category || tx.OperationDate.IsZero() {
			continue
		}
		if tx.OperationDate.Before(start) || tx.OperationDate.After(asOf) {
			continue
		}
		report.Total = report.Total.Add(tx.OperationAmount)
		report.Transactions = append(report.Transactions, core.SpendingEntry{
			Date:        tx.OperationDate.Format(core.DateLayout),
			Amount:      tx.OperationAmount,
			Description: tx.Description,
		})
	}
	return report
}
