package reports

import (
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"finlens/internal/core"
)

// CashbackMode selects how cashback is computed. The source data is
// inconsistent about it, so both are explicit options rather than a guess.
type CashbackMode string

const (
	// CashbackRecorded reads each transaction's own cashback field.
	CashbackRecorded CashbackMode = "recorded"
	// CashbackFlatRate applies a flat rate to the absolute amount.
	CashbackFlatRate CashbackMode = "flat"
)

// DefaultCashbackRate is the flat-rate fallback (1%).
var DefaultCashbackRate = decimal.NewFromFloat(0.01)

// CashbackByCategory accumulates cashback per category over the given
// year and month.
//
// In recorded mode the transaction's cashback field is parsed after
// normalizing a decimal comma; rows with a missing or unparseable value
// are skipped with a warning. In flat-rate mode every matching row
// contributes abs(operation_amount) * rate regardless of the recorded
// field; a zero rate selects the 1% default.
//
// A missing required column is a SchemaError. A present date column whose
// values all failed to parse is a DataFormatError. Zero rows matching the
// year/month filter yields an empty map.
func CashbackByCategory(table core.Table, year int, month time.Month, mode CashbackMode, rate decimal.Decimal, log *slog.Logger) (core.CashbackReport, error) {
	if log == nil {
		log = slog.Default()
	}
	for _, col := range []string{core.ColOperationDate, core.ColCategory, core.ColOperationAmount} {
		if !table.HasColumn(col) {
			return nil, &core.SchemaError{Column: col}
		}
	}
	if len(table.Rows) > 0 && allDatesInvalid(table.Rows) {
		return nil, &core.DataFormatError{
			Column: core.ColOperationDate,
			Reason: "no value in the column parsed as a date",
		}
	}
	if rate.IsZero() {
		rate = DefaultCashbackRate
	}

	out := core.CashbackReport{}
	for _, tx := range table.Rows {
		if tx.OperationDate.IsZero() {
			continue
		}
		if tx.OperationDate.Year() != year || tx.OperationDate.Month() != month {
			continue
		}

		var amount decimal.Decimal
		switch mode {
		case CashbackFlatRate:
			amount = tx.OperationAmount.Abs().Mul(rate)
		default:
			if strings.TrimSpace(tx.Cashback) == "" {
				continue
			}
			parsed, err := parseRecordedCashback(tx.Cashback)
			if err != nil {
				log.Warn("skipping transaction with unusable cashback value",
					"category", tx.Category,
					"cashback", tx.Cashback,
					"error", err)
				continue
			}
			amount = parsed
		}
		out[tx.Category] = out[tx.Category].Add(amount)
	}
	return out, nil
}

func parseRecordedCashback(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	return decimal.NewFromString(raw)
}

func allDatesInvalid(rows []core.Transaction) bool {
	for _, tx := range rows {
		if !tx.OperationDate.IsZero() {
			return false
		}
	}
	return true
}
