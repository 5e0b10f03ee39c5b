// Package reports implements the transaction aggregation and reporting
// engine: pure functions over a normalized transaction table that produce
// category totals, spending reports, cashback analysis, transfer
// detection, top-transaction lists and card summaries.
package reports

import (
	"time"

	"finlens/internal/core"
)

// WindowStart resolves the start of the reporting window for a reference
// instant and a period code.
//
//	W   -> Monday 00:00 of the reference's week
//	M   -> first day of the reference's month
//	Y   -> January 1 of the reference's year
//	ALL -> the zero time (unbounded)
//
// An unrecognized period fails with InvalidArgumentError rather than
// silently defaulting to a month window.
func WindowStart(ref time.Time, period core.Period) (time.Time, error) {
	switch period {
	case core.PeriodWeek:
		// Monday = 0.
		offset := (int(ref.Weekday()) + 6) % 7
		day := ref.AddDate(0, 0, -offset)
		return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, ref.Location()), nil
	case core.PeriodMonth:
		return time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location()), nil
	case core.PeriodYear:
		return time.Date(ref.Year(), 1, 1, 0, 0, 0, 0, ref.Location()), nil
	case core.PeriodAll:
		return time.Time{}, nil
	}
	return time.Time{}, &core.InvalidArgumentError{
		Name:   "period",
		Value:  string(period),
		Reason: "unknown period code",
	}
}
