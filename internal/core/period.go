package core

import "strings"

// Period selects the trailing window for event summaries.
type Period string

const (
	PeriodWeek  Period = "W"
	PeriodMonth Period = "M"
	PeriodYear  Period = "Y"
	PeriodAll   Period = "ALL"
)

// ParsePeriod maps a period code to a Period. Codes are case-insensitive.
// Unknown codes return false; callers decide how to fail.
func ParsePeriod(code string) (Period, bool) {
	switch Period(strings.ToUpper(strings.TrimSpace(code))) {
	case PeriodWeek:
		return PeriodWeek, true
	case PeriodMonth:
		return PeriodMonth, true
	case PeriodYear:
		return PeriodYear, true
	case PeriodAll:
		return PeriodAll, true
	}
	return "", false
}

// CategoryType selects which side of the ledger a category aggregation
// reads: spend rows (negative amounts) or income rows (positive).
type CategoryType string

const (
	Expense CategoryType = "expense"
	Income  CategoryType = "income"
)
