package datasource

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"finlens/internal/core"
)

// DateLayout selects how the source formats dates. The exports this tool
// ingests disagree between day-first and ISO, so the layout is explicit
// configuration rather than a guess.
type DateLayout string

const (
	DayFirst DateLayout = "dayfirst"
	ISO      DateLayout = "iso"
)

var dateFormats = map[DateLayout][]string{
	DayFirst: {"02.01.2006 15:04:05", "02.01.2006"},
	ISO:      {"2006-01-02 15:04:05", "2006-01-02"},
}

// headerAliases maps the column headers seen in bank exports (the
// original Cyrillic ones and their English equivalents) onto the
// normalized column names.
var headerAliases = map[string]string{
	"дата операции":  core.ColOperationDate,
	"operation date": core.ColOperationDate,
	"дата платежа":   core.ColPaymentDate,
	"payment date":   core.ColPaymentDate,
	"номер карты":    core.ColCardNumber,
	"card number":    core.ColCardNumber,
	"статус":         core.ColStatus,
	"status":         core.ColStatus,
	"сумма операции": core.ColOperationAmount,
	"operation amount": core.ColOperationAmount,
	"сумма платежа":  core.ColPaymentAmount,
	"payment amount": core.ColPaymentAmount,
	"категория":      core.ColCategory,
	"category":       core.ColCategory,
	"описание":       core.ColDescription,
	"description":    core.ColDescription,
	"кэшбэк":         core.ColCashback,
	"cashback":       core.ColCashback,
}

// requiredColumns must be present for the table to be usable at all.
var requiredColumns = []string{core.ColOperationDate, core.ColCategory, core.ColOperationAmount}

// NormalizeHeader maps a raw header cell to a normalized column name.
// Normalized names themselves pass through, so re-ingesting our own
// output works.
func NormalizeHeader(raw string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if name, ok := headerAliases[key]; ok {
		return name, true
	}
	for _, col := range []string{
		core.ColOperationDate, core.ColPaymentDate, core.ColCategory,
		core.ColOperationAmount, core.ColPaymentAmount, core.ColDescription,
		core.ColCardNumber, core.ColStatus, core.ColCashback,
	} {
		if key == col {
			return col, true
		}
	}
	return "", false
}

// BuildTable converts a header row plus data rows into the normalized
// table. Unknown columns are ignored. A missing required column fails
// with SchemaError; individually unparseable dates or amounts leave the
// zero value in place so reports can apply the per-row skip policy.
func BuildTable(headers []string, rows [][]string, layout DateLayout) (core.Table, error) {
	index := map[string]int{}
	var columns []string
	for i, h := range headers {
		name, ok := NormalizeHeader(h)
		if !ok {
			continue
		}
		if _, seen := index[name]; seen {
			continue
		}
		index[name] = i
		columns = append(columns, name)
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return core.Table{}, &core.SchemaError{Column: col}
		}
	}

	table := core.Table{Columns: columns, Rows: make([]core.Transaction, 0, len(rows))}
	for _, row := range rows {
		if emptyRow(row) {
			continue
		}
		tx := core.Transaction{
			OperationDate:   parseDate(cell(row, index, core.ColOperationDate), layout),
			PaymentDate:     parseDate(cell(row, index, core.ColPaymentDate), layout),
			Category:        strings.TrimSpace(cell(row, index, core.ColCategory)),
			OperationAmount: parseAmount(cell(row, index, core.ColOperationAmount)),
			PaymentAmount:   parseAmount(cell(row, index, core.ColPaymentAmount)),
			Description:     strings.TrimSpace(cell(row, index, core.ColDescription)),
			CardNumber:      strings.TrimSpace(cell(row, index, core.ColCardNumber)),
			Status:          strings.TrimSpace(cell(row, index, core.ColStatus)),
			Cashback:        strings.TrimSpace(cell(row, index, core.ColCashback)),
		}
		table.Rows = append(table.Rows, tx)
	}
	return table, nil
}

func cell(row []string, index map[string]int, col string) string {
	i, ok := index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func emptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseDate returns the zero time when the value does not parse; reports
// treat such rows per the skip policy instead of failing the batch.
func parseDate(raw string, layout DateLayout) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	formats := dateFormats[layout]
	if formats == nil {
		formats = dateFormats[DayFirst]
	}
	for _, f := range formats {
		if t, err := time.Parse(f, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parseAmount coerces a source amount to decimal, tolerating a decimal
// comma and digit-group spaces. Unparseable values become zero.
func parseAmount(raw string) decimal.Decimal {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	raw = strings.ReplaceAll(raw, " ", "")
	raw = strings.ReplaceAll(raw, ",", ".")
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}
