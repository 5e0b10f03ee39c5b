package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Column names of the normalized transaction table. Sources translate
// whatever headers they find into these before handing the table to the
// reporting engine.
const (
	ColOperationDate   = "operation_date"
	ColPaymentDate     = "payment_date"
	ColCategory        = "category"
	ColOperationAmount = "operation_amount"
	ColPaymentAmount   = "payment_amount"
	ColDescription     = "description"
	ColCardNumber      = "card_number"
	ColStatus          = "status"
	ColCashback        = "cashback"
)

type (
	// Transaction is one normalized row of the transaction table.
	// A zero OperationDate/PaymentDate means the source value did not
	// parse; reports skip such rows instead of failing the whole call.
	Transaction struct {
		OperationDate   time.Time
		PaymentDate     time.Time
		Category        string
		OperationAmount decimal.Decimal
		PaymentAmount   decimal.Decimal
		Description     string
		CardNumber      string
		Status          string
		Cashback        string // raw optional value, may use a decimal comma
	}

	// Table is the normalized in-memory transaction table. Columns lists
	// which source columns were actually present, so the engine can tell
	// "column missing" apart from "value empty".
	Table struct {
		Columns []string
		Rows    []Transaction
	}
)

// HasColumn reports whether the source provided the named column.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Successful reports whether the transaction settled. The source data mixes
// the Latin "OK" and the Cyrillic "ОК" in varying case; anything else
// (FAILED, cancelled, empty) is excluded from reports.
func (tx Transaction) Successful() bool {
	s := strings.ToUpper(strings.TrimSpace(tx.Status))
	return s == "OK" || s == "ОК"
}

// Last4 returns the last four characters of the card number after
// stripping whitespace, or the whole normalized number if shorter.
func (tx Transaction) Last4() string {
	n := strings.Join(strings.Fields(tx.CardNumber), "")
	if len(n) <= 4 {
		return n
	}
	return n[len(n)-4:]
}
