package reports

import (
	"strings"

	"github.com/shopspring/decimal"

	"finlens/internal/core"
)

var hundred = decimal.NewFromInt(100)

// SummarizeCards groups successful, positive-amount transactions by card
// number (whitespace stripped) and reports per-card spend and cashback.
//
// Cashback accrues per transaction as floor(amount/100) and the floors
// are summed; flooring the card total instead would understate the
// accrual, so the per-transaction order matters. Cards appear in
// first-occurrence order and only the last four digits are exposed.
func SummarizeCards(rows []core.Transaction) []core.CardSummary {
	type acc struct {
		last4    string
		spent    decimal.Decimal
		cashback decimal.Decimal
	}
	byCard := map[string]*acc{}
	var order []string

	for _, tx := range rows {
		if !tx.Successful() || tx.OperationAmount.Sign() <= 0 {
			continue
		}
		number := strings.Join(strings.Fields(tx.CardNumber), "")
		a, ok := byCard[number]
		if !ok {
			a = &acc{last4: tx.Last4()}
			byCard[number] = a
			order = append(order, number)
		}
		a.spent = a.spent.Add(tx.OperationAmount)
		a.cashback = a.cashback.Add(tx.OperationAmount.Div(hundred).Floor())
	}

	out := make([]core.CardSummary, 0, len(order))
	for _, number := range order {
		a := byCard[number]
		out = append(out, core.CardSummary{
			LastDigits: a.last4,
			TotalSpent: a.spent,
			Cashback:   a.cashback,
		})
	}
	return out
}
