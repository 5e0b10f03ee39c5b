package reports

import (
	"sort"

	"finlens/internal/core"
)

// DefaultTopN is how many transactions the home page shows.
const DefaultTopN = 5

// TopTransactions ranks successful transactions by payment amount
// descending and returns at most n of them. Ties keep their original
// input order so results are deterministic. n <= 0 selects the default
// of 5. No successful transactions yields an empty list.
func TopTransactions(rows []core.Transaction, n int) []core.TopTransaction {
	if n <= 0 {
		n = DefaultTopN
	}

	ok := make([]core.Transaction, 0, len(rows))
	for _, tx := range rows {
		if tx.Successful() {
			ok = append(ok, tx)
		}
	}
	sort.SliceStable(ok, func(i, j int) bool {
		return ok[i].PaymentAmount.GreaterThan(ok[j].PaymentAmount)
	})
	if len(ok) > n {
		ok = ok[:n]
	}

	out := make([]core.TopTransaction, 0, len(ok))
	for _, tx := range ok {
		date := ""
		if !tx.OperationDate.IsZero() {
			date = tx.OperationDate.Format(core.DateLayout)
		}
		out = append(out, core.TopTransaction{
			Date:        date,
			Amount:      tx.PaymentAmount,
			Category:    tx.Category,
			Description: tx.Description,
		})
	}
	return out
}
