package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"finlens/internal/core"
)

// Categories broken out of the main aggregation into the
// transfers-and-cash side list.
const (
	categoryCash      = "Cash"
	categoryTransfers = "Transfers"
)

// topCategories is how many categories appear verbatim before the rest
// fold into the "Other" bucket.
const topCategories = 7

// AggregateByCategory groups transactions by category and sums their
// amounts. Expense aggregation consumes rows with negative operation
// amounts and reports absolute values; income consumes positive rows.
//
// The top 7 categories by amount are kept verbatim; remaining categories
// merge into a synthetic "Other" entry. When 7 or fewer categories exist
// no "Other" entry appears at all. "Cash" and "Transfers" rows are
// extracted into TransfersAndCash instead of the main list. Total covers
// every category, unaffected by the top-7 cut.
func AggregateByCategory(rows []core.Transaction, typ core.CategoryType) core.CategoryTotals {
	sums := map[string]decimal.Decimal{}
	sideSums := map[string]decimal.Decimal{}
	var order, sideOrder []string

	for _, tx := range rows {
		amount := tx.OperationAmount
		switch typ {
		case core.Income:
			if amount.Sign() <= 0 {
				continue
			}
		default:
			if amount.Sign() >= 0 {
				continue
			}
			amount = amount.Abs()
		}

		if tx.Category == categoryCash || tx.Category == categoryTransfers {
			if _, ok := sideSums[tx.Category]; !ok {
				sideOrder = append(sideOrder, tx.Category)
			}
			sideSums[tx.Category] = sideSums[tx.Category].Add(amount)
			continue
		}
		if _, ok := sums[tx.Category]; !ok {
			order = append(order, tx.Category)
		}
		sums[tx.Category] = sums[tx.Category].Add(amount)
	}

	main := rankedAmounts(order, sums)
	side := rankedAmounts(sideOrder, sideSums)

	total := decimal.Zero
	for _, c := range main {
		total = total.Add(c.Amount)
	}
	for _, c := range side {
		total = total.Add(c.Amount)
	}

	if len(main) > topCategories {
		other := decimal.Zero
		for _, c := range main[topCategories:] {
			other = other.Add(c.Amount)
		}
		main = append(main[:topCategories:topCategories], core.CategoryAmount{
			Category: "Other",
			Amount:   other,
		})
	}

	return core.CategoryTotals{Total: total, Main: main, TransfersAndCash: side}
}

// rankedAmounts turns the accumulated sums into a list sorted by amount
// descending, ties kept in first-appearance order.
func rankedAmounts(order []string, sums map[string]decimal.Decimal) []core.CategoryAmount {
	out := make([]core.CategoryAmount, 0, len(order))
	for _, cat := range order {
		out = append(out, core.CategoryAmount{Category: cat, Amount: sums[cat]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	return out
}
