package reports

import "finlens/internal/core"

// AssembleHomePage shapes the home-page report. Pure composition: empty
// inputs produce a structurally complete report with empty values, never
// missing fields.
func AssembleHomePage(greeting string, cards []core.CardSummary, top []core.TopTransaction, rates []core.CurrencyRate, prices []core.StockPrice) core.HomePage {
	return core.HomePage{
		Greeting:        greeting,
		Cards:           nonNil(cards),
		TopTransactions: nonNil(top),
		CurrencyRates:   nonNil(rates),
		StockPrices:     nonNil(prices),
	}
}

// AssemblePeriodSummary shapes the expenses/income report for a period.
func AssemblePeriodSummary(expenses, income core.CategoryTotals, rates []core.CurrencyRate, prices []core.StockPrice) core.PeriodSummary {
	expenses.Main = nonNil(expenses.Main)
	income.Main = nonNil(income.Main)
	return core.PeriodSummary{
		Expenses:      expenses,
		Income:        income,
		CurrencyRates: nonNil(rates),
		StockPrices:   nonNil(prices),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
