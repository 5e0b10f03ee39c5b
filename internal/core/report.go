package core

import (
	"encoding/json"
	"sort"

	"github.com/shopspring/decimal"
)

// Currency amounts must serialize as JSON numbers, not strings, so that
// assembled reports round-trip field-for-field.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DateLayout is the presentation format for dates in serialized reports,
// matching the day-first convention of the source statements.
const DateLayout = "02.01.2006"

type (
	// CategoryAmount is one category with its accumulated amount.
	CategoryAmount struct {
		Category string          `json:"category"`
		Amount   decimal.Decimal `json:"amount"`
	}

	// CategoryTotals is the result of aggregating transactions by
	// category: the top categories verbatim, everything else folded
	// into an "Other" entry, and cash/transfer rows broken out
	// separately. Total covers all categories, not just Main.
	CategoryTotals struct {
		Total            decimal.Decimal  `json:"total_amount"`
		Main             []CategoryAmount `json:"main"`
		TransfersAndCash []CategoryAmount `json:"transfers_and_cash,omitempty"`
	}

	// SpendingEntry is one matching row of a category spending report.
	SpendingEntry struct {
		Date        string          `json:"date"`
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
	}

	// SpendingReport is the trailing-window spend for one category.
	SpendingReport struct {
		Category     string          `json:"category"`
		Total        decimal.Decimal `json:"total"`
		Transactions []SpendingEntry `json:"transactions"`
	}

	// CashbackReport maps category names to accumulated cashback.
	CashbackReport map[string]decimal.Decimal

	// CardSummary is the per-card spend and cashback accrual.
	CardSummary struct {
		LastDigits string          `json:"last_digits"`
		TotalSpent decimal.Decimal `json:"total_spent"`
		Cashback   decimal.Decimal `json:"cashback"`
	}

	// TopTransaction is one entry of the top-by-payment-amount list.
	TopTransaction struct {
		Date        string          `json:"date"`
		Amount      decimal.Decimal `json:"amount"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
	}

	// CurrencyRate is one fetched exchange rate.
	CurrencyRate struct {
		Currency string  `json:"currency"`
		Rate     float64 `json:"rate"`
	}

	// StockPrice is one fetched stock quote.
	StockPrice struct {
		Symbol string          `json:"symbol"`
		Price  decimal.Decimal `json:"price"`
	}

	// HomePage is the greeting + cards + top transactions bundle.
	HomePage struct {
		Greeting        string           `json:"greeting"`
		Cards           []CardSummary    `json:"cards"`
		TopTransactions []TopTransaction `json:"top_transactions"`
		CurrencyRates   []CurrencyRate   `json:"currency_rates"`
		StockPrices     []StockPrice     `json:"stock_prices"`
	}

	// PeriodSummary is the expenses/income + rates bundle for a period.
	PeriodSummary struct {
		Expenses      CategoryTotals `json:"expenses"`
		Income        CategoryTotals `json:"income"`
		CurrencyRates []CurrencyRate `json:"currency_rates"`
		StockPrices   []StockPrice   `json:"stock_prices"`
	}
)

// MarshalJSON rounds the amount to whole units. Accumulation keeps full
// precision; rounding happens only here so the top-7/overflow split never
// compounds rounding error.
func (c CategoryAmount) MarshalJSON() ([]byte, error) {
	type categoryAmount CategoryAmount
	return json.Marshal(categoryAmount{Category: c.Category, Amount: c.Amount.Round(0)})
}

func (t CategoryTotals) MarshalJSON() ([]byte, error) {
	type categoryTotals CategoryTotals
	rounded := categoryTotals(t)
	rounded.Total = t.Total.Round(0)
	return json.Marshal(rounded)
}

// MarshalJSON emits categories in sorted order so serialized reports are
// deterministic.
func (r CashbackReport) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf := []byte{'{'}
	for i, k := range keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf = append(buf, name...)
		buf = append(buf, ':')
		buf = append(buf, r[k].String()...)
	}
	buf = append(buf, '}')
	return buf, nil
}
