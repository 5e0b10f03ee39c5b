package reports

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"finlens/internal/core"
)

func TestSpendingByCategory(t *testing.T) {
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := []core.Transaction{
		{Category: "Supermarkets", OperationDate: asOf.AddDate(0, 0, -10), OperationAmount: decimal.NewFromInt(-150), Description: "groceries"},
		{Category: "Supermarkets", OperationDate: asOf.AddDate(0, 0, -89), OperationAmount: decimal.NewFromInt(-50), Description: "more groceries"},
		{Category: "Supermarkets", OperationDate: asOf.AddDate(0, 0, -120), OperationAmount: decimal.NewFromInt(-999), Description: "outside window"},
		{Category: "Fuel", OperationDate: asOf.AddDate(0, 0, -5), OperationAmount: decimal.NewFromInt(-80)},
		{Category: "Supermarkets", OperationAmount: decimal.NewFromInt(-42), Description: "unparseable date"},
	}

	got := SpendingByCategory(rows, "Supermarkets", asOf, 0)

	if got.Category != "Supermarkets" {
		t.Errorf("category = %q", got.Category)
	}
	if !got.Total.Equal(decimal.NewFromInt(-200)) {
		t.Errorf("total = %s, want -200", got.Total)
	}
	if len(got.Transactions) != 2 {
		t.Fatalf("expected 2 matching rows, got %d", len(got.Transactions))
	}
	if got.Transactions[0].Description != "groceries" {
		t.Errorf("rows must keep input order: %+v", got.Transactions)
	}
}

func TestSpendingByCategoryWindowIsInclusive(t *testing.T) {
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := []core.Transaction{
		{Category: "Fuel", OperationDate: asOf, OperationAmount: decimal.NewFromInt(-10)},
		{Category: "Fuel", OperationDate: asOf.AddDate(0, 0, -90), OperationAmount: decimal.NewFromInt(-20)},
	}
	got := SpendingByCategory(rows, "Fuel", asOf, 90)
	if len(got.Transactions) != 2 {
		t.Fatalf("both boundary rows must match, got %d", len(got.Transactions))
	}
}

func TestSpendingByCategoryAbsentCategory(t *testing.T) {
	rows := []core.Transaction{
		{Category: "Fuel", OperationDate: time.Now(), OperationAmount: decimal.NewFromInt(-10)},
	}
	got := SpendingByCategory(rows, "Opera", time.Now(), 90)

	if !got.Total.IsZero() {
		t.Errorf("total = %s, want 0", got.Total)
	}
	if got.Transactions == nil || len(got.Transactions) != 0 {
		t.Errorf("expected empty non-nil transaction list, got %#v", got.Transactions)
	}
}
