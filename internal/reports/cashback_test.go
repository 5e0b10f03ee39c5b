package reports

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"finlens/internal/core"
)

var allColumns = []string{
	core.ColOperationDate, core.ColCategory, core.ColOperationAmount, core.ColCashback,
}

func cashbackRow(day int, category, cashback string, amount int64) core.Transaction {
	return core.Transaction{
		OperationDate:   time.Date(2024, 3, day, 12, 0, 0, 0, time.UTC),
		Category:        category,
		OperationAmount: decimal.NewFromInt(amount),
		Cashback:        cashback,
	}
}

func TestCashbackByCategoryRecorded(t *testing.T) {
	table := core.Table{
		Columns: allColumns,
		Rows: []core.Transaction{
			cashbackRow(1, "Supermarkets", "12,50", -1250),
			cashbackRow(2, "Supermarkets", "7.5", -750),
			cashbackRow(3, "Fuel", "3", -300),
			cashbackRow(4, "Fuel", "not-a-number", -300),
			{OperationDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), Category: "Fuel", Cashback: "99"},
		},
	}

	got, err := CashbackByCategory(table, 2024, time.March, CashbackRecorded, decimal.Zero, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %v", got)
	}
	if !got["Supermarkets"].Equal(decimal.NewFromInt(20)) {
		t.Errorf("Supermarkets = %s, want 20 (comma value must parse)", got["Supermarkets"])
	}
	if !got["Fuel"].Equal(decimal.NewFromInt(3)) {
		t.Errorf("Fuel = %s, want 3 (bad value skipped, April row excluded)", got["Fuel"])
	}
}

func TestCashbackByCategoryFlatRate(t *testing.T) {
	table := core.Table{
		Columns: allColumns,
		Rows: []core.Transaction{
			cashbackRow(1, "Supermarkets", "", -1000),
			cashbackRow(2, "Supermarkets", "", -500),
		},
	}

	got, err := CashbackByCategory(table, 2024, time.March, CashbackFlatRate, decimal.Zero, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !got["Supermarkets"].Equal(decimal.NewFromInt(15)) {
		t.Errorf("Supermarkets = %s, want 15 (1%% of 1500)", got["Supermarkets"])
	}
}

func TestCashbackByCategoryNoMatches(t *testing.T) {
	table := core.Table{
		Columns: allColumns,
		Rows:    []core.Transaction{cashbackRow(1, "Fuel", "3", -300)},
	}
	got, err := CashbackByCategory(table, 2021, time.January, CashbackRecorded, decimal.Zero, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty mapping, got %v", got)
	}
}

func TestCashbackByCategoryMissingColumn(t *testing.T) {
	table := core.Table{
		Columns: []string{core.ColOperationDate, core.ColOperationAmount},
		Rows:    []core.Transaction{cashbackRow(1, "Fuel", "3", -300)},
	}
	_, err := CashbackByCategory(table, 2024, time.March, CashbackRecorded, decimal.Zero, nil)

	var schemaErr *core.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if schemaErr.Column != core.ColCategory {
		t.Errorf("SchemaError names %q, want %q", schemaErr.Column, core.ColCategory)
	}
}

func TestCashbackByCategorySystemicDateFailure(t *testing.T) {
	table := core.Table{
		Columns: allColumns,
		Rows: []core.Transaction{
			{Category: "Fuel", Cashback: "3"},
			{Category: "Supermarkets", Cashback: "5"},
		},
	}
	_, err := CashbackByCategory(table, 2024, time.March, CashbackRecorded, decimal.Zero, nil)

	var formatErr *core.DataFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected DataFormatError, got %v", err)
	}
}
