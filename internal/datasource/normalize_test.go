package datasource

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"finlens/internal/core"
)

var cyrillicHeaders = []string{
	"Дата операции", "Дата платежа", "Номер карты", "Статус",
	"Сумма операции", "Сумма платежа", "Категория", "Описание", "Кэшбэк",
}

func TestBuildTableCyrillicHeaders(t *testing.T) {
	rows := [][]string{
		{"31.12.2021 16:44:00", "31.12.2021", "*7197", "OK", "-160,89", "-160,89", "Supermarkets", "groceries", "3,2"},
	}

	table, err := BuildTable(cyrillicHeaders, rows, DayFirst)
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(table.Rows))
	}
	tx := table.Rows[0]

	want := time.Date(2021, 12, 31, 16, 44, 0, 0, time.UTC)
	if !tx.OperationDate.Equal(want) {
		t.Errorf("operation date = %v, want %v", tx.OperationDate, want)
	}
	if !tx.OperationAmount.Equal(decimal.RequireFromString("-160.89")) {
		t.Errorf("amount = %s (decimal comma must normalize)", tx.OperationAmount)
	}
	if tx.Cashback != "3,2" {
		t.Errorf("cashback must stay raw for the analyzer, got %q", tx.Cashback)
	}
	if !table.HasColumn(core.ColCashback) {
		t.Error("cashback column presence must be recorded")
	}
}

func TestBuildTableISOLayout(t *testing.T) {
	headers := []string{"operation_date", "category", "operation_amount"}
	rows := [][]string{{"2024-03-01 12:00:00", "Fuel", "-300"}}

	table, err := BuildTable(headers, rows, ISO)
	if err != nil {
		t.Fatal(err)
	}
	if table.Rows[0].OperationDate.IsZero() {
		t.Error("ISO date must parse under iso layout")
	}

	// The same value under dayfirst layout must not parse.
	table, err = BuildTable(headers, rows, DayFirst)
	if err != nil {
		t.Fatal(err)
	}
	if !table.Rows[0].OperationDate.IsZero() {
		t.Error("ISO date must not parse under dayfirst layout")
	}
}

func TestBuildTableDateOnlyValue(t *testing.T) {
	headers := []string{"Дата операции", "Категория", "Сумма операции"}
	table, err := BuildTable(headers, [][]string{{"15.02.2024", "Fuel", "-1"}}, DayFirst)
	if err != nil {
		t.Fatal(err)
	}
	if table.Rows[0].OperationDate.IsZero() {
		t.Error("date without a time component must parse")
	}
}

func TestBuildTableMissingRequiredColumn(t *testing.T) {
	headers := []string{"Дата операции", "Сумма операции"}
	_, err := BuildTable(headers, nil, DayFirst)

	var schemaErr *core.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if schemaErr.Column != core.ColCategory {
		t.Errorf("SchemaError names %q, want %q", schemaErr.Column, core.ColCategory)
	}
}

func TestBuildTableBadRowValuesKeptWithZeroes(t *testing.T) {
	rows := [][]string{
		{"not a date", "", "1234", "OK", "garbage", "", "Fuel", "", ""},
		{"", "", "", "", "", "", "", "", ""}, // fully empty row dropped
	}
	table, err := BuildTable(cyrillicHeaders, rows, DayFirst)
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("empty row must be dropped, got %d rows", len(table.Rows))
	}
	if !table.Rows[0].OperationDate.IsZero() {
		t.Error("bad date must leave the zero value")
	}
	if !table.Rows[0].OperationAmount.IsZero() {
		t.Error("bad amount must leave the zero value")
	}
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"Дата операции", core.ColOperationDate, true},
		{" status ", core.ColStatus, true},
		{"operation_amount", core.ColOperationAmount, true},
		{"MCC", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeHeader(tt.raw)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NormalizeHeader(%q) = %q,%v want %q,%v", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}
