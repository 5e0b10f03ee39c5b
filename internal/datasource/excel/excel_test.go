package excel

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"finlens/internal/datasource"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "operations.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Дата операции", "Категория", "Сумма операции", "Статус"},
		{"31.12.2021 16:44:00", "Supermarkets", "-160,89", "OK"},
		{"01.01.2022 12:00:00", "Fuel", "-80", "OK"},
	})

	table, err := New(path, "", datasource.DayFirst).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[0].OperationDate.IsZero() {
		t.Error("day-first date must parse")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.xlsx"), "", datasource.DayFirst).Load(context.Background())
	if err == nil {
		t.Fatal("expected error for missing workbook")
	}
}

func TestLoadMissingColumn(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Дата операции", "Сумма операции"},
		{"31.12.2021 16:44:00", "-160,89"},
	})
	_, err := New(path, "", datasource.DayFirst).Load(context.Background())
	if err == nil {
		t.Fatal("expected schema error for missing category column")
	}
}
