package reports

import (
	"testing"

	"finlens/internal/core"
)

func TestPersonalTransfers(t *testing.T) {
	tests := []struct {
		name string
		rows []core.Transaction
		want int
	}{
		{
			"short personal name matches",
			[]core.Transaction{{Category: "Transfers", Description: "Иван С."}},
			1,
		},
		{
			"bare first name does not match",
			[]core.Transaction{{Category: "Transfers", Description: "Иван"}},
			0,
		},
		{
			"full surname with initial matches",
			[]core.Transaction{{Category: "Transfers", Description: "Иванов И."}},
			1,
		},
		{
			"other category excluded even with matching name",
			[]core.Transaction{{Category: "Dividends", Description: "Татьяна О."}},
			0,
		},
		{
			"missing dot does not match",
			[]core.Transaction{{Category: "Transfers", Description: "Петр К"}},
			0,
		},
		{
			"latin name does not match",
			[]core.Transaction{{Category: "Transfers", Description: "Ivan S."}},
			0,
		},
		{
			"empty description excluded",
			[]core.Transaction{{Category: "Transfers"}},
			0,
		},
		{
			"empty input",
			nil,
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PersonalTransfers(tt.rows)
			if got == nil {
				t.Fatal("result must never be nil")
			}
			if len(got) != tt.want {
				t.Errorf("got %d matches, want %d", len(got), tt.want)
			}
		})
	}
}

func TestPersonalTransfersKeepsOrder(t *testing.T) {
	rows := []core.Transaction{
		{Category: "Transfers", Description: "Иван С."},
		{Category: "Transfers", Description: "Михаил"},
		{Category: "Transfers", Description: "Артем П."},
		{Category: "Transfers", Description: "Марина Т."},
	}
	got := PersonalTransfers(rows)
	if len(got) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(got))
	}
	want := []string{"Иван С.", "Артем П.", "Марина Т."}
	for i, d := range want {
		if got[i].Description != d {
			t.Errorf("position %d: got %q, want %q", i, got[i].Description, d)
		}
	}
}
