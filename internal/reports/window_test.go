package reports

import (
	"errors"
	"testing"
	"time"

	"finlens/internal/core"
)

func TestWindowStart(t *testing.T) {
	// Wednesday, mid-month.
	ref := time.Date(2024, 5, 15, 14, 30, 45, 0, time.UTC)

	tests := []struct {
		name   string
		period core.Period
		want   time.Time
	}{
		{"week starts on monday", core.PeriodWeek, time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)},
		{"month starts on the first", core.PeriodMonth, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"year starts january first", core.PeriodYear, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"all is unbounded", core.PeriodAll, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WindowStart(ref, tt.period)
			if err != nil {
				t.Fatalf("WindowStart(%v) returned error: %v", tt.period, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("WindowStart(%v) = %v, want %v", tt.period, got, tt.want)
			}
		})
	}
}

func TestWindowStartSundayBelongsToPreviousWeek(t *testing.T) {
	sunday := time.Date(2024, 5, 19, 10, 0, 0, 0, time.UTC)
	got, err := WindowStart(sunday, core.PeriodWeek)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("week start for Sunday = %v, want %v", got, want)
	}
}

func TestWindowStartIdempotent(t *testing.T) {
	ref := time.Date(2024, 5, 15, 14, 30, 45, 0, time.UTC)
	for _, period := range []core.Period{core.PeriodMonth, core.PeriodYear} {
		first, err := WindowStart(ref, period)
		if err != nil {
			t.Fatal(err)
		}
		second, err := WindowStart(first, period)
		if err != nil {
			t.Fatal(err)
		}
		if !second.Equal(first) {
			t.Errorf("WindowStart(%v) is not idempotent: %v then %v", period, first, second)
		}
	}
}

func TestWindowStartUnknownPeriod(t *testing.T) {
	_, err := WindowStart(time.Now(), core.Period("Q"))
	var invalid *core.InvalidArgumentError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidArgumentError, got %v", err)
	}
}
