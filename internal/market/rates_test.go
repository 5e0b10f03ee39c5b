package market

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"finlens/internal/log"
)

func testLogger() *log.Logger {
	return log.New(log.Config{Level: slog.LevelError})
}

func TestFetchRates(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/USD" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"rates":{"USD":1,"EUR":0.85,"GBP":0.75}}`))
	}))
	defer srv.Close()

	c := NewRateClient(srv.URL, "USD", srv.Client(), time.Minute, testLogger())
	got, err := c.FetchRates(context.Background(), []string{"EUR", "GBP", "XXX"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rates (XXX skipped), got %+v", got)
	}
	if got[0].Currency != "EUR" || got[0].Rate != 0.85 {
		t.Errorf("first rate = %+v", got[0])
	}

	// A second call within the TTL must hit the cache, not the API.
	if _, err := c.FetchRates(context.Background(), []string{"EUR"}); err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 API call, got %d", calls.Load())
	}
}

func TestFetchRatesEmptyCodes(t *testing.T) {
	c := NewRateClient("http://invalid.invalid", "USD", nil, time.Minute, testLogger())
	got, err := c.FetchRates(context.Background(), nil)
	if err != nil {
		t.Fatalf("no codes must mean no call and no error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %+v", got)
	}
}

func TestFetchRatesStaleFallback(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"rates":{"EUR":0.85}}`))
	}))
	defer srv.Close()

	c := NewRateClient(srv.URL, "USD", srv.Client(), time.Millisecond, testLogger())
	if _, err := c.FetchRates(context.Background(), []string{"EUR"}); err != nil {
		t.Fatal(err)
	}

	time.Sleep(5 * time.Millisecond) // expire the cache
	fail.Store(true)

	got, err := c.FetchRates(context.Background(), []string{"EUR"})
	if err != nil {
		t.Fatalf("stale cache must cover an API failure: %v", err)
	}
	if len(got) != 1 || got[0].Rate != 0.85 {
		t.Errorf("stale rate = %+v", got)
	}
}

func TestFetchRatesErrorWithoutCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewRateClient(srv.URL, "USD", srv.Client(), time.Minute, testLogger())
	if _, err := c.FetchRates(context.Background(), []string{"EUR"}); err == nil {
		t.Fatal("expected error when API fails and nothing is cached")
	}
}
