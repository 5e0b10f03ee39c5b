// Package services composes the reporting engine with its collaborators:
// the transaction source, market data providers, the report archive and
// the export queue.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"finlens/internal/core"
	"finlens/internal/log"
	"finlens/internal/reports"
	"finlens/internal/settings"
)

// Report kinds used for archive records and export messages.
const (
	KindHomePage      = "home_page"
	KindEventSummary  = "event_summary"
	KindSpending      = "spending"
	KindCashback      = "cashback"
	KindPersonalXfers = "personal_transfers"
)

type (
	// Source loads the normalized transaction table.
	Source interface {
		Load(ctx context.Context) (core.Table, error)
	}

	// RateProvider fetches exchange rates, best-effort per code.
	RateProvider interface {
		FetchRates(ctx context.Context, codes []string) ([]core.CurrencyRate, error)
	}

	// PriceProvider fetches stock quotes, best-effort per symbol.
	PriceProvider interface {
		FetchPrices(ctx context.Context, symbols []string) ([]core.StockPrice, error)
	}

	// Archiver stores serialized reports for later export.
	Archiver interface {
		SaveReport(ctx context.Context, kind, params string, payload []byte) (int64, error)
	}

	// Exporter notifies the export worker about an archived report.
	Exporter interface {
		PublishReportExport(ctx context.Context, reportID int64, kind string) error
	}
)

// ReportService runs the engine against loaded data and market
// snapshots. Archive and exporter are optional; when absent, reports are
// computed and returned without being persisted.
type ReportService struct {
	source   Source
	settings settings.Settings
	rates    RateProvider
	prices   PriceProvider
	archive  Archiver
	exporter Exporter

	cashbackMode reports.CashbackMode
	cashbackRate decimal.Decimal

	log *log.Logger
}

type Option func(*ReportService)

func WithArchive(a Archiver) Option        { return func(s *ReportService) { s.archive = a } }
func WithExporter(e Exporter) Option       { return func(s *ReportService) { s.exporter = e } }
func WithCashback(mode reports.CashbackMode, rate decimal.Decimal) Option {
	return func(s *ReportService) {
		s.cashbackMode = mode
		s.cashbackRate = rate
	}
}

func NewReportService(source Source, userSettings settings.Settings, rates RateProvider, prices PriceProvider, logger *log.Logger, opts ...Option) *ReportService {
	s := &ReportService{
		source:       source,
		settings:     userSettings,
		rates:        rates,
		prices:       prices,
		cashbackMode: reports.CashbackRecorded,
		log:          logger.WithComponent(log.ComponentReports),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HomePage builds the greeting + cards + top transactions bundle for the
// reference instant. The two market fetches run concurrently; assembly
// is deterministic regardless of which finishes first.
func (s *ReportService) HomePage(ctx context.Context, ref time.Time) (core.HomePage, error) {
	table, err := s.source.Load(ctx)
	if err != nil {
		return core.HomePage{}, fmt.Errorf("load transactions: %w", err)
	}

	rates, prices, err := s.fetchMarket(ctx)
	if err != nil {
		return core.HomePage{}, err
	}

	page := reports.AssembleHomePage(
		reports.Greeting(ref),
		reports.SummarizeCards(table.Rows),
		reports.TopTransactions(table.Rows, reports.DefaultTopN),
		rates,
		prices,
	)

	s.archiveReport(ctx, KindHomePage, fmt.Sprintf(`{"ref":%q}`, ref.Format(time.RFC3339)), page)
	return page, nil
}

// EventSummary aggregates expenses and income over the window selected
// by the period code, ending at the reference instant.
func (s *ReportService) EventSummary(ctx context.Context, ref time.Time, period core.Period) (core.PeriodSummary, error) {
	start, err := reports.WindowStart(ref, period)
	if err != nil {
		return core.PeriodSummary{}, err
	}

	table, err := s.source.Load(ctx)
	if err != nil {
		return core.PeriodSummary{}, fmt.Errorf("load transactions: %w", err)
	}

	var window []core.Transaction
	for _, tx := range table.Rows {
		if tx.OperationDate.IsZero() || tx.OperationDate.Before(start) || tx.OperationDate.After(ref) {
			continue
		}
		window = append(window, tx)
	}

	rates, prices, err := s.fetchMarket(ctx)
	if err != nil {
		return core.PeriodSummary{}, err
	}

	summary := reports.AssemblePeriodSummary(
		reports.AggregateByCategory(window, core.Expense),
		reports.AggregateByCategory(window, core.Income),
		rates,
		prices,
	)

	params := fmt.Sprintf(`{"ref":%q,"period":%q}`, ref.Format(time.RFC3339), period)
	s.archiveReport(ctx, KindEventSummary, params, summary)
	return summary, nil
}

// Spending reports the trailing-window spend for one category.
func (s *ReportService) Spending(ctx context.Context, category string, asOf time.Time, windowDays int) (core.SpendingReport, error) {
	table, err := s.source.Load(ctx)
	if err != nil {
		return core.SpendingReport{}, fmt.Errorf("load transactions: %w", err)
	}

	report := reports.SpendingByCategory(table.Rows, category, asOf, windowDays)

	s.log.Info("computed category spending",
		log.FieldCategory, category,
		"total", report.Total,
		log.FieldRowCount, len(report.Transactions))

	params := fmt.Sprintf(`{"category":%q,"window_days":%d}`, category, windowDays)
	s.archiveReport(ctx, KindSpending, params, report)
	return report, nil
}

// Cashback analyzes cashback per category for one month, using the
// configured computation mode.
func (s *ReportService) Cashback(ctx context.Context, year int, month time.Month) (core.CashbackReport, error) {
	table, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	report, err := reports.CashbackByCategory(table, year, month, s.cashbackMode, s.cashbackRate, s.log.Logger)
	if err != nil {
		return nil, err
	}

	params := fmt.Sprintf(`{"year":%d,"month":%d,"mode":%q}`, year, month, s.cashbackMode)
	s.archiveReport(ctx, KindCashback, params, report)
	return report, nil
}

// PersonalTransfers lists transfer transactions addressed to a person.
func (s *ReportService) PersonalTransfers(ctx context.Context) ([]core.Transaction, error) {
	table, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	return reports.PersonalTransfers(table.Rows), nil
}

// fetchMarket runs the two independent outbound fetches concurrently.
func (s *ReportService) fetchMarket(ctx context.Context) ([]core.CurrencyRate, []core.StockPrice, error) {
	var (
		rates  []core.CurrencyRate
		prices []core.StockPrice
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if s.rates == nil {
			return nil
		}
		fetched, err := s.rates.FetchRates(gctx, s.settings.UserCurrencies)
		if err != nil {
			return fmt.Errorf("fetch currency rates: %w", err)
		}
		rates = fetched
		return nil
	})
	g.Go(func() error {
		if s.prices == nil {
			return nil
		}
		fetched, err := s.prices.FetchPrices(gctx, s.settings.UserStocks)
		if err != nil {
			return fmt.Errorf("fetch stock prices: %w", err)
		}
		prices = fetched
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return rates, prices, nil
}

// archiveReport stores the serialized report and notifies the export
// worker. Archiving is best-effort: a storage or queue problem must not
// fail a report that was already computed.
func (s *ReportService) archiveReport(ctx context.Context, kind, params string, report any) {
	if s.archive == nil {
		return
	}
	payload, err := json.Marshal(report)
	if err != nil {
		s.log.Warn("cannot marshal report for archive", log.FieldReportKind, kind, log.FieldError, err)
		return
	}
	id, err := s.archive.SaveReport(ctx, kind, params, payload)
	if err != nil {
		s.log.Warn("cannot archive report", log.FieldReportKind, kind, log.FieldError, err)
		return
	}
	if s.exporter == nil {
		return
	}
	if err := s.exporter.PublishReportExport(ctx, id, kind); err != nil {
		s.log.Warn("cannot enqueue report export",
			log.FieldReportKind, kind,
			log.FieldReportID, id,
			log.FieldError, err)
	}
}
