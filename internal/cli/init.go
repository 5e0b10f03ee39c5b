// Package cli consolidates the initialization shared by cmd/finlens,
// cmd/finlens-worker, and cmd/report.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"finlens/internal/config"
	"finlens/internal/datasource"
	"finlens/internal/datasource/excel"
	"finlens/internal/datasource/google"
	"finlens/internal/datasource/memory"
	"finlens/internal/log"
	"finlens/internal/market"
	"finlens/internal/reports"
	"finlens/internal/services"
	"finlens/internal/settings"
	"finlens/internal/storage"
)

// SetupLogger initializes structured logging and installs it as the
// process default.
func SetupLogger(component string) *log.Logger {
	logger := log.New(log.Config{
		Level:     slog.LevelInfo,
		Component: component,
		JSON:      os.Getenv("LOG_FORMAT") == "json",
	})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. Errors are
// ignored silently as the file is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it, exiting
// the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// BuildSource selects the transaction source from configuration.
func BuildSource(ctx context.Context, cfg *config.Config, logger *log.Logger) (services.Source, error) {
	layout := datasource.DateLayout(cfg.DateLayout)
	switch cfg.DataBackend {
	case "excel":
		logger.Info("using excel transaction source",
			log.FieldBackend, cfg.DataBackend, "path", cfg.ExcelFilePath)
		return excel.New(cfg.ExcelFilePath, "", layout), nil
	case "sheets":
		logger.Info("using google sheets transaction source",
			log.FieldBackend, cfg.DataBackend, "spreadsheet_id", cfg.GoogleSpreadsheetID)
		return google.New(ctx, google.Config{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			SheetName:       cfg.GoogleSheetName,
			CredentialsJSON: cfg.GoogleCredentialsJSON,
			CredentialsFile: cfg.GoogleCredentialsFile,
			Layout:          layout,
		})
	default:
		logger.Info("using in-memory transaction source", log.FieldBackend, cfg.DataBackend)
		return memory.NewFromFile("./data/operations.csv", layout)
	}
}

// BuildService assembles the report service with market providers and
// an optional archive.
func BuildService(cfg *config.Config, source services.Source, userSettings settings.Settings, archive *storage.Archive, exporter services.Exporter, logger *log.Logger) *services.ReportService {
	rates := market.NewRateClient(cfg.ExchangeRateAPIURL, cfg.BaseCurrency, nil, cfg.MarketCacheTTL, logger)
	prices := market.NewStockClient(cfg.AlphaVantageAPIURL, cfg.AlphaVantageAPIKey, nil, cfg.MarketCacheTTL, logger)

	opts := []services.Option{
		services.WithCashback(reports.CashbackMode(cfg.CashbackMode), decimal.RequireFromString(cfg.CashbackRate)),
	}
	if archive != nil {
		opts = append(opts, services.WithArchive(archive))
	}
	if exporter != nil {
		opts = append(opts, services.WithExporter(exporter))
	}
	return services.NewReportService(source, userSettings, rates, prices, logger, opts...)
}

// InitArchive opens the report archive, exiting the process on failure.
func InitArchive(logger *log.Logger, dbPath string) *storage.Archive {
	archive, err := storage.NewArchive(dbPath)
	if err != nil {
		logger.Error("failed to open report archive", log.FieldError, err, "path", dbPath)
		os.Exit(1)
	}
	return archive
}

// GracefulShutdown sets up signal handling. The returned context is
// cancelled on SIGINT/SIGTERM after cleanup ran; the channel closes when
// shutdown finished.
func GracefulShutdown(logger *log.Logger, timeout time.Duration, cleanup func()) (context.Context, <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		if cleanup != nil {
			cleanup()
		}

		cancel()

		select {
		case <-shutdownCtx.Done():
			logger.Warn("shutdown timeout reached")
		case <-time.After(2 * time.Second):
			logger.Info("shutdown complete")
		}
		close(done)
	}()

	return ctx, done
}

// WaitForShutdown blocks until the context is cancelled and cleanup has
// finished.
func WaitForShutdown(ctx context.Context, done <-chan struct{}) {
	<-ctx.Done()
	<-done
}
