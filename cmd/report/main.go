// Command report runs one report from the command line and writes the
// result as a JSON file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"finlens/internal/cli"
	"finlens/internal/core"
	"finlens/internal/log"
	"finlens/internal/reports"
	"finlens/internal/settings"
	"finlens/internal/sink"
)

func main() {
	var (
		kind     = flag.String("kind", "home", "report to run: home, events, spending, cashback, transfers")
		dateArg  = flag.String("date", "", "reference date (2006-01-02 or '2006-01-02 15:04:05'), defaults to now")
		period   = flag.String("period", "M", "events window: W, M, Y or ALL")
		category = flag.String("category", "", "category for the spending report")
		days     = flag.Int("days", reports.DefaultWindowDays, "trailing window in days for the spending report")
		year     = flag.Int("year", 0, "year for the cashback report")
		month    = flag.Int("month", 0, "month (1-12) for the cashback report")
		out      = flag.String("out", "", "output file name, generated when empty")
	)
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	userSettings, err := settings.Load(cfg.UserSettingsPath)
	if err != nil {
		fatal(logger, "failed to load user settings", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	source, err := cli.BuildSource(ctx, cfg, logger)
	if err != nil {
		fatal(logger, "failed to initialize transaction source", err)
	}
	service := cli.BuildService(cfg, source, userSettings, nil, nil, logger)

	ref := time.Now()
	if *dateArg != "" {
		ref, err = parseRef(*dateArg)
		if err != nil {
			fatal(logger, "invalid -date", err)
		}
	}

	var report any
	switch strings.ToLower(*kind) {
	case "home":
		report, err = service.HomePage(ctx, ref)
	case "events":
		p, ok := core.ParsePeriod(*period)
		if !ok {
			fatal(logger, "invalid -period", fmt.Errorf("%q is not one of W, M, Y, ALL", *period))
		}
		report, err = service.EventSummary(ctx, ref, p)
	case "spending":
		if *category == "" {
			fatal(logger, "missing -category", fmt.Errorf("the spending report needs a category"))
		}
		report, err = service.Spending(ctx, *category, ref, *days)
	case "cashback":
		y, m := *year, *month
		if y == 0 || m == 0 {
			now := time.Now()
			y, m = now.Year(), int(now.Month())
		}
		if m < 1 || m > 12 {
			fatal(logger, "invalid -month", fmt.Errorf("%d is not in [1, 12]", m))
		}
		report, err = service.Cashback(ctx, y, time.Month(m))
	case "transfers":
		var txs []core.Transaction
		txs, err = service.PersonalTransfers(ctx)
		if err == nil {
			report = transferRows(txs)
		}
	default:
		fatal(logger, "unknown -kind", fmt.Errorf("%q is not one of home, events, spending, cashback, transfers", *kind))
	}
	if err != nil {
		fatal(logger, "report failed", err)
	}

	path, err := sink.NewFileSink(cfg.ReportsDir).Persist(*out, report)
	if err != nil {
		fatal(logger, "failed to write report", err)
	}

	logger.Info("report written", log.FieldReportKind, *kind, "path", path)
	fmt.Println(path)
}

type transferRow struct {
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

func transferRows(txs []core.Transaction) []transferRow {
	rows := make([]transferRow, 0, len(txs))
	for _, tx := range txs {
		date := ""
		if !tx.OperationDate.IsZero() {
			date = tx.OperationDate.Format(core.DateLayout)
		}
		rows = append(rows, transferRow{
			Date:        date,
			Amount:      tx.OperationAmount.String(),
			Description: tx.Description,
		})
	}
	return rows
}

func parseRef(raw string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

func fatal(logger *log.Logger, msg string, err error) {
	logger.Error(msg, log.FieldError, err)
	os.Exit(1)
}
