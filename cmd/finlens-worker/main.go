package main

import (
	"context"
	"errors"
	"os"
	"time"

	"finlens/internal/amqp"
	"finlens/internal/cli"
	"finlens/internal/log"
	"finlens/internal/sink"
	"finlens/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the export worker")
		os.Exit(1)
	}

	archive := cli.InitArchive(logger, cfg.SQLiteDBPath)
	defer archive.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		logger.Error("failed to connect to AMQP", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	exportWorker := worker.NewExportWorker(archive, sink.NewFileSink(cfg.ReportsDir), logger)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	logger.Info("starting export worker",
		"queue", cfg.AMQPQueue,
		"reports_dir", cfg.ReportsDir)

	err = amqpClient.ConsumeReportExports(ctx, func(msg *amqp.ReportExportMessage) error {
		handleCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		return exportWorker.Handle(handleCtx, msg)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("message consumption failed", log.FieldError, err)
		os.Exit(1)
	}

	<-done
	logger.Info("export worker stopped gracefully")
}
