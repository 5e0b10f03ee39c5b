package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"finlens/internal/amqp"
	"finlens/internal/cli"
	apphttp "finlens/internal/http"
	"finlens/internal/log"
	"finlens/internal/services"
	"finlens/internal/settings"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	userSettings, err := settings.Load(cfg.UserSettingsPath)
	if err != nil {
		logger.Error("failed to load user settings", log.FieldError, err, "path", cfg.UserSettingsPath)
		os.Exit(1)
	}

	ctx := context.Background()
	source, err := cli.BuildSource(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize transaction source", log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}

	archive := cli.InitArchive(logger, cfg.SQLiteDBPath)
	defer archive.Close()

	var exporter services.Exporter
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			logger.Error("failed to connect to AMQP", log.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		exporter = amqpClient
	} else {
		logger.Info("report export queue disabled, no AMQP_URL provided")
	}

	service := cli.BuildService(cfg, source, userSettings, archive, exporter, logger)
	srv := apphttp.NewServer(":"+cfg.Port, service, logger)

	srv.ReadTimeout = 15 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	shutdownCtx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", log.FieldError, err)
		}
	})

	logger.Info("starting finlens server",
		"port", cfg.Port,
		log.FieldBackend, cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(shutdownCtx, done)
	logger.Info("server stopped gracefully")
}
