// Package cli provides common CLI initialization and output helpers for
// cmd/expenses.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/joho/godotenv"

	"expenses/internal/amqp"
	"expenses/internal/backend"
	"expenses/internal/config"
	applog "expenses/internal/log"
	"expenses/internal/services"
	"expenses/internal/sheets/google"
)

// SetupLogger builds the process logger from the configured level and
// format and installs it as the slog default.
func SetupLogger(cfg *config.Config, out io.Writer) (*slog.Logger, error) {
	level, err := applog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logCfg := applog.DefaultConfig()
	logCfg.Level = level
	logCfg.Format = cfg.LogFormat
	if out != nil {
		logCfg.Output = out
	}
	return applog.Setup(logCfg)
}

// LoadEnvFile loads the .env file for local development.
// A missing file is not an error.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from the environment, applies
// overrides (command line flags) and validates the result.
func LoadAndValidateConfig(overrides ...func(*config.Config)) (*config.Config, error) {
	cfg := config.Load()
	for _, override := range overrides {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OpenBackend creates the configured record store.
func OpenBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*backend.BackendResult, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", bcfg.Type, err)
	}
	return res, nil
}

// ConnectPublisher dials the AMQP broker when one is configured. A failed
// dial is logged and the CLI continues without events, so the returned
// publisher may be nil.
func ConnectPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) services.EventPublisher {
	if cfg.AMQPURL == "" {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	client, err := amqp.NewClient(ctx, amqp.Config{
		URL:          cfg.AMQPURL,
		ExchangeName: cfg.AMQPExchange,
		QueueName:    cfg.AMQPQueue,
	}, applog.WithComponent(logger, applog.ComponentAMQP))
	if err != nil {
		logger.Warn("Failed to connect to AMQP, continuing without events", applog.FieldError, err)
		return nil
	}
	return client
}

// ConnectConsumer dials the AMQP broker for the report worker. Unlike
// ConnectPublisher a missing or unreachable broker is an error.
func ConnectConsumer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*amqp.Client, error) {
	if cfg.AMQPURL == "" {
		return nil, fmt.Errorf("report worker requires AMQP_URL")
	}
	return amqp.NewClient(ctx, amqp.Config{
		URL:          cfg.AMQPURL,
		ExchangeName: cfg.AMQPExchange,
		QueueName:    cfg.AMQPQueue,
	}, applog.WithComponent(logger, applog.ComponentAMQP))
}

// OpenReportWriter connects to Google Sheets for report publishing.
func OpenReportWriter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*google.Client, error) {
	if !cfg.SheetsEnabled() {
		return nil, fmt.Errorf("google sheets export requires GOOGLE_SPREADSHEET_ID")
	}
	return google.New(ctx, google.Config{
		SpreadsheetID:      cfg.GoogleSpreadsheetID,
		SheetName:          cfg.GoogleReportSheetName,
		ServiceAccountJSON: cfg.GoogleServiceAccountJSON,
		ServiceAccountFile: cfg.GoogleServiceAccountFile,
	}, applog.WithComponent(logger, applog.ComponentSheets))
}
