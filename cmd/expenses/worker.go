package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"expenses/internal/cli"
	applog "expenses/internal/log"
	"expenses/internal/worker"
)

func workerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Keep the Google Sheets summary current from expense events",
		Long: `Consume expense recorded events from AMQP and republish the category
summary to Google Sheets after each one. Requires AMQP_URL and
GOOGLE_SPREADSHEET_ID. Runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			writer, err := cli.OpenReportWriter(ctx, a.cfg, a.base)
			if err != nil {
				return err
			}
			consumer, err := cli.ConnectConsumer(ctx, a.cfg, a.base)
			if err != nil {
				return fmt.Errorf("connect to AMQP: %w", err)
			}
			defer consumer.Close()

			w := worker.NewReportWorker(a.svc, writer, a.base)
			if err := w.StartupSync(ctx); err != nil {
				a.logger.Error("Failed startup sync", applog.FieldError, err)
			}

			a.logger.Info("Report worker started", "queue", a.cfg.AMQPQueue)
			err = consumer.ConsumeExpenseRecorded(ctx, w.HandleExpenseRecorded)
			if errors.Is(err, ctx.Err()) {
				a.logger.Info("Report worker stopped")
				return nil
			}
			return err
		},
	}
}
