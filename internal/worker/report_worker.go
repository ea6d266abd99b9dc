// Package worker keeps the published Google Sheets summary current as
// expense recorded events arrive.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"expenses/internal/amqp"
	"expenses/internal/core"
	applog "expenses/internal/log"
	"expenses/internal/sheets"
)

// Summarizer computes the all-time category totals.
type Summarizer interface {
	CategorySummary(ctx context.Context) (core.CategoryTotals, error)
}

// ReportWorker republishes the category report after each recorded expense.
type ReportWorker struct {
	summary Summarizer
	writer  sheets.ReportWriter
	logger  *slog.Logger
}

func NewReportWorker(summary Summarizer, writer sheets.ReportWriter, logger *slog.Logger) *ReportWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportWorker{
		summary: summary,
		writer:  writer,
		logger:  applog.WithComponent(logger, applog.ComponentReport),
	}
}

// HandleExpenseRecorded refreshes the report for one event. The store is
// re-read rather than patched with the event so the sheet always matches
// the file.
func (w *ReportWorker) HandleExpenseRecorded(ctx context.Context, msg *amqp.ExpenseRecordedMessage) error {
	w.logger.InfoContext(ctx, "Processing expense recorded message",
		applog.FieldDate, msg.Date,
		applog.FieldCategory, msg.Category)

	if err := w.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh report: %w", err)
	}
	return nil
}

// Refresh publishes the current totals. An empty store publishes nothing.
func (w *ReportWorker) Refresh(ctx context.Context) error {
	totals, err := w.summary.CategorySummary(ctx)
	if err != nil {
		return err
	}
	if totals.Empty() {
		w.logger.InfoContext(ctx, "No expenses recorded, skipping report publish")
		return nil
	}

	ref, err := w.writer.PublishReport(ctx, totals)
	if err != nil {
		return err
	}
	w.logger.InfoContext(ctx, "Report published",
		"range", ref,
		applog.FieldCount, totals.Len())
	return nil
}

// StartupSync publishes the report once so a sheet missed while the
// worker was down catches up before consumption starts.
func (w *ReportWorker) StartupSync(ctx context.Context) error {
	w.logger.InfoContext(ctx, "Performing startup report sync")
	if err := w.Refresh(ctx); err != nil {
		return fmt.Errorf("startup sync: %w", err)
	}
	return nil
}
