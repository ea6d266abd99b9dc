package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"expenses/internal/aggregate"
	"expenses/internal/core"
	applog "expenses/internal/log"
	"expenses/internal/report"
	"expenses/internal/sheets"
	"expenses/internal/store"
)

// EventPublisher announces recorded expenses to other systems.
type EventPublisher interface {
	PublishExpenseRecorded(ctx context.Context, e core.Expense) error
}

// ExpenseService orchestrates the record store, the aggregations and
// optional event publishing.
type ExpenseService struct {
	store     store.Store
	publisher EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewExpenseService wires a service. publisher may be nil.
func NewExpenseService(s store.Store, publisher EventPublisher, logger *slog.Logger) *ExpenseService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExpenseService{
		store:     s,
		publisher: publisher,
		logger:    applog.WithComponent(logger, applog.ComponentExpense),
		now:       time.Now,
	}
}

// SetPublisher attaches the event publisher used by Record. Close
// releases it.
func (s *ExpenseService) SetPublisher(p EventPublisher) {
	s.publisher = p
}

// SetClock replaces the clock used to date new expenses.
func (s *ExpenseService) SetClock(now func() time.Time) {
	s.now = now
}

// Init makes sure the store exists with its header.
func (s *ExpenseService) Init(ctx context.Context) error {
	if err := s.store.EnsureInitialized(ctx); err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	s.logger.DebugContext(ctx, "store ready", applog.FieldOperation, applog.OpInit)
	return nil
}

// Record validates and appends e, dating it today when Date is empty,
// then publishes an event. A failed publish is logged, not returned:
// the expense is already saved.
func (s *ExpenseService) Record(ctx context.Context, e core.Expense) (core.Expense, error) {
	if e.Date == "" {
		e.Date = s.now().Format(core.DateLayout)
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	if err := s.store.Append(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}
	s.logger.InfoContext(ctx, "expense recorded",
		applog.FieldOperation, applog.OpAppend,
		applog.FieldDate, e.Date,
		applog.FieldCategory, e.Category,
		applog.FieldAmount, e.Amount)

	if err := s.publishRecorded(ctx, e); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish expense recorded message",
			applog.FieldOperation, applog.OpPublish,
			applog.FieldDate, e.Date,
			applog.FieldError, err)
	}

	return e, nil
}

func (s *ExpenseService) publishRecorded(ctx context.Context, e core.Expense) error {
	if s.publisher == nil {
		return nil
	}
	return s.publisher.PublishExpenseRecorded(ctx, e)
}

// List returns every expense in insertion order.
func (s *ExpenseService) List(ctx context.Context) ([]core.Expense, error) {
	list, err := aggregate.List(s.store.Records(ctx))
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	s.logger.DebugContext(ctx, "expenses listed",
		applog.FieldOperation, applog.OpList,
		applog.FieldCount, len(list))
	return list, nil
}

// CategorySummary totals every expense by category.
func (s *ExpenseService) CategorySummary(ctx context.Context) (core.CategoryTotals, error) {
	totals, err := aggregate.SumByCategory(s.store.Records(ctx))
	if err != nil {
		return core.CategoryTotals{}, fmt.Errorf("category summary: %w", err)
	}
	s.logger.DebugContext(ctx, "category summary computed",
		applog.FieldOperation, applog.OpSummarize,
		applog.FieldCount, totals.Len())
	return totals, nil
}

// MonthlySummary totals by category the expenses whose date starts with
// month.
func (s *ExpenseService) MonthlySummary(ctx context.Context, month string) (core.MonthOverview, error) {
	totals, err := aggregate.SumByCategoryForMonth(s.store.Records(ctx), month)
	if err != nil {
		return core.MonthOverview{}, fmt.Errorf("monthly summary for %s: %w", month, err)
	}
	s.logger.DebugContext(ctx, "monthly summary computed",
		applog.FieldOperation, applog.OpSummarize,
		applog.FieldMonth, month,
		applog.FieldCount, totals.Len())
	return core.MonthOverview{Month: month, Totals: totals}, nil
}

// Highest returns the largest expense; found is false when there are none.
func (s *ExpenseService) Highest(ctx context.Context) (core.Expense, bool, error) {
	e, found, err := aggregate.MaxByAmount(s.store.Records(ctx))
	if err != nil {
		return core.Expense{}, false, fmt.Errorf("highest expense: %w", err)
	}
	s.logger.DebugContext(ctx, "highest expense found",
		applog.FieldOperation, applog.OpHighest,
		"found", found)
	return e, found, nil
}

// ExportReport writes the category report to dest. Nothing is written
// when there are no expenses; the returned totals are then empty.
func (s *ExpenseService) ExportReport(ctx context.Context, dest string) (core.CategoryTotals, error) {
	totals, err := s.CategorySummary(ctx)
	if err != nil {
		return core.CategoryTotals{}, err
	}
	if totals.Empty() {
		return totals, nil
	}
	if err := report.ExportCategoryTotals(totals, dest); err != nil {
		return core.CategoryTotals{}, fmt.Errorf("export report: %w", err)
	}
	s.logger.InfoContext(ctx, "report exported",
		applog.FieldOperation, applog.OpExport,
		applog.FieldPath, dest,
		applog.FieldCount, totals.Len())
	return totals, nil
}

// PublishReport sends totals to an external report writer.
func (s *ExpenseService) PublishReport(ctx context.Context, w sheets.ReportWriter, totals core.CategoryTotals) (string, error) {
	if w == nil {
		return "", errors.New("no report writer configured")
	}
	ref, err := w.PublishReport(ctx, totals)
	if err != nil {
		return "", fmt.Errorf("publish report: %w", err)
	}
	s.logger.InfoContext(ctx, "report published",
		applog.FieldOperation, applog.OpPublish,
		"ref", ref)
	return ref, nil
}

// Close releases the publisher connection, if any.
func (s *ExpenseService) Close() error {
	if c, ok := s.publisher.(io.Closer); ok && c != nil {
		if err := c.Close(); err != nil {
			return fmt.Errorf("close expense service: %w", err)
		}
	}
	return nil
}
