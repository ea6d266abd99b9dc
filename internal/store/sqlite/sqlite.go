// Package sqlite implements the record store on a SQLite database.
// Amounts are kept as text so that parsing stays with the consumer, as
// with the CSV backend.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"expenses/internal/core"
	"expenses/internal/store"

	_ "modernc.org/sqlite"
)

type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

var _ store.Store = (*Store)(nil)

// Open opens (and creates if needed) the database file. The schema is
// only created by EnsureInitialized.
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{db: db, path: dbPath, logger: logger}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// EnsureInitialized runs the embedded migrations.
func (s *Store) EnsureInitialized(ctx context.Context) error {
	if err := RunMigrations(s.path); err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "sqlite schema ready", "path", s.path)
	return nil
}

// Append inserts e. A missing schema is created first, as the CSV store
// writes its header on the first append.
func (s *Store) Append(ctx context.Context, e core.Expense) error {
	r := e.Row()
	res, err := s.insert(ctx, r)
	if err != nil && isMissingTable(err) {
		if err := s.EnsureInitialized(ctx); err != nil {
			return err
		}
		res, err = s.insert(ctx, r)
	}
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}

	id, _ := res.LastInsertId()
	s.logger.DebugContext(ctx, "expense saved to sqlite",
		"id", id,
		"date", r.Date,
		"category", r.Category,
		"amount", r.Amount)
	return nil
}

func (s *Store) insert(ctx context.Context, r core.Row) (sql.Result, error) {
	return s.db.ExecContext(ctx,
		`INSERT INTO expenses (date, category, amount, note) VALUES (?, ?, ?, ?)`,
		r.Date, r.Category, r.Amount, r.Note)
}

// Records yields rows ordered by insertion id.
func (s *Store) Records(ctx context.Context) iter.Seq2[core.Row, error] {
	return func(yield func(core.Row, error) bool) {
		rows, err := s.db.QueryContext(ctx,
			`SELECT date, category, amount, note FROM expenses ORDER BY id`)
		if err != nil {
			if isMissingTable(err) {
				yield(core.Row{}, store.ErrNotFound)
				return
			}
			yield(core.Row{}, fmt.Errorf("query expenses: %w", err))
			return
		}
		defer rows.Close()

		// Row numbers count the header row, as in the CSV backend.
		for n := 2; rows.Next(); n++ {
			var r core.Row
			if err := rows.Scan(&r.Date, &r.Category, &r.Amount, &r.Note); err != nil {
				yield(core.Row{}, &store.RowError{Row: n, Err: fmt.Errorf("%w: %v", store.ErrMalformedRecord, err)})
				return
			}
			if !yield(r, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(core.Row{}, fmt.Errorf("iterate expenses: %w", err))
		}
	}
}

func isMissingTable(err error) bool {
	return strings.Contains(err.Error(), "no such table")
}
