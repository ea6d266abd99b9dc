// Package csvfile implements the record store over a comma-separated file.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"

	"expenses/internal/core"
	"expenses/internal/store"
)

// Store reads and appends expense rows in a single CSV file. It keeps no
// file handle open between calls and takes no lock on the file.
type Store struct {
	path   string
	logger *slog.Logger
}

var _ store.Store = (*Store)(nil)

// New creates a store backed by the file at path. The file is not
// touched until the first call.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// EnsureInitialized creates the file and writes the header if the file
// is missing or empty. Existing content is left alone and not verified.
func (s *Store) EnsureInitialized(_ context.Context) error {
	f, created, err := s.openForAppend()
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing csv file: %w", err)
	}
	if created {
		s.logger.Info("expense file initialized", "file", s.path)
	}
	return nil
}

// Append writes e as one row at the end of the file.
func (s *Store) Append(_ context.Context, e core.Expense) error {
	f, _, err := s.openForAppend()
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(e.Row().Fields()); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing csv record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flushing csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing csv file: %w", err)
	}

	s.logger.Debug("appended expense", "file", s.path, "date", e.Date, "category", e.Category)
	return nil
}

// Records streams the data rows. The file is opened when iteration
// starts and closed when it ends.
func (s *Store) Records(ctx context.Context) iter.Seq2[core.Row, error] {
	return func(yield func(core.Row, error) bool) {
		if err := ctx.Err(); err != nil {
			yield(core.Row{}, err)
			return
		}

		f, err := os.Open(s.path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				yield(core.Row{}, store.ErrNotFound)
				return
			}
			yield(core.Row{}, fmt.Errorf("opening csv file: %w", err))
			return
		}
		defer f.Close()

		r := csv.NewReader(f)
		r.FieldsPerRecord = -1

		for n := 1; ; n++ {
			fields, err := r.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(core.Row{}, &store.RowError{Row: n, Err: fmt.Errorf("%w: %v", store.ErrMalformedRecord, err)})
				return
			}
			if n == 1 {
				continue
			}
			if len(fields) != len(store.Header) {
				yield(core.Row{}, &store.RowError{
					Row: n,
					Err: fmt.Errorf("%w: got %d fields, want %d", store.ErrMalformedRecord, len(fields), len(store.Header)),
				})
				return
			}
			row := core.Row{Date: fields[0], Category: fields[1], Amount: fields[2], Note: fields[3]}
			if !yield(row, nil) {
				return
			}
		}
	}
}

// openForAppend opens the file in append mode, creating it and writing
// the header when it is empty. Appending never truncates.
func (s *Store) openForAppend() (*os.File, bool, error) {
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, false, fmt.Errorf("creating csv directory: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, false, fmt.Errorf("opening csv file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		if closeErr := f.Close(); closeErr != nil {
			return nil, false, fmt.Errorf("stat csv file: %w (close error: %w)", err, closeErr)
		}
		return nil, false, fmt.Errorf("stat csv file: %w", err)
	}
	if stat.Size() > 0 {
		return f, false, nil
	}

	w := csv.NewWriter(f)
	if err := w.Write(store.Header); err != nil {
		_ = f.Close()
		return nil, false, fmt.Errorf("writing headers: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return nil, false, fmt.Errorf("writing headers: %w", err)
	}
	return f, true, nil
}
