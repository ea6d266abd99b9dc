// Package store defines the record store ports shared by every backend.
//
// A store owns one append-only table of expense rows. Rows come back in
// insertion order as a lazy sequence; the first row of the table is the
// header and is never yielded.
package store

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"expenses/internal/core"
)

// Header is the exact column layout of the data file.
var Header = []string{"date", "category", "amount", "note"}

var (
	// ErrNotFound reports that the backing resource does not exist yet.
	// Readers treat it as zero records.
	ErrNotFound = errors.New("expense store not found")
	// ErrMalformedRecord reports a row that does not decompose into
	// exactly four fields.
	ErrMalformedRecord = errors.New("malformed record")
)

// Ports for record backends.
type (
	Initializer interface {
		// EnsureInitialized creates the resource with its header when it
		// is absent or empty. Safe to call on every startup.
		EnsureInitialized(ctx context.Context) error
	}

	Appender interface {
		Append(ctx context.Context, e core.Expense) error
	}

	Reader interface {
		// Records yields every data row in insertion order. A failure is
		// yielded once as the final element.
		Records(ctx context.Context) iter.Seq2[core.Row, error]
	}

	Store interface {
		Initializer
		Appender
		Reader
	}
)

// RowError locates a read failure. Row is 1-based and counts the header.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Collect drains a record sequence into a slice.
func Collect(seq iter.Seq2[core.Row, error]) ([]core.Row, error) {
	var rows []core.Row
	for row, err := range seq {
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
