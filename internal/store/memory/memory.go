package memory

import (
	"context"
	"iter"
	"sync"

	"expenses/internal/core"
	"expenses/internal/store"
)

// Store keeps rows in process memory. It reports store.ErrNotFound until
// it has been initialized or appended to, like a data file that does not
// exist yet.
type Store struct {
	mu          sync.Mutex
	initialized bool
	rows        []core.Row
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// NewWithRows returns an initialized store seeded with rows.
func NewWithRows(rows ...core.Row) *Store {
	return &Store{initialized: true, rows: append([]core.Row(nil), rows...)}
}

func (s *Store) EnsureInitialized(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialized = true
	return nil
}

// Append stores the expense as a row.
func (s *Store) Append(_ context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialized = true
	s.rows = append(s.rows, e.Row())
	return nil
}

// Records yields a snapshot taken when iteration starts.
func (s *Store) Records(ctx context.Context) iter.Seq2[core.Row, error] {
	return func(yield func(core.Row, error) bool) {
		if err := ctx.Err(); err != nil {
			yield(core.Row{}, err)
			return
		}
		s.mu.Lock()
		initialized := s.initialized
		rows := append([]core.Row(nil), s.rows...)
		s.mu.Unlock()

		if !initialized {
			yield(core.Row{}, store.ErrNotFound)
			return
		}
		for _, r := range rows {
			if !yield(r, nil) {
				return
			}
		}
	}
}

// Len returns the number of stored rows.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}
