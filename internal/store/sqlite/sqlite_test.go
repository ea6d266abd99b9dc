package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expenses/internal/core"
	"expenses/internal/store"
)

func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "expenses.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordsBeforeInitIsNotFound(t *testing.T) {
	s := createTestStore(t)
	_, err := store.Collect(s.Records(context.Background()))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEnsureInitializedTwice(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	require.NoError(t, s.EnsureInitialized(ctx))
	require.NoError(t, s.EnsureInitialized(ctx))

	rows, err := store.Collect(s.Records(ctx))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAppendPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	require.NoError(t, s.EnsureInitialized(ctx))

	in := []core.Expense{
		{Date: "2024-06-01", Category: core.Food, Amount: 8},
		{Date: "2024-05-01", Category: core.Food, Amount: 12.5, Note: "lunch"},
		{Date: "2024-05-03", Category: core.Rent, Amount: 900},
	}
	for _, e := range in {
		require.NoError(t, s.Append(ctx, e))
	}

	rows, err := store.Collect(s.Records(ctx))
	require.NoError(t, err)
	require.Len(t, rows, len(in))
	for i, r := range rows {
		got, err := r.Expense()
		require.NoError(t, err)
		assert.Equal(t, in[i], got)
	}
}

func TestAppendBeforeInitCreatesSchema(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	e := core.Expense{Date: "2024-05-01", Category: core.Food, Amount: 1}
	require.NoError(t, s.Append(ctx, e))

	rows, err := store.Collect(s.Records(ctx))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	got, err := rows[0].Expense()
	require.NoError(t, err)
	assert.Equal(t, e, got)

	require.NoError(t, s.EnsureInitialized(ctx))
	rows, err = store.Collect(s.Records(ctx))
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
