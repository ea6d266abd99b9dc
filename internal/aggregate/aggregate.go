// Package aggregate computes summaries over a record sequence.
//
// Every operation is one linear scan through Reduce. A missing store and
// an empty store both produce an empty result with a nil error; malformed
// rows and unparsable amounts stop the scan and are returned.
package aggregate

import (
	"errors"
	"iter"
	"strings"

	"expenses/internal/core"
	"expenses/internal/store"
)

// Filter decides whether a raw row takes part in a reduction. It runs
// before the amount is parsed.
type Filter func(core.Row) bool

// Reduce folds every row accepted by keep (all rows when keep is nil)
// into acc. It returns the final accumulator and the number of rows
// folded. store.ErrNotFound is treated as zero rows.
func Reduce[A any](records iter.Seq2[core.Row, error], acc A, keep Filter, step func(A, core.Expense) A) (A, int, error) {
	n := 0
	for row, err := range records {
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return acc, n, nil
			}
			return acc, n, err
		}
		if keep != nil && !keep(row) {
			continue
		}
		e, err := row.Expense()
		if err != nil {
			return acc, n, err
		}
		acc = step(acc, e)
		n++
	}
	return acc, n, nil
}

// MonthPrefix selects rows whose date starts with prefix. No calendar
// validation is done.
func MonthPrefix(prefix string) Filter {
	return func(r core.Row) bool {
		return strings.HasPrefix(r.Date, prefix)
	}
}

// SumByCategory totals amounts per category in first-seen order.
func SumByCategory(records iter.Seq2[core.Row, error]) (core.CategoryTotals, error) {
	return sumByCategory(records, nil)
}

// SumByCategoryForMonth is SumByCategory restricted to dates starting
// with month.
func SumByCategoryForMonth(records iter.Seq2[core.Row, error], month string) (core.CategoryTotals, error) {
	return sumByCategory(records, MonthPrefix(month))
}

func sumByCategory(records iter.Seq2[core.Row, error], keep Filter) (core.CategoryTotals, error) {
	totals, _, err := Reduce(records, &core.CategoryTotals{}, keep, func(t *core.CategoryTotals, e core.Expense) *core.CategoryTotals {
		t.Add(string(e.Category), e.Amount)
		return t
	})
	if err != nil {
		return core.CategoryTotals{}, err
	}
	return *totals, nil
}

// MaxByAmount returns the expense with the greatest amount. Ties keep the
// earliest record. found is false when there are no records.
func MaxByAmount(records iter.Seq2[core.Row, error]) (core.Expense, bool, error) {
	highest, n, err := Reduce(records, core.Expense{}, nil, func(best core.Expense, e core.Expense) core.Expense {
		if e.Amount > best.Amount {
			return e
		}
		return best
	})
	if err != nil {
		return core.Expense{}, false, err
	}
	return highest, n > 0, nil
}

// List parses every record in order.
func List(records iter.Seq2[core.Row, error]) ([]core.Expense, error) {
	out, _, err := Reduce(records, []core.Expense(nil), nil, func(acc []core.Expense, e core.Expense) []core.Expense {
		return append(acc, e)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
