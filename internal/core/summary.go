package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount float64
}

// CategoryTotals accumulates amounts per category and remembers the
// order in which categories were first seen. The zero value is empty and
// ready to use.
type CategoryTotals struct {
	entries []CategoryAmount
	index   map[string]int
}

// NewCategoryTotals builds totals from entries in the given order.
// Repeated names are summed into the first occurrence.
func NewCategoryTotals(entries ...CategoryAmount) CategoryTotals {
	var t CategoryTotals
	for _, e := range entries {
		t.Add(e.Name, e.Amount)
	}
	return t
}

// Add adds amount to category.
func (t *CategoryTotals) Add(category string, amount float64) {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if i, ok := t.index[category]; ok {
		t.entries[i].Amount += amount
		return
	}
	t.index[category] = len(t.entries)
	t.entries = append(t.entries, CategoryAmount{Name: category, Amount: amount})
}

// Get returns the total for category and whether it was seen at all.
func (t CategoryTotals) Get(category string) (float64, bool) {
	i, ok := t.index[category]
	if !ok {
		return 0, false
	}
	return t.entries[i].Amount, true
}

// Entries returns a copy of the totals in first-seen order.
func (t CategoryTotals) Entries() []CategoryAmount {
	return append([]CategoryAmount(nil), t.entries...)
}

func (t CategoryTotals) Len() int {
	return len(t.entries)
}

func (t CategoryTotals) Empty() bool {
	return len(t.entries) == 0
}

// Total is the sum over every category.
func (t CategoryTotals) Total() float64 {
	var sum float64
	for _, e := range t.entries {
		sum += e.Amount
	}
	return sum
}

// MonthOverview is the category breakdown for one month prefix.
type MonthOverview struct {
	Month  string // YYYY-MM
	Totals CategoryTotals
}

// Total is the grand total for the month.
func (m MonthOverview) Total() float64 {
	return m.Totals.Total()
}
