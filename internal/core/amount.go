package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseAmount parses a decimal amount. Only finite values greater than
// zero are accepted.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !validAmount(v) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return v, nil
}

// FormatAmount renders an amount with exactly two decimals, as used by
// summaries and the exported report.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatStoredAmount renders an amount with the shortest representation
// that parses back to the same value.
func FormatStoredAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func validAmount(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
