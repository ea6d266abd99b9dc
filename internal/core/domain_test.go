package core

import (
	"errors"
	"math"
	"testing"
)

func TestValidateDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2025-01-01", true},
		{"2024-02-29", true},
		{"2025-02-29", false},
		{"2025-13-01", false},
		{"2025-1-1", false},
		{"", false},
	}
	for i, tc := range cases {
		err := ValidateDate(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("case %d expected ErrInvalidDate, got %v", i, err)
		}
	}
}

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"food", Food, true},
		{" Rent ", Rent, true},
		{"1", Food, true},
		{"6", Other, true},
		{"0", "", false},
		{"7", "", false},
		{"groceries", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseCategory(tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Fatalf("%q expected %q, got %q (err=%v)", tc.in, tc.want, got, err)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidCategory) {
			t.Fatalf("%q expected ErrInvalidCategory, got %v", tc.in, err)
		}
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("coffee"); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	for _, bad := range []string{"", "   ", "1234", "!!"} {
		if err := ValidateName(bad); !errors.Is(err, ErrEmptyName) {
			t.Fatalf("%q expected ErrEmptyName, got %v", bad, err)
		}
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{Date: "2025-01-01", Category: Food, Amount: 1.5}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{Date: "", Category: Food, Amount: 1},
		{Date: "2025-01-01", Category: "snacks", Amount: 1},
		{Date: "2025-01-01", Category: Food, Amount: 0},
		{Date: "2025-01-01", Category: Food, Amount: -3},
		{Date: "2025-01-01", Category: Food, Amount: math.Inf(1)},
		{Date: "2025-01-01", Category: Food, Amount: math.NaN()},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestRowExpenseRoundTrip(t *testing.T) {
	e := Expense{Date: "2024-05-01", Category: Food, Amount: 12.5, Note: "lunch, with tip"}
	got, err := e.Row().Expense()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != e {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, e)
	}
}

func TestRowExpenseInvalidAmount(t *testing.T) {
	_, err := Row{Date: "2024-05-01", Category: "food", Amount: "twelve"}.Expense()
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}
