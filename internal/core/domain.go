package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// DateLayout is the on-disk date format of an expense.
const DateLayout = "2006-01-02"

const (
	Food      Category = "food"
	Transport Category = "transport"
	Rent      Category = "rent"
	Utilities Category = "utilities"
	Personal  Category = "personal"
	Other     Category = "other"
)

type (
	Category string

	// Expense is a parsed record.
	Expense struct {
		Date     string // YYYY-MM-DD, compared as text
		Category Category
		Amount   float64
		Note     string
	}

	// Row is a record exactly as the store holds it. The amount stays
	// textual until a consumer calls Expense.
	Row struct {
		Date     string
		Category string
		Amount   string
		Note     string
	}
)

// Categories lists the closed category set in menu order.
var Categories = []Category{Food, Transport, Rent, Utilities, Personal, Other}

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyName       = errors.New("empty expense name")
)

// ParseCategory accepts a category name (any case) or its 1-based
// position in Categories.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > len(Categories) {
			return "", fmt.Errorf("%w: choice %d out of range 1-%d", ErrInvalidCategory, n, len(Categories))
		}
		return Categories[n-1], nil
	}
	c := Category(s)
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

func (c Category) Validate() error {
	for _, known := range Categories {
		if c == known {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidCategory, string(c))
}

func (c Category) String() string {
	return string(c)
}

// ValidateDate checks that s is a real calendar date in DateLayout.
func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidDate, s)
	}
	return nil
}

// ValidateName enforces the expense name rules: not blank and at least
// one letter.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	for _, r := range name {
		if unicode.IsLetter(r) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q must contain letters", ErrEmptyName, name)
}

func (e Expense) Validate() error {
	if err := ValidateDate(e.Date); err != nil {
		return err
	}
	if err := e.Category.Validate(); err != nil {
		return err
	}
	if !validAmount(e.Amount) {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, e.Amount)
	}
	return nil
}

// Row converts the expense to its stored form.
func (e Expense) Row() Row {
	return Row{
		Date:     e.Date,
		Category: string(e.Category),
		Amount:   FormatStoredAmount(e.Amount),
		Note:     e.Note,
	}
}

// Expense parses the stored amount. The category is taken as stored.
func (r Row) Expense() (Expense, error) {
	amount, err := ParseAmount(r.Amount)
	if err != nil {
		return Expense{}, err
	}
	return Expense{
		Date:     r.Date,
		Category: Category(r.Category),
		Amount:   amount,
		Note:     r.Note,
	}, nil
}

// Fields returns the row in column order: date, category, amount, note.
func (r Row) Fields() []string {
	return []string{r.Date, r.Category, r.Amount, r.Note}
}
