package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldError is a validation failure at a path within the scenario file
type FieldError struct {
	Path    string
	Message string
}

func (e FieldError) Error() string {
	return e.Path + ": " + e.Message
}

// ValidationErrors collects every problem found in a file so they can be fixed in one pass
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Paths lists the failing field paths in the order they were found
func (ve ValidationErrors) Paths() []string {
	paths := make([]string, len(ve))
	for i, e := range ve {
		paths[i] = e.Path
	}
	return paths
}

var (
	zero    = decimal.Zero
	hundred = decimal.NewFromInt(100)
)

// validator accumulates field errors
type validator struct {
	errs ValidationErrors
}

func (v *validator) add(path, format string, args ...any) {
	v.errs = append(v.errs, FieldError{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return v.errs
}

func (v *validator) nonNegative(path string, d decimal.Decimal) {
	if d.IsNegative() {
		v.add(path, "cannot be negative")
	}
}

func (v *validator) positive(path string, d decimal.Decimal) {
	if !d.IsPositive() {
		v.add(path, "must be positive")
	}
}

func (v *validator) percentage(path string, d decimal.Decimal) {
	if d.LessThan(zero) || d.GreaterThan(hundred) {
		v.add(path, "must be between 0 and 100")
	}
}

func (v *validator) intRange(path string, n, lo, hi int) {
	if n < lo || n > hi {
		v.add(path, "must be between %d and %d", lo, hi)
	}
}
