package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// decimalValue lets cobra read money and rate flags straight into a decimal.
// "£45,000" and "45000" are the same value.
type decimalValue struct {
	target *decimal.Decimal
}

func newDecimalValue(target *decimal.Decimal, def decimal.Decimal) *decimalValue {
	*target = def
	return &decimalValue{target: target}
}

func (d *decimalValue) String() string {
	if d.target == nil {
		return "0"
	}
	return d.target.String()
}

func (d *decimalValue) Set(s string) error {
	v, err := parseAmount(s)
	if err != nil {
		return err
	}
	*d.target = v
	return nil
}

func (d *decimalValue) Type() string { return "decimal" }

func parseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("£", "", ",", "", "%", "", " ", "").Replace(strings.TrimSpace(s))
	v, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}

// optionalDecimal returns nil unless the flag was given on the command line
func optionalDecimal(changed bool, v decimal.Decimal) *decimal.Decimal {
	if !changed {
		return nil
	}
	return &v
}
