package config

import (
	"fmt"

	"github.com/ukcalc/ukcalc/internal/calculation"
)

// NewEngine builds a calculation engine whose default tax year comes from the
// settings. Tax-year overrides named in the settings are registered first, so
// the default may be a year defined only in that file.
func NewEngine(s *Settings) (*calculation.CalculationEngine, error) {
	registry := calculation.NewTaxYearRegistry()
	if s.TaxYearsFile != "" {
		if _, err := LoadTaxYearFile(s.TaxYearsFile, registry); err != nil {
			return nil, fmt.Errorf("tax years file: %w", err)
		}
	}

	id := s.TaxYear
	if id == "" {
		id = calculation.DefaultTaxYearID
	}
	engine, err := calculation.NewCalculationEngineWithRegistry(registry, id)
	if err != nil {
		return nil, fmt.Errorf("tax year: %w", err)
	}
	return engine, nil
}
