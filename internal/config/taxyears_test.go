package config

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukcalc/ukcalc/internal/calculation"
	"github.com/ukcalc/ukcalc/internal/domain"
)

const extendedYear = `
tax_years:
  - id: "2026/27"
    extends: "2025/26"
    description: frozen thresholds
    allowance:
      personal_allowance: 12570
      taper_threshold: 100000
      blind_persons_allowance: 3200
    student_loans:
      plan2:
        threshold: 29385
        rate: 0.09
`

func TestParseTaxYears_Extends(t *testing.T) {
	registry := calculation.NewTaxYearRegistry()

	years, err := ParseTaxYears([]byte(extendedYear), registry)
	require.NoError(t, err)
	require.Len(t, years, 1)

	ty, err := registry.Get("2026/27")
	require.NoError(t, err)
	assert.Equal(t, "frozen thresholds", ty.Description)
	assert.True(t, ty.Allowance.BlindPersons.Equal(decimal.NewFromInt(3200)))
	assert.True(t, ty.StudentLoans[domain.PlanTwo].Threshold.Equal(decimal.NewFromInt(29385)))

	base := calculation.NewTaxYear2025()
	// untouched fields come from the base year
	assert.True(t, ty.StudentLoans[domain.PlanOne].Threshold.Equal(base.StudentLoans[domain.PlanOne].Threshold))
	assert.Len(t, ty.IncomeTax.Bands, len(base.IncomeTax.Bands))
	assert.Equal(t, base.PropertyTax.England.Name, ty.PropertyTax.England.Name)

	// the base year is not modified
	original, err := registry.Get("2025/26")
	require.NoError(t, err)
	assert.True(t, original.StudentLoans[domain.PlanTwo].Threshold.Equal(decimal.NewFromInt(28470)))
	assert.True(t, original.Allowance.BlindPersons.Equal(decimal.NewFromInt(3130)))
}

func TestParseTaxYears_OverrideCalculates(t *testing.T) {
	registry := calculation.NewTaxYearRegistry()
	_, err := ParseTaxYears([]byte(`
tax_years:
  - id: "2024/25"
    extends: "2024/25"
    national_insurance:
      basic_rate: 0.10
`), registry)
	require.NoError(t, err)

	engine, err := calculation.NewCalculationEngineWithRegistry(registry, "2024/25")
	require.NoError(t, err)
	result := engine.CalculateTaxes(domain.TaxInputs{GrossSalary: decimal.NewFromInt(30000)})
	// (30000 - 12570) * 10%
	assert.True(t, result.EmployeeNI.Total.Equal(decimal.NewFromInt(1743)), "got %s", result.EmployeeNI.Total)
}

func TestParseTaxYears_Errors(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		contains string
	}{
		{"malformed", "tax_years: [\n", "failed to parse YAML"},
		{"empty", "tax_years: []\n", "no tax_years found"},
		{"unknown base", "tax_years: [{id: x, extends: 1999/00}]\n", "tax_years[0].extends"},
		{"missing id", "tax_years: [{extends: 2024/25}]\n", "tax_years[0].id"},
		{"no bands", "tax_years: [{id: x}]\n", "tax_years[0].income_tax.bands"},
		{
			"closed top band",
			"tax_years: [{id: x, extends: 2024/25, income_tax: {bands: [{label: Basic, width: 37700, rate: 0.2}]}}]\n",
			"tax_years[0].income_tax.bands[0].width",
		},
		{
			"percent instead of fraction",
			"tax_years: [{id: x, extends: 2024/25, national_insurance: {basic_rate: 8}}]\n",
			"tax_years[0].national_insurance.basic_rate",
		},
		{
			"descending price bands",
			"tax_years: [{id: x, extends: 2024/25, property_tax: {england: {name: SDLT, bands: [{upper: 500, rate: 0}, {upper: 100, rate: 0.05}, {upper: 0, rate: 0.1}]}}}]\n",
			"tax_years[0].property_tax.england.bands[1].upper",
		},
		{
			"open band not last",
			"tax_years: [{id: x, extends: 2024/25, property_tax: {scotland: {name: LBTT, bands: [{upper: 0, rate: 0}, {upper: 100, rate: 0.05}]}}}]\n",
			"tax_years[0].property_tax.scotland.bands[0].upper",
		},
		{
			"unknown student loan plan",
			"tax_years: [{id: x, extends: 2024/25, student_loans: {plan9: {threshold: 1, rate: 0.09}}}]\n",
			"tax_years[0].student_loans.plan9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := calculation.NewTaxYearRegistry()
			before := registry.IDs()
			_, err := ParseTaxYears([]byte(tt.doc), registry)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
			assert.Equal(t, before, registry.IDs(), "nothing is registered when validation fails")
		})
	}
}

func TestExportTaxYears_RoundTrip(t *testing.T) {
	data, err := ExportTaxYears(calculation.NewTaxYearRegistry())
	require.NoError(t, err)
	assert.Contains(t, string(data), "2024/25")
	assert.Contains(t, string(data), "2025/26")

	fresh := calculation.NewTaxYearRegistry()
	years, err := ParseTaxYears(data, fresh)
	require.NoError(t, err)
	require.Len(t, years, 2)

	want := calculation.NewTaxYear2025()
	got, err := fresh.Get("2025/26")
	require.NoError(t, err)
	assert.True(t, want.ScottishTax.StarterRateCap.Equal(got.ScottishTax.StarterRateCap))
	assert.Equal(t, len(want.PropertyTax.England.Bands), len(got.PropertyTax.England.Bands))
}

func TestLoadTaxYearFile(t *testing.T) {
	registry := calculation.NewTaxYearRegistry()
	path := writeFile(t, "years.yaml", extendedYear)
	_, err := LoadTaxYearFile(path, registry)
	require.NoError(t, err)
	assert.Contains(t, registry.IDs(), "2026/27")

	_, err = LoadTaxYearFile(filepath.Join(t.TempDir(), "missing.yaml"), registry)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine(&Settings{})
	require.NoError(t, err)
	assert.Equal(t, calculation.DefaultTaxYearID, engine.TaxCalc.TaxYear.ID)

	engine, err = NewEngine(&Settings{
		TaxYear:      "2026/27",
		TaxYearsFile: writeFile(t, "years.yaml", extendedYear),
	})
	require.NoError(t, err)
	assert.Equal(t, "2026/27", engine.TaxCalc.TaxYear.ID)

	_, err = NewEngine(&Settings{TaxYear: "1999/00"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tax year")

	_, err = NewEngine(&Settings{TaxYearsFile: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tax years file")
}
