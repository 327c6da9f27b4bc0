package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationErrors(t *testing.T, doc string) ValidationErrors {
	t.Helper()
	_, err := NewInputParser().ParseConfiguration([]byte(doc))
	require.Error(t, err)
	var ve ValidationErrors
	require.True(t, errors.As(err, &ve), "expected ValidationErrors, got %v", err)
	return ve
}

func TestValidateConfiguration_FieldPaths(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		path string
	}{
		{"empty file", "tax_year: 2024/25\n", "scenarios"},
		{"unknown tax year", "tax_year: 2019/20\nscenarios: [{name: a}]\n", "tax_year"},
		{"scenario tax year", "scenarios: [{name: a, tax_year: 2030/31}]\n", "scenarios[0].tax_year"},
		{"missing name", "scenarios: [{gross_salary: 1}]\n", "scenarios[0].name"},
		{"duplicate name", "scenarios: [{name: a}, {name: a}]\n", "scenarios[1].name"},
		{"negative bonus", "scenarios: [{name: a, gross_bonus: -5}]\n", "scenarios[0].gross_bonus"},
		{"unknown plan", "scenarios: [{name: a, student_loan_plans: [plan3]}]\n", "scenarios[0].student_loan_plans[0]"},
		{"unknown scheme", "scenarios: [{name: a, pension: {scheme: defined_benefit, value: 5}}]\n", "scenarios[0].pension.scheme"},
		{"percentage over 100", "scenarios: [{name: a, pension: {scheme: personal, value: 120}}]\n", "scenarios[0].pension.value"},
		{"nominal banded", "scenarios: [{name: a, pension: {scheme: auto_enrolment, value: 100, value_kind: nominal}}]\n", "scenarios[0].pension.value_kind"},
		{"unknown value kind", "scenarios: [{name: a, pension: {scheme: personal, value: 1, value_kind: weekly}}]\n", "scenarios[0].pension.value_kind"},
		{"deposit above price", "mortgage: {home_price: 100000, deposit: 100000, term_months: 300}\n", "mortgage.deposit"},
		{"mortgage term", "mortgage: {home_price: 100000, deposit: 0, term_months: 0}\n", "mortgage.term_months"},
		{"mortgage apr", "mortgage: {home_price: 100000, term_months: 12, apr: 101}\n", "mortgage.apr"},
		{"unknown region", "property_tax: {home_price: 1, region: wales}\n", "property_tax.region"},
		{"first time buyer additional", "property_tax: {home_price: 1, first_time_buyer: true, additional_property: true}\n", "property_tax.additional_property"},
		{"retire before current age", "pension_projection: {personal: {current_age: 40, retirement_age: 30}}\n", "pension_projection.personal.retirement_age"},
		{"allocation over 100", "pension_projection: {personal: {current_age: 30, retirement_age: 60}, allocation: {stocks: 80, bonds: 30}}\n", "pension_projection.allocation"},
		{"contribution kind", "pension_projection: {personal: {current_age: 30, retirement_age: 60, employee_contribution_kind: weekly}}\n", "pension_projection.personal.employee_contribution_kind"},
		{"compound frequency", "compound_interest: {timeframe: 5, frequency: hourly}\n", "compound_interest.frequency"},
		{"compound timeframe", "compound_interest: {timeframe: 0}\n", "compound_interest.timeframe"},
		{"inflation index", "purchasing_power: {amount: 1, start_year: 2000, end_year: 2001, index: hicp}\n", "purchasing_power.index"},
		{"inflation start year", "purchasing_power: {amount: 1, end_year: 2001}\n", "purchasing_power.start_year"},
		{"children", "child_benefit: {number_of_children: -1}\n", "child_benefit.number_of_children"},
		{"partner income", "child_benefit: {number_of_children: 1, partner_income: -1}\n", "child_benefit.partner_income"},
		{"childcare month", "childcare: {year: 2025, month: 13, children: [{}]}\n", "childcare.month"},
		{"childcare children", "childcare: {year: 2025, month: 1}\n", "childcare.children"},
		{"first child shares", "childcare: {year: 2025, month: 1, children: [{same_schedule: true}]}\n", "childcare.children[0].same_schedule"},
		{"childcare session", "childcare: {year: 2025, month: 1, children: [{schedule: {monday: evening}}]}\n", "childcare.children[0].schedule.monday"},
		{"car product", "car_finance: {product: lease, car_value: 1, term_months: 12}\n", "car_finance.product"},
		{"car term", "car_finance: {car_value: 1, term_months: 0}\n", "car_finance.term_months"},
		{"car deposit", "car_finance: {car_value: 1, term_months: 12, deposit_percentage: 150}\n", "car_finance.deposit_percentage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := validationErrors(t, tt.doc)
			assert.Contains(t, ve.Paths(), tt.path)
		})
	}
}

func TestValidateConfiguration_ReportsEveryError(t *testing.T) {
	ve := validationErrors(t, `
scenarios:
  - name: a
    gross_salary: -1
  - gross_bonus: -1
car_finance: {car_value: 0, term_months: 12}
`)
	assert.Equal(t, []string{
		"scenarios[0].gross_salary",
		"scenarios[1].name",
		"scenarios[1].gross_bonus",
		"car_finance.car_value",
	}, ve.Paths())
	assert.Contains(t, ve.Error(), "scenarios[0].gross_salary: cannot be negative; ")
}

func TestValidateConfiguration_ExpectedReturnSkipsAllocation(t *testing.T) {
	config, err := NewInputParser().ParseConfiguration([]byte(
		"pension_projection: {personal: {current_age: 30, retirement_age: 60}, allocation: {stocks: 80, bonds: 30}, expected_return: 5}\n"))
	require.NoError(t, err)
	require.NotNil(t, config.Projection.ExpectedReturn)
}

func TestValidateConfiguration_MonthTimeframe(t *testing.T) {
	_, err := NewInputParser().ParseConfiguration([]byte("compound_interest: {timeframe: 1200, timeframe_in_months: true}\n"))
	assert.NoError(t, err)

	ve := validationErrors(t, "compound_interest: {timeframe: 1200}\n")
	assert.Equal(t, []string{"compound_interest.timeframe"}, ve.Paths())
}
