package scenes

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ukcalc/ukcalc/internal/calculation"
	"github.com/ukcalc/ukcalc/internal/domain"
)

func testScenarios() []domain.Scenario {
	return []domain.Scenario{
		{Name: "Base", TaxInputs: domain.TaxInputs{GrossSalary: decimal.NewFromInt(50000)}},
		{Name: "Edinburgh", TaxInputs: domain.TaxInputs{GrossSalary: decimal.NewFromInt(50000), ResidentInScotland: true}},
	}
}

func TestResultsModel_Views(t *testing.T) {
	m := NewResultsModel()
	assert.Contains(t, m.View(), "No results yet")

	scenario := &domain.Scenario{Name: "Base", TaxInputs: domain.TaxInputs{
		GrossSalary: decimal.NewFromInt(50000),
		GrossBonus:  decimal.NewFromInt(5000),
	}}
	result := calculation.NewCalculationEngine().CalculateTaxes(scenario.TaxInputs)
	sweep := []SweepPoint{
		{Gross: decimal.NewFromInt(40000), TakeHome: decimal.NewFromFloat(32438.40)},
		{Gross: decimal.NewFromInt(50000), TakeHome: decimal.NewFromFloat(39519.60)},
		{Gross: decimal.NewFromInt(60000), TakeHome: decimal.NewFromFloat(45519.60)},
	}
	m.SetResults(scenario, result, sweep)
	m.SetSize(100, 40)

	summary := m.View()
	assert.Contains(t, summary, "Take-Home Pay")
	assert.Contains(t, summary, "Tax year 2024/25")
	assert.Contains(t, summary, "Monthly")

	m, _ = m.Update(keyMsg("tab"))
	breakdown := m.View()
	assert.Contains(t, breakdown, "Income tax")
	assert.Contains(t, breakdown, "Bonus month")

	m, _ = m.Update(keyMsg("tab"))
	chart := m.View()
	assert.Contains(t, chart, "Take-home pay as salary changes")
	assert.Contains(t, chart, "Kept per £1")

	m, _ = m.Update(keyMsg("tab"))
	assert.Equal(t, summary, m.View())
}

func TestRenderMarginalRates(t *testing.T) {
	out := renderMarginalRates([]SweepPoint{
		{Gross: decimal.NewFromInt(40000), TakeHome: decimal.NewFromInt(32000)},
		{Gross: decimal.NewFromInt(50000), TakeHome: decimal.NewFromInt(39000)},
		{Gross: decimal.NewFromInt(60000), TakeHome: decimal.NewFromInt(45000)},
	})
	assert.Contains(t, out, "£40K to £50K")
	assert.Contains(t, out, "70p")
	assert.Contains(t, out, "60p")
}
