package components

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ukcalc/ukcalc/internal/domain"
	"github.com/ukcalc/ukcalc/internal/tui/tuistyles"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.Zero, "£0.00"},
		{decimal.NewFromFloat(999.5), "£999.50"},
		{decimal.NewFromFloat(39519.6), "£39,519.60"},
		{decimal.NewFromInt(1234567), "£1,234,567.00"},
		{decimal.NewFromFloat(-1800), "-£1,800.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tuistyles.FormatCurrency(tt.in))
	}
}

func TestFormatChartValue(t *testing.T) {
	assert.Equal(t, "£500", FormatChartValue(500))
	assert.Equal(t, "£2.5K", FormatChartValue(2500))
	assert.Equal(t, "£40K", FormatChartValue(40000))
	assert.Equal(t, "£1.2M", FormatChartValue(1_200_000))
	assert.Equal(t, "-£3.0K", FormatChartValue(-3000))
}

func TestASCIIChart_Render(t *testing.T) {
	assert.Contains(t, NewASCIIChart("Empty").Render(), "No data")

	out := NewASCIIChart("Take-home").
		AddSeries("Gross", []float64{40000, 50000, 60000}, tuistyles.ColorChartLine1).
		AddSeries("Take-home", []float64{32000, 39000, 45000}, tuistyles.ColorChartLine2).
		WithLabels([]string{"£40K", "£50K", "£60K"}).
		WithSize(50, 8).
		Render()

	assert.Contains(t, out, "Take-home")
	assert.Contains(t, out, "●")
	assert.Contains(t, out, "■")
	assert.Contains(t, out, "Legend:")
	assert.Contains(t, out, "£60K")

	// a flat single-point series still renders
	flat := NewASCIIChart("").AddSeries("Flat", []float64{100}, tuistyles.ColorChartLine1).WithSize(30, 5).Render()
	assert.Contains(t, flat, "●")
	assert.NotContains(t, flat, "Legend:")
}

func TestMetricCard(t *testing.T) {
	card := NewMoneyCard("Take-Home", decimal.NewFromFloat(39519.6)).
		WithDiff(decimal.NewFromFloat(2937.8), true)
	out := card.RenderCompact()
	assert.Contains(t, out, "Take-Home: £39,519.60")
	assert.Contains(t, out, "▲ +£2,937.80")

	tax := NewMoneyCard("Income Tax", decimal.NewFromInt(9432)).WithDiff(decimal.NewFromInt(1946), false)
	assert.False(t, tax.Trend.IsPositive)

	unchanged := NewMoneyCard("NI", decimal.NewFromInt(100)).WithDiff(decimal.Zero, true)
	assert.Nil(t, unchanged.Trend)

	grid := MetricGrid([]*MetricCard{card, tax, unchanged}, 2)
	assert.Contains(t, grid, "Income Tax")
	assert.Empty(t, MetricGrid(nil, 2))
}

func TestDeductionBar(t *testing.T) {
	r := &domain.TakeHomeResult{
		IncomeTax:   domain.LineItems{Total: decimal.NewFromInt(7486)},
		EmployeeNI:  domain.LineItems{Total: decimal.NewFromFloat(2994.40)},
		TakeHomePay: decimal.NewFromFloat(39519.60),
	}
	bar := NewDeductionBar(r).WithWidth(40)

	// zero student loan and pension are left out
	assert.Len(t, bar.Segments, 3)

	cells := bar.Cells()
	total := 0
	for _, c := range cells {
		total += c
	}
	assert.Equal(t, 40, total)
	assert.Equal(t, []int{6, 2, 32}, cells)

	out := bar.Render()
	assert.Contains(t, out, "Take-Home 79.0%")
	assert.Equal(t, 40, strings.Count(out, "█"))

	assert.Contains(t, NewDeductionBar(&domain.TakeHomeResult{}).Render(), "Nothing to show")
}

func TestScenarioHighlights(t *testing.T) {
	s := domain.Scenario{
		Name: "Full",
		TaxInputs: domain.TaxInputs{
			GrossSalary:        decimal.NewFromInt(40000),
			GrossBonus:         decimal.NewFromInt(2000),
			StudentLoanPlans:   []domain.StudentLoanPlan{domain.PlanOne, domain.PlanPostgrad},
			ResidentInScotland: true,
			ExcludeNI:          true,
			Pension:            &domain.PensionSpec{Scheme: domain.SchemePersonal, Value: decimal.NewFromInt(1200), ValueKind: domain.ValueNominal},
			TaxYear:            "2025/26",
		},
	}

	assert.Equal(t, []string{
		"Salary £40,000.00",
		"Bonus £2,000.00",
		"Pension £1,200.00 (personal)",
		"Student loans: Plan 1, Postgrad",
		"Scottish taxpayer",
		"No National Insurance",
		"Tax year 2025/26",
	}, ScenarioHighlights(s))

	card := NewScenarioCard(s)
	assert.Equal(t, "Full • Salary £40,000.00", card.RenderCompact())
	assert.Contains(t, ScenarioListCompact([]*ScenarioCard{card}, 0), "▸ Full")
	assert.Contains(t, ScenarioListCompact(nil, 0), "No scenarios")
}
