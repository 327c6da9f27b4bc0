package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukcalc/ukcalc/internal/domain"
)

func newTaxCalc2024() *ComprehensiveTaxCalculator {
	return NewComprehensiveTaxCalculator(NewTaxYear2024())
}

func TestPersonalAllowance(t *testing.T) {
	ctc := newTaxCalc2024()

	tests := []struct {
		name     string
		income   int64
		expected int64
	}{
		{"zero income", 0, 12570},
		{"basic rate", 30000, 12570},
		{"at taper threshold", 100000, 12570},
		{"inside taper", 110000, 7570},
		{"at taper limit", 125140, 0},
		{"above taper limit", 200000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowance := ctc.PersonalAllowance(decimal.NewFromInt(tt.income))
			assert.True(t, allowance.Equal(decimal.NewFromInt(tt.expected)), "got %s", allowance)
		})
	}
}

func TestPersonalAllowance_LinearTaper(t *testing.T) {
	ac := NewAllowanceCalculator(NewTaxYear2024().Allowance)

	previous := ac.PersonalAllowance(decimal.NewFromInt(100000))
	for income := int64(100002); income <= 125140; income += 2 {
		current := ac.PersonalAllowance(decimal.NewFromInt(income))
		require.True(t, previous.Sub(current).Equal(decimal.NewFromInt(1)), "income %d", income)
		previous = current
	}
	assert.True(t, ac.AllowanceLoss(decimal.NewFromInt(110000)).Equal(decimal.NewFromInt(5000)))
}

func TestCalculateTax(t *testing.T) {
	ctc := newTaxCalc2024()

	tests := []struct {
		name     string
		income   int64
		expected decimal.Decimal
	}{
		{"zero income", 0, decimal.Zero},
		{"at personal allowance", 12570, decimal.Zero},
		{"top of basic rate", 50270, decimal.NewFromInt(7540)},
		{"higher rate", 60000, decimal.NewFromInt(11432)},
		// allowance fully withdrawn: 37,700 at 20%, 87,440 at 40%, 24,860 at 45%
		{"additional rate", 150000, decimal.NewFromInt(53703)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ctc.CalculateTax(decimal.NewFromInt(tt.income))
			assert.True(t, result.Tax.Equal(tt.expected), "got %s, want %s", result.Tax, tt.expected)
			require.Len(t, result.Breakdown, 3)
			assert.Equal(t, "Basic Rate", result.Breakdown[0].Label)
			assert.Equal(t, "Additional Rate", result.Breakdown[2].Label)
		})
	}
}

func sumBreakdown(lines []domain.BandAmount) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Amount)
	}
	return total
}

func TestCalculateScottishTax_BreakdownSumsToTax(t *testing.T) {
	for _, ty := range []domain.TaxYear{NewTaxYear2024(), NewTaxYear2025()} {
		ctc := NewComprehensiveTaxCalculator(ty)
		for income := int64(0); income <= 250000; income += 2500 {
			result := ctc.CalculateScottishTax(decimal.NewFromInt(income))
			require.Len(t, result.Breakdown, 6)
			assert.True(t, sumBreakdown(result.Breakdown).Equal(result.Tax), "%s income %d", ty.ID, income)
			assert.True(t, result.Breakdown[starterBand].Amount.LessThanOrEqual(ty.ScottishTax.StarterRateCap),
				"%s income %d starter %s", ty.ID, income, result.Breakdown[starterBand].Amount)
		}
	}
}

func TestCalculateScottishTax_StarterCapRedirect(t *testing.T) {
	ctc := newTaxCalc2024()

	// At 110,000 the allowance is 7,570 so the starter band spans 7,306 (1,388.14 at 19%).
	// The 950 over the cap is 5,000 of income, taxed at 45% in the advanced band.
	result := ctc.CalculateScottishTax(decimal.NewFromInt(110000))

	assert.Equal(t, "Starter Rate", result.Breakdown[starterBand].Label)
	assert.True(t, result.Breakdown[starterBand].Amount.Equal(decimal.NewFromFloat(438.14)))

	// taxable after the starter band: 102,430 - 7,306 = 95,124
	// basic 11,685 @ 20%, intermediate 17,101 @ 21%, higher 31,338 @ 42%, advanced 35,000 @ 45%
	expectedAdvanced := decimal.NewFromInt(5000).Mul(decimal.NewFromFloat(0.45)).
		Add(decimal.NewFromInt(35000).Mul(decimal.NewFromFloat(0.45)))
	assert.True(t, result.Breakdown[advancedBand].Amount.Equal(expectedAdvanced), "got %s", result.Breakdown[advancedBand].Amount)
	assert.True(t, result.Breakdown[topBand].Amount.IsZero())
}

func TestCalculateScottishTax_Labels(t *testing.T) {
	result := newTaxCalc2024().CalculateScottishTax(decimal.NewFromInt(30000))

	labels := make([]string, 0, len(result.Breakdown))
	for _, line := range result.Breakdown {
		labels = append(labels, line.Label)
	}
	assert.Equal(t, []string{"Starter Rate", "Basic Rate", "Intermediate Rate", "Higher Rate", "Advanced Rate", "Top Rate"}, labels)
	assert.True(t, result.Breakdown[starterBand].Amount.Equal(decimal.NewFromFloat(438.14)))
	// 26,561 - 14,876 at 20% and 3,439 at 21%
	assert.True(t, result.Breakdown[basicBand].Amount.Equal(decimal.NewFromInt(2337)))
	assert.True(t, result.Breakdown[intermediateBand].Amount.Equal(decimal.NewFromFloat(722.19)))
}

func TestCalculateIncomeTax_SelectsSchedule(t *testing.T) {
	ctc := newTaxCalc2024()
	income := decimal.NewFromInt(45000)

	assert.True(t, ctc.CalculateIncomeTax(income, false).Tax.Equal(ctc.CalculateTax(income).Tax))
	assert.True(t, ctc.CalculateIncomeTax(income, true).Tax.Equal(ctc.CalculateScottishTax(income).Tax))
	assert.True(t, ctc.HigherRate(false).Equal(decimal.NewFromFloat(0.40)))
	assert.True(t, ctc.HigherRate(true).Equal(decimal.NewFromFloat(0.42)))
}

func TestCalculateNI(t *testing.T) {
	ctc := newTaxCalc2024()

	tests := []struct {
		name     string
		salary   int64
		expected decimal.Decimal
	}{
		{"zero", 0, decimal.Zero},
		{"at primary threshold", 12570, decimal.Zero},
		{"main rate", 30000, decimal.NewFromFloat(1394.4)},
		{"at upper earnings limit", 50270, decimal.NewFromInt(3016)},
		{"above upper earnings limit", 60000, decimal.NewFromFloat(3210.6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ni := ctc.CalculateNI(decimal.NewFromInt(tt.salary))
			assert.True(t, ni.Equal(tt.expected), "got %s, want %s", ni, tt.expected)
		})
	}
}

func TestCalculateNI_Monotonic(t *testing.T) {
	ctc := newTaxCalc2024()

	previous := decimal.Zero
	for salary := int64(0); salary <= 150000; salary += 137 {
		ni := ctc.CalculateNI(decimal.NewFromInt(salary))
		require.True(t, ni.GreaterThanOrEqual(previous), "salary %d", salary)
		previous = ni
	}
}

func TestCalculateMonthlyNI(t *testing.T) {
	ctc := newTaxCalc2024()

	assert.True(t, ctc.CalculateMonthlyNI(decimal.NewFromInt(1048)).IsZero())
	assert.True(t, ctc.CalculateMonthlyNI(decimal.NewFromInt(2000)).Equal(decimal.NewFromFloat(76.16)))
	// 3,141 at 8% plus 811 at 2%
	assert.True(t, ctc.CalculateMonthlyNI(decimal.NewFromInt(5000)).Equal(decimal.NewFromFloat(267.5)))
	// rounded down to the penny
	assert.True(t, ctc.CalculateMonthlyNI(decimal.NewFromFloat(1048.99)).Equal(decimal.NewFromFloat(0.07)))
}

func TestCalculateTotalStudentLoans(t *testing.T) {
	ctc := newTaxCalc2024()

	tests := []struct {
		name           string
		income         int64
		plans          []domain.StudentLoanPlan
		expectedAnnual decimal.Decimal
		expectedLines  int
	}{
		{"no plans", 50000, nil, decimal.Zero, 0},
		{"plan 2 at threshold", 27295, []domain.StudentLoanPlan{domain.PlanTwo}, decimal.Zero, 1},
		{"plan 2 above threshold", 37295, []domain.StudentLoanPlan{domain.PlanTwo}, decimal.NewFromInt(900), 1},
		{"plan 2 and postgrad", 31000, []domain.StudentLoanPlan{domain.PlanTwo, domain.PlanPostgrad}, decimal.NewFromFloat(933.45), 2},
		{"duplicate plan counted once", 37295, []domain.StudentLoanPlan{domain.PlanTwo, domain.PlanTwo}, decimal.NewFromInt(900), 1},
		{"unknown plan ignored", 37295, []domain.StudentLoanPlan{"plan9"}, decimal.Zero, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ctc.CalculateTotalStudentLoans(decimal.NewFromInt(tt.income), tt.plans)
			assert.True(t, result.AnnualRepayment.Equal(tt.expectedAnnual), "got %s", result.AnnualRepayment)
			assert.True(t, result.MonthlyRepayment.Equal(tt.expectedAnnual.Div(decimal.NewFromInt(12))))
			assert.Len(t, result.Breakdown, tt.expectedLines)
		})
	}
}

func TestStudentLoanPlanLabels(t *testing.T) {
	result := newTaxCalc2024().CalculateTotalStudentLoans(decimal.NewFromInt(40000),
		[]domain.StudentLoanPlan{domain.PlanOne, domain.PlanPostgrad})

	require.Len(t, result.Breakdown, 2)
	assert.Equal(t, "Plan 1", result.Breakdown[0].Label)
	assert.Equal(t, "Postgrad", result.Breakdown[1].Label)
}

func TestCalculatePensionContribution(t *testing.T) {
	ctc := newTaxCalc2024()
	pct := func(scheme domain.PensionScheme, v int64) *domain.PensionSpec {
		return &domain.PensionSpec{Scheme: scheme, Value: decimal.NewFromInt(v)}
	}

	tests := []struct {
		name     string
		gross    int64
		spec     *domain.PensionSpec
		expected decimal.Decimal
	}{
		{"nil spec", 50000, nil, decimal.Zero},
		{"none scheme", 50000, pct(domain.SchemeNone, 5), decimal.Zero},
		{"zero value", 50000, pct(domain.SchemeSalarySacrifice, 0), decimal.Zero},
		{"auto enrolment inside band", 30000, pct(domain.SchemeAutoEnrolment, 5), decimal.NewFromInt(1188)},
		{"auto enrolment below band", 6000, pct(domain.SchemeAutoEnrolment, 5), decimal.Zero},
		{"relief at source inside band", 30000, pct(domain.SchemeReliefAtSource, 5), decimal.NewFromInt(1188)},
		{"relief at source capped at band", 80000, pct(domain.SchemeReliefAtSource, 5), decimal.NewFromFloat(2201.5)},
		{"auto unbanded", 50000, pct(domain.SchemeAutoUnbanded, 5), decimal.NewFromInt(2500)},
		{"salary sacrifice", 50000, pct(domain.SchemeSalarySacrifice, 5), decimal.NewFromInt(2500)},
		{"personal", 40000, pct(domain.SchemePersonal, 10), decimal.NewFromInt(4000)},
		{"nominal value", 40000, &domain.PensionSpec{
			Scheme: domain.SchemeReliefAtSourceUnbanded, Value: decimal.NewFromInt(1500), ValueKind: domain.ValueNominal,
		}, decimal.NewFromInt(1500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contribution := ctc.CalculatePensionContribution(decimal.NewFromInt(tt.gross), tt.spec)
			assert.True(t, contribution.Equal(tt.expected), "got %s, want %s", contribution, tt.expected)
		})
	}
}

func TestCalculatePensionContribution_AutoEnrolmentAboveBand(t *testing.T) {
	ctc := newTaxCalc2024()
	spec := &domain.PensionSpec{Scheme: domain.SchemeAutoEnrolment, Value: decimal.NewFromInt(5)}

	contribution := ctc.CalculatePensionContribution(decimal.NewFromInt(80000), spec)

	assert.InDelta(t, 2201.5, contribution.InexactFloat64(), 0.01)
}

func TestTaxYearRegistry(t *testing.T) {
	registry := NewTaxYearRegistry()

	assert.Equal(t, []string{"2024/25", "2025/26"}, registry.IDs())

	ty, err := registry.Get("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTaxYearID, ty.ID)

	_, err = registry.Get("2030/31")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "available")

	custom := NewTaxYear2025()
	custom.ID = "2026/27"
	registry.Register(custom)
	ty, err = registry.Get("2026/27")
	require.NoError(t, err)
	assert.Equal(t, "2026/27", ty.ID)
}

func TestTaxYear2025Differences(t *testing.T) {
	current := NewTaxYear2024()
	next := NewTaxYear2025()

	assert.True(t, current.Allowance.PersonalAllowance.Equal(next.Allowance.PersonalAllowance))
	assert.True(t, next.ScottishTax.StarterThreshold.GreaterThan(current.ScottishTax.StarterThreshold))
	assert.True(t, next.StudentLoans[domain.PlanTwo].Threshold.Equal(decimal.NewFromInt(28470)))
	// SDLT gained a 2% band from April 2025
	assert.Len(t, current.PropertyTax.England.Bands, 4)
	assert.Len(t, next.PropertyTax.England.Bands, 5)
}
