package compare

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
)

// ComparisonResult represents a single take-home scenario with the metrics used to compare it
type ComparisonResult struct {
	ScenarioName string                 `json:"scenarioName"`
	Description  string                 `json:"description,omitempty"`
	Result       *domain.TakeHomeResult `json:"-"`

	// Key Metrics
	TaxYear           string          `json:"taxYear"`
	Scotland          bool            `json:"scotland"`
	GrossIncome       decimal.Decimal `json:"grossIncome"`
	IncomeTax         decimal.Decimal `json:"incomeTax"`
	NationalInsurance decimal.Decimal `json:"nationalInsurance"`
	StudentLoan       decimal.Decimal `json:"studentLoan"`
	Pension           decimal.Decimal `json:"pension"`
	TakeHome          decimal.Decimal `json:"takeHome"`
	MonthlyTakeHome   decimal.Decimal `json:"monthlyTakeHome"`
	EffectiveTaxRate  decimal.Decimal `json:"effectiveTaxRate"` // tax + NI + student loan as % of gross

	// Comparison to Base
	TakeHomeDiffFromBase decimal.Decimal `json:"takeHomeDiffFromBase"`
	TakeHomePctFromBase  decimal.Decimal `json:"takeHomePctFromBase"`
	TaxDiffFromBase      decimal.Decimal `json:"taxDiffFromBase"` // combined taxes
	PensionDiffFromBase  decimal.Decimal `json:"pensionDiffFromBase"`

	// KeptPerPound is the take-home change per £1 of gross change; nil when gross is unchanged.
	KeptPerPound *decimal.Decimal `json:"keptPerPound,omitempty"`
}

// CombinedTaxes returns income tax, NI and student loan together.
func (cr ComparisonResult) CombinedTaxes() decimal.Decimal {
	return cr.IncomeTax.Add(cr.NationalInsurance).Add(cr.StudentLoan)
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
}

// MetricsCalculator extracts key metrics from take-home results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a scenario result
func (mc *MetricsCalculator) CalculateMetrics(name string, result *domain.TakeHomeResult) ComparisonResult {
	metrics := ComparisonResult{
		ScenarioName:      name,
		Result:            result,
		TaxYear:           result.TaxYear,
		Scotland:          result.ResidentInScotland,
		GrossIncome:       result.AnnualGrossIncome.Total,
		IncomeTax:         result.IncomeTax.Total,
		NationalInsurance: result.EmployeeNI.Total,
		StudentLoan:       result.StudentLoanRepayments.Total,
		Pension:           result.PensionContribution.Total,
		TakeHome:          result.TakeHomePay,
		MonthlyTakeHome:   result.MonthlyTakeHome,
	}

	if metrics.GrossIncome.IsPositive() {
		metrics.EffectiveTaxRate = metrics.CombinedTaxes().
			Div(metrics.GrossIncome).
			Mul(decimal.NewFromInt(100))
	}

	return metrics
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.TakeHomeDiffFromBase = scenario.TakeHome.Sub(base.TakeHome)

	if !base.TakeHome.IsZero() {
		scenario.TakeHomePctFromBase = scenario.TakeHomeDiffFromBase.
			Div(base.TakeHome).
			Mul(decimal.NewFromInt(100))
	}

	scenario.TaxDiffFromBase = scenario.CombinedTaxes().Sub(base.CombinedTaxes())
	scenario.PensionDiffFromBase = scenario.Pension.Sub(base.Pension)

	grossDiff := scenario.GrossIncome.Sub(base.GrossIncome)
	if !grossDiff.IsZero() {
		kept := scenario.TakeHomeDiffFromBase.Div(grossDiff)
		scenario.KeptPerPound = &kept
	}

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}
	base := compSet.BaseResult

	// Find best scenario by take-home pay
	best := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TakeHome.GreaterThan(best.TakeHome) {
			best = alt
		}
	}

	if best != base {
		diff := best.TakeHome.Sub(base.TakeHome)
		recommendations = append(recommendations,
			"Best Take-Home: "+best.ScenarioName+" pays £"+diff.StringFixed(0)+
				" a year (£"+diff.Div(decimal.NewFromInt(12)).StringFixed(0)+" a month) more than the base scenario")
	}

	// Find lowest combined taxes
	lowestTax := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.CombinedTaxes().LessThan(lowestTax.CombinedTaxes()) {
			lowestTax = alt
		}
	}

	if lowestTax != base {
		savings := base.CombinedTaxes().Sub(lowestTax.CombinedTaxes())
		recommendations = append(recommendations,
			"Lowest Taxes: "+lowestTax.ScenarioName+" saves £"+savings.StringFixed(0)+
				" in income tax, NI and student loan repayments")
	}

	// Cheapest pension saving: the smallest take-home cost per £1 added to the pension
	var cheapest *ComparisonResult
	var cheapestCost decimal.Decimal
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if !alt.PensionDiffFromBase.IsPositive() || !alt.GrossIncome.Equal(base.GrossIncome) {
			continue
		}
		cost := alt.TakeHomeDiffFromBase.Neg().Div(alt.PensionDiffFromBase)
		if cheapest == nil || cost.LessThan(cheapestCost) {
			cheapest = alt
			cheapestCost = cost
		}
	}

	if cheapest != nil {
		recommendations = append(recommendations,
			fmt.Sprintf("Pension Efficiency: %s adds £%s to your pension for £%s less take-home (%sp per £1 saved)",
				cheapest.ScenarioName,
				cheapest.PensionDiffFromBase.StringFixed(0),
				cheapest.TakeHomeDiffFromBase.Neg().StringFixed(0),
				cheapestCost.Mul(decimal.NewFromInt(100)).StringFixed(0)))
	}

	return recommendations
}
