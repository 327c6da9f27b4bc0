package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
)

// ChildBenefitCalculator handles Child Benefit and the High Income Child Benefit Charge
type ChildBenefitCalculator struct {
	Rules domain.ChildBenefitRules
}

// NewChildBenefitCalculator creates a child benefit calculator
func NewChildBenefitCalculator(rules domain.ChildBenefitRules) *ChildBenefitCalculator {
	return &ChildBenefitCalculator{Rules: rules}
}

// WeeklyBenefit returns the weekly entitlement for a number of children
func (cbc *ChildBenefitCalculator) WeeklyBenefit(children int) decimal.Decimal {
	if children <= 0 {
		return decimal.Zero
	}
	return cbc.Rules.FirstChildWeekly.Add(cbc.Rules.AdditionalChildWeekly.Mul(decimal.NewFromInt(int64(children - 1))))
}

// ChargePercent is 1% of the benefit for every full step of income above the
// threshold, capped at 100%.
func (cbc *ChildBenefitCalculator) ChargePercent(income decimal.Decimal) decimal.Decimal {
	if !income.GreaterThan(cbc.Rules.ChargeThreshold) || !cbc.Rules.ChargeStep.IsPositive() {
		return decimal.Zero
	}
	pct := income.Sub(cbc.Rules.ChargeThreshold).Div(cbc.Rules.ChargeStep).Floor()
	return decimal.Min(hundred, pct)
}

// CalculateChildBenefit returns the benefit paid and the charge assessed on the
// higher earner
func (cbc *ChildBenefitCalculator) CalculateChildBenefit(in domain.ChildBenefitInputs) domain.ChildBenefitResult {
	weekly := cbc.WeeklyBenefit(in.NumberOfChildren)
	annual := weekly.Mul(weeksPerYear)
	highest := in.HighestIncome()
	pct := cbc.ChargePercent(highest)
	charge := annual.Mul(pct).Div(hundred)

	return domain.ChildBenefitResult{
		Weekly:        weekly,
		FourWeekly:    weekly.Mul(decimal.NewFromInt(4)),
		Annual:        annual,
		HighestIncome: highest,
		ChargePercent: pct,
		Charge:        charge,
		NetAnnual:     annual.Sub(charge),
	}
}
