package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
)

// NICalculator handles Class 1 employee National Insurance
type NICalculator struct {
	Rules domain.NationalInsurance
}

// NewNICalculator creates a National Insurance calculator
func NewNICalculator(rules domain.NationalInsurance) *NICalculator {
	return &NICalculator{Rules: rules}
}

// CalculateNI calculates NI on an annual salary using the annual thresholds
func (nc *NICalculator) CalculateNI(annualSalary decimal.Decimal) decimal.Decimal {
	return nc.calculate(annualSalary, nc.Rules.Annual)
}

// CalculateMonthlyNI calculates NI on one month's pay. The monthly thresholds are
// published separately and are not the annual thresholds divided by 12.
func (nc *NICalculator) CalculateMonthlyNI(monthlySalary decimal.Decimal) decimal.Decimal {
	return nc.calculate(monthlySalary, nc.Rules.Monthly)
}

// calculate rounds down to the penny. Above the upper limit both bands are summed
// before rounding.
func (nc *NICalculator) calculate(salary decimal.Decimal, t domain.NIThresholds) decimal.Decimal {
	if salary.LessThanOrEqual(t.Lower) {
		return decimal.Zero
	}
	if salary.LessThanOrEqual(t.Upper) {
		return floorPenny(salary.Sub(t.Lower).Mul(nc.Rules.BasicRate))
	}
	basic := t.Upper.Sub(t.Lower).Mul(nc.Rules.BasicRate)
	higher := salary.Sub(t.Upper).Mul(nc.Rules.HigherRate)
	return floorPenny(basic.Add(higher))
}

var hundred = decimal.NewFromInt(100)

func floorPenny(v decimal.Decimal) decimal.Decimal {
	return v.Mul(hundred).Floor().Div(hundred)
}
