package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
)

// AllowanceCalculator handles the personal allowance taper
type AllowanceCalculator struct {
	Rules domain.AllowanceRules
}

// NewAllowanceCalculator creates an allowance calculator for the given rules
func NewAllowanceCalculator(rules domain.AllowanceRules) *AllowanceCalculator {
	return &AllowanceCalculator{Rules: rules}
}

// PersonalAllowance returns the tax-free allowance for an annual income.
// The allowance is reduced by 1 for every 2 of income over the taper threshold.
func (ac *AllowanceCalculator) PersonalAllowance(income decimal.Decimal) decimal.Decimal {
	if income.LessThanOrEqual(ac.Rules.TaperThreshold) {
		return ac.Rules.PersonalAllowance
	}
	if income.LessThanOrEqual(ac.Rules.TaperLimit()) {
		reduction := income.Sub(ac.Rules.TaperThreshold).Div(decimal.NewFromInt(2))
		return ac.Rules.PersonalAllowance.Sub(reduction)
	}
	return decimal.Zero
}

// AllowanceLoss is the part of the allowance withdrawn by the taper.
func (ac *AllowanceCalculator) AllowanceLoss(income decimal.Decimal) decimal.Decimal {
	return ac.Rules.PersonalAllowance.Sub(ac.PersonalAllowance(income))
}
