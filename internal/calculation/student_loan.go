package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
)

// StudentLoanCalculator computes repayments across one or more plans
type StudentLoanCalculator struct {
	Plans map[domain.StudentLoanPlan]domain.StudentLoanRule
}

// NewStudentLoanCalculator creates a calculator for the given plan rules
func NewStudentLoanCalculator(plans map[domain.StudentLoanPlan]domain.StudentLoanRule) *StudentLoanCalculator {
	return &StudentLoanCalculator{Plans: plans}
}

// CalculateRepayment returns the annual repayment for one plan. Unknown plans repay nothing.
func (slc *StudentLoanCalculator) CalculateRepayment(income decimal.Decimal, plan domain.StudentLoanPlan) decimal.Decimal {
	rule, ok := slc.Plans[plan]
	if !ok {
		return decimal.Zero
	}
	above := income.Sub(rule.Threshold)
	if above.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return above.Mul(rule.Rate)
}

// CalculateTotalStudentLoans sums the repayments of every active plan. Plans are
// independent, so a Plan 2 and a Postgrad loan both apply to the same income.
func (slc *StudentLoanCalculator) CalculateTotalStudentLoans(income decimal.Decimal, plans []domain.StudentLoanPlan) domain.StudentLoanResult {
	result := domain.StudentLoanResult{
		AnnualRepayment:  decimal.Zero,
		MonthlyRepayment: decimal.Zero,
		Breakdown:        []domain.BandAmount{},
	}

	seen := make(map[domain.StudentLoanPlan]bool, len(plans))
	for _, plan := range plans {
		if seen[plan] {
			continue
		}
		seen[plan] = true
		if _, ok := slc.Plans[plan]; !ok {
			continue
		}

		repayment := slc.CalculateRepayment(income, plan)
		result.AnnualRepayment = result.AnnualRepayment.Add(repayment)
		result.Breakdown = append(result.Breakdown, domain.BandAmount{Label: plan.Label(), Amount: repayment})
	}

	result.MonthlyRepayment = result.AnnualRepayment.Div(decimal.NewFromInt(12))
	return result
}
