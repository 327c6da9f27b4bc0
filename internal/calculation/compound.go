package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
)

// compoundPeriods is the whole number of compounding periods in the timeframe
func compoundPeriods(in domain.CompoundInterestInputs) int {
	perYear := in.Frequency.PeriodsPerYear()
	if in.Timeframe <= 0 {
		return 0
	}
	if in.TimeframeInMonths {
		return perYear * in.Timeframe / 12
	}
	return perYear * in.Timeframe
}

// CalculateCompoundInterest grows a savings balance period by period. Each period
// earns interest on the opening balance and then receives its share of the monthly
// contribution. The initial investment counts towards total contributions.
func CalculateCompoundInterest(in domain.CompoundInterestInputs) domain.CompoundInterestResult {
	perYear := in.Frequency.PeriodsPerYear()
	periods := compoundPeriods(in)
	perYearDec := decimal.NewFromInt(int64(perYear))

	rate := in.AnnualInterestRate.Div(hundred).Div(perYearDec)
	contribution := in.MonthlyContribution.Mul(decimal.NewFromInt(12)).Div(perYearDec)

	balance := in.InitialInvestment
	totalContributions := in.InitialInvestment
	totalInterest := decimal.Zero
	interestAtLastRow := decimal.Zero

	result := domain.CompoundInterestResult{YearlyData: []domain.CompoundYear{}}
	for i := 1; i <= periods; i++ {
		interest := balance.Mul(rate).Round(simulationPlaces)
		balance = balance.Add(contribution).Add(interest)
		totalContributions = totalContributions.Add(contribution)
		totalInterest = totalInterest.Add(interest)

		if i%perYear == 0 || i == periods {
			result.YearlyData = append(result.YearlyData, domain.CompoundYear{
				Year:                (i + perYear - 1) / perYear,
				Balance:             balance,
				Contributions:       contribution.Mul(perYearDec),
				InterestEarned:      totalInterest.Sub(interestAtLastRow),
				TotalContributions:  totalContributions,
				TotalInterestEarned: totalInterest,
			})
			interestAtLastRow = totalInterest
		}
	}

	result.FinalBalance = balance
	result.TotalContributions = totalContributions
	result.TotalInterestEarned = totalInterest
	return result
}
