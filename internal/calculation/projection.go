package calculation

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
)

// WeightedReturn blends the expected returns by allocation percentage
func WeightedReturn(allocation domain.AssetAllocation, returns domain.ExpectedReturns) decimal.Decimal {
	return allocation.Stocks.Mul(returns.Stocks).
		Add(allocation.Bonds.Mul(returns.Bonds)).
		Add(allocation.Cash.Mul(returns.Cash)).
		Div(hundred)
}

// yearlyContribution converts a monthly fixed amount or a percentage of salary
// into a contribution for the year
func yearlyContribution(value decimal.Decimal, kind domain.ContributionKind, salary decimal.Decimal) decimal.Decimal {
	twelve := decimal.NewFromInt(12)
	if kind == domain.ContributionFixed {
		return value.Mul(twelve)
	}
	return value.Div(hundred).Mul(salary)
}

// deflator returns (1 + inflation)^year
func deflator(inflationPct decimal.Decimal, year int) decimal.Decimal {
	return decimal.NewFromInt(1).Add(inflationPct.Div(hundred)).Pow(decimal.NewFromInt(int64(year)))
}

// CalculatePensionProjection projects a pension pot year by year from the current age
// to retirement age inclusive. Each year the employee and employer contributions are
// added and the total grows at the weighted return; salary grows afterwards. The
// starting pot counts as the saver's own contribution. expectedReturn, when set,
// replaces the allocation-weighted return.
func CalculatePensionProjection(personal domain.PersonalInfo, allocation domain.AssetAllocation, returns domain.ExpectedReturns, expectedReturn *decimal.Decimal) domain.ProjectionResult {
	weighted := WeightedReturn(allocation, returns)
	if expectedReturn != nil {
		weighted = *expectedReturn
	}
	growthFactor := decimal.NewFromInt(1).Add(weighted.Div(hundred))
	salaryGrowth := decimal.NewFromInt(1).Add(personal.SalaryGrowthRate.Div(hundred))

	years := personal.RetirementAge - personal.CurrentAge
	if years < 0 {
		years = 0
	}

	salary := personal.CurrentSalary
	nominal := personal.CurrentPensionValue
	userTotal := personal.CurrentPensionValue
	employerTotal := decimal.Zero
	growthTotal := decimal.Zero

	result := domain.ProjectionResult{
		WeightedReturn:    weighted,
		YearlyProjections: make([]domain.ProjectionYear, 0, years+1),
	}

	for year := 0; year <= years; year++ {
		employee := yearlyContribution(personal.EmployeeContribution, personal.EmployeeKind, salary)
		employer := yearlyContribution(personal.EmployerContribution, personal.EmployerKind, salary)

		start := nominal.Add(employee).Add(employer)
		nominal = start.Mul(growthFactor).Round(simulationPlaces)
		growthTotal = growthTotal.Add(nominal.Sub(start))
		userTotal = userTotal.Add(employee)
		employerTotal = employerTotal.Add(employer)

		realValue := nominal
		if factor := deflator(personal.InflationRate, year); factor.IsPositive() {
			realValue = nominal.Div(factor)
		}

		result.YearlyProjections = append(result.YearlyProjections, domain.ProjectionYear{
			Age:                             personal.CurrentAge + year,
			NominalValue:                    nominal,
			RealValue:                       realValue,
			CumulativeUserContributions:     userTotal,
			CumulativeEmployerContributions: employerTotal,
			CumulativeGrowth:                growthTotal,
			Breakdown:                       splitByAllocation(nominal, allocation),
		})

		salary = salary.Mul(salaryGrowth).Round(simulationPlaces)
	}

	final := result.YearlyProjections[len(result.YearlyProjections)-1]
	result.Summary = domain.ProjectionSummary{
		ProjectedValue:             final.NominalValue,
		RealValue:                  final.RealValue,
		TotalUserContributions:     final.CumulativeUserContributions,
		TotalEmployerContributions: final.CumulativeEmployerContributions,
		TotalInvestmentGrowth:      final.CumulativeGrowth,
		FinalBreakdown:             final.Breakdown,
		UserShare:                  share(final.CumulativeUserContributions, final),
		EmployerShare:              share(final.CumulativeEmployerContributions, final),
		GrowthShare:                share(final.CumulativeGrowth, final),
	}
	return result
}

func splitByAllocation(value decimal.Decimal, allocation domain.AssetAllocation) domain.AssetBreakdown {
	return domain.AssetBreakdown{
		Stocks: value.Mul(allocation.Stocks).Div(hundred),
		Bonds:  value.Mul(allocation.Bonds).Div(hundred),
		Cash:   value.Mul(allocation.Cash).Div(hundred),
	}
}

// share is part as a percentage of everything that built the pot, 0 for an empty pot
func share(part decimal.Decimal, y domain.ProjectionYear) decimal.Decimal {
	total := y.CumulativeUserContributions.Add(y.CumulativeEmployerContributions).Add(y.CumulativeGrowth)
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred)
}

// annualisedRate returns ratio^(1/years) − 1 as a percentage. decimal.Pow only
// supports integer exponents, so the root is taken in float64.
func annualisedRate(ratio decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 || !ratio.IsPositive() {
		return decimal.Zero
	}
	root := math.Pow(ratio.InexactFloat64(), 1/float64(years))
	return decimal.NewFromFloat(root - 1).Mul(hundred)
}
