package calculation

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
	"github.com/ukcalc/ukcalc/internal/refdata"
)

// maxYearsAhead limits how far into the future an amount can be projected
const maxYearsAhead = 50

// fallbackInflation is applied to years without a published rate
var fallbackInflation = decimal.NewFromInt(2)

// PurchasingPowerCalculator adjusts amounts between years using an inflation series
type PurchasingPowerCalculator struct {
	Data *refdata.Set
	Now  func() time.Time
}

// NewPurchasingPowerCalculator creates a calculator over the given series
func NewPurchasingPowerCalculator(data *refdata.Set) *PurchasingPowerCalculator {
	return &PurchasingPowerCalculator{Data: data, Now: time.Now}
}

// CalculatePurchasingPower compounds the amount by each year's inflation from the
// start year up to, not including, the end year. The start year is raised to the
// first year of the series and the end year capped fifty years ahead.
func (ppc *PurchasingPowerCalculator) CalculatePurchasingPower(in domain.PurchasingPowerInputs) (domain.PurchasingPowerResult, error) {
	series, err := ppc.Data.Series(in.Index)
	if err != nil {
		return domain.PurchasingPowerResult{}, err
	}

	maxYear := ppc.Now().Year() + maxYearsAhead
	start := in.StartYear
	if in.EndYear < start {
		start = in.EndYear
	}
	if start < series.EarliestYear {
		start = series.EarliestYear
	}
	end := in.EndYear
	if end < start {
		end = start
	}
	if end > maxYear {
		end = maxYear
	}
	if start > end {
		start = end
	}

	one := decimal.NewFromInt(1)
	factor := one
	result := domain.PurchasingPowerResult{
		StartYear:       start,
		EndYear:         end,
		OriginalAmount:  in.Amount,
		YearlyBreakdown: make([]domain.InflationYear, 0, end-start+1),
	}
	for year := start; year <= end; year++ {
		rate, ok := series.Rate(year)
		if !ok {
			rate = fallbackInflation
		}
		result.YearlyBreakdown = append(result.YearlyBreakdown, domain.InflationYear{
			Year:          year,
			Amount:        in.Amount.Mul(factor),
			InflationRate: rate,
		})
		if year < end {
			factor = factor.Mul(one.Add(rate.Div(hundred))).Round(simulationPlaces)
		}
	}

	result.InflationFactor = factor
	result.AdjustedAmount = in.Amount.Mul(factor)
	result.PercentageChange = factor.Sub(one).Mul(hundred)
	if in.Amount.IsZero() {
		result.PercentageChange = decimal.Zero
	}
	result.AverageInflation = annualisedRate(factor, end-start)
	return result, nil
}
