package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
)

// PropertyTaxCalculator handles SDLT (England) and LBTT (Scotland)
type PropertyTaxCalculator struct {
	Rules domain.PropertyTaxRules
}

// NewPropertyTaxCalculator creates a property transaction tax calculator
func NewPropertyTaxCalculator(rules domain.PropertyTaxRules) *PropertyTaxCalculator {
	return &PropertyTaxCalculator{Rules: rules}
}

// CalculatePropertyTax calculates the tax due on a residential purchase.
//
// First-time buyer bands apply when the price is within the relief limit. The
// additional property surcharge is added to every band (SDLT) or charged on the
// whole price (LBTT), and only at or above the minimum price.
func (ptc *PropertyTaxCalculator) CalculatePropertyTax(in domain.PropertyTaxInputs) domain.PropertyTaxResult {
	rules := ptc.Rules.England
	if in.Region == domain.RegionScotland {
		rules = ptc.Rules.Scotland
	}
	price := decimal.Max(decimal.Zero, in.HomePrice)

	bands := rules.Bands
	if in.FirstTimeBuyer && !in.AdditionalProperty && len(rules.FirstTimeBuyerBands) > 0 &&
		(rules.FirstTimeBuyerLimit.IsZero() || price.LessThanOrEqual(rules.FirstTimeBuyerLimit)) {
		bands = rules.FirstTimeBuyerBands
	}

	surcharge := in.AdditionalProperty && price.GreaterThanOrEqual(rules.AdditionalMinPrice)
	bandSurcharge := decimal.Zero
	if surcharge {
		bandSurcharge = rules.AdditionalRate
	}

	result := domain.PropertyTaxResult{Tax: rules.Name, StampDuty: decimal.Zero, EffectiveRate: decimal.Zero}
	lower := decimal.Zero
	for _, band := range bands {
		if !price.GreaterThan(lower) {
			break
		}
		upper := price
		if !band.Upper.IsZero() {
			upper = decimal.Min(price, band.Upper)
		}
		rate := band.Rate.Add(bandSurcharge)
		due := upper.Sub(lower).Mul(rate)
		result.Breakdown = append(result.Breakdown, domain.BandAmount{Label: bandLabel(lower, band.Upper, rate), Amount: due})
		result.StampDuty = result.StampDuty.Add(due)
		if band.Upper.IsZero() {
			break
		}
		lower = band.Upper
	}

	if surcharge && rules.AdditionalFlatRate.IsPositive() {
		due := price.Mul(rules.AdditionalFlatRate)
		result.Breakdown = append(result.Breakdown, domain.BandAmount{
			Label:  fmt.Sprintf("Additional Dwelling Supplement %s%%", rules.AdditionalFlatRate.Mul(hundred).String()),
			Amount: due,
		})
		result.StampDuty = result.StampDuty.Add(due)
	}

	if price.IsPositive() {
		result.EffectiveRate = result.StampDuty.Div(price).Mul(hundred)
	}
	return result
}

func bandLabel(lower, upper, rate decimal.Decimal) string {
	pct := rate.Mul(hundred).String()
	if upper.IsZero() {
		return fmt.Sprintf("over £%s at %s%%", lower.StringFixed(0), pct)
	}
	return fmt.Sprintf("£%s to £%s at %s%%", lower.StringFixed(0), upper.StringFixed(0), pct)
}
