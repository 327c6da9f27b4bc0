package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
)

// contributionStrategy computes a scheme's annual contribution from gross pay
type contributionStrategy func(pc *PensionCalculator, gross decimal.Decimal, spec *domain.PensionSpec) decimal.Decimal

var contributionStrategies = map[domain.PensionScheme]contributionStrategy{
	domain.SchemeAutoEnrolment:          (*PensionCalculator).autoEnrolment,
	domain.SchemeAutoUnbanded:           (*PensionCalculator).unbanded,
	domain.SchemeReliefAtSource:         (*PensionCalculator).reliefAtSource,
	domain.SchemeReliefAtSourceUnbanded: (*PensionCalculator).unbanded,
	domain.SchemeSalarySacrifice:        (*PensionCalculator).unbanded,
	domain.SchemePersonal:               (*PensionCalculator).unbanded,
}

// PensionCalculator computes employee pension contributions
type PensionCalculator struct {
	Band domain.QualifyingEarnings
}

// NewPensionCalculator creates a pension calculator using the qualifying earnings band
func NewPensionCalculator(band domain.QualifyingEarnings) *PensionCalculator {
	return &PensionCalculator{Band: band}
}

// CalculatePensionContribution returns the annual contribution for a scheme.
// A nil spec, the none scheme and a zero value all contribute nothing.
func (pc *PensionCalculator) CalculatePensionContribution(gross decimal.Decimal, spec *domain.PensionSpec) decimal.Decimal {
	if spec == nil || !spec.Value.IsPositive() {
		return decimal.Zero
	}
	strategy, ok := contributionStrategies[spec.Scheme]
	if !ok {
		return decimal.Zero
	}
	return strategy(pc, gross, spec)
}

// autoEnrolment works on monthly pay, so the band edges are the annual limits / 12.
// Banded schemes are always a percentage.
func (pc *PensionCalculator) autoEnrolment(gross decimal.Decimal, spec *domain.PensionSpec) decimal.Decimal {
	twelve := decimal.NewFromInt(12)
	monthlyGross := gross.Div(twelve)
	lower := pc.Band.Lower.Div(twelve)
	upper := pc.Band.Upper.Div(twelve)
	rate := spec.Value.Div(hundred)

	switch {
	case monthlyGross.LessThan(lower):
		return decimal.Zero
	case monthlyGross.GreaterThan(upper):
		return upper.Sub(lower).Mul(rate).Mul(twelve)
	default:
		return monthlyGross.Sub(lower).Mul(rate).Mul(twelve)
	}
}

func (pc *PensionCalculator) reliefAtSource(gross decimal.Decimal, spec *domain.PensionSpec) decimal.Decimal {
	rate := spec.Value.Div(hundred)
	switch {
	case gross.LessThan(pc.Band.Lower):
		return decimal.Zero
	case gross.GreaterThan(pc.Band.Upper):
		return pc.Band.Upper.Sub(pc.Band.Lower).Mul(rate)
	default:
		return gross.Sub(pc.Band.Lower).Mul(rate)
	}
}

func (pc *PensionCalculator) unbanded(gross decimal.Decimal, spec *domain.PensionSpec) decimal.Decimal {
	if spec.Kind() == domain.ValueNominal {
		return spec.Value
	}
	return gross.Mul(spec.Value).Div(hundred)
}
