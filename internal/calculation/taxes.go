package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
)

// TaxBracket is a band of taxable income. A zero Max means the band is open-ended.
type TaxBracket struct {
	Label string
	Min   decimal.Decimal
	Max   decimal.Decimal
	Rate  decimal.Decimal
}

// amountIn returns the part of taxable that falls inside the bracket
func (b TaxBracket) amountIn(taxable decimal.Decimal) decimal.Decimal {
	if taxable.LessThanOrEqual(b.Min) {
		return decimal.Zero
	}
	upper := taxable
	if !b.Max.IsZero() {
		upper = decimal.Min(taxable, b.Max)
	}
	return upper.Sub(b.Min)
}

// bracketsFromBands turns band widths into cumulative brackets over taxable income
func bracketsFromBands(bands []domain.TaxBand) []TaxBracket {
	brackets := make([]TaxBracket, 0, len(bands))
	lower := decimal.Zero
	for _, band := range bands {
		b := TaxBracket{Label: band.Label, Min: lower, Rate: band.Rate}
		if !band.Width.IsZero() {
			b.Max = lower.Add(band.Width)
			lower = b.Max
		}
		brackets = append(brackets, b)
	}
	return brackets
}

// IncomeTaxCalculator handles income tax for England, Wales and Northern Ireland
type IncomeTaxCalculator struct {
	Allowance *AllowanceCalculator
	Brackets  []TaxBracket
}

// NewIncomeTaxCalculator creates a rest-of-UK income tax calculator
func NewIncomeTaxCalculator(allowance *AllowanceCalculator, rules domain.IncomeTaxRules) *IncomeTaxCalculator {
	return &IncomeTaxCalculator{Allowance: allowance, Brackets: bracketsFromBands(rules.Bands)}
}

// CalculateTax calculates income tax on an annual income after any pre-tax deductions.
// Taxable income fills the lowest open band first.
func (itc *IncomeTaxCalculator) CalculateTax(income decimal.Decimal) domain.TaxResult {
	allowance := itc.Allowance.PersonalAllowance(income)
	taxable := decimal.Max(decimal.Zero, income.Sub(allowance))

	result := domain.TaxResult{Tax: decimal.Zero, Breakdown: make([]domain.BandAmount, 0, len(itc.Brackets))}
	for _, bracket := range itc.Brackets {
		amount := bracket.amountIn(taxable).Mul(bracket.Rate)
		result.Breakdown = append(result.Breakdown, domain.BandAmount{Label: bracket.Label, Amount: amount})
		result.Tax = result.Tax.Add(amount)
	}
	return result
}

// ScottishTaxCalculator handles the six Scottish income tax bands
type ScottishTaxCalculator struct {
	Allowance *AllowanceCalculator
	Rules     domain.ScottishTaxRules
}

// NewScottishTaxCalculator creates a Scottish income tax calculator
func NewScottishTaxCalculator(allowance *AllowanceCalculator, rules domain.ScottishTaxRules) *ScottishTaxCalculator {
	return &ScottishTaxCalculator{Allowance: allowance, Rules: rules}
}

const (
	starterBand = iota
	basicBand
	intermediateBand
	higherBand
	advancedBand
	topBand
)

var scottishBandLabels = [...]string{
	"Starter Rate",
	"Basic Rate",
	"Intermediate Rate",
	"Higher Rate",
	"Advanced Rate",
	"Top Rate",
}

// CalculateScottishTax calculates Scottish income tax.
//
// The starter band runs from the allowance up to the starter threshold, so it widens
// as the allowance tapers away. Tax from that band is capped at StarterRateCap; the
// excess is converted back to income at the starter rate, taxed at the advanced rate
// and reported in the advanced band.
func (stc *ScottishTaxCalculator) CalculateScottishTax(income decimal.Decimal) domain.TaxResult {
	r := stc.Rules
	allowance := stc.Allowance.PersonalAllowance(income)
	taxable := decimal.Max(decimal.Zero, income.Sub(allowance))

	var amounts [len(scottishBandLabels)]decimal.Decimal

	if taxable.GreaterThan(decimal.Zero) {
		starterWidth := decimal.Max(decimal.Zero, r.StarterThreshold.Sub(allowance))
		starterTaxable := decimal.Min(taxable, starterWidth)
		starterTax := starterTaxable.Mul(r.StarterRate)
		if starterTax.GreaterThan(r.StarterRateCap) {
			excess := starterTax.Sub(r.StarterRateCap)
			starterTax = r.StarterRateCap
			if r.StarterRate.IsPositive() {
				amounts[advancedBand] = excess.Div(r.StarterRate).Mul(r.AdvancedRate)
			}
		}
		amounts[starterBand] = starterTax
		taxable = taxable.Sub(starterTaxable)
	}

	bands := []struct {
		index int
		width decimal.Decimal
		rate  decimal.Decimal
	}{
		{basicBand, r.BasicThreshold.Sub(r.StarterThreshold), r.BasicRate},
		{intermediateBand, r.IntermediateThreshold.Sub(r.BasicThreshold), r.IntermediateRate},
		{higherBand, r.HigherThreshold.Sub(r.IntermediateThreshold), r.HigherRate},
		{advancedBand, r.AdvancedThreshold.Sub(r.HigherThreshold), r.AdvancedRate},
	}
	for _, band := range bands {
		if !taxable.GreaterThan(decimal.Zero) {
			break
		}
		inBand := decimal.Min(taxable, band.width)
		amounts[band.index] = amounts[band.index].Add(inBand.Mul(band.rate))
		taxable = taxable.Sub(inBand)
	}
	if taxable.GreaterThan(decimal.Zero) {
		amounts[topBand] = taxable.Mul(r.TopRate)
	}

	result := domain.TaxResult{Tax: decimal.Zero, Breakdown: make([]domain.BandAmount, 0, len(amounts))}
	for i, amount := range amounts {
		result.Breakdown = append(result.Breakdown, domain.BandAmount{Label: scottishBandLabels[i], Amount: amount})
		result.Tax = result.Tax.Add(amount)
	}
	return result
}

// ComprehensiveTaxCalculator bundles every payroll calculator for one tax year
type ComprehensiveTaxCalculator struct {
	TaxYear      domain.TaxYear
	Allowance    *AllowanceCalculator
	IncomeTax    *IncomeTaxCalculator
	ScottishTax  *ScottishTaxCalculator
	NI           *NICalculator
	StudentLoans *StudentLoanCalculator
	Pension      *PensionCalculator
}

// NewComprehensiveTaxCalculator creates the calculators for a tax year
func NewComprehensiveTaxCalculator(ty domain.TaxYear) *ComprehensiveTaxCalculator {
	allowance := NewAllowanceCalculator(ty.Allowance)
	return &ComprehensiveTaxCalculator{
		TaxYear:      ty,
		Allowance:    allowance,
		IncomeTax:    NewIncomeTaxCalculator(allowance, ty.IncomeTax),
		ScottishTax:  NewScottishTaxCalculator(allowance, ty.ScottishTax),
		NI:           NewNICalculator(ty.NI),
		StudentLoans: NewStudentLoanCalculator(ty.StudentLoans),
		Pension:      NewPensionCalculator(ty.Pension),
	}
}

// PersonalAllowance returns the tapered personal allowance
func (ctc *ComprehensiveTaxCalculator) PersonalAllowance(income decimal.Decimal) decimal.Decimal {
	return ctc.Allowance.PersonalAllowance(income)
}

// CalculateTax calculates rest-of-UK income tax
func (ctc *ComprehensiveTaxCalculator) CalculateTax(income decimal.Decimal) domain.TaxResult {
	return ctc.IncomeTax.CalculateTax(income)
}

// CalculateScottishTax calculates Scottish income tax
func (ctc *ComprehensiveTaxCalculator) CalculateScottishTax(income decimal.Decimal) domain.TaxResult {
	return ctc.ScottishTax.CalculateScottishTax(income)
}

// CalculateIncomeTax picks the schedule for the taxpayer's residence
func (ctc *ComprehensiveTaxCalculator) CalculateIncomeTax(income decimal.Decimal, scottish bool) domain.TaxResult {
	if scottish {
		return ctc.CalculateScottishTax(income)
	}
	return ctc.CalculateTax(income)
}

// HigherRate is the marginal rate used for the allowance taper correction
func (ctc *ComprehensiveTaxCalculator) HigherRate(scottish bool) decimal.Decimal {
	if scottish {
		return ctc.TaxYear.ScottishTax.HigherRate
	}
	return ctc.TaxYear.IncomeTax.HigherRate
}

// CalculateNI calculates annual employee National Insurance
func (ctc *ComprehensiveTaxCalculator) CalculateNI(annualSalary decimal.Decimal) decimal.Decimal {
	return ctc.NI.CalculateNI(annualSalary)
}

// CalculateMonthlyNI calculates National Insurance on a single month's pay
func (ctc *ComprehensiveTaxCalculator) CalculateMonthlyNI(monthlySalary decimal.Decimal) decimal.Decimal {
	return ctc.NI.CalculateMonthlyNI(monthlySalary)
}

// CalculateTotalStudentLoans calculates repayments across plans
func (ctc *ComprehensiveTaxCalculator) CalculateTotalStudentLoans(income decimal.Decimal, plans []domain.StudentLoanPlan) domain.StudentLoanResult {
	return ctc.StudentLoans.CalculateTotalStudentLoans(income, plans)
}

// CalculatePensionContribution calculates the employee pension contribution
func (ctc *ComprehensiveTaxCalculator) CalculatePensionContribution(gross decimal.Decimal, spec *domain.PensionSpec) decimal.Decimal {
	return ctc.Pension.CalculatePensionContribution(gross, spec)
}
