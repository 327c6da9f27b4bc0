package domain

import (
	"github.com/shopspring/decimal"
)

// TaxYear contains every rate and threshold that applies for one UK tax year.
// A TaxYear is selected per calculation and never mutated afterwards.
type TaxYear struct {
	ID          string `yaml:"id" json:"id"` // e.g. "2024/25"
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	Allowance    AllowanceRules                      `yaml:"allowance" json:"allowance"`
	IncomeTax    IncomeTaxRules                      `yaml:"income_tax" json:"income_tax"`
	ScottishTax  ScottishTaxRules                    `yaml:"scottish_tax" json:"scottish_tax"`
	NI           NationalInsurance                   `yaml:"national_insurance" json:"national_insurance"`
	StudentLoans map[StudentLoanPlan]StudentLoanRule `yaml:"student_loans" json:"student_loans"`
	Pension      QualifyingEarnings                  `yaml:"pension_qualifying_earnings" json:"pension_qualifying_earnings"`
	ChildBenefit ChildBenefitRules                   `yaml:"child_benefit" json:"child_benefit"`
	PropertyTax  PropertyTaxRules                    `yaml:"property_tax" json:"property_tax"`
}

// AllowanceRules describes the personal allowance and its taper.
type AllowanceRules struct {
	PersonalAllowance decimal.Decimal `yaml:"personal_allowance" json:"personal_allowance"`
	TaperThreshold    decimal.Decimal `yaml:"taper_threshold" json:"taper_threshold"`
	BlindPersons      decimal.Decimal `yaml:"blind_persons_allowance" json:"blind_persons_allowance"`
}

// TaperLimit is the income at which the personal allowance is fully withdrawn.
func (a AllowanceRules) TaperLimit() decimal.Decimal {
	return a.TaperThreshold.Add(a.PersonalAllowance.Mul(decimal.NewFromInt(2)))
}

// TaxBand is a band of taxable income. Width is zero for the open-ended top band.
type TaxBand struct {
	Label string          `yaml:"label" json:"label"`
	Width decimal.Decimal `yaml:"width" json:"width"`
	Rate  decimal.Decimal `yaml:"rate" json:"rate"`
}

// IncomeTaxRules are the rest-of-UK bands, applied to income above the allowance.
type IncomeTaxRules struct {
	Bands      []TaxBand       `yaml:"bands" json:"bands"`
	HigherRate decimal.Decimal `yaml:"higher_rate" json:"higher_rate"`
}

// ScottishTaxRules are expressed as gross-income thresholds, the way Revenue Scotland publishes them.
type ScottishTaxRules struct {
	StarterThreshold      decimal.Decimal `yaml:"starter_threshold" json:"starter_threshold"`
	BasicThreshold        decimal.Decimal `yaml:"basic_threshold" json:"basic_threshold"`
	IntermediateThreshold decimal.Decimal `yaml:"intermediate_threshold" json:"intermediate_threshold"`
	HigherThreshold       decimal.Decimal `yaml:"higher_threshold" json:"higher_threshold"`
	AdvancedThreshold     decimal.Decimal `yaml:"advanced_threshold" json:"advanced_threshold"`

	StarterRate      decimal.Decimal `yaml:"starter_rate" json:"starter_rate"`
	BasicRate        decimal.Decimal `yaml:"basic_rate" json:"basic_rate"`
	IntermediateRate decimal.Decimal `yaml:"intermediate_rate" json:"intermediate_rate"`
	HigherRate       decimal.Decimal `yaml:"higher_rate" json:"higher_rate"`
	AdvancedRate     decimal.Decimal `yaml:"advanced_rate" json:"advanced_rate"`
	TopRate          decimal.Decimal `yaml:"top_rate" json:"top_rate"`

	// StarterRateCap is the most tax the starter band may produce; anything above it
	// is re-rated at AdvancedRate.
	StarterRateCap decimal.Decimal `yaml:"starter_rate_cap" json:"starter_rate_cap"`
}

// NIThresholds is one set of primary threshold / upper earnings limit values.
type NIThresholds struct {
	Lower decimal.Decimal `yaml:"lower" json:"lower"`
	Upper decimal.Decimal `yaml:"upper" json:"upper"`
}

// NationalInsurance holds Class 1 employee rules. Monthly thresholds are published
// separately and are not annual/12.
type NationalInsurance struct {
	Annual     NIThresholds    `yaml:"annual" json:"annual"`
	Monthly    NIThresholds    `yaml:"monthly" json:"monthly"`
	BasicRate  decimal.Decimal `yaml:"basic_rate" json:"basic_rate"`
	HigherRate decimal.Decimal `yaml:"higher_rate" json:"higher_rate"`
}

// StudentLoanRule is the repayment threshold and rate for one plan.
type StudentLoanRule struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
}

// QualifyingEarnings is the auto-enrolment band.
type QualifyingEarnings struct {
	Lower decimal.Decimal `yaml:"lower" json:"lower"`
	Upper decimal.Decimal `yaml:"upper" json:"upper"`
}

// ChildBenefitRules holds weekly rates and the High Income Child Benefit Charge.
type ChildBenefitRules struct {
	FirstChildWeekly      decimal.Decimal `yaml:"first_child_weekly" json:"first_child_weekly"`
	AdditionalChildWeekly decimal.Decimal `yaml:"additional_child_weekly" json:"additional_child_weekly"`
	ChargeThreshold       decimal.Decimal `yaml:"charge_threshold" json:"charge_threshold"`
	ChargeStep            decimal.Decimal `yaml:"charge_step" json:"charge_step"` // income per 1% of charge
}

// PriceBand is a slice of a property price. Upper is zero for the open-ended top band.
type PriceBand struct {
	Upper decimal.Decimal `yaml:"upper" json:"upper"`
	Rate  decimal.Decimal `yaml:"rate" json:"rate"`
}

// TransactionTaxRules is a single property transaction tax regime.
type TransactionTaxRules struct {
	Name  string      `yaml:"name" json:"name"`
	Bands []PriceBand `yaml:"bands" json:"bands"`

	// FirstTimeBuyerBands replace Bands when the buyer qualifies and the price
	// does not exceed FirstTimeBuyerLimit (zero means no limit).
	FirstTimeBuyerBands []PriceBand     `yaml:"first_time_buyer_bands" json:"first_time_buyer_bands"`
	FirstTimeBuyerLimit decimal.Decimal `yaml:"first_time_buyer_limit" json:"first_time_buyer_limit"`

	// AdditionalRate is added to every band (SDLT higher rates). AdditionalFlatRate
	// is charged on the whole price instead (LBTT Additional Dwelling Supplement).
	AdditionalRate     decimal.Decimal `yaml:"additional_rate" json:"additional_rate"`
	AdditionalFlatRate decimal.Decimal `yaml:"additional_flat_rate" json:"additional_flat_rate"`
	AdditionalMinPrice decimal.Decimal `yaml:"additional_min_price" json:"additional_min_price"`
}

// PropertyTaxRules contains the regime for each region.
type PropertyTaxRules struct {
	England  TransactionTaxRules `yaml:"england" json:"england"`
	Scotland TransactionTaxRules `yaml:"scotland" json:"scotland"`
}

// TaxYearFile is the on-disk format for overriding or adding tax years.
type TaxYearFile struct {
	TaxYears []TaxYear `yaml:"tax_years" json:"tax_years"`
}
