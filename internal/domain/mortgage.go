package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MortgageInputs describes a mortgage. Deposit must be below HomePrice; callers validate that.
type MortgageInputs struct {
	HomePrice    decimal.Decimal `yaml:"home_price" json:"home_price"`
	Deposit      decimal.Decimal `yaml:"deposit" json:"deposit"`
	TermMonths   int             `yaml:"term_months" json:"term_months"`
	APR          decimal.Decimal `yaml:"apr" json:"apr"` // percent, 4.5 = 4.5%
	Overpayment  decimal.Decimal `yaml:"monthly_overpayment" json:"monthly_overpayment"`
	InterestOnly bool            `yaml:"interest_only" json:"interest_only"`
}

// AmortizationRow summarises one year of the repayment schedule
type AmortizationRow struct {
	Year             int             `json:"year"`
	PrincipalPaid    decimal.Decimal `json:"principal_paid"`
	InterestPaid     decimal.Decimal `json:"interest_paid"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// MortgageResults is the output of the mortgage calculator
type MortgageResults struct {
	LoanAmount           decimal.Decimal `json:"loan_amount"`
	MonthlyPayment       decimal.Decimal `json:"monthly_payment"`
	PrincipalAndInterest decimal.Decimal `json:"principal_and_interest"`
	TotalPayment         decimal.Decimal `json:"total_payment"`
	TotalInterest        decimal.Decimal `json:"total_interest"`

	// Overpayment results
	TotalInterestWithOverpayment decimal.Decimal `json:"total_interest_with_overpayment"`
	InterestSaved                decimal.Decimal `json:"interest_saved"`
	NewTermMonths                int             `json:"new_term_months"`
	MonthsReduced                int             `json:"months_reduced"`

	// Rate scenarios, one percentage point either side
	HigherRatePayment decimal.Decimal `json:"higher_rate_payment"`
	LowerRatePayment  decimal.Decimal `json:"lower_rate_payment"`

	Schedule []AmortizationRow `json:"schedule"`
}

// Region selects the property transaction tax regime
type Region string

const (
	RegionEngland  Region = "england"
	RegionScotland Region = "scotland"
)

// ParseRegion resolves a region name.
func ParseRegion(s string) (Region, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "england", "sdlt":
		return RegionEngland, nil
	case "scotland", "lbtt":
		return RegionScotland, nil
	}
	return "", fmt.Errorf("unknown region %q (want england or scotland)", s)
}

// PropertyTaxInputs describes a residential purchase
type PropertyTaxInputs struct {
	HomePrice          decimal.Decimal `yaml:"home_price" json:"home_price"`
	FirstTimeBuyer     bool            `yaml:"first_time_buyer" json:"first_time_buyer"`
	AdditionalProperty bool            `yaml:"additional_property" json:"additional_property"`
	Region             Region          `yaml:"region" json:"region"`
}

// PropertyTaxResult is the stamp duty (SDLT) or LBTT due on a purchase
type PropertyTaxResult struct {
	Tax           string          `json:"tax"` // regime name
	StampDuty     decimal.Decimal `json:"stamp_duty"`
	EffectiveRate decimal.Decimal `json:"effective_rate"` // percent of price
	Breakdown     []BandAmount    `json:"breakdown"`
}
