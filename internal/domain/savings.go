package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CompoundingFrequency is how often interest is added to a balance
type CompoundingFrequency string

const (
	CompoundDaily        CompoundingFrequency = "daily"
	CompoundWeekly       CompoundingFrequency = "weekly"
	CompoundMonthly      CompoundingFrequency = "monthly"
	CompoundQuarterly    CompoundingFrequency = "quarterly"
	CompoundSemiAnnually CompoundingFrequency = "semi-annually"
	CompoundAnnually     CompoundingFrequency = "annually"
)

var periodsPerYear = map[CompoundingFrequency]int{
	CompoundDaily:        365,
	CompoundWeekly:       52,
	CompoundMonthly:      12,
	CompoundQuarterly:    4,
	CompoundSemiAnnually: 2,
	CompoundAnnually:     1,
}

// PeriodsPerYear returns the number of compounding periods in a year. Unknown
// frequencies compound monthly.
func (f CompoundingFrequency) PeriodsPerYear() int {
	if n, ok := periodsPerYear[f]; ok {
		return n
	}
	return 12
}

// ParseCompoundingFrequency resolves a frequency name.
func ParseCompoundingFrequency(s string) (CompoundingFrequency, error) {
	f := CompoundingFrequency(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return CompoundMonthly, nil
	}
	if f == "semiannually" || f == "semi_annually" {
		return CompoundSemiAnnually, nil
	}
	if _, ok := periodsPerYear[f]; !ok {
		return "", fmt.Errorf("unknown compounding frequency %q", s)
	}
	return f, nil
}

// CompoundInterestInputs describes a savings plan
type CompoundInterestInputs struct {
	InitialInvestment   decimal.Decimal      `yaml:"initial_investment" json:"initial_investment"`
	MonthlyContribution decimal.Decimal      `yaml:"monthly_contribution" json:"monthly_contribution"`
	AnnualInterestRate  decimal.Decimal      `yaml:"annual_interest_rate" json:"annual_interest_rate"` // percent
	Frequency           CompoundingFrequency `yaml:"frequency" json:"frequency"`
	Timeframe           int                  `yaml:"timeframe" json:"timeframe"`
	TimeframeInMonths   bool                 `yaml:"timeframe_in_months" json:"timeframe_in_months"`
}

// CompoundYear is the state of the balance at the end of a year, or at the final period
type CompoundYear struct {
	Year                int             `json:"year"`
	Balance             decimal.Decimal `json:"balance"`
	Contributions       decimal.Decimal `json:"contributions"`
	InterestEarned      decimal.Decimal `json:"interest_earned"`
	TotalContributions  decimal.Decimal `json:"total_contributions"`
	TotalInterestEarned decimal.Decimal `json:"total_interest_earned"`
}

// CompoundInterestResult is the outcome of a savings plan
type CompoundInterestResult struct {
	FinalBalance        decimal.Decimal `json:"final_balance"`
	TotalContributions  decimal.Decimal `json:"total_contributions"`
	TotalInterestEarned decimal.Decimal `json:"total_interest_earned"`
	YearlyData          []CompoundYear  `json:"yearly_data"`
}

// InflationIndex selects the price index used for deflation
type InflationIndex string

const (
	IndexCPI InflationIndex = "cpi"
	IndexRPI InflationIndex = "rpi"
)

// ParseInflationIndex resolves an index name.
func ParseInflationIndex(s string) (InflationIndex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cpi":
		return IndexCPI, nil
	case "rpi":
		return IndexRPI, nil
	}
	return "", fmt.Errorf("unknown inflation index %q (want cpi or rpi)", s)
}

// PurchasingPowerInputs asks what an amount in StartYear is worth in EndYear
type PurchasingPowerInputs struct {
	Amount    decimal.Decimal `yaml:"amount" json:"amount"`
	StartYear int             `yaml:"start_year" json:"start_year"`
	EndYear   int             `yaml:"end_year" json:"end_year"`
	Index     InflationIndex  `yaml:"index" json:"index"`
}

// InflationYear is one row of the purchasing power breakdown
type InflationYear struct {
	Year          int             `json:"year"`
	Amount        decimal.Decimal `json:"amount"`
	InflationRate decimal.Decimal `json:"inflation_rate"`
}

// PurchasingPowerResult is the inflation-adjusted value of an amount
type PurchasingPowerResult struct {
	StartYear        int             `json:"start_year"`
	EndYear          int             `json:"end_year"`
	OriginalAmount   decimal.Decimal `json:"original_amount"`
	AdjustedAmount   decimal.Decimal `json:"adjusted_amount"`
	PercentageChange decimal.Decimal `json:"percentage_change"`
	InflationFactor  decimal.Decimal `json:"inflation_factor"`
	AverageInflation decimal.Decimal `json:"average_inflation"`
	YearlyBreakdown  []InflationYear `json:"yearly_breakdown"`
}
