package domain

import (
	"github.com/shopspring/decimal"
)

// ContributionKind says whether a pension contribution is a fixed monthly amount or a share of salary
type ContributionKind string

const (
	ContributionPercentage ContributionKind = "percentage"
	ContributionFixed      ContributionKind = "fixed"
)

// PersonalInfo holds the saver's details for a pension projection
type PersonalInfo struct {
	CurrentAge           int              `yaml:"current_age" json:"current_age"`
	RetirementAge        int              `yaml:"retirement_age" json:"retirement_age"`
	CurrentSalary        decimal.Decimal  `yaml:"current_salary" json:"current_salary"`
	CurrentPensionValue  decimal.Decimal  `yaml:"current_pension_value" json:"current_pension_value"`
	EmployeeContribution decimal.Decimal  `yaml:"employee_contribution" json:"employee_contribution"`
	EmployeeKind         ContributionKind `yaml:"employee_contribution_kind" json:"employee_contribution_kind"`
	EmployerContribution decimal.Decimal  `yaml:"employer_contribution" json:"employer_contribution"`
	EmployerKind         ContributionKind `yaml:"employer_contribution_kind" json:"employer_contribution_kind"`
	InflationRate        decimal.Decimal  `yaml:"inflation_rate" json:"inflation_rate"`         // percent
	SalaryGrowthRate     decimal.Decimal  `yaml:"salary_growth_rate" json:"salary_growth_rate"` // percent
}

// AssetAllocation splits the pot between asset classes, in percent. The caller
// keeps the total at or below 100.
type AssetAllocation struct {
	Stocks decimal.Decimal `yaml:"stocks" json:"stocks"`
	Bonds  decimal.Decimal `yaml:"bonds" json:"bonds"`
	Cash   decimal.Decimal `yaml:"cash" json:"cash"`
}

// ExpectedReturns are the annual returns per asset class, in percent
type ExpectedReturns struct {
	Stocks decimal.Decimal `yaml:"stocks" json:"stocks"`
	Bonds  decimal.Decimal `yaml:"bonds" json:"bonds"`
	Cash   decimal.Decimal `yaml:"cash" json:"cash"`
}

// AssetBreakdown is the pot value held in each asset class
type AssetBreakdown struct {
	Stocks decimal.Decimal `json:"stocks"`
	Bonds  decimal.Decimal `json:"bonds"`
	Cash   decimal.Decimal `json:"cash"`
}

// ProjectionYear is one year of age in a pension projection
type ProjectionYear struct {
	Age                             int             `json:"age"`
	NominalValue                    decimal.Decimal `json:"nominal_value"`
	RealValue                       decimal.Decimal `json:"real_value"`
	CumulativeUserContributions     decimal.Decimal `json:"cumulative_user_contributions"`
	CumulativeEmployerContributions decimal.Decimal `json:"cumulative_employer_contributions"`
	CumulativeGrowth                decimal.Decimal `json:"cumulative_growth"`
	Breakdown                       AssetBreakdown  `json:"breakdown"`
}

// ProjectionSummary describes the pot at retirement
type ProjectionSummary struct {
	ProjectedValue             decimal.Decimal `json:"projected_value"`
	RealValue                  decimal.Decimal `json:"real_value"`
	TotalUserContributions     decimal.Decimal `json:"total_user_contributions"`
	TotalEmployerContributions decimal.Decimal `json:"total_employer_contributions"`
	TotalInvestmentGrowth      decimal.Decimal `json:"total_investment_growth"`
	FinalBreakdown             AssetBreakdown  `json:"final_breakdown"`

	// Shares of the final pot, in percent. Zero when nothing has been saved.
	UserShare     decimal.Decimal `json:"user_share"`
	EmployerShare decimal.Decimal `json:"employer_share"`
	GrowthShare   decimal.Decimal `json:"growth_share"`
}

// ProjectionResult is the full pension projection
type ProjectionResult struct {
	WeightedReturn    decimal.Decimal   `json:"weighted_return"`
	YearlyProjections []ProjectionYear  `json:"yearly_projections"`
	Summary           ProjectionSummary `json:"summary"`
}
