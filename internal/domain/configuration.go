package domain

import (
	"github.com/shopspring/decimal"
)

// Scenario is a named take-home pay calculation
type Scenario struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	TaxInputs   `yaml:",inline"`
}

// DeepCopy returns a copy that shares no slices or pointers with s
func (s *Scenario) DeepCopy() *Scenario {
	if s == nil {
		return nil
	}
	c := *s
	if s.StudentLoanPlans != nil {
		c.StudentLoanPlans = append([]StudentLoanPlan(nil), s.StudentLoanPlans...)
	}
	if s.Pension != nil {
		pension := *s.Pension
		c.Pension = &pension
	}
	return &c
}

// ProjectionInputs groups everything the pension projection needs
type ProjectionInputs struct {
	Personal   PersonalInfo    `yaml:"personal" json:"personal"`
	Allocation AssetAllocation `yaml:"allocation" json:"allocation"`
	Returns    ExpectedReturns `yaml:"returns" json:"returns"`

	// ExpectedReturn replaces the allocation-weighted return when set (percent).
	ExpectedReturn *decimal.Decimal `yaml:"expected_return,omitempty" json:"expected_return,omitempty"`
}

// CarFinanceScenario selects the product along with the agreement terms
type CarFinanceScenario struct {
	Product          string `yaml:"product" json:"product"` // pcp or hp
	CarFinanceInputs `yaml:",inline"`
}

// Configuration is the top level scenario file. Every section is optional and
// only the sections present are calculated.
type Configuration struct {
	TaxYear   string     `yaml:"tax_year" json:"tax_year"`
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`

	Mortgage        *MortgageInputs         `yaml:"mortgage,omitempty" json:"mortgage,omitempty"`
	PropertyTax     *PropertyTaxInputs      `yaml:"property_tax,omitempty" json:"property_tax,omitempty"`
	Projection      *ProjectionInputs       `yaml:"pension_projection,omitempty" json:"pension_projection,omitempty"`
	Compound        *CompoundInterestInputs `yaml:"compound_interest,omitempty" json:"compound_interest,omitempty"`
	PurchasingPower *PurchasingPowerInputs  `yaml:"purchasing_power,omitempty" json:"purchasing_power,omitempty"`
	ChildBenefit    *ChildBenefitInputs     `yaml:"child_benefit,omitempty" json:"child_benefit,omitempty"`
	Childcare       *ChildcareInputs        `yaml:"childcare,omitempty" json:"childcare,omitempty"`
	CarFinance      *CarFinanceScenario     `yaml:"car_finance,omitempty" json:"car_finance,omitempty"`
}

// Report gathers the results of every section of a Configuration
type Report struct {
	TaxYear         string                  `json:"tax_year"`
	TakeHome        []ScenarioResult        `json:"take_home,omitempty"`
	Mortgage        *MortgageResults        `json:"mortgage,omitempty"`
	PropertyTax     *PropertyTaxResult      `json:"property_tax,omitempty"`
	Projection      *ProjectionResult       `json:"pension_projection,omitempty"`
	Compound        *CompoundInterestResult `json:"compound_interest,omitempty"`
	PurchasingPower *PurchasingPowerResult  `json:"purchasing_power,omitempty"`
	ChildBenefit    *ChildBenefitResult     `json:"child_benefit,omitempty"`
	Childcare       *ChildcareResult        `json:"childcare,omitempty"`
	CarFinance      *CarFinanceResult       `json:"car_finance,omitempty"`
}

// ScenarioResult pairs a scenario with its take-home result
type ScenarioResult struct {
	Name   string          `json:"name"`
	Result *TakeHomeResult `json:"result"`
}
