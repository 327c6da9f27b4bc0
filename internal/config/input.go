package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/calculation"
	"github.com/ukcalc/ukcalc/internal/domain"
	"gopkg.in/yaml.v3"
)

// Limits accepted in scenario files
const (
	MaxMortgageTermMonths = 480
	MaxCarTermMonths      = 120
	MaxChildren           = 20
	MaxAge                = 100
	MinWorkingAge         = 16
	MaxCompoundYears      = 100
)

// InputParser handles parsing of scenario files
type InputParser struct {
	TaxYears *calculation.TaxYearRegistry
}

// NewInputParser creates a new input parser that knows the built-in tax years
func NewInputParser() *InputParser {
	return &InputParser{TaxYears: calculation.NewTaxYearRegistry()}
}

// NewInputParserWithRegistry creates a parser that validates tax years against registry
func NewInputParserWithRegistry(registry *calculation.TaxYearRegistry) *InputParser {
	return &InputParser{TaxYears: registry}
}

// LoadFromFile loads a scenario file from YAML (JSON is accepted as a YAML subset)
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseConfiguration(data)
}

// ParseConfiguration decodes, normalizes and validates a scenario document
func (ip *InputParser) ParseConfiguration(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration checks every section and rewrites enum values to their
// canonical form. All problems are reported together as ValidationErrors.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	v := &validator{}

	if config.TaxYear != "" {
		ip.validateTaxYear(v, "tax_year", config.TaxYear)
	}

	if len(config.Scenarios) == 0 && !hasCalculatorSection(config) {
		v.add("scenarios", "at least one scenario or calculator section is required")
	}

	names := make(map[string]int)
	for i := range config.Scenarios {
		path := fmt.Sprintf("scenarios[%d]", i)
		ip.validateScenario(v, path, &config.Scenarios[i])
		name := config.Scenarios[i].Name
		if prev, ok := names[name]; ok && name != "" {
			v.add(path+".name", "duplicate scenario name %q (also scenarios[%d])", name, prev)
		}
		names[name] = i
	}

	if config.Mortgage != nil {
		validateMortgage(v, "mortgage", config.Mortgage)
	}
	if config.PropertyTax != nil {
		validatePropertyTax(v, "property_tax", config.PropertyTax)
	}
	if config.Projection != nil {
		validateProjection(v, "pension_projection", config.Projection)
	}
	if config.Compound != nil {
		validateCompound(v, "compound_interest", config.Compound)
	}
	if config.PurchasingPower != nil {
		validatePurchasingPower(v, "purchasing_power", config.PurchasingPower)
	}
	if config.ChildBenefit != nil {
		validateChildBenefit(v, "child_benefit", config.ChildBenefit)
	}
	if config.Childcare != nil {
		validateChildcare(v, "childcare", config.Childcare)
	}
	if config.CarFinance != nil {
		validateCarFinance(v, "car_finance", config.CarFinance)
	}

	return v.err()
}

func hasCalculatorSection(c *domain.Configuration) bool {
	return c.Mortgage != nil || c.PropertyTax != nil || c.Projection != nil ||
		c.Compound != nil || c.PurchasingPower != nil || c.ChildBenefit != nil ||
		c.Childcare != nil || c.CarFinance != nil
}

func (ip *InputParser) validateTaxYear(v *validator, path, id string) {
	if ip.TaxYears == nil {
		return
	}
	if _, err := ip.TaxYears.Get(id); err != nil {
		v.add(path, "%v", err)
	}
}

func (ip *InputParser) validateScenario(v *validator, path string, s *domain.Scenario) {
	if strings.TrimSpace(s.Name) == "" {
		v.add(path+".name", "is required")
	}
	if s.TaxYear != "" {
		ip.validateTaxYear(v, path+".tax_year", s.TaxYear)
	}
	validateTaxInputs(v, path, &s.TaxInputs)
}

func validateTaxInputs(v *validator, path string, in *domain.TaxInputs) {
	v.nonNegative(path+".gross_salary", in.GrossSalary)
	v.nonNegative(path+".gross_bonus", in.GrossBonus)

	seen := make(map[domain.StudentLoanPlan]bool)
	plans := in.StudentLoanPlans[:0]
	for i, raw := range in.StudentLoanPlans {
		plan, err := domain.ParseStudentLoanPlan(string(raw))
		if err != nil {
			v.add(fmt.Sprintf("%s.student_loan_plans[%d]", path, i), "%v", err)
			continue
		}
		if seen[plan] {
			continue
		}
		seen[plan] = true
		plans = append(plans, plan)
	}
	in.StudentLoanPlans = plans

	if in.Pension != nil {
		validatePension(v, path+".pension", in.Pension)
	}
}

func validatePension(v *validator, path string, p *domain.PensionSpec) {
	scheme, err := domain.ParsePensionScheme(string(p.Scheme))
	if err != nil {
		v.add(path+".scheme", "%v", err)
	} else {
		p.Scheme = scheme
	}

	switch kind := domain.PensionValueKind(strings.ToLower(strings.TrimSpace(string(p.ValueKind)))); kind {
	case "", domain.ValuePercentage:
		p.ValueKind = domain.ValuePercentage
		v.percentage(path+".value", p.Value)
	case domain.ValueNominal:
		p.ValueKind = kind
		v.nonNegative(path+".value", p.Value)
		if scheme.Banded() {
			v.add(path+".value_kind", "scheme %s only takes a percentage", scheme)
		}
	default:
		v.add(path+".value_kind", "unknown value kind %q (want percentage or nominal)", p.ValueKind)
	}
}

func validateMortgage(v *validator, path string, m *domain.MortgageInputs) {
	v.positive(path+".home_price", m.HomePrice)
	v.nonNegative(path+".deposit", m.Deposit)
	if m.Deposit.GreaterThanOrEqual(m.HomePrice) && m.HomePrice.IsPositive() {
		v.add(path+".deposit", "must be less than the home price")
	}
	v.intRange(path+".term_months", m.TermMonths, 1, MaxMortgageTermMonths)
	v.percentage(path+".apr", m.APR)
	v.nonNegative(path+".monthly_overpayment", m.Overpayment)
}

func validatePropertyTax(v *validator, path string, p *domain.PropertyTaxInputs) {
	v.nonNegative(path+".home_price", p.HomePrice)
	region, err := domain.ParseRegion(string(p.Region))
	if err != nil {
		v.add(path+".region", "%v", err)
	} else {
		p.Region = region
	}
	if p.FirstTimeBuyer && p.AdditionalProperty {
		v.add(path+".additional_property", "a first time buyer cannot be buying an additional property")
	}
}

func validateProjection(v *validator, path string, p *domain.ProjectionInputs) {
	personal := &p.Personal
	v.intRange(path+".personal.current_age", personal.CurrentAge, MinWorkingAge, MaxAge)
	v.intRange(path+".personal.retirement_age", personal.RetirementAge, MinWorkingAge, MaxAge)
	if personal.RetirementAge < personal.CurrentAge {
		v.add(path+".personal.retirement_age", "cannot be before the current age")
	}
	v.nonNegative(path+".personal.current_salary", personal.CurrentSalary)
	v.nonNegative(path+".personal.current_pension_value", personal.CurrentPensionValue)
	validateContribution(v, path+".personal.employee_contribution", personal.EmployeeContribution, &personal.EmployeeKind)
	validateContribution(v, path+".personal.employer_contribution", personal.EmployerContribution, &personal.EmployerKind)

	if p.ExpectedReturn != nil {
		return
	}
	v.percentage(path+".allocation.stocks", p.Allocation.Stocks)
	v.percentage(path+".allocation.bonds", p.Allocation.Bonds)
	v.percentage(path+".allocation.cash", p.Allocation.Cash)
	total := p.Allocation.Stocks.Add(p.Allocation.Bonds).Add(p.Allocation.Cash)
	if total.GreaterThan(hundred) {
		v.add(path+".allocation", "allocations add up to %s%%, more than 100%%", total)
	}
}

func validateContribution(v *validator, path string, value decimal.Decimal, kind *domain.ContributionKind) {
	switch k := domain.ContributionKind(strings.ToLower(strings.TrimSpace(string(*kind)))); k {
	case "", domain.ContributionPercentage:
		*kind = domain.ContributionPercentage
		v.percentage(path, value)
	case domain.ContributionFixed:
		*kind = k
		v.nonNegative(path, value)
	default:
		v.add(path+"_kind", "unknown contribution kind %q (want percentage or fixed)", *kind)
	}
}

func validateCompound(v *validator, path string, c *domain.CompoundInterestInputs) {
	v.nonNegative(path+".initial_investment", c.InitialInvestment)
	v.nonNegative(path+".monthly_contribution", c.MonthlyContribution)
	v.percentage(path+".annual_interest_rate", c.AnnualInterestRate)
	freq, err := domain.ParseCompoundingFrequency(string(c.Frequency))
	if err != nil {
		v.add(path+".frequency", "%v", err)
	} else {
		c.Frequency = freq
	}
	maxTimeframe := MaxCompoundYears
	if c.TimeframeInMonths {
		maxTimeframe *= 12
	}
	v.intRange(path+".timeframe", c.Timeframe, 1, maxTimeframe)
}

func validatePurchasingPower(v *validator, path string, p *domain.PurchasingPowerInputs) {
	v.nonNegative(path+".amount", p.Amount)
	index, err := domain.ParseInflationIndex(string(p.Index))
	if err != nil {
		v.add(path+".index", "%v", err)
	} else {
		p.Index = index
	}
	if p.StartYear <= 0 {
		v.add(path+".start_year", "is required")
	}
	if p.EndYear <= 0 {
		v.add(path+".end_year", "is required")
	}
}

func validateChildBenefit(v *validator, path string, c *domain.ChildBenefitInputs) {
	v.intRange(path+".number_of_children", c.NumberOfChildren, 0, MaxChildren)
	v.nonNegative(path+".your_income", c.YourIncome)
	if c.PartnerIncome != nil {
		v.nonNegative(path+".partner_income", *c.PartnerIncome)
	}
}

func validateChildcare(v *validator, path string, c *domain.ChildcareInputs) {
	v.intRange(path+".year", c.Year, 1900, 2200)
	v.intRange(path+".month", int(c.Month), 1, 12)
	v.nonNegative(path+".full_day_cost", c.FullDayCost)
	v.nonNegative(path+".half_day_cost", c.HalfDayCost)
	if len(c.Children) == 0 {
		v.add(path+".children", "at least one child is required")
	}
	for i := range c.Children {
		childPath := fmt.Sprintf("%s.children[%d]", path, i)
		child := &c.Children[i]
		if i == 0 && child.SameSchedule {
			v.add(childPath+".same_schedule", "the first child has no schedule to share")
		}
		validateWeek(v, childPath+".schedule", &child.Schedule)
	}
}

func validateWeek(v *validator, path string, w *domain.WeekSchedule) {
	days := []struct {
		name string
		day  *domain.CareDay
	}{
		{"monday", &w.Monday},
		{"tuesday", &w.Tuesday},
		{"wednesday", &w.Wednesday},
		{"thursday", &w.Thursday},
		{"friday", &w.Friday},
	}
	for _, d := range days {
		session, err := domain.ParseCareDay(string(*d.day))
		if err != nil {
			v.add(path+"."+d.name, "%v", err)
			continue
		}
		*d.day = session
	}
}

func validateCarFinance(v *validator, path string, c *domain.CarFinanceScenario) {
	switch product := strings.ToLower(strings.TrimSpace(c.Product)); product {
	case "", "pcp":
		c.Product = "pcp"
	case "hp":
		c.Product = product
	default:
		v.add(path+".product", "unknown product %q (want pcp or hp)", c.Product)
	}
	v.positive(path+".car_value", c.CarValue)
	v.percentage(path+".deposit_percentage", c.DepositPercentage)
	v.intRange(path+".term_months", c.TermMonths, 1, MaxCarTermMonths)
	if c.APR != nil {
		v.percentage(path+".apr", *c.APR)
	}
}
