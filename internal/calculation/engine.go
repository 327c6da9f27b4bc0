package calculation

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
	"github.com/ukcalc/ukcalc/internal/refdata"
)

// Working-time divisors for the period breakdown
var (
	weeksPerYear        = decimal.NewFromInt(52)
	workingDaysPerYear  = decimal.NewFromInt(260)
	workingHoursPerYear = decimal.NewFromInt(2080)
)

// CalculationEngine orchestrates the calculators. It holds no mutable state
// after construction and may be shared between goroutines.
type CalculationEngine struct {
	TaxCalc   *ComprehensiveTaxCalculator
	TaxYears  *TaxYearRegistry
	Inflation *PurchasingPowerCalculator
	Logger    Logger
}

// NewCalculationEngine creates an engine for the default tax year
func NewCalculationEngine() *CalculationEngine {
	engine, err := NewCalculationEngineWithRegistry(NewTaxYearRegistry(), DefaultTaxYearID)
	if err != nil {
		// the built-in registry always holds the default year
		panic(err)
	}
	return engine
}

// NewCalculationEngineWithRegistry creates an engine whose default tax year is taxYearID
func NewCalculationEngineWithRegistry(registry *TaxYearRegistry, taxYearID string) (*CalculationEngine, error) {
	ty, err := registry.Get(taxYearID)
	if err != nil {
		return nil, err
	}
	return &CalculationEngine{
		TaxCalc:   NewComprehensiveTaxCalculator(ty),
		TaxYears:  registry,
		Inflation: NewPurchasingPowerCalculator(refdata.Default()),
		Logger:    NopLogger{},
	}, nil
}

// SetLogger sets the logger; nil selects a no-op logger
func (ce *CalculationEngine) SetLogger(logger Logger) {
	if logger == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = logger
}

// taxCalculatorFor returns the calculator for a tax year id, "" meaning the engine default
func (ce *CalculationEngine) taxCalculatorFor(id string) (*ComprehensiveTaxCalculator, error) {
	if id == "" || id == ce.TaxCalc.TaxYear.ID {
		return ce.TaxCalc, nil
	}
	ty, err := ce.TaxYears.Get(id)
	if err != nil {
		return nil, err
	}
	return NewComprehensiveTaxCalculator(ty), nil
}

// CalculateTaxes runs the full take-home pay calculation. An unknown tax year
// falls back to the engine default; callers that need an error validate first.
func (ce *CalculationEngine) CalculateTaxes(inputs domain.TaxInputs) *domain.TakeHomeResult {
	tc, err := ce.taxCalculatorFor(inputs.TaxYear)
	if err != nil {
		ce.Logger.Warnf("%v, using %s", err, ce.TaxCalc.TaxYear.ID)
		tc = ce.TaxCalc
	}
	return tc.CalculateTaxes(inputs)
}

// CalculateBonusMonth estimates the bonus month pay packet for the default tax year
func (ce *CalculationEngine) CalculateBonusMonth(inputs domain.BonusMonthInputs) domain.PayPeriod {
	return ce.TaxCalc.CalculateBonusMonth(inputs)
}

// CalculateTaxes composes allowance, income tax, NI, student loan and pension into
// a take-home pay result.
func (ctc *ComprehensiveTaxCalculator) CalculateTaxes(inputs domain.TaxInputs) *domain.TakeHomeResult {
	twelve := decimal.NewFromInt(12)

	salary := decimal.Max(decimal.Zero, inputs.GrossSalary)
	bonus := decimal.Max(decimal.Zero, inputs.GrossBonus)
	gross := salary.Add(bonus)

	scheme := domain.SchemeNone
	if inputs.Pension != nil && inputs.Pension.Scheme != "" {
		scheme = inputs.Pension.Scheme
	}
	contribution := ctc.CalculatePensionContribution(gross, inputs.Pension)

	// Salary sacrifice comes off gross pay; net pay schemes come off the tax base only.
	adjustedGross := gross
	if scheme.ReducesGross() {
		adjustedGross = gross.Sub(contribution)
	}
	allowance := ctc.PersonalAllowance(adjustedGross)
	pensionDeduction := decimal.Zero
	if scheme.DeductedFromTaxableIncome() {
		pensionDeduction = contribution
	}
	taxableIncome := decimal.Max(decimal.Zero, adjustedGross.Sub(allowance).Sub(pensionDeduction))

	incomeTax := ctc.CalculateIncomeTax(adjustedGross.Sub(pensionDeduction), inputs.ResidentInScotland)
	studentLoans := ctc.CalculateTotalStudentLoans(adjustedGross, inputs.StudentLoanPlans)

	regularMonthlyGross := salary.Div(twelve)
	niAdjustedGross := salary
	if scheme.ReducesGross() {
		niAdjustedGross = salary.Sub(contribution)
	}
	monthlyNIAdjustedGross := niAdjustedGross.Div(twelve)

	// With a bonus, NI is one bonus month plus eleven regular months.
	employeeNI := decimal.Zero
	regularMonthlyNI := decimal.Zero
	if !inputs.ExcludeNI {
		regularMonthlyNI = ctc.CalculateMonthlyNI(monthlyNIAdjustedGross)
		if bonus.IsPositive() {
			bonusMonthNI := ctc.CalculateMonthlyNI(monthlyNIAdjustedGross.Add(bonus))
			employeeNI = bonusMonthNI.Add(regularMonthlyNI.Mul(decimal.NewFromInt(11)))
		} else {
			employeeNI = ctc.CalculateNI(niAdjustedGross)
		}
	}

	regularAdjustedGross := salary
	if scheme.ReducesGross() || scheme.DeductedFromTaxableIncome() {
		regularAdjustedGross = salary.Sub(contribution)
	}
	regularMonthlyTax := ctc.CalculateIncomeTax(regularAdjustedGross, inputs.ResidentInScotland).Tax.Div(twelve)
	regularMonthlyStudentLoan := ctc.CalculateTotalStudentLoans(salary, inputs.StudentLoanPlans).MonthlyRepayment

	bonusMonth := ctc.CalculateBonusMonth(domain.BonusMonthInputs{
		RegularMonthlyGross: regularMonthlyGross,
		BonusAmount:         bonus,
		PensionContribution: contribution,
		StudentLoanPlans:    inputs.StudentLoanPlans,
		ResidentInScotland:  inputs.ResidentInScotland,
		ExcludeNI:           inputs.ExcludeNI,
	})

	combinedTaxes := incomeTax.Tax.Add(employeeNI).Add(studentLoans.AnnualRepayment)
	takeHome := gross.Sub(combinedTaxes).Sub(contribution)

	// Regular months carry the salary's share of the annual deductions.
	salaryShare := decimal.Zero
	if gross.IsPositive() {
		salaryShare = salary.Div(gross)
	}
	monthlyTakeHome := salary.
		Sub(combinedTaxes.Mul(salaryShare)).
		Sub(contribution.Mul(salaryShare)).
		Div(twelve)
	annualised := monthlyTakeHome.Mul(twelve)

	result := &domain.TakeHomeResult{
		TaxYear:            ctc.TaxYear.ID,
		ResidentInScotland: inputs.ResidentInScotland,
		AnnualGrossIncome: domain.LineItems{
			Total: gross,
			Breakdown: []domain.BandAmount{
				{Label: "Annual Gross Salary", Amount: salary},
				{Label: "Annual Gross Bonus", Amount: bonus},
			},
		},
		TaxAllowance: domain.LineItems{
			Total:     allowance,
			Breakdown: []domain.BandAmount{{Label: "Personal Allowance", Amount: allowance}},
		},
		TaxableIncome: taxableIncome,
		IncomeTax: domain.LineItems{
			Total:     incomeTax.Tax,
			Breakdown: incomeTax.Breakdown,
		},
		EmployeeNI: domain.LineItems{
			Total:     employeeNI,
			Breakdown: []domain.BandAmount{},
		},
		StudentLoanRepayments: domain.LineItems{
			Total:     studentLoans.AnnualRepayment,
			Breakdown: studentLoans.Breakdown,
		},
		PensionContribution: domain.PensionContribution{
			Scheme:    scheme,
			ValueKind: inputs.Pension.Kind(),
			Value:     decimal.Zero,
			Total:     contribution,
		},
		CombinedTaxes:   combinedTaxes,
		TakeHomePay:     takeHome,
		MonthlyTakeHome: monthlyTakeHome,
		WeeklyTakeHome:  annualised.Div(weeksPerYear),
		Periods: domain.PeriodBreakdown{
			Annual:  takeHome,
			Monthly: monthlyTakeHome,
			Weekly:  annualised.Div(weeksPerYear),
			Daily:   annualised.Div(workingDaysPerYear),
			Hourly:  annualised.Div(workingHoursPerYear),
		},
		RegularMonth: domain.PayPeriod{
			GrossPay:            regularMonthlyGross,
			Tax:                 regularMonthlyTax,
			NI:                  regularMonthlyNI,
			StudentLoan:         regularMonthlyStudentLoan,
			PensionContribution: contribution.Div(twelve),
			TakeHome:            monthlyTakeHome,
		},
		BonusMonth: bonusMonth,
	}
	if inputs.Pension != nil {
		result.PensionContribution.Value = inputs.Pension.Value
	}
	// Shown for information; it is not added to the allowance total.
	if inputs.Blind {
		result.TaxAllowance.Breakdown = append(result.TaxAllowance.Breakdown,
			domain.BandAmount{Label: "Blind Person's Allowance", Amount: ctc.TaxYear.Allowance.BlindPersons})
	}
	return result
}

// RunScenario calculates take-home pay for one scenario. The scenario's own tax
// year wins over the configuration's; an unknown tax year is an error.
func (ce *CalculationEngine) RunScenario(ctx context.Context, config *domain.Configuration, scenario *domain.Scenario) (*domain.TakeHomeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id := scenario.TaxYear
	if id == "" && config != nil {
		id = config.TaxYear
	}
	tc, err := ce.taxCalculatorFor(id)
	if err != nil {
		return nil, err
	}
	ce.Logger.Debugf("calculating take-home pay for scenario %q (%s)", scenario.Name, tc.TaxYear.ID)
	return tc.CalculateTaxes(scenario.TaxInputs), nil
}

// RunConfiguration calculates every section present in a scenario file
func (ce *CalculationEngine) RunConfiguration(ctx context.Context, config *domain.Configuration) (*domain.Report, error) {
	defaultCalc, err := ce.taxCalculatorFor(config.TaxYear)
	if err != nil {
		return nil, fmt.Errorf("configuration tax year: %w", err)
	}
	report := &domain.Report{TaxYear: defaultCalc.TaxYear.ID}

	for i := range config.Scenarios {
		scenario := &config.Scenarios[i]
		result, err := ce.RunScenario(ctx, config, scenario)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			return nil, fmt.Errorf("scenario %d (%s): %w", i, scenario.Name, err)
		}
		report.TakeHome = append(report.TakeHome, domain.ScenarioResult{Name: scenario.Name, Result: result})
	}

	if config.Mortgage != nil {
		ce.Logger.Debugf("calculating mortgage")
		results := CalculateMortgageResults(*config.Mortgage)
		report.Mortgage = &results
	}
	if config.PropertyTax != nil {
		ce.Logger.Debugf("calculating property tax for %s", config.PropertyTax.Region)
		result := NewPropertyTaxCalculator(defaultCalc.TaxYear.PropertyTax).CalculatePropertyTax(*config.PropertyTax)
		report.PropertyTax = &result
	}
	if config.Projection != nil {
		p := config.Projection
		result := CalculatePensionProjection(p.Personal, p.Allocation, p.Returns, p.ExpectedReturn)
		report.Projection = &result
	}
	if config.Compound != nil {
		result := CalculateCompoundInterest(*config.Compound)
		report.Compound = &result
	}
	if config.PurchasingPower != nil {
		result, err := ce.Inflation.CalculatePurchasingPower(*config.PurchasingPower)
		if err != nil {
			return nil, fmt.Errorf("purchasing power: %w", err)
		}
		report.PurchasingPower = &result
	}
	if config.ChildBenefit != nil {
		result := NewChildBenefitCalculator(defaultCalc.TaxYear.ChildBenefit).CalculateChildBenefit(*config.ChildBenefit)
		report.ChildBenefit = &result
	}
	if config.Childcare != nil {
		result := CalculateChildcareCost(*config.Childcare)
		report.Childcare = &result
	}
	if config.CarFinance != nil {
		var result domain.CarFinanceResult
		switch strings.ToLower(config.CarFinance.Product) {
		case "hp":
			result = CalculateHP(config.CarFinance.CarFinanceInputs)
		case "pcp", "":
			result = CalculatePCP(config.CarFinance.CarFinanceInputs)
		default:
			return nil, fmt.Errorf("car finance: unknown product %q (want pcp or hp)", config.CarFinance.Product)
		}
		report.CarFinance = &result
	}

	return report, nil
}
