package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// StudentLoanPlan identifies a student loan repayment plan
type StudentLoanPlan string

const (
	PlanOne      StudentLoanPlan = "plan1"
	PlanTwo      StudentLoanPlan = "plan2"
	PlanFour     StudentLoanPlan = "plan4"
	PlanFive     StudentLoanPlan = "plan5"
	PlanPostgrad StudentLoanPlan = "postgrad"
)

// StudentLoanPlans lists every plan in display order.
var StudentLoanPlans = []StudentLoanPlan{PlanOne, PlanTwo, PlanFour, PlanFive, PlanPostgrad}

// Label returns the human readable plan name ("Plan 2", "Postgrad").
func (p StudentLoanPlan) Label() string {
	if p == PlanPostgrad {
		return "Postgrad"
	}
	return strings.Replace(string(p), "plan", "Plan ", 1)
}

// ParseStudentLoanPlan accepts plan ids case-insensitively, with or without spaces.
func ParseStudentLoanPlan(s string) (StudentLoanPlan, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	for _, p := range StudentLoanPlans {
		if string(p) == normalized {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown student loan plan %q", s)
}

// TaxInputs are the inputs to the take-home pay calculation
type TaxInputs struct {
	GrossSalary        decimal.Decimal   `yaml:"gross_salary" json:"gross_salary"`
	GrossBonus         decimal.Decimal   `yaml:"gross_bonus" json:"gross_bonus"`
	StudentLoanPlans   []StudentLoanPlan `yaml:"student_loan_plans,omitempty" json:"student_loan_plans,omitempty"`
	ResidentInScotland bool              `yaml:"resident_in_scotland" json:"resident_in_scotland"`
	ExcludeNI          bool              `yaml:"exclude_ni" json:"exclude_ni"`
	Blind              bool              `yaml:"blind" json:"blind"`
	Pension            *PensionSpec      `yaml:"pension,omitempty" json:"pension,omitempty"`
	TaxYear            string            `yaml:"tax_year,omitempty" json:"tax_year,omitempty"`
}

// BandAmount is one labelled line of a breakdown
type BandAmount struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// TaxResult is the output of an income tax calculation.
// The breakdown always lists every band in ascending order and sums to Tax.
type TaxResult struct {
	Tax       decimal.Decimal `json:"tax"`
	Breakdown []BandAmount    `json:"breakdown"`
}

// StudentLoanResult aggregates repayments across all active plans
type StudentLoanResult struct {
	AnnualRepayment  decimal.Decimal `json:"annual_repayment"`
	MonthlyRepayment decimal.Decimal `json:"monthly_repayment"`
	Breakdown        []BandAmount    `json:"breakdown"`
}

// LineItems is a total with the lines that make it up
type LineItems struct {
	Total     decimal.Decimal `json:"total"`
	Breakdown []BandAmount    `json:"breakdown"`
}

// PensionContribution reports the contribution made under the selected scheme
type PensionContribution struct {
	Scheme    PensionScheme    `json:"scheme"`
	ValueKind PensionValueKind `json:"value_kind"`
	Value     decimal.Decimal  `json:"value"`
	Total     decimal.Decimal  `json:"total"`
}

// PayPeriod is a single pay packet
type PayPeriod struct {
	GrossPay            decimal.Decimal `json:"gross_pay"`
	TaxableIncome       decimal.Decimal `json:"taxable_income"`
	Tax                 decimal.Decimal `json:"tax"`
	NI                  decimal.Decimal `json:"ni"`
	StudentLoan         decimal.Decimal `json:"student_loan"`
	PensionContribution decimal.Decimal `json:"pension_contribution"`
	TakeHome            decimal.Decimal `json:"take_home"`
}

// Deductions returns everything taken from the gross pay of the period.
func (p PayPeriod) Deductions() decimal.Decimal {
	return p.Tax.Add(p.NI).Add(p.StudentLoan).Add(p.PensionContribution)
}

// BonusMonthInputs describes the month in which a bonus is paid
type BonusMonthInputs struct {
	RegularMonthlyGross decimal.Decimal
	BonusAmount         decimal.Decimal
	PensionContribution decimal.Decimal // annual
	StudentLoanPlans    []StudentLoanPlan
	ResidentInScotland  bool
	ExcludeNI           bool
}

// PeriodBreakdown spreads take-home pay over common pay periods.
// Weekly, daily and hourly figures are derived from the monthly figure.
type PeriodBreakdown struct {
	Annual  decimal.Decimal `json:"annual"`
	Monthly decimal.Decimal `json:"monthly"`
	Weekly  decimal.Decimal `json:"weekly"`
	Daily   decimal.Decimal `json:"daily"`
	Hourly  decimal.Decimal `json:"hourly"`
}

// TakeHomeResult is the complete output of the take-home pay calculation
type TakeHomeResult struct {
	TaxYear            string `json:"tax_year"`
	ResidentInScotland bool   `json:"resident_in_scotland"`

	AnnualGrossIncome     LineItems           `json:"annual_gross_income"`
	TaxAllowance          LineItems           `json:"tax_allowance"`
	TaxableIncome         decimal.Decimal     `json:"taxable_income"`
	IncomeTax             LineItems           `json:"income_tax"`
	EmployeeNI            LineItems           `json:"employee_ni"`
	StudentLoanRepayments LineItems           `json:"student_loan_repayments"`
	PensionContribution   PensionContribution `json:"pension_contribution"`
	CombinedTaxes         decimal.Decimal     `json:"combined_taxes"`
	TakeHomePay           decimal.Decimal     `json:"take_home_pay"`
	MonthlyTakeHome       decimal.Decimal     `json:"monthly_take_home"`
	WeeklyTakeHome        decimal.Decimal     `json:"weekly_take_home"`
	Periods               PeriodBreakdown     `json:"periods"`
	RegularMonth          PayPeriod           `json:"regular_month"`
	BonusMonth            PayPeriod           `json:"bonus_month"`
}

// HasBonus reports whether the bonus month differs from a regular month.
func (r *TakeHomeResult) HasBonus() bool {
	return r.BonusMonth.GrossPay.GreaterThan(r.RegularMonth.GrossPay)
}
