package main

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ukcalc/ukcalc/internal/domain"
	"github.com/ukcalc/ukcalc/internal/output"
)

type takeHomeOptions struct {
	name         string
	salary       decimal.Decimal
	bonus        decimal.Decimal
	scheme       string
	pension      decimal.Decimal
	pensionKind  string
	studentLoans []string
	scotland     bool
	excludeNI    bool
	blind        bool
}

func (o *takeHomeOptions) scenario() domain.Scenario {
	s := domain.Scenario{
		Name: o.name,
		TaxInputs: domain.TaxInputs{
			GrossSalary:        o.salary,
			GrossBonus:         o.bonus,
			ResidentInScotland: o.scotland,
			ExcludeNI:          o.excludeNI,
			Blind:              o.blind,
		},
	}
	for _, p := range o.studentLoans {
		s.StudentLoanPlans = append(s.StudentLoanPlans, domain.StudentLoanPlan(p))
	}
	if o.scheme != "" && o.scheme != string(domain.SchemeNone) {
		s.Pension = &domain.PensionSpec{
			Scheme:    domain.PensionScheme(o.scheme),
			Value:     o.pension,
			ValueKind: domain.PensionValueKind(o.pensionKind),
		}
	}
	return s
}

func takeHomeCmd(a *app) *cobra.Command {
	opts := &takeHomeOptions{}

	cmd := &cobra.Command{
		Use:   "takehome",
		Short: "Calculate take-home pay from a salary",
		Long: `Calculate income tax, National Insurance, student loan and pension
deductions and the pay left over, by year, month, week, day and hour.

Examples:
  ukcalc takehome --salary 50000
  ukcalc takehome --salary 65000 --bonus 5000 --pension-scheme salary_sacrifice --pension 5
  ukcalc takehome --salary 40000 --student-loan plan2,postgrad --scotland
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			cfg := &domain.Configuration{Scenarios: []domain.Scenario{opts.scenario()}}
			return a.report(cmd, cfg)
		},
	}

	opts.bindFlags(cmd, "Take-home pay")
	_ = cmd.MarkFlagRequired("salary")
	return cmd
}

// bindFlags registers the flags describing one take-home scenario
func (o *takeHomeOptions) bindFlags(cmd *cobra.Command, name string) {
	f := cmd.Flags()
	f.StringVar(&o.name, "name", name, "Scenario name shown in the report")
	f.Var(newDecimalValue(&o.salary, decimal.Zero), "salary", "Annual gross salary")
	f.Var(newDecimalValue(&o.bonus, decimal.Zero), "bonus", "One-off bonus paid in a single month")
	f.StringVar(&o.scheme, "pension-scheme", "none", "Pension scheme (auto_enrolment, auto_unbanded, relief_at_source, relief_at_source_unbanded, salary_sacrifice, personal)")
	f.Var(newDecimalValue(&o.pension, decimal.Zero), "pension", "Pension contribution, a percentage or an annual amount")
	f.StringVar(&o.pensionKind, "pension-kind", "percentage", "How --pension is read (percentage, nominal)")
	f.StringSliceVar(&o.studentLoans, "student-loan", nil, "Student loan plans (plan1, plan2, plan4, plan5, postgrad)")
	f.BoolVar(&o.scotland, "scotland", false, "Pay Scottish income tax")
	f.BoolVar(&o.excludeNI, "exclude-ni", false, "Skip National Insurance (over state pension age)")
	f.BoolVar(&o.blind, "blind", false, "Claim Blind Person's Allowance")
}

func (o *takeHomeOptions) validate() error {
	if !o.pension.IsZero() && (o.scheme == "" || o.scheme == string(domain.SchemeNone)) {
		return fmt.Errorf("--pension needs a --pension-scheme")
	}
	return nil
}

func taxCmd(a *app) *cobra.Command {
	var income decimal.Decimal
	var scotland bool

	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Calculate income tax on an annual income",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if income.IsNegative() {
				return fmt.Errorf("income must not be negative")
			}
			tc := a.engine.TaxCalc
			result := tc.CalculateIncomeTax(income, scotland)

			regime := "England, Wales and Northern Ireland"
			if scotland {
				regime = "Scotland"
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "INCOME TAX %s (%s)\n", tc.TaxYear.ID, regime)
			row(w, "Income", output.FormatCurrency(income))
			row(w, "Personal allowance", output.FormatCurrency(tc.PersonalAllowance(income)))
			for _, band := range result.Breakdown {
				row(w, "  "+band.Label, output.FormatCurrency(band.Amount))
			}
			row(w, "Total tax", output.FormatCurrency(result.Tax))
			row(w, "Effective rate", output.FormatPercentage(ratio(result.Tax, income)))
			return nil
		},
	}
	cmd.Flags().Var(newDecimalValue(&income, decimal.Zero), "income", "Annual taxable income")
	cmd.Flags().BoolVar(&scotland, "scotland", false, "Use Scottish income tax bands")
	_ = cmd.MarkFlagRequired("income")
	return cmd
}

func niCmd(a *app) *cobra.Command {
	var salary decimal.Decimal
	var monthly bool

	cmd := &cobra.Command{
		Use:   "ni",
		Short: "Calculate employee Class 1 National Insurance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if salary.IsNegative() {
				return fmt.Errorf("salary must not be negative")
			}
			tc := a.engine.TaxCalc
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "NATIONAL INSURANCE %s\n", tc.TaxYear.ID)
			if monthly {
				ni := tc.CalculateMonthlyNI(salary)
				row(w, "Monthly pay", output.FormatCurrency(salary))
				row(w, "Monthly NI", output.FormatCurrency(ni))
				row(w, "Effective rate", output.FormatPercentage(ratio(ni, salary)))
				return nil
			}
			ni := tc.CalculateNI(salary)
			row(w, "Annual salary", output.FormatCurrency(salary))
			row(w, "Annual NI", output.FormatCurrency(ni))
			row(w, "Monthly NI", output.FormatCurrency(ni.Div(decimal.NewFromInt(12)).Round(2)))
			row(w, "Effective rate", output.FormatPercentage(ratio(ni, salary)))
			return nil
		},
	}
	cmd.Flags().Var(newDecimalValue(&salary, decimal.Zero), "salary", "Gross salary")
	cmd.Flags().BoolVar(&monthly, "monthly", false, "Treat --salary as one month's pay and use monthly thresholds")
	_ = cmd.MarkFlagRequired("salary")
	return cmd
}

func studentLoanCmd(a *app) *cobra.Command {
	var income decimal.Decimal
	var plans []string

	cmd := &cobra.Command{
		Use:   "student-loan",
		Short: "Calculate student loan repayments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if income.IsNegative() {
				return fmt.Errorf("income must not be negative")
			}
			parsed := make([]domain.StudentLoanPlan, 0, len(plans))
			for _, p := range plans {
				plan, err := domain.ParseStudentLoanPlan(p)
				if err != nil {
					return err
				}
				parsed = append(parsed, plan)
			}

			tc := a.engine.TaxCalc
			result := tc.CalculateTotalStudentLoans(income, parsed)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "STUDENT LOAN REPAYMENTS %s\n", tc.TaxYear.ID)
			row(w, "Income", output.FormatCurrency(income))
			for _, line := range result.Breakdown {
				row(w, "  "+line.Label, output.FormatCurrency(line.Amount))
			}
			row(w, "Annual repayment", output.FormatCurrency(result.AnnualRepayment))
			row(w, "Monthly repayment", output.FormatCurrency(result.MonthlyRepayment))
			return nil
		},
	}
	cmd.Flags().Var(newDecimalValue(&income, decimal.Zero), "income", "Annual income")
	cmd.Flags().StringSliceVar(&plans, "plan", nil, "Plans to repay (plan1, plan2, plan4, plan5, postgrad)")
	_ = cmd.MarkFlagRequired("income")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}

func row(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-28s %14s\n", label+":", value)
}

// ratio returns part as a percentage of whole, zero when whole is zero
func ratio(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100))
}
