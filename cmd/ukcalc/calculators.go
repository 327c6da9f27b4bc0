package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ukcalc/ukcalc/internal/domain"
)

func mortgageCmd(a *app) *cobra.Command {
	var in domain.MortgageInputs
	var years int

	cmd := &cobra.Command{
		Use:   "mortgage",
		Short: "Calculate mortgage repayments, interest and overpayment savings",
		Long: `Calculate the monthly payment, total interest and yearly balance of a
repayment or interest-only mortgage.

Examples:
  ukcalc mortgage --price 300000 --deposit 30000 --rate 4.5 --years 25
  ukcalc mortgage --price 300000 --deposit 60000 --rate 4.5 --overpayment 200
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.TermMonths = years * 12
			return a.report(cmd, &domain.Configuration{Mortgage: &in})
		},
	}

	f := cmd.Flags()
	f.Var(newDecimalValue(&in.HomePrice, decimal.Zero), "price", "Purchase price")
	f.Var(newDecimalValue(&in.Deposit, decimal.Zero), "deposit", "Deposit")
	f.Var(newDecimalValue(&in.APR, decimal.NewFromFloat(4.5)), "rate", "Interest rate (APR, percent)")
	f.IntVar(&years, "years", 25, "Mortgage term in years")
	f.Var(newDecimalValue(&in.Overpayment, decimal.Zero), "overpayment", "Monthly overpayment")
	f.BoolVar(&in.InterestOnly, "interest-only", false, "Interest-only mortgage")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func stampDutyCmd(a *app) *cobra.Command {
	var in domain.PropertyTaxInputs
	var region string

	cmd := &cobra.Command{
		Use:     "stamp-duty",
		Aliases: []string{"sdlt", "lbtt"},
		Short:   "Calculate stamp duty (SDLT) or Scottish LBTT on a purchase",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Region = domain.Region(region)
			return a.report(cmd, &domain.Configuration{PropertyTax: &in})
		},
	}

	f := cmd.Flags()
	f.Var(newDecimalValue(&in.HomePrice, decimal.Zero), "price", "Purchase price")
	f.BoolVar(&in.FirstTimeBuyer, "first-time-buyer", false, "Apply first-time buyer relief")
	f.BoolVar(&in.AdditionalProperty, "additional", false, "Additional property surcharge")
	f.StringVar(&region, "region", "england", "Where the property is (england, scotland)")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func pensionCmd(a *app) *cobra.Command {
	in := &domain.ProjectionInputs{}
	var expectedReturn decimal.Decimal
	var employeeKind, employerKind string

	cmd := &cobra.Command{
		Use:   "pension",
		Short: "Project a workplace pension pot to retirement",
		Long: `Project a pension pot year by year to retirement age, in nominal and
today's money, split by who paid in and by asset class.

Examples:
  ukcalc pension --age 30 --salary 40000 --employee 5 --employer 3
  ukcalc pension --age 45 --pot 80000 --salary 60000 --employee 200 --employee-kind fixed --expected-return 6
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Personal.EmployeeKind = domain.ContributionKind(employeeKind)
			in.Personal.EmployerKind = domain.ContributionKind(employerKind)
			in.ExpectedReturn = optionalDecimal(cmd.Flags().Changed("expected-return"), expectedReturn)
			return a.report(cmd, &domain.Configuration{Projection: in})
		},
	}

	f := cmd.Flags()
	p := &in.Personal
	f.IntVar(&p.CurrentAge, "age", 0, "Current age")
	f.IntVar(&p.RetirementAge, "retirement-age", 67, "Retirement age")
	f.Var(newDecimalValue(&p.CurrentSalary, decimal.Zero), "salary", "Current salary")
	f.Var(newDecimalValue(&p.CurrentPensionValue, decimal.Zero), "pot", "Current pension value")
	f.Var(newDecimalValue(&p.EmployeeContribution, decimal.NewFromInt(5)), "employee", "Your contribution")
	f.StringVar(&employeeKind, "employee-kind", "percentage", "How --employee is read (percentage of salary, fixed monthly amount)")
	f.Var(newDecimalValue(&p.EmployerContribution, decimal.NewFromInt(3)), "employer", "Employer contribution")
	f.StringVar(&employerKind, "employer-kind", "percentage", "How --employer is read (percentage, fixed)")
	f.Var(newDecimalValue(&p.InflationRate, decimal.NewFromFloat(2.5)), "inflation", "Inflation rate (percent)")
	f.Var(newDecimalValue(&p.SalaryGrowthRate, decimal.NewFromInt(2)), "salary-growth", "Annual salary growth (percent)")
	f.Var(newDecimalValue(&in.Allocation.Stocks, decimal.NewFromInt(60)), "stocks", "Share held in stocks (percent)")
	f.Var(newDecimalValue(&in.Allocation.Bonds, decimal.NewFromInt(30)), "bonds", "Share held in bonds (percent)")
	f.Var(newDecimalValue(&in.Allocation.Cash, decimal.NewFromInt(10)), "cash", "Share held in cash (percent)")
	f.Var(newDecimalValue(&in.Returns.Stocks, decimal.NewFromInt(7)), "stocks-return", "Expected stock return (percent)")
	f.Var(newDecimalValue(&in.Returns.Bonds, decimal.NewFromInt(3)), "bonds-return", "Expected bond return (percent)")
	f.Var(newDecimalValue(&in.Returns.Cash, decimal.NewFromInt(1)), "cash-return", "Expected cash return (percent)")
	f.Var(newDecimalValue(&expectedReturn, decimal.Zero), "expected-return", "Single expected return replacing the allocation (percent)")
	_ = cmd.MarkFlagRequired("age")
	return cmd
}

func compoundCmd(a *app) *cobra.Command {
	var in domain.CompoundInterestInputs
	var frequency string
	var months int

	cmd := &cobra.Command{
		Use:   "compound",
		Short: "Grow savings with compound interest and monthly contributions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Frequency = domain.CompoundingFrequency(frequency)
			if cmd.Flags().Changed("months") {
				in.Timeframe = months
				in.TimeframeInMonths = true
			}
			return a.report(cmd, &domain.Configuration{Compound: &in})
		},
	}

	f := cmd.Flags()
	f.Var(newDecimalValue(&in.InitialInvestment, decimal.Zero), "initial", "Initial investment")
	f.Var(newDecimalValue(&in.MonthlyContribution, decimal.Zero), "monthly", "Monthly contribution")
	f.Var(newDecimalValue(&in.AnnualInterestRate, decimal.NewFromInt(5)), "rate", "Annual interest rate (percent)")
	f.StringVar(&frequency, "frequency", "monthly", "Compounding (daily, weekly, monthly, quarterly, semi-annually, annually)")
	f.IntVar(&in.Timeframe, "years", 10, "Years to save for")
	f.IntVar(&months, "months", 0, "Months to save for, instead of --years")
	cmd.MarkFlagsMutuallyExclusive("years", "months")
	return cmd
}

func inflationCmd(a *app) *cobra.Command {
	var in domain.PurchasingPowerInputs
	var index string

	cmd := &cobra.Command{
		Use:   "inflation",
		Short: "What an amount in one year is worth in another",
		Long: `Adjust an amount of money between two years using UK CPI or RPI.

Examples:
  ukcalc inflation --amount 100 --from 2000 --to 2024
  ukcalc inflation --amount 1000 --from 2024 --to 1990 --index rpi
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Index = domain.InflationIndex(index)
			return a.report(cmd, &domain.Configuration{PurchasingPower: &in})
		},
	}

	f := cmd.Flags()
	f.Var(newDecimalValue(&in.Amount, decimal.NewFromInt(100)), "amount", "Amount of money")
	f.IntVar(&in.StartYear, "from", 0, "Year the amount is from")
	f.IntVar(&in.EndYear, "to", time.Now().Year(), "Year to express it in")
	f.StringVar(&index, "index", "cpi", "Price index (cpi, rpi)")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func childBenefitCmd(a *app) *cobra.Command {
	var in domain.ChildBenefitInputs
	var partner decimal.Decimal

	cmd := &cobra.Command{
		Use:   "child-benefit",
		Short: "Calculate Child Benefit and the High Income Child Benefit Charge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.PartnerIncome = optionalDecimal(cmd.Flags().Changed("partner-income"), partner)
			return a.report(cmd, &domain.Configuration{ChildBenefit: &in})
		},
	}

	f := cmd.Flags()
	f.IntVar(&in.NumberOfChildren, "children", 1, "Number of children")
	f.Var(newDecimalValue(&in.YourIncome, decimal.Zero), "income", "Your adjusted net income")
	f.Var(newDecimalValue(&partner, decimal.Zero), "partner-income", "Your partner's adjusted net income")
	_ = cmd.MarkFlagRequired("income")
	return cmd
}

func childcareCmd(a *app) *cobra.Command {
	var in domain.ChildcareInputs
	var month int
	var children []string

	now := time.Now()
	cmd := &cobra.Command{
		Use:   "childcare",
		Short: "Cost a month of nursery bookings and the two months after",
		Long: `Cost childcare bookings for a calendar month from the number of each
weekday in it. Each --child is five sessions, Monday to Friday, each one
of full, half or none. "same" books a child like the first one.

Examples:
  ukcalc childcare --full-day 75 --half-day 45 --child full,full,half,none,none
  ukcalc childcare --year 2025 --month 1 --full-day 80 --child full,full,full,full,full --child same
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Month = time.Month(month)
			in.Children = in.Children[:0]
			for i, c := range children {
				child, err := parseChildSchedule(c)
				if err != nil {
					return fmt.Errorf("--child %d: %w", i+1, err)
				}
				in.Children = append(in.Children, child)
			}
			return a.report(cmd, &domain.Configuration{Childcare: &in})
		},
	}

	f := cmd.Flags()
	f.IntVar(&in.Year, "year", now.Year(), "Year")
	f.IntVar(&month, "month", int(now.Month()), "Month (1-12)")
	f.Var(newDecimalValue(&in.FullDayCost, decimal.Zero), "full-day", "Cost of a full day")
	f.Var(newDecimalValue(&in.HalfDayCost, decimal.Zero), "half-day", "Cost of a half day")
	f.StringArrayVar(&children, "child", nil, "A child's week, e.g. full,full,half,none,none, or same")
	_ = cmd.MarkFlagRequired("child")
	return cmd
}

// parseChildSchedule reads "full,half,none,none,full" or "same". Sessions are
// validated with the rest of the inputs.
func parseChildSchedule(s string) (domain.ChildSchedule, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "same") {
		return domain.ChildSchedule{SameSchedule: true}, nil
	}
	days := strings.Split(s, ",")
	if len(days) != 5 {
		return domain.ChildSchedule{}, fmt.Errorf("want five sessions, Monday to Friday, got %d", len(days))
	}
	return domain.ChildSchedule{Schedule: domain.WeekSchedule{
		Monday:    domain.CareDay(days[0]),
		Tuesday:   domain.CareDay(days[1]),
		Wednesday: domain.CareDay(days[2]),
		Thursday:  domain.CareDay(days[3]),
		Friday:    domain.CareDay(days[4]),
	}}, nil
}

func carFinanceCmd(a *app) *cobra.Command {
	var in domain.CarFinanceScenario
	var apr decimal.Decimal

	cmd := &cobra.Command{
		Use:   "car-finance",
		Short: "Price a PCP or HP car finance agreement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.APR = optionalDecimal(cmd.Flags().Changed("apr"), apr)
			return a.report(cmd, &domain.Configuration{CarFinance: &in})
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Product, "product", "pcp", "Finance product (pcp, hp)")
	f.Var(newDecimalValue(&in.CarValue, decimal.Zero), "price", "Price of the car")
	f.Var(newDecimalValue(&in.DepositPercentage, decimal.NewFromInt(10)), "deposit", "Deposit (percent of the price)")
	f.IntVar(&in.TermMonths, "term", 48, "Term in months")
	f.Var(newDecimalValue(&apr, decimal.Zero), "apr", "APR (percent); defaults to a typical dealer rate")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}
