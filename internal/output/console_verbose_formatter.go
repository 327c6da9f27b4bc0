package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
)

// ConsoleVerboseFormatter renders every line item of every section.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintf(&buf, "UK PERSONAL FINANCE REPORT - TAX YEAR %s\n", report.TaxYear)
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for _, s := range report.TakeHome {
		writeTakeHome(&buf, s)
	}
	if report.Mortgage != nil {
		writeMortgage(&buf, report.Mortgage)
	}
	if report.PropertyTax != nil {
		writePropertyTax(&buf, report.PropertyTax)
	}
	if report.Projection != nil {
		writeProjection(&buf, report.Projection)
	}
	if report.Compound != nil {
		writeCompound(&buf, report.Compound)
	}
	if report.PurchasingPower != nil {
		writePurchasingPower(&buf, report.PurchasingPower)
	}
	if report.ChildBenefit != nil {
		writeChildBenefit(&buf, report.ChildBenefit)
	}
	if report.Childcare != nil {
		writeChildcare(&buf, report.Childcare)
	}
	if report.CarFinance != nil {
		writeCarFinance(&buf, report.CarFinance)
	}
	return buf.Bytes(), nil
}

func heading(buf *bytes.Buffer, title string) {
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, strings.Repeat("=", len(title)))
}

func line(buf *bytes.Buffer, label string, amount decimal.Decimal) {
	fmt.Fprintf(buf, "  %-34s %16s\n", label, FormatCurrency(amount))
}

func lineItems(buf *bytes.Buffer, label string, items domain.LineItems) {
	line(buf, label, items.Total)
	for _, b := range items.Breakdown {
		fmt.Fprintf(buf, "    %-32s %16s\n", b.Label, FormatCurrency(b.Amount))
	}
}

func writeTakeHome(buf *bytes.Buffer, s domain.ScenarioResult) {
	r := s.Result
	region := "rest of UK"
	if r.ResidentInScotland {
		region = "Scotland"
	}
	heading(buf, fmt.Sprintf("TAKE-HOME PAY: %s (%s, %s)", s.Name, r.TaxYear, region))
	lineItems(buf, "Gross income", r.AnnualGrossIncome)
	lineItems(buf, "Tax-free allowance", r.TaxAllowance)
	line(buf, "Taxable income", r.TaxableIncome)
	lineItems(buf, "Income tax", r.IncomeTax)
	lineItems(buf, "National Insurance", r.EmployeeNI)
	lineItems(buf, "Student loan repayments", r.StudentLoanRepayments)
	if r.PensionContribution.Scheme != "" && r.PensionContribution.Scheme != domain.SchemeNone {
		line(buf, fmt.Sprintf("Pension (%s)", r.PensionContribution.Scheme), r.PensionContribution.Total)
	}
	line(buf, "Combined deductions", r.CombinedTaxes)
	fmt.Fprintln(buf, "  ----------------------------------------------------")
	line(buf, "Take-home pay", r.TakeHomePay)
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "  PERIOD        TAKE-HOME")
	fmt.Fprintf(buf, "  %-12s %12s\n", "Annual", FormatCurrency(r.Periods.Annual))
	fmt.Fprintf(buf, "  %-12s %12s\n", "Monthly", FormatCurrency(r.Periods.Monthly))
	fmt.Fprintf(buf, "  %-12s %12s\n", "Weekly", FormatCurrency(r.Periods.Weekly))
	fmt.Fprintf(buf, "  %-12s %12s\n", "Daily", FormatCurrency(r.Periods.Daily))
	fmt.Fprintf(buf, "  %-12s %12s\n", "Hourly", FormatCurrency(r.Periods.Hourly))

	if r.HasBonus() {
		fmt.Fprintln(buf)
		fmt.Fprintf(buf, "  %-22s %14s %14s\n", "", "REGULAR MONTH", "BONUS MONTH")
		payLine(buf, "Gross pay", r.RegularMonth.GrossPay, r.BonusMonth.GrossPay)
		payLine(buf, "Income tax", r.RegularMonth.Tax, r.BonusMonth.Tax)
		payLine(buf, "National Insurance", r.RegularMonth.NI, r.BonusMonth.NI)
		payLine(buf, "Student loan", r.RegularMonth.StudentLoan, r.BonusMonth.StudentLoan)
		payLine(buf, "Pension", r.RegularMonth.PensionContribution, r.BonusMonth.PensionContribution)
		payLine(buf, "Take-home", r.RegularMonth.TakeHome, r.BonusMonth.TakeHome)
	}
	fmt.Fprintln(buf)
}

func payLine(buf *bytes.Buffer, label string, regular, bonus decimal.Decimal) {
	fmt.Fprintf(buf, "  %-22s %14s %14s\n", label, FormatCurrency(regular), FormatCurrency(bonus))
}

func writeMortgage(buf *bytes.Buffer, m *domain.MortgageResults) {
	heading(buf, "MORTGAGE")
	line(buf, "Loan amount", m.LoanAmount)
	line(buf, "Monthly payment", m.MonthlyPayment)
	line(buf, "Total repaid", m.TotalPayment)
	line(buf, "Total interest", m.TotalInterest)
	line(buf, "Payment at rate +1%", m.HigherRatePayment)
	line(buf, "Payment at rate -1%", m.LowerRatePayment)
	if m.MonthsReduced > 0 {
		line(buf, "Interest with overpayment", m.TotalInterestWithOverpayment)
		line(buf, "Interest saved", m.InterestSaved)
		fmt.Fprintf(buf, "  %-34s %16s\n", "Term with overpayment", fmt.Sprintf("%d months (%d fewer)", m.NewTermMonths, m.MonthsReduced))
	}
	if len(m.Schedule) > 0 {
		fmt.Fprintln(buf)
		fmt.Fprintf(buf, "  %-6s %14s %14s %16s\n", "YEAR", "PRINCIPAL", "INTEREST", "BALANCE")
		for _, row := range m.Schedule {
			fmt.Fprintf(buf, "  %-6d %14s %14s %16s\n", row.Year, FormatCurrency(row.PrincipalPaid), FormatCurrency(row.InterestPaid), FormatCurrency(row.RemainingBalance))
		}
	}
	fmt.Fprintln(buf)
}

func writePropertyTax(buf *bytes.Buffer, p *domain.PropertyTaxResult) {
	heading(buf, "PROPERTY TAX ("+p.Tax+")")
	for _, b := range p.Breakdown {
		fmt.Fprintf(buf, "    %-32s %16s\n", b.Label, FormatCurrency(b.Amount))
	}
	line(buf, "Total due", p.StampDuty)
	fmt.Fprintf(buf, "  %-34s %16s\n", "Effective rate", FormatPercentage(p.EffectiveRate))
	fmt.Fprintln(buf)
}

func writeProjection(buf *bytes.Buffer, p *domain.ProjectionResult) {
	heading(buf, "PENSION PROJECTION")
	fmt.Fprintf(buf, "  %-34s %16s\n", "Weighted annual return", FormatPercentage(p.WeightedReturn))
	line(buf, "Projected pot", p.Summary.ProjectedValue)
	line(buf, "In today's money", p.Summary.RealValue)
	line(buf, "Your contributions", p.Summary.TotalUserContributions)
	line(buf, "Employer contributions", p.Summary.TotalEmployerContributions)
	line(buf, "Investment growth", p.Summary.TotalInvestmentGrowth)
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "  %-5s %16s %16s %16s\n", "AGE", "NOMINAL", "REAL", "GROWTH")
	for _, y := range p.YearlyProjections {
		fmt.Fprintf(buf, "  %-5d %16s %16s %16s\n", y.Age, FormatCurrency(y.NominalValue), FormatCurrency(y.RealValue), FormatCurrency(y.CumulativeGrowth))
	}
	fmt.Fprintln(buf)
}

func writeCompound(buf *bytes.Buffer, c *domain.CompoundInterestResult) {
	heading(buf, "COMPOUND INTEREST")
	line(buf, "Final balance", c.FinalBalance)
	line(buf, "Total contributions", c.TotalContributions)
	line(buf, "Total interest", c.TotalInterestEarned)
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "  %-5s %16s %14s %14s\n", "YEAR", "BALANCE", "PAID IN", "INTEREST")
	for _, y := range c.YearlyData {
		fmt.Fprintf(buf, "  %-5d %16s %14s %14s\n", y.Year, FormatCurrency(y.Balance), FormatCurrency(y.Contributions), FormatCurrency(y.InterestEarned))
	}
	fmt.Fprintln(buf)
}

func writePurchasingPower(buf *bytes.Buffer, p *domain.PurchasingPowerResult) {
	heading(buf, fmt.Sprintf("PURCHASING POWER %d TO %d", p.StartYear, p.EndYear))
	line(buf, fmt.Sprintf("Amount in %d", p.StartYear), p.OriginalAmount)
	line(buf, fmt.Sprintf("Equivalent in %d", p.EndYear), p.AdjustedAmount)
	fmt.Fprintf(buf, "  %-34s %16s\n", "Cumulative inflation", FormatPercentage(p.PercentageChange))
	fmt.Fprintf(buf, "  %-34s %16s\n", "Average annual inflation", FormatPercentage(p.AverageInflation))
	fmt.Fprintln(buf)
	for _, y := range p.YearlyBreakdown {
		fmt.Fprintf(buf, "  %-5d %16s %8s\n", y.Year, FormatCurrency(y.Amount), FormatPercentage(y.InflationRate))
	}
	fmt.Fprintln(buf)
}

func writeChildBenefit(buf *bytes.Buffer, b *domain.ChildBenefitResult) {
	heading(buf, "CHILD BENEFIT")
	line(buf, "Weekly", b.Weekly)
	line(buf, "Every four weeks", b.FourWeekly)
	line(buf, "Annual", b.Annual)
	line(buf, "Highest income", b.HighestIncome)
	fmt.Fprintf(buf, "  %-34s %16s\n", "High Income Charge rate", FormatPercentage(b.ChargePercent))
	line(buf, "High Income Charge", b.Charge)
	line(buf, "Net annual benefit", b.NetAnnual)
	fmt.Fprintln(buf)
}

func writeChildcare(buf *bytes.Buffer, c *domain.ChildcareResult) {
	heading(buf, "CHILDCARE")
	for _, m := range c.Projection {
		line(buf, m.Label, m.Cost)
	}
	fmt.Fprintln(buf)
}

func writeCarFinance(buf *bytes.Buffer, f *domain.CarFinanceResult) {
	heading(buf, fmt.Sprintf("CAR FINANCE (%s, %d months at %s APR)", f.Product, f.TermMonths, FormatPercentage(f.APR)))
	line(buf, "Deposit", f.Deposit)
	line(buf, "Monthly payment", f.MonthlyPayment)
	if f.BalloonPayment.IsPositive() {
		line(buf, "Optional final payment", f.BalloonPayment)
	}
	line(buf, "Total payable", f.TotalPayable)
	line(buf, "Total interest", f.TotalInterest)
	fmt.Fprintln(buf)
}
