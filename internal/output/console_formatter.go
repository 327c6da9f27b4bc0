package output

import (
	"bytes"
	"fmt"

	"github.com/ukcalc/ukcalc/internal/domain"
)

// ConsoleFormatter prints one line per result.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "UK CALCULATOR SUMMARY (%s)\n", report.TaxYear)
	fmt.Fprintln(&buf, "==============================")

	if len(report.TakeHome) > 0 {
		fmt.Fprintln(&buf, "Take-home pay:")
		for _, s := range report.TakeHome {
			r := s.Result
			fmt.Fprintf(&buf, "  %-24s %14s a year  %12s a month\n", s.Name, FormatCurrency(r.TakeHomePay), FormatCurrency(r.MonthlyTakeHome))
		}
	}
	if m := report.Mortgage; m != nil {
		fmt.Fprintf(&buf, "Mortgage:          %s a month, %s interest over the term\n", FormatCurrency(m.MonthlyPayment), FormatCurrency(m.TotalInterest))
	}
	if p := report.PropertyTax; p != nil {
		fmt.Fprintf(&buf, "%-18s %s (%s of the price)\n", p.Tax+":", FormatCurrency(p.StampDuty), FormatPercentage(p.EffectiveRate))
	}
	if p := report.Projection; p != nil {
		fmt.Fprintf(&buf, "Pension pot:       %s at retirement (%s in today's money)\n", FormatCurrency(p.Summary.ProjectedValue), FormatCurrency(p.Summary.RealValue))
	}
	if c := report.Compound; c != nil {
		fmt.Fprintf(&buf, "Savings:           %s final balance, %s interest\n", FormatCurrency(c.FinalBalance), FormatCurrency(c.TotalInterestEarned))
	}
	if p := report.PurchasingPower; p != nil {
		fmt.Fprintf(&buf, "Purchasing power:  %s in %d is worth %s in %d\n", FormatCurrency(p.OriginalAmount), p.StartYear, FormatCurrency(p.AdjustedAmount), p.EndYear)
	}
	if b := report.ChildBenefit; b != nil {
		fmt.Fprintf(&buf, "Child Benefit:     %s a year after %s charge\n", FormatCurrency(b.NetAnnual), FormatPercentage(b.ChargePercent))
	}
	if c := report.Childcare; c != nil && len(c.Projection) > 0 {
		fmt.Fprintf(&buf, "Childcare:         %s in %s\n", FormatCurrency(c.MonthlyCost), c.Projection[0].Label)
	}
	if f := report.CarFinance; f != nil {
		fmt.Fprintf(&buf, "Car finance (%s): %s a month, %s payable\n", f.Product, FormatCurrency(f.MonthlyPayment), FormatCurrency(f.TotalPayable))
	}
	return buf.Bytes(), nil
}
