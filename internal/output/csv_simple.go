package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
)

// CSVSummarizer writes one row per take-home scenario.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "TaxYear", "GrossIncome", "TaxableIncome", "IncomeTax", "NationalInsurance", "StudentLoan", "Pension", "TakeHome", "MonthlyTakeHome", "WeeklyTakeHome"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, s := range report.TakeHome {
		r := s.Result
		row := []string{
			s.Name,
			r.TaxYear,
			r.AnnualGrossIncome.Total.StringFixed(2),
			r.TaxableIncome.StringFixed(2),
			r.IncomeTax.Total.StringFixed(2),
			r.EmployeeNI.Total.StringFixed(2),
			r.StudentLoanRepayments.Total.StringFixed(2),
			r.PensionContribution.Total.StringFixed(2),
			r.TakeHomePay.StringFixed(2),
			r.MonthlyTakeHome.StringFixed(2),
			r.WeeklyTakeHome.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// DetailedCSVFormatter writes every figure of the report as section,item,value rows.
type DetailedCSVFormatter struct{}

func (d DetailedCSVFormatter) Name() string { return "detailed-csv" }

func (d DetailedCSVFormatter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	rows := [][]string{{"Section", "Subject", "Item", "Value"}}
	add := func(section, subject, item string, value decimal.Decimal) {
		rows = append(rows, []string{section, subject, item, value.StringFixed(2)})
	}
	addItems := func(section, subject, item string, items domain.LineItems) {
		add(section, subject, item, items.Total)
		for _, b := range items.Breakdown {
			add(section, subject, item+": "+b.Label, b.Amount)
		}
	}

	for _, s := range report.TakeHome {
		r := s.Result
		addItems("take_home", s.Name, "Gross income", r.AnnualGrossIncome)
		addItems("take_home", s.Name, "Tax-free allowance", r.TaxAllowance)
		add("take_home", s.Name, "Taxable income", r.TaxableIncome)
		addItems("take_home", s.Name, "Income tax", r.IncomeTax)
		addItems("take_home", s.Name, "National Insurance", r.EmployeeNI)
		addItems("take_home", s.Name, "Student loan", r.StudentLoanRepayments)
		add("take_home", s.Name, "Pension", r.PensionContribution.Total)
		add("take_home", s.Name, "Take-home pay", r.TakeHomePay)
		add("take_home", s.Name, "Monthly take-home", r.Periods.Monthly)
		add("take_home", s.Name, "Weekly take-home", r.Periods.Weekly)
		add("take_home", s.Name, "Daily take-home", r.Periods.Daily)
		add("take_home", s.Name, "Hourly take-home", r.Periods.Hourly)
	}
	if m := report.Mortgage; m != nil {
		add("mortgage", "", "Loan amount", m.LoanAmount)
		add("mortgage", "", "Monthly payment", m.MonthlyPayment)
		add("mortgage", "", "Total interest", m.TotalInterest)
		add("mortgage", "", "Interest saved", m.InterestSaved)
		for _, row := range m.Schedule {
			year := "Year " + strconv.Itoa(row.Year)
			add("mortgage", year, "Principal", row.PrincipalPaid)
			add("mortgage", year, "Interest", row.InterestPaid)
			add("mortgage", year, "Balance", row.RemainingBalance)
		}
	}
	if p := report.PropertyTax; p != nil {
		for _, b := range p.Breakdown {
			add("property_tax", p.Tax, b.Label, b.Amount)
		}
		add("property_tax", p.Tax, "Total", p.StampDuty)
		add("property_tax", p.Tax, "Effective rate", p.EffectiveRate)
	}
	if p := report.Projection; p != nil {
		for _, y := range p.YearlyProjections {
			age := "Age " + strconv.Itoa(y.Age)
			add("pension_projection", age, "Nominal", y.NominalValue)
			add("pension_projection", age, "Real", y.RealValue)
		}
		add("pension_projection", "", "Projected pot", p.Summary.ProjectedValue)
	}
	if c := report.Compound; c != nil {
		for _, y := range c.YearlyData {
			add("compound_interest", "Year "+strconv.Itoa(y.Year), "Balance", y.Balance)
		}
		add("compound_interest", "", "Final balance", c.FinalBalance)
	}
	if p := report.PurchasingPower; p != nil {
		for _, y := range p.YearlyBreakdown {
			add("purchasing_power", strconv.Itoa(y.Year), "Amount", y.Amount)
		}
		add("purchasing_power", "", "Adjusted amount", p.AdjustedAmount)
	}
	if b := report.ChildBenefit; b != nil {
		add("child_benefit", "", "Annual", b.Annual)
		add("child_benefit", "", "Charge", b.Charge)
		add("child_benefit", "", "Net annual", b.NetAnnual)
	}
	if c := report.Childcare; c != nil {
		for _, m := range c.Projection {
			add("childcare", m.Label, "Cost", m.Cost)
		}
	}
	if f := report.CarFinance; f != nil {
		add("car_finance", f.Product, "Monthly payment", f.MonthlyPayment)
		add("car_finance", f.Product, "Balloon payment", f.BalloonPayment)
		add("car_finance", f.Product, "Total payable", f.TotalPayable)
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
