package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
)

// CalculateBonusMonth estimates the pay packet for the month a bonus is paid.
//
// PAYE is approximated on an annualised basis: the month carries the extra annual
// tax the bonus causes plus one twelfth of the regular annual tax. When the bonus
// pushes annualised income into the allowance taper, the lost allowance is charged
// at the higher rate, spread over twelve months.
func (ctc *ComprehensiveTaxCalculator) CalculateBonusMonth(in domain.BonusMonthInputs) domain.PayPeriod {
	twelve := decimal.NewFromInt(12)

	monthGross := in.RegularMonthlyGross.Add(in.BonusAmount)
	regularAnnual := in.RegularMonthlyGross.Mul(twelve)
	annualWithBonus := regularAnnual.Add(in.BonusAmount)

	allowance := ctc.PersonalAllowance(annualWithBonus)
	taxable := decimal.Max(decimal.Zero,
		monthGross.Sub(allowance.Div(twelve)).Sub(in.PensionContribution.Div(twelve)))

	regularTax := ctc.CalculateIncomeTax(regularAnnual, in.ResidentInScotland).Tax
	totalTax := ctc.CalculateIncomeTax(annualWithBonus, in.ResidentInScotland).Tax
	tax := totalTax.Sub(regularTax).Add(regularTax.Div(twelve))

	if annualWithBonus.GreaterThan(ctc.TaxYear.Allowance.TaperThreshold) {
		lost := ctc.Allowance.AllowanceLoss(annualWithBonus)
		tax = tax.Add(lost.Mul(ctc.HigherRate(in.ResidentInScotland)).Div(twelve))
	}

	ni := decimal.Zero
	if !in.ExcludeNI {
		ni = ctc.CalculateMonthlyNI(monthGross)
	}

	studentLoan := ctc.CalculateTotalStudentLoans(monthGross.Mul(twelve), in.StudentLoanPlans).MonthlyRepayment

	period := domain.PayPeriod{
		GrossPay:      monthGross,
		TaxableIncome: taxable,
		Tax:           tax,
		NI:            ni,
		StudentLoan:   studentLoan,
		// the whole annual contribution is attributed to the bonus month
		PensionContribution: in.PensionContribution,
	}
	period.TakeHome = monthGross.Sub(period.Deductions())
	return period
}
