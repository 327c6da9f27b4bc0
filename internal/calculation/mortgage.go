package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
)

// simulationPlaces bounds the precision carried through month-by-month loops
const simulationPlaces = 10

// monthlyRate converts an annual percentage rate to a monthly fraction
func monthlyRate(apr decimal.Decimal) decimal.Decimal {
	return apr.Div(hundred).Div(decimal.NewFromInt(12))
}

// annuityPayment is PMT = P·r·(1+r)^n / ((1+r)^n − 1). A zero rate spreads the
// principal evenly.
func annuityPayment(principal, rate decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(months))
	if rate.IsZero() {
		return principal.Div(n)
	}
	growth := decimal.NewFromInt(1).Add(rate).Pow(n)
	return principal.Mul(rate).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1)))
}

// mortgagePayment is the contractual monthly payment before any overpayment
func mortgagePayment(loan, apr decimal.Decimal, months int, interestOnly bool) decimal.Decimal {
	r := monthlyRate(apr)
	if interestOnly {
		return loan.Mul(r)
	}
	return annuityPayment(loan, r, months)
}

type amortization struct {
	months        int
	totalInterest decimal.Decimal
	schedule      []domain.AmortizationRow
}

// amortize runs the loan month by month, charging interest then taking the payment,
// until the balance is cleared or the term ends. An interest-only balance left at
// the end of the term is repaid as a lump sum.
func amortize(loan, apr, payment, overpayment decimal.Decimal, termMonths int) amortization {
	r := monthlyRate(apr)
	balance := loan
	result := amortization{totalInterest: decimal.Zero}

	row := domain.AmortizationRow{Year: 1, PrincipalPaid: decimal.Zero, InterestPaid: decimal.Zero}
	for result.months < termMonths && balance.IsPositive() {
		interest := balance.Mul(r).Round(simulationPlaces)
		paid := decimal.Min(payment.Add(overpayment), balance.Add(interest))
		balance = balance.Add(interest).Sub(paid)
		result.months++
		result.totalInterest = result.totalInterest.Add(interest)

		row.InterestPaid = row.InterestPaid.Add(interest)
		row.PrincipalPaid = row.PrincipalPaid.Add(paid.Sub(interest))
		if result.months%12 == 0 || result.months == termMonths || !balance.IsPositive() {
			if result.months == termMonths && balance.IsPositive() {
				row.PrincipalPaid = row.PrincipalPaid.Add(balance)
				balance = decimal.Zero
			}
			row.RemainingBalance = balance
			result.schedule = append(result.schedule, row)
			row = domain.AmortizationRow{Year: row.Year + 1, PrincipalPaid: decimal.Zero, InterestPaid: decimal.Zero}
		}
	}
	return result
}

// CalculateMortgageResults computes the payment, total cost, the effect of a
// monthly overpayment and the payment one percentage point either side of the APR.
func CalculateMortgageResults(in domain.MortgageInputs) domain.MortgageResults {
	loan := decimal.Max(decimal.Zero, in.HomePrice.Sub(in.Deposit))
	overpayment := decimal.Max(decimal.Zero, in.Overpayment)
	term := in.TermMonths
	if term < 0 {
		term = 0
	}
	n := decimal.NewFromInt(int64(term))

	payment := mortgagePayment(loan, in.APR, term, in.InterestOnly)
	totalPayment := payment.Mul(n)
	if in.InterestOnly {
		totalPayment = totalPayment.Add(loan)
	}
	totalInterest := totalPayment.Sub(loan)
	if term == 0 {
		totalPayment = decimal.Zero
		totalInterest = decimal.Zero
	}

	one := decimal.NewFromInt(1)
	results := domain.MortgageResults{
		LoanAmount:                   loan,
		PrincipalAndInterest:         payment,
		MonthlyPayment:               payment.Add(overpayment),
		TotalPayment:                 totalPayment,
		TotalInterest:                totalInterest,
		TotalInterestWithOverpayment: totalInterest,
		InterestSaved:                decimal.Zero,
		NewTermMonths:                term,
		HigherRatePayment:            mortgagePayment(loan, in.APR.Add(one), term, in.InterestOnly),
		LowerRatePayment:             mortgagePayment(loan, decimal.Max(decimal.Zero, in.APR.Sub(one)), term, in.InterestOnly),
	}

	run := amortize(loan, in.APR, payment, overpayment, term)
	results.Schedule = run.schedule
	if overpayment.IsPositive() {
		results.TotalInterestWithOverpayment = run.totalInterest
		results.InterestSaved = decimal.Max(decimal.Zero, totalInterest.Sub(run.totalInterest))
		results.NewTermMonths = run.months
		results.MonthsReduced = term - run.months
	}
	return results
}
