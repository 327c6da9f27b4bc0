package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
)

// Typical UK dealer rates used when no APR is quoted
var (
	DefaultPCPAPR = decimal.NewFromFloat(8.9)
	DefaultHPAPR  = decimal.NewFromFloat(7.9)
)

type financedAmount struct {
	apr     decimal.Decimal
	rate    decimal.Decimal
	deposit decimal.Decimal
	amount  decimal.Decimal
	term    int
}

func carFinance(in domain.CarFinanceInputs, defaultAPR decimal.Decimal) financedAmount {
	apr := defaultAPR
	if in.APR != nil {
		apr = *in.APR
	}
	term := in.TermMonths
	if term < 0 {
		term = 0
	}
	deposit := in.CarValue.Mul(in.DepositPercentage).Div(hundred)
	return financedAmount{
		apr:     apr,
		rate:    monthlyRate(apr),
		deposit: deposit,
		amount:  in.CarValue.Sub(deposit),
		term:    term,
	}
}

// BalloonPercentage is the guaranteed future value as a share of the car's price:
// 35% less ten points for every five years of term.
func BalloonPercentage(termMonths int) decimal.Decimal {
	return decimal.NewFromInt(35).Sub(decimal.NewFromInt(int64(termMonths)).Div(decimal.NewFromInt(60)).Mul(decimal.NewFromInt(10)))
}

// CalculatePCP prices a Personal Contract Purchase. The monthly payments repay the
// amount financed less the present value of the balloon.
func CalculatePCP(in domain.CarFinanceInputs) domain.CarFinanceResult {
	f := carFinance(in, DefaultPCPAPR)
	balloon := in.CarValue.Mul(BalloonPercentage(f.term)).Div(hundred)

	discount := decimal.NewFromInt(1).Add(f.rate).Pow(decimal.NewFromInt(int64(f.term)))
	principal := f.amount.Sub(balloon.Div(discount))
	payment := annuityPayment(principal, f.rate, f.term)

	total := f.deposit.Add(payment.Mul(decimal.NewFromInt(int64(f.term)))).Add(balloon)
	return domain.CarFinanceResult{
		Product:        "PCP",
		MonthlyPayment: payment,
		Deposit:        f.deposit,
		BalloonPayment: balloon,
		TotalPayable:   total,
		TotalInterest:  total.Sub(in.CarValue),
		APR:            f.apr,
		TermMonths:     f.term,
	}
}

// CalculateHP prices a Hire Purchase agreement repaid in equal instalments
func CalculateHP(in domain.CarFinanceInputs) domain.CarFinanceResult {
	f := carFinance(in, DefaultHPAPR)
	payment := annuityPayment(f.amount, f.rate, f.term)

	total := f.deposit.Add(payment.Mul(decimal.NewFromInt(int64(f.term))))
	return domain.CarFinanceResult{
		Product:        "HP",
		MonthlyPayment: payment,
		Deposit:        f.deposit,
		BalloonPayment: decimal.Zero,
		TotalPayable:   total,
		TotalInterest:  total.Sub(in.CarValue),
		APR:            f.apr,
		TermMonths:     f.term,
	}
}
