package domain

import (
	"github.com/shopspring/decimal"
)

// CarFinanceInputs describes a car finance agreement. A nil APR uses the product default.
type CarFinanceInputs struct {
	CarValue          decimal.Decimal  `yaml:"car_value" json:"car_value"`
	DepositPercentage decimal.Decimal  `yaml:"deposit_percentage" json:"deposit_percentage"`
	TermMonths        int              `yaml:"term_months" json:"term_months"`
	APR               *decimal.Decimal `yaml:"apr,omitempty" json:"apr,omitempty"`
}

// CarFinanceResult is the cost of a PCP or HP agreement
type CarFinanceResult struct {
	Product        string          `json:"product"` // "PCP" or "HP"
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	Deposit        decimal.Decimal `json:"deposit"`
	BalloonPayment decimal.Decimal `json:"balloon_payment"` // zero for HP
	TotalPayable   decimal.Decimal `json:"total_payable"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	APR            decimal.Decimal `json:"apr"`
	TermMonths     int             `json:"term_months"`
}
