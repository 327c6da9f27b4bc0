package breakeven

import (
	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
)

// SolveTarget defines what the solver searches for
type SolveTarget string

const (
	// TargetTakeHome finds the gross salary that pays a given annual take-home
	TargetTakeHome SolveTarget = "take_home"
	// TargetAdjustedIncome finds the pension percentage that brings adjusted
	// net income down to a ceiling
	TargetAdjustedIncome SolveTarget = "adjusted_income"
)

// ParseSolveTarget resolves a target name; "salary" and "sacrifice" are accepted as aliases.
func ParseSolveTarget(s string) (SolveTarget, bool) {
	switch s {
	case "take_home", "takehome", "salary":
		return TargetTakeHome, true
	case "adjusted_income", "sacrifice":
		return TargetAdjustedIncome, true
	}
	return "", false
}

// SolveRequest defines the parameters for a solver run
type SolveRequest struct {
	Base   *domain.Scenario
	Config *domain.Configuration
	Target SolveTarget

	// Amount is the take-home to reach, or the adjusted income ceiling
	Amount decimal.Decimal

	// Scheme carries the pension for TargetAdjustedIncome; empty means the
	// base scenario's scheme, or salary sacrifice when it has none.
	Scheme domain.PensionScheme

	MaxIterations int
	Tolerance     decimal.Decimal // pounds of salary, or percentage points
}

// SolveResult contains the outcome of a solver run
type SolveResult struct {
	Request         SolveRequest    `json:"-"`
	Target          SolveTarget     `json:"target"`
	Amount          decimal.Decimal `json:"amount"`
	Success         bool            `json:"success"`
	Iterations      int             `json:"iterations"`
	ConvergenceInfo string          `json:"convergence_info,omitempty"`

	// Solved parameters
	GrossSalary    decimal.Decimal      `json:"gross_salary"`
	PensionScheme  domain.PensionScheme `json:"pension_scheme,omitempty"`
	PensionPercent *decimal.Decimal     `json:"pension_percent,omitempty"`

	// Results at the solved parameters
	Scenario       *domain.Scenario       `json:"-"`
	Result         *domain.TakeHomeResult `json:"-"`
	TakeHome       decimal.Decimal        `json:"take_home"`
	AdjustedIncome decimal.Decimal        `json:"adjusted_income"`

	// Comparison to base
	BaseTakeHome         decimal.Decimal `json:"base_take_home"`
	TakeHomeDiffFromBase decimal.Decimal `json:"take_home_diff_from_base"`
	PensionDiffFromBase  decimal.Decimal `json:"pension_diff_from_base"`
}

// SolverOptions configures the bisection
type SolverOptions struct {
	MaxIterations    int
	SalaryTolerance  decimal.Decimal // £ of gross salary
	PercentTolerance decimal.Decimal // percentage points of contribution
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations:    60,
		SalaryTolerance:  decimal.NewFromInt(1),
		PercentTolerance: decimal.NewFromFloat(0.01),
	}
}

// Validate checks the request before any calculation runs
func (r *SolveRequest) Validate() error {
	if r.Base == nil {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "base scenario is required",
		}
	}
	if !r.Amount.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "amount must be positive",
		}
	}
	if r.Target == TargetAdjustedIncome {
		if !r.Base.GrossSalary.IsPositive() {
			return &BreakEvenError{
				Operation: "validate_request",
				Message:   "base scenario needs a salary to sacrifice from",
			}
		}
		if r.Scheme == domain.SchemeNone {
			return &BreakEvenError{
				Operation: "validate_request",
				Message:   "a pension scheme is required",
			}
		}
	}
	return nil
}

// BreakEvenError represents errors from the solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
