package breakeven

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/calculation"
	"github.com/ukcalc/ukcalc/internal/domain"
	"github.com/ukcalc/ukcalc/internal/transform"
)

var (
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// Solver searches for the salary or pension contribution that meets a goal
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// AdjustedIncome is gross income less pension contributions, the figure the
// personal allowance taper and the child benefit charge are assessed on.
func AdjustedIncome(r *domain.TakeHomeResult) decimal.Decimal {
	return r.AnnualGrossIncome.Total.Sub(r.PensionContribution.Total)
}

// Solve performs the search named by req.Target
func (s *Solver) Solve(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	if req.Target == TargetAdjustedIncome && req.Scheme == "" {
		req.Scheme = defaultScheme(req.Base)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}

	switch req.Target {
	case TargetTakeHome:
		if req.Tolerance.IsZero() {
			req.Tolerance = s.Options.SalaryTolerance
		}
		return s.solveTakeHome(ctx, req)
	case TargetAdjustedIncome:
		if req.Tolerance.IsZero() {
			req.Tolerance = s.Options.PercentTolerance
		}
		return s.solveAdjustedIncome(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("unsupported target: %s", req.Target),
		}
	}
}

func defaultScheme(base *domain.Scenario) domain.PensionScheme {
	if base != nil && base.Pension != nil && base.Pension.Scheme != "" && base.Pension.Scheme != domain.SchemeNone {
		return base.Pension.Scheme
	}
	return domain.SchemeSalarySacrifice
}

// evaluate applies t to the base scenario and calculates the result
func (s *Solver) evaluate(ctx context.Context, req SolveRequest, op string, t transform.ScenarioTransform) (*domain.Scenario, *domain.TakeHomeResult, error) {
	scenario, err := transform.ApplyTransforms(req.Base, []transform.ScenarioTransform{t})
	if err != nil {
		return nil, nil, &BreakEvenError{
			Operation: op,
			Message:   "failed to apply transform",
			Cause:     err,
		}
	}
	result, err := s.CalcEngine.RunScenario(ctx, req.Config, scenario)
	if err != nil {
		return nil, nil, &BreakEvenError{
			Operation: op,
			Message:   "failed to calculate scenario",
			Cause:     err,
		}
	}
	return scenario, result, nil
}

// solveTakeHome bisects on gross salary. Take-home never falls as salary
// rises, so the smallest salary meeting the target is found.
func (s *Solver) solveTakeHome(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	const op = "solve_take_home"
	at := func(salary decimal.Decimal) (*domain.Scenario, *domain.TakeHomeResult, error) {
		return s.evaluate(ctx, req, op, &transform.SetSalary{Amount: salary})
	}

	lo := decimal.Zero
	hi := decimal.Max(req.Amount.Mul(two), decimal.NewFromInt(1000))
	iterations := 0

	// Widen until the upper bound pays enough.
	for {
		iterations++
		_, r, err := at(hi)
		if err != nil {
			return nil, err
		}
		if r.TakeHomePay.GreaterThanOrEqual(req.Amount) {
			break
		}
		if iterations >= req.MaxIterations {
			return nil, &BreakEvenError{
				Operation: op,
				Message:   fmt.Sprintf("no salary up to £%s reaches a take-home of £%s", hi.StringFixed(0), req.Amount.StringFixed(2)),
			}
		}
		lo = hi
		hi = hi.Mul(two)
	}

	for hi.Sub(lo).GreaterThan(req.Tolerance) && iterations < req.MaxIterations {
		iterations++
		mid := lo.Add(hi).Div(two)
		_, r, err := at(mid)
		if err != nil {
			return nil, err
		}
		if r.TakeHomePay.GreaterThanOrEqual(req.Amount) {
			hi = mid
		} else {
			lo = mid
		}
	}
	converged := hi.Sub(lo).LessThanOrEqual(req.Tolerance)

	scenario, r, err := at(hi.Ceil())
	if err != nil {
		return nil, err
	}
	result, err := s.newResult(ctx, req, scenario, r, iterations)
	if err != nil {
		return nil, err
	}
	result.Success = converged && r.TakeHomePay.GreaterThanOrEqual(req.Amount)
	if result.Success {
		result.ConvergenceInfo = fmt.Sprintf("Converged to within £%s of salary", req.Tolerance.StringFixed(2))
	} else {
		result.ConvergenceInfo = fmt.Sprintf("Stopped after %d iterations", iterations)
	}
	return result, nil
}

// solveAdjustedIncome bisects on the pension percentage under req.Scheme
func (s *Solver) solveAdjustedIncome(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	const op = "solve_adjusted_income"
	at := func(percent decimal.Decimal) (*domain.Scenario, *domain.TakeHomeResult, error) {
		return s.evaluate(ctx, req, op, &transform.SetPension{
			Scheme: req.Scheme,
			Value:  percent,
			Kind:   domain.ValuePercentage,
		})
	}
	finish := func(percent decimal.Decimal, iterations int, success bool, info string) (*SolveResult, error) {
		scenario, r, err := at(percent)
		if err != nil {
			return nil, err
		}
		result, err := s.newResult(ctx, req, scenario, r, iterations)
		if err != nil {
			return nil, err
		}
		result.Success = success
		result.ConvergenceInfo = info
		return result, nil
	}

	_, r, err := at(decimal.Zero)
	if err != nil {
		return nil, err
	}
	if AdjustedIncome(r).LessThanOrEqual(req.Amount) {
		return finish(decimal.Zero, 1, true,
			fmt.Sprintf("Adjusted income is already at or below £%s", req.Amount.StringFixed(0)))
	}

	_, r, err = at(hundred)
	if err != nil {
		return nil, err
	}
	if AdjustedIncome(r).GreaterThan(req.Amount) {
		return finish(hundred, 2, false,
			fmt.Sprintf("Not reachable through %s: adjusted income is £%s at 100%%", req.Scheme, AdjustedIncome(r).StringFixed(2)))
	}

	lo, hi := decimal.Zero, hundred
	iterations := 2
	for hi.Sub(lo).GreaterThan(req.Tolerance) && iterations < req.MaxIterations {
		iterations++
		mid := lo.Add(hi).Div(two)
		_, r, err := at(mid)
		if err != nil {
			return nil, err
		}
		if AdjustedIncome(r).LessThanOrEqual(req.Amount) {
			hi = mid
		} else {
			lo = mid
		}
	}
	converged := hi.Sub(lo).LessThanOrEqual(req.Tolerance)

	// Round up to two decimal places so the ceiling still holds.
	percent := decimal.Min(hi.Mul(hundred).Ceil().Div(hundred), hundred)
	info := fmt.Sprintf("Converged to within %s percentage points", req.Tolerance.String())
	if !converged {
		info = fmt.Sprintf("Stopped after %d iterations", iterations)
	}
	return finish(percent, iterations, converged, info)
}

// newResult fills in the solved figures and the comparison to the base scenario
func (s *Solver) newResult(ctx context.Context, req SolveRequest, scenario *domain.Scenario, r *domain.TakeHomeResult, iterations int) (*SolveResult, error) {
	base, err := s.CalcEngine.RunScenario(ctx, req.Config, req.Base)
	if err != nil {
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   "failed to calculate base scenario",
			Cause:     err,
		}
	}

	result := &SolveResult{
		Request:              req,
		Target:               req.Target,
		Amount:               req.Amount,
		Iterations:           iterations,
		GrossSalary:          scenario.GrossSalary,
		Scenario:             scenario,
		Result:               r,
		TakeHome:             r.TakeHomePay,
		AdjustedIncome:       AdjustedIncome(r),
		BaseTakeHome:         base.TakeHomePay,
		TakeHomeDiffFromBase: r.TakeHomePay.Sub(base.TakeHomePay),
		PensionDiffFromBase:  r.PensionContribution.Total.Sub(base.PensionContribution.Total),
	}
	if scenario.Pension != nil && scenario.Pension.Scheme != domain.SchemeNone {
		result.PensionScheme = scenario.Pension.Scheme
		if req.Target == TargetAdjustedIncome {
			percent := scenario.Pension.Value
			result.PensionPercent = &percent
		}
	}
	return result, nil
}
