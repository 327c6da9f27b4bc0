package breakeven

import (
	"context"

	"github.com/ukcalc/ukcalc/internal/domain"
)

// ThresholdResult is the pension needed to get under one income threshold
type ThresholdResult struct {
	Label  string       `json:"label"`
	Result *SolveResult `json:"result"`
}

// SolveThresholds solves the adjusted income target for the child benefit
// charge threshold and the personal allowance taper of the scenario's tax year.
// Thresholds the scenario is already below are reported with a zero percentage.
func (s *Solver) SolveThresholds(
	ctx context.Context,
	base *domain.Scenario,
	config *domain.Configuration,
	scheme domain.PensionScheme,
) ([]ThresholdResult, error) {
	id := base.TaxYear
	if id == "" && config != nil {
		id = config.TaxYear
	}
	if id == "" {
		id = s.CalcEngine.TaxCalc.TaxYear.ID
	}
	ty, err := s.CalcEngine.TaxYears.Get(id)
	if err != nil {
		return nil, &BreakEvenError{
			Operation: "solve_thresholds",
			Message:   "unknown tax year",
			Cause:     err,
		}
	}

	thresholds := []struct {
		label string
		req   SolveRequest
	}{
		{"High income child benefit charge", SolveRequest{Amount: ty.ChildBenefit.ChargeThreshold}},
		{"Personal allowance taper", SolveRequest{Amount: ty.Allowance.TaperThreshold}},
	}

	results := make([]ThresholdResult, 0, len(thresholds))
	for _, th := range thresholds {
		req := th.req
		req.Base = base
		req.Config = config
		req.Target = TargetAdjustedIncome
		req.Scheme = scheme

		result, err := s.Solve(ctx, req)
		if err != nil {
			return nil, err
		}
		results = append(results, ThresholdResult{Label: th.label, Result: result})
	}
	return results, nil
}
