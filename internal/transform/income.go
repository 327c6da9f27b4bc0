package transform

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
)

// AdjustSalary changes the gross salary by a percentage, a fixed amount, or both.
// The percentage is applied first.
type AdjustSalary struct {
	Percent decimal.Decimal // 10 = a 10% rise, -5 = a 5% cut
	Amount  decimal.Decimal
}

func (as *AdjustSalary) Name() string {
	return "adjust_salary"
}

func (as *AdjustSalary) Description() string {
	switch {
	case !as.Percent.IsZero() && !as.Amount.IsZero():
		return fmt.Sprintf("Change salary by %s%% and £%s", as.Percent, as.Amount)
	case !as.Amount.IsZero():
		return fmt.Sprintf("Change salary by £%s", as.Amount)
	}
	return fmt.Sprintf("Change salary by %s%%", as.Percent)
}

func (as *AdjustSalary) Validate(base *domain.Scenario) error {
	if err := requireBase(as.Name(), base); err != nil {
		return err
	}
	if as.Percent.LessThanOrEqual(decimal.NewFromInt(-100)) {
		return NewTransformError(as.Name(), "validate", fmt.Sprintf("percent must be above -100, got %s", as.Percent), nil)
	}
	return nil
}

func (as *AdjustSalary) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	factor := decimal.NewFromInt(1).Add(as.Percent.Div(decimal.NewFromInt(100)))
	salary := modified.GrossSalary.Mul(factor).Add(as.Amount)
	if salary.IsNegative() {
		return nil, NewTransformError(as.Name(), "apply", fmt.Sprintf("salary would be negative (%s)", salary.StringFixed(2)), nil)
	}
	modified.GrossSalary = salary.Round(2)
	return modified, nil
}

// SetSalary replaces the gross salary
type SetSalary struct {
	Amount decimal.Decimal
}

func (ss *SetSalary) Name() string {
	return "set_salary"
}

func (ss *SetSalary) Description() string {
	return fmt.Sprintf("Set salary to £%s", ss.Amount)
}

func (ss *SetSalary) Validate(base *domain.Scenario) error {
	if err := requireBase(ss.Name(), base); err != nil {
		return err
	}
	if ss.Amount.IsNegative() {
		return NewTransformError(ss.Name(), "validate", "salary cannot be negative", nil)
	}
	return nil
}

func (ss *SetSalary) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.GrossSalary = ss.Amount
	return modified, nil
}

// SetBonus replaces the annual bonus
type SetBonus struct {
	Amount decimal.Decimal
}

func (sb *SetBonus) Name() string {
	return "set_bonus"
}

func (sb *SetBonus) Description() string {
	if sb.Amount.IsZero() {
		return "Remove the bonus"
	}
	return fmt.Sprintf("Set bonus to £%s", sb.Amount)
}

func (sb *SetBonus) Validate(base *domain.Scenario) error {
	if err := requireBase(sb.Name(), base); err != nil {
		return err
	}
	if sb.Amount.IsNegative() {
		return NewTransformError(sb.Name(), "validate", "bonus cannot be negative", nil)
	}
	return nil
}

func (sb *SetBonus) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.GrossBonus = sb.Amount
	return modified, nil
}
