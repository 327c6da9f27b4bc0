package transform

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
)

// SetPension replaces the pension arrangement. An empty Scheme keeps the
// scenario's current scheme, so only the contribution changes.
type SetPension struct {
	Scheme domain.PensionScheme
	Value  decimal.Decimal
	Kind   domain.PensionValueKind
}

func (sp *SetPension) Name() string {
	return "set_pension"
}

func (sp *SetPension) Description() string {
	scheme := string(sp.Scheme)
	if scheme == "" {
		scheme = "current scheme"
	}
	if sp.Kind == domain.ValueNominal {
		return fmt.Sprintf("Contribute £%s a year to %s", sp.Value, scheme)
	}
	return fmt.Sprintf("Contribute %s%% of salary to %s", sp.Value, scheme)
}

func (sp *SetPension) scheme(base *domain.Scenario) domain.PensionScheme {
	if sp.Scheme != "" {
		return sp.Scheme
	}
	if base.Pension != nil {
		return base.Pension.Scheme
	}
	return domain.SchemeNone
}

func (sp *SetPension) Validate(base *domain.Scenario) error {
	if err := requireBase(sp.Name(), base); err != nil {
		return err
	}
	if sp.Scheme != "" {
		if _, err := domain.ParsePensionScheme(string(sp.Scheme)); err != nil {
			return NewTransformError(sp.Name(), "validate", "invalid scheme", err)
		}
	}
	scheme := sp.scheme(base)
	if scheme == domain.SchemeNone && sp.Value.IsPositive() {
		return NewTransformError(sp.Name(), "validate", "scenario has no pension scheme; name one with scheme=", nil)
	}
	if sp.Value.IsNegative() {
		return NewTransformError(sp.Name(), "validate", "contribution cannot be negative", nil)
	}
	switch sp.Kind {
	case "", domain.ValuePercentage:
		if sp.Value.GreaterThan(decimal.NewFromInt(100)) {
			return NewTransformError(sp.Name(), "validate", fmt.Sprintf("percentage must be at most 100, got %s", sp.Value), nil)
		}
	case domain.ValueNominal:
		if scheme.Banded() {
			return NewTransformError(sp.Name(), "validate", fmt.Sprintf("scheme %s only takes a percentage", scheme), nil)
		}
	default:
		return NewTransformError(sp.Name(), "validate", fmt.Sprintf("unknown value kind %q", sp.Kind), nil)
	}
	return nil
}

func (sp *SetPension) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	kind := sp.Kind
	if kind == "" {
		kind = domain.ValuePercentage
	}
	modified.Pension = &domain.PensionSpec{
		Scheme:    sp.scheme(base),
		Value:     sp.Value,
		ValueKind: kind,
	}
	return modified, nil
}

// RemovePension drops the pension contribution
type RemovePension struct{}

func (rp *RemovePension) Name() string {
	return "remove_pension"
}

func (rp *RemovePension) Description() string {
	return "Stop pension contributions"
}

func (rp *RemovePension) Validate(base *domain.Scenario) error {
	return requireBase(rp.Name(), base)
}

func (rp *RemovePension) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Pension = nil
	return modified, nil
}
