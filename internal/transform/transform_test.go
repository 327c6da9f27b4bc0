package transform

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
)

// Helper function to create a basic test scenario
func createTestScenario() *domain.Scenario {
	return &domain.Scenario{
		Name: "Test Scenario",
		TaxInputs: domain.TaxInputs{
			GrossSalary:      decimal.NewFromInt(40000),
			GrossBonus:       decimal.NewFromInt(2000),
			StudentLoanPlans: []domain.StudentLoanPlan{domain.PlanOne},
			Pension: &domain.PensionSpec{
				Scheme:    domain.SchemeAutoEnrolment,
				Value:     decimal.NewFromInt(5),
				ValueKind: domain.ValuePercentage,
			},
		},
	}
}

func TestApplyTransforms_NilScenario(t *testing.T) {
	transforms := []ScenarioTransform{
		&AdjustSalary{Percent: decimal.NewFromInt(10)},
	}

	_, err := ApplyTransforms(nil, transforms)
	if err == nil {
		t.Error("Expected error for nil scenario, got nil")
	}
}

func TestApplyTransforms_EmptyTransforms(t *testing.T) {
	base := createTestScenario()

	result, err := ApplyTransforms(base, []ScenarioTransform{})
	if err != nil {
		t.Fatalf("Expected no error for empty transforms, got: %v", err)
	}

	if result == nil {
		t.Fatal("Expected non-nil result")
	}

	// Should return a copy, not the same instance
	if result == base {
		t.Error("Expected a copy, got same instance")
	}

	if result.Name != base.Name {
		t.Errorf("Expected name %s, got %s", base.Name, result.Name)
	}
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	base := createTestScenario()
	transforms := []ScenarioTransform{
		&AdjustSalary{Percent: decimal.NewFromInt(10)},
		nil,
	}

	_, err := ApplyTransforms(base, transforms)
	if err == nil {
		t.Error("Expected error for nil transform in list, got nil")
	}
}

func TestApplyTransforms_ValidationFailure(t *testing.T) {
	base := createTestScenario()
	transforms := []ScenarioTransform{
		&RemoveStudentLoan{Plan: domain.PlanTwo},
	}

	_, err := ApplyTransforms(base, transforms)
	if err == nil {
		t.Fatal("Expected validation error for a plan the scenario does not have, got nil")
	}

	var transformErr *TransformError
	if !errors.As(err, &transformErr) {
		t.Fatalf("Expected a TransformError in the chain, got %T", err)
	}
	if transformErr.Operation != "validate" {
		t.Errorf("Expected operation validate, got %s", transformErr.Operation)
	}
}

func TestApplyTransforms_Chain(t *testing.T) {
	base := createTestScenario()

	transforms := []ScenarioTransform{
		&AdjustSalary{Percent: decimal.NewFromInt(10)},
		&SetPension{Scheme: domain.SchemeSalarySacrifice, Value: decimal.NewFromInt(8)},
		&SetResidency{Scotland: true},
		&AddStudentLoan{Plan: domain.PlanPostgrad},
	}

	result, err := ApplyTransforms(base, transforms)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !result.GrossSalary.Equal(decimal.NewFromInt(44000)) {
		t.Errorf("Expected salary 44000, got %s", result.GrossSalary)
	}
	if result.Pension.Scheme != domain.SchemeSalarySacrifice || !result.Pension.Value.Equal(decimal.NewFromInt(8)) {
		t.Errorf("Expected 8%% salary sacrifice, got %+v", result.Pension)
	}
	if !result.ResidentInScotland {
		t.Error("Expected Scottish residency")
	}
	if len(result.StudentLoanPlans) != 2 {
		t.Errorf("Expected 2 student loan plans, got %v", result.StudentLoanPlans)
	}

	// Original should be unchanged
	if !base.GrossSalary.Equal(decimal.NewFromInt(40000)) {
		t.Error("Original salary was modified")
	}
	if base.Pension.Scheme != domain.SchemeAutoEnrolment {
		t.Error("Original pension was modified")
	}
	if base.ResidentInScotland {
		t.Error("Original residency was modified")
	}
	if len(base.StudentLoanPlans) != 1 {
		t.Error("Original student loan plans were modified")
	}
}

func TestAdjustSalary(t *testing.T) {
	tests := []struct {
		name      string
		transform *AdjustSalary
		expected  string
		wantErr   bool
	}{
		{"rise", &AdjustSalary{Percent: decimal.NewFromInt(5)}, "42000", false},
		{"cut", &AdjustSalary{Percent: decimal.NewFromInt(-25)}, "30000", false},
		{"amount", &AdjustSalary{Amount: decimal.NewFromInt(1500)}, "41500", false},
		{"both", &AdjustSalary{Percent: decimal.NewFromInt(10), Amount: decimal.NewFromInt(-4000)}, "40000", false},
		{"negative result", &AdjustSalary{Amount: decimal.NewFromInt(-50000)}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := createTestScenario()
			if err := tt.transform.Validate(base); err != nil {
				t.Fatalf("Validate: %v", err)
			}
			result, err := tt.transform.Apply(base)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if result.GrossSalary.String() != tt.expected {
				t.Errorf("Expected salary %s, got %s", tt.expected, result.GrossSalary)
			}
		})
	}

	if err := (&AdjustSalary{Percent: decimal.NewFromInt(-100)}).Validate(createTestScenario()); err == nil {
		t.Error("Expected error for a 100% cut")
	}
}

func TestSetBonus(t *testing.T) {
	base := createTestScenario()

	result, err := ApplyTransforms(base, []ScenarioTransform{&SetBonus{Amount: decimal.Zero}})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !result.GrossBonus.IsZero() {
		t.Errorf("Expected no bonus, got %s", result.GrossBonus)
	}

	if err := (&SetBonus{Amount: decimal.NewFromInt(-1)}).Validate(base); err == nil {
		t.Error("Expected error for a negative bonus")
	}
}

func TestSetPension(t *testing.T) {
	t.Run("keeps current scheme", func(t *testing.T) {
		result, err := ApplyTransforms(createTestScenario(), []ScenarioTransform{
			&SetPension{Value: decimal.NewFromInt(8)},
		})
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if result.Pension.Scheme != domain.SchemeAutoEnrolment {
			t.Errorf("Expected auto_enrolment, got %s", result.Pension.Scheme)
		}
		if result.Pension.ValueKind != domain.ValuePercentage {
			t.Errorf("Expected percentage, got %s", result.Pension.ValueKind)
		}
	})

	t.Run("nominal on banded scheme", func(t *testing.T) {
		err := (&SetPension{Value: decimal.NewFromInt(2000), Kind: domain.ValueNominal}).Validate(createTestScenario())
		if err == nil {
			t.Error("Expected error for a nominal amount on auto_enrolment")
		}
	})

	t.Run("nominal on salary sacrifice", func(t *testing.T) {
		transform := &SetPension{Scheme: domain.SchemeSalarySacrifice, Value: decimal.NewFromInt(2000), Kind: domain.ValueNominal}
		if err := transform.Validate(createTestScenario()); err != nil {
			t.Errorf("Expected no error, got: %v", err)
		}
	})

	t.Run("over 100 percent", func(t *testing.T) {
		if err := (&SetPension{Value: decimal.NewFromInt(101)}).Validate(createTestScenario()); err == nil {
			t.Error("Expected error for 101%")
		}
	})

	t.Run("no scheme to keep", func(t *testing.T) {
		base := createTestScenario()
		base.Pension = nil
		if err := (&SetPension{Value: decimal.NewFromInt(5)}).Validate(base); err == nil {
			t.Error("Expected error when the scenario has no scheme")
		}
	})

	t.Run("remove", func(t *testing.T) {
		result, err := ApplyTransforms(createTestScenario(), []ScenarioTransform{&RemovePension{}})
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if result.Pension != nil {
			t.Errorf("Expected no pension, got %+v", result.Pension)
		}
	})
}

func TestStudentLoanTransforms(t *testing.T) {
	base := createTestScenario()

	result, err := ApplyTransforms(base, []ScenarioTransform{
		&AddStudentLoan{Plan: domain.PlanOne},
		&AddStudentLoan{Plan: domain.PlanPostgrad},
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(result.StudentLoanPlans) != 2 {
		t.Errorf("Expected duplicate plan to be ignored, got %v", result.StudentLoanPlans)
	}

	result, err = ApplyTransforms(result, []ScenarioTransform{&RemoveStudentLoan{Plan: domain.PlanOne}})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(result.StudentLoanPlans) != 1 || result.StudentLoanPlans[0] != domain.PlanPostgrad {
		t.Errorf("Expected only postgrad, got %v", result.StudentLoanPlans)
	}

	result, err = ApplyTransforms(result, []ScenarioTransform{&RemoveStudentLoan{}})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(result.StudentLoanPlans) != 0 {
		t.Errorf("Expected no plans, got %v", result.StudentLoanPlans)
	}

	if err := (&AddStudentLoan{Plan: "plan3"}).Validate(base); err == nil {
		t.Error("Expected error for an unknown plan")
	}
}

func TestCircumstanceTransforms(t *testing.T) {
	base := createTestScenario()

	result, err := ApplyTransforms(base, []ScenarioTransform{
		&SetTaxYear{TaxYear: "2025/26"},
		&SetExcludeNI{Exclude: true},
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.TaxYear != "2025/26" {
		t.Errorf("Expected tax year 2025/26, got %s", result.TaxYear)
	}
	if !result.ExcludeNI {
		t.Error("Expected NI to be excluded")
	}

	if err := (&SetTaxYear{}).Validate(base); err == nil {
		t.Error("Expected error for an empty tax year")
	}
}

func TestTransformError(t *testing.T) {
	inner := errors.New("boom")
	err := NewTransformError("set_pension", "validate", "invalid scheme", inner)

	if !errors.Is(err, inner) {
		t.Error("Expected wrapped error to be reachable")
	}
	if !strings.Contains(err.Error(), "set_pension (validate): invalid scheme: boom") {
		t.Errorf("Unexpected message: %s", err.Error())
	}

	bare := NewTransformError("set_bonus", "apply", "nope", nil)
	if bare.Error() != "transform set_bonus (apply): nope" {
		t.Errorf("Unexpected message: %s", bare.Error())
	}
}

func TestTransformDescriptions(t *testing.T) {
	transforms := []ScenarioTransform{
		&AdjustSalary{Percent: decimal.NewFromInt(5)},
		&SetSalary{Amount: decimal.NewFromInt(50000)},
		&SetBonus{Amount: decimal.NewFromInt(1000)},
		&SetPension{Value: decimal.NewFromInt(5)},
		&RemovePension{},
		&SetResidency{Scotland: true},
		&SetTaxYear{TaxYear: "2025/26"},
		&SetExcludeNI{Exclude: true},
		&AddStudentLoan{Plan: domain.PlanTwo},
		&RemoveStudentLoan{},
	}

	for _, transform := range transforms {
		if transform.Name() == "" {
			t.Errorf("%T has an empty name", transform)
		}
		if transform.Description() == "" {
			t.Errorf("%s has an empty description", transform.Name())
		}
	}
}
