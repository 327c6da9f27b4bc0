package compare

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/calculation"
	"github.com/ukcalc/ukcalc/internal/domain"
)

func createTestConfig() *domain.Configuration {
	return &domain.Configuration{
		TaxYear: "2024/25",
		Scenarios: []domain.Scenario{
			{
				Name:      "Base",
				TaxInputs: domain.TaxInputs{GrossSalary: decimal.NewFromInt(50000)},
			},
			{
				Name:      "Edinburgh",
				TaxInputs: domain.TaxInputs{GrossSalary: decimal.NewFromInt(50000), ResidentInScotland: true},
			},
		},
	}
}

func TestCompareEngine_Compare_Templates(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())
	config := createTestConfig()

	compSet, err := engine.Compare(context.Background(), config, CompareOptions{
		BaseScenarioName: "Base",
		Templates:        []string{"raise_10", "salary_sacrifice_5"},
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if compSet.BaseResult.TakeHome.StringFixed(2) != "39519.60" {
		t.Errorf("Expected base take-home 39519.60, got %s", compSet.BaseResult.TakeHome.StringFixed(2))
	}
	if len(compSet.AlternativeResults) != 2 {
		t.Fatalf("Expected 2 alternatives, got %d", len(compSet.AlternativeResults))
	}

	raise := compSet.AlternativeResults[0]
	if raise.ScenarioName != "Base_raise_10" {
		t.Errorf("Expected name Base_raise_10, got %s", raise.ScenarioName)
	}
	// 55,000: tax 9,432 and NI 3,110.60
	if raise.TakeHome.StringFixed(2) != "42457.40" {
		t.Errorf("Expected take-home 42457.40, got %s", raise.TakeHome.StringFixed(2))
	}
	if raise.TakeHomeDiffFromBase.StringFixed(2) != "2937.80" {
		t.Errorf("Expected diff 2937.80, got %s", raise.TakeHomeDiffFromBase.StringFixed(2))
	}

	sacrifice := compSet.AlternativeResults[1]
	if sacrifice.Pension.StringFixed(2) != "2500.00" {
		t.Errorf("Expected pension 2500.00, got %s", sacrifice.Pension.StringFixed(2))
	}
	if sacrifice.TakeHomeDiffFromBase.StringFixed(2) != "-1800.00" {
		t.Errorf("Expected diff -1800.00, got %s", sacrifice.TakeHomeDiffFromBase.StringFixed(2))
	}
	if sacrifice.Description == "" {
		t.Error("Expected template description to be carried")
	}

	if len(compSet.Recommendations) == 0 {
		t.Error("Expected recommendations")
	}

	// The configuration itself is untouched
	if !config.Scenarios[0].GrossSalary.Equal(decimal.NewFromInt(50000)) || config.Scenarios[0].Pension != nil {
		t.Error("Base scenario in the configuration was modified")
	}
}

func TestCompareEngine_Compare_Transforms(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	compSet, err := engine.Compare(context.Background(), createTestConfig(), CompareOptions{
		Transforms: []string{"set_bonus:amount=5000", "add_student_loan:plan=plan2"},
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if compSet.BaseScenarioName != "Base" {
		t.Errorf("Expected first scenario as base, got %s", compSet.BaseScenarioName)
	}
	if len(compSet.AlternativeResults) != 1 {
		t.Fatalf("Expected 1 alternative, got %d", len(compSet.AlternativeResults))
	}

	custom := compSet.AlternativeResults[0]
	if custom.ScenarioName != "Base_custom" {
		t.Errorf("Expected Base_custom, got %s", custom.ScenarioName)
	}
	if !custom.GrossIncome.Equal(decimal.NewFromInt(55000)) {
		t.Errorf("Expected gross 55000, got %s", custom.GrossIncome)
	}
	if !custom.StudentLoan.IsPositive() {
		t.Error("Expected a student loan repayment")
	}
	if !strings.Contains(custom.Description, "; ") {
		t.Errorf("Expected joined descriptions, got %q", custom.Description)
	}
}

func TestCompareEngine_Compare_NextTaxYear(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	compSet, err := engine.Compare(context.Background(), createTestConfig(), CompareOptions{
		Templates: []string{"next_tax_year"},
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if compSet.AlternativeResults[0].TaxYear != "2025/26" {
		t.Errorf("Expected 2025/26, got %s", compSet.AlternativeResults[0].TaxYear)
	}
}

func TestCompareEngine_Compare_Errors(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	tests := []struct {
		name    string
		config  *domain.Configuration
		options CompareOptions
	}{
		{"missing base", createTestConfig(), CompareOptions{BaseScenarioName: "Nope"}},
		{"no scenarios", &domain.Configuration{}, CompareOptions{}},
		{"unknown template", createTestConfig(), CompareOptions{Templates: []string{"retire_early"}}},
		{"bad transform", createTestConfig(), CompareOptions{Transforms: []string{"adjust_salary:percent=x"}}},
		{"invalid transform", createTestConfig(), CompareOptions{Transforms: []string{"remove_student_loan:plan=plan1"}}},
		{"unknown tax year", createTestConfig(), CompareOptions{Transforms: []string{"set_tax_year:year=1999/00"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := engine.Compare(context.Background(), tt.config, tt.options); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestCompareEngine_Compare_Cancelled(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Compare(ctx, createTestConfig(), CompareOptions{Templates: []string{"raise_5"}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestCompareEngine_CompareScenarios(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	compSet, err := engine.CompareScenarios(context.Background(), createTestConfig(), "Base", nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(compSet.AlternativeResults) != 1 {
		t.Fatalf("Expected every other scenario as an alternative, got %d", len(compSet.AlternativeResults))
	}
	scottish := compSet.AlternativeResults[0]
	if scottish.ScenarioName != "Edinburgh" || !scottish.Scotland {
		t.Errorf("Unexpected alternative %+v", scottish)
	}
	if !scottish.TaxDiffFromBase.IsPositive() {
		t.Errorf("Expected Scottish tax to be higher at 50k, got diff %s", scottish.TaxDiffFromBase)
	}
	if scottish.KeptPerPound != nil {
		t.Error("Expected no kept-per-pound for equal gross")
	}

	if _, err := engine.CompareScenarios(context.Background(), createTestConfig(), "Base", []string{"Glasgow"}); err == nil {
		t.Error("Expected error for a missing alternative")
	}
}
