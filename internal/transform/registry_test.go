package transform

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
)

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []struct {
		spec    string
		check   func(t *testing.T, tr ScenarioTransform)
		wantErr bool
	}{
		{
			spec: "adjust_salary:percent=10",
			check: func(t *testing.T, tr ScenarioTransform) {
				as := tr.(*AdjustSalary)
				if !as.Percent.Equal(decimal.NewFromInt(10)) || !as.Amount.IsZero() {
					t.Errorf("Unexpected transform %+v", as)
				}
			},
		},
		{
			spec: "adjust_salary:amount=-2500",
			check: func(t *testing.T, tr ScenarioTransform) {
				if !tr.(*AdjustSalary).Amount.Equal(decimal.NewFromInt(-2500)) {
					t.Errorf("Unexpected transform %+v", tr)
				}
			},
		},
		{
			spec: "set_pension: scheme=Salary_Sacrifice , value=5%",
			check: func(t *testing.T, tr ScenarioTransform) {
				sp := tr.(*SetPension)
				if sp.Scheme != domain.SchemeSalarySacrifice || !sp.Value.Equal(decimal.NewFromInt(5)) || sp.Kind != domain.ValuePercentage {
					t.Errorf("Unexpected transform %+v", sp)
				}
			},
		},
		{
			spec: "set_pension:value=1200,kind=nominal",
			check: func(t *testing.T, tr ScenarioTransform) {
				if tr.(*SetPension).Kind != domain.ValueNominal {
					t.Errorf("Expected nominal, got %+v", tr)
				}
			},
		},
		{
			spec: "remove_pension",
			check: func(t *testing.T, tr ScenarioTransform) {
				if _, ok := tr.(*RemovePension); !ok {
					t.Errorf("Expected RemovePension, got %T", tr)
				}
			},
		},
		{
			spec: "set_residency:region=scotland",
			check: func(t *testing.T, tr ScenarioTransform) {
				if !tr.(*SetResidency).Scotland {
					t.Error("Expected Scotland")
				}
			},
		},
		{
			spec: "set_residency:scotland=no",
			check: func(t *testing.T, tr ScenarioTransform) {
				if tr.(*SetResidency).Scotland {
					t.Error("Expected rest of UK")
				}
			},
		},
		{
			spec: "set_exclude_ni:exclude=true",
			check: func(t *testing.T, tr ScenarioTransform) {
				if !tr.(*SetExcludeNI).Exclude {
					t.Error("Expected NI excluded")
				}
			},
		},
		{
			spec: "add_student_loan:plan=Plan 2",
			check: func(t *testing.T, tr ScenarioTransform) {
				if tr.(*AddStudentLoan).Plan != domain.PlanTwo {
					t.Errorf("Expected plan2, got %+v", tr)
				}
			},
		},
		{
			spec: "remove_student_loan:plan=all",
			check: func(t *testing.T, tr ScenarioTransform) {
				if tr.(*RemoveStudentLoan).Plan != "" {
					t.Errorf("Expected every plan, got %+v", tr)
				}
			},
		},
		{
			spec: "set_tax_year:year=2025/26",
			check: func(t *testing.T, tr ScenarioTransform) {
				if tr.(*SetTaxYear).TaxYear != "2025/26" {
					t.Errorf("Unexpected transform %+v", tr)
				}
			},
		},
		{spec: "adjust_salary:", wantErr: true},
		{spec: "adjust_salary:percent=ten", wantErr: true},
		{spec: "set_salary:amount", wantErr: true},
		{spec: "set_pension:scheme=final_salary,value=5", wantErr: true},
		{spec: "set_pension:value=5,kind=shares", wantErr: true},
		{spec: "set_residency:region=wales_north", wantErr: true},
		{spec: "set_residency:", wantErr: true},
		{spec: "add_student_loan:plan=plan3", wantErr: true},
		{spec: "set_tax_year:", wantErr: true},
		{spec: "unknown:foo=bar", wantErr: true},
		{spec: ":percent=5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			tr, err := registry.ParseTransformSpec(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q, got %T", tt.spec, tr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			tt.check(t, tr)
		})
	}
}

func TestTransformRegistry_List(t *testing.T) {
	names := NewTransformRegistry().List()
	if len(names) != 10 {
		t.Errorf("Expected 10 transforms, got %d: %v", len(names), names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("Expected sorted names, got %v", names)
			break
		}
	}
}

func TestTransformRegistry_Register(t *testing.T) {
	registry := NewTransformRegistry()
	registry.Register("double_salary", func(map[string]string) (ScenarioTransform, error) {
		return &AdjustSalary{Percent: decimal.NewFromInt(100)}, nil
	})

	tr, err := registry.Create("double_salary", nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	result, err := ApplyTransforms(createTestScenario(), []ScenarioTransform{tr})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !result.GrossSalary.Equal(decimal.NewFromInt(80000)) {
		t.Errorf("Expected 80000, got %s", result.GrossSalary)
	}
}
