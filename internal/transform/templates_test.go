package transform

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
)

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates("2025/26")

	expected := []string{
		"raise_3", "raise_5", "raise_10", "no_bonus",
		"salary_sacrifice_5", "salary_sacrifice_10", "auto_enrolment_5", "relief_at_source_5", "no_pension",
		"scotland", "rest_of_uk",
		"plan2_loan", "postgrad_loan", "no_student_loan",
		"next_tax_year",
	}
	for _, name := range expected {
		if _, ok := registry.Get(name); !ok {
			t.Errorf("Expected template %s to be registered", name)
		}
	}
	if len(registry.List()) != len(expected) {
		t.Errorf("Expected %d templates, got %v", len(expected), registry.List())
	}

	if _, ok := CreateBuiltInTemplates("").Get("next_tax_year"); ok {
		t.Error("Expected next_tax_year to be skipped without a tax year")
	}
}

func TestTemplateRegistry_GetCaseInsensitive(t *testing.T) {
	registry := CreateBuiltInTemplates("")

	template, ok := registry.Get(" Salary_Sacrifice_5 ")
	if !ok {
		t.Fatal("Expected case-insensitive lookup to succeed")
	}
	if template.Category != CategoryPension {
		t.Errorf("Expected category %s, got %s", CategoryPension, template.Category)
	}
}

func TestApplyTemplate(t *testing.T) {
	registry := CreateBuiltInTemplates("2025/26")
	base := createTestScenario()

	tests := []struct {
		name  string
		check func(t *testing.T, s *domain.Scenario)
	}{
		{"raise_10", func(t *testing.T, s *domain.Scenario) {
			if !s.GrossSalary.Equal(decimal.NewFromInt(44000)) {
				t.Errorf("Expected 44000, got %s", s.GrossSalary)
			}
		}},
		{"salary_sacrifice_10", func(t *testing.T, s *domain.Scenario) {
			if s.Pension.Scheme != domain.SchemeSalarySacrifice || !s.Pension.Value.Equal(decimal.NewFromInt(10)) {
				t.Errorf("Unexpected pension %+v", s.Pension)
			}
		}},
		{"scotland", func(t *testing.T, s *domain.Scenario) {
			if !s.ResidentInScotland {
				t.Error("Expected Scottish residency")
			}
		}},
		{"no_student_loan", func(t *testing.T, s *domain.Scenario) {
			if len(s.StudentLoanPlans) != 0 {
				t.Errorf("Expected no plans, got %v", s.StudentLoanPlans)
			}
		}},
		{"next_tax_year", func(t *testing.T, s *domain.Scenario) {
			if s.TaxYear != "2025/26" {
				t.Errorf("Expected 2025/26, got %s", s.TaxYear)
			}
		}},
		{"no_bonus", func(t *testing.T, s *domain.Scenario) {
			if !s.GrossBonus.IsZero() {
				t.Errorf("Expected no bonus, got %s", s.GrossBonus)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			template, ok := registry.Get(tt.name)
			if !ok {
				t.Fatalf("Template %s not found", tt.name)
			}
			result, err := ApplyTemplate(base, template)
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			tt.check(t, result)
		})
	}

	if !base.GrossSalary.Equal(decimal.NewFromInt(40000)) || base.ResidentInScotland {
		t.Error("Base scenario was modified by a template")
	}

	empty, err := ApplyTemplate(base, Template{Name: "noop"})
	if err != nil || empty == base || empty.Name != base.Name {
		t.Errorf("Expected a copy for an empty template, got %v, %v", empty, err)
	}
	if _, err := ApplyTemplate(nil, Template{Name: "noop"}); err == nil {
		t.Error("Expected error for nil base")
	}
}

func TestParseTemplateList(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"raise_5", []string{"raise_5"}},
		{"raise_5, scotland ,,plan2_loan", []string{"raise_5", "scotland", "plan2_loan"}},
	}

	for _, tt := range tests {
		result := ParseTemplateList(tt.input)
		if strings.Join(result, "|") != strings.Join(tt.expected, "|") {
			t.Errorf("ParseTemplateList(%q) = %v, expected %v", tt.input, result, tt.expected)
		}
	}
}

func TestGetTemplateHelp(t *testing.T) {
	help := GetTemplateHelp(CreateBuiltInTemplates("2025/26"))

	for _, want := range []string{"Available Templates:", "Salary:", "Pension:", "Residency:", "Student Loans:", "Tax Year:", "salary_sacrifice_5", "Usage:"} {
		if !strings.Contains(help, want) {
			t.Errorf("Expected help to contain %q", want)
		}
	}
	if strings.Index(help, "Salary:") > strings.Index(help, "Pension:") {
		t.Error("Expected categories in a fixed order")
	}

	if GetTemplateHelp(NewTemplateRegistry()) != "No templates registered" {
		t.Error("Expected message for an empty registry")
	}
}
