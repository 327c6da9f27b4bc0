package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Category    string
	Transforms  []ScenarioTransform
}

const (
	CategorySalary      = "Salary"
	CategoryPension     = "Pension"
	CategoryResidency   = "Residency"
	CategoryStudentLoan = "Student Loans"
	CategoryTaxYear     = "Tax Year"
)

var templateCategories = []string{CategorySalary, CategoryPension, CategoryResidency, CategoryStudentLoan, CategoryTaxYear}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func pct(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// CreateBuiltInTemplates creates a template registry with common take-home pay what-ifs.
// nextTaxYear is the id used by the next_tax_year template; it is skipped when empty.
func CreateBuiltInTemplates(nextTaxYear string) *TemplateRegistry {
	registry := NewTemplateRegistry()

	for _, raise := range []int64{3, 5, 10} {
		registry.Register(Template{
			Name:        fmt.Sprintf("raise_%d", raise),
			Description: fmt.Sprintf("Pay rise of %d%%", raise),
			Category:    CategorySalary,
			Transforms:  []ScenarioTransform{&AdjustSalary{Percent: pct(raise)}},
		})
	}

	registry.Register(Template{
		Name:        "no_bonus",
		Description: "Drop the annual bonus",
		Category:    CategorySalary,
		Transforms:  []ScenarioTransform{&SetBonus{Amount: decimal.Zero}},
	})

	for _, rate := range []int64{5, 10} {
		registry.Register(Template{
			Name:        fmt.Sprintf("salary_sacrifice_%d", rate),
			Description: fmt.Sprintf("Sacrifice %d%% of salary into a pension", rate),
			Category:    CategoryPension,
			Transforms: []ScenarioTransform{
				&SetPension{Scheme: domain.SchemeSalarySacrifice, Value: pct(rate), Kind: domain.ValuePercentage},
			},
		})
	}

	registry.Register(Template{
		Name:        "auto_enrolment_5",
		Description: "Auto-enrolment minimum: 5% of qualifying earnings",
		Category:    CategoryPension,
		Transforms: []ScenarioTransform{
			&SetPension{Scheme: domain.SchemeAutoEnrolment, Value: pct(5), Kind: domain.ValuePercentage},
		},
	})

	registry.Register(Template{
		Name:        "relief_at_source_5",
		Description: "Relief at source: 5% of qualifying earnings",
		Category:    CategoryPension,
		Transforms: []ScenarioTransform{
			&SetPension{Scheme: domain.SchemeReliefAtSource, Value: pct(5), Kind: domain.ValuePercentage},
		},
	})

	registry.Register(Template{
		Name:        "no_pension",
		Description: "Opt out of pension contributions",
		Category:    CategoryPension,
		Transforms:  []ScenarioTransform{&RemovePension{}},
	})

	registry.Register(Template{
		Name:        "scotland",
		Description: "Move to Scotland (Scottish income tax bands)",
		Category:    CategoryResidency,
		Transforms:  []ScenarioTransform{&SetResidency{Scotland: true}},
	})

	registry.Register(Template{
		Name:        "rest_of_uk",
		Description: "Move to England, Wales or Northern Ireland",
		Category:    CategoryResidency,
		Transforms:  []ScenarioTransform{&SetResidency{Scotland: false}},
	})

	registry.Register(Template{
		Name:        "plan2_loan",
		Description: "Add a Plan 2 student loan",
		Category:    CategoryStudentLoan,
		Transforms:  []ScenarioTransform{&AddStudentLoan{Plan: domain.PlanTwo}},
	})

	registry.Register(Template{
		Name:        "postgrad_loan",
		Description: "Add a postgraduate loan",
		Category:    CategoryStudentLoan,
		Transforms:  []ScenarioTransform{&AddStudentLoan{Plan: domain.PlanPostgrad}},
	})

	registry.Register(Template{
		Name:        "no_student_loan",
		Description: "Clear every student loan",
		Category:    CategoryStudentLoan,
		Transforms:  []ScenarioTransform{&RemoveStudentLoan{}},
	})

	if nextTaxYear != "" {
		registry.Register(Template{
			Name:        "next_tax_year",
			Description: fmt.Sprintf("Recalculate under the %s tax year", nextTaxYear),
			Category:    CategoryTaxYear,
			Transforms:  []ScenarioTransform{&SetTaxYear{TaxYear: nextTaxYear}},
		})
	}

	return registry
}

// ApplyTemplate applies a template to a base scenario
func ApplyTemplate(base *domain.Scenario, template Template) (*domain.Scenario, error) {
	if len(template.Transforms) == 0 {
		if base == nil {
			return nil, fmt.Errorf("base scenario cannot be nil")
		}
		return base.DeepCopy(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := make(map[string][]Template)
	for _, name := range registry.List() {
		t := registry.templates[name]
		category := t.Category
		if category == "" {
			category = "Other"
		}
		categories[category] = append(categories[category], t)
	}

	for _, category := range append(templateCategories, "Other") {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-22s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  ukcalc compare scenarios.yaml --with raise_5,salary_sacrifice_5\n")
	sb.WriteString("  ukcalc compare scenarios.yaml --with scotland --transform adjust_salary:percent=10\n")

	return sb.String()
}
