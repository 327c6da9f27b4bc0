package compare

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/ukcalc/ukcalc/internal/calculation"
	"github.com/ukcalc/ukcalc/internal/domain"
	"github.com/ukcalc/ukcalc/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Name of the base scenario; empty selects the first scenario
	Templates        []string // Template names, each producing one alternative
	Transforms       []string // Transform specs ("name:k=v,..."), applied together as one custom alternative
}

// findScenario returns the named scenario, or the first one when name is empty
func findScenario(config *domain.Configuration, name string) (*domain.Scenario, error) {
	if len(config.Scenarios) == 0 {
		return nil, fmt.Errorf("configuration has no scenarios")
	}
	if name == "" {
		return &config.Scenarios[0], nil
	}
	for i := range config.Scenarios {
		if config.Scenarios[i].Name == name {
			return &config.Scenarios[i], nil
		}
	}
	return nil, fmt.Errorf("scenario %s not found in configuration", name)
}

// nextTaxYear returns the registered year after the one the scenario resolves to
func (ce *CompareEngine) nextTaxYear(config *domain.Configuration, scenario *domain.Scenario) string {
	current := scenario.TaxYear
	if current == "" {
		current = config.TaxYear
	}
	if current == "" {
		current = ce.CalcEngine.TaxCalc.TaxYear.ID
	}
	ids := ce.CalcEngine.TaxYears.IDs()
	i := slices.Index(ids, current)
	if i < 0 || i+1 >= len(ids) {
		return ""
	}
	return ids[i+1]
}

func (ce *CompareEngine) run(ctx context.Context, config *domain.Configuration, scenario *domain.Scenario) (ComparisonResult, error) {
	result, err := ce.CalcEngine.RunScenario(ctx, config, scenario)
	if err != nil {
		return ComparisonResult{}, err
	}
	metrics := ce.MetricsCalculator.CalculateMetrics(scenario.Name, result)
	metrics.Description = scenario.Description
	return metrics, nil
}

// Compare runs the base scenario against template and transform alternatives
func (ce *CompareEngine) Compare(
	ctx context.Context,
	config *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {
	baseScenario, err := findScenario(config, options.BaseScenarioName)
	if err != nil {
		return nil, err
	}

	ce.TemplateRegistry = transform.CreateBuiltInTemplates(ce.nextTaxYear(config, baseScenario))

	baseResult, err := ce.run(ctx, config, baseScenario)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	alternatives := []ComparisonResult{}

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modifiedScenario, err := transform.ApplyTemplate(baseScenario, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}
		modifiedScenario.Name = baseScenario.Name + "_" + template.Name
		modifiedScenario.Description = template.Description

		altResult, err := ce.run(ctx, config, modifiedScenario)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", templateName, err)
		}
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	if len(options.Transforms) > 0 {
		transforms := make([]transform.ScenarioTransform, 0, len(options.Transforms))
		descriptions := make([]string, 0, len(options.Transforms))
		for _, spec := range options.Transforms {
			t, err := ce.TransformRegistry.ParseTransformSpec(spec)
			if err != nil {
				return nil, fmt.Errorf("invalid transform %q: %w", spec, err)
			}
			transforms = append(transforms, t)
			descriptions = append(descriptions, t.Description())
		}

		modifiedScenario, err := transform.ApplyTransforms(baseScenario, transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply transforms: %w", err)
		}
		modifiedScenario.Name = baseScenario.Name + "_custom"
		modifiedScenario.Description = strings.Join(descriptions, "; ")

		altResult, err := ce.run(ctx, config, modifiedScenario)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate custom scenario: %w", err)
		}
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseScenario.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// CompareScenarios compares explicit scenarios from the configuration (not using templates).
// An empty alternative list compares the base against every other scenario.
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	config *domain.Configuration,
	baseScenarioName string,
	alternativeScenarioNames []string,
) (*ComparisonSet, error) {
	baseScenario, err := findScenario(config, baseScenarioName)
	if err != nil {
		return nil, err
	}

	baseResult, err := ce.run(ctx, config, baseScenario)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	if len(alternativeScenarioNames) == 0 {
		for _, s := range config.Scenarios {
			if s.Name != baseScenario.Name {
				alternativeScenarioNames = append(alternativeScenarioNames, s.Name)
			}
		}
	}

	alternatives := []ComparisonResult{}

	for _, altName := range alternativeScenarioNames {
		altScenario, err := findScenario(config, altName)
		if err != nil {
			return nil, fmt.Errorf("alternative scenario %s not found", altName)
		}

		altResult, err := ce.run(ctx, config, altScenario)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", altName, err)
		}
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseScenario.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
