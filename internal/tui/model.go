package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/ukcalc/ukcalc/internal/calculation"
	"github.com/ukcalc/ukcalc/internal/compare"
	"github.com/ukcalc/ukcalc/internal/config"
	"github.com/ukcalc/ukcalc/internal/domain"
	"github.com/ukcalc/ukcalc/internal/transform"
	"github.com/ukcalc/ukcalc/internal/tui/scenes"
)

// sweepFactors are the salary multiples plotted on the results chart
var sweepFactors = []float64{0.5, 0.6, 0.7, 0.8, 0.9, 1, 1.1, 1.2, 1.3, 1.4, 1.5}

// Model represents the entire application state
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	configPath string
	config     *domain.Configuration

	calcEngine *calculation.CalculationEngine

	// scenario is the last one calculated; comparisons use it as the base
	scenario *domain.Scenario

	formModel      *scenes.FormModel
	scenariosModel *scenes.ScenariosModel
	resultsModel   *scenes.ResultsModel
	compareModel   *scenes.CompareModel

	err error

	loading        bool
	loadingMessage string
}

// NewModel creates a new application model. configPath may be empty, in
// which case the app starts on the form with no scenarios loaded.
func NewModel(configPath string, engine *calculation.CalculationEngine) Model {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	m := Model{
		currentScene:   SceneForm,
		previousScene:  SceneForm,
		configPath:     configPath,
		calcEngine:     engine,
		formModel:      scenes.NewFormModel(),
		scenariosModel: scenes.NewScenariosModel(),
		resultsModel:   scenes.NewResultsModel(),
		compareModel:   scenes.NewCompareModel(),
		width:          80,
		height:         24,
	}
	m.compareModel.SetTemplates(transform.CreateBuiltInTemplates(m.nextTaxYear("")))
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.configPath == "" {
		return nil
	}
	return loadConfigCmd(m.configPath, m.calcEngine.TaxYears)
}

// nextTaxYear returns the registered year after id ("" meaning the engine default)
func (m Model) nextTaxYear(id string) string {
	if id == "" {
		id = m.calcEngine.TaxCalc.TaxYear.ID
	}
	ids := m.calcEngine.TaxYears.IDs()
	for i := range ids {
		if ids[i] == id && i+1 < len(ids) {
			return ids[i+1]
		}
	}
	return ""
}

// loadConfigCmd returns a command that loads the scenario file
func loadConfigCmd(path string, registry *calculation.TaxYearRegistry) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.NewInputParserWithRegistry(registry).LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

// calculateScenarioCmd calculates a scenario along with a salary sweep around it
func calculateScenarioCmd(engine *calculation.CalculationEngine, cfg *domain.Configuration, scenario *domain.Scenario) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		result, err := engine.RunScenario(ctx, cfg, scenario)
		if err != nil {
			return CalculationCompleteMsg{Scenario: scenario, Err: err}
		}

		var sweep []scenes.SweepPoint
		if scenario.GrossSalary.IsPositive() {
			for _, factor := range sweepFactors {
				salary := scenario.GrossSalary.Mul(decimal.NewFromFloat(factor)).Round(0)
				variant, err := transform.ApplyTransforms(scenario, []transform.ScenarioTransform{&transform.SetSalary{Amount: salary}})
				if err != nil {
					return CalculationCompleteMsg{Scenario: scenario, Err: err}
				}
				r, err := engine.RunScenario(ctx, cfg, variant)
				if err != nil {
					return CalculationCompleteMsg{Scenario: scenario, Err: err}
				}
				sweep = append(sweep, scenes.SweepPoint{Gross: r.AnnualGrossIncome.Total, TakeHome: r.TakeHomePay})
			}
		}

		return CalculationCompleteMsg{Scenario: scenario, Result: result, Sweep: sweep}
	}
}

// compareCmd compares a scenario against the chosen templates
func compareCmd(engine *calculation.CalculationEngine, cfg *domain.Configuration, scenario *domain.Scenario, templates []string) tea.Cmd {
	return func() tea.Msg {
		// The comparison only needs the base scenario and the file's tax year.
		single := &domain.Configuration{Scenarios: []domain.Scenario{*scenario.DeepCopy()}}
		if cfg != nil {
			single.TaxYear = cfg.TaxYear
		}
		set, err := compare.NewCompareEngine(engine).Compare(context.Background(), single, compare.CompareOptions{
			Templates: templates,
		})
		if err != nil {
			return ComparisonCompleteMsg{Err: fmt.Errorf("comparison failed: %w", err)}
		}
		return ComparisonCompleteMsg{Set: set}
	}
}

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneForm:
		return "Take-Home Pay"
	case SceneScenarios:
		return "Scenarios"
	case SceneResults:
		return "Results"
	case SceneCompare:
		return "Compare"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
