package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ukcalc/ukcalc/internal/domain"
	"github.com/ukcalc/ukcalc/internal/transform"
	"github.com/ukcalc/ukcalc/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.formModel.SetSize(msg.Width, msg.Height)
		m.scenariosModel.SetSize(msg.Width, msg.Height)
		m.resultsModel.SetSize(msg.Width, msg.Height)
		m.compareModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ConfigLoadedMsg:
		m.config = msg.Config
		m.loading = false
		m.scenariosModel.SetScenarios(msg.Config.Scenarios)
		m.compareModel.SetTemplates(transform.CreateBuiltInTemplates(m.nextTaxYear(msg.Config.TaxYear)))
		if len(msg.Config.Scenarios) > 0 {
			return m, navigate(SceneScenarios)
		}
		return m, nil

	case tuimsg.ScenarioSelectedMsg:
		m.formModel.SetScenario(msg.Scenario)
		scenario := msg.Scenario.DeepCopy()
		return m.startCalculation(scenario)

	case tuimsg.CalculateRequestMsg:
		return m.startCalculation(msg.Scenario)

	case CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.scenario = msg.Scenario
		m.resultsModel.SetResults(msg.Scenario, msg.Result, msg.Sweep)
		return m, navigate(SceneResults)

	case tuimsg.CompareRequestMsg:
		if m.scenario == nil {
			m.compareModel.SetFailed()
			m.err = errors.New("calculate a scenario before comparing")
			return m, nil
		}
		m.loading = true
		m.loadingMessage = "Comparing " + m.scenario.Name + "..."
		return m, compareCmd(m.calcEngine, m.config, m.scenario, msg.Templates)

	case ComparisonCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.compareModel.SetFailed()
			m.err = msg.Err
			return m, nil
		}
		m.compareModel.SetResults(msg.Set)
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

func (m Model) startCalculation(scenario *domain.Scenario) (tea.Model, tea.Cmd) {
	m.loading = true
	m.loadingMessage = "Calculating " + scenario.Name + "..."
	return m, calculateScenarioCmd(m.calcEngine, m.config, scenario)
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}

// sceneKeys maps the global letter shortcuts to scenes
var sceneKeys = map[string]Scene{
	"f": SceneForm,
	"s": SceneScenarios,
	"r": SceneResults,
	"c": SceneCompare,
	"?": SceneHelp,
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// An error is dismissed by any key
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	if m.loading {
		return m, nil
	}

	// While typing into the form only ctrl+c is global
	if m.currentScene == SceneForm && m.formModel.Editing() {
		return m.updateCurrentScene(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "esc":
		if m.currentScene != SceneForm {
			back := m.previousScene
			if back == m.currentScene {
				back = SceneForm
			}
			return m, navigate(back)
		}
	}

	if scene, ok := sceneKeys[msg.String()]; ok && scene != m.currentScene {
		return m, navigate(scene)
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneForm:
		m.formModel, cmd = m.formModel.Update(msg)
	case SceneScenarios:
		m.scenariosModel, cmd = m.scenariosModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	}
	return m, cmd
}
