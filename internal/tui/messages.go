package tui

import (
	"github.com/ukcalc/ukcalc/internal/compare"
	"github.com/ukcalc/ukcalc/internal/domain"
	"github.com/ukcalc/ukcalc/internal/tui/scenes"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneForm Scene = iota
	SceneScenarios
	SceneResults
	SceneCompare
	SceneHelp
)

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ConfigLoadedMsg signals configuration has been loaded
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}

// CalculationCompleteMsg signals a take-home calculation has finished.
// Sweep holds take-home pay at a range of salaries around the scenario's own.
type CalculationCompleteMsg struct {
	Scenario *domain.Scenario
	Result   *domain.TakeHomeResult
	Sweep    []scenes.SweepPoint
	Err      error
}

// ComparisonCompleteMsg signals a comparison has finished
type ComparisonCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}
