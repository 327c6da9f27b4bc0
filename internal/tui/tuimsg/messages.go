// Package tuimsg holds the messages scenes send to the top-level model.
package tuimsg

import (
	"github.com/ukcalc/ukcalc/internal/domain"
)

// ScenarioSelectedMsg signals a scenario from the loaded file has been selected
type ScenarioSelectedMsg struct {
	Scenario domain.Scenario
}

// CalculateRequestMsg asks the model to calculate take-home pay for a scenario
type CalculateRequestMsg struct {
	Scenario *domain.Scenario
}

// CompareRequestMsg asks the model to compare the current scenario against templates
type CompareRequestMsg struct {
	Templates []string
}
