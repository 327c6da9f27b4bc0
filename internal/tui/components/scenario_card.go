package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ukcalc/ukcalc/internal/domain"
	"github.com/ukcalc/ukcalc/internal/tui/tuistyles"
)

// ScenarioCard displays a compact scenario overview
type ScenarioCard struct {
	Name        string
	Description string
	Highlights  []string
	IsSelected  bool
	Width       int
}

// NewScenarioCard creates a card summarising a scenario's inputs
func NewScenarioCard(s domain.Scenario) *ScenarioCard {
	card := &ScenarioCard{
		Name:        s.Name,
		Description: s.Description,
		Width:       50,
	}
	for _, h := range ScenarioHighlights(s) {
		card.AddHighlight(h)
	}
	return card
}

// ScenarioHighlights lists the inputs worth showing for a scenario
func ScenarioHighlights(s domain.Scenario) []string {
	highlights := []string{"Salary " + tuistyles.FormatCurrency(s.GrossSalary)}

	if s.GrossBonus.IsPositive() {
		highlights = append(highlights, "Bonus "+tuistyles.FormatCurrency(s.GrossBonus))
	}

	if s.Pension != nil && s.Pension.Scheme != domain.SchemeNone {
		value := s.Pension.Value.String() + "%"
		if s.Pension.Kind() == domain.ValueNominal {
			value = tuistyles.FormatCurrency(s.Pension.Value)
		}
		highlights = append(highlights, fmt.Sprintf("Pension %s (%s)", value, s.Pension.Scheme))
	}

	if len(s.StudentLoanPlans) > 0 {
		labels := make([]string, len(s.StudentLoanPlans))
		for i, plan := range s.StudentLoanPlans {
			labels[i] = plan.Label()
		}
		highlights = append(highlights, "Student loans: "+strings.Join(labels, ", "))
	}

	if s.ResidentInScotland {
		highlights = append(highlights, "Scottish taxpayer")
	}
	if s.ExcludeNI {
		highlights = append(highlights, "No National Insurance")
	}
	if s.TaxYear != "" {
		highlights = append(highlights, "Tax year "+s.TaxYear)
	}
	return highlights
}

// AddHighlight adds a key input
func (s *ScenarioCard) AddHighlight(highlight string) *ScenarioCard {
	s.Highlights = append(s.Highlights, highlight)
	return s
}

// SetSelected marks the card as selected
func (s *ScenarioCard) SetSelected(selected bool) *ScenarioCard {
	s.IsSelected = selected
	return s
}

// WithWidth sets the card width
func (s *ScenarioCard) WithWidth(width int) *ScenarioCard {
	s.Width = width
	return s
}

// Render returns the styled scenario card
func (s *ScenarioCard) Render() string {
	var content strings.Builder

	content.WriteString(tuistyles.TitleStyle.Render(s.Name))
	content.WriteString("\n")

	if s.Description != "" {
		content.WriteString(tuistyles.SubtitleStyle.Render(s.Description))
		content.WriteString("\n")
	}

	if len(s.Highlights) > 0 {
		content.WriteString("\n")
		highlightStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground)
		for _, h := range s.Highlights {
			content.WriteString(highlightStyle.Render("• " + h))
			content.WriteString("\n")
		}
	}

	border := tuistyles.ColorBorder
	if s.IsSelected {
		border = tuistyles.ColorPrimary
	}
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Width(s.Width)

	return cardStyle.Render(strings.TrimRight(content.String(), "\n"))
}

// RenderCompact returns the name and first highlight on one line
func (s *ScenarioCard) RenderCompact() string {
	line := s.Name
	if len(s.Highlights) > 0 {
		line += " • " + s.Highlights[0]
	}
	return line
}

// ScenarioListCompact renders a selection menu with the given index highlighted
func ScenarioListCompact(cards []*ScenarioCard, selectedIndex int) string {
	if len(cards) == 0 {
		return tuistyles.InfoStyle.Render("No scenarios available")
	}

	rendered := make([]string, len(cards))
	for i, card := range cards {
		prefix := "  "
		style := tuistyles.UnselectedItemStyle
		if i == selectedIndex {
			prefix = "▸ "
			style = tuistyles.SelectedItemStyle
		}
		rendered[i] = style.Render(prefix + card.RenderCompact())
	}

	return strings.Join(rendered, "\n")
}
