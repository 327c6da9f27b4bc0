package scenes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ukcalc/ukcalc/internal/domain"
	"github.com/ukcalc/ukcalc/internal/tui/components"
	"github.com/ukcalc/ukcalc/internal/tui/tuimsg"
	"github.com/ukcalc/ukcalc/internal/tui/tuistyles"
)

// ScenariosModel browses the scenarios of a loaded file
type ScenariosModel struct {
	scenarios     []domain.Scenario
	selectedIndex int
	cards         []*components.ScenarioCard
	width         int
	height        int
}

// NewScenariosModel creates a new scenarios scene model
func NewScenariosModel() *ScenariosModel {
	return &ScenariosModel{}
}

// SetScenarios updates the scenarios list
func (m *ScenariosModel) SetScenarios(scenarios []domain.Scenario) {
	m.scenarios = scenarios
	m.cards = make([]*components.ScenarioCard, len(scenarios))
	for i, s := range scenarios {
		m.cards[i] = components.NewScenarioCard(s).WithWidth(56)
	}
	if m.selectedIndex >= len(m.scenarios) {
		m.selectedIndex = 0
	}
}

// SetSize updates the scene dimensions
func (m *ScenariosModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SelectedIndex returns the cursor position
func (m *ScenariosModel) SelectedIndex() int {
	return m.selectedIndex
}

// Update handles messages for the scenarios scene
func (m *ScenariosModel) Update(msg tea.Msg) (*ScenariosModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.selectedIndex < len(m.scenarios)-1 {
			m.selectedIndex++
		}

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("g"))):
		m.selectedIndex = 0

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("G"))):
		m.selectedIndex = max(len(m.scenarios)-1, 0)

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		if len(m.scenarios) == 0 {
			return m, nil
		}
		selected := m.scenarios[m.selectedIndex]
		return m, func() tea.Msg {
			return tuimsg.ScenarioSelectedMsg{Scenario: selected}
		}
	}

	return m, nil
}

// View renders the scenarios scene
func (m *ScenariosModel) View() string {
	if len(m.scenarios) == 0 {
		return tuistyles.InfoStyle.Render("No scenarios loaded.\n\nStart ukcalc-tui with a scenario file, or press f to enter one by hand.")
	}

	for i, card := range m.cards {
		card.SetSelected(i == m.selectedIndex)
	}

	listStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 2).
		Width(48)

	left := listStyle.Render(tuistyles.TitleStyle.Render("Scenarios") + "\n\n" + components.ScenarioListCompact(m.cards, m.selectedIndex))
	right := m.cards[m.selectedIndex].Render()

	content := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	content += "\n\n"
	content += tuistyles.SubtitleStyle.Render("↑/k up • ↓/j down • enter calculate • g top • G bottom • esc back")
	return content
}
