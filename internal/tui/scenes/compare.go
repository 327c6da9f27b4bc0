package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/ukcalc/ukcalc/internal/compare"
	"github.com/ukcalc/ukcalc/internal/transform"
	"github.com/ukcalc/ukcalc/internal/tui/tuimsg"
	"github.com/ukcalc/ukcalc/internal/tui/tuistyles"
)

// CompareModel lets the user pick what-if templates and shows the comparison
type CompareModel struct {
	templates   []transform.Template
	selected    map[int]bool
	cursorIndex int
	results     *compare.ComparisonSet
	comparing   bool
	width       int
	height      int
}

// NewCompareModel creates a new compare scene model
func NewCompareModel() *CompareModel {
	return &CompareModel{selected: make(map[int]bool)}
}

// SetTemplates lists the templates of a registry in name order
func (m *CompareModel) SetTemplates(registry *transform.TemplateRegistry) {
	m.templates = m.templates[:0]
	for _, name := range registry.List() {
		t, _ := registry.Get(name)
		m.templates = append(m.templates, t)
	}
	m.selected = make(map[int]bool)
	m.cursorIndex = 0
}

// SetResults stores a finished comparison
func (m *CompareModel) SetResults(set *compare.ComparisonSet) {
	m.results = set
	m.comparing = false
}

// SetFailed clears the in-progress state after a failed comparison
func (m *CompareModel) SetFailed() {
	m.comparing = false
}

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SelectedTemplates returns the chosen template names in list order
func (m *CompareModel) SelectedTemplates() []string {
	var names []string
	for i, t := range m.templates {
		if m.selected[i] {
			names = append(names, t.Name)
		}
	}
	return names
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.comparing {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.cursorIndex > 0 {
			m.cursorIndex--
		}

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.cursorIndex < len(m.templates)-1 {
			m.cursorIndex++
		}

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys(" ", "x"))):
		m.selected[m.cursorIndex] = !m.selected[m.cursorIndex]

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		names := m.SelectedTemplates()
		if len(names) == 0 {
			return m, nil
		}
		m.comparing = true
		return m, func() tea.Msg {
			return tuimsg.CompareRequestMsg{Templates: names}
		}

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("c"))):
		m.selected = make(map[int]bool)
		m.results = nil
	}

	return m, nil
}

// View renders the compare scene
func (m *CompareModel) View() string {
	if m.comparing {
		return tuistyles.BorderStyle.Render(tuistyles.TitleStyle.Render("Comparing...") + "\n\n" +
			fmt.Sprintf("Running %d what-if scenarios", len(m.SelectedTemplates())))
	}

	selection := m.renderSelection()
	if m.results == nil {
		return selection
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, selection, "  ", m.renderResults())
}

func (m *CompareModel) renderSelection() string {
	var content strings.Builder
	content.WriteString(tuistyles.TitleStyle.Render("What-if templates"))
	content.WriteString("\n\n")

	if len(m.templates) == 0 {
		content.WriteString(tuistyles.InfoStyle.Render("No templates available"))
		return tuistyles.BorderStyle.Render(content.String())
	}

	for i, t := range m.templates {
		cursor := "  "
		if i == m.cursorIndex {
			cursor = tuistyles.SelectedItemStyle.Render("❯ ")
		}
		box := tuistyles.SubtitleStyle.Render("[ ] ")
		if m.selected[i] {
			box = tuistyles.SelectedItemStyle.Render("[✓] ")
		}
		name := t.Name
		if i == m.cursorIndex {
			name = tuistyles.SelectedItemStyle.Render(name)
		}
		content.WriteString(cursor + box + name + "\n")
	}

	if m.cursorIndex < len(m.templates) {
		content.WriteString("\n")
		content.WriteString(tuistyles.SubtitleStyle.Render(m.templates[m.cursorIndex].Description))
	}

	content.WriteString("\n\n")
	content.WriteString(tuistyles.SubtitleStyle.Render("↑/↓ move • space select • enter compare • c clear"))

	return tuistyles.BorderStyle.Render(content.String())
}

func (m *CompareModel) renderResults() string {
	set := m.results
	var content strings.Builder

	content.WriteString(tuistyles.TitleStyle.Render("Compared with " + set.BaseScenarioName))
	content.WriteString("\n\n")
	content.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%-26s %12s %12s", "Scenario", "Take-Home", "Change")))
	content.WriteString("\n")
	content.WriteString(fmt.Sprintf("%-26s %12s %12s\n", truncateName(set.BaseScenarioName, 26),
		tuistyles.FormatCurrency(set.BaseResult.TakeHome), "base"))

	for i := range set.AlternativeResults {
		alt := &set.AlternativeResults[i]
		diff := alt.TakeHomeDiffFromBase
		change := signedCurrency(diff)
		if !diff.IsZero() {
			change = tuistyles.MetricTrendStyle(diff.IsPositive()).Render(change)
		}
		content.WriteString(fmt.Sprintf("%-26s %12s %12s\n", truncateName(alt.ScenarioName, 26),
			tuistyles.FormatCurrency(alt.TakeHome), change))
	}

	if len(set.Recommendations) > 0 {
		content.WriteString("\n")
		wrap := lipgloss.NewStyle().Width(56)
		for _, rec := range set.Recommendations {
			content.WriteString(wrap.Render("• " + rec))
			content.WriteString("\n")
		}
	}

	return tuistyles.BorderStyle.Render(strings.TrimRight(content.String(), "\n"))
}

func signedCurrency(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + tuistyles.FormatCurrency(d)
	}
	return tuistyles.FormatCurrency(d)
}

func truncateName(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
