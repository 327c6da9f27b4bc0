package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/ukcalc/ukcalc/internal/domain"
	"github.com/ukcalc/ukcalc/internal/tui/tuimsg"
	"github.com/ukcalc/ukcalc/internal/tui/tuistyles"
)

// Form field indexes
const (
	FieldSalary = iota
	FieldBonus
	FieldScheme
	FieldPension
	FieldStudentLoans
	FieldScotland
	FieldTaxYear
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Annual salary (£)",
	"Annual bonus (£)",
	"Pension scheme",
	"Pension contribution",
	"Student loan plans",
	"Scottish taxpayer",
	"Tax year",
}

// FormModel is the take-home pay input form
type FormModel struct {
	inputs  []textinput.Model
	focus   int
	editing bool
	name    string
	err     error
	width   int
}

// NewFormModel creates the form with the first field focused
func NewFormModel() *FormModel {
	m := &FormModel{
		inputs:  make([]textinput.Model, fieldCount),
		editing: true,
		name:    "Custom",
	}

	placeholders := [fieldCount]string{
		"40000",
		"0",
		"none, auto_enrolment, salary_sacrifice, relief_at_source, personal...",
		"5% or £2400",
		"plan1, plan2, plan4, plan5, postgrad",
		"no",
		"default",
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 64
		ti.Width = 40
		m.inputs[i] = ti
	}
	m.inputs[FieldSalary].Focus()
	return m
}

// Editing reports whether keystrokes go to the form fields
func (m *FormModel) Editing() bool {
	return m.editing
}

// SetSize updates the scene dimensions
func (m *FormModel) SetSize(width, _ int) {
	m.width = width
}

// Value returns the raw text of a field
func (m *FormModel) Value(field int) string {
	return m.inputs[field].Value()
}

// SetValue sets the raw text of a field
func (m *FormModel) SetValue(field int, value string) {
	m.inputs[field].SetValue(value)
}

// SetScenario fills the form from a scenario
func (m *FormModel) SetScenario(s domain.Scenario) {
	m.name = s.Name
	m.err = nil

	m.SetValue(FieldSalary, s.GrossSalary.String())
	m.SetValue(FieldBonus, s.GrossBonus.String())

	scheme, contribution := "", ""
	if s.Pension != nil {
		scheme = string(s.Pension.Scheme)
		if s.Pension.Kind() == domain.ValueNominal {
			contribution = "£" + s.Pension.Value.String()
		} else {
			contribution = s.Pension.Value.String() + "%"
		}
	}
	m.SetValue(FieldScheme, scheme)
	m.SetValue(FieldPension, contribution)

	plans := make([]string, len(s.StudentLoanPlans))
	for i, p := range s.StudentLoanPlans {
		plans[i] = string(p)
	}
	m.SetValue(FieldStudentLoans, strings.Join(plans, ", "))

	m.SetValue(FieldScotland, "no")
	if s.ResidentInScotland {
		m.SetValue(FieldScotland, "yes")
	}
	m.SetValue(FieldTaxYear, s.TaxYear)
}

// Scenario parses the form into a scenario. Empty numeric fields are zero and
// an empty tax year leaves the engine default in place.
func (m *FormModel) Scenario() (*domain.Scenario, error) {
	s := &domain.Scenario{Name: m.name}

	salary, err := parseMoney(m.Value(FieldSalary))
	if err != nil {
		return nil, fmt.Errorf("salary: %w", err)
	}
	s.GrossSalary = salary

	bonus, err := parseMoney(m.Value(FieldBonus))
	if err != nil {
		return nil, fmt.Errorf("bonus: %w", err)
	}
	s.GrossBonus = bonus

	pension, err := parsePension(m.Value(FieldScheme), m.Value(FieldPension))
	if err != nil {
		return nil, err
	}
	s.Pension = pension

	for _, field := range strings.FieldsFunc(m.Value(FieldStudentLoans), func(r rune) bool { return r == ',' }) {
		plan, err := domain.ParseStudentLoanPlan(field)
		if err != nil {
			return nil, err
		}
		s.StudentLoanPlans = append(s.StudentLoanPlans, plan)
	}

	switch strings.ToLower(strings.TrimSpace(m.Value(FieldScotland))) {
	case "", "n", "no", "false":
	case "y", "yes", "true":
		s.ResidentInScotland = true
	default:
		return nil, fmt.Errorf("scottish taxpayer: answer yes or no")
	}

	year := strings.TrimSpace(m.Value(FieldTaxYear))
	if year != "default" {
		s.TaxYear = year
	}
	return s, nil
}

func parseMoney(s string) (decimal.Decimal, error) {
	s = strings.NewReplacer("£", "", ",", "", " ", "").Replace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not an amount", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("must not be negative")
	}
	return d, nil
}

// parsePension reads "5" or "5%" as a percentage and "£2400" as an annual amount
func parsePension(schemeText, valueText string) (*domain.PensionSpec, error) {
	scheme, err := domain.ParsePensionScheme(schemeText)
	if err != nil {
		return nil, err
	}
	valueText = strings.TrimSpace(valueText)
	if scheme == domain.SchemeNone {
		if valueText != "" && valueText != "0" && valueText != "0%" {
			return nil, fmt.Errorf("pension contribution needs a scheme")
		}
		return nil, nil
	}

	kind := domain.ValuePercentage
	if strings.HasPrefix(valueText, "£") {
		kind = domain.ValueNominal
	}
	value, err := parseMoney(strings.TrimSuffix(valueText, "%"))
	if err != nil {
		return nil, fmt.Errorf("pension contribution: %w", err)
	}
	if kind == domain.ValuePercentage && value.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("pension contribution: %s%% is over 100%%", value)
	}
	if kind == domain.ValueNominal && scheme.Banded() {
		return nil, fmt.Errorf("pension contribution: %s only takes a percentage", scheme)
	}
	return &domain.PensionSpec{Scheme: scheme, Value: value, ValueKind: kind}, nil
}

// Update handles messages for the form scene
func (m *FormModel) Update(msg tea.Msg) (*FormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.updateFocused(msg)
	}

	if !m.editing {
		if key.Matches(keyMsg, key.NewBinding(key.WithKeys("e", "i", "enter"))) {
			m.editing = true
			return m, m.inputs[m.focus].Focus()
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("esc"))):
		m.editing = false
		m.inputs[m.focus].Blur()
		return m, nil

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("tab", "down"))):
		return m, m.setFocus((m.focus + 1) % fieldCount)

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("shift+tab", "up"))):
		return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		scenario, err := m.Scenario()
		m.err = err
		if err != nil {
			return m, nil
		}
		return m, func() tea.Msg {
			return tuimsg.CalculateRequestMsg{Scenario: scenario}
		}
	}

	return m, m.updateFocused(msg)
}

func (m *FormModel) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return cmd
}

func (m *FormModel) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

// View renders the form scene
func (m *FormModel) View() string {
	var content strings.Builder

	content.WriteString(tuistyles.TitleStyle.Render(m.name))
	content.WriteString("\n\n")

	for i := range m.inputs {
		label := tuistyles.ParameterLabelStyle.Render(fieldLabels[i])
		cursor := "  "
		if i == m.focus && m.editing {
			cursor = tuistyles.SelectedItemStyle.Render("▸ ")
		}
		content.WriteString(cursor + label + m.inputs[i].View())
		content.WriteString("\n")
	}

	if m.err != nil {
		content.WriteString("\n")
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorDanger).Render("✗ " + m.err.Error()))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	help := "tab/↓ next • shift+tab/↑ previous • enter calculate • esc stop editing"
	if !m.editing {
		help = "e edit • s scenarios • r results • c compare • ? help • q quit"
	}
	content.WriteString(tuistyles.SubtitleStyle.Render(help))

	return tuistyles.BorderStyle.Render(content.String())
}
