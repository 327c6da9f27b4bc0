package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/ukcalc/ukcalc/internal/domain"
	"github.com/ukcalc/ukcalc/internal/tui/components"
	"github.com/ukcalc/ukcalc/internal/tui/tuistyles"
)

// SweepPoint is take-home pay at one gross salary
type SweepPoint struct {
	Gross    decimal.Decimal
	TakeHome decimal.Decimal
}

type resultsView int

const (
	viewSummary resultsView = iota
	viewBreakdown
	viewChart
)

// ResultsModel shows the take-home pay of the last calculated scenario
type ResultsModel struct {
	scenario *domain.Scenario
	result   *domain.TakeHomeResult
	sweep    []SweepPoint
	view     resultsView
	width    int
	height   int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetResults stores a calculation result and its salary sweep
func (m *ResultsModel) SetResults(scenario *domain.Scenario, result *domain.TakeHomeResult, sweep []SweepPoint) {
	m.scenario = scenario
	m.result = result
	m.sweep = sweep
}

// Result returns the displayed result, or nil
func (m *ResultsModel) Result() *domain.TakeHomeResult {
	return m.result
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the results scene
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("tab", "right", "l"))):
			m.view = (m.view + 1) % 3
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("shift+tab", "left", "h"))):
			m.view = (m.view + 2) % 3
		}
	}
	return m, nil
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.result == nil {
		return tuistyles.InfoStyle.Render("No results yet.\n\nFill in the form (f) or pick a scenario (s) and press enter.")
	}

	title := tuistyles.TitleStyle.Render(m.scenario.Name)
	region := "rest of UK"
	if m.result.ResidentInScotland {
		region = "Scotland"
	}
	subtitle := tuistyles.SubtitleStyle.Render(fmt.Sprintf("Tax year %s • %s", m.result.TaxYear, region))

	tabs := []string{"Summary", "Breakdown", "Take-home by salary"}
	for i := range tabs {
		if resultsView(i) == m.view {
			tabs[i] = tuistyles.SelectedItemStyle.Render("[" + tabs[i] + "]")
		} else {
			tabs[i] = tuistyles.UnselectedItemStyle.Render(" " + tabs[i] + " ")
		}
	}

	var body string
	switch m.view {
	case viewSummary:
		body = m.renderSummary()
	case viewBreakdown:
		body = m.renderBreakdown()
	case viewChart:
		body = m.renderChart()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		strings.Join(tabs, " "),
		"",
		body,
		"",
		tuistyles.SubtitleStyle.Render("tab/→ next view • shift+tab/← previous view • c compare • f form • esc back"),
	)
}

func (m *ResultsModel) renderSummary() string {
	r := m.result
	cards := []*components.MetricCard{
		components.NewMoneyCard("Gross Income", r.AnnualGrossIncome.Total),
		components.NewMoneyCard("Take-Home Pay", r.TakeHomePay).
			WithDescription(tuistyles.FormatCurrency(r.MonthlyTakeHome) + " a month"),
		components.NewMoneyCard("Income Tax", r.IncomeTax.Total),
		components.NewMoneyCard("National Insurance", r.EmployeeNI.Total),
	}
	if r.StudentLoanRepayments.Total.IsPositive() {
		cards = append(cards, components.NewMoneyCard("Student Loan", r.StudentLoanRepayments.Total))
	}
	if r.PensionContribution.Total.IsPositive() {
		cards = append(cards, components.NewMoneyCard("Pension", r.PensionContribution.Total).
			WithDescription(string(r.PensionContribution.Scheme)))
	}

	bar := components.NewDeductionBar(r).WithWidth(min(max(m.width-8, 20), 78)).Render()

	return components.MetricGrid(cards, 3) + "\n\n" + bar + "\n\n" + renderPeriods(r)
}

func renderPeriods(r *domain.TakeHomeResult) string {
	p := r.Periods
	rows := [][2]string{
		{"Yearly", tuistyles.FormatCurrency(p.Annual)},
		{"Monthly", tuistyles.FormatCurrency(p.Monthly)},
		{"Weekly", tuistyles.FormatCurrency(p.Weekly)},
		{"Daily", tuistyles.FormatCurrency(p.Daily)},
		{"Hourly", tuistyles.FormatCurrency(p.Hourly)},
	}
	parts := make([]string, len(rows))
	for i, row := range rows {
		parts[i] = tuistyles.MetricLabelStyle.Render(row[0]+" ") + tuistyles.MetricValueStyle.Render(row[1])
	}
	return strings.Join(parts, "   ")
}

func (m *ResultsModel) renderBreakdown() string {
	r := m.result
	var b strings.Builder

	section := func(title string, items domain.LineItems) {
		b.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%-30s %14s", title, tuistyles.FormatCurrency(items.Total))))
		b.WriteString("\n")
		for _, line := range items.Breakdown {
			if line.Amount.IsZero() {
				continue
			}
			b.WriteString(tuistyles.TableCellStyle.Render(fmt.Sprintf("  %-28s %14s", line.Label, tuistyles.FormatCurrency(line.Amount))))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	section("Gross income", r.AnnualGrossIncome)
	section("Tax-free allowance", r.TaxAllowance)
	b.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%-30s %14s", "Taxable income", tuistyles.FormatCurrency(r.TaxableIncome))))
	b.WriteString("\n\n")
	section("Income tax", r.IncomeTax)
	section("National Insurance", r.EmployeeNI)
	if r.StudentLoanRepayments.Total.IsPositive() {
		section("Student loan repayments", r.StudentLoanRepayments)
	}

	months := renderPayPeriod("Regular month", r.RegularMonth)
	if r.HasBonus() {
		months = lipgloss.JoinHorizontal(lipgloss.Top, months, "  ", renderPayPeriod("Bonus month", r.BonusMonth))
	}
	b.WriteString(months)

	return b.String()
}

func renderPayPeriod(title string, p domain.PayPeriod) string {
	rows := [][2]any{
		{"Gross pay", p.GrossPay},
		{"Income tax", p.Tax},
		{"National Insurance", p.NI},
		{"Student loan", p.StudentLoan},
		{"Pension", p.PensionContribution},
		{"Take-home", p.TakeHome},
	}
	var b strings.Builder
	b.WriteString(tuistyles.TitleStyle.Render(title))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%-20s %12s\n", row[0], tuistyles.FormatCurrency(row[1].(decimal.Decimal))))
	}
	return tuistyles.BorderStyle.Padding(0, 1).Render(strings.TrimRight(b.String(), "\n"))
}

func (m *ResultsModel) renderChart() string {
	if len(m.sweep) < 2 {
		return tuistyles.InfoStyle.Render("No salary sweep available")
	}

	gross := make([]float64, len(m.sweep))
	takeHome := make([]float64, len(m.sweep))
	labels := make([]string, len(m.sweep))
	for i, p := range m.sweep {
		gross[i] = p.Gross.InexactFloat64()
		takeHome[i] = p.TakeHome.InexactFloat64()
		labels[i] = components.FormatChartValue(gross[i])
	}

	chart := components.NewASCIIChart("Take-home pay as salary changes").
		AddSeries("Gross", gross, tuistyles.ColorChartLine1).
		AddSeries("Take-home", takeHome, tuistyles.ColorChartLine2).
		WithLabels(labels).
		WithSize(min(max(m.width-4, 40), 90), 14).
		WithXAxisLabel("Gross salary")

	return chart.Render() + "\n\n" + renderMarginalRates(m.sweep)
}

// renderMarginalRates shows how much of each extra pound is kept between sweep points
func renderMarginalRates(sweep []SweepPoint) string {
	var b strings.Builder
	b.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%-26s %12s", "Salary range", "Kept per £1")))
	b.WriteString("\n")
	for i := 1; i < len(sweep); i++ {
		dGross := sweep[i].Gross.Sub(sweep[i-1].Gross)
		if dGross.IsZero() {
			continue
		}
		kept := sweep[i].TakeHome.Sub(sweep[i-1].TakeHome).Div(dGross).Mul(decimal.NewFromInt(100))
		label := fmt.Sprintf("%s to %s", components.FormatChartValue(sweep[i-1].Gross.InexactFloat64()),
			components.FormatChartValue(sweep[i].Gross.InexactFloat64()))
		b.WriteString(fmt.Sprintf("%-26s %11sp\n", label, kept.StringFixed(0)))
	}
	return strings.TrimRight(b.String(), "\n")
}
