package scenes

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukcalc/ukcalc/internal/domain"
	"github.com/ukcalc/ukcalc/internal/tui/tuimsg"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func filledForm(values map[int]string) *FormModel {
	m := NewFormModel()
	for field, value := range values {
		m.SetValue(field, value)
	}
	return m
}

func TestFormModel_Scenario(t *testing.T) {
	m := filledForm(map[int]string{
		FieldSalary:       "£45,000",
		FieldBonus:        "2500",
		FieldScheme:       "salary_sacrifice",
		FieldPension:      "6%",
		FieldStudentLoans: "plan2, Postgrad",
		FieldScotland:     "yes",
		FieldTaxYear:      "2025/26",
	})

	s, err := m.Scenario()
	require.NoError(t, err)

	assert.Equal(t, "Custom", s.Name)
	assert.True(t, s.GrossSalary.Equal(decimal.NewFromInt(45000)))
	assert.True(t, s.GrossBonus.Equal(decimal.NewFromInt(2500)))
	require.NotNil(t, s.Pension)
	assert.Equal(t, domain.SchemeSalarySacrifice, s.Pension.Scheme)
	assert.Equal(t, domain.ValuePercentage, s.Pension.ValueKind)
	assert.True(t, s.Pension.Value.Equal(decimal.NewFromInt(6)))
	assert.Equal(t, []domain.StudentLoanPlan{domain.PlanTwo, domain.PlanPostgrad}, s.StudentLoanPlans)
	assert.True(t, s.ResidentInScotland)
	assert.Equal(t, "2025/26", s.TaxYear)
}

func TestFormModel_ScenarioDefaults(t *testing.T) {
	s, err := filledForm(map[int]string{FieldSalary: "30000", FieldTaxYear: "default"}).Scenario()
	require.NoError(t, err)

	assert.True(t, s.GrossBonus.IsZero())
	assert.Nil(t, s.Pension)
	assert.Empty(t, s.StudentLoanPlans)
	assert.False(t, s.ResidentInScotland)
	assert.Empty(t, s.TaxYear)
}

func TestFormModel_NominalPension(t *testing.T) {
	s, err := filledForm(map[int]string{
		FieldSalary:  "30000",
		FieldScheme:  "personal",
		FieldPension: "£2400",
	}).Scenario()
	require.NoError(t, err)
	assert.Equal(t, domain.ValueNominal, s.Pension.ValueKind)
	assert.True(t, s.Pension.Value.Equal(decimal.NewFromInt(2400)))
}

func TestFormModel_ScenarioErrors(t *testing.T) {
	tests := []struct {
		name   string
		values map[int]string
		want   string
	}{
		{"bad salary", map[int]string{FieldSalary: "lots"}, "salary"},
		{"negative bonus", map[int]string{FieldBonus: "-5"}, "bonus"},
		{"unknown scheme", map[int]string{FieldScheme: "stakeholder"}, "unknown pension scheme"},
		{"contribution without scheme", map[int]string{FieldPension: "5%"}, "needs a scheme"},
		{"over 100 percent", map[int]string{FieldScheme: "personal", FieldPension: "150"}, "over 100%"},
		{"amount on banded scheme", map[int]string{FieldScheme: "auto_enrolment", FieldPension: "£100"}, "only takes a percentage"},
		{"unknown plan", map[int]string{FieldStudentLoans: "plan3"}, "unknown student loan plan"},
		{"bad residency", map[int]string{FieldScotland: "maybe"}, "yes or no"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := filledForm(tt.values).Scenario()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFormModel_SetScenarioRoundTrip(t *testing.T) {
	original := domain.Scenario{
		Name: "Edinburgh",
		TaxInputs: domain.TaxInputs{
			GrossSalary:        decimal.NewFromInt(52000),
			GrossBonus:         decimal.NewFromInt(3000),
			StudentLoanPlans:   []domain.StudentLoanPlan{domain.PlanFour},
			ResidentInScotland: true,
			Pension: &domain.PensionSpec{
				Scheme:    domain.SchemeReliefAtSource,
				Value:     decimal.NewFromInt(5),
				ValueKind: domain.ValuePercentage,
			},
			TaxYear: "2024/25",
		},
	}

	m := NewFormModel()
	m.SetScenario(original)
	s, err := m.Scenario()
	require.NoError(t, err)

	assert.Equal(t, "Edinburgh", s.Name)
	assert.True(t, s.GrossSalary.Equal(original.GrossSalary))
	assert.True(t, s.GrossBonus.Equal(original.GrossBonus))
	assert.Equal(t, original.StudentLoanPlans, s.StudentLoanPlans)
	assert.True(t, s.ResidentInScotland)
	require.NotNil(t, s.Pension)
	assert.Equal(t, domain.SchemeReliefAtSource, s.Pension.Scheme)
	assert.Equal(t, domain.ValuePercentage, s.Pension.ValueKind)
	assert.True(t, s.Pension.Value.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "2024/25", s.TaxYear)
}

func TestFormModel_Keys(t *testing.T) {
	m := filledForm(map[int]string{FieldSalary: "40000"})
	assert.True(t, m.Editing())

	m, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	req, ok := cmd().(tuimsg.CalculateRequestMsg)
	require.True(t, ok)
	assert.True(t, req.Scenario.GrossSalary.Equal(decimal.NewFromInt(40000)))

	m, _ = m.Update(keyMsg("esc"))
	assert.False(t, m.Editing())

	// letters are ignored until editing resumes
	m, cmd = m.Update(keyMsg("x"))
	assert.Nil(t, cmd)
	assert.Equal(t, "40000", m.Value(FieldSalary))

	m, _ = m.Update(keyMsg("e"))
	assert.True(t, m.Editing())
}

func TestFormModel_InvalidInputShowsError(t *testing.T) {
	m := filledForm(map[int]string{FieldSalary: "abc"})

	m, cmd := m.Update(keyMsg("enter"))
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "salary")
}

func TestFormModel_TabMovesFocus(t *testing.T) {
	m := NewFormModel()
	for i := 0; i < fieldCount; i++ {
		m, _ = m.Update(keyMsg("tab"))
	}
	assert.Equal(t, FieldSalary, m.focus)

	m, _ = m.Update(keyMsg("tab"))
	assert.Equal(t, FieldBonus, m.focus)
}
