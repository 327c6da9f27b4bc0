package scenes

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukcalc/ukcalc/internal/compare"
	"github.com/ukcalc/ukcalc/internal/transform"
	"github.com/ukcalc/ukcalc/internal/tui/tuimsg"
)

func TestCompareModel_SelectAndRequest(t *testing.T) {
	m := NewCompareModel()
	m.SetTemplates(transform.CreateBuiltInTemplates(""))
	require.NotEmpty(t, m.templates)

	// nothing selected: enter does nothing
	m, cmd := m.Update(keyMsg("enter"))
	assert.Nil(t, cmd)

	first := m.templates[0].Name
	second := m.templates[1].Name

	m, _ = m.Update(keyMsg(" "))
	m, _ = m.Update(keyMsg("j"))
	m, _ = m.Update(keyMsg("x"))
	assert.Equal(t, []string{first, second}, m.SelectedTemplates())

	// toggling again deselects
	m, _ = m.Update(keyMsg("x"))
	assert.Equal(t, []string{first}, m.SelectedTemplates())

	m, cmd = m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	req, ok := cmd().(tuimsg.CompareRequestMsg)
	require.True(t, ok)
	assert.Equal(t, []string{first}, req.Templates)
	assert.Contains(t, m.View(), "Comparing")

	// keys are ignored while comparing
	_, cmd = m.Update(keyMsg("enter"))
	assert.Nil(t, cmd)
}

func TestCompareModel_Results(t *testing.T) {
	m := NewCompareModel()
	m.SetTemplates(transform.CreateBuiltInTemplates(""))
	m.SetResults(&compare.ComparisonSet{
		BaseScenarioName: "Base",
		BaseResult:       &compare.ComparisonResult{ScenarioName: "Base", TakeHome: decimal.NewFromFloat(39519.60)},
		AlternativeResults: []compare.ComparisonResult{
			{ScenarioName: "Base_raise_10", TakeHome: decimal.NewFromFloat(42457.40), TakeHomeDiffFromBase: decimal.NewFromFloat(2937.80)},
		},
		Recommendations: []string{"Best Take-Home: Base_raise_10"},
	})

	view := m.View()
	assert.Contains(t, view, "Compared with Base")
	assert.Contains(t, view, "£39,519.60")
	assert.Contains(t, view, "+£2,937.80")
	assert.Contains(t, view, "Best Take-Home")

	m, _ = m.Update(keyMsg("c"))
	assert.NotContains(t, m.View(), "Compared with")
	assert.Empty(t, m.SelectedTemplates())
}

func TestScenariosModel_Select(t *testing.T) {
	m := NewScenariosModel()
	assert.Contains(t, m.View(), "No scenarios loaded")

	_, cmd := m.Update(keyMsg("enter"))
	assert.Nil(t, cmd)

	m.SetScenarios(testScenarios())
	m, _ = m.Update(keyMsg("G"))
	assert.Equal(t, 1, m.SelectedIndex())
	m, _ = m.Update(keyMsg("j"))
	assert.Equal(t, 1, m.SelectedIndex())

	m, cmd = m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	selected, ok := cmd().(tuimsg.ScenarioSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, "Edinburgh", selected.Scenario.Name)

	m, _ = m.Update(keyMsg("g"))
	assert.Equal(t, 0, m.SelectedIndex())
	assert.Contains(t, m.View(), "Salary £50,000.00")
}
