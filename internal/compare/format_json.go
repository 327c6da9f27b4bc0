package compare

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// JSONFormatter formats comparison results as JSON. Amounts are written to the
// penny and the raw calculation results are left out.
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

type comparisonJSON struct {
	BaseScenario    string            `json:"baseScenario"`
	ConfigPath      string            `json:"configPath,omitempty"`
	TaxYear         string            `json:"taxYear,omitempty"`
	Base            *scenarioJSON     `json:"base"`
	Alternatives    []alternativeJSON `json:"alternatives"`
	BestTakeHome    string            `json:"bestTakeHome,omitempty"`
	Recommendations []string          `json:"recommendations"`
}

type scenarioJSON struct {
	Name             string     `json:"name"`
	Description      string     `json:"description,omitempty"`
	TaxYear          string     `json:"taxYear"`
	Scotland         bool       `json:"scotland"`
	Annual           annualJSON `json:"annual"`
	MonthlyTakeHome  string     `json:"monthlyTakeHome"`
	EffectiveTaxRate string     `json:"effectiveTaxRate"`
}

type annualJSON struct {
	Gross             string `json:"gross"`
	IncomeTax         string `json:"incomeTax"`
	NationalInsurance string `json:"nationalInsurance"`
	StudentLoan       string `json:"studentLoan"`
	Pension           string `json:"pension"`
	TakeHome          string `json:"takeHome"`
}

type alternativeJSON struct {
	scenarioJSON
	FromBase diffJSON `json:"fromBase"`
}

type diffJSON struct {
	TakeHome        string `json:"takeHome"`
	TakeHomePercent string `json:"takeHomePercent"`
	Taxes           string `json:"taxes"`
	Pension         string `json:"pension"`
	KeptPerPound    string `json:"keptPerPound,omitempty"`
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	doc := comparisonJSON{
		BaseScenario:    compSet.BaseScenarioName,
		ConfigPath:      compSet.ConfigPath,
		Alternatives:    make([]alternativeJSON, 0, len(compSet.AlternativeResults)),
		Recommendations: compSet.Recommendations,
	}
	if doc.Recommendations == nil {
		doc.Recommendations = []string{}
	}

	best := compSet.BaseResult
	if compSet.BaseResult != nil {
		base := newScenarioJSON(compSet.BaseResult)
		doc.Base = &base
		doc.TaxYear = compSet.BaseResult.TaxYear
	}
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		doc.Alternatives = append(doc.Alternatives, alternativeJSON{
			scenarioJSON: newScenarioJSON(alt),
			FromBase:     newDiffJSON(alt),
		})
		if best == nil || alt.TakeHome.GreaterThan(best.TakeHome) {
			best = alt
		}
	}
	if best != nil {
		doc.BestTakeHome = best.ScenarioName
	}

	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

func newScenarioJSON(cr *ComparisonResult) scenarioJSON {
	return scenarioJSON{
		Name:        cr.ScenarioName,
		Description: cr.Description,
		TaxYear:     cr.TaxYear,
		Scotland:    cr.Scotland,
		Annual: annualJSON{
			Gross:             pennies(cr.GrossIncome),
			IncomeTax:         pennies(cr.IncomeTax),
			NationalInsurance: pennies(cr.NationalInsurance),
			StudentLoan:       pennies(cr.StudentLoan),
			Pension:           pennies(cr.Pension),
			TakeHome:          pennies(cr.TakeHome),
		},
		MonthlyTakeHome:  pennies(cr.MonthlyTakeHome),
		EffectiveTaxRate: pennies(cr.EffectiveTaxRate),
	}
}

func newDiffJSON(cr *ComparisonResult) diffJSON {
	d := diffJSON{
		TakeHome:        pennies(cr.TakeHomeDiffFromBase),
		TakeHomePercent: pennies(cr.TakeHomePctFromBase),
		Taxes:           pennies(cr.TaxDiffFromBase),
		Pension:         pennies(cr.PensionDiffFromBase),
	}
	if cr.KeptPerPound != nil {
		d.KeptPerPound = cr.KeptPerPound.StringFixed(4)
	}
	return d
}

func pennies(d decimal.Decimal) string {
	return d.StringFixed(2)
}
