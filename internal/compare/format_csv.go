package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Tax Year",
		"Scotland",
		"Gross Income",
		"Income Tax",
		"National Insurance",
		"Student Loan",
		"Pension",
		"Take-Home",
		"Monthly Take-Home",
		"Effective Tax Rate",
		"Take-Home Diff from Base",
		"Take-Home % Change",
		"Tax Diff from Base",
		"Pension Diff from Base",
		"Kept per £1",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	kept := ""
	if result.KeptPerPound != nil {
		kept = result.KeptPerPound.StringFixed(4)
	}
	return []string{
		result.ScenarioName,
		scenarioType,
		result.TaxYear,
		strconv.FormatBool(result.Scotland),
		result.GrossIncome.StringFixed(2),
		result.IncomeTax.StringFixed(2),
		result.NationalInsurance.StringFixed(2),
		result.StudentLoan.StringFixed(2),
		result.Pension.StringFixed(2),
		result.TakeHome.StringFixed(2),
		result.MonthlyTakeHome.StringFixed(2),
		result.EffectiveTaxRate.StringFixed(2),
		result.TakeHomeDiffFromBase.StringFixed(2),
		result.TakeHomePctFromBase.StringFixed(2),
		result.TaxDiffFromBase.StringFixed(2),
		result.PensionDiffFromBase.StringFixed(2),
		kept,
	}
}
