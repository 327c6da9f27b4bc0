package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/output"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a solver result
func (tf *TableFormatter) Format(result *SolveResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN SOLVER RESULTS\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	sb.WriteString(fmt.Sprintf("Target:              %s\n", tf.describeTarget(result)))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("SOLVED PARAMETERS\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Gross Salary:        %s\n", output.FormatCurrency(result.GrossSalary)))
	if result.PensionPercent != nil {
		sb.WriteString(fmt.Sprintf("Pension (%s): %s\n", result.PensionScheme, output.FormatPercentage(*result.PensionPercent)))
	}
	sb.WriteString("\n")

	sb.WriteString("RESULTS\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Take-home Pay:       %s\n", output.FormatCurrency(result.TakeHome)))
	sb.WriteString(fmt.Sprintf("Adjusted Income:     %s\n", output.FormatCurrency(result.AdjustedIncome)))
	if result.Result != nil {
		sb.WriteString(fmt.Sprintf("Monthly Take-home:   %s\n", output.FormatCurrency(result.Result.MonthlyTakeHome)))
	}
	sb.WriteString("\n")

	if !result.TakeHomeDiffFromBase.IsZero() || !result.PensionDiffFromBase.IsZero() {
		sb.WriteString("COMPARISON TO BASE SCENARIO\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		sb.WriteString(fmt.Sprintf("Base Take-home:      %s\n", output.FormatCurrency(result.BaseTakeHome)))
		sb.WriteString(fmt.Sprintf("Take-home Change:    %s%s\n",
			tf.deltaSymbol(result.TakeHomeDiffFromBase), output.FormatCurrency(result.TakeHomeDiffFromBase)))
		if !result.PensionDiffFromBase.IsZero() {
			sb.WriteString(fmt.Sprintf("Pension Change:      %s%s\n",
				tf.deltaSymbol(result.PensionDiffFromBase), output.FormatCurrency(result.PensionDiffFromBase)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatThresholds formats the pension needed for each income threshold
func (tf *TableFormatter) FormatThresholds(results []ThresholdResult) string {
	var sb strings.Builder

	sb.WriteString("INCOME THRESHOLDS\n")
	sb.WriteString(strings.Repeat("=", 78) + "\n")
	sb.WriteString(fmt.Sprintf("%-34s %12s %9s %9s %11s\n", "Threshold", "Ceiling", "Pension", "Lost", "Take-home"))
	sb.WriteString(strings.Repeat("-", 78) + "\n")

	for _, th := range results {
		r := th.Result
		pension := "n/a"
		if !r.Success {
			pension = "unreachable"
		} else if r.PensionPercent != nil {
			pension = r.PensionPercent.StringFixed(2) + "%"
		}
		sb.WriteString(fmt.Sprintf("%-34s %12s %9s %9s %11s\n",
			tf.truncate(th.Label, 34),
			"£"+tf.formatShort(r.Amount),
			pension,
			"£"+tf.formatShort(r.TakeHomeDiffFromBase.Neg()),
			"£"+tf.formatShort(r.TakeHome)))
	}
	sb.WriteString("\n")
	sb.WriteString("Lost is the take-home given up against the base scenario.\n")

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for a result or a slice of threshold results
func (jf *JSONFormatter) Format(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (tf *TableFormatter) describeTarget(result *SolveResult) string {
	switch result.Target {
	case TargetTakeHome:
		return "take-home of " + output.FormatCurrency(result.Amount)
	case TargetAdjustedIncome:
		return "adjusted income at or below " + output.FormatCurrency(result.Amount)
	}
	return string(result.Target)
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
