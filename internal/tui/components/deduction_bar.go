package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/ukcalc/ukcalc/internal/domain"
	"github.com/ukcalc/ukcalc/internal/tui/tuistyles"
)

// Segment is one slice of a DeductionBar
type Segment struct {
	Label  string
	Amount decimal.Decimal
	Color  lipgloss.Color
}

// DeductionBar shows how gross pay splits between deductions and take-home pay
type DeductionBar struct {
	Segments []Segment
	Width    int
}

// NewDeductionBar builds the split for a take-home result. Segments with no
// amount are left out.
func NewDeductionBar(r *domain.TakeHomeResult) *DeductionBar {
	all := []Segment{
		{Label: "Income Tax", Amount: r.IncomeTax.Total, Color: tuistyles.ColorDanger},
		{Label: "NI", Amount: r.EmployeeNI.Total, Color: tuistyles.ColorAccent},
		{Label: "Student Loan", Amount: r.StudentLoanRepayments.Total, Color: tuistyles.ColorSecondary},
		{Label: "Pension", Amount: r.PensionContribution.Total, Color: tuistyles.ColorInfo},
		{Label: "Take-Home", Amount: r.TakeHomePay, Color: tuistyles.ColorSuccess},
	}
	bar := &DeductionBar{Width: 50}
	for _, s := range all {
		if s.Amount.IsPositive() {
			bar.Segments = append(bar.Segments, s)
		}
	}
	return bar
}

// WithWidth sets the bar width
func (b *DeductionBar) WithWidth(width int) *DeductionBar {
	b.Width = width
	return b
}

func (b *DeductionBar) total() decimal.Decimal {
	total := decimal.Zero
	for _, s := range b.Segments {
		total = total.Add(s.Amount)
	}
	return total
}

// Cells returns the number of bar cells for each segment. Cells add up to the
// bar width; cells lost to rounding go to the segments with the largest remainders.
func (b *DeductionBar) Cells() []int {
	cells := make([]int, len(b.Segments))
	total := b.total()
	if total.IsZero() || b.Width <= 0 {
		return cells
	}

	width := decimal.NewFromInt(int64(b.Width))
	remainders := make([]decimal.Decimal, len(b.Segments))
	used := 0
	for i, s := range b.Segments {
		exact := s.Amount.Mul(width).Div(total)
		cells[i] = int(exact.IntPart())
		remainders[i] = exact.Sub(exact.Floor())
		used += cells[i]
	}
	for ; used < b.Width; used++ {
		largest := 0
		for i := range remainders {
			if remainders[i].GreaterThan(remainders[largest]) {
				largest = i
			}
		}
		cells[largest]++
		remainders[largest] = decimal.NewFromInt(-1)
	}
	return cells
}

// Render returns the bar followed by a legend with each segment's share
func (b *DeductionBar) Render() string {
	if len(b.Segments) == 0 {
		return tuistyles.InfoStyle.Render("Nothing to show")
	}

	var bar strings.Builder
	for i, n := range b.Cells() {
		bar.WriteString(lipgloss.NewStyle().Foreground(b.Segments[i].Color).Render(strings.Repeat("█", n)))
	}

	total := b.total()
	legend := make([]string, len(b.Segments))
	for i, s := range b.Segments {
		share := s.Amount.Div(total).Mul(decimal.NewFromInt(100))
		symbol := lipgloss.NewStyle().Foreground(s.Color).Render("■")
		legend[i] = fmt.Sprintf("%s %s %s%%", symbol, s.Label, share.StringFixed(1))
	}

	return bar.String() + "\n" + tuistyles.SubtitleStyle.Render(strings.Join(legend, "  "))
}
