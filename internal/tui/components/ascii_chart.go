package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ukcalc/ukcalc/internal/tui/tuistyles"
)

const yAxisWidth = 9

// DataSeries is a single line in a chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart plots one or more series against a shared x axis
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string
	Width      int
	Height     int
	ShowLegend bool
	XAxisLabel string
}

// NewASCIIChart creates a new ASCII chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Width:      60,
		Height:     12,
		ShowLegend: true,
	}
}

// AddSeries adds a data series to the chart
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// WithLabels sets the x axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// WithXAxisLabel sets the caption under the x axis
func (c *ASCIIChart) WithXAxisLabel(label string) *ASCIIChart {
	c.XAxisLabel = label
	return c
}

// Render returns the styled chart
func (c *ASCIIChart) Render() string {
	if !c.hasData() {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var content strings.Builder
	if c.Title != "" {
		content.WriteString(tuistyles.TitleStyle.Render(c.Title))
		content.WriteString("\n\n")
	}

	lo, hi := c.valueRange()
	content.WriteString(c.renderGrid(lo, hi))

	if c.XAxisLabel != "" {
		content.WriteString("\n")
		content.WriteString(tuistyles.SubtitleStyle.Italic(true).Render(c.XAxisLabel))
	}

	if c.ShowLegend && len(c.Series) > 1 {
		content.WriteString("\n\n")
		content.WriteString(c.renderLegend())
	}

	return content.String()
}

func (c *ASCIIChart) hasData() bool {
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return true
		}
	}
	return false
}

// valueRange returns the padded min and max over every series. A flat
// range is widened so points can still be placed.
func (c *ASCIIChart) valueRange() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}
	if hi == lo {
		return lo - 1, hi + 1
	}
	padding := (hi - lo) * 0.05
	return lo - padding, hi + padding
}

func (c *ASCIIChart) plotWidth() int {
	return max(c.Width-yAxisWidth-3, 2)
}

func (c *ASCIIChart) position(i, n int, value, lo, hi float64, width int) (int, int) {
	x := 0
	if n > 1 {
		x = int(float64(i) / float64(n-1) * float64(width-1))
	}
	y := c.Height - 1 - int((value-lo)/(hi-lo)*float64(c.Height-1))
	return x, y
}

func (c *ASCIIChart) renderGrid(lo, hi float64) string {
	width := c.plotWidth()

	grid := make([][]rune, c.Height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	for idx, series := range c.Series {
		char := seriesChar(idx)
		prevX, prevY := -1, -1
		for i, p := range series.Points {
			x, y := c.position(i, len(series.Points), p, lo, hi, width)
			if prevX >= 0 {
				drawLine(grid, prevX, prevY, x, y)
			}
			grid[y][x] = char
			prevX, prevY = x, y
		}
	}

	axisStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Width(yAxisWidth).
		Align(lipgloss.Right)

	var out strings.Builder
	for i, row := range grid {
		value := hi - float64(i)/float64(max(c.Height-1, 1))*(hi-lo)
		out.WriteString(axisStyle.Render(FormatChartValue(value)))
		out.WriteString(" │ ")
		out.WriteString(string(row))
		out.WriteString("\n")
	}
	out.WriteString(strings.Repeat(" ", yAxisWidth))
	out.WriteString(" └")
	out.WriteString(strings.Repeat("─", width+1))

	if len(c.Labels) > 0 {
		out.WriteString("\n")
		out.WriteString(c.renderXAxisLabels(width))
	}
	return out.String()
}

// renderXAxisLabels places the first, middle and last labels under the plot
func (c *ASCIIChart) renderXAxisLabels(width int) string {
	line := []rune(strings.Repeat(" ", width+yAxisWidth+3))
	picks := []int{0, len(c.Labels) / 2, len(c.Labels) - 1}
	for _, i := range picks {
		label := []rune(c.Labels[i])
		x, _ := c.position(i, len(c.Labels), 0, -1, 1, width)
		start := min(yAxisWidth+3+x, len(line)-len(label))
		if start < 0 {
			continue
		}
		copy(line[start:], label)
	}
	return tuistyles.SubtitleStyle.Render(strings.TrimRight(string(line), " "))
}

func (c *ASCIIChart) renderLegend() string {
	items := make([]string, len(c.Series))
	for i, s := range c.Series {
		symbol := lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesChar(i)))
		items[i] = fmt.Sprintf("%s %s", symbol, s.Name)
	}
	return tuistyles.SubtitleStyle.Render("Legend: " + strings.Join(items, " • "))
}

func seriesChar(index int) rune {
	chars := []rune{'●', '■', '▲', '♦'}
	return chars[index%len(chars)]
}

// drawLine joins two grid cells using Bresenham's algorithm, leaving
// already plotted cells alone.
func drawLine(grid [][]rune, x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		if y0 >= 0 && y0 < len(grid) && x0 >= 0 && x0 < len(grid[y0]) && grid[y0][x0] == ' ' {
			grid[y0][x0] = '·'
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// FormatChartValue formats an axis value in pounds ("£42K", "£1.2M")
func FormatChartValue(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}
	switch {
	case value >= 1_000_000:
		return fmt.Sprintf("%s£%.1fM", sign, value/1_000_000)
	case value >= 10_000:
		return fmt.Sprintf("%s£%.0fK", sign, value/1000)
	case value >= 1000:
		return fmt.Sprintf("%s£%.1fK", sign, value/1000)
	}
	return fmt.Sprintf("%s£%.0f", sign, value)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
