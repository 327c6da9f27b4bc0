package scenes

import (
	"strings"

	"github.com/ukcalc/ukcalc/internal/tui/tuistyles"
)

type shortcut struct {
	keys string
	desc string
}

var helpSections = []struct {
	title     string
	shortcuts []shortcut
}{
	{"Navigation", []shortcut{
		{"f", "take-home pay form"},
		{"s", "scenarios from the loaded file"},
		{"r", "results of the last calculation"},
		{"c", "compare against what-if templates"},
		{"?", "this help"},
		{"esc", "back (stops editing on the form)"},
		{"q, ctrl+c", "quit"},
	}},
	{"Form", []shortcut{
		{"tab, ↓", "next field"},
		{"shift+tab, ↑", "previous field"},
		{"enter", "calculate"},
		{"e", "edit again after esc"},
	}},
	{"Results", []shortcut{
		{"tab, →", "next view (summary, breakdown, salary chart)"},
		{"shift+tab, ←", "previous view"},
	}},
	{"Compare", []shortcut{
		{"space, x", "toggle template"},
		{"enter", "run comparison"},
		{"c", "clear selection and results"},
	}},
}

// HelpView renders the keyboard reference
func HelpView() string {
	var b strings.Builder
	b.WriteString(tuistyles.TitleStyle.Render("Keyboard shortcuts"))
	b.WriteString("\n")
	for _, section := range helpSections {
		b.WriteString("\n")
		b.WriteString(tuistyles.TableHeaderStyle.Render(section.title))
		b.WriteString("\n")
		for _, s := range section.shortcuts {
			b.WriteString("  ")
			b.WriteString(tuistyles.HelpKeyStyle.Width(16).Render(s.keys))
			b.WriteString(tuistyles.HelpDescStyle.Render(s.desc))
			b.WriteString("\n")
		}
	}
	return tuistyles.BorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}
