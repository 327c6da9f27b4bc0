package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ukcalc/ukcalc/internal/domain"
)

// Formatter renders a report in one output format
type Formatter interface {
	Name() string
	Format(report *domain.Report) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *domain.Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *domain.Report) ([]byte, error) { return f.F(report) }

var formatters = []Formatter{
	ConsoleFormatter{},
	ConsoleVerboseFormatter{},
	CSVSummarizer{},
	DetailedCSVFormatter{},
	JSONFormatter{},
	YAMLFormatter{},
	HTMLFormatter{},
}

var formatAliases = map[string]string{
	"verbose":         "console",
	"console-verbose": "console",
	"text":            "console-lite",
	"summary":         "console-lite",
	"yml":             "yaml",
	"csv-detailed":    "detailed-csv",
}

// fileExtensions maps formatter names to the extension WriteFormatted uses
var fileExtensions = map[string]string{
	"console":      "txt",
	"console-lite": "txt",
	"csv":          "csv",
	"detailed-csv": "csv",
	"json":         "json",
	"yaml":         "yaml",
	"html":         "html",
}

// GetFormatterByName returns the formatter registered under name or an alias,
// or nil when there is none.
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := formatAliases[name]; ok {
		name = target
	}
	for _, f := range formatters {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// AvailableFormatterNames lists the registered formatter names
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for _, f := range formatters {
		names = append(names, f.Name())
	}
	return names
}

// AvailableFormatAliases lists the accepted aliases in sorted order
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// ExtensionFor returns the file extension for a formatter name
func ExtensionFor(name string) string {
	if ext, ok := fileExtensions[name]; ok {
		return ext
	}
	return "txt"
}

// WriteFormatted writes the formatted report to a timestamped file in the
// working directory and returns the file name.
func WriteFormatted(formatter Formatter, report *domain.Report, ext string) (string, error) {
	data, err := formatter.Format(report)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("ukcalc_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
