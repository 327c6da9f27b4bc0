package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ukcalc/ukcalc/internal/compare"
	"github.com/ukcalc/ukcalc/internal/domain"
	"github.com/ukcalc/ukcalc/internal/transform"
)

type compareOptions struct {
	base          string
	with          string
	transforms    []string
	scenarios     []string
	allScenarios  bool
	listTemplates bool
	compact       bool
}

func compareCmd(a *app) *cobra.Command {
	opts := &compareOptions{}

	cmd := &cobra.Command{
		Use:   "compare [scenario-file]",
		Short: "Compare a scenario against what-if templates or other scenarios",
		Long: `Compare a base take-home pay scenario against built-in templates, ad hoc
transforms, or other scenarios in the same file.

Examples:
  ukcalc compare scenarios.yaml --base "Current job" --with raise_10,salary_sacrifice_5
  ukcalc compare scenarios.yaml --transform set_salary:amount=65000 --transform set_pension:scheme=salary_sacrifice,value=8
  ukcalc compare scenarios.yaml --base "Current job" --scenarios "New offer" --format csv
  ukcalc compare scenarios.yaml --all-scenarios
  ukcalc compare --list-templates
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.listTemplates {
				next := nextTaxYear(a.engine.TaxYears.IDs(), a.engine.TaxCalc.TaxYear.ID)
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates(next)))
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("scenario file required for comparison (use --list-templates to see available templates)")
			}

			cfg, err := a.parser().LoadFromFile(args[0])
			if err != nil {
				return err
			}

			set, err := runComparison(cmd, a, cfg, opts)
			if err != nil {
				return err
			}
			set.ConfigPath = args[0]
			return writeComparison(cmd, set, a.settings.Output.Format, opts.compact)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.base, "base", "", "Base scenario name (default: the first scenario)")
	f.StringVar(&opts.with, "with", "", "Comma-separated list of templates to compare")
	f.StringArrayVar(&opts.transforms, "transform", nil, "Transform applied to the base, e.g. adjust_salary:percent=10 (repeatable, combined into one alternative)")
	f.StringSliceVar(&opts.scenarios, "scenarios", nil, "Other scenarios in the file to compare against")
	f.BoolVar(&opts.allScenarios, "all-scenarios", false, "Compare against every other scenario in the file")
	f.BoolVar(&opts.listTemplates, "list-templates", false, "List all available templates")
	f.BoolVar(&opts.compact, "compact", false, "One-line summary (table format only)")
	cmd.MarkFlagsMutuallyExclusive("with", "scenarios", "all-scenarios")
	cmd.MarkFlagsMutuallyExclusive("transform", "scenarios", "all-scenarios")
	return cmd
}

func runComparison(cmd *cobra.Command, a *app, cfg *domain.Configuration, opts *compareOptions) (*compare.ComparisonSet, error) {
	engine := compare.NewCompareEngine(a.engine)

	if opts.allScenarios || len(opts.scenarios) > 0 {
		set, err := engine.CompareScenarios(cmd.Context(), cfg, opts.base, opts.scenarios)
		if err != nil {
			return nil, fmt.Errorf("comparison failed: %w", err)
		}
		return set, nil
	}

	templates := transform.ParseTemplateList(opts.with)
	if len(templates) == 0 && len(opts.transforms) == 0 {
		return nil, fmt.Errorf("nothing to compare: use --with, --transform, --scenarios or --all-scenarios")
	}
	set, err := engine.Compare(cmd.Context(), cfg, compare.CompareOptions{
		BaseScenarioName: opts.base,
		Templates:        templates,
		Transforms:       opts.transforms,
	})
	if err != nil {
		return nil, fmt.Errorf("comparison failed: %w", err)
	}
	return set, nil
}

// writeComparison prints set as a table, CSV or JSON. Report formats that have
// no comparison equivalent fall back to the table.
func writeComparison(cmd *cobra.Command, set *compare.ComparisonSet, format string, compact bool) error {
	w := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "csv", "detailed-csv":
		out, err := (&compare.CSVFormatter{}).Format(set)
		if err != nil {
			return fmt.Errorf("failed to format CSV: %w", err)
		}
		fmt.Fprint(w, out)
	case "json":
		out, err := (&compare.JSONFormatter{Pretty: true}).Format(set)
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		fmt.Fprint(w, out)
	default:
		formatter := &compare.TableFormatter{}
		if compact {
			fmt.Fprintln(w, formatter.FormatCompact(set))
			return nil
		}
		fmt.Fprint(w, formatter.Format(set))
	}
	return nil
}

// nextTaxYear returns the id after current in ids, or "" when current is the latest
func nextTaxYear(ids []string, current string) string {
	for i, id := range ids {
		if id == current && i+1 < len(ids) {
			return ids[i+1]
		}
	}
	return ""
}
