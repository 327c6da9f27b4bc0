package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukcalc/ukcalc/internal/calculation"
	"github.com/ukcalc/ukcalc/internal/config"
	"github.com/ukcalc/ukcalc/internal/domain"
	"github.com/ukcalc/ukcalc/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app holds what the root command builds before any subcommand runs
type app struct {
	settingsFile string
	logLevel     string

	settings *config.Settings
	engine   *calculation.CalculationEngine
	logger   *zap.Logger
}

// flagBindings maps viper keys to the persistent flags that override them
var flagBindings = []struct{ key, flag string }{
	{"tax_year", "tax-year"},
	{"tax_years_file", "tax-years"},
	{"output.format", "format"},
	{"output.verbose", "verbose"},
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "ukcalc",
		Short: "UK personal finance calculator CLI",
		Long: `Take-home pay, income tax, National Insurance, student loan, mortgage,
stamp duty, pension and family finance calculators for the UK.

Settings are read from ukcalc.yaml and UKCALC_* environment variables;
flags override both.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.settingsFile, "settings", "", "Settings file (default: ukcalc.yaml in the working or user config directory)")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.String("tax-year", "", "Tax year to calculate with, e.g. 2025/26")
	pf.String("tax-years", "", "YAML file with tax-year overrides")
	pf.StringP("format", "f", "", "Output format ("+formatList()+")")
	pf.BoolP("verbose", "v", false, "Verbose console output")

	cmd.AddCommand(
		calculateCmd(a),
		takeHomeCmd(a),
		taxCmd(a),
		niCmd(a),
		studentLoanCmd(a),
		mortgageCmd(a),
		stampDutyCmd(a),
		pensionCmd(a),
		compoundCmd(a),
		inflationCmd(a),
		childBenefitCmd(a),
		childcareCmd(a),
		carFinanceCmd(a),
		compareCmd(a),
		solveCmd(a),
		validateCmd(a),
		taxYearsCmd(a),
		initCmd(),
		versionCmd(),
	)
	return cmd
}

func formatList() string {
	return strings.Join(output.AvailableFormatterNames(), ", ")
}

// setup loads settings and builds the logger and engine shared by every subcommand
func (a *app) setup(cmd *cobra.Command) error {
	v := config.NewViper()
	for _, b := range flagBindings {
		if err := v.BindPFlag(b.key, cmd.Root().PersistentFlags().Lookup(b.flag)); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", b.flag, err)
		}
	}

	settings, err := config.LoadSettings(v, a.settingsFile)
	if err != nil {
		return err
	}
	a.settings = settings

	logger, err := config.NewLogger(settings.Logging, a.logLevel)
	if err != nil {
		return err
	}
	a.logger = logger

	engine, err := config.NewEngine(settings)
	if err != nil {
		return err
	}
	engine.SetLogger(logger.Sugar())
	a.engine = engine

	logger.Debug("settings loaded",
		zap.String("tax_year", engine.TaxCalc.TaxYear.ID),
		zap.String("format", settings.Output.Format),
	)
	return nil
}

// format resolves the report format; --verbose upgrades the summary console output
func (a *app) format() string {
	format := a.settings.Output.Format
	if format == "" {
		format = "console"
	}
	if f := output.GetFormatterByName(format); a.settings.Output.Verbose && f != nil && f.Name() == "console-lite" {
		return "console"
	}
	return format
}

// parser validates against the tax years the engine knows, overrides included
func (a *app) parser() *config.InputParser {
	return config.NewInputParserWithRegistry(a.engine.TaxYears)
}

// report validates cfg, runs every section it holds and writes the report to stdout
func (a *app) report(cmd *cobra.Command, cfg *domain.Configuration) error {
	if err := a.parser().ValidateConfiguration(cfg); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	report, err := a.engine.RunConfiguration(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("calculation failed: %w", err)
	}
	return output.GenerateReport(cmd.OutOrStdout(), report, a.format())
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// version must work with a broken settings file
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ukcalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
