package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ukcalc/ukcalc/internal/config"
	"github.com/ukcalc/ukcalc/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var settingsFile, taxYear, taxYearsFile string

	cmd := &cobra.Command{
		Use:   "ukcalc-tui [scenario-file]",
		Short: "Interactive UK take-home pay calculator",
		Long: `Interactive terminal UI for the UK take-home pay calculator.

Enter a salary by hand, or pass a scenario file to browse and calculate
its scenarios and compare them against what-if templates.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := config.NewViper()
			if err := v.BindPFlag("tax_year", cmd.Flags().Lookup("tax-year")); err != nil {
				return err
			}
			if err := v.BindPFlag("tax_years_file", cmd.Flags().Lookup("tax-years")); err != nil {
				return err
			}
			settings, err := config.LoadSettings(v, settingsFile)
			if err != nil {
				return err
			}

			engine, err := config.NewEngine(settings)
			if err != nil {
				return err
			}

			// The terminal belongs to the UI, so only a log file can be written to.
			if settings.Logging.OutputFile != "" {
				logger, err := config.NewLogger(settings.Logging, "")
				if err != nil {
					return err
				}
				defer func() { _ = logger.Sync() }()
				engine.SetLogger(logger.Sugar())
			}

			configPath := ""
			if len(args) == 1 {
				configPath = args[0]
				if _, err := os.Stat(configPath); err != nil {
					return fmt.Errorf("scenario file not found: %s", configPath)
				}
			}

			p := tea.NewProgram(
				tui.NewModel(configPath, engine),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&settingsFile, "settings", "", "Settings file (default: ukcalc.yaml in the working or user config directory)")
	cmd.Flags().StringVar(&taxYear, "tax-year", "", "Default tax year, e.g. 2025/26")
	cmd.Flags().StringVar(&taxYearsFile, "tax-years", "", "YAML file with tax-year overrides")
	return cmd
}
