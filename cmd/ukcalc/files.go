package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ukcalc/ukcalc/internal/config"
	"github.com/ukcalc/ukcalc/internal/domain"
	"github.com/ukcalc/ukcalc/internal/output"
)

func calculateCmd(a *app) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:     "calculate [scenario-file]",
		Aliases: []string{"run"},
		Short:   "Calculate every scenario and section in a scenario file",
		Long: `Calculate take-home pay for every scenario in a YAML scenario file, along
with any mortgage, stamp duty, pension, savings, inflation, child benefit,
childcare and car finance sections it holds.

Examples:
  ukcalc calculate scenarios.yaml
  ukcalc calculate scenarios.yaml --format html --save
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.parser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			a.engine.Logger.Infof("loaded %d scenarios from %s", len(cfg.Scenarios), args[0])

			report, err := a.engine.RunConfiguration(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("calculation failed: %w", err)
			}

			format := a.format()
			if !save {
				return output.GenerateReport(cmd.OutOrStdout(), report, format)
			}
			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unsupported format: %s", format)
			}
			filename, err := output.WriteFormatted(formatter, report, output.ExtensionFor(formatter.Name()))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "Write the report to a timestamped file instead of stdout")
	return cmd
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [scenario-file]",
		Short: "Validate a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.parser().LoadFromFile(args[0]); err != nil {
				var verrs config.ValidationErrors
				if !errors.As(err, &verrs) {
					return err
				}
				for _, fe := range verrs {
					fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", fe.Error())
				}
				return fmt.Errorf("configuration file %s has %d problems", args[0], len(verrs))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid\n", args[0])
			return nil
		},
	}
}

func taxYearsCmd(a *app) *cobra.Command {
	var export bool

	cmd := &cobra.Command{
		Use:   "tax-years",
		Short: "List the tax years available for calculation",
		Long: `List the tax years the calculator knows, including any loaded with
--tax-years. --export prints them as YAML, ready to edit into an override file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if export {
				data, err := config.ExportTaxYears(a.engine.TaxYears)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			current := a.engine.TaxCalc.TaxYear.ID
			for _, id := range a.engine.TaxYears.IDs() {
				marker := " "
				if id == current {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, id)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&export, "export", false, "Print the tax-year rules as YAML")
	return cmd
}

func initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [scenario-file]",
		Short: "Write an example scenario file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "scenarios.yaml"
			if len(args) == 1 {
				filename = args[0]
			}
			if _, err := os.Stat(filename); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", filename)
			}
			if err := output.SaveConfiguration(exampleConfiguration(), filename); err != nil {
				return fmt.Errorf("failed to write %s: %w", filename, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example scenario file written to %s\n", filename)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func exampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		TaxYear: "2024/25",
		Scenarios: []domain.Scenario{
			{
				Name:        "Current job",
				Description: "Salary with auto-enrolment pension",
				TaxInputs: domain.TaxInputs{
					GrossSalary: decimal.NewFromInt(50000),
					Pension: &domain.PensionSpec{
						Scheme:    domain.SchemeAutoEnrolment,
						Value:     decimal.NewFromInt(5),
						ValueKind: domain.ValuePercentage,
					},
					StudentLoanPlans: []domain.StudentLoanPlan{domain.PlanTwo},
				},
			},
			{
				Name:        "New offer",
				Description: "Higher salary with salary sacrifice and a bonus",
				TaxInputs: domain.TaxInputs{
					GrossSalary: decimal.NewFromInt(60000),
					GrossBonus:  decimal.NewFromInt(5000),
					Pension: &domain.PensionSpec{
						Scheme:    domain.SchemeSalarySacrifice,
						Value:     decimal.NewFromInt(5),
						ValueKind: domain.ValuePercentage,
					},
					StudentLoanPlans: []domain.StudentLoanPlan{domain.PlanTwo},
				},
			},
		},
		Mortgage: &domain.MortgageInputs{
			HomePrice:  decimal.NewFromInt(300000),
			Deposit:    decimal.NewFromInt(30000),
			TermMonths: 300,
			APR:        decimal.NewFromFloat(4.5),
		},
		PropertyTax: &domain.PropertyTaxInputs{
			HomePrice:      decimal.NewFromInt(300000),
			FirstTimeBuyer: true,
			Region:         domain.RegionEngland,
		},
	}
}
