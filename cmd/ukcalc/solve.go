package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ukcalc/ukcalc/internal/breakeven"
	"github.com/ukcalc/ukcalc/internal/domain"
)

type solveOptions struct {
	takeHomeOptions
	takeHome    decimal.Decimal
	maxAdjusted decimal.Decimal
	thresholds  bool
	sacrifice   string
}

func solveCmd(a *app) *cobra.Command {
	opts := &solveOptions{}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find the salary or pension contribution that meets a goal",
		Long: `Work backwards from a goal. --take-home finds the gross salary that pays a
given annual take-home. --max-adjusted finds the pension percentage that brings
adjusted income down to a ceiling, and --thresholds does this for the child
benefit charge and the personal allowance taper at once.

Examples:
  ukcalc solve --salary 40000 --take-home 45000 --student-loan plan2
  ukcalc solve --salary 110000 --max-adjusted 100000
  ukcalc solve --salary 75000 --thresholds --sacrifice-scheme auto_unbanded
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			cfg := &domain.Configuration{Scenarios: []domain.Scenario{opts.scenario()}}
			if err := a.parser().ValidateConfiguration(cfg); err != nil {
				return fmt.Errorf("invalid input: %w", err)
			}
			base := &cfg.Scenarios[0]

			var scheme domain.PensionScheme
			if opts.sacrifice != "" {
				s, err := domain.ParsePensionScheme(opts.sacrifice)
				if err != nil {
					return err
				}
				scheme = s
			}

			solver := breakeven.NewDefaultSolver(a.engine)
			if opts.thresholds {
				results, err := solver.SolveThresholds(cmd.Context(), base, cfg, scheme)
				if err != nil {
					return fmt.Errorf("solve failed: %w", err)
				}
				return writeSolve(cmd, a, results, func(tf *breakeven.TableFormatter) string {
					return tf.FormatThresholds(results)
				})
			}

			req := breakeven.SolveRequest{Base: base, Config: cfg, Scheme: scheme}
			if cmd.Flags().Changed("take-home") {
				req.Target, req.Amount = breakeven.TargetTakeHome, opts.takeHome
			} else {
				req.Target, req.Amount = breakeven.TargetAdjustedIncome, opts.maxAdjusted
			}
			result, err := solver.Solve(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("solve failed: %w", err)
			}
			a.engine.Logger.Debugf("solver finished after %d iterations", result.Iterations)
			return writeSolve(cmd, a, result, func(tf *breakeven.TableFormatter) string {
				return tf.Format(result)
			})
		},
	}

	opts.bindFlags(cmd, "Base")
	f := cmd.Flags()
	f.Var(newDecimalValue(&opts.takeHome, decimal.Zero), "take-home", "Annual take-home pay to reach")
	f.Var(newDecimalValue(&opts.maxAdjusted, decimal.Zero), "max-adjusted", "Adjusted income ceiling to get under")
	f.BoolVar(&opts.thresholds, "thresholds", false, "Solve for the child benefit charge and allowance taper thresholds")
	f.StringVar(&opts.sacrifice, "sacrifice-scheme", "", "Scheme for the extra pension (default: --pension-scheme, or salary_sacrifice)")
	_ = cmd.MarkFlagRequired("salary")
	cmd.MarkFlagsOneRequired("take-home", "max-adjusted", "thresholds")
	cmd.MarkFlagsMutuallyExclusive("take-home", "max-adjusted", "thresholds")
	return cmd
}

// writeSolve prints JSON for the json format and a table otherwise
func writeSolve(cmd *cobra.Command, a *app, v any, table func(*breakeven.TableFormatter) string) error {
	if a.settings.Output.Format == "json" {
		out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(v)
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), table(&breakeven.TableFormatter{}))
	return nil
}
