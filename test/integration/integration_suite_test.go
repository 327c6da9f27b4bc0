package integration

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukcalc/ukcalc/internal/calculation"
	"github.com/ukcalc/ukcalc/internal/compare"
	"github.com/ukcalc/ukcalc/internal/config"
	"github.com/ukcalc/ukcalc/internal/output"
	"github.com/ukcalc/ukcalc/internal/transform"
)

// TestIntegrationSuite runs all integration tests
func TestIntegrationSuite(t *testing.T) {
	setupTestEnvironment(t)

	t.Run("Basic_Integration", TestBasicIntegration)
	t.Run("Error_Handling", TestErrorHandling)
	t.Run("Performance", TestPerformance)
	t.Run("Data_Consistency", TestDataConsistency)
}

// TestIntegrationSmokeTest runs a quick smoke test of core functionality
func TestIntegrationSmokeTest(t *testing.T) {
	setupTestEnvironment(t)

	t.Run("basic_calculation", func(t *testing.T) {
		_, report := runExample(t)
		assert.Len(t, report.TakeHome, 3)
	})

	t.Run("basic_output_generation", func(t *testing.T) {
		_, report := runExample(t)

		var buf bytes.Buffer
		assert.NoError(t, output.GenerateReport(&buf, report, "console"), "Should generate console output")
		assert.Contains(t, buf.String(), "Current job")

		buf.Reset()
		assert.NoError(t, output.GenerateReport(&buf, report, "json"), "Should generate JSON output")
	})

	t.Run("settings_from_environment", func(t *testing.T) {
		t.Setenv("UKCALC_TAX_YEAR", "2025/26")

		settings, err := config.LoadSettings(config.NewViper(), filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "error", settings.Logging.Level)

		engine, err := config.NewEngine(settings)
		require.NoError(t, err)
		assert.Equal(t, "2025/26", engine.TaxCalc.TaxYear.ID)
	})
}

// TestIntegrationRegression tests for regression issues
func TestIntegrationRegression(t *testing.T) {
	setupTestEnvironment(t)

	t.Run("known_take_home", func(t *testing.T) {
		cfg := loadExample(t)
		cfg.Scenarios = cfg.Scenarios[2:]
		cfg.Scenarios[0].ResidentInScotland = false
		cfg.Scenarios[0].StudentLoanPlans = nil
		cfg.Scenarios[0].Pension = nil

		report, err := calculation.NewCalculationEngine().RunConfiguration(context.Background(), cfg)
		require.NoError(t, err)
		assert.Equal(t, "39519.6", report.TakeHome[0].Result.TakeHomePay.String(), "£50,000 in England, 2024/25")
	})

	t.Run("output_format_consistency", func(t *testing.T) {
		_, report := runExample(t)

		for _, format := range output.AvailableFormatterNames() {
			t.Run(fmt.Sprintf("format_%s", format), func(t *testing.T) {
				var first, second bytes.Buffer
				require.NoError(t, output.GenerateReport(&first, report, format))
				require.NoError(t, output.GenerateReport(&second, report, format))
				assert.Equal(t, first.String(), second.String(), "%s output should be deterministic", format)
			})
		}
	})

	t.Run("comparison_against_templates", func(t *testing.T) {
		cfg := loadExample(t)
		engine := compare.NewCompareEngine(calculation.NewCalculationEngine())

		set, err := engine.Compare(context.Background(), cfg, compare.CompareOptions{
			BaseScenarioName: "Current job",
			Templates:        transform.ParseTemplateList("raise_10,no_pension"),
		})
		require.NoError(t, err)
		require.Len(t, set.AlternativeResults, 2)

		raise := set.AlternativeResults[0]
		assert.True(t, raise.TakeHomeDiffFromBase.IsPositive(), "A raise should increase take-home")
		require.NotNil(t, raise.KeptPerPound)
		assert.True(t, raise.KeptPerPound.LessThan(decimal.NewFromInt(1)), "Less than £1 is kept per £1 of raise")
	})
}

// setupTestEnvironment quietens logging for the duration of the test
func setupTestEnvironment(t *testing.T) {
	t.Helper()
	t.Setenv("UKCALC_LOGGING_LEVEL", "error")
}

// TestIntegrationBenchmarks runs performance benchmarks
func TestIntegrationBenchmarks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping benchmarks in short mode")
	}

	setupTestEnvironment(t)

	t.Run("calculation_performance", func(t *testing.T) {
		cfg := loadExample(t)
		engine := calculation.NewCalculationEngine()

		start := time.Now()
		report, err := engine.RunConfiguration(context.Background(), cfg)
		duration := time.Since(start)

		require.NoError(t, err, "Should complete calculation")
		assert.Less(t, duration, 30*time.Second, "Calculation should complete within 30 seconds")

		t.Logf("Calculation completed in %v", duration)
		t.Logf("Processed %d scenarios", len(report.TakeHome))
	})

	t.Run("output_generation_performance", func(t *testing.T) {
		_, report := runExample(t)

		for _, format := range output.AvailableFormatterNames() {
			t.Run(fmt.Sprintf("output_%s", format), func(t *testing.T) {
				var buf bytes.Buffer
				start := time.Now()
				err := output.GenerateReport(&buf, report, format)
				duration := time.Since(start)

				require.NoError(t, err, "Should generate %s output", format)
				assert.Less(t, duration, 5*time.Second, "%s output should generate within 5 seconds", format)

				t.Logf("%s output generated in %v", format, duration)
			})
		}
	})
}

// TestIntegrationDataValidation tests data validation across the system
func TestIntegrationDataValidation(t *testing.T) {
	setupTestEnvironment(t)

	t.Run("configuration_data_validation", func(t *testing.T) {
		cfg := loadExample(t)

		for _, scenario := range cfg.Scenarios {
			assert.NotEmpty(t, scenario.Name, "Scenario should have name")
			assert.True(t, scenario.GrossSalary.IsPositive(), "Scenario should have a positive salary")
			assert.True(t, scenario.GrossBonus.GreaterThanOrEqual(decimal.Zero), "Bonus should be non-negative")
		}
		assert.True(t, cfg.Mortgage.Deposit.LessThan(cfg.Mortgage.HomePrice), "Deposit should be below the price")
		assert.Equal(t, 300, cfg.Mortgage.TermMonths)
	})

	t.Run("calculation_result_validation", func(t *testing.T) {
		cfg, report := runExample(t)

		assert.Len(t, report.TakeHome, len(cfg.Scenarios), "Should have same number of scenarios")
		for i, s := range report.TakeHome {
			assert.Equal(t, cfg.Scenarios[i].Name, s.Name, "Scenario names should match")

			r := s.Result
			assert.True(t, r.IncomeTax.Total.GreaterThanOrEqual(decimal.Zero), "Tax should be non-negative")
			assert.True(t, r.EmployeeNI.Total.GreaterThanOrEqual(decimal.Zero), "NI should be non-negative")
			assert.True(t, r.TakeHomePay.GreaterThanOrEqual(decimal.Zero), "Take-home should be non-negative")
		}

		m := report.Mortgage
		assert.True(t, m.MonthlyPayment.IsPositive(), "Monthly payment should be positive")
		assert.True(t, m.TotalInterest.IsPositive(), "Total interest should be positive")
		assert.True(t, report.ChildBenefit.ChargePercent.LessThanOrEqual(decimal.NewFromInt(100)), "Charge is capped at 100%")
	})
}
