package breakeven

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
)

func TestDefaultSolverOptions(t *testing.T) {
	opts := DefaultSolverOptions()

	if opts.MaxIterations != 60 {
		t.Errorf("Expected MaxIterations 60, got %d", opts.MaxIterations)
	}
	if !opts.SalaryTolerance.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Expected a £1 salary tolerance, got %s", opts.SalaryTolerance)
	}
	if !opts.PercentTolerance.Equal(decimal.NewFromFloat(0.01)) {
		t.Errorf("Expected a 0.01 point tolerance, got %s", opts.PercentTolerance)
	}
}

func TestParseSolveTarget(t *testing.T) {
	tests := []struct {
		in   string
		want SolveTarget
		ok   bool
	}{
		{"take_home", TargetTakeHome, true},
		{"salary", TargetTakeHome, true},
		{"adjusted_income", TargetAdjustedIncome, true},
		{"sacrifice", TargetAdjustedIncome, true},
		{"tsp_rate", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseSolveTarget(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseSolveTarget(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSolveRequest_Validate_NoneScheme(t *testing.T) {
	req := SolveRequest{
		Base:   baseScenario(50000),
		Target: TargetAdjustedIncome,
		Amount: decimal.NewFromInt(40000),
		Scheme: domain.SchemeNone,
	}

	err := req.Validate()
	if err == nil {
		t.Fatal("Expected error for a request without a pension scheme")
	}
	if !strings.Contains(err.Error(), "pension scheme") {
		t.Errorf("Expected a pension scheme error, got %v", err)
	}
}

func TestBreakEvenError(t *testing.T) {
	cause := errors.New("boom")
	err := &BreakEvenError{Operation: "solve", Message: "failed", Cause: cause}

	if err.Error() != "solve: failed: boom" {
		t.Errorf("Unexpected message %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Expected the cause to be unwrapped")
	}

	plain := &BreakEvenError{Operation: "solve", Message: "failed"}
	if plain.Error() != "solve: failed" {
		t.Errorf("Unexpected message %q", plain.Error())
	}
}
