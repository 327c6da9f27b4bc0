package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("adjust_salary", createAdjustSalary)
	registry.Register("set_salary", createSetSalary)
	registry.Register("set_bonus", createSetBonus)
	registry.Register("set_pension", createSetPension)
	registry.Register("remove_pension", func(map[string]string) (ScenarioTransform, error) {
		return &RemovePension{}, nil
	})
	registry.Register("set_residency", createSetResidency)
	registry.Register("set_tax_year", createSetTaxYear)
	registry.Register("set_exclude_ni", createSetExcludeNI)
	registry.Register("add_student_loan", createAddStudentLoan)
	registry.Register("remove_student_loan", createRemoveStudentLoan)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_pension:scheme=salary_sacrifice,value=5"
// Transforms without parameters may omit the colon ("remove_pension").
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	name, paramsStr, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	paramsStr = strings.TrimSpace(paramsStr)
	if name == "" {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func decimalParam(params map[string]string, transform, key string, required bool) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		if required {
			return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
		}
		return decimal.Zero, nil
	}
	value, err := decimal.NewFromString(strings.TrimSuffix(raw, "%"))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}

func boolParam(params map[string]string, transform, key string) (bool, error) {
	raw, ok := params[key]
	if !ok {
		return false, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	switch strings.ToLower(raw) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}

func createAdjustSalary(params map[string]string) (ScenarioTransform, error) {
	_, hasPercent := params["percent"]
	_, hasAmount := params["amount"]
	if !hasPercent && !hasAmount {
		return nil, fmt.Errorf("adjust_salary requires 'percent' or 'amount' parameter")
	}

	percent, err := decimalParam(params, "adjust_salary", "percent", false)
	if err != nil {
		return nil, err
	}
	amount, err := decimalParam(params, "adjust_salary", "amount", false)
	if err != nil {
		return nil, err
	}

	return &AdjustSalary{Percent: percent, Amount: amount}, nil
}

func createSetSalary(params map[string]string) (ScenarioTransform, error) {
	amount, err := decimalParam(params, "set_salary", "amount", true)
	if err != nil {
		return nil, err
	}
	return &SetSalary{Amount: amount}, nil
}

func createSetBonus(params map[string]string) (ScenarioTransform, error) {
	amount, err := decimalParam(params, "set_bonus", "amount", true)
	if err != nil {
		return nil, err
	}
	return &SetBonus{Amount: amount}, nil
}

func createSetPension(params map[string]string) (ScenarioTransform, error) {
	value, err := decimalParam(params, "set_pension", "value", true)
	if err != nil {
		return nil, err
	}

	transform := &SetPension{Value: value}
	if raw, ok := params["scheme"]; ok {
		scheme, err := domain.ParsePensionScheme(raw)
		if err != nil {
			return nil, err
		}
		transform.Scheme = scheme
	}

	switch kind := strings.ToLower(params["kind"]); kind {
	case "", "percent", "percentage":
		transform.Kind = domain.ValuePercentage
	case "nominal", "amount", "fixed":
		transform.Kind = domain.ValueNominal
	default:
		return nil, fmt.Errorf("invalid kind value %q, expected percentage or nominal", kind)
	}

	return transform, nil
}

func createSetResidency(params map[string]string) (ScenarioTransform, error) {
	if region, ok := params["region"]; ok {
		switch strings.ToLower(region) {
		case "scotland":
			return &SetResidency{Scotland: true}, nil
		case "rest_of_uk", "ruk", "england", "wales", "ni", "northern_ireland":
			return &SetResidency{Scotland: false}, nil
		default:
			return nil, fmt.Errorf("invalid region value %q", region)
		}
	}

	scotland, err := boolParam(params, "set_residency", "scotland")
	if err != nil {
		return nil, fmt.Errorf("set_residency requires 'region' or 'scotland' parameter: %w", err)
	}
	return &SetResidency{Scotland: scotland}, nil
}

func createSetTaxYear(params map[string]string) (ScenarioTransform, error) {
	year, ok := params["year"]
	if !ok {
		return nil, fmt.Errorf("set_tax_year requires 'year' parameter")
	}
	return &SetTaxYear{TaxYear: year}, nil
}

func createSetExcludeNI(params map[string]string) (ScenarioTransform, error) {
	exclude, err := boolParam(params, "set_exclude_ni", "exclude")
	if err != nil {
		return nil, err
	}
	return &SetExcludeNI{Exclude: exclude}, nil
}

func createAddStudentLoan(params map[string]string) (ScenarioTransform, error) {
	raw, ok := params["plan"]
	if !ok {
		return nil, fmt.Errorf("add_student_loan requires 'plan' parameter")
	}
	plan, err := domain.ParseStudentLoanPlan(raw)
	if err != nil {
		return nil, err
	}
	return &AddStudentLoan{Plan: plan}, nil
}

func createRemoveStudentLoan(params map[string]string) (ScenarioTransform, error) {
	raw, ok := params["plan"]
	if !ok || strings.EqualFold(raw, "all") {
		return &RemoveStudentLoan{}, nil
	}
	plan, err := domain.ParseStudentLoanPlan(raw)
	if err != nil {
		return nil, err
	}
	return &RemoveStudentLoan{Plan: plan}, nil
}
