package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/calculation"
	"github.com/ukcalc/ukcalc/internal/domain"
	"gopkg.in/yaml.v3"
)

// taxYearHeader is read before the full entry so an entry can start from an existing year
type taxYearHeader struct {
	ID      string `yaml:"id"`
	Extends string `yaml:"extends"`
}

// LoadTaxYearFile reads tax-year overrides from filename and registers them
func LoadTaxYearFile(filename string, registry *calculation.TaxYearRegistry) ([]domain.TaxYear, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ParseTaxYears(data, registry)
}

// ParseTaxYears decodes a tax_years document. An entry with "extends" starts as a
// copy of that registered year and only the fields it lists are replaced. Every
// entry is validated before any is registered.
func ParseTaxYears(data []byte, registry *calculation.TaxYearRegistry) ([]domain.TaxYear, error) {
	var file struct {
		TaxYears []yaml.Node `yaml:"tax_years"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(file.TaxYears) == 0 {
		return nil, fmt.Errorf("no tax_years found")
	}

	v := &validator{}
	years := make([]domain.TaxYear, 0, len(file.TaxYears))
	for i := range file.TaxYears {
		node := &file.TaxYears[i]
		path := fmt.Sprintf("tax_years[%d]", i)

		var header taxYearHeader
		if err := node.Decode(&header); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %s: %w", path, err)
		}

		var ty domain.TaxYear
		if header.Extends != "" {
			base, err := registry.Get(header.Extends)
			if err != nil {
				v.add(path+".extends", "%v", err)
				continue
			}
			ty = cloneTaxYear(base)
		}
		if err := node.Decode(&ty); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %s: %w", path, err)
		}
		if header.Extends != "" && strings.TrimSpace(header.ID) == "" {
			v.add(path+".id", "is required when extending %s", header.Extends)
			continue
		}

		validateTaxYear(v, path, &ty)
		years = append(years, ty)
	}
	if err := v.err(); err != nil {
		return nil, fmt.Errorf("tax year validation failed: %w", err)
	}

	for _, ty := range years {
		registry.Register(ty)
	}
	return years, nil
}

// ExportTaxYears renders the registered years in the format ParseTaxYears reads
func ExportTaxYears(registry *calculation.TaxYearRegistry) ([]byte, error) {
	var file domain.TaxYearFile
	for _, id := range registry.IDs() {
		ty, err := registry.Get(id)
		if err != nil {
			return nil, err
		}
		file.TaxYears = append(file.TaxYears, ty)
	}
	return yaml.Marshal(file)
}

// cloneTaxYear copies the slices and map so decoding over the copy cannot reach the original
func cloneTaxYear(ty domain.TaxYear) domain.TaxYear {
	out := ty
	out.IncomeTax.Bands = append([]domain.TaxBand(nil), ty.IncomeTax.Bands...)
	out.StudentLoans = make(map[domain.StudentLoanPlan]domain.StudentLoanRule, len(ty.StudentLoans))
	for plan, rule := range ty.StudentLoans {
		out.StudentLoans[plan] = rule
	}
	out.PropertyTax.England = cloneTransactionTax(ty.PropertyTax.England)
	out.PropertyTax.Scotland = cloneTransactionTax(ty.PropertyTax.Scotland)
	return out
}

func cloneTransactionTax(r domain.TransactionTaxRules) domain.TransactionTaxRules {
	r.Bands = append([]domain.PriceBand(nil), r.Bands...)
	r.FirstTimeBuyerBands = append([]domain.PriceBand(nil), r.FirstTimeBuyerBands...)
	return r
}

var one = decimal.NewFromInt(1)

func (v *validator) rate(path string, d decimal.Decimal) {
	if d.IsNegative() || d.GreaterThan(one) {
		v.add(path, "must be a fraction between 0 and 1")
	}
}

func validateTaxYear(v *validator, path string, ty *domain.TaxYear) {
	if strings.TrimSpace(ty.ID) == "" {
		v.add(path+".id", "is required")
	}
	v.nonNegative(path+".allowance.personal_allowance", ty.Allowance.PersonalAllowance)
	v.nonNegative(path+".allowance.taper_threshold", ty.Allowance.TaperThreshold)
	v.nonNegative(path+".allowance.blind_persons_allowance", ty.Allowance.BlindPersons)

	bands := ty.IncomeTax.Bands
	if len(bands) == 0 {
		v.add(path+".income_tax.bands", "at least one band is required")
	}
	for i, band := range bands {
		bandPath := fmt.Sprintf("%s.income_tax.bands[%d]", path, i)
		v.rate(bandPath+".rate", band.Rate)
		last := i == len(bands)-1
		if last && !band.Width.IsZero() {
			v.add(bandPath+".width", "the top band must be open ended (width 0)")
		}
		if !last && !band.Width.IsPositive() {
			v.add(bandPath+".width", "must be positive")
		}
	}
	v.rate(path+".income_tax.higher_rate", ty.IncomeTax.HigherRate)

	s := ty.ScottishTax
	thresholds := []decimal.Decimal{s.StarterThreshold, s.BasicThreshold, s.IntermediateThreshold, s.HigherThreshold, s.AdvancedThreshold}
	for i := 1; i < len(thresholds); i++ {
		if thresholds[i].LessThan(thresholds[i-1]) {
			v.add(path+".scottish_tax", "thresholds must be in ascending order")
			break
		}
	}
	scottishRates := []struct {
		name string
		rate decimal.Decimal
	}{
		{"starter_rate", s.StarterRate},
		{"basic_rate", s.BasicRate},
		{"intermediate_rate", s.IntermediateRate},
		{"higher_rate", s.HigherRate},
		{"advanced_rate", s.AdvancedRate},
		{"top_rate", s.TopRate},
	}
	for _, r := range scottishRates {
		v.rate(path+".scottish_tax."+r.name, r.rate)
	}

	ni := ty.NI
	if ni.Annual.Upper.LessThan(ni.Annual.Lower) {
		v.add(path+".national_insurance.annual", "upper earnings limit is below the primary threshold")
	}
	if ni.Monthly.Upper.LessThan(ni.Monthly.Lower) {
		v.add(path+".national_insurance.monthly", "upper earnings limit is below the primary threshold")
	}
	v.rate(path+".national_insurance.basic_rate", ni.BasicRate)
	v.rate(path+".national_insurance.higher_rate", ni.HigherRate)

	plans := make([]string, 0, len(ty.StudentLoans))
	for plan := range ty.StudentLoans {
		plans = append(plans, string(plan))
	}
	sort.Strings(plans)
	for _, name := range plans {
		plan := domain.StudentLoanPlan(name)
		rule := ty.StudentLoans[plan]
		planPath := fmt.Sprintf("%s.student_loans.%s", path, plan)
		if _, err := domain.ParseStudentLoanPlan(string(plan)); err != nil {
			v.add(planPath, "%v", err)
		}
		v.nonNegative(planPath+".threshold", rule.Threshold)
		v.rate(planPath+".rate", rule.Rate)
	}

	if ty.Pension.Upper.LessThan(ty.Pension.Lower) {
		v.add(path+".pension_qualifying_earnings", "upper limit is below the lower limit")
	}
	v.nonNegative(path+".child_benefit.charge_step", ty.ChildBenefit.ChargeStep)

	validatePriceBands(v, path+".property_tax.england.bands", ty.PropertyTax.England.Bands, true)
	validatePriceBands(v, path+".property_tax.england.first_time_buyer_bands", ty.PropertyTax.England.FirstTimeBuyerBands, false)
	validatePriceBands(v, path+".property_tax.scotland.bands", ty.PropertyTax.Scotland.Bands, true)
	validatePriceBands(v, path+".property_tax.scotland.first_time_buyer_bands", ty.PropertyTax.Scotland.FirstTimeBuyerBands, false)
}

// validatePriceBands checks the uppers ascend. Only the last band may be open ended.
func validatePriceBands(v *validator, path string, bands []domain.PriceBand, required bool) {
	if len(bands) == 0 {
		if required {
			v.add(path, "at least one band is required")
		}
		return
	}
	prev := decimal.Zero
	for i, band := range bands {
		bandPath := fmt.Sprintf("%s[%d]", path, i)
		v.rate(bandPath+".rate", band.Rate)
		if band.Upper.IsZero() {
			if i != len(bands)-1 {
				v.add(bandPath+".upper", "only the last band may be open ended")
			}
			continue
		}
		if !band.Upper.GreaterThan(prev) {
			v.add(bandPath+".upper", "must be greater than the previous band")
		}
		prev = band.Upper
	}
}
