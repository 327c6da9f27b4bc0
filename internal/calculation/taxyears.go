package calculation

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
)

// DefaultTaxYearID is used when a scenario does not name a tax year
const DefaultTaxYearID = "2024/25"

func decInt(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decFloat(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// NewTaxYear2024 returns the rules for 6 April 2024 to 5 April 2025
func NewTaxYear2024() domain.TaxYear {
	return domain.TaxYear{
		ID:          "2024/25",
		Description: "6 April 2024 to 5 April 2025",
		Allowance: domain.AllowanceRules{
			PersonalAllowance: decInt(12570),
			TaperThreshold:    decInt(100000),
			BlindPersons:      decInt(3070),
		},
		IncomeTax: ukIncomeTax(),
		ScottishTax: domain.ScottishTaxRules{
			StarterThreshold:      decInt(14876),
			BasicThreshold:        decInt(26561),
			IntermediateThreshold: decInt(43662),
			HigherThreshold:       decInt(75000),
			AdvancedThreshold:     decInt(125140),
			StarterRate:           decFloat(0.19),
			BasicRate:             decFloat(0.20),
			IntermediateRate:      decFloat(0.21),
			HigherRate:            decFloat(0.42),
			AdvancedRate:          decFloat(0.45),
			TopRate:               decFloat(0.48),
			StarterRateCap:        decFloat(438.14),
		},
		NI: classOneNI(),
		StudentLoans: map[domain.StudentLoanPlan]domain.StudentLoanRule{
			domain.PlanOne:      {Threshold: decInt(24990), Rate: decFloat(0.09)},
			domain.PlanTwo:      {Threshold: decInt(27295), Rate: decFloat(0.09)},
			domain.PlanFour:     {Threshold: decInt(31395), Rate: decFloat(0.09)},
			domain.PlanFive:     {Threshold: decInt(25000), Rate: decFloat(0.09)},
			domain.PlanPostgrad: {Threshold: decInt(21000), Rate: decFloat(0.06)},
		},
		Pension: domain.QualifyingEarnings{Lower: decInt(6240), Upper: decInt(50270)},
		ChildBenefit: domain.ChildBenefitRules{
			FirstChildWeekly:      decFloat(25.60),
			AdditionalChildWeekly: decFloat(16.95),
			ChargeThreshold:       decInt(60000),
			ChargeStep:            decInt(200),
		},
		PropertyTax: domain.PropertyTaxRules{
			England: domain.TransactionTaxRules{
				Name: "SDLT",
				Bands: []domain.PriceBand{
					{Upper: decInt(250000), Rate: decimal.Zero},
					{Upper: decInt(925000), Rate: decFloat(0.05)},
					{Upper: decInt(1500000), Rate: decFloat(0.10)},
					{Upper: decimal.Zero, Rate: decFloat(0.12)},
				},
				FirstTimeBuyerBands: []domain.PriceBand{
					{Upper: decInt(425000), Rate: decimal.Zero},
					{Upper: decInt(625000), Rate: decFloat(0.05)},
				},
				FirstTimeBuyerLimit: decInt(625000),
				AdditionalRate:      decFloat(0.05),
				AdditionalMinPrice:  decInt(40000),
			},
			Scotland: lbtt(decFloat(0.06)),
		},
	}
}

// NewTaxYear2025 returns the rules for 6 April 2025 to 5 April 2026
func NewTaxYear2025() domain.TaxYear {
	ty := NewTaxYear2024()
	ty.ID = "2025/26"
	ty.Description = "6 April 2025 to 5 April 2026"
	ty.Allowance.BlindPersons = decInt(3130)
	ty.ScottishTax.StarterThreshold = decInt(15397)
	ty.ScottishTax.BasicThreshold = decInt(27491)
	ty.ScottishTax.StarterRateCap = decFloat(537.13)
	ty.StudentLoans = map[domain.StudentLoanPlan]domain.StudentLoanRule{
		domain.PlanOne:      {Threshold: decInt(26065), Rate: decFloat(0.09)},
		domain.PlanTwo:      {Threshold: decInt(28470), Rate: decFloat(0.09)},
		domain.PlanFour:     {Threshold: decInt(32745), Rate: decFloat(0.09)},
		domain.PlanFive:     {Threshold: decInt(25000), Rate: decFloat(0.09)},
		domain.PlanPostgrad: {Threshold: decInt(21000), Rate: decFloat(0.06)},
	}
	ty.ChildBenefit.FirstChildWeekly = decFloat(26.05)
	ty.ChildBenefit.AdditionalChildWeekly = decFloat(17.25)
	ty.PropertyTax.England = domain.TransactionTaxRules{
		Name: "SDLT",
		Bands: []domain.PriceBand{
			{Upper: decInt(125000), Rate: decimal.Zero},
			{Upper: decInt(250000), Rate: decFloat(0.02)},
			{Upper: decInt(925000), Rate: decFloat(0.05)},
			{Upper: decInt(1500000), Rate: decFloat(0.10)},
			{Upper: decimal.Zero, Rate: decFloat(0.12)},
		},
		FirstTimeBuyerBands: []domain.PriceBand{
			{Upper: decInt(300000), Rate: decimal.Zero},
			{Upper: decInt(500000), Rate: decFloat(0.05)},
		},
		FirstTimeBuyerLimit: decInt(500000),
		AdditionalRate:      decFloat(0.05),
		AdditionalMinPrice:  decInt(40000),
	}
	ty.PropertyTax.Scotland = lbtt(decFloat(0.08))
	return ty
}

func ukIncomeTax() domain.IncomeTaxRules {
	return domain.IncomeTaxRules{
		Bands: []domain.TaxBand{
			{Label: "Basic Rate", Width: decInt(37700), Rate: decFloat(0.20)},
			{Label: "Higher Rate", Width: decInt(87440), Rate: decFloat(0.40)},
			{Label: "Additional Rate", Width: decimal.Zero, Rate: decFloat(0.45)},
		},
		HigherRate: decFloat(0.40),
	}
}

func classOneNI() domain.NationalInsurance {
	return domain.NationalInsurance{
		Annual:     domain.NIThresholds{Lower: decInt(12570), Upper: decInt(50270)},
		Monthly:    domain.NIThresholds{Lower: decInt(1048), Upper: decInt(4189)},
		BasicRate:  decFloat(0.08),
		HigherRate: decFloat(0.02),
	}
}

func lbtt(ads decimal.Decimal) domain.TransactionTaxRules {
	return domain.TransactionTaxRules{
		Name: "LBTT",
		Bands: []domain.PriceBand{
			{Upper: decInt(145000), Rate: decimal.Zero},
			{Upper: decInt(250000), Rate: decFloat(0.02)},
			{Upper: decInt(325000), Rate: decFloat(0.05)},
			{Upper: decInt(750000), Rate: decFloat(0.10)},
			{Upper: decimal.Zero, Rate: decFloat(0.12)},
		},
		FirstTimeBuyerBands: []domain.PriceBand{
			{Upper: decInt(175000), Rate: decimal.Zero},
			{Upper: decInt(250000), Rate: decFloat(0.02)},
			{Upper: decInt(325000), Rate: decFloat(0.05)},
			{Upper: decInt(750000), Rate: decFloat(0.10)},
			{Upper: decimal.Zero, Rate: decFloat(0.12)},
		},
		AdditionalFlatRate: ads,
		AdditionalMinPrice: decInt(40000),
	}
}

// TaxYearRegistry looks up tax-year bundles by id. It is safe for concurrent use.
type TaxYearRegistry struct {
	mu    sync.RWMutex
	years map[string]domain.TaxYear
}

// NewTaxYearRegistry returns a registry holding the built-in tax years
func NewTaxYearRegistry() *TaxYearRegistry {
	r := &TaxYearRegistry{years: make(map[string]domain.TaxYear)}
	r.Register(NewTaxYear2024())
	r.Register(NewTaxYear2025())
	return r
}

// Register adds or replaces a tax year
func (r *TaxYearRegistry) Register(ty domain.TaxYear) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.years[ty.ID] = ty
}

// Get returns the tax year with the given id. An empty id selects the default.
func (r *TaxYearRegistry) Get(id string) (domain.TaxYear, error) {
	if id == "" {
		id = DefaultTaxYearID
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ty, ok := r.years[id]
	if !ok {
		return domain.TaxYear{}, fmt.Errorf("unknown tax year %q (available: %v)", id, r.idsLocked())
	}
	return ty, nil
}

// IDs lists the registered tax years in order
func (r *TaxYearRegistry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.idsLocked()
}

func (r *TaxYearRegistry) idsLocked() []string {
	ids := make([]string, 0, len(r.years))
	for id := range r.years {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
