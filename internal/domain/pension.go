package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PensionScheme is the closed set of workplace and personal pension arrangements
type PensionScheme string

const (
	SchemeNone                   PensionScheme = "none"
	SchemeAutoEnrolment          PensionScheme = "auto_enrolment"
	SchemeAutoUnbanded           PensionScheme = "auto_unbanded"
	SchemeReliefAtSource         PensionScheme = "relief_at_source"
	SchemeReliefAtSourceUnbanded PensionScheme = "relief_at_source_unbanded"
	SchemeSalarySacrifice        PensionScheme = "salary_sacrifice"
	SchemePersonal               PensionScheme = "personal"
)

// PensionSchemes lists the schemes accepted in scenario files.
var PensionSchemes = []PensionScheme{
	SchemeNone,
	SchemeAutoEnrolment,
	SchemeAutoUnbanded,
	SchemeReliefAtSource,
	SchemeReliefAtSourceUnbanded,
	SchemeSalarySacrifice,
	SchemePersonal,
}

// ParsePensionScheme resolves a scheme name. "auto_enrolment_unbanded" is accepted
// as an alias for auto_unbanded and the empty string means none.
func ParsePensionScheme(s string) (PensionScheme, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	switch normalized {
	case "":
		return SchemeNone, nil
	case "auto_enrolment_unbanded":
		return SchemeAutoUnbanded, nil
	}
	for _, scheme := range PensionSchemes {
		if string(scheme) == normalized {
			return scheme, nil
		}
	}
	return "", fmt.Errorf("unknown pension scheme %q", s)
}

// DeductedFromTaxableIncome reports whether the orchestrator deducts the
// contribution from the income tax base (net pay arrangements).
func (s PensionScheme) DeductedFromTaxableIncome() bool {
	return s == SchemeAutoEnrolment || s == SchemeAutoUnbanded
}

// ReducesGross reports whether the contribution comes off gross pay before tax and NI.
func (s PensionScheme) ReducesGross() bool {
	return s == SchemeSalarySacrifice
}

// Banded reports whether the scheme only applies to qualifying earnings.
func (s PensionScheme) Banded() bool {
	return s == SchemeAutoEnrolment || s == SchemeReliefAtSource
}

// PensionValueKind says how PensionSpec.Value is interpreted
type PensionValueKind string

const (
	ValuePercentage PensionValueKind = "percentage"
	ValueNominal    PensionValueKind = "nominal"
)

// PensionSpec describes an employee pension contribution
type PensionSpec struct {
	Scheme    PensionScheme    `yaml:"scheme" json:"scheme"`
	Value     decimal.Decimal  `yaml:"value" json:"value"` // percent (5 = 5%) or annual amount
	ValueKind PensionValueKind `yaml:"value_kind" json:"value_kind"`
}

// Kind returns the value kind, defaulting to percentage.
func (p *PensionSpec) Kind() PensionValueKind {
	if p == nil || p.ValueKind == "" {
		return ValuePercentage
	}
	return p.ValueKind
}
