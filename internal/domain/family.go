package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ChildBenefitInputs describes a claimant household
type ChildBenefitInputs struct {
	NumberOfChildren int              `yaml:"number_of_children" json:"number_of_children"`
	YourIncome       decimal.Decimal  `yaml:"your_income" json:"your_income"` // adjusted net income
	PartnerIncome    *decimal.Decimal `yaml:"partner_income,omitempty" json:"partner_income,omitempty"`
}

// HighestIncome returns the income the High Income Child Benefit Charge is assessed on.
func (c ChildBenefitInputs) HighestIncome() decimal.Decimal {
	if c.PartnerIncome != nil {
		return decimal.Max(c.YourIncome, *c.PartnerIncome)
	}
	return c.YourIncome
}

// ChildBenefitResult holds the benefit paid and any charge due
type ChildBenefitResult struct {
	Weekly        decimal.Decimal `json:"weekly"`
	FourWeekly    decimal.Decimal `json:"four_weekly"`
	Annual        decimal.Decimal `json:"annual"`
	HighestIncome decimal.Decimal `json:"highest_income"`
	ChargePercent decimal.Decimal `json:"charge_percent"`
	Charge        decimal.Decimal `json:"charge"`
	NetAnnual     decimal.Decimal `json:"net_annual"`
}

// CareDay is the kind of session booked on a weekday
type CareDay string

const (
	CareNone CareDay = "none"
	CareHalf CareDay = "half"
	CareFull CareDay = "full"
)

// ParseCareDay resolves a session name.
func ParseCareDay(s string) (CareDay, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "-":
		return CareNone, nil
	case "half", "h":
		return CareHalf, nil
	case "full", "f":
		return CareFull, nil
	}
	return "", fmt.Errorf("unknown childcare session %q (want full, half or none)", s)
}

// WeekSchedule is a Monday to Friday booking pattern
type WeekSchedule struct {
	Monday    CareDay `yaml:"monday" json:"monday"`
	Tuesday   CareDay `yaml:"tuesday" json:"tuesday"`
	Wednesday CareDay `yaml:"wednesday" json:"wednesday"`
	Thursday  CareDay `yaml:"thursday" json:"thursday"`
	Friday    CareDay `yaml:"friday" json:"friday"`
}

// Day returns the booking for a weekday. Weekends are never booked.
func (w WeekSchedule) Day(d time.Weekday) CareDay {
	switch d {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	}
	return CareNone
}

// ChildSchedule is one child's bookings. Children after the first may
// reuse the first child's schedule.
type ChildSchedule struct {
	SameSchedule bool         `yaml:"same_schedule" json:"same_schedule"`
	Schedule     WeekSchedule `yaml:"schedule" json:"schedule"`
}

// ChildcareInputs describes a family's childcare bookings
type ChildcareInputs struct {
	Year        int             `yaml:"year" json:"year"`
	Month       time.Month      `yaml:"month" json:"month"`
	FullDayCost decimal.Decimal `yaml:"full_day_cost" json:"full_day_cost"`
	HalfDayCost decimal.Decimal `yaml:"half_day_cost" json:"half_day_cost"`
	Children    []ChildSchedule `yaml:"children" json:"children"`
}

// WeekdayCounts is how many of each weekday fall in a month
type WeekdayCounts map[time.Weekday]int

// MonthlyCost is the childcare bill for one calendar month
type MonthlyCost struct {
	Label  string          `json:"label"` // e.g. "Jan 2025"
	Year   int             `json:"year"`
	Month  time.Month      `json:"month"`
	Counts WeekdayCounts   `json:"counts"`
	Cost   decimal.Decimal `json:"cost"`
}

// ChildcareResult is the selected month's cost and a three month projection
type ChildcareResult struct {
	MonthlyCost decimal.Decimal `json:"monthly_cost"`
	Projection  []MonthlyCost   `json:"projection"`
}
