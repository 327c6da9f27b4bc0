// Package refdata holds the published UK inflation series used to adjust
// amounts between years.
package refdata

import (
	"embed"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var files embed.FS

// Series is an annual inflation series in percent
type Series struct {
	Index        domain.InflationIndex   `yaml:"index"`
	EarliestYear int                     `yaml:"earliest_year"`
	Rates        map[int]decimal.Decimal `yaml:"rates"`
}

// Rate returns the published rate for a year
func (s *Series) Rate(year int) (decimal.Decimal, bool) {
	rate, ok := s.Rates[year]
	return rate, ok
}

// Years returns the years with published rates in ascending order
func (s *Series) Years() []int {
	years := make([]int, 0, len(s.Rates))
	for y := range s.Rates {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// LatestYear returns the last year with a published rate, 0 for an empty series
func (s *Series) LatestYear() int {
	latest := 0
	for y := range s.Rates {
		if y > latest {
			latest = y
		}
	}
	return latest
}

// Parse decodes a YAML series and checks it is usable
func Parse(data []byte) (*Series, error) {
	var s Series
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse inflation series: %w", err)
	}
	if _, err := domain.ParseInflationIndex(string(s.Index)); err != nil || s.Index == "" {
		return nil, fmt.Errorf("inflation series has invalid index %q", s.Index)
	}
	if len(s.Rates) == 0 {
		return nil, fmt.Errorf("inflation series %s has no rates", s.Index)
	}
	if s.EarliestYear == 0 {
		s.EarliestYear = s.Years()[0]
	}
	return &s, nil
}

// Set is the collection of series keyed by index
type Set struct {
	series map[domain.InflationIndex]*Series
}

// NewSet builds a set from parsed series; a later series replaces an earlier one
// with the same index.
func NewSet(series ...*Series) *Set {
	set := &Set{series: make(map[domain.InflationIndex]*Series, len(series))}
	for _, s := range series {
		set.series[s.Index] = s
	}
	return set
}

// Series returns the series for an index
func (s *Set) Series(index domain.InflationIndex) (*Series, error) {
	if index == "" {
		index = domain.IndexCPI
	}
	series, ok := s.series[index]
	if !ok {
		return nil, fmt.Errorf("no inflation data for index %q", index)
	}
	return series, nil
}

var (
	defaultOnce sync.Once
	defaultSet  *Set
)

// Load parses the embedded CPI and RPI series
func Load() (*Set, error) {
	entries, err := files.ReadDir("data")
	if err != nil {
		return nil, err
	}
	var series []*Series
	for _, entry := range entries {
		raw, err := files.ReadFile("data/" + entry.Name())
		if err != nil {
			return nil, err
		}
		s, err := Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		series = append(series, s)
	}
	return NewSet(series...), nil
}

// Default returns the embedded series, parsed once
func Default() *Set {
	defaultOnce.Do(func() {
		set, err := Load()
		if err != nil {
			panic(err)
		}
		defaultSet = set
	})
	return defaultSet
}
