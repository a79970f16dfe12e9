package vacancies

import (
	"math"
	"strings"
)

const (
	// AnyValue is the facet selection meaning "no constraint". An empty
	// selection means the same.
	AnyValue = "(Semua)"

	DefaultMaxRatio = 10.0
)

// Criteria is the user's current filter state.
type Criteria struct {
	Province string   `json:"province"`
	Category string   `json:"category"`
	Company  string   `json:"company"`
	Search   string   `json:"search"`
	Skills   string   `json:"skills"`
	MaxRatio *float64 `json:"maxRatio,omitempty"`
}

// DefaultCriteria matches the state of a freshly opened dashboard.
func DefaultCriteria() Criteria {
	return Criteria{
		Province: AnyValue,
		Category: AnyValue,
		Company:  AnyValue,
		Skills:   DefaultSkills,
		MaxRatio: RatioCeiling(DefaultMaxRatio),
	}
}

// RatioCeiling returns a ceiling value suitable for Criteria.MaxRatio.
func RatioCeiling(r float64) *float64 {
	return &r
}

// IsAny reports whether a facet selection leaves the facet unconstrained.
func IsAny(selection string) bool {
	return selection == "" || selection == AnyValue
}

// Ceiling is the effective inclusive ratio ceiling. Zero is a real ceiling;
// unset, negative or NaN values mean the default.
func (c Criteria) Ceiling() float64 {
	if c.MaxRatio == nil || *c.MaxRatio < 0 || math.IsNaN(*c.MaxRatio) {
		return DefaultMaxRatio
	}
	return *c.MaxRatio
}

// Facet names a filterable dimension.
type Facet string

const (
	FacetProvince Facet = "province"
	FacetCategory Facet = "category"
	FacetCompany  Facet = "company"
)

func facetValue(v Enriched, f Facet) string {
	switch f {
	case FacetProvince:
		return v.Province
	case FacetCategory:
		return v.Category
	case FacetCompany:
		return v.Company
	}
	return ""
}

func facetSelection(c Criteria, f Facet) string {
	switch f {
	case FacetProvince:
		return c.Province
	case FacetCategory:
		return c.Category
	case FacetCompany:
		return c.Company
	}
	return ""
}

type filterRule struct {
	facet Facet // empty for rules that are not facets
	keep  func(v Enriched, c Criteria, search string) bool
}

func facetRule(f Facet) filterRule {
	return filterRule{
		facet: f,
		keep: func(v Enriched, c Criteria, _ string) bool {
			sel := facetSelection(c, f)
			return IsAny(sel) || facetValue(v, f) == sel
		},
	}
}

var filterRules = []filterRule{
	facetRule(FacetProvince),
	facetRule(FacetCategory),
	facetRule(FacetCompany),
	{keep: func(v Enriched, _ Criteria, search string) bool {
		return search == "" || strings.Contains(strings.ToLower(v.Title), search)
	}},
	{keep: func(v Enriched, c Criteria, _ string) bool {
		r, ok := v.Ratio()
		return !ok || r <= c.Ceiling()
	}},
}

// Keep reports whether v passes every rule of c.
func Keep(v Enriched, c Criteria) bool {
	return keepExcept(v, c, normalizedSearch(c), "")
}

func keepExcept(v Enriched, c Criteria, search string, skip Facet) bool {
	for _, rule := range filterRules {
		if skip != "" && rule.facet == skip {
			continue
		}
		if !rule.keep(v, c, search) {
			return false
		}
	}
	return true
}

func normalizedSearch(c Criteria) string {
	return strings.ToLower(c.Search)
}

// Filter returns the items kept by c, in input order.
func Filter(items []Enriched, c Criteria) []Enriched {
	search := normalizedSearch(c)
	out := make([]Enriched, 0, len(items))
	for _, v := range items {
		if keepExcept(v, c, search, "") {
			out = append(out, v)
		}
	}
	return out
}
