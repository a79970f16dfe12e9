package vacancies

import "sort"

// FacetValues holds the selectable values of each facet.
type FacetValues struct {
	Provinces  []string `json:"provinces"`
	Categories []string `json:"categories"`
	Companies  []string `json:"companies"`
}

// AvailableValues lists the distinct non-blank values of facet among items
// that pass every rule of c except the facet's own selection. A selected value
// therefore never hides itself or its siblings.
func AvailableValues(items []Enriched, c Criteria, facet Facet) []string {
	search := normalizedSearch(c)
	seen := make(map[string]struct{})
	out := []string{}
	for _, v := range items {
		if !keepExcept(v, c, search, facet) {
			continue
		}
		val := facetValue(v, facet)
		if val == "" {
			continue
		}
		if _, ok := seen[val]; ok {
			continue
		}
		seen[val] = struct{}{}
		out = append(out, val)
	}
	sort.Strings(out)
	return out
}

// Facets computes all three facet lists for c.
func Facets(items []Enriched, c Criteria) FacetValues {
	return FacetValues{
		Provinces:  AvailableValues(items, c, FacetProvince),
		Categories: AvailableValues(items, c, FacetCategory),
		Companies:  AvailableValues(items, c, FacetCompany),
	}
}
