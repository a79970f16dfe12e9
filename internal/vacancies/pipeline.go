package vacancies

// Result is the output of one pipeline run.
type Result struct {
	Items  []Enriched    `json:"items"`
	Facets FacetValues   `json:"facets"`
	Stats  NationalStats `json:"stats"`
}

// Run enriches records and runs the full query pipeline on them.
func Run(records []Vacancy, c Criteria) Result {
	return RunEnriched(Enrich(records), c)
}

// RunEnriched runs the pipeline on an already enriched set: facets, filter,
// skill scoring, ranking and summary statistics of the kept items. Every stage
// produces a new slice.
func RunEnriched(items []Enriched, c Criteria) Result {
	facets := Facets(items, c)
	kept := Filter(items, c)
	scored := ScoreAll(kept, ParseSkills(c.Skills))
	ranked := Rank(scored)
	return Result{
		Items:  ranked,
		Facets: facets,
		Stats:  National(ranked),
	}
}
