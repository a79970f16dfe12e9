package vacancies

import (
	"cmp"
	"slices"
)

// Rank orders items by match count descending, then competition ratio
// ascending with undefined ratios last, then quota descending. Ties keep their
// input order.
func Rank(items []Enriched) []Enriched {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b Enriched) int {
		if c := cmp.Compare(b.MatchCount, a.MatchCount); c != 0 {
			return c
		}
		if c := compareRatio(a.Vacancy, b.Vacancy); c != 0 {
			return c
		}
		return cmp.Compare(b.Quota, a.Quota)
	})
	return out
}

// compareRatio orders defined ratios ascending and undefined ones after them.
func compareRatio(a, b Vacancy) int {
	ra, okA := a.Ratio()
	rb, okB := b.Ratio()
	switch {
	case okA && okB:
		return cmp.Compare(ra, rb)
	case okA:
		return -1
	case okB:
		return 1
	}
	return 0
}

// ScoreAll sets MatchCount on a copy of items against desired.
func ScoreAll(items []Enriched, desired SkillSet) []Enriched {
	out := make([]Enriched, len(items))
	for i, v := range items {
		v.MatchCount = Score(v.Skills, desired)
		out[i] = v
	}
	return out
}
