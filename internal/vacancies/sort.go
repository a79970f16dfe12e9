package vacancies

import (
	"cmp"
	"slices"
	"strings"
)

// Direction is a column sort direction. DirectionNone keeps input order.
type Direction string

const (
	DirectionNone Direction = ""
	DirectionAsc  Direction = "asc"
	DirectionDesc Direction = "desc"
)

// ParseDirection maps user input to a Direction; anything unknown is none.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return DirectionAsc
	case "desc":
		return DirectionDesc
	}
	return DirectionNone
}

// Vacancy table columns.
const (
	ColumnTitle      = "title"
	ColumnCompany    = "company"
	ColumnProvince   = "province"
	ColumnCategory   = "category"
	ColumnQuota      = "quota"
	ColumnRegistered = "registered"
	ColumnRatio      = "ratio"
	ColumnMatch      = "match"
)

// Province statistics table columns.
const (
	GroupColumnKey        = "key"
	GroupColumnCompanies  = "companies"
	GroupColumnPositions  = "positions"
	GroupColumnQuota      = "quota"
	GroupColumnRegistered = "registered"
	GroupColumnRatio      = "ratio"
)

// sortValue is one cell as seen by the column comparator. Missing cells sort
// last in either direction.
type sortValue struct {
	text    string
	num     float64
	numeric bool
	missing bool
}

func textValue(s string) sortValue {
	s = strings.TrimSpace(s)
	return sortValue{text: strings.ToLower(s), missing: s == ""}
}

func numValue(n float64) sortValue {
	return sortValue{num: n, numeric: true}
}

func optionalValue(n *float64) sortValue {
	if n == nil {
		return sortValue{numeric: true, missing: true}
	}
	return numValue(*n)
}

func compareValues(a, b sortValue, dir Direction) int {
	switch {
	case a.missing && b.missing:
		return 0
	case a.missing:
		return 1
	case b.missing:
		return -1
	}
	var c int
	if a.numeric {
		c = cmp.Compare(a.num, b.num)
	} else {
		c = strings.Compare(a.text, b.text)
	}
	if dir == DirectionDesc {
		return -c
	}
	return c
}

func sortStable[T any](items []T, key func(T) (sortValue, bool), dir Direction) []T {
	out := slices.Clone(items)
	if dir != DirectionAsc && dir != DirectionDesc {
		return out
	}
	if len(out) > 0 {
		if _, ok := key(out[0]); !ok {
			return out
		}
	}
	slices.SortStableFunc(out, func(a, b T) int {
		va, _ := key(a)
		vb, _ := key(b)
		return compareValues(va, vb, dir)
	})
	return out
}

func vacancyColumn(column string) func(Enriched) (sortValue, bool) {
	return func(v Enriched) (sortValue, bool) {
		switch column {
		case ColumnTitle:
			return textValue(v.Title), true
		case ColumnCompany:
			return textValue(v.Company), true
		case ColumnProvince:
			return textValue(v.Province), true
		case ColumnCategory:
			return textValue(v.Category), true
		case ColumnQuota:
			return numValue(float64(v.Quota)), true
		case ColumnRegistered:
			return numValue(float64(v.Registered)), true
		case ColumnRatio:
			return optionalValue(v.CompetitionRatio), true
		case ColumnMatch:
			return numValue(float64(v.MatchCount)), true
		}
		return sortValue{}, false
	}
}

// SortBy sorts a copy of items on one column. Unknown columns and
// DirectionNone return the input order.
func SortBy(items []Enriched, column string, dir Direction) []Enriched {
	return sortStable(items, vacancyColumn(column), dir)
}

// IsVacancyColumn reports whether SortBy knows column.
func IsVacancyColumn(column string) bool {
	_, ok := vacancyColumn(column)(Enriched{})
	return ok
}

func groupColumn(column string) func(GroupAggregate) (sortValue, bool) {
	return func(g GroupAggregate) (sortValue, bool) {
		switch column {
		case GroupColumnKey:
			return textValue(g.Key), true
		case GroupColumnCompanies:
			return numValue(float64(g.UniqueCompanies)), true
		case GroupColumnPositions:
			return numValue(float64(g.Positions)), true
		case GroupColumnQuota:
			return numValue(float64(g.TotalQuota)), true
		case GroupColumnRegistered:
			return numValue(float64(g.TotalRegistered)), true
		case GroupColumnRatio:
			return optionalValue(g.Ratio), true
		}
		return sortValue{}, false
	}
}

// SortGroups sorts a copy of aggregated groups on one column.
func SortGroups(groups []GroupAggregate, column string, dir Direction) []GroupAggregate {
	return sortStable(groups, groupColumn(column), dir)
}

// SortState is the column sort of an interactive table.
type SortState struct {
	Column    string    `json:"column"`
	Direction Direction `json:"direction"`
}

// Toggle advances the state for a click on column: the same column cycles
// asc, desc, none; a different column starts at asc.
func (s SortState) Toggle(column string) SortState {
	if s.Column != column {
		return SortState{Column: column, Direction: DirectionAsc}
	}
	switch s.Direction {
	case DirectionAsc:
		return SortState{Column: column, Direction: DirectionDesc}
	case DirectionDesc:
		return SortState{}
	}
	return SortState{Column: column, Direction: DirectionAsc}
}
