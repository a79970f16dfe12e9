package vacancies

import (
	"sort"
	"strings"
)

// DefaultSkills is the desired-skills text a fresh dashboard starts with.
const DefaultSkills = "excel, sql, python"

// SkillSet is a set of lower-cased skill tokens.
type SkillSet map[string]struct{}

// ParseSkills splits comma-separated text into a skill set.
func ParseSkills(text string) SkillSet {
	set := SkillSet{}
	for _, part := range strings.Split(text, ",") {
		s := strings.ToLower(strings.TrimSpace(part))
		if s == "" {
			continue
		}
		set[s] = struct{}{}
	}
	return set
}

// Has reports whether skill is in the set, ignoring case.
func (s SkillSet) Has(skill string) bool {
	_, ok := s[strings.ToLower(skill)]
	return ok
}

// Sorted returns the set's members in ascending order.
func (s SkillSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Score counts the item skills found in desired. Repeated item skills count
// once per occurrence.
func Score(itemSkills []string, desired SkillSet) int {
	if len(desired) == 0 {
		return 0
	}
	n := 0
	for _, s := range itemSkills {
		if desired.Has(s) {
			n++
		}
	}
	return n
}
