package vacancies

import (
	"math"
	"strings"
	"time"
)

// Vacancy is one internship posting as loaded from the dataset.
type Vacancy struct {
	PositionID       string   `json:"positionId,omitempty"`
	Title            string   `json:"positionTitle"`
	Company          string   `json:"companyName"`
	Province         string   `json:"provinceName"`
	City             string   `json:"cityName,omitempty"`
	Quota            int      `json:"quota"`
	Registered       int      `json:"registeredCount"`
	CompetitionRatio *float64 `json:"competitionRatio"`
	Category         string   `json:"category"`
	Skills           []string `json:"skills"`
}

// Key identifies a vacancy. Older dataset variants have no position id, so the
// title, company and province stand in for it.
func (v Vacancy) Key() string {
	if id := strings.TrimSpace(v.PositionID); id != "" {
		return id
	}
	return v.Title + "|" + v.Company + "|" + v.Province
}

// Ratio returns the competition ratio and whether it is defined.
func (v Vacancy) Ratio() (float64, bool) {
	if v.CompetitionRatio == nil {
		return 0, false
	}
	return *v.CompetitionRatio, true
}

// Normalize clamps counts to be non-negative and settles the ratio: invalid
// values become undefined, a missing ratio is derived from the counts, and a
// zero quota always leaves it undefined.
func Normalize(v Vacancy) Vacancy {
	if v.Quota < 0 {
		v.Quota = 0
	}
	if v.Registered < 0 {
		v.Registered = 0
	}
	if v.CompetitionRatio != nil {
		r := *v.CompetitionRatio
		if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 || v.Quota == 0 {
			v.CompetitionRatio = nil
		} else {
			v.CompetitionRatio = &r
		}
	}
	if v.CompetitionRatio == nil {
		v.CompetitionRatio = ratioOf(v.Registered, v.Quota)
	}
	if v.Skills != nil {
		v.Skills = append([]string(nil), v.Skills...)
	}
	return v
}

func ratioOf(registered, quota int) *float64 {
	if quota <= 0 {
		return nil
	}
	r := float64(registered) / float64(quota)
	return &r
}

// Enriched is a vacancy with its resolved category and the skill overlap for
// the current query.
type Enriched struct {
	Vacancy
	ID         string `json:"key"`
	MatchCount int    `json:"matchCount"`
}

// Enrich classifies every record. The input slice is not modified.
func Enrich(records []Vacancy) []Enriched {
	out := make([]Enriched, len(records))
	for i, rec := range records {
		rec = Normalize(rec)
		rec.Category = Classify(rec.Title, rec.Category)
		out[i] = Enriched{Vacancy: rec, ID: rec.Key()}
	}
	return out
}

// Snapshot is an immutable, already classified dataset.
type Snapshot struct {
	Items    []Enriched
	LoadedAt time.Time
	Version  string
}

// NewSnapshot enriches records into a snapshot.
func NewSnapshot(records []Vacancy, loadedAt time.Time, version string) *Snapshot {
	return &Snapshot{
		Items:    Enrich(records),
		LoadedAt: loadedAt,
		Version:  version,
	}
}

// SnapshotProvider hands out the dataset currently in use, or nil before the
// first successful load.
type SnapshotProvider interface {
	Current() *Snapshot
}
