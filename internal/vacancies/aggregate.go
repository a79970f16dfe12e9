package vacancies

import (
	"cmp"
	"slices"
	"sort"
)

// GroupKey names the field items are grouped by.
type GroupKey string

const (
	GroupProvince GroupKey = "province"
	GroupCompany  GroupKey = "company"
	GroupCategory GroupKey = "category"
)

// GroupAggregate is the summary of one group. Ratio is nil when the group has
// no quota.
type GroupAggregate struct {
	Key             string   `json:"key"`
	UniqueCompanies int      `json:"uniqueCompanies,omitempty"`
	Positions       int      `json:"positions"`
	TotalQuota      int      `json:"totalQuota"`
	TotalRegistered int      `json:"totalRegistered"`
	Ratio           *float64 `json:"ratio"`
}

func groupValue(v Enriched, by GroupKey) string {
	switch by {
	case GroupProvince:
		return v.Province
	case GroupCompany:
		return v.Company
	case GroupCategory:
		return v.Category
	}
	return ""
}

// AggregateBy groups items in one pass. Groups come out in first-seen order.
// Only province groups count distinct companies.
func AggregateBy(items []Enriched, by GroupKey) []GroupAggregate {
	out := []GroupAggregate{}
	index := make(map[string]int)
	var companies []map[string]struct{}
	for _, v := range items {
		key := groupValue(v, by)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, GroupAggregate{Key: key})
			if by == GroupProvince {
				companies = append(companies, make(map[string]struct{}))
			}
		}
		g := &out[i]
		g.Positions++
		g.TotalQuota += v.Quota
		g.TotalRegistered += v.Registered
		if by == GroupProvince {
			companies[i][v.Company] = struct{}{}
		}
	}
	for i := range out {
		out[i].Ratio = ratioOf(out[i].TotalRegistered, out[i].TotalQuota)
		if by == GroupProvince {
			out[i].UniqueCompanies = len(companies[i])
		}
	}
	return out
}

// NationalStats summarizes a whole set of items.
type NationalStats struct {
	Positions       int      `json:"positions"`
	UniqueCompanies int      `json:"uniqueCompanies"`
	TotalQuota      int      `json:"totalQuota"`
	TotalRegistered int      `json:"totalRegistered"`
	Ratio           *float64 `json:"ratio"`
	MedianRatio     *float64 `json:"medianRatio"`
	MeanRatio       *float64 `json:"meanRatio"`
}

// National computes the single-group summary of items plus the median and
// mean of the defined per-item ratios.
func National(items []Enriched) NationalStats {
	var st NationalStats
	companies := make(map[string]struct{})
	ratios := make([]float64, 0, len(items))
	for _, v := range items {
		st.Positions++
		st.TotalQuota += v.Quota
		st.TotalRegistered += v.Registered
		companies[v.Company] = struct{}{}
		if r, ok := v.Ratio(); ok {
			ratios = append(ratios, r)
		}
	}
	st.UniqueCompanies = len(companies)
	st.Ratio = ratioOf(st.TotalRegistered, st.TotalQuota)
	if m, ok := Median(ratios); ok {
		st.MedianRatio = &m
	}
	if len(ratios) > 0 {
		sum := 0.0
		for _, r := range ratios {
			sum += r
		}
		mean := sum / float64(len(ratios))
		st.MeanRatio = &mean
	}
	return st
}

// Median returns the element at index n/2 of the sorted values, which is the
// upper of the two middle values for even n. values is not modified.
func Median(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := slices.Clone(values)
	sort.Float64s(sorted)
	return sorted[len(sorted)/2], true
}

// Metric selects the value TopN ranks groups by.
type Metric string

const (
	MetricPositions  Metric = "positions"
	MetricQuota      Metric = "quota"
	MetricRegistered Metric = "registered"
	MetricCompanies  Metric = "companies"
)

func metricValue(g GroupAggregate, m Metric) int {
	switch m {
	case MetricQuota:
		return g.TotalQuota
	case MetricRegistered:
		return g.TotalRegistered
	case MetricCompanies:
		return g.UniqueCompanies
	}
	return g.Positions
}

// TopN returns the n largest groups by metric, ties in input order. n <= 0
// returns every group.
func TopN(groups []GroupAggregate, metric Metric, n int) []GroupAggregate {
	out := slices.Clone(groups)
	slices.SortStableFunc(out, func(a, b GroupAggregate) int {
		return cmp.Compare(metricValue(b, metric), metricValue(a, metric))
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
