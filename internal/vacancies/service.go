package vacancies

import (
	"errors"
	"fmt"
	"io"
	"time"
)

var (
	// ErrDatasetUnavailable is returned before the first dataset load succeeds.
	ErrDatasetUnavailable = errors.New("dataset not loaded")
	ErrInvalidInput       = errors.New("invalid input")
)

const (
	DefaultTopCompanies  = 10
	DefaultTopProvinces  = 10
	DefaultTopCategories = 8
)

// Query is one request against the current dataset.
type Query struct {
	Criteria Criteria
	Sort     SortState
	// Limit truncates the returned items; zero or less returns all of them.
	Limit int
}

// Page is a query result as served to the dashboard.
type Page struct {
	Total    int           `json:"total"`
	Items    []Enriched    `json:"items"`
	Facets   FacetValues   `json:"facets"`
	Stats    NationalStats `json:"stats"`
	Sort     SortState     `json:"sort"`
	Version  string        `json:"version"`
	LoadedAt time.Time     `json:"loadedAt"`
}

// Service answers queries against whatever snapshot the provider currently holds.
type Service struct {
	Data SnapshotProvider
}

// NewService constructs a Service.
func NewService(data SnapshotProvider) *Service {
	return &Service{Data: data}
}

// snapshot reads the provider once so a request never spans two datasets.
func (s *Service) snapshot() (*Snapshot, error) {
	if s == nil || s.Data == nil {
		return nil, ErrDatasetUnavailable
	}
	snap := s.Data.Current()
	if snap == nil {
		return nil, ErrDatasetUnavailable
	}
	return snap, nil
}

func (s *Service) run(q Query) (*Snapshot, Result, error) {
	if q.Sort.Column != "" && !IsVacancyColumn(q.Sort.Column) {
		return nil, Result{}, fmt.Errorf("%w: unknown sort column %q", ErrInvalidInput, q.Sort.Column)
	}
	snap, err := s.snapshot()
	if err != nil {
		return nil, Result{}, err
	}
	res := RunEnriched(snap.Items, q.Criteria)
	if q.Sort.Column != "" {
		res.Items = SortBy(res.Items, q.Sort.Column, q.Sort.Direction)
	}
	return snap, res, nil
}

// Query runs the pipeline and applies the optional column sort and limit.
func (s *Service) Query(q Query) (Page, error) {
	snap, res, err := s.run(q)
	if err != nil {
		return Page{}, err
	}
	items := res.Items
	if q.Limit > 0 && len(items) > q.Limit {
		items = items[:q.Limit]
	}
	return Page{
		Total:    len(res.Items),
		Items:    items,
		Facets:   res.Facets,
		Stats:    res.Stats,
		Sort:     q.Sort,
		Version:  snap.Version,
		LoadedAt: snap.LoadedAt,
	}, nil
}

// Facets returns the selectable facet values for c.
func (s *Service) Facets(c Criteria) (FacetValues, error) {
	snap, err := s.snapshot()
	if err != nil {
		return FacetValues{}, err
	}
	return Facets(snap.Items, c), nil
}

// Export writes the full ordered result of q as CSV and reports the row count.
// Limit is ignored.
func (s *Service) Export(w io.Writer, q Query) (int, error) {
	_, res, err := s.run(q)
	if err != nil {
		return 0, err
	}
	if err := WriteCSV(w, res.Items); err != nil {
		return 0, err
	}
	return len(res.Items), nil
}

// National summarizes the whole dataset.
func (s *Service) National() (NationalStats, error) {
	snap, err := s.snapshot()
	if err != nil {
		return NationalStats{}, err
	}
	return National(snap.Items), nil
}

// Provinces returns per-province statistics sorted by the given table column.
func (s *Service) Provinces(sort SortState) ([]GroupAggregate, error) {
	if sort.Column != "" && !isGroupColumn(sort.Column) {
		return nil, fmt.Errorf("%w: unknown sort column %q", ErrInvalidInput, sort.Column)
	}
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return SortGroups(AggregateBy(snap.Items, GroupProvince), sort.Column, sort.Direction), nil
}

func isGroupColumn(column string) bool {
	_, ok := groupColumn(column)(GroupAggregate{})
	return ok
}

// Top returns the n largest groups of the whole dataset by metric.
func (s *Service) Top(by GroupKey, metric Metric, n int) ([]GroupAggregate, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return TopN(AggregateBy(snap.Items, by), metric, n), nil
}

// Lookup returns the vacancies with the given keys, in key order. Unknown keys
// are skipped.
func (s *Service) Lookup(keys []string) ([]Enriched, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]Enriched, len(snap.Items))
	for _, v := range snap.Items {
		if _, dup := byKey[v.ID]; !dup {
			byKey[v.ID] = v
		}
	}
	out := make([]Enriched, 0, len(keys))
	for _, k := range keys {
		if v, ok := byKey[k]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}
