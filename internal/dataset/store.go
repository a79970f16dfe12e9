package dataset

import (
	"sync/atomic"
	"time"

	"magang-intel/internal/vacancies"
)

// Store holds the dataset snapshot in use. Readers get the whole snapshot or
// nothing; Replace swaps it in one step.
type Store struct {
	current atomic.Pointer[vacancies.Snapshot]
}

func NewStore() *Store {
	return &Store{}
}

// Current returns the snapshot in use, or nil before the first load.
func (s *Store) Current() *vacancies.Snapshot {
	return s.current.Load()
}

// Replace builds a snapshot from records and makes it current.
func (s *Store) Replace(records []vacancies.Vacancy, loadedAt time.Time, version string) *vacancies.Snapshot {
	snap := vacancies.NewSnapshot(records, loadedAt, version)
	s.current.Store(snap)
	return snap
}

// Status describes the snapshot in use.
type Status struct {
	Loaded   bool       `json:"loaded"`
	Records  int        `json:"records"`
	LoadedAt *time.Time `json:"loadedAt,omitempty"`
	Version  string     `json:"version,omitempty"`
}

func (s *Store) Status() Status {
	snap := s.Current()
	if snap == nil {
		return Status{}
	}
	loadedAt := snap.LoadedAt
	return Status{
		Loaded:   true,
		Records:  len(snap.Items),
		LoadedAt: &loadedAt,
		Version:  snap.Version,
	}
}

var _ vacancies.SnapshotProvider = (*Store)(nil)
