package health

import (
	"context"
	"database/sql"
	"time"

	"magang-intel/internal/dataset"
)

const pingTimeout = 2 * time.Second

// DatasetStatus reports the snapshot currently served.
type DatasetStatus interface {
	Status() dataset.Status
}

// Service encapsulates health-related checks.
type Service struct {
	Dataset DatasetStatus
	DB      *sql.DB
}

// NewService constructs a new health service. db may be nil when favorites are
// not database-backed.
func NewService(data DatasetStatus, db *sql.DB) *Service {
	return &Service{Dataset: data, DB: db}
}

// Report is the health payload.
type Report struct {
	OK       bool       `json:"ok"`
	Loaded   bool       `json:"loaded"`
	Records  int        `json:"records"`
	LoadedAt *time.Time `json:"loadedAt,omitempty"`
	Version  string     `json:"version,omitempty"`
	Database string     `json:"database"`
}

// Status reports dataset state and database reachability. The process is
// healthy before the first dataset load; only a failing database ping marks
// it not ok.
func (s *Service) Status(ctx context.Context) Report {
	report := Report{OK: true, Database: "disabled"}
	if s.Dataset != nil {
		st := s.Dataset.Status()
		report.Loaded = st.Loaded
		report.Records = st.Records
		report.LoadedAt = st.LoadedAt
		report.Version = st.Version
	}
	if s.DB != nil {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := s.DB.PingContext(pingCtx); err != nil {
			report.OK = false
			report.Database = "unreachable"
		} else {
			report.Database = "ok"
		}
	}
	return report
}
