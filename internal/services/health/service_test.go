package health

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magang-intel/internal/dataset"
	"magang-intel/internal/vacancies"
)

func TestStatusBeforeLoad(t *testing.T) {
	report := NewService(dataset.NewStore(), nil).Status(context.Background())
	assert.True(t, report.OK)
	assert.False(t, report.Loaded)
	assert.Zero(t, report.Records)
	assert.Nil(t, report.LoadedAt)
	assert.Equal(t, "disabled", report.Database)
}

func TestStatusAfterLoad(t *testing.T) {
	store := dataset.NewStore()
	at := time.Date(2025, 3, 1, 6, 0, 0, 0, time.UTC)
	store.Replace([]vacancies.Vacancy{{Title: "Data Analyst"}, {Title: "Admin"}}, at, "abc123")

	report := NewService(store, nil).Status(context.Background())
	assert.True(t, report.Loaded)
	assert.Equal(t, 2, report.Records)
	require.NotNil(t, report.LoadedAt)
	assert.Equal(t, at, *report.LoadedAt)
	assert.Equal(t, "abc123", report.Version)
}

func TestStatusDatabasePing(t *testing.T) {
	conn, _, err := sqlmock.New()
	require.NoError(t, err)

	svc := NewService(dataset.NewStore(), conn)
	report := svc.Status(context.Background())
	assert.True(t, report.OK)
	assert.Equal(t, "ok", report.Database)

	_ = conn.Close()
	report = svc.Status(context.Background())
	assert.False(t, report.OK)
	assert.Equal(t, "unreachable", report.Database)
}
