package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSyncerRequiresUpstream(t *testing.T) {
	_, err := BuildSyncer(context.Background(), testConfig(t))
	assert.Error(t, err)
}

func TestSyncedDatasetIsServed(t *testing.T) {
	cfg := testConfig(t)
	upstream := filepath.Join(t.TempDir(), "prepared.json")
	require.NoError(t, os.WriteFile(upstream, []byte(sampleDataset), 0o644))
	cfg.DatasetUpstreamURL = upstream

	syncer, err := BuildSyncer(context.Background(), cfg)
	require.NoError(t, err)
	res, err := syncer.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Records)

	app, err := Build(cfg)
	require.NoError(t, err)
	defer app.Close()
	assert.True(t, app.Dataset.Status().Loaded)
	assert.Equal(t, res.Version, app.Dataset.Status().Version)
}
