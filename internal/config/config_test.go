package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATASET_PATH", "data/raw/complaints.csv")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 8000, cfg.HTTP.Port)
	assert.Equal(t, 5000, cfg.HTTP.StatusPort)
	assert.Equal(t, "data/raw/complaints.csv", cfg.Data.DatasetPath)
	assert.Equal(t, "data/raw", cfg.Data.UploadDir)
	assert.Equal(t, 5*time.Minute, cfg.Report.CacheTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATASET_PATH", "/srv/complaints.xlsx")
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("STATUS_HTTP_PORT", "9001")
	t.Setenv("REPORT_CACHE_TTL_SECONDS", "60")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, 9001, cfg.HTTP.StatusPort)
	assert.Equal(t, time.Minute, cfg.Report.CacheTTL)
}

func TestLoadRequiresDatasetPath(t *testing.T) {
	t.Setenv("DATASET_PATH", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATASET_PATH")
}
