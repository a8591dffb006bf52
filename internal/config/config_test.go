package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://estacionamentoapi2025.vercel.app", cfg.APIURL)
	assert.Equal(t, 10, cfg.Lot.CarCapacity)
	assert.Equal(t, 5, cfg.Lot.MotoCapacity)
	assert.Equal(t, 10.0, cfg.Lot.HourlyRate)
	assert.Equal(t, 30, cfg.RefreshSeconds)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`api_url: http://localhost:3000
lot:
  car_capacity: 20
  moto_capacity: 8
  hourly_rate: 12.5
refresh_seconds: 10
log_level: debug
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.APIURL)
	assert.Equal(t, 20, cfg.Lot.CarCapacity)
	assert.Equal(t, 8, cfg.Lot.MotoCapacity)
	assert.Equal(t, 12.5, cfg.Lot.HourlyRate)
	assert.Equal(t, 10, cfg.RefreshSeconds)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("VAGA_API_URL", "http://localhost:4000")
	t.Setenv("VAGA_LOT_CAR_CAPACITY", "3")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:4000", cfg.APIURL)
	assert.Equal(t, 3, cfg.Lot.CarCapacity)
}

func TestLotConfig(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	lc := cfg.LotConfig()
	assert.Equal(t, cfg.Lot.CarCapacity, lc.CarCapacity)
	assert.Equal(t, cfg.Lot.MotoCapacity, lc.MotoCapacity)
	assert.Equal(t, cfg.Lot.HourlyRate, lc.HourlyRate)
}
