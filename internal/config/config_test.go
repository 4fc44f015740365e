package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/db47h/ledmatrix"
	"github.com/db47h/ledmatrix/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ledmatrix.DefaultConfig(), cfg.Matrix())
	d, err := cfg.Period()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Microsecond, d)
	assert.Equal(t, uint(8), cfg.StepsPerCycle)
	assert.Len(t, cfg.BenchOptions(), 3)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
seed: 0xACE1
debounce_cycles: 4
clock_period: 1ms
logging:
  level: debug
  development: true
`), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ledmatrix.Config{Seed: 0xACE1, DebounceCycles: 4, ResetCycles: 10}, cfg.Matrix())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	d, err := cfg.Period()
	require.NoError(t, err)
	assert.Equal(t, time.Millisecond, d)
	assert.Equal(t, 1, cfg.Workers)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParse_errors(t *testing.T) {
	for _, in := range []string{
		"seed: 65536",
		"seed: -1",
		"debounce_cycles: 0",
		"reset_cycles: 0",
		"steps_per_cycle: 2",
		"clock_period: fast",
		"clock_period: -1s",
		"logging: {level: loud}",
		"seed: [1, 2]",
	} {
		_, err := config.Parse([]byte(in))
		assert.Error(t, err, in)
	}
}
