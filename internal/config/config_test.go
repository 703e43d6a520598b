package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "info", cfg.Logger().Level)
	assert.Equal(t, "console", cfg.Logger().Format)
	assert.Equal(t, "rocinante", cfg.Logger().ServiceName)

	assert.Equal(t, 0.1, cfg.Persona().CorrelationNoiseStdDev)
	assert.True(t, cfg.Timing().FatigueEnabled)

	assert.Equal(t, 3, cfg.Jitter().Octaves)
	assert.Equal(t, 0.5, cfg.Jitter().Persistence)

	assert.Equal(t, 8, cfg.Resolver().MaxWaitTicks)
	assert.Equal(t, 3, cfg.Resolver().RotationTriggerTick)
	assert.Equal(t, 3, cfg.Resolver().MaxRotationRetries)
	assert.Equal(t, 5*time.Second, cfg.Resolver().RotationTimeout)

	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("explicitly named missing file errors", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
		require.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := []byte(`
logger:
  level: debug
  format: json
resolver:
  max_wait_ticks: 12
  rotation_trigger_tick: 4
jitter:
  amplitude: 4.0
`)
		require.NoError(t, os.WriteFile(path, content, 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Logger().Level)
		assert.Equal(t, "json", cfg.Logger().Format)
		assert.Equal(t, 12, cfg.Resolver().MaxWaitTicks)
		assert.Equal(t, 4, cfg.Resolver().RotationTriggerTick)
		assert.Equal(t, 4.0, cfg.Jitter().Amplitude)
		// Untouched values keep their defaults.
		assert.Equal(t, 3, cfg.Resolver().MaxRotationRetries)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := []byte(`
resolver:
  max_wait_ticks: 2
  rotation_trigger_tick: 6
`)
		require.NoError(t, os.WriteFile(path, content, 0o644))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rotation_trigger_tick")
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config { return NewDefaultConfig() }

	t.Run("rejects non-positive wait window", func(t *testing.T) {
		cfg := base()
		cfg.SetResolverMaxWaitTicks(0)
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects trigger outside the window", func(t *testing.T) {
		cfg := base()
		cfg.ResolverC.RotationTriggerTick = cfg.ResolverC.MaxWaitTicks
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects negative retries", func(t *testing.T) {
		cfg := base()
		cfg.SetResolverMaxRotationRetries(-1)
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects out-of-range persistence", func(t *testing.T) {
		cfg := base()
		cfg.JitterC.Persistence = 1.5
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects negative correlation noise", func(t *testing.T) {
		cfg := base()
		cfg.PersonaC.CorrelationNoiseStdDev = -0.1
		assert.Error(t, cfg.Validate())
	})
}

func TestSetters(t *testing.T) {
	cfg := NewDefaultConfig()

	cfg.SetTimingFatigueEnabled(false)
	assert.False(t, cfg.Timing().FatigueEnabled)

	cfg.SetResolverMaxWaitTicks(10)
	assert.Equal(t, 10, cfg.Resolver().MaxWaitTicks)

	cfg.SetResolverMaxRotationRetries(5)
	assert.Equal(t, 5, cfg.Resolver().MaxRotationRetries)
}
