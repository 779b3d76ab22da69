package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("log:\n  level: debug\nbench:\n  triggers: 7\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path, nil)

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 7, cfg.Bench.Triggers)
	// Untouched keys keep their defaults.
	assert.Equal(t, DefaultConfig().Bench.Events, cfg.Bench.Events)
}

func TestLoadMissingFileIsSkipped(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o644))

	t.Setenv("OBSERVABLE_LOG_LEVEL", "warn")

	cfg, err := Load(path, nil)

	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("OBSERVABLE_LOG_LEVEL", "warn")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(flags)
	require.NoError(t, flags.Parse([]string{"--log.level=error", "--bench.triggers=3"}))

	cfg, err := Load("", flags)

	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, 3, cfg.Bench.Triggers)
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: shouty\n"), 0o644))

	_, err := Load(path, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadRejectsNonPositiveTriggers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bench:\n  triggers: 0\n"), 0o644))

	_, err := Load(path, nil)

	require.Error(t, err)
}

func TestSourcesLoadInPriorityOrder(t *testing.T) {
	// Hand sources over unsorted; LoadSources must still apply flags last.
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(flags)
	require.NoError(t, flags.Parse([]string{"--bench.events=9"}))

	cfg, err := LoadSources([]Source{
		&FlagSource{Flags: flags},
		&DefaultSource{},
	})

	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Bench.Events)
}
