package main

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/audioguide/internal/config"
	"github.com/jask/audioguide/internal/routing"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("AUDIOGUIDE_CONFIG", "")
	t.Setenv("AUDIOGUIDE_DATABASE_PATH", filepath.Join(home, "audioguide.db"))
	return home
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := rootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRouteProvider(t *testing.T) {
	p, err := routeProvider(config.RoutingConfig{Provider: "none"})
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = routeProvider(config.RoutingConfig{Provider: "straight"})
	require.NoError(t, err)
	assert.IsType(t, routing.Straight{}, p)

	p, err = routeProvider(config.RoutingConfig{Provider: "osrm", BaseURL: "http://localhost:5000", Profile: "foot"})
	require.NoError(t, err)
	assert.IsType(t, &routing.OSRM{}, p)

	p, err = routeProvider(config.RoutingConfig{Provider: "osrm", RatePerSecond: 1, CacheSize: 8})
	require.NoError(t, err)
	assert.IsType(t, &routing.Cached{}, p)
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logLevel("debug"))
	assert.Equal(t, slog.LevelWarn, logLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, logLevel("loud"))
}

func TestImportThenListFromSQLite(t *testing.T) {
	isolate(t)

	out, err := run(t, "import", "--from", "../../data")
	require.NoError(t, err)
	assert.Contains(t, out, "imported 6 stops and 2 tours")

	t.Setenv("AUDIOGUIDE_CATALOG_SOURCE", "sqlite")
	out, err = run(t, "tours")
	require.NoError(t, err)
	assert.Contains(t, out, "nizhny-novgorod-center")
	assert.Contains(t, out, "volga-embankment")
}

func TestResetNeedsConfirmation(t *testing.T) {
	isolate(t)

	_, err := run(t, "reset")
	require.Error(t, err)

	out, err := run(t, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "catalog cache cleared")
}

func TestConfigInit(t *testing.T) {
	home := isolate(t)

	out, err := run(t, "config", "init")
	require.NoError(t, err)
	path := filepath.Join(home, ".config", "audioguide", "config.toml")
	assert.Contains(t, out, path)
	assert.FileExists(t, path)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.Defaults().Routing, cfg.Routing)
}
