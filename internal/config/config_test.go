package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-udisks/internal/source/dbussource"
	"github.com/deploymenttheory/go-udisks/internal/types"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "udisks-config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	config, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, dbussource.SystemBus, config.Source.Bus)
	assert.Equal(t, types.DefaultDestination, config.Source.Destination)
	assert.Equal(t, string(types.DefaultRootPath), config.Source.Path)
	assert.Equal(t, 3*time.Second, config.Source.Timeout)
	assert.Empty(t, config.Snapshot)
	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "udisks", config.Metrics.Namespace)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
bus: session
timeout: 500ms
snapshot: /var/tmp/udisks.yaml
log:
  level: debug
  console: true
metrics:
  namespace: storage
`)

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, dbussource.SessionBus, config.Source.Bus)
	assert.Equal(t, 500*time.Millisecond, config.Source.Timeout)
	assert.Equal(t, types.DefaultDestination, config.Source.Destination, "unset keys keep defaults")
	assert.Equal(t, "/var/tmp/udisks.yaml", config.Snapshot)
	assert.Equal(t, "debug", config.Log.Level)
	assert.True(t, config.Log.Console)
	assert.Equal(t, "storage", config.Metrics.Namespace)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("UDISKS_DESTINATION", "org.example.Storage")
	t.Setenv("UDISKS_LOG_LEVEL", "info")

	config, err := Load(writeConfig(t, "bus: system\n"))
	require.NoError(t, err)

	assert.Equal(t, "org.example.Storage", config.Source.Destination)
	assert.Equal(t, "info", config.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file func(t *testing.T) string
	}{
		{
			name: "explicit file missing",
			file: func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.yaml") },
		},
		{
			name: "malformed yaml",
			file: func(t *testing.T) string { return writeConfig(t, "bus: [system\n") },
		},
		{
			name: "unsupported bus",
			file: func(t *testing.T) string { return writeConfig(t, "bus: starter\n") },
		},
		{
			name: "relative object path",
			file: func(t *testing.T) string { return writeConfig(t, "path: org/freedesktop\n") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.file(t))
			assert.Error(t, err)
		})
	}
}
