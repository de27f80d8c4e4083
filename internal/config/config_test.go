package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) Getenv {
	return func(k string) string { return m[k] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(envMap(nil))
	require.NoError(t, err)
	o := cfg.Boundary
	assert.Equal(t, DefaultPrimaryPath, o.PrimaryPath)
	assert.Equal(t, DefaultSecondaryPath, o.SecondaryPath)
	assert.Equal(t, DefaultOutPath, o.OutPath)
	assert.Equal(t, DefaultNamesOutPath, o.NamesOutPath)
	assert.Equal(t, "Windsor", o.TargetName)
	assert.Equal(t, "NAME", o.SourceKey)
	assert.Equal(t, "name", o.NameKey)
	assert.Equal(t, 23, o.AllowList.Len())
	assert.Equal(t, DefaultAllowList, o.AllowList.Names())
	assert.False(t, o.StrictAllowList)
	assert.Equal(t, "default", cfg.AllowListSource)
	assert.False(t, cfg.Publish.Postgres)
	assert.False(t, cfg.Publish.Redis)
	assert.Equal(t, "boundary", cfg.Publish.RedisKeyspace)
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "allow.yaml")
	require.NoError(t, os.WriteFile(list, []byte("names:\n  - Detroit\n  - Southfield\n"), 0o644))

	cfg, err := LoadFrom(envMap(map[string]string{
		"BOUNDARY_PRIMARY_PATH":     "/in/a.json",
		"BOUNDARY_TARGET_NAME":      "Tecumseh",
		"BOUNDARY_ALLOWLIST_FILE":   list,
		"BOUNDARY_STRICT_ALLOWLIST": "true",
		"PUBLISH_REDIS":             "1",
		"REDIS_TTL_SECONDS":         "600",
		"METRICS_PUSHGATEWAY":       "http://pgw:9091",
	}))
	require.NoError(t, err)
	assert.Equal(t, "/in/a.json", cfg.Boundary.PrimaryPath)
	assert.Equal(t, "Tecumseh", cfg.Boundary.TargetName)
	assert.Equal(t, []string{"Detroit", "Southfield"}, cfg.Boundary.AllowList.Names())
	assert.True(t, cfg.Boundary.StrictAllowList)
	assert.Equal(t, list, cfg.AllowListSource)
	assert.True(t, cfg.Publish.Redis)
	assert.Equal(t, 600, cfg.Publish.RedisTTLSec)
	assert.Equal(t, "http://pgw:9091", cfg.MetricsPushgateway)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad bool", map[string]string{"BOUNDARY_STRICT_ALLOWLIST": "maybe"}},
		{"bad publish flag", map[string]string{"PUBLISH_POSTGRES": "yes please"}},
		{"bad ttl", map[string]string{"REDIS_TTL_SECONDS": "-5"}},
		{"same outputs", map[string]string{"BOUNDARY_OUT_PATH": "x.json", "BOUNDARY_NAMES_OUT_PATH": "x.json"}},
		{"missing allow-list file", map[string]string{"BOUNDARY_ALLOWLIST_FILE": "/nonexistent/allow.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(envMap(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestLoadAllowListFile(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []string
		wantErr string
	}{
		{"ok", "names: [Detroit, Warren]\n", []string{"Detroit", "Warren"}, ""},
		{"empty", "names: []\n", nil, "no names"},
		{"blank entry", "names: [Detroit, \"  \"]\n", nil, "empty name"},
		{"duplicate", "names: [Detroit, Detroit]\n", nil, "duplicate"},
		{"malformed", "names: [Detroit\n", nil, "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "allow.yaml")
			require.NoError(t, os.WriteFile(p, []byte(tt.body), 0o644))
			got, err := LoadAllowListFile(p)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
