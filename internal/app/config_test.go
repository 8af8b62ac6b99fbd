package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/eegraph/internal/testutil"
	"github.com/vk/eegraph/pkg/ee"
)

func TestLoadConfig(t *testing.T) {
	// Arrange
	t.Setenv(TokenEnv, "tok")
	dir := testutil.WriteFiles(t, map[string]string{
		"eegraph.yaml": `
base_url: http://localhost:8080
project: demo
encoding: legacy
timeout: 5s
workers: 8
log_level: debug
`,
		"empty.yaml": "",
		"bad.yaml":   "bogus_field: 1\n",
	})

	// Act
	cfg, err := LoadConfig(filepath.Join(dir, "eegraph.yaml"))

	// Assert
	require.NoError(t, err)
	want := DefaultConfig()
	want.BaseURL = "http://localhost:8080"
	want.Project = "demo"
	want.Encoding = "legacy"
	want.Timeout = 5 * time.Second
	want.Workers = 8
	want.LogLevel = "debug"
	want.Token = "tok"
	assert.Equal(t, want, cfg)

	cfg, err = LoadConfig(filepath.Join(dir, "empty.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Workers, "defaults survive an empty file")

	_, err = LoadConfig(filepath.Join(dir, "bad.yaml"))
	assert.ErrorContains(t, err, "bogus_field")

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")
}

func TestNewConfig_Validation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "defaults", modify: func(*Config) {}},
		{name: "mixed case values", modify: func(c *Config) { c.Encoding = " Legacy"; c.LogLevel = "WARN"; c.LogFormat = "JSON" }},
		{name: "unknown encoding", modify: func(c *Config) { c.Encoding = "xml" }, wantErr: `unknown encoding "xml"`},
		{name: "unknown level", modify: func(c *Config) { c.LogLevel = "trace" }, wantErr: "invalid log-level"},
		{name: "unknown format", modify: func(c *Config) { c.LogFormat = "xml" }, wantErr: "invalid log-format"},
		{name: "no workers", modify: func(c *Config) { c.Workers = 0 }, wantErr: "workers must be positive"},
		{name: "negative retries", modify: func(c *Config) { c.Retries = -1 }, wantErr: "retries cannot be negative"},
		{name: "service without project", modify: func(c *Config) { c.BaseURL = "http://x" }, wantErr: "project is required"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tc.modify(&cfg)

			got, err := NewConfig(cfg)

			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, got.Validate())
		})
	}

	got, err := NewConfig(Config{Encoding: "LEGACY", LogLevel: "info", LogFormat: "text", Workers: 1})
	require.NoError(t, err)
	assert.Equal(t, ee.EncodingLegacy, got.EncodingValue())
}
