package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadServerConfigDefaults(t *testing.T) {
	cfg, err := LoadServerConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultServerConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadServerConfigFile(t *testing.T) {
	path := writeFile(t, "server.yaml", `
addr: 127.0.0.1:9090
maxBodyBytes: 2048
readTimeout: 30s
`)
	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)

	want := DefaultServerConfig()
	want.Addr = "127.0.0.1:9090"
	want.MaxBodyBytes = 2048
	want.ReadTimeout = Duration{30 * time.Second}
	assert.Equal(t, want, cfg)
}

func TestLoadServerConfigErrors(t *testing.T) {
	for name, content := range map[string]string{
		"unknown field":     "addr: \"127.0.0.1:80\"\nport: 80\n",
		"bad duration":      "idleTimeout: soon\n",
		"numeric duration":  "idleTimeout: 5\n",
		"empty addr":        "addr: \"\"\n",
		"zero body limit":   "maxBodyBytes: 0\n",
		"negative duration": "shutdownTimeout: -1s\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadServerConfig(writeFile(t, "server.yaml", content))
			assert.Error(t, err)
		})
	}

	_, err := LoadServerConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDurationMarshal(t *testing.T) {
	b, err := Duration{90 * time.Second}.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(b))

	var d Duration
	require.NoError(t, d.UnmarshalJSON(b))
	assert.Equal(t, 90*time.Second, d.Duration)
}
