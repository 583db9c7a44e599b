package multihost

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
timeout: 10s
user_agent: genes-service/1.0
endpoints:
  - host: example.com
  - host: api.example.com
    port: 8443
    protocol: https
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "genes-service/1.0", cfg.UserAgent)
	assert.False(t, cfg.Debug)
	require.Len(t, cfg.Endpoints, 2)
	assert.Equal(t, EndpointConfig{Host: "api.example.com", Port: 8443, Protocol: "https"}, cfg.Endpoints[1])
}

func TestLoadConfigEmpty(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, cfg.Endpoints)
}

func TestLoadConfigUnknownField(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("retries: 3\n"))
	assert.Error(t, err)
}

func TestLoadConfigValidation(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("endpoints:\n  - port: 80\n"))
	assert.ErrorIs(t, err, ErrMissingHost)

	_, err = LoadConfig(strings.NewReader("endpoints:\n  - host: example.com\n    port: 70000\n"))
	assert.ErrorContains(t, err, "out of range")

	_, err = LoadConfig(strings.NewReader("timeout: -1s\n"))
	assert.ErrorContains(t, err, "timeout")
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "endpoints.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Endpoints, 2)

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigOptionsAndPreload(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(sampleConfig))
	require.NoError(t, err)

	f := NewFactory(nil, cfg.Options()...)
	client, err := f.Preload(cfg)
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, client.timeout)
	assert.Equal(t, "genes-service/1.0", client.userAgent)
	assert.Equal(t, 2, f.Registry().Len())

	u, err := client.MakeURL("/status")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com:8443/status", u)
}

func TestConfigDebugOption(t *testing.T) {
	cfg := &Config{Debug: true}
	client := newTestClient(t, "example.com", 0, "", cfg.Options()...)

	assert.True(t, client.debug.Enabled)
	assert.NotNil(t, client.logger)
}
