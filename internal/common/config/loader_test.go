package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: application-form
  version: 1.2.0
workers:
  validate-job-application:
    enabled: true
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "application-form", cfg.App.Name)
	assert.Equal(t, "1.2.0", cfg.App.Version)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "localhost:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, 10, cfg.Camunda.MaxJobsActive)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, ":8080", cfg.Metrics.Address)
	assert.False(t, cfg.Form.ExemptInapplicableFields)

	w := cfg.Workers["validate-job-application"]
	assert.True(t, w.Enabled)
	assert.Equal(t, 5, w.MaxJobsActive)
	assert.Equal(t, 30000, w.Timeout)
	assert.Equal(t, 3, w.MaxRetries)
}

func TestLoadFromFile_ExplicitValues(t *testing.T) {
	path := writeConfig(t, `
camunda:
  broker_address: zeebe:26500
logging:
  level: debug
  format: console
metrics:
  address: ":9090"
form:
  exempt_inapplicable_fields: true
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "zeebe:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, ":9090", cfg.Metrics.Address)
	assert.True(t, cfg.Form.ExemptInapplicableFields)
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_ZEEBE_HOST", "broker.internal:26500")
	path := writeConfig(t, `
camunda:
  broker_address: ${TEST_ZEEBE_HOST}
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "broker.internal:26500", cfg.Camunda.BrokerAddress)
}

func TestLoadFromFile_EnvOverridesExemptFlag(t *testing.T) {
	t.Setenv("FORM_EXEMPT_INAPPLICABLE_FIELDS", "true")
	path := writeConfig(t, "app:\n  name: form\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.True(t, cfg.Form.ExemptInapplicableFields)
}

func TestLoadFromFile_InvalidLogLevel(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: chatty\n")

	cfg, err := LoadFromFile(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWorkerHelpers(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{
		"validate-job-application": {Enabled: false, MaxJobsActive: 2, Timeout: 1000},
	}}

	assert.False(t, IsWorkerEnabled(cfg, "validate-job-application"))
	assert.True(t, IsWorkerEnabled(cfg, "unknown"))
	assert.Equal(t, 2, GetWorkerConfig(cfg, "validate-job-application").MaxJobsActive)
	assert.Equal(t, 5, GetWorkerConfig(cfg, "unknown").MaxJobsActive)
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}
