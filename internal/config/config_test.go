package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
server:
  host: 0.0.0.0
  port: 8080
database:
  host: localhost
  user: fleet
  database: fleetshare
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "log", cfg.Email.Provider)
	assert.Equal(t, 5.0, cfg.Utilization.Threshold)
	assert.Equal(t, "0 0 6 * * *", cfg.Scheduler.CheckLowUtilization)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.MQTT.TelemetryTopic, "mqtt defaults apply only when a broker is configured")
	assert.Equal(t, "postgres://fleet:@localhost:5432/fleetshare?sslmode=disable", cfg.GetDatabaseConnectionString())
	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddress())
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("UTILIZATION_THRESHOLD", "7.5")
	t.Setenv("MQTT_BROKER", "tcp://broker:1883")

	cfg, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, 7.5, cfg.Utilization.Threshold)
	assert.Equal(t, "fleet/telemetry/+", cfg.MQTT.TelemetryTopic)
	assert.Equal(t, "fleetshare-ingest", cfg.MQTT.ClientID)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad port", "server:\n  port: 0\n", "invalid server port"},
		{"missing db host", "server:\n  port: 80\ndatabase:\n  user: u\n  database: d\n", "database host is required"},
		{"sendgrid without key", minimalYAML + "email:\n  provider: sendgrid\n", "sendgrid api key is required"},
		{"unknown provider", minimalYAML + "email:\n  provider: pigeon\n", "unsupported email provider"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalYAML), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fleetshare", cfg.Database.Database)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}
