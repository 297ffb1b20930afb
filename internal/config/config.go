package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Email       EmailConfig       `yaml:"email"`
	MQTT        MQTTConfig        `yaml:"mqtt"`
	Log         LogConfig         `yaml:"log"`
	Utilization UtilizationConfig `yaml:"utilization"`
	Simulation  SimulationConfig  `yaml:"simulation"`
	Scheduler   SchedulerConfig   `yaml:"scheduler"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	ShutdownTimeout int    `yaml:"shutdown_timeout_seconds"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	Database     string `yaml:"database"`
	SSLMode      string `yaml:"ssl_mode"`
	EnsureSchema bool   `yaml:"ensure_schema"`
	SeedFleet    bool   `yaml:"seed_fleet"`
}

// EmailConfig selects the notification sender. Provider is "sendgrid" or "log".
type EmailConfig struct {
	Provider       string `yaml:"provider"`
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	FromAddress    string `yaml:"from_address"`
	FromName       string `yaml:"from_name"`
}

// MQTTConfig contains telemetry ingestion settings. Ingestion is off when Broker is empty.
type MQTTConfig struct {
	Broker         string `yaml:"broker"`
	ClientID       string `yaml:"client_id"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	TelemetryTopic string `yaml:"telemetry_topic"`
	QoS            int    `yaml:"qos"`
	KeepAlive      int    `yaml:"keep_alive_seconds"`
	ConnectTimeout int    `yaml:"connect_timeout_seconds"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// UtilizationConfig contains the low-utilization alert threshold in hours per day.
type UtilizationConfig struct {
	Threshold float64 `yaml:"threshold_hours"`
}

// SimulationConfig controls the synthetic usage/fuel producer.
type SimulationConfig struct {
	Enabled       bool    `yaml:"enabled"`
	MaxHoursDelta float64 `yaml:"max_hours_delta"`
	MaxFuelBurn   float64 `yaml:"max_fuel_burn"`
	Seed          int64   `yaml:"seed"`
}

// SchedulerConfig contains cron schedule settings (seconds precision).
type SchedulerConfig struct {
	CheckLowUtilization string `yaml:"check_low_utilization"`
	RefreshDaysLeft     string `yaml:"refresh_days_left"`
	SimulateTelemetry   string `yaml:"simulate_telemetry"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, applies environment overrides and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	setString := func(key string, dst *string) {
		if val := os.Getenv(key); val != "" {
			*dst = val
		}
	}
	setInt := func(key string, dst *int) {
		if val := os.Getenv(key); val != "" {
			if n, err := strconv.Atoi(val); err == nil {
				*dst = n
			}
		}
	}

	setString("DB_HOST", &c.Database.Host)
	setInt("DB_PORT", &c.Database.Port)
	setString("DB_USER", &c.Database.User)
	setString("DB_PASSWORD", &c.Database.Password)
	setString("DB_NAME", &c.Database.Database)
	setString("DB_SSL_MODE", &c.Database.SSLMode)

	setString("SERVER_HOST", &c.Server.Host)
	setInt("SERVER_PORT", &c.Server.Port)

	setString("EMAIL_PROVIDER", &c.Email.Provider)
	setString("SENDGRID_API_KEY", &c.Email.SendGridAPIKey)
	setString("EMAIL_FROM", &c.Email.FromAddress)

	setString("MQTT_BROKER", &c.MQTT.Broker)
	setString("MQTT_USERNAME", &c.MQTT.Username)
	setString("MQTT_PASSWORD", &c.MQTT.Password)
	setString("MQTT_TELEMETRY_TOPIC", &c.MQTT.TelemetryTopic)

	setString("LOG_LEVEL", &c.Log.Level)
	setString("LOG_FORMAT", &c.Log.Format)

	if val := os.Getenv("UTILIZATION_THRESHOLD"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.Utilization.Threshold = f
		}
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills defaults
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	switch c.Email.Provider {
	case "", "log":
		c.Email.Provider = "log"
	case "sendgrid":
		if c.Email.SendGridAPIKey == "" {
			return fmt.Errorf("sendgrid api key is required when email provider is sendgrid")
		}
		if c.Email.FromAddress == "" {
			return fmt.Errorf("email from address is required when email provider is sendgrid")
		}
	default:
		return fmt.Errorf("unsupported email provider: %s", c.Email.Provider)
	}
	if c.Email.FromName == "" {
		c.Email.FromName = "Fleet Share"
	}

	if c.MQTT.Broker != "" {
		if c.MQTT.TelemetryTopic == "" {
			c.MQTT.TelemetryTopic = "fleet/telemetry/+"
		}
		if c.MQTT.ClientID == "" {
			c.MQTT.ClientID = "fleetshare-ingest"
		}
		if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
			return fmt.Errorf("invalid mqtt qos: %d", c.MQTT.QoS)
		}
		if c.MQTT.KeepAlive <= 0 {
			c.MQTT.KeepAlive = 60
		}
		if c.MQTT.ConnectTimeout <= 0 {
			c.MQTT.ConnectTimeout = 10
		}
	}

	if c.Utilization.Threshold < 0 {
		return fmt.Errorf("utilization threshold must not be negative: %v", c.Utilization.Threshold)
	}
	if c.Utilization.Threshold == 0 {
		c.Utilization.Threshold = 5.0
	}

	if c.Simulation.MaxHoursDelta <= 0 {
		c.Simulation.MaxHoursDelta = 1.0
	}
	if c.Simulation.MaxFuelBurn <= 0 {
		c.Simulation.MaxFuelBurn = 2.0
	}

	if c.Scheduler.CheckLowUtilization == "" {
		c.Scheduler.CheckLowUtilization = "0 0 6 * * *" // 6 AM UTC
	}
	if c.Scheduler.RefreshDaysLeft == "" {
		c.Scheduler.RefreshDaysLeft = "0 5 0 * * *" // just after midnight UTC
	}
	if c.Scheduler.SimulateTelemetry == "" {
		c.Scheduler.SimulateTelemetry = "*/15 * * * * *"
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ShutdownTimeout returns the graceful shutdown budget of the HTTP server.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeout) * time.Second
}
