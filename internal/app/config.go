package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config represents the runtime configuration for the GastroPro backend.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Notifications NotificationConfig  `mapstructure:"notifications"`
	Maintenance   MaintenanceConfig   `mapstructure:"maintenance"`
	Monitoring    MonitoringConfig    `mapstructure:"monitoring"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`
}

// DatabaseConfig describes connection options for the supported databases.
type DatabaseConfig struct {
	Driver   string       `mapstructure:"driver"`
	Path     string       `mapstructure:"path"`
	DSN      string       `mapstructure:"dsn"`
	Postgres DBAuthConfig `mapstructure:"postgres"`
	MySQL    DBAuthConfig `mapstructure:"mysql"`
}

// DBAuthConfig represents host based database parameters.
type DBAuthConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// NotificationConfig tunes the notification feed behaviour.
type NotificationConfig struct {
	// SuppressionWindow is how long a duplicate alert for the same subject and
	// category is withheld. The boundary is inclusive: a prior alert created
	// exactly one window ago still suppresses.
	SuppressionWindow time.Duration `mapstructure:"suppression_window"`
	// DismissedRetention is how long dismissed notifications are kept for
	// audit before the cleanup sweep removes them.
	DismissedRetention time.Duration `mapstructure:"dismissed_retention"`
	DefaultListLimit   int           `mapstructure:"default_list_limit"`
	MaxListLimit       int           `mapstructure:"max_list_limit"`
	// PollInterval is advertised to clients as the recommended badge refresh cadence.
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// MaintenanceConfig holds the cron specifications for background sweeps.
type MaintenanceConfig struct {
	CleanupSchedule        string `mapstructure:"cleanup_schedule"`
	InventorySweepSchedule string `mapstructure:"inventory_sweep_schedule"`
}

// MonitoringConfig enables health checks and metrics.
type MonitoringConfig struct {
	Prometheus PrometheusConfig `mapstructure:"prometheus"`
}

// PrometheusConfig toggles metrics endpoints.
type PrometheusConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

var defaults = map[string]any{
	"server.port":      8000,
	"server.log_level": "info",

	"database.driver": "sqlite",
	"database.path":   "./data/gastropro.sqlite",

	"notifications.suppression_window":  "6h",
	"notifications.dismissed_retention": "720h", // 30 days
	"notifications.default_list_limit":  50,
	"notifications.max_list_limit":      100,
	"notifications.poll_interval":       "30s",

	"maintenance.cleanup_schedule":         "@hourly",
	"maintenance.inventory_sweep_schedule": "@every 30m",

	"monitoring.prometheus.enabled":  true,
	"monitoring.prometheus.endpoint": "/metrics",
}

// LoadConfig reads config.yaml from ./config plus any extra search paths.
// Every key can be overridden via GASTROPRO_ environment variables, e.g.
// GASTROPRO_NOTIFICATIONS_SUPPRESSION_WINDOW=12h. A missing file is not an
// error; the defaults describe a working single-node setup.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("GASTROPRO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config, withDurationStrings); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &config, nil
}

// withDurationStrings lets yaml and env values like "6h" decode into
// time.Duration fields.
func withDurationStrings(dc *mapstructure.DecoderConfig) {
	dc.TagName = "mapstructure"
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}
