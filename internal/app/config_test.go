package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 8000, cfg.Server.Port)
	require.Equal(t, "info", cfg.Server.LogLevel)
	require.Equal(t, "sqlite", cfg.Database.Driver)

	require.Equal(t, 6*time.Hour, cfg.Notifications.SuppressionWindow)
	require.Equal(t, 720*time.Hour, cfg.Notifications.DismissedRetention)
	require.Equal(t, 50, cfg.Notifications.DefaultListLimit)
	require.Equal(t, 100, cfg.Notifications.MaxListLimit)
	require.Equal(t, 30*time.Second, cfg.Notifications.PollInterval)

	require.Equal(t, "@hourly", cfg.Maintenance.CleanupSchedule)
	require.Equal(t, "@every 30m", cfg.Maintenance.InventorySweepSchedule)
	require.True(t, cfg.Monitoring.Prometheus.Enabled)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("GASTROPRO_SERVER_PORT", "9100")
	t.Setenv("GASTROPRO_NOTIFICATIONS_SUPPRESSION_WINDOW", "12h")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 9100, cfg.Server.Port)
	require.Equal(t, 12*time.Hour, cfg.Notifications.SuppressionWindow)
}
