package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

const (
	defaultReuseWindowSeconds = 7200
	defaultNetworkID          = "00000000-0000-0000-0000-000000000000"
	defaultSharedTenant       = "shared"
)

type Config struct {
	DSN          string
	ReuseWindow  time.Duration
	NetworkID    uuid.UUID
	SharedTenant string
	LogLevel     slog.Level
}

// Load reads the config file. An explicit path wins; otherwise the usual
// locations are searched. A missing file is an error, there is no implicit
// default for the database connection.
func Load(configFile string) (Config, error) {
	v := viper.New()
	v.SetDefault("reuse_window_seconds", defaultReuseWindowSeconds)
	v.SetDefault("network_id", defaultNetworkID)
	v.SetDefault("shared_tenant", defaultSharedTenant)
	v.SetDefault("log_level", "info")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("ipam-usage")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/ipam-usage")
	}

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	dsn := v.GetString("dsn")
	if dsn == "" {
		return Config{}, fmt.Errorf("config %s: dsn is required", v.ConfigFileUsed())
	}

	networkID, err := uuid.Parse(v.GetString("network_id"))
	if err != nil {
		return Config{}, fmt.Errorf("config %s: invalid network_id: %w", v.ConfigFileUsed(), err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("log_level"))); err != nil {
		return Config{}, fmt.Errorf("config %s: invalid log_level: %w", v.ConfigFileUsed(), err)
	}

	return Config{
		DSN:          dsn,
		ReuseWindow:  time.Duration(v.GetInt64("reuse_window_seconds")) * time.Second,
		NetworkID:    networkID,
		SharedTenant: v.GetString("shared_tenant"),
		LogLevel:     level,
	}, nil
}
