package config

import (
	"fmt"
	"time"

	"wifi-monitor/internal/logger"
	"wifi-monitor/internal/models"
)

// Config holds all configuration for the wifi monitor
type Config struct {
	Interval     time.Duration `mapstructure:"interval"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`
	PingCount    int           `mapstructure:"ping_count"`
	PingTargets  []string      `mapstructure:"ping_targets"`
	DNSServers   []string      `mapstructure:"dns_servers"`
	DNSDomains   []string      `mapstructure:"dns_domains"`
	HTTPProbeURL string        `mapstructure:"http_probe_url"`
	Interface    string        `mapstructure:"interface"`
	DatabasePath string        `mapstructure:"db"`
	Port         int           `mapstructure:"port"`
	Retention    time.Duration `mapstructure:"retention"`

	// Report and export options.
	Output string `mapstructure:"output"`
	Start  string `mapstructure:"start"`
	End    string `mapstructure:"end"`

	Thresholds models.AlertThresholds `mapstructure:"thresholds"`
	Log        logger.Config          `mapstructure:",squash"`
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("probe timeout must be positive")
	}
	if c.PingCount <= 0 {
		return fmt.Errorf("ping count must be positive")
	}
	if len(c.PingTargets) == 0 {
		return fmt.Errorf("at least one ping target must be specified")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	if c.Retention < 0 {
		return fmt.Errorf("retention cannot be negative")
	}
	if _, err := c.Range(); err != nil {
		return err
	}
	return validateThresholds(c.Thresholds)
}

func validateThresholds(t models.AlertThresholds) error {
	if t.SignalCriticalDBM > t.SignalWarningDBM {
		return fmt.Errorf("critical signal threshold %d dBm must not exceed warning threshold %d dBm",
			t.SignalCriticalDBM, t.SignalWarningDBM)
	}
	if t.LatencyCriticalMs < t.LatencyWarningMs {
		return fmt.Errorf("critical latency threshold must be at least the warning threshold")
	}
	if t.PacketLossCriticalPct < t.PacketLossWarningPct {
		return fmt.Errorf("critical packet loss threshold must be at least the warning threshold")
	}
	if t.JitterWarningMs < 0 || t.LatencyWarningMs < 0 || t.PacketLossWarningPct < 0 {
		return fmt.Errorf("thresholds cannot be negative")
	}
	return nil
}

// Range parses the optional start/end bounds (RFC 3339).
func (c *Config) Range() (models.TimeRange, error) {
	var r models.TimeRange
	var err error

	if c.Start != "" {
		if r.Start, err = time.Parse(time.RFC3339, c.Start); err != nil {
			return r, fmt.Errorf("invalid start time %q: %w", c.Start, err)
		}
	}
	if c.End != "" {
		if r.End, err = time.Parse(time.RFC3339, c.End); err != nil {
			return r, fmt.Errorf("invalid end time %q: %w", c.End, err)
		}
	}
	return r, nil
}
