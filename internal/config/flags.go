package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"wifi-monitor/internal/models"
)

const envPrefix = "WIFIMON"

// thresholdFlags maps flag names onto nested threshold keys.
var thresholdFlags = map[string]string{
	"signal-warning":       "thresholds.signal_warning_dbm",
	"signal-critical":      "thresholds.signal_critical_dbm",
	"latency-warning":      "thresholds.latency_warning_ms",
	"latency-critical":     "thresholds.latency_critical_ms",
	"jitter-warning":       "thresholds.jitter_warning_ms",
	"packet-loss-warning":  "thresholds.packet_loss_warning_percent",
	"packet-loss-critical": "thresholds.packet_loss_critical_percent",
}

// NewFlagSet declares every flag understood by the subcommand.
func NewFlagSet(command string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(command, pflag.ContinueOnError)
	th := models.DefaultThresholds()

	fs.String("config", "", "Path to a config file")
	fs.String("db", "wifi_metrics.db", "Database path")
	fs.String("log-level", "info", "Log level (debug, info, warn, error)")
	fs.Bool("debug", false, "Enable debug logging")

	switch command {
	case "monitor", "dashboard":
		fs.Int("port", 8080, "Web server port")
	case "report":
		fs.String("output", "reports", "Report output directory")
	case "export":
		fs.String("output", "wifi_export.json", "Export file")
	}

	if command == "monitor" {
		fs.Duration("interval", 5*time.Second, "Sampling interval")
		fs.Duration("probe-timeout", 3*time.Second, "Upper bound for each probe call")
		fs.Int("ping-count", 4, "Echo requests per ping target")
		fs.StringSlice("ping-targets", []string{"8.8.8.8", "1.1.1.1", "google.com"}, "Ping targets")
		fs.StringSlice("dns-servers", []string{"8.8.8.8", "1.1.1.1"}, "DNS servers to test")
		fs.StringSlice("dns-domains", []string{"google.com", "cloudflare.com", "microsoft.com"}, "Domains to resolve")
		fs.String("http-probe-url", "http://www.gstatic.com/generate_204", "Internet reachability URL")
		fs.String("interface", "", "Wireless interface (auto-detected when empty)")
		fs.Duration("retention", 30*24*time.Hour, "How long to keep samples (0 keeps everything)")

		fs.Int("signal-warning", th.SignalWarningDBM, "Signal warning threshold (dBm)")
		fs.Int("signal-critical", th.SignalCriticalDBM, "Signal critical threshold (dBm)")
		fs.Float64("latency-warning", th.LatencyWarningMs, "Latency warning threshold (ms)")
		fs.Float64("latency-critical", th.LatencyCriticalMs, "Latency critical threshold (ms)")
		fs.Float64("jitter-warning", th.JitterWarningMs, "Jitter warning threshold (ms)")
		fs.Float64("packet-loss-warning", th.PacketLossWarningPct, "Packet loss warning threshold (%)")
		fs.Float64("packet-loss-critical", th.PacketLossCriticalPct, "Packet loss critical threshold (%)")
	}

	if command == "report" || command == "export" {
		fs.String("start", "", "Range start (RFC 3339)")
		fs.String("end", "", "Range end (RFC 3339)")
	}

	return fs
}

// Load parses args, then layers config file, environment and flags.
func Load(fs *pflag.FlagSet, args []string) (Config, error) {
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := bindFlags(v, fs); err != nil {
		return Config{}, err
	}

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".wifi-monitor"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	th := models.DefaultThresholds()

	v.SetDefault("interval", "5s")
	v.SetDefault("probe_timeout", "3s")
	v.SetDefault("ping_count", 4)
	v.SetDefault("ping_targets", []string{"8.8.8.8", "1.1.1.1", "google.com"})
	v.SetDefault("dns_servers", []string{"8.8.8.8", "1.1.1.1"})
	v.SetDefault("dns_domains", []string{"google.com", "cloudflare.com", "microsoft.com"})
	v.SetDefault("http_probe_url", "http://www.gstatic.com/generate_204")
	v.SetDefault("db", "wifi_metrics.db")
	v.SetDefault("port", 8080)
	v.SetDefault("retention", "720h")
	v.SetDefault("log_level", "info")

	v.SetDefault("thresholds.signal_warning_dbm", th.SignalWarningDBM)
	v.SetDefault("thresholds.signal_critical_dbm", th.SignalCriticalDBM)
	v.SetDefault("thresholds.latency_warning_ms", th.LatencyWarningMs)
	v.SetDefault("thresholds.latency_critical_ms", th.LatencyCriticalMs)
	v.SetDefault("thresholds.jitter_warning_ms", th.JitterWarningMs)
	v.SetDefault("thresholds.packet_loss_warning_percent", th.PacketLossWarningPct)
	v.SetDefault("thresholds.packet_loss_critical_percent", th.PacketLossCriticalPct)
}

// bindFlags binds each declared flag to its viper key. Flags use
// dashes, keys use underscores.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || bindErr != nil {
			return
		}
		key, ok := thresholdFlags[f.Name]
		if !ok {
			key = strings.ReplaceAll(f.Name, "-", "_")
		}
		bindErr = v.BindPFlag(key, f)
	})
	return bindErr
}
