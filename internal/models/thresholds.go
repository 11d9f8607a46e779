package models

// AlertThresholds are fixed for the lifetime of a monitoring run.
type AlertThresholds struct {
	SignalWarningDBM      int     `json:"signal_strength_warning_dbm" mapstructure:"signal_warning_dbm"`
	SignalCriticalDBM     int     `json:"signal_strength_critical_dbm" mapstructure:"signal_critical_dbm"`
	LatencyWarningMs      float64 `json:"latency_warning_ms" mapstructure:"latency_warning_ms"`
	LatencyCriticalMs     float64 `json:"latency_critical_ms" mapstructure:"latency_critical_ms"`
	JitterWarningMs       float64 `json:"jitter_warning_ms" mapstructure:"jitter_warning_ms"`
	PacketLossWarningPct  float64 `json:"packet_loss_warning_percent" mapstructure:"packet_loss_warning_percent"`
	PacketLossCriticalPct float64 `json:"packet_loss_critical_percent" mapstructure:"packet_loss_critical_percent"`
}

// DefaultThresholds returns the stock alerting thresholds.
func DefaultThresholds() AlertThresholds {
	return AlertThresholds{
		SignalWarningDBM:      -70,
		SignalCriticalDBM:     -80,
		LatencyWarningMs:      100,
		LatencyCriticalMs:     300,
		JitterWarningMs:       30,
		PacketLossWarningPct:  1,
		PacketLossCriticalPct: 5,
	}
}
