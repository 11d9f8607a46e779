package models

import "time"

// TimeRange bounds a query. A zero Start or End is unbounded on that side.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Valid is false only when both bounds are set and inverted.
func (r TimeRange) Valid() bool {
	return r.Start.IsZero() || r.End.IsZero() || !r.Start.After(r.End)
}

// PeriodStatistics is recomputed from stored snapshots on every query.
type PeriodStatistics struct {
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	SampleCount int       `json:"sample_count"`

	SignalAvgDBM     *float64 `json:"signal_strength_avg_dbm"`
	SignalMinDBM     *int     `json:"signal_strength_min_dbm"`
	SignalMaxDBM     *int     `json:"signal_strength_max_dbm"`
	SignalQualityAvg *float64 `json:"signal_quality_avg_percent"`

	LatencyAvgMs *float64 `json:"latency_avg_ms"`
	LatencyMinMs *float64 `json:"latency_min_ms"`
	LatencyMaxMs *float64 `json:"latency_max_ms"`
	LatencyP95Ms *float64 `json:"latency_p95_ms"`
	LatencyP99Ms *float64 `json:"latency_p99_ms"`
	JitterAvgMs  *float64 `json:"jitter_avg_ms"`

	PacketLossAvgPct    float64 `json:"packet_loss_avg_percent"`
	ConnectionUptimePct float64 `json:"connection_uptime_percent"`
	InternetUptimePct   float64 `json:"internet_uptime_percent"`
	TotalDisconnections int     `json:"total_disconnections"`

	InfoEvents     int `json:"info_events"`
	WarningEvents  int `json:"warning_events"`
	ErrorEvents    int `json:"error_events"`
	CriticalEvents int `json:"critical_events"`
}

// EventCount is one row of the per-type event histogram.
type EventCount struct {
	Type  EventType `json:"event_type"`
	Count int       `json:"count"`
}

// SeriesPoint is one stored time-series value.
type SeriesPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// Export bundles everything stored for a range into one document.
type Export struct {
	ExportedAt time.Time        `json:"exported_at"`
	Statistics PeriodStatistics `json:"statistics"`
	Events     []Event          `json:"events"`
	Snapshots  []Snapshot       `json:"snapshots"`
}
