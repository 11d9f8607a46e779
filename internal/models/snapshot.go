package models

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot is one atomic health sample. It is never mutated once the
// sampling loop hands it to the store.
type Snapshot struct {
	ID           string             `json:"id"`
	Timestamp    time.Time          `json:"timestamp"`
	Link         *LinkInfo          `json:"wifi_info"`
	Connectivity ConnectivityResult `json:"connectivity"`
	Latency      LatencyResult      `json:"latency"`
	DNS          DnsResult          `json:"dns_metrics"`
	System       SystemCounters     `json:"system_info"`
	Events       []Event            `json:"events"`
}

// NewSnapshot returns an empty snapshot stamped with a fresh id and time.
func NewSnapshot(now time.Time) Snapshot {
	return Snapshot{
		ID:        uuid.NewString(),
		Timestamp: now.UTC(),
		Events:    []Event{},
	}
}

// Connected reports whether the wireless link was up for this sample.
func (s Snapshot) Connected() bool {
	return s.Link != nil
}

// LinkInfo describes the associated wireless link. A nil *LinkInfo means
// the adapter was not connected.
type LinkInfo struct {
	SSID          string   `json:"ssid"`
	BSSID         string   `json:"bssid"`
	SignalDBM     int      `json:"signal_strength_dbm"`
	SignalQuality int      `json:"signal_quality_percent"` // 0-100
	Channel       int      `json:"channel"`
	FrequencyMHz  int      `json:"frequency_mhz"`
	Band          Band     `json:"band"`
	PhyType       string   `json:"phy_type"`
	LinkSpeedMbps int      `json:"link_speed_mbps"`
	RxRateMbps    *float64 `json:"rx_rate_mbps,omitempty"`
	TxRateMbps    *float64 `json:"tx_rate_mbps,omitempty"`
	SecurityType  string   `json:"security_type"`
	AdapterName   string   `json:"adapter_name"`
	AdapterMAC    string   `json:"adapter_mac"`
	IPv4          string   `json:"ipv4_address,omitempty"`
	IPv6          string   `json:"ipv6_address,omitempty"`
	Gateway       string   `json:"gateway,omitempty"`
	DNSServers    []string `json:"dns_servers"`
}

// ConnectivityResult holds reachability checks for one cycle.
type ConnectivityResult struct {
	Connected         bool   `json:"is_connected"`
	LoopbackReachable bool   `json:"loopback_reachable"`
	RouterReachable   bool   `json:"router_reachable"`
	InternetReachable bool   `json:"internet_reachable"`
	HTTPSuccess       bool   `json:"http_test_success"`
	HTTPResponseMs    *int64 `json:"http_response_time_ms,omitempty"`
}

// PingResult is the outcome of pinging a single target.
type PingResult struct {
	Target          string    `json:"target"`
	ResolvedIP      string    `json:"resolved_ip,omitempty"`
	PacketsSent     int       `json:"packets_sent"`
	PacketsReceived int       `json:"packets_received"`
	PacketLoss      float64   `json:"packet_loss_percent"`
	MinMs           *float64  `json:"min_ms,omitempty"`
	AvgMs           *float64  `json:"avg_ms,omitempty"`
	MaxMs           *float64  `json:"max_ms,omitempty"`
	StdDevMs        *float64  `json:"stddev_ms,omitempty"`
	TimesMs         []float64 `json:"individual_times_ms"`
	Error           string    `json:"error,omitempty"`
}

// LatencyResult aggregates ping outcomes across all targets.
type LatencyResult struct {
	Targets    []PingResult `json:"targets"`
	LoopbackMs *float64     `json:"loopback_latency_ms,omitempty"`
	RouterMs   *float64     `json:"router_latency_ms,omitempty"`
	AvgMs      *float64     `json:"average_latency_ms,omitempty"`
	MinMs      *float64     `json:"min_latency_ms,omitempty"`
	MaxMs      *float64     `json:"max_latency_ms,omitempty"`
	JitterMs   *float64     `json:"jitter_ms,omitempty"`
	PacketLoss float64      `json:"packet_loss_percent"`
}

// DnsQuery is one (domain, server) resolution attempt.
type DnsQuery struct {
	Domain      string   `json:"domain"`
	Server      string   `json:"dns_server"`
	ResolveMs   *float64 `json:"resolution_time_ms,omitempty"`
	ResolvedIPs []string `json:"resolved_ips"`
	Success     bool     `json:"success"`
	Error       string   `json:"error,omitempty"`
}

// DnsResult summarizes the DNS checks of one cycle.
type DnsResult struct {
	Queries  []DnsQuery `json:"queries"`
	AvgMs    *float64   `json:"average_resolution_time_ms,omitempty"`
	Failures int        `json:"failures"`
}

// SystemCounters are host-wide network and load counters.
type SystemCounters struct {
	BytesSent         uint64  `json:"bytes_sent"`
	BytesReceived     uint64  `json:"bytes_received"`
	PacketsSent       uint64  `json:"packets_sent"`
	PacketsReceived   uint64  `json:"packets_received"`
	ErrorsIn          uint64  `json:"errors_in"`
	ErrorsOut         uint64  `json:"errors_out"`
	DropsIn           uint64  `json:"drops_in"`
	DropsOut          uint64  `json:"drops_out"`
	ActiveConnections int     `json:"active_connections"`
	CPUPercent        float64 `json:"cpu_usage_percent"`
	MemoryPercent     float64 `json:"memory_usage_percent"`
}

// Float returns a pointer to v, for the optional measurement fields.
func Float(v float64) *float64 {
	return &v
}
