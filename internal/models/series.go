package models

// SeriesVocabularyVersion is bumped whenever a metric name is added,
// removed or changes meaning.
const SeriesVocabularyVersion = 1

// Flattened metric names.
const (
	MetricSignalDBM         = "signal_dbm"
	MetricSignalPercent     = "signal_percent"
	MetricChannel           = "channel"
	MetricLinkSpeed         = "link_speed"
	MetricLatencyLoopback   = "latency_loopback"
	MetricLatencyRouter     = "latency_router"
	MetricLatencyAvg        = "latency_avg"
	MetricLatencyMin        = "latency_min"
	MetricLatencyMax        = "latency_max"
	MetricJitter            = "jitter"
	MetricPacketLoss        = "packet_loss"
	MetricConnected         = "connected"
	MetricLoopbackReachable = "loopback_reachable"
	MetricRouterReachable   = "router_reachable"
	MetricInternetReachable = "internet_reachable"
	MetricHTTPResponseTime  = "http_response_time"
	MetricDNSResolutionTime = "dns_resolution_time"
	MetricCPUUsage          = "cpu_usage"
	MetricMemoryUsage       = "memory_usage"
)

var seriesVocabulary = []string{
	MetricSignalDBM,
	MetricSignalPercent,
	MetricChannel,
	MetricLinkSpeed,
	MetricLatencyLoopback,
	MetricLatencyRouter,
	MetricLatencyAvg,
	MetricLatencyMin,
	MetricLatencyMax,
	MetricJitter,
	MetricPacketLoss,
	MetricConnected,
	MetricLoopbackReachable,
	MetricRouterReachable,
	MetricInternetReachable,
	MetricHTTPResponseTime,
	MetricDNSResolutionTime,
	MetricCPUUsage,
	MetricMemoryUsage,
}

// SeriesVocabulary returns a copy of every known metric name.
func SeriesVocabulary() []string {
	return append([]string(nil), seriesVocabulary...)
}

// IsKnownMetric reports whether name belongs to the vocabulary.
func IsKnownMetric(name string) bool {
	for _, m := range seriesVocabulary {
		if m == name {
			return true
		}
	}
	return false
}

// MetricPoint is one flattened value of a snapshot.
type MetricPoint struct {
	Name  string
	Value float64
}

// Flatten explodes the numeric fields of a snapshot into named points.
// Link fields appear only when the link is present; optional
// measurements only when they were taken.
func Flatten(s Snapshot) []MetricPoint {
	points := make([]MetricPoint, 0, len(seriesVocabulary))
	add := func(name string, v float64) {
		points = append(points, MetricPoint{Name: name, Value: v})
	}
	addOpt := func(name string, v *float64) {
		if v != nil {
			add(name, *v)
		}
	}

	if l := s.Link; l != nil {
		add(MetricSignalDBM, float64(l.SignalDBM))
		add(MetricSignalPercent, float64(l.SignalQuality))
		add(MetricChannel, float64(l.Channel))
		add(MetricLinkSpeed, float64(l.LinkSpeedMbps))
	}

	addOpt(MetricLatencyLoopback, s.Latency.LoopbackMs)
	addOpt(MetricLatencyRouter, s.Latency.RouterMs)
	addOpt(MetricLatencyAvg, s.Latency.AvgMs)
	addOpt(MetricLatencyMin, s.Latency.MinMs)
	addOpt(MetricLatencyMax, s.Latency.MaxMs)
	addOpt(MetricJitter, s.Latency.JitterMs)
	add(MetricPacketLoss, s.Latency.PacketLoss)

	add(MetricConnected, boolValue(s.Connectivity.Connected))
	add(MetricLoopbackReachable, boolValue(s.Connectivity.LoopbackReachable))
	add(MetricRouterReachable, boolValue(s.Connectivity.RouterReachable))
	add(MetricInternetReachable, boolValue(s.Connectivity.InternetReachable))
	if s.Connectivity.HTTPResponseMs != nil {
		add(MetricHTTPResponseTime, float64(*s.Connectivity.HTTPResponseMs))
	}

	addOpt(MetricDNSResolutionTime, s.DNS.AvgMs)

	add(MetricCPUUsage, s.System.CPUPercent)
	add(MetricMemoryUsage, s.System.MemoryPercent)

	return points
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
