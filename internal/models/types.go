package models

import "context"

//go:generate mockgen -destination=mock_types.go -package=models wifi-monitor/internal/models Prober

// Prober reads raw link, connectivity, latency, DNS and host readings.
// Every call must return within a bounded time.
type Prober interface {
	ReadLink(ctx context.Context) (*LinkInfo, error)
	TestConnectivity(ctx context.Context, gateway string) ConnectivityResult
	MeasureLatency(ctx context.Context, targets []string, gateway string) LatencyResult
	Resolve(ctx context.Context, domains, servers []string) DnsResult
	ReadSystemCounters(ctx context.Context) (SystemCounters, error)
}

// Store is the query surface the reporting and dashboard paths read from.
type Store interface {
	LatestSnapshot(ctx context.Context) (*Snapshot, error)
	Snapshots(ctx context.Context, r TimeRange, limit int) ([]Snapshot, error)
	Series(ctx context.Context, metric string, r TimeRange) ([]SeriesPoint, error)
	Events(ctx context.Context, filter EventFilter) ([]Event, error)
	Statistics(ctx context.Context, r TimeRange) (PeriodStatistics, error)
	EventCountsByType(ctx context.Context, r TimeRange) ([]EventCount, error)
	Export(ctx context.Context, r TimeRange) (Export, error)
}

// EventFilter narrows an event query. Nil filters match everything.
type EventFilter struct {
	Range    TimeRange
	Severity *Severity
	Type     *EventType
}
