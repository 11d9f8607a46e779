package database

import (
	"context"
	"database/sql"
	"sort"

	"wifi-monitor/internal/models"
)

// Statistics folds every snapshot in r into period statistics. Nothing
// is cached; the same stored range always yields the same result.
func (db *DB) Statistics(ctx context.Context, r models.TimeRange) (models.PeriodStatistics, error) {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return models.PeriodStatistics{}, persistErr("begin statistics", err)
	}
	defer tx.Rollback()

	snapshots, err := db.querySnapshots(ctx, tx, r, 0, true)
	if err != nil {
		return models.PeriodStatistics{}, err
	}
	return ComputeStatistics(snapshots), nil
}

// ComputeStatistics folds snapshots ordered oldest first.
func ComputeStatistics(snapshots []models.Snapshot) models.PeriodStatistics {
	var stats models.PeriodStatistics
	if len(snapshots) == 0 {
		return stats
	}

	var (
		signals   []int
		qualities []float64
		latencies []float64
		jitters   []float64
		lossSum   float64
		connected int
		internet  int
	)

	// Presence before the first sample is unknown, so a range that opens
	// disconnected does not count as a drop.
	wasConnected := snapshots[0].Connected()

	for _, s := range snapshots {
		if s.Connected() {
			signals = append(signals, s.Link.SignalDBM)
			qualities = append(qualities, float64(s.Link.SignalQuality))
			connected++
			wasConnected = true
		} else {
			if wasConnected {
				stats.TotalDisconnections++
			}
			wasConnected = false
		}

		if s.Connectivity.InternetReachable {
			internet++
		}
		if s.Latency.AvgMs != nil {
			latencies = append(latencies, *s.Latency.AvgMs)
		}
		if s.Latency.JitterMs != nil {
			jitters = append(jitters, *s.Latency.JitterMs)
		}
		lossSum += s.Latency.PacketLoss

		for _, e := range s.Events {
			switch e.Severity {
			case models.SeverityInfo:
				stats.InfoEvents++
			case models.SeverityWarning:
				stats.WarningEvents++
			case models.SeverityError:
				stats.ErrorEvents++
			case models.SeverityCritical:
				stats.CriticalEvents++
			}
		}
	}

	n := len(snapshots)
	stats.SampleCount = n
	stats.StartTime = snapshots[0].Timestamp
	stats.EndTime = snapshots[n-1].Timestamp

	if len(signals) > 0 {
		sum, lo, hi := 0, signals[0], signals[0]
		for _, v := range signals {
			sum += v
			lo = min(lo, v)
			hi = max(hi, v)
		}
		stats.SignalAvgDBM = models.Float(float64(sum) / float64(len(signals)))
		stats.SignalMinDBM = &lo
		stats.SignalMaxDBM = &hi
		stats.SignalQualityAvg = models.Float(mean(qualities))
	}

	if len(latencies) > 0 {
		sort.Float64s(latencies)
		stats.LatencyAvgMs = models.Float(mean(latencies))
		stats.LatencyMinMs = models.Float(latencies[0])
		stats.LatencyMaxMs = models.Float(latencies[len(latencies)-1])
		stats.LatencyP95Ms = models.Float(nearestRank(latencies, 0.95))
		stats.LatencyP99Ms = models.Float(nearestRank(latencies, 0.99))
	}

	if len(jitters) > 0 {
		stats.JitterAvgMs = models.Float(mean(jitters))
	}

	stats.PacketLossAvgPct = lossSum / float64(n)
	stats.ConnectionUptimePct = float64(connected) * 100 / float64(n)
	stats.InternetUptimePct = float64(internet) * 100 / float64(n)

	return stats
}

// nearestRank indexes sorted at floor(n*p), clamped to the last element.
func nearestRank(sorted []float64, p float64) float64 {
	idx := int(float64(len(sorted)) * p)
	if idx > len(sorted)-1 {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
