package monitor

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"wifi-monitor/internal/models"
)

// samplingWorker runs one cycle per tick. Cycles never overlap: ticks
// that fire while a cycle is running are dropped by the ticker.
func (m *Monitor) samplingWorker() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.config.Interval)
	defer ticker.Stop()

	// Immediate first cycle
	m.runCycle(m.ctx)

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.runCycle(m.ctx)
		}
	}
}

// runCycle collects, detects and stores one snapshot. Rolling state
// advances only once the snapshot is stored, so the stored history and
// the state the next cycle diffs against never disagree.
func (m *Monitor) runCycle(ctx context.Context) (models.Snapshot, error) {
	snapshot := m.assembler.Collect(ctx)

	events, next := Detect(snapshot, m.state, m.config.Thresholds)
	snapshot.Events = events

	if err := ctx.Err(); err != nil {
		return snapshot, err
	}

	if err := m.store.Append(ctx, snapshot); err != nil {
		m.log.Error().Err(err).Str("snapshot_id", snapshot.ID).Msg("Failed to store snapshot")
		return snapshot, err
	}
	m.state = &next

	m.logSnapshot(snapshot)
	if m.onSnapshot != nil {
		m.onSnapshot(snapshot)
	}

	return snapshot, nil
}

func (m *Monitor) logSnapshot(s models.Snapshot) {
	if l := s.Link; l != nil {
		m.log.Info().
			Str("ssid", l.SSID).
			Int("signal_dbm", l.SignalDBM).
			Int("signal_percent", l.SignalQuality).
			Int("channel", l.Channel).
			Stringer("band", l.Band).
			Msg("WiFi status")
	} else {
		m.log.Warn().Msg("WiFi not connected")
	}

	if avg := s.Latency.AvgMs; avg != nil {
		ev := m.log.Info().Float64("avg_ms", *avg).Float64("packet_loss", s.Latency.PacketLoss)
		if s.Latency.JitterMs != nil {
			ev = ev.Float64("jitter_ms", *s.Latency.JitterMs)
		}
		ev.Msg("Latency")
	}

	m.log.Info().
		Bool("connected", s.Connectivity.Connected).
		Bool("loopback", s.Connectivity.LoopbackReachable).
		Bool("router", s.Connectivity.RouterReachable).
		Bool("internet", s.Connectivity.InternetReachable).
		Int("dns_failures", s.DNS.Failures).
		Msg("Connectivity")

	for _, e := range s.Events {
		m.log.WithLevel(eventLevel(e.Severity)).
			Stringer("event_type", e.Type).
			Msg(e.Description)
	}
}

func eventLevel(sev models.Severity) zerolog.Level {
	switch sev {
	case models.SeverityCritical, models.SeverityError:
		return zerolog.ErrorLevel
	case models.SeverityWarning:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
