package database

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wifi-monitor/internal/models"
)

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "metrics.db"))
	require.NoError(t, err)
	require.NoError(t, db.InitSchema())
	t.Cleanup(func() { db.Close() })

	return db
}

func at(i int) time.Time {
	return base.Add(time.Duration(i) * 5 * time.Second)
}

func connectedSnapshot(id string, ts time.Time, latency float64) models.Snapshot {
	return models.Snapshot{
		ID:        id,
		Timestamp: ts,
		Link: &models.LinkInfo{
			SSID:          "home",
			BSSID:         "aa:bb:cc:dd:ee:01",
			SignalDBM:     -55,
			SignalQuality: 64,
			Channel:       36,
			FrequencyMHz:  5180,
			Band:          models.Band5GHz,
		},
		Connectivity: models.ConnectivityResult{
			Connected:         true,
			LoopbackReachable: true,
			RouterReachable:   true,
			InternetReachable: true,
		},
		Latency: models.LatencyResult{
			AvgMs:    models.Float(latency),
			JitterMs: models.Float(2),
		},
		Events: []models.Event{},
	}
}

func disconnectedSnapshot(id string, ts time.Time) models.Snapshot {
	return models.Snapshot{
		ID:        id,
		Timestamp: ts,
		Latency:   models.LatencyResult{PacketLoss: 100},
		Events:    []models.Event{},
	}
}

func withEvent(s models.Snapshot, typ models.EventType, sev models.Severity) models.Snapshot {
	s.Events = append(s.Events, models.Event{
		ID:          fmt.Sprintf("%s-e%d", s.ID, len(s.Events)),
		SnapshotID:  s.ID,
		Timestamp:   s.Timestamp,
		Type:        typ,
		Severity:    sev,
		Description: typ.String(),
		Details:     map[string]any{"index": float64(len(s.Events))},
	})
	return s
}

func TestAppendAndLatest(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	latest, err := db.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Append(ctx, connectedSnapshot(fmt.Sprintf("s%d", i), at(i), 10)))
	}

	latest, err = db.LatestSnapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "s2", latest.ID)
	assert.True(t, at(2).Equal(latest.Timestamp))
	require.NotNil(t, latest.Link)
	assert.Equal(t, models.Band5GHz, latest.Link.Band)
}

func TestSnapshotsOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	// Insert out of order; reads are ordered by timestamp.
	for _, i := range []int{3, 0, 4, 1, 2} {
		require.NoError(t, db.Append(ctx, connectedSnapshot(fmt.Sprintf("s%d", i), at(i), 10)))
	}

	all, err := db.Snapshots(ctx, models.TimeRange{}, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i, s := range all {
		assert.Equal(t, fmt.Sprintf("s%d", 4-i), s.ID)
	}

	limited, err := db.Snapshots(ctx, models.TimeRange{}, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "s4", limited[0].ID)

	ranged, err := db.Snapshots(ctx, models.TimeRange{Start: at(1), End: at(3)}, 0)
	require.NoError(t, err)
	require.Len(t, ranged, 3)
	assert.Equal(t, "s3", ranged[0].ID)
	assert.Equal(t, "s1", ranged[2].ID)

	inverted, err := db.Snapshots(ctx, models.TimeRange{Start: at(3), End: at(1)}, 0)
	require.NoError(t, err)
	assert.Empty(t, inverted)
}

func TestAppendIsAtomic(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	first := withEvent(connectedSnapshot("dup", at(0), 10), models.HighLatency, models.SeverityWarning)
	require.NoError(t, db.Append(ctx, first))

	// Same id, later timestamp: the snapshot insert fails, so neither the
	// event nor the series points may survive.
	second := withEvent(connectedSnapshot("dup", at(1), 99), models.BssidChange, models.SeverityWarning)
	second.Events[0].ID = "other-event"
	err := db.Append(ctx, second)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrPersistence)

	events, err := db.Events(ctx, models.EventFilter{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.HighLatency, events[0].Type)

	points, err := db.Series(ctx, models.MetricLatencyAvg, models.TimeRange{})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 10.0, points[0].Value)
}

func TestSeries(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	require.NoError(t, db.Append(ctx, connectedSnapshot("s0", at(0), 10)))
	require.NoError(t, db.Append(ctx, disconnectedSnapshot("s1", at(1))))
	require.NoError(t, db.Append(ctx, connectedSnapshot("s2", at(2), 30)))

	t.Run("ordered oldest first", func(t *testing.T) {
		points, err := db.Series(ctx, models.MetricLatencyAvg, models.TimeRange{})
		require.NoError(t, err)
		require.Len(t, points, 2)
		assert.Equal(t, 10.0, points[0].Value)
		assert.Equal(t, 30.0, points[1].Value)
		assert.True(t, at(0).Equal(points[0].Timestamp))
	})

	t.Run("booleans stored as zero or one", func(t *testing.T) {
		points, err := db.Series(ctx, models.MetricConnected, models.TimeRange{})
		require.NoError(t, err)
		require.Len(t, points, 3)
		assert.Equal(t, []float64{1, 0, 1}, []float64{points[0].Value, points[1].Value, points[2].Value})
	})

	t.Run("unknown metric is empty", func(t *testing.T) {
		points, err := db.Series(ctx, "no_such_metric", models.TimeRange{})
		require.NoError(t, err)
		assert.Empty(t, points)
	})

	t.Run("duplicate timestamp overwrites", func(t *testing.T) {
		require.NoError(t, db.Append(ctx, connectedSnapshot("s2b", at(2), 45)))

		points, err := db.Series(ctx, models.MetricLatencyAvg, models.TimeRange{Start: at(2)})
		require.NoError(t, err)
		require.Len(t, points, 1)
		assert.Equal(t, 45.0, points[0].Value)
	})
}

func TestEventsFilter(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	s0 := withEvent(connectedSnapshot("s0", at(0), 10), models.HighLatency, models.SeverityWarning)
	s1 := withEvent(disconnectedSnapshot("s1", at(1)), models.ConnectionDropped, models.SeverityCritical)
	s2 := withEvent(connectedSnapshot("s2", at(2), 10), models.ConnectionRestored, models.SeverityInfo)
	s2 = withEvent(s2, models.HighLatency, models.SeverityCritical)
	for _, s := range []models.Snapshot{s0, s1, s2} {
		require.NoError(t, db.Append(ctx, s))
	}

	critical := models.SeverityCritical
	highLatency := models.HighLatency
	bogusSeverity := models.Severity(42)
	bogusType := models.EventType(99)

	tests := []struct {
		name   string
		filter models.EventFilter
		want   []string
	}{
		{
			name:   "all newest first",
			filter: models.EventFilter{},
			want:   []string{"s2-e1", "s2-e0", "s1-e0", "s0-e0"},
		},
		{
			name:   "by severity",
			filter: models.EventFilter{Severity: &critical},
			want:   []string{"s2-e1", "s1-e0"},
		},
		{
			name:   "by type",
			filter: models.EventFilter{Type: &highLatency},
			want:   []string{"s2-e1", "s0-e0"},
		},
		{
			name:   "by type and severity",
			filter: models.EventFilter{Type: &highLatency, Severity: &critical},
			want:   []string{"s2-e1"},
		},
		{
			name:   "by range",
			filter: models.EventFilter{Range: models.TimeRange{End: at(1)}},
			want:   []string{"s1-e0", "s0-e0"},
		},
		{
			name:   "unknown severity",
			filter: models.EventFilter{Severity: &bogusSeverity},
			want:   []string{},
		},
		{
			name:   "unknown type",
			filter: models.EventFilter{Type: &bogusType},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := db.Events(ctx, tt.filter)
			require.NoError(t, err)

			ids := []string{}
			for _, e := range events {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	events, err := db.Events(ctx, models.EventFilter{Severity: &critical, Type: &highLatency})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "s2", events[0].SnapshotID)
	assert.Equal(t, 1.0, events[0].Details["index"])
}

func TestMalformedRecordsSkipped(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	require.NoError(t, db.Append(ctx, withEvent(connectedSnapshot("good", at(0), 10), models.HighLatency, models.SeverityWarning)))

	_, err := db.Exec(`INSERT INTO snapshots (id, timestamp, data) VALUES (?, ?, ?)`, "bad", formatTime(at(1)), "{not json")
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO events (id, snapshot_id, timestamp, event_type, severity, description, details)
        VALUES ('bad-e', 'good', ?, 'NotAnEvent', 'Warning', 'x', '{}')`, formatTime(at(1)))
	require.NoError(t, err)

	snapshots, err := db.Snapshots(ctx, models.TimeRange{}, 0)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, "good", snapshots[0].ID)

	events, err := db.Events(ctx, models.EventFilter{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "good-e0", events[0].ID)

	counts, err := db.EventCountsByType(ctx, models.TimeRange{})
	require.NoError(t, err)
	assert.Equal(t, []models.EventCount{{Type: models.HighLatency, Count: 1}}, counts)
}

func TestEventCountsByType(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	for i := 0; i < 6; i++ {
		s := withEvent(connectedSnapshot(fmt.Sprintf("s%d", i), at(i), 10), models.BssidChange, models.SeverityWarning)
		if i%3 == 0 {
			s = withEvent(s, models.ChannelChange, models.SeverityInfo)
			s = withEvent(s, models.DnsFailure, models.SeverityWarning)
		}
		require.NoError(t, db.Append(ctx, s))
	}

	counts, err := db.EventCountsByType(ctx, models.TimeRange{})
	require.NoError(t, err)
	assert.Equal(t, []models.EventCount{
		{Type: models.BssidChange, Count: 6},
		{Type: models.ChannelChange, Count: 2},
		{Type: models.DnsFailure, Count: 2},
	}, counts)

	empty, err := db.EventCountsByType(ctx, models.TimeRange{Start: at(100)})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	for i := 0; i < 4; i++ {
		s := withEvent(connectedSnapshot(fmt.Sprintf("s%d", i), at(i), 10), models.HighLatency, models.SeverityWarning)
		require.NoError(t, db.Append(ctx, s))
	}

	removed, err := db.Prune(ctx, at(2))
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	snapshots, err := db.Snapshots(ctx, models.TimeRange{}, 0)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, "s3", snapshots[0].ID)
	assert.Equal(t, "s2", snapshots[1].ID)

	events, err := db.Events(ctx, models.EventFilter{})
	require.NoError(t, err)
	assert.Len(t, events, 2)

	points, err := db.Series(ctx, models.MetricLatencyAvg, models.TimeRange{})
	require.NoError(t, err)
	assert.Len(t, points, 2)

	require.NoError(t, db.Vacuum(ctx))
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	require.NoError(t, db.Append(ctx, connectedSnapshot("s0", at(0), 10)))
	require.NoError(t, db.Append(ctx, withEvent(disconnectedSnapshot("s1", at(1)), models.ConnectionDropped, models.SeverityCritical)))
	require.NoError(t, db.Append(ctx, connectedSnapshot("s2", at(2), 20)))

	out, err := db.Export(ctx, models.TimeRange{})
	require.NoError(t, err)

	assert.False(t, out.ExportedAt.IsZero())
	require.Len(t, out.Snapshots, 3)
	assert.Equal(t, "s2", out.Snapshots[0].ID)
	assert.Equal(t, "s0", out.Snapshots[2].ID)
	require.Len(t, out.Events, 1)
	assert.Equal(t, models.ConnectionDropped, out.Events[0].Type)
	assert.Equal(t, 3, out.Statistics.SampleCount)
	assert.Equal(t, 1, out.Statistics.TotalDisconnections)
	assert.Equal(t, 1, out.Statistics.CriticalEvents)
}

func TestEventsCappedNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	// 11 snapshots x 100 events; the oldest snapshot's events fall off.
	for i := 0; i < 11; i++ {
		s := connectedSnapshot(fmt.Sprintf("s%02d", i), at(i), 10)
		for _i := 0; _i < 100; _i++ {
			s = withEvent(s, models.HighLatency, models.SeverityWarning)
		}
		require.NoError(t, db.Append(ctx, s))
	}

	events, err := db.Events(ctx, models.EventFilter{})
	require.NoError(t, err)
	require.Len(t, events, maxEvents)
	assert.Equal(t, "s10", events[0].SnapshotID)
	assert.Equal(t, "s01", events[len(events)-1].SnapshotID)
	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].Timestamp.After(events[i-1].Timestamp), "events must be newest first")
		assert.NotEqual(t, "s00", events[i].SnapshotID)
	}

	out, err := db.Export(ctx, models.TimeRange{})
	require.NoError(t, err)
	require.Len(t, out.Events, maxEvents)
	assert.Equal(t, "s10", out.Events[0].SnapshotID)
	assert.Equal(t, "s01", out.Events[len(out.Events)-1].SnapshotID)
	assert.Len(t, out.Snapshots, 11)
	assert.Equal(t, 1100, out.Statistics.WarningEvents)
}
