package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"wifi-monitor/internal/models"
)

// maxEvents caps every event query.
const maxEvents = 1000

// LatestSnapshot returns the newest stored snapshot, or nil when empty.
func (db *DB) LatestSnapshot(ctx context.Context) (*models.Snapshot, error) {
	snapshots, err := db.Snapshots(ctx, models.TimeRange{}, 1)
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, nil
	}
	return &snapshots[0], nil
}

// Snapshots returns snapshots in r, newest first. limit <= 0 means no limit.
func (db *DB) Snapshots(ctx context.Context, r models.TimeRange, limit int) ([]models.Snapshot, error) {
	return db.querySnapshots(ctx, db.DB, r, limit, false)
}

func (db *DB) querySnapshots(ctx context.Context, q querier, r models.TimeRange, limit int, ascending bool) ([]models.Snapshot, error) {
	if !r.Valid() {
		return []models.Snapshot{}, nil
	}

	query, args := rangeClause(`SELECT id, data FROM snapshots WHERE 1=1`, nil, r)
	if ascending {
		query += " ORDER BY timestamp ASC, id ASC"
	} else {
		query += " ORDER BY timestamp DESC, id DESC"
	}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistErr("query snapshots", err)
	}
	defer rows.Close()

	snapshots := []models.Snapshot{}
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			continue
		}

		var s models.Snapshot
		if err := json.Unmarshal([]byte(data), &s); err != nil {
			db.log.Warn().Err(fmt.Errorf("%w: %w", models.ErrMalformedRecord, err)).
				Str("snapshot_id", id).Msg("Skipping undecodable snapshot")
			continue
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("read snapshots", err)
	}

	return snapshots, nil
}

// Series returns the stored values of one metric in r, oldest first.
// Names outside the metric vocabulary yield an empty result.
func (db *DB) Series(ctx context.Context, metric string, r models.TimeRange) ([]models.SeriesPoint, error) {
	points := []models.SeriesPoint{}
	if !r.Valid() || !models.IsKnownMetric(metric) {
		return points, nil
	}

	query, args := rangeClause(`SELECT timestamp, value FROM timeseries WHERE metric_name = ?`, []any{metric}, r)
	query += " ORDER BY timestamp ASC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistErr("query series", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ts string
		var p models.SeriesPoint
		if err := rows.Scan(&ts, &p.Value); err != nil {
			continue
		}
		if p.Timestamp, err = parseTime(ts); err != nil {
			continue
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("read series", err)
	}

	return points, nil
}

// Events returns events matching filter, newest first, capped at 1000.
func (db *DB) Events(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	return db.queryEvents(ctx, db.DB, filter)
}

func (db *DB) queryEvents(ctx context.Context, q querier, filter models.EventFilter) ([]models.Event, error) {
	events := []models.Event{}
	if !filter.Range.Valid() {
		return events, nil
	}
	if (filter.Severity != nil && !filter.Severity.Valid()) || (filter.Type != nil && !filter.Type.Valid()) {
		return events, nil
	}

	query, args := rangeClause(`
        SELECT id, snapshot_id, timestamp, event_type, severity, description, details
        FROM events WHERE 1=1`, nil, filter.Range)
	if filter.Severity != nil {
		query += " AND severity = ?"
		args = append(args, filter.Severity.String())
	}
	if filter.Type != nil {
		query += " AND event_type = ?"
		args = append(args, filter.Type.String())
	}
	query += " ORDER BY timestamp DESC, id DESC LIMIT ?"
	args = append(args, maxEvents)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistErr("query events", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, snapshotID, ts, eventType, severity, description string
		var details sql.NullString
		if err := rows.Scan(&id, &snapshotID, &ts, &eventType, &severity, &description, &details); err != nil {
			continue
		}

		e, err := decodeEvent(id, snapshotID, ts, eventType, severity, description, details)
		if err != nil {
			db.log.Warn().Err(err).Str("event_id", id).Msg("Skipping undecodable event")
			continue
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("read events", err)
	}

	return events, nil
}

func decodeEvent(id, snapshotID, ts, eventType, severity, description string, details sql.NullString) (models.Event, error) {
	e := models.Event{ID: id, SnapshotID: snapshotID, Description: description}

	var err error
	if e.Timestamp, err = parseTime(ts); err != nil {
		return e, fmt.Errorf("%w: timestamp: %w", models.ErrMalformedRecord, err)
	}
	if e.Type, err = models.ParseEventType(eventType); err != nil {
		return e, fmt.Errorf("%w: %w", models.ErrMalformedRecord, err)
	}
	if e.Severity, err = models.ParseSeverity(severity); err != nil {
		return e, fmt.Errorf("%w: %w", models.ErrMalformedRecord, err)
	}
	if details.Valid && details.String != "" {
		if err := json.Unmarshal([]byte(details.String), &e.Details); err != nil {
			return e, fmt.Errorf("%w: details: %w", models.ErrMalformedRecord, err)
		}
	}
	return e, nil
}

// EventCountsByType counts events per type in r, highest count first.
// Ties are ordered by type name.
func (db *DB) EventCountsByType(ctx context.Context, r models.TimeRange) ([]models.EventCount, error) {
	counts := []models.EventCount{}
	if !r.Valid() {
		return counts, nil
	}

	query, args := rangeClause(`SELECT event_type, COUNT(*) AS count FROM events WHERE 1=1`, nil, r)
	query += " GROUP BY event_type ORDER BY count DESC, event_type ASC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistErr("query event counts", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			continue
		}
		et, err := models.ParseEventType(name)
		if err != nil {
			db.log.Warn().Err(err).Msg("Skipping unknown event type in counts")
			continue
		}
		counts = append(counts, models.EventCount{Type: et, Count: count})
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("read event counts", err)
	}

	return counts, nil
}
