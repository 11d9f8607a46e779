package database

import (
	"context"
	"encoding/json"
	"fmt"

	"wifi-monitor/internal/models"
)

// Append records a snapshot, its events and its flattened series points
// in a single transaction. Either all of them land or none do.
func (db *DB) Append(ctx context.Context, s models.Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", s.ID, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return persistErr("begin append", err)
	}
	defer tx.Rollback()

	ts := formatTime(s.Timestamp)

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, timestamp, data) VALUES (?, ?, ?)`,
		s.ID, ts, string(data),
	); err != nil {
		return persistErr(fmt.Sprintf("insert snapshot %s", s.ID), err)
	}

	for _, e := range s.Events {
		details, err := json.Marshal(e.Details)
		if err != nil {
			return fmt.Errorf("encode event %s details: %w", e.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO events (id, snapshot_id, timestamp, event_type, severity, description, details)
            VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.ID, s.ID, formatTime(e.Timestamp), e.Type.String(), e.Severity.String(), e.Description, string(details),
		); err != nil {
			return persistErr(fmt.Sprintf("insert event %s", e.ID), err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO timeseries (timestamp, metric_name, value) VALUES (?, ?, ?)`)
	if err != nil {
		return persistErr("prepare series insert", err)
	}
	defer stmt.Close()

	for _, p := range models.Flatten(s) {
		if _, err := stmt.ExecContext(ctx, ts, p.Name, p.Value); err != nil {
			return persistErr(fmt.Sprintf("insert series %s", p.Name), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return persistErr("commit append", err)
	}

	db.log.Debug().Str("snapshot_id", s.ID).Int("events", len(s.Events)).Msg("Saved snapshot")
	return nil
}
