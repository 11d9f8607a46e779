package database

import (
	"context"
	"time"
)

// Prune deletes snapshots older than cutoff together with their events
// and series points, in one transaction. It returns the number of
// snapshots removed.
func (db *DB) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	ts := formatTime(cutoff)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, persistErr("begin prune", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM events WHERE snapshot_id IN (SELECT id FROM snapshots WHERE timestamp < ?)`, ts); err != nil {
		return 0, persistErr("prune events", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM timeseries WHERE timestamp < ?`, ts); err != nil {
		return 0, persistErr("prune series", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE timestamp < ?`, ts)
	if err != nil {
		return 0, persistErr("prune snapshots", err)
	}
	removed, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, persistErr("commit prune", err)
	}

	return removed, nil
}

// Vacuum reclaims space after large prunes.
func (db *DB) Vacuum(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, "VACUUM"); err != nil {
		return persistErr("vacuum", err)
	}
	return nil
}
