package database

import (
	"context"
	"database/sql"
	"time"

	"wifi-monitor/internal/models"
)

// Export bundles statistics, events and snapshots for r. All three are
// read inside one transaction so they describe the same stored state.
func (db *DB) Export(ctx context.Context, r models.TimeRange) (models.Export, error) {
	out := models.Export{ExportedAt: time.Now().UTC()}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return out, persistErr("begin export", err)
	}
	defer tx.Rollback()

	ascending, err := db.querySnapshots(ctx, tx, r, 0, true)
	if err != nil {
		return out, err
	}
	out.Statistics = ComputeStatistics(ascending)

	out.Snapshots = make([]models.Snapshot, len(ascending))
	for i, s := range ascending {
		out.Snapshots[len(ascending)-1-i] = s
	}

	if out.Events, err = db.queryEvents(ctx, tx, models.EventFilter{Range: r}); err != nil {
		return out, err
	}

	return out, nil
}
