package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"wifi-monitor/internal/logger"
	"wifi-monitor/internal/models"
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// DB wraps sql.DB with the metrics store operations
type DB struct {
	*sql.DB
	log zerolog.Logger
}

var _ models.Store = (*DB)(nil)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// New creates a new database connection
func New(path string) (*DB, error) {
	// WAL lets report and dashboard readers run beside the sampling writer.
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(1)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("database open failed: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database open failed: %w", err)
	}

	return &DB{DB: db, log: logger.WithComponent("store")}, nil
}

// InitSchema creates all necessary tables
func (db *DB) InitSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS snapshots (
        id TEXT PRIMARY KEY,
        timestamp TEXT NOT NULL,
        data TEXT NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_snapshots_timestamp ON snapshots(timestamp);

    CREATE TABLE IF NOT EXISTS events (
        id TEXT PRIMARY KEY,
        snapshot_id TEXT NOT NULL REFERENCES snapshots(id),
        timestamp TEXT NOT NULL,
        event_type TEXT NOT NULL,
        severity TEXT NOT NULL,
        description TEXT NOT NULL,
        details TEXT
    );

    CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp);
    CREATE INDEX IF NOT EXISTS idx_events_type ON events(event_type);
    CREATE INDEX IF NOT EXISTS idx_events_severity ON events(severity);
    CREATE INDEX IF NOT EXISTS idx_events_snapshot ON events(snapshot_id);

    -- One row per (timestamp, metric); re-inserting overwrites
    CREATE TABLE IF NOT EXISTS timeseries (
        timestamp TEXT NOT NULL,
        metric_name TEXT NOT NULL,
        value REAL NOT NULL,
        PRIMARY KEY (timestamp, metric_name)
    );

    CREATE INDEX IF NOT EXISTS idx_timeseries_metric ON timeseries(metric_name, timestamp);
    `

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}

	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// rangeClause appends timestamp bounds for r to a WHERE clause.
func rangeClause(query string, args []any, r models.TimeRange) (string, []any) {
	if !r.Start.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, formatTime(r.Start))
	}
	if !r.End.IsZero() {
		query += " AND timestamp <= ?"
		args = append(args, formatTime(r.End))
	}
	return query, args
}

func persistErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, models.ErrPersistence, err)
}
