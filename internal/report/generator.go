package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"wifi-monitor/internal/logger"
	"wifi-monitor/internal/models"
)

// Generator writes the text report and charts for a time range.
type Generator struct {
	store models.Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewGenerator creates a new report generator
func NewGenerator(store models.Store) *Generator {
	return &Generator{
		store: store,
		log:   logger.WithComponent("report"),
		now:   time.Now,
	}
}

// GenerateReport creates a report directory under outputDir holding
// summary.txt and the PNG charts, and returns its path. Failing to build
// the summary fails the call; a chart that cannot be drawn is skipped.
func (g *Generator) GenerateReport(ctx context.Context, outputDir string, r models.TimeRange) (string, error) {
	if !r.Valid() {
		return "", fmt.Errorf("%w: start is after end", models.ErrInvalidRange)
	}

	timestamp := g.now().Format("2006-01-02_15-04-05")
	reportDir := filepath.Join(outputDir, fmt.Sprintf("wifi_report_%s", timestamp))
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	if err := g.generateTextReport(ctx, reportDir, r); err != nil {
		return "", fmt.Errorf("failed to generate text report: %w", err)
	}

	charts := []struct {
		name string
		fn   func(context.Context, string, models.TimeRange) error
	}{
		{"signal", g.generateSignalChart},
		{"latency", g.generateLatencyChart},
		{"availability", g.generateAvailabilityChart},
		{"events by type", g.generateEventChart},
	}
	for _, c := range charts {
		if err := c.fn(ctx, reportDir, r); err != nil {
			g.log.Warn().Err(err).Str("chart", c.name).Msg("Failed to generate chart")
		}
	}

	g.log.Info().Str("dir", reportDir).Msg("Report generated")
	return reportDir, nil
}

// generateTextReport writes summary.txt from the stored statistics.
func (g *Generator) generateTextReport(ctx context.Context, outputDir string, r models.TimeRange) error {
	stats, err := g.store.Statistics(ctx, r)
	if err != nil {
		return err
	}
	// Only critical events are listed; filtering in the query keeps the
	// event cap from hiding them behind newer low-severity ones.
	critical := models.SeverityCritical
	events, err := g.store.Events(ctx, models.EventFilter{Range: r, Severity: &critical})
	if err != nil {
		return err
	}
	counts, err := g.store.EventCountsByType(ctx, r)
	if err != nil {
		return err
	}

	file, err := os.Create(filepath.Join(outputDir, "summary.txt"))
	if err != nil {
		return err
	}
	defer file.Close()

	return Render(file, stats, events, counts)
}
