package monitor

import (
	"time"
)

// maintenanceWorker prunes data older than the retention window hourly.
func (m *Monitor) maintenanceWorker() {
	defer m.wg.Done()

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	// Run immediately on start
	m.performMaintenance()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.performMaintenance()
		}
	}
}

func (m *Monitor) performMaintenance() {
	cutoff := time.Now().Add(-m.config.Retention)

	removed, err := m.store.Prune(m.ctx, cutoff)
	if err != nil {
		m.log.Error().Err(err).Msg("Retention pruning failed")
		return
	}
	if removed > 0 {
		if err := m.store.Vacuum(m.ctx); err != nil {
			m.log.Warn().Err(err).Msg("Vacuum failed")
		}
	}
	m.log.Info().Int64("snapshots_removed", removed).Time("cutoff", cutoff).Msg("Maintenance complete")
}
