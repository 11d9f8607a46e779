package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"wifi-monitor/internal/config"
	"wifi-monitor/internal/logger"
	"wifi-monitor/internal/models"
)

// Store is the write side of the metrics store used by the sampling loop.
type Store interface {
	Append(ctx context.Context, s models.Snapshot) error
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
	Vacuum(ctx context.Context) error
}

// Monitor owns the sampling loop and the rolling state it diffs against.
type Monitor struct {
	config     config.Config
	store      Store
	assembler  *Assembler
	state      *models.RollingState
	onSnapshot func(models.Snapshot)
	log        zerolog.Logger
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
}

// New creates a new Monitor
func New(cfg config.Config, store Store, prober models.Prober) *Monitor {
	ctx, cancel := context.WithCancel(context.Background())
	return &Monitor{
		config:    cfg,
		store:     store,
		assembler: NewAssembler(prober, cfg),
		log:       logger.WithComponent("monitor"),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// OnSnapshot registers fn to receive every snapshot after it is stored.
// Must be called before Start.
func (m *Monitor) OnSnapshot(fn func(models.Snapshot)) {
	m.onSnapshot = fn
}

// Start begins the monitoring process
func (m *Monitor) Start() error {
	m.log.Info().
		Dur("interval", m.config.Interval).
		Strs("targets", m.config.PingTargets).
		Msg("Starting monitor")

	m.wg.Add(1)
	go m.samplingWorker()

	if m.config.Retention > 0 {
		m.wg.Add(1)
		go m.maintenanceWorker()
	}

	return nil
}

// Stop cancels the loop. A cycle in flight is abandoned, never stored.
func (m *Monitor) Stop() {
	m.log.Info().Msg("Stopping monitor")
	m.cancel()
}

// Wait blocks until all goroutines finish
func (m *Monitor) Wait() {
	m.wg.Wait()
	m.log.Info().Msg("Monitor stopped")
}
