package monitor

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"wifi-monitor/internal/config"
	"wifi-monitor/internal/logger"
	"wifi-monitor/internal/models"
)

// Assembler turns one round of probe readings into a Snapshot.
type Assembler struct {
	prober     models.Prober
	targets    []string
	dnsDomains []string
	dnsServers []string
	now        func() time.Time
	log        zerolog.Logger
}

// NewAssembler creates an Assembler reading from prober
func NewAssembler(prober models.Prober, cfg config.Config) *Assembler {
	return &Assembler{
		prober:     prober,
		targets:    cfg.PingTargets,
		dnsDomains: cfg.DNSDomains,
		dnsServers: cfg.DNSServers,
		now:        time.Now,
		log:        logger.WithComponent("assembler"),
	}
}

// Collect runs every probe once. A failing probe degrades only its own
// field; Collect itself never fails. It neither persists nor detects.
func (a *Assembler) Collect(ctx context.Context) models.Snapshot {
	s := models.NewSnapshot(a.now())

	link, err := a.prober.ReadLink(ctx)
	if err != nil {
		a.log.Warn().Err(err).Msg("Link probe failed")
		link = nil
	}
	s.Link = link

	var gateway string
	if link != nil {
		gateway = link.Gateway
	}

	counters, err := a.prober.ReadSystemCounters(ctx)
	if err != nil {
		a.log.Warn().Err(err).Msg("System counters incomplete")
	}
	s.System = counters

	s.Connectivity = a.prober.TestConnectivity(ctx, gateway)
	s.Connectivity.Connected = link != nil
	if gateway == "" {
		s.Connectivity.RouterReachable = s.Connectivity.Connected
	}

	s.Latency = a.prober.MeasureLatency(ctx, a.targets, gateway)

	servers := a.dnsServers
	if len(servers) == 0 && link != nil {
		servers = link.DNSServers
	}
	s.DNS = a.prober.Resolve(ctx, a.dnsDomains, servers)

	return s
}
