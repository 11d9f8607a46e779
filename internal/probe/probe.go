// Package probe reads wireless link, network path and host health from
// the local system.
package probe

import (
	"context"
	"net/http"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	"wifi-monitor/internal/logger"
	"wifi-monitor/internal/models"
)

// Options configures a System prober.
type Options struct {
	Interface    string
	Timeout      time.Duration
	PingCount    int
	HTTPProbeURL string
}

type (
	commandFunc func(ctx context.Context, name string, args ...string) (string, error)
	pingFunc    func(ctx context.Context, target string, count int) models.PingResult
	lookupFunc  func(ctx context.Context, server, domain string) ([]string, error)
)

// System probes the host it runs on using iw, ip, ICMP, HTTP and DNS.
type System struct {
	opts   Options
	client *http.Client
	log    zerolog.Logger

	command commandFunc
	ping    pingFunc
	lookup  lookupFunc
}

var _ models.Prober = (*System)(nil)

// New creates a System prober
func New(opts Options) *System {
	if opts.PingCount <= 0 {
		opts.PingCount = 4
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 3 * time.Second
	}

	s := &System{
		opts:    opts,
		client:  &http.Client{Timeout: opts.Timeout},
		log:     logger.WithComponent("probe"),
		command: runCommand,
	}
	s.ping = s.icmpPing
	s.lookup = s.dnsLookup
	return s
}

func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	return string(out), err
}

func (s *System) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opts.Timeout)
}
