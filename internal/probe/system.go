package probe

import (
	"context"
	"errors"
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"

	"wifi-monitor/internal/models"
)

// ReadSystemCounters samples host network counters and load. Each reading
// that fails stays zero; the joined error reports which ones.
func (s *System) ReadSystemCounters(ctx context.Context) (models.SystemCounters, error) {
	var counters models.SystemCounters
	var errs []error

	if io, err := net.IOCountersWithContext(ctx, false); err != nil {
		errs = append(errs, fmt.Errorf("network counters: %w", err))
	} else {
		for _, c := range io {
			counters.BytesSent += c.BytesSent
			counters.BytesReceived += c.BytesRecv
			counters.PacketsSent += c.PacketsSent
			counters.PacketsReceived += c.PacketsRecv
			counters.ErrorsIn += c.Errin
			counters.ErrorsOut += c.Errout
			counters.DropsIn += c.Dropin
			counters.DropsOut += c.Dropout
		}
	}

	if conns, err := net.ConnectionsWithContext(ctx, "tcp"); err != nil {
		errs = append(errs, fmt.Errorf("connections: %w", err))
	} else {
		for _, c := range conns {
			if c.Status == "ESTABLISHED" {
				counters.ActiveConnections++
			}
		}
	}

	if pct, err := cpu.PercentWithContext(ctx, 0, false); err != nil {
		errs = append(errs, fmt.Errorf("cpu usage: %w", err))
	} else if len(pct) > 0 {
		counters.CPUPercent = pct[0]
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("memory usage: %w", err))
	} else {
		counters.MemoryPercent = vm.UsedPercent
	}

	if err := errors.Join(errs...); err != nil {
		return counters, fmt.Errorf("%w: %w", models.ErrProbeFailure, err)
	}
	return counters, nil
}
