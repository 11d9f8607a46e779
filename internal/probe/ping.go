package probe

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/go-ping/ping"
	"golang.org/x/sync/errgroup"

	"wifi-monitor/internal/models"
)

const loopback = "127.0.0.1"

// icmpPing sends count echo requests to target. Failures are reported in
// the result, never as an error.
func (s *System) icmpPing(ctx context.Context, target string, count int) models.PingResult {
	result := models.PingResult{
		Target:      target,
		PacketsSent: count,
		PacketLoss:  100,
		TimesMs:     []float64{},
	}

	pinger, err := ping.NewPinger(target)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	pinger.Count = count
	pinger.Interval = 200 * time.Millisecond
	pinger.Timeout = s.opts.Timeout
	pinger.SetPrivileged(false)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			pinger.Stop()
		case <-done:
		}
	}()

	if err := pinger.Run(); err != nil {
		result.Error = err.Error()
		return result
	}

	stats := pinger.Statistics()
	if stats.IPAddr != nil {
		result.ResolvedIP = stats.IPAddr.String()
	}
	result.PacketsSent = stats.PacketsSent
	result.PacketsReceived = stats.PacketsRecv
	if stats.PacketsSent > 0 {
		result.PacketLoss = float64(stats.PacketsSent-stats.PacketsRecv) / float64(stats.PacketsSent) * 100
	}
	for _, rtt := range stats.Rtts {
		result.TimesMs = append(result.TimesMs, ms(rtt))
	}
	if stats.PacketsRecv > 0 {
		result.MinMs = models.Float(ms(stats.MinRtt))
		result.AvgMs = models.Float(ms(stats.AvgRtt))
		result.MaxMs = models.Float(ms(stats.MaxRtt))
		result.StdDevMs = models.Float(ms(stats.StdDevRtt))
	}

	return result
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// MeasureLatency pings loopback, the gateway (when known) and every
// target concurrently, then summarizes the individual round trips.
func (s *System) MeasureLatency(ctx context.Context, targets []string, gateway string) models.LatencyResult {
	results := make([]models.PingResult, len(targets))
	var loop, router models.PingResult

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loop = s.ping(ctx, loopback, s.opts.PingCount)
		return nil
	})
	if gateway != "" {
		g.Go(func() error {
			router = s.ping(ctx, gateway, s.opts.PingCount)
			return nil
		})
	}
	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			results[i] = s.ping(ctx, target, s.opts.PingCount)
			return nil
		})
	}
	g.Wait()

	latency := summarize(results)
	latency.LoopbackMs = loop.AvgMs
	latency.RouterMs = router.AvgMs
	return latency
}

// summarize folds per-target results into aggregate latency. Jitter is
// the population standard deviation of every round trip and needs at
// least two samples.
func summarize(results []models.PingResult) models.LatencyResult {
	latency := models.LatencyResult{Targets: results}
	if latency.Targets == nil {
		latency.Targets = []models.PingResult{}
	}

	var times []float64
	sent, received := 0, 0
	for _, r := range results {
		times = append(times, r.TimesMs...)
		sent += r.PacketsSent
		received += r.PacketsReceived
	}

	if sent > 0 {
		latency.PacketLoss = float64(sent-received) / float64(sent) * 100
	}

	if len(times) == 0 {
		return latency
	}

	sort.Float64s(times)
	var sum float64
	for _, t := range times {
		sum += t
	}
	mean := sum / float64(len(times))

	latency.MinMs = models.Float(times[0])
	latency.MaxMs = models.Float(times[len(times)-1])
	latency.AvgMs = models.Float(mean)

	if len(times) > 1 {
		var variance float64
		for _, t := range times {
			variance += (t - mean) * (t - mean)
		}
		latency.JitterMs = models.Float(math.Sqrt(variance / float64(len(times))))
	}

	return latency
}
