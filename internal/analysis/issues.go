package analysis

import (
	"fmt"

	"wifi-monitor/internal/models"
)

// countOf looks up one type in the per-type histogram.
func countOf(counts []models.EventCount, t models.EventType) int {
	for _, c := range counts {
		if c.Type == t {
			return c.Count
		}
	}
	return 0
}

// Issues lists every problem the period shows. Rules are independent;
// all matching rules contribute, in a fixed order.
func Issues(stats models.PeriodStatistics, counts []models.EventCount) []string {
	issues := []string{}
	if stats.SampleCount == 0 {
		return issues
	}
	add := func(format string, args ...any) {
		issues = append(issues, fmt.Sprintf(format, args...))
	}

	if stats.TotalDisconnections > 0 {
		add("WiFi connection dropped %d time(s) during the period", stats.TotalDisconnections)
	}
	if stats.ConnectionUptimePct < 99 {
		add("WiFi connection uptime is only %.1f%% (expected above 99%%)", stats.ConnectionUptimePct)
	}
	if stats.InternetUptimePct < 99 {
		add("Internet uptime is only %.1f%% (expected above 99%%)", stats.InternetUptimePct)
	}

	if avg := stats.SignalAvgDBM; avg != nil && *avg < -75 {
		add("Average signal is weak at %.0f dBm (aim for better than -70 dBm)", *avg)
	}
	if low := stats.SignalMinDBM; low != nil && *low < -85 {
		add("Signal fell to a critically low %d dBm", *low)
	}

	if avg := stats.LatencyAvgMs; avg != nil && *avg > 100 {
		add("Average latency is high at %.1fms (under 50ms is good)", *avg)
	}
	if p95 := stats.LatencyP95Ms; p95 != nil && *p95 > 200 {
		add("95th percentile latency is %.1fms, so spikes are frequent", *p95)
	}

	if jitter := stats.JitterAvgMs; jitter != nil && *jitter > 30 {
		add("High jitter (%.1fms) will disturb calls, games and streaming", *jitter)
	}

	if stats.PacketLossAvgPct > 1 {
		add("Significant packet loss (%.2f%%) is degrading connections", stats.PacketLossAvgPct)
	}

	for _, c := range counts {
		if c.Count <= 5 {
			continue
		}
		switch c.Type {
		case models.BssidChange:
			add("Frequent BSSID changes (%d) suggest the device keeps roaming between access points", c.Count)
		case models.ChannelChange:
			add("Frequent channel changes (%d) point to interference or router auto-channel selection", c.Count)
		case models.BandSwitch:
			add("Frequent band switching (%d) points to an unstable 5GHz link or band steering", c.Count)
		case models.DnsFailure:
			add("Repeated DNS failures (%d) point to resolver problems", c.Count)
		}
	}

	return issues
}

// Recommendations suggests fixes for the same conditions Issues detects,
// plus a closing general tip whenever anything else fired.
func Recommendations(stats models.PeriodStatistics, counts []models.EventCount) []string {
	recs := []string{}
	if stats.SampleCount == 0 {
		return recs
	}
	add := func(r ...string) {
		recs = append(recs, r...)
	}

	if avg := stats.SignalAvgDBM; avg != nil && *avg < -75 {
		add(
			"Move closer to the router or access point",
			"Add a WiFi extender or mesh node to cover the weak area",
			"Remove physical obstructions between the device and the router",
		)
	}

	if countOf(counts, models.BandSwitch) > 3 {
		add(
			"Disable band steering on the router and pin the device to 5GHz",
			"If 5GHz stays unstable, use 2.4GHz for more range at lower speed",
		)
	}
	if countOf(counts, models.ChannelChange) > 5 {
		add(
			"Scan with a WiFi analyzer to find the least congested channel",
			"Set a fixed router channel instead of automatic selection",
		)
	}
	if countOf(counts, models.BssidChange) > 5 {
		add(
			"With several access points, give them distinct SSIDs or configure roaming properly",
			"Tune the router's roaming aggressiveness settings",
		)
	}

	if avg := stats.LatencyAvgMs; avg != nil && *avg > 100 {
		add(
			"Look for bandwidth-heavy applications running in the background",
			"Enable QoS (Quality of Service) on the router",
			"Compare with a wired connection to see whether the problem is WiFi-specific",
		)
	}
	if jitter := stats.JitterAvgMs; jitter != nil && *jitter > 30 {
		add(
			"Jitter usually means congestion; check other devices using bandwidth",
			"Update the router firmware",
		)
	}
	if stats.PacketLossAvgPct > 1 {
		add(
			"Check for interference from nearby electronics such as microwaves or cordless phones",
			"Switch to a different WiFi channel to avoid interference",
			"Make sure the router and modem are not overheating",
		)
	}

	if countOf(counts, models.DnsFailure) > 3 {
		add("Try alternative DNS servers such as 8.8.8.8 or 1.1.1.1")
	}

	if stats.TotalDisconnections > 2 {
		add(
			"Repeated disconnections can be driver related; update the WiFi adapter driver",
			"Check the router logs for errors",
			"Turn off power saving for the WiFi adapter",
		)
	}

	if len(recs) > 0 {
		add("Restart the router if it has not been restarted recently")
	}

	return recs
}
