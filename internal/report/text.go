package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"wifi-monitor/internal/analysis"
	"wifi-monitor/internal/models"
)

const (
	width         = 67
	maxCritical   = 10
	periodLayout  = "2006-01-02 15:04:05 UTC"
	eventTSLayout = "2006-01-02 15:04:05"
)

// Render writes the plain-text stability report. The output depends only
// on its arguments; events are expected newest first.
func Render(w io.Writer, stats models.PeriodStatistics, events []models.Event, counts []models.EventCount) error {
	b := bufio.NewWriter(w)

	banner(b, "WiFi Stability Analysis Report")
	fmt.Fprintln(b)
	if stats.SampleCount == 0 {
		fmt.Fprintln(b, "Report Period: no samples recorded")
	} else {
		fmt.Fprintf(b, "Report Period: %s to %s\n",
			stats.StartTime.UTC().Format(periodLayout), stats.EndTime.UTC().Format(periodLayout))
	}
	fmt.Fprintf(b, "Total Samples: %d\n\n", stats.SampleCount)

	section(b, "OVERALL HEALTH SCORE")
	if stats.SampleCount == 0 {
		fmt.Fprintf(b, "  Score: n/a - %s (insufficient data)\n\n", analysis.NoDataRating)
	} else {
		fmt.Fprintf(b, "  Score: %d/100 - %s\n\n", analysis.Score(stats), analysis.PeriodRating(stats))
	}

	section(b, "CONNECTION RELIABILITY")
	fmt.Fprintf(b, "  WiFi Connection Uptime:    %6.1f%%\n", stats.ConnectionUptimePct)
	fmt.Fprintf(b, "  Internet Uptime:           %6.1f%%\n", stats.InternetUptimePct)
	fmt.Fprintf(b, "  Total Disconnections:      %6d\n", stats.TotalDisconnections)
	fmt.Fprintf(b, "  Average Packet Loss:       %6.2f%%\n\n", stats.PacketLossAvgPct)

	section(b, "SIGNAL QUALITY")
	if v := stats.SignalAvgDBM; v != nil {
		fmt.Fprintf(b, "  Average Signal:    %6.1f dBm  (%s)\n", *v, analysis.SignalRating(int(*v)))
	}
	if v := stats.SignalMinDBM; v != nil {
		fmt.Fprintf(b, "  Minimum Signal:    %6d dBm  (%s)\n", *v, analysis.SignalRating(*v))
	}
	if v := stats.SignalMaxDBM; v != nil {
		fmt.Fprintf(b, "  Maximum Signal:    %6d dBm  (%s)\n", *v, analysis.SignalRating(*v))
	}
	if v := stats.SignalQualityAvg; v != nil {
		fmt.Fprintf(b, "  Average Quality:   %6.1f%%\n", *v)
	}
	if stats.SignalAvgDBM == nil {
		fmt.Fprintln(b, "  No signal readings in this period.")
	}
	fmt.Fprintln(b)

	section(b, "LATENCY ANALYSIS")
	if v := stats.LatencyAvgMs; v != nil {
		fmt.Fprintf(b, "  Average Latency:   %8.1f ms  (%s)\n", *v, analysis.LatencyRating(*v))
	}
	optionalMs(b, "Minimum Latency:", stats.LatencyMinMs)
	optionalMs(b, "Maximum Latency:", stats.LatencyMaxMs)
	optionalMs(b, "95th Percentile:", stats.LatencyP95Ms)
	optionalMs(b, "99th Percentile:", stats.LatencyP99Ms)
	if v := stats.JitterAvgMs; v != nil {
		fmt.Fprintf(b, "  Average Jitter:    %8.1f ms  (%s)\n", *v, analysis.JitterRating(*v))
	}
	if stats.LatencyAvgMs == nil {
		fmt.Fprintln(b, "  No latency measurements in this period.")
	}
	fmt.Fprintln(b)

	section(b, "EVENT SUMMARY")
	fmt.Fprintf(b, "  Critical Events:   %6d\n", stats.CriticalEvents)
	fmt.Fprintf(b, "  Error Events:      %6d\n", stats.ErrorEvents)
	fmt.Fprintf(b, "  Warning Events:    %6d\n", stats.WarningEvents)
	fmt.Fprintf(b, "  Info Events:       %6d\n\n", stats.InfoEvents)
	if len(counts) > 0 {
		fmt.Fprintln(b, "  Events by Type:")
		for _, c := range counts {
			fmt.Fprintf(b, "    - %s: %d\n", c.Type, c.Count)
		}
		fmt.Fprintln(b)
	}

	section(b, "ISSUES DETECTED")
	numbered(b, analysis.Issues(stats, counts), "No significant issues detected.")

	section(b, "RECOMMENDATIONS")
	numbered(b, analysis.Recommendations(stats, counts),
		"The WiFi connection appears stable. No action needed.")

	critical := recentCritical(events)
	if len(critical) > 0 {
		section(b, "RECENT CRITICAL EVENTS")
		for _, e := range critical {
			fmt.Fprintf(b, "  [%s] %s: %s\n", e.Timestamp.UTC().Format(eventTSLayout), e.Type, e.Description)
		}
		fmt.Fprintln(b)
	}

	banner(b, "END OF REPORT")

	return b.Flush()
}

// recentCritical keeps the first critical events of a newest-first list.
func recentCritical(events []models.Event) []models.Event {
	var out []models.Event
	for _, e := range events {
		if e.Severity != models.SeverityCritical {
			continue
		}
		out = append(out, e)
		if len(out) == maxCritical {
			break
		}
	}
	return out
}

func banner(w io.Writer, title string) {
	rule := strings.Repeat("═", width)
	fmt.Fprintf(w, "%s\n%s\n%s\n", rule, center(title), rule)
}

func section(w io.Writer, title string) {
	rule := strings.Repeat("─", width)
	fmt.Fprintf(w, "%s\n%s\n%s\n\n", rule, center(title), rule)
}

func center(s string) string {
	pad := (width - len(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

func optionalMs(w io.Writer, label string, v *float64) {
	if v != nil {
		fmt.Fprintf(w, "  %-18s %8.1f ms\n", label, *v)
	}
}

func numbered(w io.Writer, items []string, empty string) {
	if len(items) == 0 {
		fmt.Fprintf(w, "  %s\n\n", empty)
		return
	}
	for i, item := range items {
		fmt.Fprintf(w, "  %d. %s\n", i+1, item)
	}
	fmt.Fprintln(w)
}
