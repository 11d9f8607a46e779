package monitor

import (
	"fmt"

	"github.com/google/uuid"

	"wifi-monitor/internal/models"
)

// Detect derives the events of snapshot s against the state left by the
// previous accepted snapshot and the alert thresholds. It is pure: the
// same inputs always produce the same events, ids included. prior is nil
// on the first cycle. The returned state is what the next cycle diffs
// against.
func Detect(s models.Snapshot, prior *models.RollingState, th models.AlertThresholds) ([]models.Event, models.RollingState) {
	d := detection{snapshot: s, events: []models.Event{}}

	link := s.Link
	if !s.Connected() {
		d.emit(models.ConnectionDropped, models.SeverityCritical, "WiFi is not connected", nil)
	} else if prior != nil && !prior.WasConnected {
		d.emit(models.ConnectionRestored, models.SeverityInfo, "WiFi connection restored", nil)
	}

	if link != nil {
		details := map[string]any{"signal_dbm": link.SignalDBM, "signal_percent": link.SignalQuality}
		switch {
		case link.SignalDBM <= th.SignalCriticalDBM:
			d.emit(models.SignalStrengthLow, models.SeverityCritical,
				fmt.Sprintf("Critical signal strength: %d dBm (%d%%)", link.SignalDBM, link.SignalQuality), details)
		case link.SignalDBM <= th.SignalWarningDBM:
			d.emit(models.SignalStrengthLow, models.SeverityWarning,
				fmt.Sprintf("Low signal strength: %d dBm (%d%%)", link.SignalDBM, link.SignalQuality), details)
		}
	}

	if avg := s.Latency.AvgMs; avg != nil {
		details := map[string]any{"latency_ms": *avg}
		switch {
		case *avg >= th.LatencyCriticalMs:
			d.emit(models.HighLatency, models.SeverityCritical, fmt.Sprintf("Critical latency: %.1fms", *avg), details)
		case *avg >= th.LatencyWarningMs:
			d.emit(models.HighLatency, models.SeverityWarning, fmt.Sprintf("High latency: %.1fms", *avg), details)
		}
	}

	if jitter := s.Latency.JitterMs; jitter != nil && *jitter >= th.JitterWarningMs {
		d.emit(models.HighJitter, models.SeverityWarning, fmt.Sprintf("High jitter: %.1fms", *jitter),
			map[string]any{"jitter_ms": *jitter})
	}

	loss := s.Latency.PacketLoss
	lossDetails := map[string]any{"packet_loss_percent": loss}
	switch {
	case loss >= th.PacketLossCriticalPct:
		d.emit(models.PacketLoss, models.SeverityCritical, fmt.Sprintf("Critical packet loss: %.1f%%", loss), lossDetails)
	case loss >= th.PacketLossWarningPct:
		d.emit(models.PacketLoss, models.SeverityWarning, fmt.Sprintf("Packet loss detected: %.1f%%", loss), lossDetails)
	}

	if c := s.Connectivity; c.Connected {
		switch {
		case !c.RouterReachable:
			d.emit(models.InternetUnreachable, models.SeverityCritical,
				"Router is not reachable (local network issue)",
				map[string]any{"issue_type": "router_unreachable"})
		case !c.InternetReachable:
			d.emit(models.InternetUnreachable, models.SeverityCritical,
				"Internet is not reachable (router OK, ISP or internet issue)",
				map[string]any{"issue_type": "internet_unreachable", "router_reachable": true})
		}
	}

	if n := s.DNS.Failures; n > 0 {
		d.emit(models.DnsFailure, models.SeverityWarning, fmt.Sprintf("%d DNS queries failed", n),
			map[string]any{"failures": n})
	}

	if link != nil && prior != nil && prior.Link != nil {
		last := prior.Link
		if last.BSSID != link.BSSID {
			d.emit(models.BssidChange, models.SeverityWarning,
				fmt.Sprintf("BSSID changed from %s to %s", last.BSSID, link.BSSID),
				map[string]any{"old_bssid": last.BSSID, "new_bssid": link.BSSID})
		}
		if last.Channel != link.Channel {
			d.emit(models.ChannelChange, models.SeverityInfo,
				fmt.Sprintf("Channel changed from %d to %d", last.Channel, link.Channel),
				map[string]any{"old_channel": last.Channel, "new_channel": link.Channel})
		}
		if last.Band != link.Band {
			d.emit(models.BandSwitch, models.SeverityWarning,
				fmt.Sprintf("Band switched from %s to %s", last.Band, link.Band),
				map[string]any{"old_band": last.Band.String(), "new_band": link.Band.String()})
		}
	}

	if prior != nil && !prior.InternetWasReachable && s.Connectivity.InternetReachable {
		d.emit(models.ConnectionRestored, models.SeverityInfo, "Internet connectivity restored", nil)
	}

	return d.events, models.StateFrom(s)
}

type detection struct {
	snapshot models.Snapshot
	events   []models.Event
}

func (d *detection) emit(t models.EventType, sev models.Severity, description string, details map[string]any) {
	if details == nil {
		details = map[string]any{}
	}
	d.events = append(d.events, models.Event{
		ID:          eventID(d.snapshot.ID, len(d.events)),
		SnapshotID:  d.snapshot.ID,
		Timestamp:   d.snapshot.Timestamp,
		Type:        t,
		Severity:    sev,
		Description: description,
		Details:     details,
	})
}

// eventID is a name-based UUID of the owning snapshot and the event's
// position in it.
func eventID(snapshotID string, index int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, fmt.Appendf(nil, "%s/%d", snapshotID, index)).String()
}
