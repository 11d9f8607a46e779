package models

import (
	"fmt"
	"time"
)

// EventType is the closed set of event kinds.
type EventType int

const (
	ConnectionDropped EventType = iota
	ConnectionRestored
	SignalStrengthLow
	SignalStrengthRecovered
	HighLatency
	LatencyNormalized
	PacketLoss
	DnsFailure
	DnsRecovered
	BandSwitch
	ChannelChange
	BssidChange
	IpAddressChange
	GatewayUnreachable
	InternetUnreachable
	HighJitter
	AdapterReset
	SpeedDegraded
	SpeedRecovered

	eventTypeCount
)

var eventTypeNames = [eventTypeCount]string{
	ConnectionDropped:       "ConnectionDropped",
	ConnectionRestored:      "ConnectionRestored",
	SignalStrengthLow:       "SignalStrengthLow",
	SignalStrengthRecovered: "SignalStrengthRecovered",
	HighLatency:             "HighLatency",
	LatencyNormalized:       "LatencyNormalized",
	PacketLoss:              "PacketLoss",
	DnsFailure:              "DnsFailure",
	DnsRecovered:            "DnsRecovered",
	BandSwitch:              "BandSwitch",
	ChannelChange:           "ChannelChange",
	BssidChange:             "BssidChange",
	IpAddressChange:         "IpAddressChange",
	GatewayUnreachable:      "GatewayUnreachable",
	InternetUnreachable:     "InternetUnreachable",
	HighJitter:              "HighJitter",
	AdapterReset:            "AdapterReset",
	SpeedDegraded:           "SpeedDegraded",
	SpeedRecovered:          "SpeedRecovered",
}

// EventTypes lists every event type in declaration order.
func EventTypes() []EventType {
	types := make([]EventType, 0, eventTypeCount)
	for t := EventType(0); t < eventTypeCount; t++ {
		types = append(types, t)
	}
	return types
}

func (t EventType) Valid() bool {
	return t >= 0 && t < eventTypeCount
}

func (t EventType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("EventType(%d)", int(t))
	}
	return eventTypeNames[t]
}

// ParseEventType resolves a stored or user-supplied type name.
func ParseEventType(s string) (EventType, error) {
	for i, name := range eventTypeNames {
		if name == s {
			return EventType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown event type %q", s)
}

func (t EventType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid event type %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *EventType) UnmarshalText(text []byte) error {
	parsed, err := ParseEventType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Severity is totally ordered: Info < Warning < Error < Critical.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityCritical
)

var severityNames = [...]string{
	SeverityInfo:     "Info",
	SeverityWarning:  "Warning",
	SeverityError:    "Error",
	SeverityCritical: "Critical",
}

func (s Severity) Valid() bool {
	return s >= SeverityInfo && s <= SeverityCritical
}

func (s Severity) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

func ParseSeverity(s string) (Severity, error) {
	for i, name := range severityNames {
		if name == s {
			return Severity(i), nil
		}
	}
	return 0, fmt.Errorf("unknown severity %q", s)
}

func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid severity %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Event is a typed, severity-ranked occurrence derived from a snapshot.
type Event struct {
	ID          string         `json:"id"`
	SnapshotID  string         `json:"snapshot_id,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
	Type        EventType      `json:"event_type"`
	Severity    Severity       `json:"severity"`
	Description string         `json:"description"`
	Details     map[string]any `json:"details"`
}
