package models

// RollingState is what the detector remembers from the previous accepted
// snapshot. Link is nil when the previous sample had no link.
type RollingState struct {
	WasConnected         bool
	Link                 *LinkState
	InternetWasReachable bool
}

// LinkState holds the link attributes diffed between cycles.
type LinkState struct {
	SSID      string
	BSSID     string
	Channel   int
	Band      Band
	SignalDBM int
	IP        string
}

// StateFrom derives the rolling state that follows s.
func StateFrom(s Snapshot) RollingState {
	state := RollingState{
		WasConnected:         s.Connected(),
		InternetWasReachable: s.Connectivity.InternetReachable,
	}
	if s.Link != nil {
		state.Link = &LinkState{
			SSID:      s.Link.SSID,
			BSSID:     s.Link.BSSID,
			Channel:   s.Link.Channel,
			Band:      s.Link.Band,
			SignalDBM: s.Link.SignalDBM,
			IP:        s.Link.IPv4,
		}
	}
	return state
}
