package probe

import (
	"context"
	"fmt"
	"net"
	"os"
	"regexp"
	"strconv"
	"strings"

	"wifi-monitor/internal/models"
)

var (
	iwInterfaceRe = regexp.MustCompile(`(?m)^\s*Interface\s+(\S+)`)
	iwConnectedRe = regexp.MustCompile(`(?m)^Connected to ([0-9a-fA-F:]{17})`)
	iwSSIDRe      = regexp.MustCompile(`(?m)^\s*SSID:\s*(.*)$`)
	iwFreqRe      = regexp.MustCompile(`(?m)^\s*freq:\s*([0-9.]+)`)
	iwSignalRe    = regexp.MustCompile(`(?m)^\s*signal:\s*(-?[0-9]+)`)
	iwRxRateRe    = regexp.MustCompile(`(?m)^\s*rx bitrate:\s*([0-9.]+)\s*MBit/s(.*)$`)
	iwTxRateRe    = regexp.MustCompile(`(?m)^\s*tx bitrate:\s*([0-9.]+)\s*MBit/s(.*)$`)

	ipv4Re    = regexp.MustCompile(`inet\s+([0-9.]+)/`)
	ipv6Re    = regexp.MustCompile(`inet6\s+([0-9a-fA-F:]+)/`)
	gatewayRe = regexp.MustCompile(`default via\s+(\S+)`)
	nsRe      = regexp.MustCompile(`(?m)^\s*nameserver\s+(\S+)`)
)

const resolvConf = "/etc/resolv.conf"

// ReadLink returns the current wireless link, or nil when the adapter is
// not associated.
func (s *System) ReadLink(ctx context.Context) (*models.LinkInfo, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	iface := s.opts.Interface
	if iface == "" {
		out, err := s.command(ctx, "iw", "dev")
		if err != nil {
			return nil, fmt.Errorf("%w: list wireless interfaces: %w", models.ErrProbeFailure, err)
		}
		if iface = parseInterface(out); iface == "" {
			return nil, fmt.Errorf("%w: no wireless interface found", models.ErrProbeFailure)
		}
	}

	out, err := s.command(ctx, "iw", "dev", iface, "link")
	if err != nil {
		return nil, fmt.Errorf("%w: read link of %s: %w", models.ErrProbeFailure, iface, err)
	}

	link := parseIwLink(out)
	if link == nil {
		return nil, nil
	}
	link.AdapterName = iface

	if ni, err := net.InterfaceByName(iface); err == nil {
		link.AdapterMAC = ni.HardwareAddr.String()
	}

	// Addressing is best effort; a link without an address is still a link.
	if out, err := s.command(ctx, "ip", "-4", "addr", "show", "dev", iface); err == nil {
		link.IPv4 = firstMatch(ipv4Re, out)
	}
	if out, err := s.command(ctx, "ip", "-6", "addr", "show", "dev", iface, "scope", "global"); err == nil {
		link.IPv6 = firstMatch(ipv6Re, out)
	}
	if out, err := s.command(ctx, "ip", "route", "show", "default", "dev", iface); err == nil {
		link.Gateway = firstMatch(gatewayRe, out)
	}
	if data, err := os.ReadFile(resolvConf); err == nil {
		link.DNSServers = parseNameservers(string(data))
	} else {
		s.log.Debug().Err(err).Msg("Could not read resolver configuration")
	}

	return link, nil
}

func parseInterface(output string) string {
	return firstMatch(iwInterfaceRe, output)
}

// parseIwLink parses `iw dev <if> link` output. It returns nil when the
// adapter reports no association.
func parseIwLink(output string) *models.LinkInfo {
	bssid := firstMatch(iwConnectedRe, output)
	if bssid == "" {
		return nil
	}

	link := &models.LinkInfo{
		SSID:       strings.TrimSpace(firstMatch(iwSSIDRe, output)),
		BSSID:      strings.ToLower(bssid),
		DNSServers: []string{},
	}

	if f, err := strconv.ParseFloat(firstMatch(iwFreqRe, output), 64); err == nil {
		link.FrequencyMHz = int(f)
		link.Band = models.BandFromFrequency(link.FrequencyMHz)
		link.Channel = channelFromFrequency(link.FrequencyMHz)
	}

	if dbm, err := strconv.Atoi(firstMatch(iwSignalRe, output)); err == nil {
		link.SignalDBM = dbm
		link.SignalQuality = qualityFromDBM(dbm)
	}

	var txFlags string
	if m := iwRxRateRe.FindStringSubmatch(output); len(m) > 1 {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			link.RxRateMbps = models.Float(v)
		}
	}
	if m := iwTxRateRe.FindStringSubmatch(output); len(m) > 1 {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			link.TxRateMbps = models.Float(v)
			link.LinkSpeedMbps = int(v)
		}
		txFlags = m[2]
	}
	link.PhyType = phyType(txFlags, link.Band)

	return link
}

func phyType(flags string, band models.Band) string {
	switch {
	case strings.Contains(flags, "EHT-MCS"):
		return "802.11be"
	case strings.Contains(flags, "HE-MCS"):
		return "802.11ax"
	case strings.Contains(flags, "VHT-MCS"):
		return "802.11ac"
	case strings.Contains(flags, "MCS"):
		return "802.11n"
	case band == models.Band5GHz:
		return "802.11a"
	case band == models.Band2_4GHz:
		return "802.11g"
	default:
		return "Unknown"
	}
}

func parseNameservers(resolv string) []string {
	servers := []string{}
	for _, m := range nsRe.FindAllStringSubmatch(resolv, -1) {
		servers = append(servers, m[1])
	}
	return servers
}

// channelFromFrequency maps a center frequency in MHz to its channel
// number, or 0 when the frequency is outside every known band.
func channelFromFrequency(mhz int) int {
	switch {
	case mhz == 2484:
		return 14
	case mhz >= 2412 && mhz <= 2472:
		return (mhz - 2407) / 5
	case mhz >= 5160 && mhz <= 5885:
		return (mhz - 5000) / 5
	case mhz >= 5955 && mhz <= 7115:
		return (mhz - 5950) / 5
	default:
		return 0
	}
}

// qualityFromDBM maps -100 dBm to 0% and -30 dBm to 100% linearly.
func qualityFromDBM(dbm int) int {
	q := (dbm + 100) * 100 / 70
	return max(0, min(100, q))
}

func firstMatch(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return ""
}
