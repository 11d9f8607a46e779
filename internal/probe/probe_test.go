package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wifi-monitor/internal/models"
)

const iwConnected = `Connected to AA:BB:CC:DD:EE:01 (on wlan0)
	SSID: home-net
	freq: 5180.0
	RX: 123456 bytes (789 packets)
	TX: 23456 bytes (123 packets)
	signal: -58 dBm
	rx bitrate: 866.7 MBit/s VHT-MCS 9 80MHz short GI VHT-NSS 2
	tx bitrate: 650.0 MBit/s VHT-MCS 7 80MHz short GI VHT-NSS 2

	bss flags:	short-slot-time
	dtim period:	1
	beacon int:	100
`

func TestParseIwLink(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected *models.LinkInfo
	}{
		{
			name:     "not connected",
			output:   "Not connected.\n",
			expected: nil,
		},
		{
			name:     "empty output",
			output:   "",
			expected: nil,
		},
		{
			name:   "5GHz VHT link",
			output: iwConnected,
			expected: &models.LinkInfo{
				SSID:          "home-net",
				BSSID:         "aa:bb:cc:dd:ee:01",
				SignalDBM:     -58,
				SignalQuality: 60,
				Channel:       36,
				FrequencyMHz:  5180,
				Band:          models.Band5GHz,
				PhyType:       "802.11ac",
				LinkSpeedMbps: 650,
				RxRateMbps:    models.Float(866.7),
				TxRateMbps:    models.Float(650),
				DNSServers:    []string{},
			},
		},
		{
			name: "2.4GHz legacy link",
			output: `Connected to 00:11:22:33:44:55 (on wlp2s0)
	SSID: cafe
	freq: 2437
	signal: -81 [-80, -83] dBm
	tx bitrate: 54.0 MBit/s
`,
			expected: &models.LinkInfo{
				SSID:          "cafe",
				BSSID:         "00:11:22:33:44:55",
				SignalDBM:     -81,
				SignalQuality: 27,
				Channel:       6,
				FrequencyMHz:  2437,
				Band:          models.Band2_4GHz,
				PhyType:       "802.11g",
				LinkSpeedMbps: 54,
				TxRateMbps:    models.Float(54),
				DNSServers:    []string{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseIwLink(tt.output))
		})
	}
}

func TestChannelFromFrequency(t *testing.T) {
	tests := []struct {
		mhz     int
		channel int
	}{
		{2412, 1},
		{2437, 6},
		{2472, 13},
		{2484, 14},
		{5180, 36},
		{5745, 149},
		{5825, 165},
		{5955, 1},
		{6115, 33},
		{900, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.mhz), func(t *testing.T) {
			assert.Equal(t, tt.channel, channelFromFrequency(tt.mhz))
		})
	}
}

func TestQualityFromDBM(t *testing.T) {
	assert.Equal(t, 0, qualityFromDBM(-110))
	assert.Equal(t, 0, qualityFromDBM(-100))
	assert.Equal(t, 50, qualityFromDBM(-65))
	assert.Equal(t, 100, qualityFromDBM(-30))
	assert.Equal(t, 100, qualityFromDBM(-20))
}

func TestParseNameservers(t *testing.T) {
	resolv := `# Generated
nameserver 192.168.1.1
search lan
nameserver fe80::1
`
	assert.Equal(t, []string{"192.168.1.1", "fe80::1"}, parseNameservers(resolv))
	assert.Empty(t, parseNameservers("search lan\n"))
}

func TestReadLink(t *testing.T) {
	calls := map[string]string{
		"iw dev":                                 "phy#0\n\tInterface wlan0\n\t\ttype managed\n",
		"iw dev wlan0 link":                      iwConnected,
		"ip -4 addr show dev wlan0":              "3: wlan0: <UP>\n    inet 192.168.1.23/24 brd 192.168.1.255 scope global wlan0\n",
		"ip -6 addr show dev wlan0 scope global": "",
		"ip route show default dev wlan0":        "default via 192.168.1.1 proto dhcp metric 600\n",
	}

	s := New(Options{Timeout: time.Second})
	s.command = func(_ context.Context, name string, args ...string) (string, error) {
		key := strings.Join(append([]string{name}, args...), " ")
		out, ok := calls[key]
		if !ok {
			return "", fmt.Errorf("unexpected command %q", key)
		}
		return out, nil
	}

	link, err := s.ReadLink(context.Background())
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Equal(t, "wlan0", link.AdapterName)
	assert.Equal(t, "192.168.1.23", link.IPv4)
	assert.Empty(t, link.IPv6)
	assert.Equal(t, "192.168.1.1", link.Gateway)
	assert.Equal(t, -58, link.SignalDBM)

	t.Run("not associated", func(t *testing.T) {
		calls["iw dev wlan0 link"] = "Not connected.\n"
		link, err := s.ReadLink(context.Background())
		require.NoError(t, err)
		assert.Nil(t, link)
	})

	t.Run("iw missing", func(t *testing.T) {
		s.command = func(context.Context, string, ...string) (string, error) {
			return "", errors.New("executable file not found")
		}
		_, err := s.ReadLink(context.Background())
		assert.ErrorIs(t, err, models.ErrProbeFailure)
	})
}

func TestSummarize(t *testing.T) {
	t.Run("no samples", func(t *testing.T) {
		latency := summarize([]models.PingResult{
			{Target: "a", PacketsSent: 4, PacketLoss: 100},
		})
		assert.Nil(t, latency.AvgMs)
		assert.Nil(t, latency.JitterMs)
		assert.Equal(t, 100.0, latency.PacketLoss)
	})

	t.Run("single sample has no jitter", func(t *testing.T) {
		latency := summarize([]models.PingResult{
			{Target: "a", PacketsSent: 1, PacketsReceived: 1, TimesMs: []float64{12}},
		})
		require.NotNil(t, latency.AvgMs)
		assert.Equal(t, 12.0, *latency.AvgMs)
		assert.Nil(t, latency.JitterMs)
		assert.Zero(t, latency.PacketLoss)
	})

	t.Run("population deviation across targets", func(t *testing.T) {
		latency := summarize([]models.PingResult{
			{Target: "a", PacketsSent: 4, PacketsReceived: 3, TimesMs: []float64{2, 4, 4}},
			{Target: "b", PacketsSent: 4, PacketsReceived: 4, TimesMs: []float64{4, 5, 5, 7, 9}},
		})
		require.NotNil(t, latency.JitterMs)
		assert.InDelta(t, 5.0, *latency.AvgMs, 1e-9)
		assert.InDelta(t, 2.0, *latency.JitterMs, 1e-9)
		assert.Equal(t, 2.0, *latency.MinMs)
		assert.Equal(t, 9.0, *latency.MaxMs)
		assert.InDelta(t, 12.5, latency.PacketLoss, 1e-9)
		assert.Len(t, latency.Targets, 2)
	})
}

func TestMeasureLatency(t *testing.T) {
	s := New(Options{PingCount: 2, Timeout: time.Second})

	var mu sync.Mutex
	pinged := map[string]int{}
	s.ping = func(_ context.Context, target string, count int) models.PingResult {
		mu.Lock()
		pinged[target] = count
		mu.Unlock()

		rtt := map[string]float64{loopback: 0.1, "192.168.1.1": 3, "8.8.8.8": 20, "1.1.1.1": 10}[target]
		return models.PingResult{
			Target:          target,
			PacketsSent:     count,
			PacketsReceived: count,
			AvgMs:           models.Float(rtt),
			TimesMs:         []float64{rtt, rtt},
		}
	}

	latency := s.MeasureLatency(context.Background(), []string{"8.8.8.8", "1.1.1.1"}, "192.168.1.1")

	assert.Equal(t, map[string]int{loopback: 2, "192.168.1.1": 2, "8.8.8.8": 2, "1.1.1.1": 2}, pinged)
	require.Len(t, latency.Targets, 2)
	assert.Equal(t, "8.8.8.8", latency.Targets[0].Target)
	assert.Equal(t, 0.1, *latency.LoopbackMs)
	assert.Equal(t, 3.0, *latency.RouterMs)
	assert.Equal(t, 15.0, *latency.AvgMs)
	assert.Equal(t, 5.0, *latency.JitterMs)

	t.Run("no gateway", func(t *testing.T) {
		latency := s.MeasureLatency(context.Background(), []string{"8.8.8.8"}, "")
		assert.Nil(t, latency.RouterMs)
	})
}

func TestTestConnectivity(t *testing.T) {
	reachable := func(_ context.Context, target string, count int) models.PingResult {
		return models.PingResult{Target: target, PacketsSent: count, PacketsReceived: count}
	}

	tests := []struct {
		name     string
		status   int
		gateway  string
		internet bool
		router   bool
	}{
		{name: "generate 204", status: http.StatusNoContent, gateway: "192.168.1.1", internet: true, router: true},
		{name: "captive portal error", status: http.StatusServiceUnavailable, gateway: "192.168.1.1", internet: false, router: true},
		{name: "no gateway", status: http.StatusOK, internet: true, router: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			s := New(Options{Timeout: time.Second, HTTPProbeURL: srv.URL})
			s.ping = reachable

			result := s.TestConnectivity(context.Background(), tt.gateway)
			assert.True(t, result.LoopbackReachable)
			assert.Equal(t, tt.router, result.RouterReachable)
			assert.Equal(t, tt.internet, result.InternetReachable)
			assert.Equal(t, tt.internet, result.HTTPSuccess)
			assert.NotNil(t, result.HTTPResponseMs)
		})
	}

	t.Run("unreachable probe url", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		s := New(Options{Timeout: time.Second, HTTPProbeURL: url})
		s.ping = reachable

		result := s.TestConnectivity(context.Background(), "")
		assert.False(t, result.InternetReachable)
		assert.Nil(t, result.HTTPResponseMs)
	})
}

func TestResolve(t *testing.T) {
	s := New(Options{Timeout: time.Second})
	s.lookup = func(_ context.Context, server, domain string) ([]string, error) {
		if server == "10.0.0.53" {
			return nil, errors.New("i/o timeout")
		}
		if domain == "empty.example" {
			return nil, nil
		}
		return []string{"93.184.216.34"}, nil
	}

	result := s.Resolve(context.Background(), []string{"example.com", "empty.example"}, []string{"8.8.8.8", "10.0.0.53"})

	require.Len(t, result.Queries, 4)
	assert.Equal(t, 3, result.Failures)
	require.NotNil(t, result.AvgMs)

	first := result.Queries[0]
	assert.True(t, first.Success)
	assert.Equal(t, "8.8.8.8", first.Server)
	assert.Equal(t, []string{"93.184.216.34"}, first.ResolvedIPs)
	assert.Equal(t, "no addresses returned", result.Queries[1].Error)
	assert.Equal(t, "i/o timeout", result.Queries[2].Error)

	none := s.Resolve(context.Background(), []string{"example.com"}, []string{"10.0.0.53"})
	assert.Nil(t, none.AvgMs)
	assert.Equal(t, 1, none.Failures)
}
