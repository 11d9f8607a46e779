package monitor

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"wifi-monitor/internal/config"
	"wifi-monitor/internal/models"
)

func testConfig() config.Config {
	return config.Config{
		Interval:    10 * time.Millisecond,
		PingTargets: []string{"8.8.8.8", "1.1.1.1"},
		DNSServers:  []string{"8.8.8.8"},
		DNSDomains:  []string{"example.com"},
		Thresholds:  models.DefaultThresholds(),
	}
}

func TestCollect(t *testing.T) {
	ctrl := gomock.NewController(t)
	prober := models.NewMockProber(ctrl)

	link := &models.LinkInfo{SSID: "home", SignalDBM: -50, Gateway: "192.168.1.1"}
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("EET", 2*3600))

	gomock.InOrder(
		prober.EXPECT().ReadLink(gomock.Any()).Return(link, nil),
		prober.EXPECT().ReadSystemCounters(gomock.Any()).Return(models.SystemCounters{CPUPercent: 12}, nil),
		prober.EXPECT().TestConnectivity(gomock.Any(), "192.168.1.1").Return(models.ConnectivityResult{
			LoopbackReachable: true, RouterReachable: true, InternetReachable: true,
		}),
		prober.EXPECT().MeasureLatency(gomock.Any(), []string{"8.8.8.8", "1.1.1.1"}, "192.168.1.1").
			Return(models.LatencyResult{AvgMs: models.Float(12)}),
		prober.EXPECT().Resolve(gomock.Any(), []string{"example.com"}, []string{"8.8.8.8"}).
			Return(models.DnsResult{Failures: 1}),
	)

	a := NewAssembler(prober, testConfig())
	a.now = func() time.Time { return now }

	s := a.Collect(context.Background())

	assert.NotEmpty(t, s.ID)
	assert.True(t, now.Equal(s.Timestamp))
	assert.Equal(t, time.UTC, s.Timestamp.Location())
	assert.Same(t, link, s.Link)
	assert.True(t, s.Connectivity.Connected)
	assert.True(t, s.Connectivity.RouterReachable)
	assert.Equal(t, 12.0, *s.Latency.AvgMs)
	assert.Equal(t, 1, s.DNS.Failures)
	assert.Equal(t, 12.0, s.System.CPUPercent)
	assert.Empty(t, s.Events)
}

func TestCollectDegradesFailedProbes(t *testing.T) {
	ctrl := gomock.NewController(t)
	prober := models.NewMockProber(ctrl)

	prober.EXPECT().ReadLink(gomock.Any()).Return(nil, fmt.Errorf("%w: iw missing", models.ErrProbeFailure))
	prober.EXPECT().ReadSystemCounters(gomock.Any()).
		Return(models.SystemCounters{MemoryPercent: 40}, errors.New("cpu unavailable"))
	prober.EXPECT().TestConnectivity(gomock.Any(), "").Return(models.ConnectivityResult{
		LoopbackReachable: true, RouterReachable: true,
	})
	prober.EXPECT().MeasureLatency(gomock.Any(), gomock.Any(), "").Return(models.LatencyResult{PacketLoss: 100})
	prober.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.DnsResult{Failures: 1})

	s := NewAssembler(prober, testConfig()).Collect(context.Background())

	assert.Nil(t, s.Link)
	assert.False(t, s.Connectivity.Connected)
	// Without a gateway router reachability follows the link.
	assert.False(t, s.Connectivity.RouterReachable)
	assert.Equal(t, 40.0, s.System.MemoryPercent)
	assert.Equal(t, 100.0, s.Latency.PacketLoss)
}

func TestCollectFallsBackToLinkResolvers(t *testing.T) {
	ctrl := gomock.NewController(t)
	prober := models.NewMockProber(ctrl)

	link := &models.LinkInfo{SSID: "home", DNSServers: []string{"192.168.1.1"}}
	prober.EXPECT().ReadLink(gomock.Any()).Return(link, nil)
	prober.EXPECT().ReadSystemCounters(gomock.Any()).Return(models.SystemCounters{}, nil)
	prober.EXPECT().TestConnectivity(gomock.Any(), "").Return(models.ConnectivityResult{InternetReachable: true})
	prober.EXPECT().MeasureLatency(gomock.Any(), gomock.Any(), "").Return(models.LatencyResult{})
	prober.EXPECT().Resolve(gomock.Any(), []string{"example.com"}, []string{"192.168.1.1"}).Return(models.DnsResult{})

	cfg := testConfig()
	cfg.DNSServers = nil

	s := NewAssembler(prober, cfg).Collect(context.Background())
	require.NotNil(t, s.Link)
	assert.True(t, s.Connectivity.Connected)
	assert.True(t, s.Connectivity.RouterReachable)
}
