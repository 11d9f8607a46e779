package probe

import (
	"context"
	"net/http"
	"time"

	"wifi-monitor/internal/models"
)

// TestConnectivity checks loopback, gateway and internet reachability.
// Connected is left to the caller, which knows whether a link exists.
func (s *System) TestConnectivity(ctx context.Context, gateway string) models.ConnectivityResult {
	var result models.ConnectivityResult

	result.LoopbackReachable = s.ping(ctx, loopback, 2).PacketsReceived > 0
	if gateway != "" {
		result.RouterReachable = s.ping(ctx, gateway, 2).PacketsReceived > 0
	}

	if s.opts.HTTPProbeURL == "" {
		return result
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.opts.HTTPProbeURL, nil)
	if err != nil {
		s.log.Warn().Err(err).Str("url", s.opts.HTTPProbeURL).Msg("Invalid HTTP probe URL")
		return result
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Debug().Err(err).Msg("HTTP connectivity test failed")
		return result
	}
	resp.Body.Close()

	elapsed := time.Since(start).Milliseconds()
	result.HTTPResponseMs = &elapsed
	result.HTTPSuccess = resp.StatusCode >= 200 && resp.StatusCode < 300
	result.InternetReachable = result.HTTPSuccess

	return result
}
