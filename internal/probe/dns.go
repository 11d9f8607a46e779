package probe

import (
	"context"
	"net"
	"time"

	"wifi-monitor/internal/models"
)

// Resolve queries every domain against every server. The average covers
// successful queries only.
func (s *System) Resolve(ctx context.Context, domains, servers []string) models.DnsResult {
	result := models.DnsResult{Queries: []models.DnsQuery{}}

	var total float64
	var ok int
	for _, server := range servers {
		for _, domain := range domains {
			q := s.query(ctx, server, domain)
			if q.Success {
				total += *q.ResolveMs
				ok++
			} else {
				result.Failures++
			}
			result.Queries = append(result.Queries, q)
		}
	}

	if ok > 0 {
		result.AvgMs = models.Float(total / float64(ok))
	}
	return result
}

func (s *System) query(ctx context.Context, server, domain string) models.DnsQuery {
	q := models.DnsQuery{Domain: domain, Server: server, ResolvedIPs: []string{}}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	addrs, err := s.lookup(ctx, server, domain)
	if err != nil {
		q.Error = err.Error()
		return q
	}
	if len(addrs) == 0 {
		q.Error = "no addresses returned"
		return q
	}

	q.ResolveMs = models.Float(ms(time.Since(start)))
	q.ResolvedIPs = addrs
	q.Success = true
	return q
}

// dnsLookup resolves domain against server directly, bypassing the
// system resolver configuration.
func (s *System) dnsLookup(ctx context.Context, server, domain string) ([]string, error) {
	r := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, _ string) (net.Conn, error) {
			d := net.Dialer{Timeout: s.opts.Timeout}
			return d.DialContext(ctx, network, net.JoinHostPort(server, "53"))
		},
	}
	return r.LookupHost(ctx, domain)
}
