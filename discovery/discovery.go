package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/grandcat/zeroconf"
	"pkt.systems/pslog"
)

// Defaults for the annotation server's mDNS advertisement.
const (
	DefaultService = "_sightcast._tcp"
	DefaultDomain  = "local."
)

// Browse looks for an annotation server on the local network and
// returns its websocket endpoint. The first usable advertisement wins.
func Browse(ctx context.Context, service, domain string, timeout time.Duration, log pslog.Logger) (string, error) {
	if service == "" {
		service = DefaultService
	}
	if domain == "" {
		domain = DefaultDomain
	}
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return "", fmt.Errorf("discovery: resolver: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	if err := resolver.Browse(ctx, service, domain, entries); err != nil {
		return "", fmt.Errorf("discovery: browse: %w", err)
	}
	for entry := range entries {
		if len(entry.AddrIPv4) == 0 {
			continue
		}
		endpoint := fmt.Sprintf("ws://%s:%d/ws", entry.AddrIPv4[0], entry.Port)
		log.Info("annotation server discovered", "instance", entry.Instance, "endpoint", endpoint)
		return endpoint, nil
	}
	return "", fmt.Errorf("discovery: no %s service found within %s", service, timeout)
}
