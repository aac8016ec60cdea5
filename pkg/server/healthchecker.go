package server

import (
	"context"
	"log/slog"
	"time"
)

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// Pinger is satisfied by *es.Client.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ClusterHealthChecker reports healthy while the cluster answers a ping
// within the timeout.
type ClusterHealthChecker struct {
	pinger  Pinger
	timeout time.Duration
}

func NewClusterHealthChecker(pinger Pinger, timeout time.Duration) *ClusterHealthChecker {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &ClusterHealthChecker{pinger: pinger, timeout: timeout}
}

func (hc *ClusterHealthChecker) Healthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, hc.timeout)
	defer cancel()

	if err := hc.pinger.Ping(ctx); err != nil {
		slog.Warn("Elasticsearch health check failed", "error", err)
		return false
	}
	return true
}
