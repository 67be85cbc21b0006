package bootstrap

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/farmactiva/schemactl"
	"github.com/farmactiva/schemactl/metrics"
)

// ReclaimerConfig holds configuration for the port Reclaimer.
type ReclaimerConfig struct {
	// Controller performs process discovery and termination.
	// Defaults to SystemController.
	Controller ProcessController

	// Logger is for observability (optional). Termination failures are
	// logged at debug level only; they are non-fatal by contract.
	Logger schemactl.Logger

	// Collector records reclaim metrics (optional).
	Collector *metrics.Collector
}

// Reclaimer frees a TCP port by terminating whatever holds it.
type Reclaimer struct {
	config ReclaimerConfig
}

// NewReclaimer creates a Reclaimer with the given configuration.
func NewReclaimer(cfg ReclaimerConfig) *Reclaimer {
	if cfg.Controller == nil {
		cfg.Controller = SystemController{}
	}
	return &Reclaimer{config: cfg}
}

// Reclaim terminates every process listening on the port and returns how
// many were killed. It never fails: discovery and termination errors are
// swallowed, and no verification is made that the port is actually free
// afterwards. Whoever binds next wins.
func (r *Reclaimer) Reclaim(ctx context.Context, port uint32) int {
	pids, err := r.config.Controller.Listeners(ctx, port)
	if err != nil {
		r.logDebug(ctx, "failed to inspect port holders", "port", port, "error", err)
		return 0
	}
	if len(pids) == 0 {
		r.logDebug(ctx, "port is not held", "port", port)
		return 0
	}

	killed := 0
	for _, pid := range pids {
		if err := r.config.Controller.Terminate(ctx, pid); err != nil {
			r.logDebug(ctx, "failed to terminate port holder", "port", port, "pid", pid, "error", err)
			continue
		}
		killed++
		if r.config.Collector != nil {
			r.config.Collector.IncPortReclaimKills()
		}
		r.logInfo(ctx, "terminated port holder", "port", port, "pid", pid)
	}
	return killed
}

// WaitFree polls until no process holds a LISTEN socket on the port or
// the timeout elapses. Kernels can take a moment to release a socket
// after its owner dies, so callers who opt in to verification use this
// between Reclaim and the launch.
func (r *Reclaimer) WaitFree(ctx context.Context, port uint32, timeout time.Duration) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 50 * time.Millisecond
	policy.MaxElapsedTime = timeout

	check := func() error {
		pids, err := r.config.Controller.Listeners(ctx, port)
		if err != nil {
			return backoff.Permanent(err)
		}
		if len(pids) > 0 {
			return errors.New("port still held")
		}
		return nil
	}

	return backoff.Retry(check, backoff.WithContext(policy, ctx))
}

func (r *Reclaimer) logDebug(ctx context.Context, msg string, kv ...any) {
	if r.config.Logger != nil {
		r.config.Logger.Debug(ctx, msg, kv...)
	}
}

func (r *Reclaimer) logInfo(ctx context.Context, msg string, kv ...any) {
	if r.config.Logger != nil {
		r.config.Logger.Info(ctx, msg, kv...)
	}
}
