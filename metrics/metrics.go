package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// StepsAppliedTotal tracks migration statements that executed successfully.
var StepsAppliedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "schemactl_steps_applied_total",
		Help: "Total migration steps applied",
	},
	[]string{"dialect"},
)

// StepsSkippedTotal tracks migration statements skipped by existence guards.
var StepsSkippedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "schemactl_steps_skipped_total",
		Help: "Total migration steps skipped because the object already exists",
	},
	[]string{"dialect"},
)

// StepsFailedTotal tracks migration statements rejected by the database.
var StepsFailedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "schemactl_steps_failed_total",
		Help: "Total migration steps that failed and aborted a run",
	},
	[]string{"dialect"},
)

// MigrationDuration tracks total wall-clock time of migration runs.
var MigrationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "schemactl_migration_duration_seconds",
		Help:    "Duration of migration runs",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"dialect"},
)

// PortReclaimKillsTotal tracks processes terminated while freeing a port.
var PortReclaimKillsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "schemactl_port_reclaim_kills_total",
		Help: "Total processes terminated to free the server port",
	},
)

// ServerLaunchesTotal tracks server launches by the bootstrap command.
var ServerLaunchesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "schemactl_server_launches_total",
		Help: "Total server processes launched by the bootstrap",
	},
)
