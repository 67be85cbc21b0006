package metrics

import "time"

// Collector wraps metrics and provides helper methods with a pre-filled
// dialect label.
type Collector struct {
	dialect string
}

// NewCollector creates a new Collector for the given dialect.
func NewCollector(dialect string) *Collector {
	return &Collector{dialect: dialect}
}

// IncStepsApplied increments the applied steps counter.
func (c *Collector) IncStepsApplied() {
	StepsAppliedTotal.WithLabelValues(c.dialect).Inc()
}

// IncStepsSkipped increments the skipped steps counter.
func (c *Collector) IncStepsSkipped() {
	StepsSkippedTotal.WithLabelValues(c.dialect).Inc()
}

// IncStepsFailed increments the failed steps counter.
func (c *Collector) IncStepsFailed() {
	StepsFailedTotal.WithLabelValues(c.dialect).Inc()
}

// ObserveMigrationDuration records the duration of a migration run.
func (c *Collector) ObserveMigrationDuration(d time.Duration) {
	MigrationDuration.WithLabelValues(c.dialect).Observe(d.Seconds())
}

// IncPortReclaimKills increments the port reclaim kill counter.
func (c *Collector) IncPortReclaimKills() {
	PortReclaimKillsTotal.Inc()
}

// IncServerLaunches increments the server launch counter.
func (c *Collector) IncServerLaunches() {
	ServerLaunchesTotal.Inc()
}
