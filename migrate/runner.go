// Package migrate applies the store's schema migration plan. Steps run
// sequentially and are individually guarded; there is no transaction
// wrapping the plan and no state tracking table, so idempotence comes
// entirely from the guards.
package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/farmactiva/schemactl"
	"github.com/farmactiva/schemactl/metrics"
)

// DB is the subset of *sql.DB the runner needs.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Inspector probes for existing schema objects.
// *schema.Inspector satisfies this interface; tests provide mocks.
type Inspector interface {
	ColumnExists(ctx context.Context, table, column string) (bool, error)
	TriggerExists(ctx context.Context, name string) (bool, error)
	FunctionExists(ctx context.Context, name string) (bool, error)
}

// Config holds configuration for the migration Runner.
type Config struct {
	// DB is the database handle to apply statements against (required).
	DB DB

	// Dialect selects which SQL rendering of each step to execute (required).
	Dialect schemactl.Dialect

	// Inspector provides the existence guards (required).
	Inspector Inspector

	// Logger is for observability (optional).
	Logger schemactl.Logger

	// Collector records step metrics (optional).
	Collector *metrics.Collector
}

// Runner applies a migration plan step by step.
type Runner struct {
	config Config
}

// New creates a Runner with the given configuration.
func New(cfg Config) (*Runner, error) {
	if !cfg.Dialect.Valid() {
		return nil, fmt.Errorf("%q: %w", cfg.Dialect, schemactl.ErrUnsupportedDialect)
	}
	if cfg.DB == nil {
		return nil, errors.New("migrate: Config.DB is required")
	}
	if cfg.Inspector == nil {
		return nil, errors.New("migrate: Config.Inspector is required")
	}
	return &Runner{config: cfg}, nil
}

// Apply executes the plan in order and returns a Report of what happened.
//
// Column and trigger steps are skipped when the object already exists.
// Function steps always execute so that logic fixes take effect even when
// the dependent trigger is already installed. Any database error on an
// executed statement is fatal: remaining steps are not attempted and the
// partial Report is returned alongside the error. Statements already
// applied stay applied; each one is an independent unit.
func (r *Runner) Apply(ctx context.Context, plan []schemactl.Step) (report schemactl.Report, err error) {
	report = schemactl.Report{
		RunID:     uuid.New().String(),
		Dialect:   r.config.Dialect,
		StartedAt: time.Now(),
	}
	if len(plan) == 0 {
		return report, schemactl.ErrEmptyPlan
	}

	r.logInfo(ctx, "starting migration run", "runID", report.RunID, "dialect", report.Dialect, "steps", len(plan))

	defer func() {
		report.Duration = time.Since(report.StartedAt)
		if r.config.Collector != nil {
			r.config.Collector.ObserveMigrationDuration(report.Duration)
		}
	}()

	for _, step := range plan {
		result, stepErr := r.applyStep(ctx, step)
		report.Results = append(report.Results, result)
		if stepErr != nil {
			if r.config.Collector != nil {
				r.config.Collector.IncStepsFailed()
			}
			r.logError(ctx, "migration step failed", "runID", report.RunID, "step", step.Name, "error", stepErr)
			return report, stepErr
		}

		switch result.Status {
		case schemactl.StepApplied:
			if r.config.Collector != nil {
				r.config.Collector.IncStepsApplied()
			}
			r.logInfo(ctx, "step applied", "runID", report.RunID, "step", step.Name)
		case schemactl.StepSkippedExists:
			if r.config.Collector != nil {
				r.config.Collector.IncStepsSkipped()
			}
			r.logDebug(ctx, "step skipped, object exists", "runID", report.RunID, "step", step.Name)
		case schemactl.StepSkippedDialect:
			r.logDebug(ctx, "step not applicable to dialect", "runID", report.RunID, "step", step.Name)
		}
	}

	r.logInfo(ctx, "migration run complete", "runID", report.RunID, "applied", report.Applied(), "skipped", report.Skipped())
	return report, nil
}

func (r *Runner) applyStep(ctx context.Context, step schemactl.Step) (schemactl.StepResult, error) {
	start := time.Now()
	result := schemactl.StepResult{Step: step}

	statement, ok := step.SQL[r.config.Dialect]
	if !ok || statement == "" {
		result.Status = schemactl.StepSkippedDialect
		result.Duration = time.Since(start)
		return result, nil
	}

	exists, err := r.guard(ctx, step)
	if err != nil {
		result.Status = schemactl.StepFailed
		result.Err = err
		result.Duration = time.Since(start)
		return result, fmt.Errorf("step %s: %w: %w", step.Name, schemactl.ErrGuardProbe, err)
	}
	if exists {
		result.Status = schemactl.StepSkippedExists
		result.Duration = time.Since(start)
		return result, nil
	}

	if _, err := r.config.DB.ExecContext(ctx, statement); err != nil {
		result.Status = schemactl.StepFailed
		result.Err = err
		result.Duration = time.Since(start)
		return result, fmt.Errorf("step %s: %w: %w", step.Name, schemactl.ErrStepFailed, err)
	}

	result.Status = schemactl.StepApplied
	result.Duration = time.Since(start)
	return result, nil
}

// guard reports whether the step's target object already exists.
// Function steps are never guarded: CREATE OR REPLACE is safe to rerun
// and skipping it would silently pin an outdated function body.
func (r *Runner) guard(ctx context.Context, step schemactl.Step) (bool, error) {
	switch step.Kind {
	case schemactl.StepAddColumn:
		return r.config.Inspector.ColumnExists(ctx, step.Table, step.Object)
	case schemactl.StepCreateTrigger:
		return r.config.Inspector.TriggerExists(ctx, step.Object)
	case schemactl.StepReplaceFunction:
		return false, nil
	}
	return false, fmt.Errorf("unknown step kind %q", step.Kind)
}

// Verify probes every object the plan creates and returns the names of
// those missing. An empty slice means the schema is fully migrated.
func (r *Runner) Verify(ctx context.Context, plan []schemactl.Step) ([]string, error) {
	var missing []string
	for _, step := range plan {
		if statement, ok := step.SQL[r.config.Dialect]; !ok || statement == "" {
			continue
		}

		var exists bool
		var err error
		switch step.Kind {
		case schemactl.StepAddColumn:
			exists, err = r.config.Inspector.ColumnExists(ctx, step.Table, step.Object)
		case schemactl.StepCreateTrigger:
			exists, err = r.config.Inspector.TriggerExists(ctx, step.Object)
		case schemactl.StepReplaceFunction:
			exists, err = r.config.Inspector.FunctionExists(ctx, step.Object)
		}
		if err != nil {
			return nil, fmt.Errorf("verify %s: %w", step.Name, err)
		}
		if !exists {
			missing = append(missing, step.Name)
		}
	}
	return missing, nil
}

// Render returns the plan's statements for a dialect as a single SQL
// script, one statement per stanza. Used by dry runs.
func Render(plan []schemactl.Step, dialect schemactl.Dialect) (string, error) {
	if !dialect.Valid() {
		return "", fmt.Errorf("%q: %w", dialect, schemactl.ErrUnsupportedDialect)
	}

	var b strings.Builder
	for _, step := range plan {
		statement, ok := step.SQL[dialect]
		if !ok || statement == "" {
			continue
		}
		b.WriteString("-- ")
		b.WriteString(step.Name)
		b.WriteString("\n")
		b.WriteString(statement)
		b.WriteString(";\n\n")
	}
	return b.String(), nil
}

func (r *Runner) logDebug(ctx context.Context, msg string, kv ...any) {
	if r.config.Logger != nil {
		r.config.Logger.Debug(ctx, msg, kv...)
	}
}

func (r *Runner) logInfo(ctx context.Context, msg string, kv ...any) {
	if r.config.Logger != nil {
		r.config.Logger.Info(ctx, msg, kv...)
	}
}

func (r *Runner) logError(ctx context.Context, msg string, kv ...any) {
	if r.config.Logger != nil {
		r.config.Logger.Error(ctx, msg, kv...)
	}
}
