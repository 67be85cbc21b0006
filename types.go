package schemactl

import "time"

// Dialect identifies the SQL dialect a migration plan is rendered for.
type Dialect string

const (
	// DialectPostgres targets PostgreSQL, the production database.
	DialectPostgres Dialect = "postgres"

	// DialectMySQL targets MySQL/MariaDB.
	DialectMySQL Dialect = "mysql"

	// DialectSQLite targets SQLite, used for local development databases.
	DialectSQLite Dialect = "sqlite"
)

// Valid reports whether d is a supported dialect.
func (d Dialect) Valid() bool {
	switch d {
	case DialectPostgres, DialectMySQL, DialectSQLite:
		return true
	}
	return false
}

// StepKind classifies a migration step by the schema object it touches.
type StepKind string

const (
	// StepAddColumn adds a column to an existing table.
	// Guarded: skipped when the column already exists.
	StepAddColumn StepKind = "add-column"

	// StepReplaceFunction creates or replaces a stored function.
	// Never guarded; the function body is reapplied on every run so
	// logic fixes take effect without dropping dependent triggers.
	StepReplaceFunction StepKind = "replace-function"

	// StepCreateTrigger installs a trigger.
	// Guarded: skipped when a trigger with the same name already exists.
	StepCreateTrigger StepKind = "create-trigger"
)

// Step is a single schema change in a migration plan.
// Each step carries its own SQL per dialect; a dialect with no entry
// means the step does not apply there (e.g. stored functions on MySQL).
type Step struct {
	// Name is a stable, human-readable identifier for the step,
	// e.g. "categorias.actualizado_en".
	Name string

	// Kind determines which existence guard applies before execution.
	Kind StepKind

	// Table is the table the step targets.
	Table string

	// Object is the column, trigger, or function name the step creates.
	Object string

	// SQL maps each supported dialect to the statement to execute.
	SQL map[Dialect]string
}

// StepStatus is the outcome of applying a single step.
type StepStatus string

const (
	// StepApplied indicates the statement was executed successfully.
	StepApplied StepStatus = "applied"

	// StepSkippedExists indicates the guard found the object already
	// present and the statement was not executed.
	StepSkippedExists StepStatus = "skipped-exists"

	// StepSkippedDialect indicates the step has no statement for the
	// target dialect.
	StepSkippedDialect StepStatus = "skipped-dialect"

	// StepFailed indicates the statement was executed and the database
	// rejected it. A failed step aborts the remaining plan.
	StepFailed StepStatus = "failed"
)

// StepResult records the outcome of one step within a run.
type StepResult struct {
	// Step is the step this result belongs to.
	Step Step

	// Status is the outcome of the step.
	Status StepStatus

	// Err is the database error for a failed step, nil otherwise.
	Err error

	// Duration is how long the step took, including the guard probe.
	Duration time.Duration
}

// Report summarizes a migration run. Results are in plan order and may
// be shorter than the plan when a fatal step aborted the run.
type Report struct {
	// RunID uniquely identifies this run (UUID). It appears in logs
	// only; no state is persisted in the database.
	RunID string

	// Dialect is the dialect the plan was applied against.
	Dialect Dialect

	// StartedAt is when the run began.
	StartedAt time.Time

	// Duration is the total wall-clock time of the run.
	Duration time.Duration

	// Results holds one entry per attempted step, in plan order.
	Results []StepResult
}

// Applied returns the number of steps that executed successfully.
func (r Report) Applied() int {
	return r.count(StepApplied)
}

// Skipped returns the number of steps skipped by an existence guard.
func (r Report) Skipped() int {
	return r.count(StepSkippedExists)
}

// Failed returns the result of the failed step, or nil if the run
// completed without a fatal error.
func (r Report) Failed() *StepResult {
	for i := range r.Results {
		if r.Results[i].Status == StepFailed {
			return &r.Results[i]
		}
	}
	return nil
}

func (r Report) count(status StepStatus) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}
