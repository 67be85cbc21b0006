package schemactl

import "errors"

var (
	// ErrUnsupportedDialect indicates the requested dialect is not one of
	// postgres, mysql, or sqlite.
	ErrUnsupportedDialect = errors.New("unsupported dialect")

	// ErrEmptyPlan indicates a runner was asked to apply a plan with no steps.
	ErrEmptyPlan = errors.New("empty migration plan")

	// ErrGuardProbe indicates an existence probe failed before a guarded
	// statement could run. The run aborts because idempotence cannot be
	// decided without the probe result.
	ErrGuardProbe = errors.New("guard probe failed")

	// ErrStepFailed indicates the database rejected a migration statement.
	// Remaining steps are not attempted; statements already applied stay
	// applied (there is no rollback unit).
	ErrStepFailed = errors.New("migration step failed")

	// ErrNoServerCommand indicates the bootstrap launcher was configured
	// without a command to start.
	ErrNoServerCommand = errors.New("no server command configured")
)
