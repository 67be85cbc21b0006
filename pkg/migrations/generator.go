package migrations

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/farmactiva/schemactl"
	"github.com/farmactiva/schemactl/migrate"
)

var identifierRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// validateIdentifier ensures an identifier contains only safe characters for SQL.
// Returns an error if the identifier contains characters that could be used for SQL injection.
func validateIdentifier(name, fieldName string) error {
	if name == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	if !identifierRegex.MatchString(name) {
		return fmt.Errorf("%s must start with a letter and contain only letters, numbers, and underscores (got: %s)", fieldName, name)
	}
	return nil
}

// validatePlan validates every identifier the plan references before any
// of it is interpolated into a file.
func validatePlan(plan []schemactl.Step) error {
	for _, step := range plan {
		if step.Table != "" {
			if err := validateIdentifier(step.Table, "Table"); err != nil {
				return err
			}
		}
		if err := validateIdentifier(step.Object, "Object"); err != nil {
			return err
		}
	}
	return nil
}

// Config configures migration file generation.
type Config struct {
	// OutputFolder is the directory where the migration file will be written
	OutputFolder string

	// OutputFilename is the name of the migration file
	OutputFilename string
}

// DefaultConfig returns the default configuration for generated migrations.
func DefaultConfig() Config {
	timestamp := time.Now().Format("20060102150405")
	return Config{
		OutputFolder:   "migrations",
		OutputFilename: fmt.Sprintf("%s_timestamp_backfill.sql", timestamp),
	}
}

func write(config *Config, sql string) error {
	if err := os.MkdirAll(config.OutputFolder, 0o755); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}

	outputPath := filepath.Join(config.OutputFolder, config.OutputFilename)
	if err := os.WriteFile(outputPath, []byte(sql), 0o600); err != nil {
		return fmt.Errorf("failed to write migration file: %w", err)
	}

	return nil
}

// GeneratePostgres generates a PostgreSQL migration file. The file is
// fully re-runnable on its own: column adds carry IF NOT EXISTS, the
// touch function uses CREATE OR REPLACE, and trigger creation is wrapped
// in an existence-checked DO block.
func GeneratePostgres(config *Config) error {
	plan := migrate.Plan()
	if err := validatePlan(plan); err != nil {
		return fmt.Errorf("invalid plan: %w", err)
	}

	return write(config, generatePostgresSQL(plan))
}

func generatePostgresSQL(plan []schemactl.Step) string {
	var b strings.Builder
	fmt.Fprintf(&b, `-- Timestamp and addressing backfill
-- Generated: %s
-- Database: PostgreSQL
-- Safe to re-run: every statement is guarded or a CREATE OR REPLACE.

`, time.Now().Format(time.RFC3339))

	for _, step := range plan {
		statement, ok := step.SQL[schemactl.DialectPostgres]
		if !ok || statement == "" {
			continue
		}

		fmt.Fprintf(&b, "-- %s\n", step.Name)
		if step.Kind == schemactl.StepCreateTrigger {
			fmt.Fprintf(&b, `DO $do$
BEGIN
    IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = '%s' AND NOT tgisinternal) THEN
        %s;
    END IF;
END
$do$;

`, step.Object, statement)
			continue
		}
		fmt.Fprintf(&b, "%s;\n\n", statement)
	}

	return b.String()
}

// GenerateMySQL generates a MySQL/MariaDB migration file. Triggers are
// installed with DROP TRIGGER IF EXISTS followed by CREATE TRIGGER so
// body updates take effect on re-run. Column adds have no IF NOT EXISTS
// in MySQL; re-runs against a migrated schema should use the migrate
// runner, which probes information_schema first.
func GenerateMySQL(config *Config) error {
	plan := migrate.Plan()
	if err := validatePlan(plan); err != nil {
		return fmt.Errorf("invalid plan: %w", err)
	}

	return write(config, generateMySQLSQL(plan))
}

func generateMySQLSQL(plan []schemactl.Step) string {
	var b strings.Builder
	fmt.Fprintf(&b, `-- Timestamp and addressing backfill
-- Generated: %s
-- Database: MySQL/MariaDB
-- Column adds are not guarded here; re-run through the migrate runner.

`, time.Now().Format(time.RFC3339))

	for _, step := range plan {
		statement, ok := step.SQL[schemactl.DialectMySQL]
		if !ok || statement == "" {
			continue
		}

		fmt.Fprintf(&b, "-- %s\n", step.Name)
		if step.Kind == schemactl.StepCreateTrigger {
			fmt.Fprintf(&b, "DROP TRIGGER IF EXISTS %s;\n%s;\n\n", step.Object, statement)
			continue
		}
		fmt.Fprintf(&b, "%s;\n\n", statement)
	}

	return b.String()
}

// GenerateSQLite generates a SQLite migration file. SQLite supports
// CREATE TRIGGER IF NOT EXISTS but not guarded column adds; re-runs
// against a migrated schema should use the migrate runner.
func GenerateSQLite(config *Config) error {
	plan := migrate.Plan()
	if err := validatePlan(plan); err != nil {
		return fmt.Errorf("invalid plan: %w", err)
	}

	return write(config, generateSQLiteSQL(plan))
}

func generateSQLiteSQL(plan []schemactl.Step) string {
	var b strings.Builder
	fmt.Fprintf(&b, `-- Timestamp and addressing backfill
-- Generated: %s
-- Database: SQLite
-- Column adds are not guarded here; re-run through the migrate runner.

`, time.Now().Format(time.RFC3339))

	for _, step := range plan {
		statement, ok := step.SQL[schemactl.DialectSQLite]
		if !ok || statement == "" {
			continue
		}

		fmt.Fprintf(&b, "-- %s\n", step.Name)
		if step.Kind == schemactl.StepCreateTrigger {
			statement = strings.Replace(statement, "CREATE TRIGGER ", "CREATE TRIGGER IF NOT EXISTS ", 1)
		}
		fmt.Fprintf(&b, "%s;\n\n", statement)
	}

	return b.String()
}
