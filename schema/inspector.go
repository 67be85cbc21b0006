// Package schema provides dialect-aware existence probes for schema
// objects. The migration runner uses these probes as idempotency guards
// before executing DDL.
package schema

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/farmactiva/schemactl"
)

// Inspector answers existence questions about columns, triggers, and
// functions in the connected database.
type Inspector struct {
	db      *sql.DB
	dialect schemactl.Dialect
}

// New creates an Inspector for the given database handle and dialect.
func New(db *sql.DB, dialect schemactl.Dialect) (*Inspector, error) {
	if !dialect.Valid() {
		return nil, fmt.Errorf("%q: %w", dialect, schemactl.ErrUnsupportedDialect)
	}
	return &Inspector{db: db, dialect: dialect}, nil
}

// ColumnExists reports whether table has a column with the given name.
func (i *Inspector) ColumnExists(ctx context.Context, table, column string) (bool, error) {
	var query string
	switch i.dialect {
	case schemactl.DialectPostgres:
		query = `SELECT COUNT(*) FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1 AND column_name = $2`
	case schemactl.DialectMySQL:
		query = `SELECT COUNT(*) FROM information_schema.columns WHERE table_schema = DATABASE() AND table_name = ? AND column_name = ?`
	case schemactl.DialectSQLite:
		query = `SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`
	}

	var count int
	if err := i.db.QueryRowContext(ctx, query, table, column).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to probe column %s.%s: %w", table, column, err)
	}
	return count > 0, nil
}

// TriggerExists reports whether a trigger with the given name exists.
func (i *Inspector) TriggerExists(ctx context.Context, name string) (bool, error) {
	var query string
	switch i.dialect {
	case schemactl.DialectPostgres:
		query = `SELECT COUNT(*) FROM pg_trigger WHERE tgname = $1 AND NOT tgisinternal`
	case schemactl.DialectMySQL:
		query = `SELECT COUNT(*) FROM information_schema.triggers WHERE trigger_schema = DATABASE() AND trigger_name = ?`
	case schemactl.DialectSQLite:
		query = `SELECT COUNT(*) FROM sqlite_master WHERE type = 'trigger' AND name = ?`
	}

	var count int
	if err := i.db.QueryRowContext(ctx, query, name).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to probe trigger %s: %w", name, err)
	}
	return count > 0, nil
}

// FunctionExists reports whether a stored function with the given name
// exists. Only PostgreSQL has stored functions in this plan; other
// dialects report false without querying.
func (i *Inspector) FunctionExists(ctx context.Context, name string) (bool, error) {
	if i.dialect != schemactl.DialectPostgres {
		return false, nil
	}

	var count int
	query := `SELECT COUNT(*) FROM pg_proc WHERE proname = $1`
	if err := i.db.QueryRowContext(ctx, query, name).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to probe function %s: %w", name, err)
	}
	return count > 0, nil
}
