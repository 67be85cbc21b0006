// Package migrations renders the store's schema migration plan as
// reviewable SQL files for PostgreSQL, MySQL/MariaDB, and SQLite. The
// generated artifact is the offline counterpart of the migrate runner:
// operators who cannot run the tool against production apply the file
// through their usual SQL channel instead.
package migrations
