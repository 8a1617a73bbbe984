// Package database provides connection pool management for PostgreSQL.
//
// The recorder persists link lifecycle events to a single Postgres
// database; this package owns pool construction and sizing.
package database
