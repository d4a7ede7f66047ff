// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package.
// Queries are built with squirrel and scanned with sqlx; schema changes are
// shipped as embedded goose migrations.
package postgres
