package store

import "github.com/jmoiron/sqlx"

// DBTX is implemented by both *sqlx.DB and *sqlx.Tx, allowing store
// implementations to run against either a pooled connection or a transaction.
type DBTX interface {
	sqlx.ExtContext
}
