package database

import "context"

// Row is a single query result. Both *sql.Row and pgx.Row satisfy it.
type Row interface {
	Scan(dest ...any) error
}

// Rows iterates a multi-row query result.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}

// Result reports what a statement changed. Inserts use RETURNING or
// client-generated IDs, so only the affected row count is exposed.
type Result interface {
	RowsAffected() (int64, error)
}

// Executor runs SQL against either a connection or an open transaction.
// Task and meeting repositories only ever see this interface.
type Executor interface {
	Exec(ctx context.Context, query string, args ...any) (Result, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
	Query(ctx context.Context, query string, args ...any) (Rows, error)
}

// Transaction is an Executor scoped to one unit of work.
type Transaction interface {
	Executor
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Connection is the process-wide handle to the task and meeting store.
type Connection interface {
	Executor
	BeginTx(ctx context.Context) (Transaction, error)
	Ping(ctx context.Context) error
	Close() error
	Driver() Driver
}
