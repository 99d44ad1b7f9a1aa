// Package db holds the typed queries over the sqlite schema in
// internal/database/migrations. Each query is a method on Queries so the same
// code runs against the pool or inside a transaction.
package db

import (
	"context"
	"database/sql"
	"strings"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{
		db: tx,
	}
}

// expandIDs replaces the single "/*SLICE:ids*/?" marker in query with one
// placeholder per id.
func expandIDs(query string, ids []int64) (string, []interface{}) {
	args := make([]interface{}, len(ids))
	marks := make([]string, len(ids))
	for i, id := range ids {
		args[i] = id
		marks[i] = "?"
	}
	if len(ids) == 0 {
		marks = []string{"NULL"}
	}
	return strings.Replace(query, "/*SLICE:ids*/?", strings.Join(marks, ","), 1), args
}
