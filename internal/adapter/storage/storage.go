package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	ErrInternal = errors.New("internal storage error")
)

// DBContext abstracts "something queries can run against": the root pool
// or an open transaction. Begin on a transaction returns the transaction
// itself, so nested units of work share one commit point.
type DBContext interface {
	Begin(ctx context.Context) (DBContext, error)
	Commit() error
	Rollback() error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type DB struct {
	*sql.DB
}

func (d *DB) Commit() error {
	return nil
}

func (d *DB) Rollback() error {
	return nil
}

func (d *DB) Begin(ctx context.Context) (DBContext, error) {
	tx, err := d.DB.BeginTx(ctx, nil)
	return &Tx{tx}, err
}

type Tx struct {
	*sql.Tx
}

func (t *Tx) Begin(ctx context.Context) (DBContext, error) {
	return t, nil
}

func InternalError(err error) error {
	return errors.Join(fmt.Errorf("internal storage error: %w", err), ErrInternal)
}
