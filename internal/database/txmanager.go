package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type ctxTxKey struct{}

// Querier is the subset of *sql.DB and *sql.Tx the repositories use.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxManager scopes repository calls to one transaction. A send commits the lead
// status, its log entries, the daily counter and the outbox event together.
type TxManager interface {
	// WithTx runs fn inside a transaction. When ctx already carries a transaction,
	// fn joins it and the outermost call owns commit and rollback.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type sqlTxManager struct {
	db *sql.DB
}

// NewTxManager returns a TxManager backed by db.
func NewTxManager(db *sql.DB) TxManager {
	return &sqlTxManager{db: db}
}

func (m *sqlTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, joined := ctx.Value(ctxTxKey{}).(*sql.Tx); joined {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(context.WithValue(ctx, ctxTxKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback transaction: %w", rbErr))
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetTx returns the transaction carried by ctx, or db when there is none.
func GetTx(ctx context.Context, db *sql.DB) Querier {
	if tx, ok := ctx.Value(ctxTxKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}
