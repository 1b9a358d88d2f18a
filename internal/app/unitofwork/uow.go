// Package unitofwork wraps a storage transaction around an application
// operation: every read-recompute-write sequence runs inside one Atomic
// call so derived fields are never persisted stale relative to the write
// that triggered them.
package unitofwork

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/adapter/storage"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain"
)

var (
	ErrRollback = errors.New("rollback")
)

type AtomicContext interface {
	Context() context.Context
	Commit() error
	Close() error
	CollectEvents() []domain.Event
}

type MessageBus interface {
	PublishEvents(events ...domain.Event) error
}

type UnitOfWork[T AtomicContext] struct {
	db         storage.DBContext
	newContext func(context.Context, storage.DBContext) (T, error)
	msgBus     MessageBus
	logger     *slog.Logger
}

func New[T AtomicContext](
	db storage.DBContext,
	newCtx func(context.Context, storage.DBContext) (T, error),
	msgBus MessageBus,
	logger *slog.Logger,
) *UnitOfWork[T] {
	return &UnitOfWork[T]{
		db:         db,
		newContext: newCtx,
		msgBus:     msgBus,
		logger:     logger,
	}
}

// Atomic begins a transaction, runs do with an atomic context bound to it
// and publishes the collected domain events once do returns cleanly. The
// callback must call Commit itself; any error rolls the transaction back.
func (uow *UnitOfWork[T]) Atomic(
	ctx context.Context,
	do func(T) error,
) (err error) {
	tx, err := uow.db.Begin(ctx)
	if err != nil {
		return rollbackError(err)
	}

	txCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	atomicCtx, err := uow.newContext(txCtx, tx)
	if err != nil {
		return rollbackError(err)
	}

	defer func() {
		if closeErr := atomicCtx.Close(); closeErr != nil {
			uow.logger.Error("failed to close atomic context", "error", closeErr)
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			if err := tx.Rollback(); err != nil {
				uow.logger.Error("failed to rollback transaction", "error", err)
			}
			panic(r)
		}
	}()

	if err := do(atomicCtx); err != nil {
		if err := tx.Rollback(); err != nil {
			uow.logger.Error("failed to rollback transaction", "error", err)
		}
		return rollbackError(err)
	}

	if err := uow.msgBus.PublishEvents(atomicCtx.CollectEvents()...); err != nil {
		uow.logger.Error("failed to publish events", "error", err)
		return err
	}

	return nil
}

func rollbackError(err error) error {
	return errors.Join(fmt.Errorf("state rollback: %w", err), ErrRollback)
}
