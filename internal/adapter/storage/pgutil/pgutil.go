package pgutil

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/adapter/storage"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain"
)

type aggregate interface {
	PopEvents() []domain.Event
}

// SeenSet tracks the aggregates a storage touched during a transaction so
// their queued domain events can be collected after commit.
type SeenSet[T aggregate] struct {
	mu   sync.Mutex
	seen map[string]T
}

func NewSeenSet[T aggregate]() *SeenSet[T] {
	return &SeenSet[T]{seen: make(map[string]T)}
}

func (s *SeenSet[T]) Mark(id string, v T) {
	s.mu.Lock()
	s.seen[id] = v
	s.mu.Unlock()
}

func (s *SeenSet[T]) CollectEvents() []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	var events []domain.Event
	for _, v := range s.seen {
		events = append(events, v.PopEvents()...)
	}
	s.seen = make(map[string]T)
	return events
}

func ViolatesConstraint(err error, constraintName string) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) &&
		pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) &&
		pgErr.ConstraintName == constraintName
}

func IsIntegrityViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code)
}

func Peek[K comparable, V any](items map[K]V, defaultValue ...V) V {
	for _, item := range items {
		return item
	}

	if len(defaultValue) != 0 {
		return defaultValue[0]
	}
	return *new(V)
}

func PeekOrErr[K comparable, V any](items map[K]V, err, notFoundErr error) (V, error) {
	if err != nil {
		return *new(V), err
	}

	if len(items) == 0 {
		return *new(V), notFoundErr
	}

	return Peek(items), nil
}

func AssertUpdated(res sql.Result, err error, notUpdatedError error) error {
	if err != nil {
		return storage.InternalError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return storage.InternalError(err)
	}

	if affected == 0 {
		return notUpdatedError
	}
	return nil
}
