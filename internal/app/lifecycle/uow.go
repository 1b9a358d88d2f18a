package lifecycle

import (
	"context"
	"errors"
	"time"

	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/adapter/storage"
	healthlogstorage "github.com/Kishore-R45/HealthMate-AI-Backend/internal/adapter/storage/healthlogs"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/adapter/storage/userstorage"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/healthlog"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/user"
)

type UserStorage interface {
	GetByID(ctx context.Context, userID string) (*user.User, error)
	Persist(ctx context.Context, u *user.User) error
	CollectEvents() []domain.Event
	Close() error
}

type LogStorage interface {
	Add(ctx context.Context, l *healthlog.DailyLog) error
	GetByDate(ctx context.Context, userID string, date time.Time) (*healthlog.DailyLog, error)
	ListRange(ctx context.Context, userID string, from, until time.Time) ([]*healthlog.DailyLog, error)
	Persist(ctx context.Context, l *healthlog.DailyLog) error
	CollectEvents() []domain.Event
	Close() error
}

// AtomicContext spans both stores so a daily-log write and the
// gamification update it triggers land in one transaction.
type AtomicContext struct {
	ctx         context.Context
	db          storage.DBContext
	UserStorage UserStorage
	LogStorage  LogStorage
}

func NewAtomicContext(ctx context.Context, db storage.DBContext) (*AtomicContext, error) {
	return &AtomicContext{
		ctx:         ctx,
		db:          db,
		UserStorage: userstorage.NewPostgresStorage(db, nil),
		LogStorage:  healthlogstorage.NewPostgresStorage(db),
	}, nil
}

func (a *AtomicContext) Context() context.Context {
	return a.ctx
}

func (a *AtomicContext) Commit() error {
	return a.db.Commit()
}

func (a *AtomicContext) Close() (err error) {
	if closeErr := a.UserStorage.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}
	if closeErr := a.LogStorage.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}
	return err
}

func (a *AtomicContext) CollectEvents() []domain.Event {
	return append(a.UserStorage.CollectEvents(), a.LogStorage.CollectEvents()...)
}
