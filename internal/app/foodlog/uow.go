package foodlog

import (
	"context"
	"errors"
	"time"

	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/adapter/storage"
	foodentrystorage "github.com/Kishore-R45/HealthMate-AI-Backend/internal/adapter/storage/foodentries"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/adapter/storage/userstorage"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/food"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/user"
)

type FoodStorage interface {
	Add(ctx context.Context, e *food.Entry) error
	GetByID(ctx context.Context, entryID string) (*food.Entry, error)
	ListByDate(ctx context.Context, userID string, date time.Time) ([]*food.Entry, error)
	Delete(ctx context.Context, userID, entryID string) error
	CollectEvents() []domain.Event
	Close() error
}

type UserStorage interface {
	GetByID(ctx context.Context, userID string) (*user.User, error)
	CollectEvents() []domain.Event
	Close() error
}

type AtomicContext struct {
	ctx         context.Context
	db          storage.DBContext
	FoodStorage FoodStorage
	UserStorage UserStorage
}

func NewAtomicContext(ctx context.Context, db storage.DBContext) (*AtomicContext, error) {
	return &AtomicContext{
		ctx:         ctx,
		db:          db,
		FoodStorage: foodentrystorage.NewPostgresStorage(db),
		UserStorage: userstorage.NewPostgresStorage(db, nil),
	}, nil
}

func (a *AtomicContext) Context() context.Context {
	return a.ctx
}

func (a *AtomicContext) Commit() error {
	return a.db.Commit()
}

func (a *AtomicContext) Close() (err error) {
	if closeErr := a.FoodStorage.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}
	if closeErr := a.UserStorage.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}
	return err
}

func (a *AtomicContext) CollectEvents() []domain.Event {
	return append(a.FoodStorage.CollectEvents(), a.UserStorage.CollectEvents()...)
}
