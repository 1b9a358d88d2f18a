package auth

import (
	"context"

	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/adapter/storage"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/adapter/storage/userstorage"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/user"
)

type UserStorage interface {
	Add(ctx context.Context, u *user.User) error
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, userID string) (*user.User, error)
	GetByAuthorization(ctx context.Context, secret string) (*user.User, error)
	Persist(ctx context.Context, u *user.User) error
	CollectEvents() []domain.Event
	Close() error
}

type AtomicContext struct {
	ctx         context.Context
	db          storage.DBContext
	UserStorage UserStorage
}

func NewAtomicContext(ctx context.Context, db storage.DBContext) (*AtomicContext, error) {
	return &AtomicContext{
		ctx:         ctx,
		db:          db,
		UserStorage: userstorage.NewPostgresStorage(db, nil),
	}, nil
}

func (a *AtomicContext) Context() context.Context {
	return a.ctx
}

func (a *AtomicContext) Commit() error {
	return a.db.Commit()
}

func (a *AtomicContext) Close() error {
	return a.UserStorage.Close()
}

func (a *AtomicContext) CollectEvents() []domain.Event {
	return a.UserStorage.CollectEvents()
}
