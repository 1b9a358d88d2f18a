package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/unitofwork"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/user"
)

var (
	ErrInvalidAuthorization = errors.New("invalid authorization")
)

type Service struct {
	logger     *slog.Logger
	Authorizer *Authorizer
}

func NewService(auth *Authorizer, logger *slog.Logger) *Service {
	return &Service{
		logger:     logger,
		Authorizer: auth,
	}
}

type Tokens struct {
	AccessToken  string
	RefreshToken string
}

func (s *Service) CreateUser(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	email string,
	password string,
) (u *user.User, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		u = user.NewUser(uuid.NewString(), email, password, s.Authorizer)
		if err := ctx.UserStorage.Add(ctx.Context(), u); err != nil {
			return err
		}

		return ctx.Commit()
	})
	return
}

func (s *Service) Login(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	device user.Device,
	email string,
	password string,
) (tokens Tokens, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		u, err := ctx.UserStorage.GetByEmail(ctx.Context(), email)
		if err != nil {
			return err
		}

		a, err := u.Authorize(s.Authorizer, password, device)
		if err != nil {
			return err
		}

		accessToken, err := s.Authorizer.GenerateAccessToken(u, a)
		if err != nil {
			return err
		}

		if err := ctx.UserStorage.Persist(ctx.Context(), u); err != nil {
			return err
		}

		tokens = Tokens{
			AccessToken:  accessToken,
			RefreshToken: a.Secret,
		}
		return ctx.Commit()
	})
	return
}

func (s *Service) Refresh(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	refreshToken string,
) (tokens Tokens, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		u, err := ctx.UserStorage.GetByAuthorization(ctx.Context(), refreshToken)
		if err != nil {
			return err
		}

		a := u.GetAuthBySecret(refreshToken)
		if a == nil || !a.IsActive() {
			return fmt.Errorf("%w: authorization is not active", ErrInvalidAuthorization)
		}

		tokens.AccessToken, err = s.Authorizer.GenerateAccessToken(u, a)
		tokens.RefreshToken = refreshToken
		if err != nil {
			return err
		}
		return ctx.Commit()
	})
	return
}

func (s *Service) Logout(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	userID string,
	authID string,
) error {
	return uow.Atomic(ctx, func(ctx *AtomicContext) error {
		u, err := ctx.UserStorage.GetByID(ctx.Context(), userID)
		if err != nil {
			return err
		}

		if err := u.Logout(authID); err != nil {
			return err
		}

		if err := ctx.UserStorage.Persist(ctx.Context(), u); err != nil {
			return err
		}

		return ctx.Commit()
	})
}
