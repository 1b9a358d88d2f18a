// Package foodlog manages the food diary: entry CRUD, the per-day
// summary and the nutrition sub-score derived from it.
package foodlog

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/summary"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/unitofwork"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/food"
)

type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	return &Service{logger: logger}
}

func (s *Service) LogEntry(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	userID, name, brand string,
	mealType food.MealType,
	quantity float64,
	nutrition food.Nutrition,
	date time.Time,
) (e *food.Entry, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		e, err = food.NewEntry(uuid.NewString(), userID, name, brand, mealType, quantity, nutrition, date)
		if err != nil {
			return err
		}

		if err := ctx.FoodStorage.Add(ctx.Context(), e); err != nil {
			return err
		}

		return ctx.Commit()
	})
	return
}

func (s *Service) ListByDate(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	userID string,
	date time.Time,
) (entries []*food.Entry, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		if entries, err = ctx.FoodStorage.ListByDate(ctx.Context(), userID, date); err != nil {
			return err
		}
		return ctx.Commit()
	})
	return
}

func (s *Service) DeleteEntry(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	userID, entryID string,
) error {
	return uow.Atomic(ctx, func(ctx *AtomicContext) error {
		if err := ctx.FoodStorage.Delete(ctx.Context(), userID, entryID); err != nil {
			return err
		}
		return ctx.Commit()
	})
}

// DailySummary folds the day's entries into totals and the fixed
// five-bucket meal breakdown.
func (s *Service) DailySummary(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	userID string,
	date time.Time,
) (d summary.Daily, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		entries, err := ctx.FoodStorage.ListByDate(ctx.Context(), userID, date)
		if err != nil {
			return err
		}
		d = summary.DailySummary(entries)
		return ctx.Commit()
	})
	return
}
