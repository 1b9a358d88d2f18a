package foodlog

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/adapter/storage"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/summary"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/unitofwork"
)

// NutritionProvider derives the 0-100 nutrition sub-score from the food
// diary: 100 when the day's logged calories hit the user's daily goal
// exactly, dropping one point per percent of deviation, floored at zero.
// Days with no entries score nil, not zero.
type NutritionProvider struct {
	db     storage.DBContext
	msgBus unitofwork.MessageBus
	logger *slog.Logger
}

func NewNutritionProvider(db storage.DBContext, msgBus unitofwork.MessageBus, logger *slog.Logger) *NutritionProvider {
	return &NutritionProvider{
		db:     db,
		msgBus: msgBus,
		logger: logger,
	}
}

func (p *NutritionProvider) ScoreFor(ctx context.Context, userID string, date time.Time) (result *float64, err error) {
	uow := unitofwork.New[*AtomicContext](p.db, NewAtomicContext, p.msgBus, p.logger)

	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		entries, err := ctx.FoodStorage.ListByDate(ctx.Context(), userID, date)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return ctx.Commit()
		}

		u, err := ctx.UserStorage.GetByID(ctx.Context(), userID)
		if err != nil {
			return err
		}
		goal := float64(u.DailyCalorieGoal)
		if goal <= 0 {
			return ctx.Commit()
		}

		v := nutritionScore(summary.DailySummary(entries).TotalCalories, goal)
		result = &v

		return ctx.Commit()
	})
	return
}

func nutritionScore(consumed, goal float64) float64 {
	deviation := math.Abs(consumed-goal) / goal * 100
	return math.Max(0, 100-deviation)
}
