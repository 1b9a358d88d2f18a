// Package lifecycle coordinates recomputation of derived fields. Every
// profile or daily-log mutation flows through here so BMI, BMR, calorie
// goal and daily scores are recomputed explicitly and persisted in the
// same transaction as the write that invalidated them.
package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/metrics"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/score"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/summary"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/app/unitofwork"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/healthlog"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/user"
)

// PointsDailyLog is awarded the first time a user logs anything on a
// given day.
const PointsDailyLog = 10

// NutritionScorer supplies the precomputed nutrition sub-score for a
// user's day, or nil when no food was logged. The score engine never
// derives it from raw entries itself.
type NutritionScorer interface {
	ScoreFor(ctx context.Context, userID string, date time.Time) (*float64, error)
}

type Service struct {
	logger    *slog.Logger
	nutrition NutritionScorer
}

func NewService(nutrition NutritionScorer, logger *slog.Logger) *Service {
	return &Service{
		logger:    logger,
		nutrition: nutrition,
	}
}

// OnProfileWrite applies a profile delta and recomputes the derived
// metrics before anything is committed, so readers never observe derived
// fields stale relative to the profile they came from.
func (s *Service) OnProfileWrite(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	userID string,
	delta user.ProfileDelta,
) (u *user.User, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		if u, err = ctx.UserStorage.GetByID(ctx.Context(), userID); err != nil {
			return err
		}

		u.ApplyProfileDelta(delta)

		if err := s.recompute(u); err != nil {
			return err
		}

		if err := ctx.UserStorage.Persist(ctx.Context(), u); err != nil {
			return err
		}

		return ctx.Commit()
	})
	return
}

// recompute rederives BMI, BMR and the calorie goal from the current
// profile. BMI needs only height and weight; BMR and a real calorie goal
// additionally need age and gender (the Complete state). Not-computable
// results stay nil and the calorie goal falls back to its documented
// default.
func (s *Service) recompute(u *user.User) error {
	var bmi *float64
	if v, ok := metrics.BMI(u.Profile.HeightCm, u.Profile.WeightKg); ok {
		bmi = &v
	}

	var bmr *int
	if v, ok := metrics.BMR(u.Profile.WeightKg, u.Profile.HeightCm, u.Profile.Age, u.Profile.Gender); ok {
		bmr = &v
	}

	goal, err := metrics.DailyCalorieGoal(bmr, u.Profile.ActivityLevel, u.Profile.Goal)
	if err != nil {
		return err
	}

	u.SetDerived(bmi, bmr, goal)
	return nil
}

// OnDailyLogWrite merges a metrics delta into the day's record (creating
// it on the first write of the day), rescores the day and updates the
// user's streak and points, all in one transaction.
func (s *Service) OnDailyLogWrite(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	userID string,
	date time.Time,
	delta healthlog.MetricsDelta,
) (l *healthlog.DailyLog, err error) {
	err = uow.Atomic(ctx, func(atomic *AtomicContext) error {
		created := false

		var err error
		l, err = atomic.LogStorage.GetByDate(atomic.Context(), userID, date)
		if errors.Is(err, healthlog.ErrLogNotFound) {
			l = healthlog.New(uuid.NewString(), userID, date)
			created = true
		} else if err != nil {
			return err
		}

		l.Apply(delta)

		nutrition, err := s.nutrition.ScoreFor(ctx, userID, date)
		if err != nil {
			return err
		}
		l.SetScores(score.Compute(l, nutrition))

		if created {
			err = atomic.LogStorage.Add(atomic.Context(), l)
		} else {
			err = atomic.LogStorage.Persist(atomic.Context(), l)
		}
		if err != nil {
			return err
		}

		u, err := atomic.UserStorage.GetByID(atomic.Context(), userID)
		if err != nil {
			return err
		}
		u.RecordActivity(time.Now())
		if created {
			u.AddPoints(PointsDailyLog)
		}
		if err := atomic.UserStorage.Persist(atomic.Context(), u); err != nil {
			return err
		}

		return atomic.Commit()
	})
	return
}

func (s *Service) GetDailyLog(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	userID string,
	date time.Time,
) (l *healthlog.DailyLog, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		if l, err = ctx.LogStorage.GetByDate(ctx.Context(), userID, date); err != nil {
			return err
		}
		return ctx.Commit()
	})
	return
}

// WeeklySummary is a read-only rollup over the records existing in
// [start, start+7d).
func (s *Service) WeeklySummary(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	userID string,
	start time.Time,
) (w summary.Weekly, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		records, err := ctx.LogStorage.ListRange(
			ctx.Context(), userID, start, healthlog.Day(start).AddDate(0, 0, 7))
		if err != nil {
			return err
		}
		w = summary.WeeklySummary(records, start)
		return ctx.Commit()
	})
	return
}

func (s *Service) GetUser(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	userID string,
) (u *user.User, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		if u, err = ctx.UserStorage.GetByID(ctx.Context(), userID); err != nil {
			return err
		}
		return ctx.Commit()
	})
	return
}
