package healthlogstorage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/leporo/sqlf"
	"github.com/samber/lo"

	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/adapter/storage"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/adapter/storage/pgutil"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/healthlog"
)

type PostgresStorage struct {
	db   storage.DBContext
	seen *pgutil.SeenSet[*healthlog.DailyLog]
}

func NewPostgresStorage(db storage.DBContext) *PostgresStorage {
	return &PostgresStorage{
		db:   db,
		seen: pgutil.NewSeenSet[*healthlog.DailyLog](),
	}
}

func (s *PostgresStorage) Add(ctx context.Context, l *healthlog.DailyLog) error {
	q := logColumns(sqlf.InsertInto("health_logs"), l).
		Set("log_id", l.LogID).
		Set("user_id", l.UserID).
		Set("log_date", l.Date).
		Set("created_at", l.CreatedAt)

	if _, err := q.ExecAndClose(ctx, s.db); err != nil {
		if pgutil.ViolatesConstraint(err, "health_logs_user_id_log_date_key") ||
			pgutil.ViolatesConstraint(err, "health_logs_pkey") {
			return healthlog.ErrLogExists
		}
		return storage.InternalError(err)
	}

	if err := s.replaceExercises(ctx, l); err != nil {
		return err
	}

	s.seen.Mark(l.LogID, l)

	return nil
}

// Persist rewrites the mutable columns of an existing record and replaces
// its exercise rows wholesale; exercise lists are small and append-only
// within a day.
func (s *PostgresStorage) Persist(ctx context.Context, l *healthlog.DailyLog) error {
	q := logColumns(sqlf.Update("health_logs"), l).
		Where("log_id = ?", l.LogID)

	res, err := q.ExecAndClose(ctx, s.db)
	if err := pgutil.AssertUpdated(res, err, healthlog.ErrLogNotFound); err != nil {
		return err
	}

	if err := s.replaceExercises(ctx, l); err != nil {
		return err
	}

	s.seen.Mark(l.LogID, l)

	return nil
}

func logColumns(q *sqlf.Stmt, l *healthlog.DailyLog) *sqlf.Stmt {
	return q.
		Set("water_consumed_ml", l.Water.ConsumedMl).
		Set("water_goal_ml", l.Water.GoalMl).
		Set("steps_count", l.Steps.Count).
		Set("steps_goal", l.Steps.Goal).
		Set("sleep_hours", l.Sleep.DurationHours).
		Set("sleep_quality", l.Sleep.Quality).
		Set("mood_rating", l.Mood.Rating).
		Set("score_nutrition", l.Scores.Nutrition).
		Set("score_activity", l.Scores.Activity).
		Set("score_sleep", l.Scores.Sleep).
		Set("score_hydration", l.Scores.Hydration).
		Set("score_mental", l.Scores.Mental).
		Set("score_overall", l.Scores.Overall).
		Set("updated_at", l.UpdatedAt)
}

func (s *PostgresStorage) replaceExercises(ctx context.Context, l *healthlog.DailyLog) error {
	del := sqlf.DeleteFrom("log_exercises").Where("log_id = ?", l.LogID)
	if _, err := del.ExecAndClose(ctx, s.db); err != nil {
		return storage.InternalError(err)
	}

	for i, e := range l.Exercises {
		ins := sqlf.InsertInto("log_exercises").
			Set("log_id", l.LogID).
			Set("position", i).
			Set("name", e.Name).
			Set("duration_min", e.DurationMin).
			Set("calories_burned", e.CaloriesBurned).
			Set("intensity", e.Intensity)

		if _, err := ins.ExecAndClose(ctx, s.db); err != nil {
			return storage.InternalError(err)
		}
	}
	return nil
}

func (s *PostgresStorage) get(
	ctx context.Context,
	modify func(stmt *sqlf.Stmt),
) ([]*healthlog.DailyLog, error) {
	var tmp logRow

	q := sqlf.From("health_logs l").
		Select("l.log_id").To(&tmp.LogID).
		Select("l.user_id").To(&tmp.UserID).
		Select("l.log_date").To(&tmp.Date).
		Select("l.water_consumed_ml").To(&tmp.WaterConsumedMl).
		Select("l.water_goal_ml").To(&tmp.WaterGoalMl).
		Select("l.steps_count").To(&tmp.StepsCount).
		Select("l.steps_goal").To(&tmp.StepsGoal).
		Select("l.sleep_hours").To(&tmp.SleepHours).
		Select("l.sleep_quality").To(&tmp.SleepQuality).
		Select("l.mood_rating").To(&tmp.MoodRating).
		Select("l.score_nutrition").To(&tmp.ScoreNutrition).
		Select("l.score_activity").To(&tmp.ScoreActivity).
		Select("l.score_sleep").To(&tmp.ScoreSleep).
		Select("l.score_hydration").To(&tmp.ScoreHydration).
		Select("l.score_mental").To(&tmp.ScoreMental).
		Select("l.score_overall").To(&tmp.ScoreOverall).
		Select("l.created_at").To(&tmp.CreatedAt).
		Select("l.updated_at").To(&tmp.UpdatedAt)

	modify(q)

	var logs []*healthlog.DailyLog

	err := q.QueryAndClose(ctx, s.db, func(rows *sql.Rows) {
		logs = append(logs, rowToDomain(tmp))
	})

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, storage.InternalError(err)
	}

	for _, l := range logs {
		if err := s.loadExercises(ctx, l); err != nil {
			return nil, err
		}
	}

	return logs, nil
}

func (s *PostgresStorage) loadExercises(ctx context.Context, l *healthlog.DailyLog) error {
	var tmp struct {
		Name           string
		DurationMin    int
		CaloriesBurned int
		Intensity      string
	}

	q := sqlf.From("log_exercises e").
		Where("e.log_id = ?", l.LogID).
		OrderBy("e.position").
		Select("e.name").To(&tmp.Name).
		Select("e.duration_min").To(&tmp.DurationMin).
		Select("e.calories_burned").To(&tmp.CaloriesBurned).
		Select("e.intensity").To(&tmp.Intensity)

	err := q.QueryAndClose(ctx, s.db, func(rows *sql.Rows) {
		l.Exercises = append(l.Exercises, healthlog.Exercise{
			Name:           tmp.Name,
			DurationMin:    tmp.DurationMin,
			CaloriesBurned: tmp.CaloriesBurned,
			Intensity:      healthlog.ExerciseIntensity(tmp.Intensity),
		})
	})

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return storage.InternalError(err)
	}
	return nil
}

func (s *PostgresStorage) GetByDate(ctx context.Context, userID string, date time.Time) (*healthlog.DailyLog, error) {
	logs, err := s.get(ctx, func(stmt *sqlf.Stmt) {
		stmt.Where("l.user_id = ?", userID).Where("l.log_date = ?", healthlog.Day(date))
	})
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, healthlog.ErrLogNotFound
	}
	s.seen.Mark(logs[0].LogID, logs[0])
	return logs[0], nil
}

// ListRange returns the records with log_date in [from, until), ordered
// by date.
func (s *PostgresStorage) ListRange(ctx context.Context, userID string, from, until time.Time) ([]*healthlog.DailyLog, error) {
	logs, err := s.get(ctx, func(stmt *sqlf.Stmt) {
		stmt.Where("l.user_id = ?", userID).
			Where("l.log_date >= ?", healthlog.Day(from)).
			Where("l.log_date < ?", healthlog.Day(until)).
			OrderBy("l.log_date")
	})
	if err != nil {
		return nil, err
	}
	lo.ForEach(logs, func(l *healthlog.DailyLog, _ int) {
		s.seen.Mark(l.LogID, l)
	})
	return logs, nil
}

func (s *PostgresStorage) CollectEvents() []domain.Event {
	return s.seen.CollectEvents()
}

func (s *PostgresStorage) Close() error {
	return nil
}

type logRow struct {
	LogID           string
	UserID          string
	Date            time.Time
	WaterConsumedMl float64
	WaterGoalMl     float64
	StepsCount      int
	StepsGoal       int
	SleepHours      *float64
	SleepQuality    *string
	MoodRating      *int
	ScoreNutrition  *float64
	ScoreActivity   *float64
	ScoreSleep      *float64
	ScoreHydration  *float64
	ScoreMental     *float64
	ScoreOverall    *int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func rowToDomain(r logRow) *healthlog.DailyLog {
	var quality *healthlog.SleepQuality
	if r.SleepQuality != nil {
		q := healthlog.SleepQuality(*r.SleepQuality)
		quality = &q
	}
	return &healthlog.DailyLog{
		LogID:  r.LogID,
		UserID: r.UserID,
		Date:   r.Date,
		Water: healthlog.Water{
			ConsumedMl: r.WaterConsumedMl,
			GoalMl:     r.WaterGoalMl,
		},
		Steps: healthlog.Steps{
			Count: r.StepsCount,
			Goal:  r.StepsGoal,
		},
		Sleep: healthlog.Sleep{
			DurationHours: r.SleepHours,
			Quality:       quality,
		},
		Mood: healthlog.Mood{Rating: r.MoodRating},
		Scores: healthlog.Scores{
			Nutrition: r.ScoreNutrition,
			Activity:  r.ScoreActivity,
			Sleep:     r.ScoreSleep,
			Hydration: r.ScoreHydration,
			Mental:    r.ScoreMental,
			Overall:   r.ScoreOverall,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
