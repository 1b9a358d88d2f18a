package foodentrystorage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/leporo/sqlf"

	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/adapter/storage"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/adapter/storage/pgutil"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/food"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/healthlog"
)

type PostgresStorage struct {
	db   storage.DBContext
	seen *pgutil.SeenSet[*food.Entry]
}

func NewPostgresStorage(db storage.DBContext) *PostgresStorage {
	return &PostgresStorage{
		db:   db,
		seen: pgutil.NewSeenSet[*food.Entry](),
	}
}

func (s *PostgresStorage) Add(ctx context.Context, e *food.Entry) error {
	q := sqlf.InsertInto("food_entries").
		Set("entry_id", e.EntryID).
		Set("user_id", e.UserID).
		Set("food_name", e.Name).
		Set("brand", e.Brand).
		Set("meal_type", e.MealType).
		Set("quantity", e.Quantity).
		Set("calories", e.Nutrition.Calories).
		Set("protein", e.Nutrition.Protein).
		Set("carbs", e.Nutrition.Carbs).
		Set("fat", e.Nutrition.Fat).
		Set("fiber", e.Nutrition.Fiber).
		Set("sugar", e.Nutrition.Sugar).
		Set("sodium", e.Nutrition.Sodium).
		Set("cholesterol", e.Nutrition.Cholesterol).
		Set("entry_date", healthlog.Day(e.Date)).
		Set("logged_at", e.LoggedAt)

	if _, err := q.ExecAndClose(ctx, s.db); err != nil {
		if pgutil.ViolatesConstraint(err, "food_entries_pkey") {
			return food.ErrEntryExists
		}
		return storage.InternalError(err)
	}

	s.seen.Mark(e.EntryID, e)

	return nil
}

func (s *PostgresStorage) get(
	ctx context.Context,
	modify func(stmt *sqlf.Stmt),
) ([]*food.Entry, error) {
	var tmp entryRow

	q := sqlf.From("food_entries f").
		Select("f.entry_id").To(&tmp.EntryID).
		Select("f.user_id").To(&tmp.UserID).
		Select("f.food_name").To(&tmp.Name).
		Select("f.brand").To(&tmp.Brand).
		Select("f.meal_type").To(&tmp.MealType).
		Select("f.quantity").To(&tmp.Quantity).
		Select("f.calories").To(&tmp.Calories).
		Select("f.protein").To(&tmp.Protein).
		Select("f.carbs").To(&tmp.Carbs).
		Select("f.fat").To(&tmp.Fat).
		Select("f.fiber").To(&tmp.Fiber).
		Select("f.sugar").To(&tmp.Sugar).
		Select("f.sodium").To(&tmp.Sodium).
		Select("f.cholesterol").To(&tmp.Cholesterol).
		Select("f.entry_date").To(&tmp.Date).
		Select("f.logged_at").To(&tmp.LoggedAt)

	modify(q)

	var entries []*food.Entry

	err := q.QueryAndClose(ctx, s.db, func(rows *sql.Rows) {
		entries = append(entries, rowToDomain(tmp))
	})

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, storage.InternalError(err)
	}

	return entries, nil
}

func (s *PostgresStorage) GetByID(ctx context.Context, entryID string) (*food.Entry, error) {
	entries, err := s.get(ctx, func(stmt *sqlf.Stmt) {
		stmt.Where("f.entry_id = ?", entryID)
	})
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, food.ErrEntryNotFound
	}
	return entries[0], nil
}

// ListByDate returns every entry logged for the user's calendar date,
// oldest first.
func (s *PostgresStorage) ListByDate(ctx context.Context, userID string, date time.Time) ([]*food.Entry, error) {
	return s.get(ctx, func(stmt *sqlf.Stmt) {
		stmt.Where("f.user_id = ?", userID).
			Where("f.entry_date = ?", healthlog.Day(date)).
			OrderBy("f.logged_at")
	})
}

func (s *PostgresStorage) Delete(ctx context.Context, userID, entryID string) error {
	q := sqlf.DeleteFrom("food_entries").
		Where("entry_id = ?", entryID).
		Where("user_id = ?", userID)

	res, err := q.ExecAndClose(ctx, s.db)
	return pgutil.AssertUpdated(res, err, food.ErrEntryNotFound)
}

func (s *PostgresStorage) CollectEvents() []domain.Event {
	return s.seen.CollectEvents()
}

func (s *PostgresStorage) Close() error {
	return nil
}

type entryRow struct {
	EntryID     string
	UserID      string
	Name        string
	Brand       string
	MealType    string
	Quantity    float64
	Calories    float64
	Protein     float64
	Carbs       float64
	Fat         float64
	Fiber       float64
	Sugar       float64
	Sodium      float64
	Cholesterol float64
	Date        time.Time
	LoggedAt    time.Time
}

func rowToDomain(r entryRow) *food.Entry {
	return &food.Entry{
		EntryID:  r.EntryID,
		UserID:   r.UserID,
		Name:     r.Name,
		Brand:    r.Brand,
		MealType: food.MealType(r.MealType),
		Quantity: r.Quantity,
		Nutrition: food.Nutrition{
			Calories:    r.Calories,
			Protein:     r.Protein,
			Carbs:       r.Carbs,
			Fat:         r.Fat,
			Fiber:       r.Fiber,
			Sugar:       r.Sugar,
			Sodium:      r.Sodium,
			Cholesterol: r.Cholesterol,
		},
		Date:     r.Date,
		LoggedAt: r.LoggedAt,
	}
}
