package userstorage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/leporo/sqlf"
	"github.com/r3labs/diff"

	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/adapter/storage"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/adapter/storage/pgutil"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/user"
)

type PostgresStorage struct {
	db     storage.DBContext
	logger *slog.Logger
	seen   *pgutil.SeenSet[*user.User]
}

func NewPostgresStorage(db storage.DBContext, logger *slog.Logger) *PostgresStorage {
	return &PostgresStorage{
		db:     db,
		logger: logger,
		seen:   pgutil.NewSeenSet[*user.User](),
	}
}

func (s *PostgresStorage) Add(ctx context.Context, u *user.User) error {
	q := sqlf.InsertInto("users").
		Set("user_id", u.UserID).
		Set("email", u.Email).
		Set("password_hash", u.PasswordHash).
		Set("age", u.Profile.Age).
		Set("gender", u.Profile.Gender).
		Set("height_cm", u.Profile.HeightCm).
		Set("weight_kg", u.Profile.WeightKg).
		Set("activity_level", u.Profile.ActivityLevel).
		Set("goal", u.Profile.Goal).
		Set("bmi", u.BMI).
		Set("bmr", u.BMR).
		Set("daily_calorie_goal", u.DailyCalorieGoal).
		Set("points", u.Gamification.Points).
		Set("level", u.Gamification.Level).
		Set("streak_current", u.Gamification.StreakCurrent).
		Set("streak_longest", u.Gamification.StreakLongest).
		Set("last_active", u.LastActive).
		Set("created_at", u.CreatedAt).
		Set("updated_at", u.UpdatedAt)

	if _, err := q.ExecAndClose(ctx, s.db); err != nil {
		if pgutil.ViolatesConstraint(err, "users_pkey") {
			return user.ErrUserExists
		}
		if pgutil.ViolatesConstraint(err, "users_email_key") {
			return user.ErrUserEmailDuplicate
		}
		return storage.InternalError(err)
	}

	for _, a := range u.Authorizations {
		if err := s.addAuth(ctx, u.UserID, a); err != nil {
			return err
		}
	}

	s.seen.Mark(u.UserID, u)

	return nil
}

func (s *PostgresStorage) addAuth(ctx context.Context, userID string, a *user.Authorization) error {
	addAuth := sqlf.InsertInto("authorizations").
		Set("authorization_id", a.ID).
		Set("secret", a.Secret).
		Set("logout_at", a.LogoutAt).
		Set("created_at", a.CreatedAt).
		Set("valid_until", a.ValidUntil).
		Set("user_id", userID)

	addDevice := sqlf.InsertInto("devices").
		Set("authorization_id", a.ID).
		Set("os", a.Device.OS).
		Set("device_model", a.Device.Model).
		Set("ip_address", a.Device.IPAddress).
		Set("browser", a.Device.Browser)

	if _, err := addAuth.ExecAndClose(ctx, s.db); err != nil {
		if pgutil.IsIntegrityViolation(err) {
			return user.ErrAuthorizationExists
		}
		return storage.InternalError(err)
	}

	if _, err := addDevice.ExecAndClose(ctx, s.db); err != nil {
		if pgutil.IsIntegrityViolation(err) {
			return user.ErrDeviceExists
		}
		return storage.InternalError(err)
	}

	return nil
}

func (s *PostgresStorage) get(
	ctx context.Context,
	whereClause string,
	whereArgs ...any,
) ([]*user.User, error) {
	var tmp userWithAuthRow

	q := sqlf.From("users u").
		LeftJoin("authorizations a", "u.user_id = a.user_id").
		LeftJoin("devices d", "d.authorization_id = a.authorization_id").
		Where(whereClause, whereArgs...).
		Select("u.user_id").To(&tmp.UserID).
		Select("u.email").To(&tmp.Email).
		Select("u.password_hash").To(&tmp.PasswordHash).
		Select("u.age").To(&tmp.Age).
		Select("u.gender").To(&tmp.Gender).
		Select("u.height_cm").To(&tmp.HeightCm).
		Select("u.weight_kg").To(&tmp.WeightKg).
		Select("u.activity_level").To(&tmp.ActivityLevel).
		Select("u.goal").To(&tmp.Goal).
		Select("u.bmi").To(&tmp.BMI).
		Select("u.bmr").To(&tmp.BMR).
		Select("u.daily_calorie_goal").To(&tmp.DailyCalorieGoal).
		Select("u.points").To(&tmp.Points).
		Select("u.level").To(&tmp.Level).
		Select("u.streak_current").To(&tmp.StreakCurrent).
		Select("u.streak_longest").To(&tmp.StreakLongest).
		Select("u.last_active").To(&tmp.LastActive).
		Select("u.created_at").To(&tmp.CreatedAt).
		Select("u.updated_at").To(&tmp.UpdatedAt).
		Select("a.authorization_id").To(&tmp.AuthorizationID).
		Select("a.secret").To(&tmp.Secret).
		Select("a.valid_until").To(&tmp.AuthValidUntil).
		Select("a.logout_at").To(&tmp.LogoutAt).
		Select("a.created_at").To(&tmp.AuthCreatedAt).
		Select("d.os").To(&tmp.OS).
		Select("d.browser").To(&tmp.Browser).
		Select("d.device_model").To(&tmp.Model).
		Select("d.ip_address").To(&tmp.IPAddress)

	var fetchedRows []userWithAuthRow

	err := q.QueryAndClose(ctx, s.db, func(rows *sql.Rows) {
		fetchedRows = append(fetchedRows, tmp)
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storage.InternalError(err)
	}

	return rowsToDomain(fetchedRows), nil
}

func (s *PostgresStorage) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	users, err := s.get(ctx, "u.email = ?", email)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, user.ErrUserNotFound
	}
	s.seen.Mark(users[0].UserID, users[0])
	return users[0], nil
}

func (s *PostgresStorage) GetByID(ctx context.Context, userID string) (*user.User, error) {
	users, err := s.get(ctx, "u.user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, user.ErrUserNotFound
	}
	s.seen.Mark(users[0].UserID, users[0])
	return users[0], nil
}

func (s *PostgresStorage) GetByAuthorization(ctx context.Context, secret string) (*user.User, error) {
	users, err := s.get(ctx, "a.secret = ?", secret)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, user.ErrUserNotFound
	}
	s.seen.Mark(users[0].UserID, users[0])
	return users[0], nil
}

// Persist writes the aggregate back. The diff between the stored state
// and the in-memory state decides whether the users row needs an update
// at all; authorizations are upserted individually.
func (s *PostgresStorage) Persist(ctx context.Context, u *user.User) error {
	dbState, err := s.GetByID(ctx, u.UserID)
	if err != nil {
		return err
	}

	changes, _ := diff.Diff(toRow(dbState), toRow(u))
	if len(changes) != 0 {
		q := sqlf.Update("users").
			Where("user_id = ?", u.UserID).
			Set("email", u.Email).
			Set("password_hash", u.PasswordHash).
			Set("age", u.Profile.Age).
			Set("gender", u.Profile.Gender).
			Set("height_cm", u.Profile.HeightCm).
			Set("weight_kg", u.Profile.WeightKg).
			Set("activity_level", u.Profile.ActivityLevel).
			Set("goal", u.Profile.Goal).
			Set("bmi", u.BMI).
			Set("bmr", u.BMR).
			Set("daily_calorie_goal", u.DailyCalorieGoal).
			Set("points", u.Gamification.Points).
			Set("level", u.Gamification.Level).
			Set("streak_current", u.Gamification.StreakCurrent).
			Set("streak_longest", u.Gamification.StreakLongest).
			Set("last_active", u.LastActive).
			Set("updated_at", u.UpdatedAt)

		res, err := q.ExecAndClose(ctx, s.db)
		if err := pgutil.AssertUpdated(res, err, user.ErrUserNotFound); err != nil {
			return err
		}
	}

	dbAuthSet := make(map[string]*user.Authorization)
	for _, a := range dbState.Authorizations {
		dbAuthSet[a.ID] = a
	}

	for _, a := range u.Authorizations {
		if _, ok := dbAuthSet[a.ID]; !ok {
			if err := s.addAuth(ctx, u.UserID, a); err != nil {
				return err
			}
		} else {
			if err := s.persistAuth(ctx, dbAuthSet[a.ID], a); err != nil {
				return err
			}
		}
	}

	s.seen.Mark(u.UserID, u)

	return nil
}

func (s *PostgresStorage) persistAuth(ctx context.Context, source, changed *user.Authorization) error {
	changes, _ := diff.Diff(source, changed)
	if len(changes) == 0 {
		return nil
	}

	q := sqlf.Update("authorizations").
		Where("authorization_id = ?", source.ID).
		Set("valid_until", changed.ValidUntil).
		Set("logout_at", changed.LogoutAt)

	if _, err := q.ExecAndClose(ctx, s.db); err != nil {
		return storage.InternalError(err)
	}
	return nil
}

func (s *PostgresStorage) CollectEvents() []domain.Event {
	return s.seen.CollectEvents()
}

func (s *PostgresStorage) Close() error {
	return nil
}

// userRow is the flat diffable projection of the users table, used only
// to decide whether Persist has anything to write.
type userRow struct {
	Email            string   `diff:"email"`
	PasswordHash     string   `diff:"password_hash"`
	Age              *int     `diff:"age"`
	Gender           *string  `diff:"gender"`
	HeightCm         *float64 `diff:"height_cm"`
	WeightKg         *float64 `diff:"weight_kg"`
	ActivityLevel    string   `diff:"activity_level"`
	Goal             string   `diff:"goal"`
	BMI              *float64 `diff:"bmi"`
	BMR              *int     `diff:"bmr"`
	DailyCalorieGoal int      `diff:"daily_calorie_goal"`
	Points           int      `diff:"points"`
	Level            int      `diff:"level"`
	StreakCurrent    int      `diff:"streak_current"`
	StreakLongest    int      `diff:"streak_longest"`
	LastActive       int64    `diff:"last_active"`
}

func toRow(u *user.User) userRow {
	var gender *string
	if u.Profile.Gender != nil {
		g := string(*u.Profile.Gender)
		gender = &g
	}
	return userRow{
		Email:            u.Email,
		PasswordHash:     u.PasswordHash,
		Age:              u.Profile.Age,
		Gender:           gender,
		HeightCm:         u.Profile.HeightCm,
		WeightKg:         u.Profile.WeightKg,
		ActivityLevel:    string(u.Profile.ActivityLevel),
		Goal:             string(u.Profile.Goal),
		BMI:              u.BMI,
		BMR:              u.BMR,
		DailyCalorieGoal: u.DailyCalorieGoal,
		Points:           u.Gamification.Points,
		Level:            u.Gamification.Level,
		StreakCurrent:    u.Gamification.StreakCurrent,
		StreakLongest:    u.Gamification.StreakLongest,
		LastActive:       u.LastActive.Unix(),
	}
}

type userWithAuthRow struct {
	UserID           string
	Email            string
	PasswordHash     string
	Age              *int
	Gender           *string
	HeightCm         *float64
	WeightKg         *float64
	ActivityLevel    string
	Goal             string
	BMI              *float64
	BMR              *int
	DailyCalorieGoal int
	Points           int
	Level            int
	StreakCurrent    int
	StreakLongest    int
	LastActive       time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	AuthorizationID *string
	Secret          *string
	AuthValidUntil  *time.Time
	LogoutAt        *time.Time
	AuthCreatedAt   *time.Time
	OS              *string
	Browser         *string
	Model           *string
	IPAddress       *string
}

func rowsToDomain(rows []userWithAuthRow) []*user.User {
	byID := make(map[string]*user.User)
	var order []string

	for _, r := range rows {
		u, ok := byID[r.UserID]
		if !ok {
			var gender *user.Gender
			if r.Gender != nil {
				g := user.Gender(*r.Gender)
				gender = &g
			}
			u = &user.User{
				UserID:       r.UserID,
				Email:        r.Email,
				PasswordHash: r.PasswordHash,
				Profile: user.Profile{
					Age:           r.Age,
					Gender:        gender,
					HeightCm:      r.HeightCm,
					WeightKg:      r.WeightKg,
					ActivityLevel: user.ActivityLevel(r.ActivityLevel),
					Goal:          user.Goal(r.Goal),
				},
				BMI:              r.BMI,
				BMR:              r.BMR,
				DailyCalorieGoal: r.DailyCalorieGoal,
				Gamification: user.Gamification{
					Points:        r.Points,
					Level:         r.Level,
					StreakCurrent: r.StreakCurrent,
					StreakLongest: r.StreakLongest,
				},
				LastActive: r.LastActive,
				CreatedAt:  r.CreatedAt,
				UpdatedAt:  r.UpdatedAt,
			}
			byID[r.UserID] = u
			order = append(order, r.UserID)
		}

		if r.AuthorizationID != nil {
			a := &user.Authorization{
				ID:         *r.AuthorizationID,
				Secret:     *r.Secret,
				CreatedAt:  *r.AuthCreatedAt,
				ValidUntil: *r.AuthValidUntil,
				LogoutAt:   r.LogoutAt,
			}
			if r.OS != nil {
				a.Device = user.Device{
					Browser:   *r.Browser,
					OS:        *r.OS,
					IPAddress: *r.IPAddress,
					Model:     *r.Model,
				}
			}
			u.Authorizations = append(u.Authorizations, a)
		}
	}

	users := make([]*user.User, 0, len(order))
	for _, id := range order {
		users = append(users, byID[id])
	}
	return users
}
