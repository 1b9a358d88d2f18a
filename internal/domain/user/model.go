package user

import (
	"errors"
	"fmt"
	"time"

	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("user already exists")
	ErrDeviceExists        = errors.New("device already exists")
	ErrAuthorizationExists = errors.New("authorization already exists")
	ErrUserEmailDuplicate  = fmt.Errorf("%w: email is not unique", ErrUserExists)
	ErrInvalidCredentials  = errors.New("email or password is invalid")
	ErrUnauthorized        = errors.New("unauthorized")
)

const (
	EventCreated    = "user.created"
	EventNewLogin   = "user.login"
	EventLogout     = "user.logout"
	EventRecomputed = "user.profile_recomputed"
)

// DefaultDailyCalorieGoal is persisted until the profile becomes complete
// enough to compute a real target. It is a documented fallback, not a
// zero value.
const DefaultDailyCalorieGoal = 2000

// PointsPerLevel controls gamification level-ups: level = points/1000 + 1.
const PointsPerLevel = 1000

type Authorizer interface {
	Hash(password string) string
	Authorize(u *User, password string, dev Device) (*Authorization, error)
}

type Device struct {
	Browser   string `diff:"browser"`
	OS        string `diff:"os"`
	IPAddress string `diff:"ip_address"`
	Model     string `diff:"model"`
}

type Authorization struct {
	ID         string     `diff:"-"`
	Secret     string     `diff:"-"`
	CreatedAt  time.Time  `diff:"-"`
	ValidUntil time.Time  `diff:"valid_until"`
	LogoutAt   *time.Time `diff:"logout_at"`
	Device     Device     `diff:"-"`
}

func (a *Authorization) IsActive() bool {
	return time.Now().Before(a.ValidUntil) && a.LogoutAt == nil
}

// Profile holds the raw physical attributes a user reports. Absent fields
// are nil, never zero: a nil height means "not provided", while 0 would be
// an out-of-range measurement.
type Profile struct {
	Age           *int
	Gender        *Gender
	HeightCm      *float64
	WeightKg      *float64
	ActivityLevel ActivityLevel
	Goal          Goal
}

// Complete reports whether all attributes required for BMR computation are
// present. The lifecycle service treats Incomplete -> Complete as the
// transition that first enables BMR and calorie-goal derivation.
func (p Profile) Complete() bool {
	return p.Age != nil && p.Gender != nil && p.HeightCm != nil && p.WeightKg != nil
}

// Completion returns the profile completion percentage over the fields the
// onboarding flow asks for.
func (p Profile) Completion() int {
	total := 5
	done := 0
	if p.Age != nil {
		done++
	}
	if p.Gender != nil {
		done++
	}
	if p.HeightCm != nil {
		done++
	}
	if p.WeightKg != nil {
		done++
	}
	if p.Goal != "" {
		done++
	}
	return done * 100 / total
}

// Gamification tracks engagement points, level and the daily streak.
type Gamification struct {
	Points        int
	Level         int
	StreakCurrent int
	StreakLongest int
}

type User struct {
	domain.Aggregate `diff:"-"`
	UserID           string           `diff:"-"`
	Email            string           `diff:"email"`
	PasswordHash     string           `diff:"password_hash"`
	Profile          Profile          `diff:"-"`
	BMI              *float64         `diff:"-"`
	BMR              *int             `diff:"-"`
	DailyCalorieGoal int              `diff:"-"`
	Gamification     Gamification     `diff:"-"`
	LastActive       time.Time        `diff:"last_active"`
	CreatedAt        time.Time        `diff:"-"`
	UpdatedAt        time.Time        `diff:"updated_at"`
	Authorizations   []*Authorization `diff:"-"`
}

func NewUser(
	userID string,
	email,
	password string,
	hasher Authorizer,
) *User {
	now := time.Now().UTC()
	u := &User{
		UserID:       userID,
		Email:        email,
		PasswordHash: hasher.Hash(password),
		Profile: Profile{
			ActivityLevel: ModeratelyActive,
			Goal:          ImproveHealth,
		},
		DailyCalorieGoal: DefaultDailyCalorieGoal,
		Gamification:     Gamification{Level: 1},
		LastActive:       now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	u.PushEvent(CreatedEvent{
		At:     u.CreatedAt,
		UserID: u.UserID,
		Email:  u.Email,
	})
	return u
}

func (u *User) GetAuthByID(authID string) *Authorization {
	for _, a := range u.Authorizations {
		if a.ID == authID {
			return a
		}
	}
	return nil
}

func (u *User) GetAuthBySecret(secret string) *Authorization {
	for _, a := range u.Authorizations {
		if a.Secret == secret {
			return a
		}
	}
	return nil
}

func (u *User) Authorize(a Authorizer, password string, dev Device) (*Authorization, error) {
	auth, err := a.Authorize(u, password, dev)
	if err != nil {
		return nil, err
	}

	u.Authorizations = append(u.Authorizations, auth)

	u.PushEvent(LoginEvent{
		At:     time.Now().UTC(),
		UserID: u.UserID,
		ID:     auth.ID,
		Device: auth.Device,
	})

	return auth, nil
}

func (u *User) Logout(authID string) error {
	auth := u.GetAuthByID(authID)
	if auth == nil {
		return fmt.Errorf("%w: provided identifier not found", ErrUnauthorized)
	}

	if auth.LogoutAt != nil {
		return fmt.Errorf("%w: authorization already closed", ErrUnauthorized)
	}

	now := time.Now().UTC()
	auth.LogoutAt = &now

	u.PushEvent(LogoutEvent{
		At:     now,
		UserID: u.UserID,
		ID:     auth.ID,
	})

	return nil
}

// ProfileDelta is a partial profile write. Nil fields are untouched, so
// two sequential deltas with disjoint fields merge instead of overwriting
// each other.
type ProfileDelta struct {
	Age           *int
	Gender        *Gender
	HeightCm      *float64
	WeightKg      *float64
	ActivityLevel *ActivityLevel
	Goal          *Goal
}

// Empty reports whether the delta touches no field.
func (d ProfileDelta) Empty() bool {
	return d.Age == nil && d.Gender == nil && d.HeightCm == nil &&
		d.WeightKg == nil && d.ActivityLevel == nil && d.Goal == nil
}

// ApplyProfileDelta merges non-nil delta fields into the profile. Derived
// fields are NOT touched here: the lifecycle service recomputes them right
// after, in the same transaction.
func (u *User) ApplyProfileDelta(d ProfileDelta) {
	if d.Age != nil {
		u.Profile.Age = d.Age
	}
	if d.Gender != nil {
		u.Profile.Gender = d.Gender
	}
	if d.HeightCm != nil {
		u.Profile.HeightCm = d.HeightCm
	}
	if d.WeightKg != nil {
		u.Profile.WeightKg = d.WeightKg
	}
	if d.ActivityLevel != nil {
		u.Profile.ActivityLevel = *d.ActivityLevel
	}
	if d.Goal != nil {
		u.Profile.Goal = *d.Goal
	}
	u.UpdatedAt = time.Now().UTC()
}

// SetDerived stores freshly computed derived metrics and raises the
// recomputed event. Derived fields are only ever written through this
// method so they stay consistent with the profile they came from.
func (u *User) SetDerived(bmi *float64, bmr *int, calorieGoal int) {
	u.BMI = bmi
	u.BMR = bmr
	u.DailyCalorieGoal = calorieGoal
	u.PushEvent(RecomputedEvent{
		At:               time.Now().UTC(),
		UserID:           u.UserID,
		BMI:              bmi,
		BMR:              bmr,
		DailyCalorieGoal: calorieGoal,
	})
}

// AddPoints awards gamification points and levels the user up every
// PointsPerLevel points.
func (u *User) AddPoints(points int) {
	u.Gamification.Points += points
	newLevel := u.Gamification.Points/PointsPerLevel + 1
	if newLevel > u.Gamification.Level {
		u.Gamification.Level = newLevel
	}
}

// RecordActivity advances the daily streak: consecutive-day activity
// extends it, a gap of more than one day resets it to 1.
func (u *User) RecordActivity(now time.Time) {
	last := u.LastActive.UTC().Truncate(24 * time.Hour)
	today := now.UTC().Truncate(24 * time.Hour)
	days := int(today.Sub(last).Hours() / 24)

	switch {
	case u.Gamification.StreakCurrent == 0:
		u.Gamification.StreakCurrent = 1
	case days == 1:
		u.Gamification.StreakCurrent++
	case days > 1:
		u.Gamification.StreakCurrent = 1
	}
	if u.Gamification.StreakCurrent > u.Gamification.StreakLongest {
		u.Gamification.StreakLongest = u.Gamification.StreakCurrent
	}
	u.LastActive = now.UTC()
}

type CreatedEvent struct {
	At     time.Time
	UserID string
	Email  string
}

func (e CreatedEvent) Type() string { return EventCreated }

func (e CreatedEvent) PublishedAt() time.Time { return e.At }

type LoginEvent struct {
	At     time.Time
	UserID string
	ID     string
	Device Device
}

func (e LoginEvent) Type() string { return EventNewLogin }

func (e LoginEvent) PublishedAt() time.Time { return e.At }

type LogoutEvent struct {
	At     time.Time
	UserID string
	ID     string
}

func (e LogoutEvent) Type() string { return EventLogout }

func (e LogoutEvent) PublishedAt() time.Time { return e.At }

type RecomputedEvent struct {
	At               time.Time
	UserID           string
	BMI              *float64
	BMR              *int
	DailyCalorieGoal int
}

func (e RecomputedEvent) Type() string { return EventRecomputed }

func (e RecomputedEvent) PublishedAt() time.Time { return e.At }
