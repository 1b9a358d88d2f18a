package user

import (
	"testing"
	"time"
)

type plainHasher struct{}

func (plainHasher) Hash(password string) string { return "hashed:" + password }

func (plainHasher) Authorize(u *User, password string, dev Device) (*Authorization, error) {
	return &Authorization{
		ID:         "auth-1",
		Secret:     "secret-1",
		CreatedAt:  time.Now(),
		ValidUntil: time.Now().Add(time.Hour),
		Device:     dev,
	}, nil
}

func newTestUser() *User {
	u := NewUser("user-1", "jo@example.com", "password", plainHasher{})
	u.PopEvents()
	return u
}

func TestNewUserDefaults(t *testing.T) {
	u := NewUser("user-1", "jo@example.com", "password", plainHasher{})

	if u.Profile.ActivityLevel != ModeratelyActive {
		t.Errorf("ActivityLevel = %q, want %q", u.Profile.ActivityLevel, ModeratelyActive)
	}
	if u.Profile.Goal != ImproveHealth {
		t.Errorf("Goal = %q, want %q", u.Profile.Goal, ImproveHealth)
	}
	if u.DailyCalorieGoal != DefaultDailyCalorieGoal {
		t.Errorf("DailyCalorieGoal = %d, want %d", u.DailyCalorieGoal, DefaultDailyCalorieGoal)
	}
	if u.Gamification.Level != 1 {
		t.Errorf("Level = %d, want 1", u.Gamification.Level)
	}

	events := u.PopEvents()
	if len(events) != 1 || events[0].Type() != EventCreated {
		t.Errorf("events = %v, want single %q", events, EventCreated)
	}
}

func TestProfileCompletion(t *testing.T) {
	age := 30
	gender := Female
	height := 168.0
	weight := 62.0

	cases := []struct {
		name     string
		profile  Profile
		complete bool
		percent  int
	}{
		{"empty", Profile{}, false, 0},
		{"age only", Profile{Age: &age}, false, 20},
		{
			"all but goal",
			Profile{Age: &age, Gender: &gender, HeightCm: &height, WeightKg: &weight},
			true, 80,
		},
		{
			"everything",
			Profile{Age: &age, Gender: &gender, HeightCm: &height, WeightKg: &weight, Goal: LoseWeight},
			true, 100,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.profile.Complete(); got != c.complete {
				t.Errorf("Complete = %v, want %v", got, c.complete)
			}
			if got := c.profile.Completion(); got != c.percent {
				t.Errorf("Completion = %d, want %d", got, c.percent)
			}
		})
	}
}

func TestApplyProfileDeltaMergesDisjointWrites(t *testing.T) {
	u := newTestUser()

	weight := 70.0
	u.ApplyProfileDelta(ProfileDelta{WeightKg: &weight})

	height := 175.0
	goal := LoseWeight
	u.ApplyProfileDelta(ProfileDelta{HeightCm: &height, Goal: &goal})

	if u.Profile.WeightKg == nil || *u.Profile.WeightKg != 70 {
		t.Errorf("WeightKg = %v, want 70; the second delta must not clobber it", u.Profile.WeightKg)
	}
	if u.Profile.HeightCm == nil || *u.Profile.HeightCm != 175 {
		t.Errorf("HeightCm = %v, want 175", u.Profile.HeightCm)
	}
	if u.Profile.Goal != LoseWeight {
		t.Errorf("Goal = %q, want %q", u.Profile.Goal, LoseWeight)
	}
	if u.Profile.Age != nil {
		t.Errorf("Age = %v, want nil; never written", u.Profile.Age)
	}
}

func TestProfileDeltaEmpty(t *testing.T) {
	if !(ProfileDelta{}).Empty() {
		t.Error("zero delta must be empty")
	}
	age := 30
	if (ProfileDelta{Age: &age}).Empty() {
		t.Error("delta with a field must not be empty")
	}
}

func TestAddPoints(t *testing.T) {
	u := newTestUser()

	u.AddPoints(400)
	if u.Gamification.Points != 400 || u.Gamification.Level != 1 {
		t.Errorf("after 400 points: %+v, want level 1", u.Gamification)
	}

	u.AddPoints(700)
	if u.Gamification.Points != 1100 || u.Gamification.Level != 2 {
		t.Errorf("after 1100 points: %+v, want level 2", u.Gamification)
	}
}

func TestRecordActivityStreak(t *testing.T) {
	u := newTestUser()
	day := func(n int) time.Time {
		return time.Date(2026, 3, n, 12, 0, 0, 0, time.UTC)
	}
	u.LastActive = day(1)

	u.RecordActivity(day(1))
	if u.Gamification.StreakCurrent != 1 {
		t.Fatalf("first activity: streak = %d, want 1", u.Gamification.StreakCurrent)
	}

	u.RecordActivity(day(2))
	u.RecordActivity(day(3))
	if u.Gamification.StreakCurrent != 3 {
		t.Errorf("consecutive days: streak = %d, want 3", u.Gamification.StreakCurrent)
	}

	// Same-day repeat does not double count.
	u.RecordActivity(day(3))
	if u.Gamification.StreakCurrent != 3 {
		t.Errorf("same-day repeat: streak = %d, want 3", u.Gamification.StreakCurrent)
	}

	// A gap resets the current streak but keeps the longest.
	u.RecordActivity(day(7))
	if u.Gamification.StreakCurrent != 1 {
		t.Errorf("after gap: streak = %d, want 1", u.Gamification.StreakCurrent)
	}
	if u.Gamification.StreakLongest != 3 {
		t.Errorf("longest streak = %d, want 3", u.Gamification.StreakLongest)
	}
}

func TestLogout(t *testing.T) {
	u := newTestUser()

	a, err := u.Authorize(plainHasher{}, "password", Device{Browser: "firefox"})
	if err != nil {
		t.Fatalf("Authorize failed: %v", err)
	}
	if !a.IsActive() {
		t.Fatal("fresh authorization must be active")
	}

	if err := u.Logout(a.ID); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if a.IsActive() {
		t.Error("authorization still active after logout")
	}

	if err := u.Logout(a.ID); err == nil {
		t.Error("second logout must fail")
	}
	if err := u.Logout("missing"); err == nil {
		t.Error("logout of unknown authorization must fail")
	}
}
