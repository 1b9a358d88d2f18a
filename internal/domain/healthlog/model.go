// Package healthlog holds the per-day health record: raw logged metrics
// plus the score set derived from them. At most one record exists per
// (user, calendar date).
package healthlog

import (
	"errors"
	"time"

	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain"
)

var (
	ErrLogExists   = errors.New("daily log already exists")
	ErrLogNotFound = errors.New("daily log not found")
)

const (
	EventScored = "healthlog.scored"
)

// Defaults applied when a record is first created for a day, matching the
// onboarding targets the mobile clients show.
const (
	DefaultWaterGoalMl = 2000
	DefaultStepsGoal   = 10000
)

type SleepQuality string

const (
	SleepPoor      SleepQuality = "Poor"
	SleepFair      SleepQuality = "Fair"
	SleepGood      SleepQuality = "Good"
	SleepExcellent SleepQuality = "Excellent"
)

var ErrUnknownSleepQuality = errors.New("unknown sleep quality")

func ParseSleepQuality(s string) (SleepQuality, error) {
	switch q := SleepQuality(s); q {
	case SleepPoor, SleepFair, SleepGood, SleepExcellent:
		return q, nil
	default:
		return "", ErrUnknownSleepQuality
	}
}

type ExerciseIntensity string

const (
	IntensityLow      ExerciseIntensity = "Low"
	IntensityModerate ExerciseIntensity = "Moderate"
	IntensityHigh     ExerciseIntensity = "High"
)

var ErrUnknownIntensity = errors.New("unknown exercise intensity")

func ParseExerciseIntensity(s string) (ExerciseIntensity, error) {
	switch i := ExerciseIntensity(s); i {
	case IntensityLow, IntensityModerate, IntensityHigh:
		return i, nil
	default:
		return "", ErrUnknownIntensity
	}
}

type Exercise struct {
	Name           string
	DurationMin    int
	CaloriesBurned int
	Intensity      ExerciseIntensity
}

type Water struct {
	ConsumedMl float64
	GoalMl     float64
}

type Steps struct {
	Count int
	Goal  int
}

type Sleep struct {
	DurationHours *float64
	Quality       *SleepQuality
}

type Mood struct {
	Rating *int
}

// Scores are the derived per-category values, 0-100 each. A nil score
// means the category was not computable for the day; a non-nil zero is a
// real computed result and the two are never conflated.
type Scores struct {
	Nutrition *float64
	Activity  *float64
	Sleep     *float64
	Hydration *float64
	Mental    *float64
	Overall   *int
}

type DailyLog struct {
	domain.Aggregate
	LogID     string
	UserID    string
	Date      time.Time
	Water     Water
	Steps     Steps
	Sleep     Sleep
	Mood      Mood
	Exercises []Exercise
	Scores    Scores
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New creates the first record for a (user, date) pair with the default
// hydration and step goals in place.
func New(logID, userID string, date time.Time) *DailyLog {
	now := time.Now().UTC()
	return &DailyLog{
		LogID:     logID,
		UserID:    userID,
		Date:      Day(date),
		Water:     Water{GoalMl: DefaultWaterGoalMl},
		Steps:     Steps{Goal: DefaultStepsGoal},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Day truncates a timestamp to its UTC calendar date, the granularity all
// log records are keyed on.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MetricsDelta is a partial write to a day's raw metrics. Nil fields stay
// untouched so disjoint writes to the same record merge rather than
// overwrite.
type MetricsDelta struct {
	WaterConsumedMl *float64
	WaterGoalMl     *float64
	StepsCount      *int
	StepsGoal       *int
	SleepHours      *float64
	SleepQuality    *SleepQuality
	MoodRating      *int
	Exercises       []Exercise
}

// Empty reports whether the delta touches no field.
func (d MetricsDelta) Empty() bool {
	return d.WaterConsumedMl == nil && d.WaterGoalMl == nil &&
		d.StepsCount == nil && d.StepsGoal == nil &&
		d.SleepHours == nil && d.SleepQuality == nil &&
		d.MoodRating == nil && len(d.Exercises) == 0
}

// Apply merges non-nil delta fields into the record. Exercises append;
// everything else replaces. Scores are left for the caller to recompute
// in the same transaction.
func (l *DailyLog) Apply(d MetricsDelta) {
	if d.WaterConsumedMl != nil {
		l.Water.ConsumedMl = *d.WaterConsumedMl
	}
	if d.WaterGoalMl != nil {
		l.Water.GoalMl = *d.WaterGoalMl
	}
	if d.StepsCount != nil {
		l.Steps.Count = *d.StepsCount
	}
	if d.StepsGoal != nil {
		l.Steps.Goal = *d.StepsGoal
	}
	if d.SleepHours != nil {
		l.Sleep.DurationHours = d.SleepHours
	}
	if d.SleepQuality != nil {
		l.Sleep.Quality = d.SleepQuality
	}
	if d.MoodRating != nil {
		l.Mood.Rating = d.MoodRating
	}
	l.Exercises = append(l.Exercises, d.Exercises...)
	l.UpdatedAt = time.Now().UTC()
}

// SetScores stores a freshly computed score set and raises the scored
// event.
func (l *DailyLog) SetScores(s Scores) {
	l.Scores = s
	l.PushEvent(ScoredEvent{
		At:      time.Now().UTC(),
		UserID:  l.UserID,
		Date:    l.Date,
		Overall: s.Overall,
	})
}

type ScoredEvent struct {
	At      time.Time
	UserID  string
	Date    time.Time
	Overall *int
}

func (e ScoredEvent) Type() string { return EventScored }

func (e ScoredEvent) PublishedAt() time.Time { return e.At }
