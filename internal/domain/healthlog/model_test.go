package healthlog

import (
	"testing"
	"time"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestNewAppliesDefaultGoals(t *testing.T) {
	date := time.Date(2026, 3, 2, 17, 45, 0, 0, time.UTC)
	l := New("log-1", "user-1", date)

	if l.Water.GoalMl != DefaultWaterGoalMl {
		t.Errorf("water goal = %v, want %v", l.Water.GoalMl, DefaultWaterGoalMl)
	}
	if l.Steps.Goal != DefaultStepsGoal {
		t.Errorf("steps goal = %v, want %v", l.Steps.Goal, DefaultStepsGoal)
	}
	if want := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC); !l.Date.Equal(want) {
		t.Errorf("date = %v, want %v", l.Date, want)
	}
}

func TestDay(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)

	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"truncates time of day",
			time.Date(2026, 3, 2, 23, 59, 59, 0, time.UTC),
			time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			"normalizes zone before truncating",
			time.Date(2026, 3, 3, 2, 0, 0, 0, loc),
			time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Day(c.in); !got.Equal(c.want) {
				t.Errorf("Day(%v) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestApplyMergesDisjointDeltas(t *testing.T) {
	l := New("log-1", "user-1", time.Now())

	water := 1500.0
	l.Apply(MetricsDelta{WaterConsumedMl: &water})

	sleep := 7.5
	mood := 8
	l.Apply(MetricsDelta{SleepHours: &sleep, MoodRating: &mood})

	if l.Water.ConsumedMl != 1500 {
		t.Errorf("water = %v, want 1500; the second delta must not clobber it", l.Water.ConsumedMl)
	}
	if l.Sleep.DurationHours == nil || *l.Sleep.DurationHours != 7.5 {
		t.Errorf("sleep = %v, want 7.5", l.Sleep.DurationHours)
	}
	if l.Mood.Rating == nil || *l.Mood.Rating != 8 {
		t.Errorf("mood = %v, want 8", l.Mood.Rating)
	}
	if l.Steps.Goal != DefaultStepsGoal {
		t.Errorf("steps goal = %v, want the default untouched", l.Steps.Goal)
	}
}

func TestApplyAppendsExercises(t *testing.T) {
	l := New("log-1", "user-1", time.Now())

	l.Apply(MetricsDelta{Exercises: []Exercise{
		{Name: "run", DurationMin: 30, CaloriesBurned: 300, Intensity: IntensityHigh},
	}})
	l.Apply(MetricsDelta{Exercises: []Exercise{
		{Name: "yoga", DurationMin: 20, CaloriesBurned: 80, Intensity: IntensityLow},
	}})

	if len(l.Exercises) != 2 {
		t.Fatalf("exercises = %d, want 2; sessions append, not replace", len(l.Exercises))
	}
	if l.Exercises[0].Name != "run" || l.Exercises[1].Name != "yoga" {
		t.Errorf("exercise order = %q, %q", l.Exercises[0].Name, l.Exercises[1].Name)
	}
}

func TestSetScoresRaisesEvent(t *testing.T) {
	l := New("log-1", "user-1", time.Now())
	l.PopEvents()

	l.SetScores(Scores{Hydration: fptr(80), Overall: iptr(80)})

	events := l.PopEvents()
	if len(events) != 1 || events[0].Type() != EventScored {
		t.Fatalf("events = %v, want single %q", events, EventScored)
	}
	if l.Scores.Overall == nil || *l.Scores.Overall != 80 {
		t.Errorf("overall = %v, want 80", l.Scores.Overall)
	}
}

func TestParseSleepQuality(t *testing.T) {
	for _, q := range []SleepQuality{SleepPoor, SleepFair, SleepGood, SleepExcellent} {
		got, err := ParseSleepQuality(string(q))
		if err != nil || got != q {
			t.Errorf("ParseSleepQuality(%q) = %q, %v", q, got, err)
		}
	}
	if _, err := ParseSleepQuality("Dreamy"); err == nil {
		t.Error("unknown quality must fail")
	}
}
