package score

import (
	"testing"
	"time"

	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/healthlog"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestHydration(t *testing.T) {
	cases := []struct {
		name  string
		water healthlog.Water
		want  *float64
	}{
		{"partial progress", healthlog.Water{ConsumedMl: 1600, GoalMl: 2000}, fptr(80)},
		{"exactly at goal", healthlog.Water{ConsumedMl: 2000, GoalMl: 2000}, fptr(100)},
		{"capped above goal", healthlog.Water{ConsumedMl: 3000, GoalMl: 2000}, fptr(100)},
		{"nothing consumed is a real zero", healthlog.Water{ConsumedMl: 0, GoalMl: 2000}, fptr(0)},
		{"no goal means not logged", healthlog.Water{ConsumedMl: 500, GoalMl: 0}, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assertScore(t, Hydration(c.water), c.want)
		})
	}
}

func TestActivity(t *testing.T) {
	cases := []struct {
		name      string
		steps     healthlog.Steps
		exercises int
		want      *float64
	}{
		{"steps only", healthlog.Steps{Count: 5000, Goal: 10000}, 0, fptr(50)},
		{"exercise bonus added", healthlog.Steps{Count: 5000, Goal: 10000}, 2, fptr(70)},
		{"capped at hundred", healthlog.Steps{Count: 12000, Goal: 10000}, 3, fptr(100)},
		{"zero steps is a real zero", healthlog.Steps{Count: 0, Goal: 10000}, 0, fptr(0)},
		{"bonus stands alone without a goal", healthlog.Steps{}, 2, fptr(20)},
		{"no goal and no exercise means not logged", healthlog.Steps{}, 0, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assertScore(t, Activity(c.steps, c.exercises), c.want)
		})
	}
}

func TestSleep(t *testing.T) {
	cases := []struct {
		name  string
		sleep healthlog.Sleep
		want  *float64
	}{
		{"ideal eight hours", healthlog.Sleep{DurationHours: fptr(8)}, fptr(100)},
		{"one hour short", healthlog.Sleep{DurationHours: fptr(7)}, fptr(87.5)},
		{"oversleep penalized the same", healthlog.Sleep{DurationHours: fptr(9)}, fptr(87.5)},
		{"floored at zero", healthlog.Sleep{DurationHours: fptr(0)}, fptr(0)},
		{"not logged", healthlog.Sleep{}, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assertScore(t, Sleep(c.sleep), c.want)
		})
	}
}

func TestMental(t *testing.T) {
	cases := []struct {
		name string
		mood healthlog.Mood
		want *float64
	}{
		{"mid rating", healthlog.Mood{Rating: iptr(5)}, fptr(50)},
		{"best rating", healthlog.Mood{Rating: iptr(10)}, fptr(100)},
		{"not logged", healthlog.Mood{}, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assertScore(t, Mental(c.mood), c.want)
		})
	}
}

func TestOverall(t *testing.T) {
	cases := []struct {
		name   string
		scores healthlog.Scores
		want   *int
	}{
		{
			// 80*.15 + 50*.10 over .25 = 68.
			name:   "renormalized over present categories",
			scores: healthlog.Scores{Hydration: fptr(80), Mental: fptr(50)},
			want:   iptr(68),
		},
		{
			name: "all categories present",
			scores: healthlog.Scores{
				Nutrition: fptr(90),
				Activity:  fptr(70),
				Sleep:     fptr(100),
				Hydration: fptr(80),
				Mental:    fptr(60),
			},
			want: iptr(83),
		},
		{
			name:   "single category stands alone",
			scores: healthlog.Scores{Sleep: fptr(87.5)},
			want:   iptr(88),
		},
		{
			// A computed zero keeps its weight: 0*.25 + 100*.15 over .40.
			name:   "computed zero drags the mean",
			scores: healthlog.Scores{Activity: fptr(0), Hydration: fptr(100)},
			want:   iptr(38),
		},
		{
			name:   "nothing computable",
			scores: healthlog.Scores{},
			want:   nil,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Overall(c.scores)
			if (got == nil) != (c.want == nil) {
				t.Fatalf("Overall = %v, want %v", got, c.want)
			}
			if got != nil && *got != *c.want {
				t.Errorf("Overall = %d, want %d", *got, *c.want)
			}
		})
	}
}

func TestCompute(t *testing.T) {
	l := healthlog.New("log-1", "user-1", mustDate(t, "2026-03-02"))
	l.Water.ConsumedMl = 1600
	l.Steps.Count = 5000
	l.Sleep.DurationHours = fptr(7)
	l.Mood.Rating = iptr(6)

	s := Compute(l, fptr(90))

	assertScore(t, s.Nutrition, fptr(90))
	assertScore(t, s.Activity, fptr(50))
	assertScore(t, s.Sleep, fptr(87.5))
	assertScore(t, s.Hydration, fptr(80))
	assertScore(t, s.Mental, fptr(60))

	// 90*.30 + 50*.25 + 87.5*.20 + 80*.15 + 60*.10 = 75 over the full
	// weight of 1.
	if s.Overall == nil || *s.Overall != 75 {
		t.Errorf("Overall = %v, want 75", s.Overall)
	}
}

func TestComputeWithoutNutrition(t *testing.T) {
	l := healthlog.New("log-1", "user-1", mustDate(t, "2026-03-02"))
	l.Water.ConsumedMl = 2000

	s := Compute(l, nil)

	if s.Nutrition != nil {
		t.Errorf("Nutrition = %v, want nil", *s.Nutrition)
	}
	// Hydration 100 and a real zero on activity (default step goal, no
	// steps): 100*.15 over .40 = 37.5.
	if s.Overall == nil || *s.Overall != 38 {
		t.Errorf("Overall = %v, want 38", s.Overall)
	}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func assertScore(t *testing.T, got, want *float64) {
	t.Helper()
	if (got == nil) != (want == nil) {
		t.Fatalf("score = %v, want %v", got, want)
	}
	if got != nil && *got != *want {
		t.Errorf("score = %v, want %v", *got, *want)
	}
}
