package summary

import (
	"testing"
	"time"

	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/food"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/healthlog"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func mustEntry(t *testing.T, meal food.MealType, quantity float64, n food.Nutrition) *food.Entry {
	t.Helper()
	e, err := food.NewEntry("entry", "user-1", "item", "", meal, quantity, n, time.Now())
	if err != nil {
		t.Fatalf("NewEntry failed: %v", err)
	}
	return e
}

func TestDailySummary(t *testing.T) {
	entries := []*food.Entry{
		mustEntry(t, food.Breakfast, 2, food.Nutrition{Calories: 100, Protein: 5, Carbs: 12, Fat: 3}),
		mustEntry(t, food.Dinner, 1, food.Nutrition{Calories: 300, Protein: 20, Carbs: 30, Fat: 10}),
	}

	d := DailySummary(entries)

	if d.TotalCalories != 500 {
		t.Errorf("TotalCalories = %v, want 500", d.TotalCalories)
	}
	if d.TotalProtein != 30 {
		t.Errorf("TotalProtein = %v, want 30", d.TotalProtein)
	}
	if d.TotalCarbs != 54 {
		t.Errorf("TotalCarbs = %v, want 54", d.TotalCarbs)
	}
	if d.TotalFat != 16 {
		t.Errorf("TotalFat = %v, want 16", d.TotalFat)
	}

	if got := d.MealBreakdown[food.Breakfast]; got.Calories != 200 || got.Count != 1 {
		t.Errorf("Breakfast bucket = %+v, want {200 1}", got)
	}
	if got := d.MealBreakdown[food.Dinner]; got.Calories != 300 || got.Count != 1 {
		t.Errorf("Dinner bucket = %+v, want {300 1}", got)
	}
	if got := d.MealBreakdown[food.Lunch]; got.Calories != 0 || got.Count != 0 {
		t.Errorf("Lunch bucket = %+v, want {0 0}", got)
	}
}

func TestDailySummaryAlwaysCarriesAllBuckets(t *testing.T) {
	d := DailySummary(nil)

	if len(d.MealBreakdown) != len(food.MealTypes) {
		t.Fatalf("breakdown has %d buckets, want %d", len(d.MealBreakdown), len(food.MealTypes))
	}
	for _, m := range food.MealTypes {
		bucket, found := d.MealBreakdown[m]
		if !found {
			t.Errorf("bucket for %q missing", m)
		}
		if bucket.Calories != 0 || bucket.Count != 0 {
			t.Errorf("bucket for %q = %+v, want zero", m, bucket)
		}
	}
	if d.TotalCalories != 0 {
		t.Errorf("TotalCalories = %v, want 0", d.TotalCalories)
	}
}

func dayLog(t *testing.T, date string, steps int, waterMl float64, sleep *float64, overall *int) *healthlog.DailyLog {
	t.Helper()
	l := healthlog.New("log-"+date, "user-1", mustDate(t, date))
	l.Steps.Count = steps
	l.Water.ConsumedMl = waterMl
	l.Sleep.DurationHours = sleep
	l.Scores.Overall = overall
	return l
}

func TestWeeklySummary(t *testing.T) {
	start := mustDate(t, "2026-03-02")

	records := []*healthlog.DailyLog{
		dayLog(t, "2026-03-02", 8000, 1500, fptr(7), iptr(70)),
		dayLog(t, "2026-03-04", 12000, 2500, fptr(9), iptr(90)),
	}

	w := WeeklySummary(records, start)

	if w.Days != 2 {
		t.Fatalf("Days = %d, want 2", w.Days)
	}
	if w.AvgSteps == nil || *w.AvgSteps != 10000 {
		t.Errorf("AvgSteps = %v, want 10000", w.AvgSteps)
	}
	if w.AvgWaterMl == nil || *w.AvgWaterMl != 2000 {
		t.Errorf("AvgWaterMl = %v, want 2000", w.AvgWaterMl)
	}
	if w.AvgSleep == nil || *w.AvgSleep != 8 {
		t.Errorf("AvgSleep = %v, want 8", w.AvgSleep)
	}
	if w.AvgOverall == nil || *w.AvgOverall != 80 {
		t.Errorf("AvgOverall = %v, want 80", w.AvgOverall)
	}
}

func TestWeeklySummaryWindow(t *testing.T) {
	start := mustDate(t, "2026-03-02")

	records := []*healthlog.DailyLog{
		dayLog(t, "2026-03-01", 5000, 1000, nil, nil),
		dayLog(t, "2026-03-02", 8000, 1500, nil, nil),
		dayLog(t, "2026-03-08", 6000, 1200, nil, nil),
		dayLog(t, "2026-03-09", 7000, 1300, nil, nil),
	}

	w := WeeklySummary(records, start)

	if w.Days != 2 {
		t.Fatalf("Days = %d, want 2; window must be [start, start+7d)", w.Days)
	}
	if w.AvgSteps == nil || *w.AvgSteps != 7000 {
		t.Errorf("AvgSteps = %v, want 7000", w.AvgSteps)
	}
}

func TestWeeklySummaryEmptyWindow(t *testing.T) {
	w := WeeklySummary(nil, mustDate(t, "2026-03-02"))

	if w.Days != 0 {
		t.Fatalf("Days = %d, want 0", w.Days)
	}
	if w.AvgSteps != nil || w.AvgWaterMl != nil || w.AvgSleep != nil || w.AvgOverall != nil {
		t.Errorf("averages on an empty window must be nil, got %+v", w)
	}
}
