// Package summary folds stored records into the read-only rollups the API
// serves: a per-day food summary and a 7-day metrics rollup.
package summary

import (
	"time"

	"github.com/samber/lo"

	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/food"
	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/healthlog"
)

type MealBucket struct {
	Calories float64
	Count    int
}

// Daily aggregates one day of food entries. MealBreakdown always carries
// all five buckets; an unlogged meal reports zero calories and zero count
// rather than going missing.
type Daily struct {
	TotalCalories float64
	TotalProtein  float64
	TotalCarbs    float64
	TotalFat      float64
	TotalFiber    float64
	MealBreakdown map[food.MealType]MealBucket
}

func DailySummary(entries []*food.Entry) Daily {
	breakdown := make(map[food.MealType]MealBucket, len(food.MealTypes))
	for _, m := range food.MealTypes {
		breakdown[m] = MealBucket{}
	}

	d := Daily{MealBreakdown: breakdown}
	for _, e := range entries {
		macros := e.TotalMacros()
		d.TotalCalories += e.TotalCalories()
		d.TotalProtein += macros.Protein
		d.TotalCarbs += macros.Carbs
		d.TotalFat += macros.Fat
		d.TotalFiber += e.TotalFiber()

		bucket := breakdown[e.MealType]
		bucket.Calories += e.TotalCalories()
		bucket.Count++
		breakdown[e.MealType] = bucket
	}
	return d
}

// Weekly averages the tracked metrics over the records that exist inside
// [Start, Start+7d). Days counts the records found; averages are nil for
// an empty window, never a division by zero.
type Weekly struct {
	Start      time.Time
	Days       int
	AvgSteps   *float64
	AvgWaterMl *float64
	AvgSleep   *float64
	AvgOverall *float64
}

func WeeklySummary(records []*healthlog.DailyLog, start time.Time) Weekly {
	from := healthlog.Day(start)
	until := from.AddDate(0, 0, 7)

	window := lo.Filter(records, func(l *healthlog.DailyLog, _ int) bool {
		return !l.Date.Before(from) && l.Date.Before(until)
	})

	w := Weekly{Start: from, Days: len(window)}
	if len(window) == 0 {
		return w
	}

	n := float64(len(window))
	w.AvgSteps = avg(lo.SumBy(window, func(l *healthlog.DailyLog) float64 {
		return float64(l.Steps.Count)
	}), n)
	w.AvgWaterMl = avg(lo.SumBy(window, func(l *healthlog.DailyLog) float64 {
		return l.Water.ConsumedMl
	}), n)
	w.AvgSleep = avg(lo.SumBy(window, func(l *healthlog.DailyLog) float64 {
		if l.Sleep.DurationHours == nil {
			return 0
		}
		return *l.Sleep.DurationHours
	}), n)
	w.AvgOverall = avg(lo.SumBy(window, func(l *healthlog.DailyLog) float64 {
		if l.Scores.Overall == nil {
			return 0
		}
		return float64(*l.Scores.Overall)
	}), n)
	return w
}

func avg(sum, n float64) *float64 {
	v := sum / n
	return &v
}
