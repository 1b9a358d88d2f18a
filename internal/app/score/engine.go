// Package score turns a day's raw logged metrics into per-category
// wellness scores and a weighted overall score.
//
// A sub-score is computed only when its inputs were actually logged;
// otherwise it stays nil and drops out of the overall weighting entirely.
// A computed zero is a real value and keeps its weight: a day of zero
// steps scores 0 on activity, while a day with no step goal at all scores
// nothing.
package score

import (
	"math"

	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/healthlog"
)

// Category weights for the overall score. The overall value divides by
// the weight sum of the categories that were present, so absent
// categories redistribute their share instead of dragging the mean down.
const (
	WeightNutrition = 0.30
	WeightActivity  = 0.25
	WeightSleep     = 0.20
	WeightHydration = 0.15
	WeightMental    = 0.10
)

const (
	idealSleepHours  = 8.0
	sleepPenaltyRate = 12.5
	exerciseBonus    = 10.0
)

// Hydration is consumed/goal capped at 100. Nil when no positive goal is
// set.
func Hydration(w healthlog.Water) *float64 {
	if w.GoalMl <= 0 {
		return nil
	}
	v := math.Min(100, w.ConsumedMl/w.GoalMl*100)
	return &v
}

// Activity combines step-goal progress with a 10-point bonus per exercise
// session, capped at 100. Without a positive step goal the bonus term
// stands alone; with neither a goal nor any exercise the category was not
// logged and scores nil.
func Activity(s healthlog.Steps, exerciseCount int) *float64 {
	bonus := exerciseBonus * float64(exerciseCount)
	if s.Goal <= 0 {
		if exerciseCount == 0 {
			return nil
		}
		v := math.Min(100, bonus)
		return &v
	}
	v := math.Min(100, float64(s.Count)/float64(s.Goal)*100+bonus)
	return &v
}

// Sleep applies a symmetric penalty of 12.5 points per hour away from the
// 8-hour ideal, floored at zero. Nil when no duration was logged.
func Sleep(s healthlog.Sleep) *float64 {
	if s.DurationHours == nil {
		return nil
	}
	v := math.Max(0, 100-math.Abs(*s.DurationHours-idealSleepHours)*sleepPenaltyRate)
	return &v
}

// Mental scales the 1-10 mood rating to 0-100. Nil when no rating was
// logged.
func Mental(m healthlog.Mood) *float64 {
	if m.Rating == nil {
		return nil
	}
	v := float64(*m.Rating) * 10
	return &v
}

// Compute derives the full score set for a day. The nutrition score comes
// precomputed from the food-log collaborator (nil when the user logged no
// food); this engine never reads food entries itself.
func Compute(l *healthlog.DailyLog, nutrition *float64) healthlog.Scores {
	s := healthlog.Scores{
		Nutrition: nutrition,
		Activity:  Activity(l.Steps, len(l.Exercises)),
		Sleep:     Sleep(l.Sleep),
		Hydration: Hydration(l.Water),
		Mental:    Mental(l.Mood),
	}
	s.Overall = Overall(s)
	return s
}

// Overall is the weighted mean of the present sub-scores, renormalized
// over the weights that contributed and rounded to the nearest integer.
// Nil when no sub-score was computable.
func Overall(s healthlog.Scores) *int {
	weighted := 0.0
	totalWeight := 0.0

	add := func(score *float64, weight float64) {
		if score == nil {
			return
		}
		weighted += *score * weight
		totalWeight += weight
	}

	add(s.Nutrition, WeightNutrition)
	add(s.Activity, WeightActivity)
	add(s.Sleep, WeightSleep)
	add(s.Hydration, WeightHydration)
	add(s.Mental, WeightMental)

	if totalWeight == 0 {
		return nil
	}
	overall := int(math.Round(weighted / totalWeight))
	return &overall
}
