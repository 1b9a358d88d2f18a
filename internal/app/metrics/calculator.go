// Package metrics computes the derived health indicators: BMI, BMR
// (Mifflin-St Jeor), TDEE and the goal-adjusted daily calorie target.
// Every function is pure and deterministic so recomputation is idempotent
// and nothing has to track whether a value was already derived.
//
// Missing prerequisites are a normal state, not a failure: those functions
// report ok=false instead of returning an error, and callers carry the
// absence forward as a nil field.
package metrics

import (
	"math"

	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/user"
)

// activityMultipliers is the single source of truth for the five activity
// tiers.
var activityMultipliers = map[user.ActivityLevel]float64{
	user.Sedentary:        1.2,
	user.LightlyActive:    1.375,
	user.ModeratelyActive: 1.55,
	user.VeryActive:       1.725,
	user.ExtraActive:      1.9,
}

// BMI returns weight/height² in kg/m², rounded to two decimals.
// Not computable (ok=false) when either input is absent or non-positive.
func BMI(heightCm, weightKg *float64) (bmi float64, ok bool) {
	if heightCm == nil || weightKg == nil || *heightCm <= 0 || *weightKg <= 0 {
		return 0, false
	}
	meters := *heightCm / 100
	return round2(*weightKg / (meters * meters)), true
}

// BMR returns the Mifflin-St Jeor basal metabolic rate rounded to the
// nearest integer: 10w + 6.25h - 5a, plus 5 for the male branch or minus
// 161 otherwise. Requires all four inputs present and height/weight
// positive.
func BMR(weightKg, heightCm *float64, age *int, gender *user.Gender) (bmr int, ok bool) {
	if weightKg == nil || heightCm == nil || age == nil || gender == nil {
		return 0, false
	}
	if *weightKg <= 0 || *heightCm <= 0 {
		return 0, false
	}

	v := 10**weightKg + 6.25**heightCm - 5*float64(*age)
	if *gender == user.Male {
		v += 5
	} else {
		v -= 161
	}
	return int(math.Round(v)), true
}

// ActivityMultiplier maps an activity tier to its TDEE factor. Any level
// outside the enum is a caller bug and fails with ErrUnknownActivityLevel.
func ActivityMultiplier(level user.ActivityLevel) (float64, error) {
	mult, found := activityMultipliers[level]
	if !found {
		return 0, user.ErrUnknownActivityLevel
	}
	return mult, nil
}

// TDEE is BMR scaled by the activity multiplier.
func TDEE(bmr int, level user.ActivityLevel) (float64, error) {
	mult, err := ActivityMultiplier(level)
	if err != nil {
		return 0, err
	}
	return float64(bmr) * mult, nil
}

// DailyCalorieGoal derives the daily target from TDEE: -500 for Lose
// Weight, +500 for Gain Weight, unchanged otherwise. A nil BMR falls back
// to user.DefaultDailyCalorieGoal rather than failing; an unset goal means
// no adjustment; any goal outside the enum fails with ErrUnknownGoal.
func DailyCalorieGoal(bmr *int, level user.ActivityLevel, goal user.Goal) (int, error) {
	if goal != "" {
		if _, err := user.ParseGoal(string(goal)); err != nil {
			return 0, err
		}
	}

	if bmr == nil {
		return user.DefaultDailyCalorieGoal, nil
	}

	tdee, err := TDEE(*bmr, level)
	if err != nil {
		return 0, err
	}

	switch goal {
	case user.LoseWeight:
		tdee -= 500
	case user.GainWeight:
		tdee += 500
	}
	return int(math.Round(tdee)), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
