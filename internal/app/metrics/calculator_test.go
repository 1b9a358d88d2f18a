package metrics

import (
	"errors"
	"testing"

	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/user"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
func gptr(g user.Gender) *user.Gender {
	return &g
}

func TestBMI(t *testing.T) {
	cases := []struct {
		name     string
		heightCm *float64
		weightKg *float64
		want     float64
		ok       bool
	}{
		{"typical adult", fptr(175), fptr(70), 22.86, true},
		{"two meters tall", fptr(200), fptr(80), 20, true},
		{"rounded to two decimals", fptr(180), fptr(77), 23.77, true},
		{"missing height", nil, fptr(70), 0, false},
		{"missing weight", fptr(175), nil, 0, false},
		{"zero height", fptr(0), fptr(70), 0, false},
		{"negative weight", fptr(175), fptr(-1), 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := BMI(c.heightCm, c.weightKg)
			if ok != c.ok {
				t.Fatalf("BMI ok = %v, want %v", ok, c.ok)
			}
			if got != c.want {
				t.Errorf("BMI = %v, want %v", got, c.want)
			}
		})
	}
}

func TestBMR(t *testing.T) {
	cases := []struct {
		name     string
		weightKg *float64
		heightCm *float64
		age      *int
		gender   *user.Gender
		want     int
		ok       bool
	}{
		{"male", fptr(70), fptr(175), iptr(30), gptr(user.Male), 1649, true},
		{"female", fptr(70), fptr(175), iptr(30), gptr(user.Female), 1483, true},
		{"other gender uses female branch", fptr(70), fptr(175), iptr(30), gptr(user.Other), 1483, true},
		{"missing age", fptr(70), fptr(175), nil, gptr(user.Male), 0, false},
		{"missing gender", fptr(70), fptr(175), iptr(30), nil, 0, false},
		{"zero weight", fptr(0), fptr(175), iptr(30), gptr(user.Male), 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := BMR(c.weightKg, c.heightCm, c.age, c.gender)
			if ok != c.ok {
				t.Fatalf("BMR ok = %v, want %v", ok, c.ok)
			}
			if got != c.want {
				t.Errorf("BMR = %d, want %d", got, c.want)
			}
		})
	}
}

// The male and female branches of Mifflin-St Jeor differ by a fixed 166
// kcal regardless of the other inputs.
func TestBMRGenderOffset(t *testing.T) {
	inputs := []struct {
		weight, height float64
		age            int
	}{
		{50, 150, 18},
		{70, 175, 30},
		{110, 195, 64},
	}

	for _, in := range inputs {
		male, ok := BMR(&in.weight, &in.height, &in.age, gptr(user.Male))
		if !ok {
			t.Fatalf("male BMR not computable for %+v", in)
		}
		female, ok := BMR(&in.weight, &in.height, &in.age, gptr(user.Female))
		if !ok {
			t.Fatalf("female BMR not computable for %+v", in)
		}
		if male-female != 166 {
			t.Errorf("male-female BMR = %d for %+v, want 166", male-female, in)
		}
	}
}

func TestActivityMultiplier(t *testing.T) {
	cases := []struct {
		level user.ActivityLevel
		want  float64
	}{
		{user.Sedentary, 1.2},
		{user.LightlyActive, 1.375},
		{user.ModeratelyActive, 1.55},
		{user.VeryActive, 1.725},
		{user.ExtraActive, 1.9},
	}

	for _, c := range cases {
		got, err := ActivityMultiplier(c.level)
		if err != nil {
			t.Fatalf("ActivityMultiplier(%q) failed: %v", c.level, err)
		}
		if got != c.want {
			t.Errorf("ActivityMultiplier(%q) = %v, want %v", c.level, got, c.want)
		}
	}

	if _, err := ActivityMultiplier("couch potato"); !errors.Is(err, user.ErrUnknownActivityLevel) {
		t.Errorf("unknown level error = %v, want ErrUnknownActivityLevel", err)
	}
}

func TestDailyCalorieGoal(t *testing.T) {
	bmr := 1649

	cases := []struct {
		name  string
		bmr   *int
		level user.ActivityLevel
		goal  user.Goal
		want  int
	}{
		{"maintain", &bmr, user.ModeratelyActive, user.MaintainWeight, 2556},
		{"lose is maintain minus 500", &bmr, user.ModeratelyActive, user.LoseWeight, 2056},
		{"gain is maintain plus 500", &bmr, user.ModeratelyActive, user.GainWeight, 3056},
		{"unset goal means no adjustment", &bmr, user.ModeratelyActive, "", 2556},
		{"improve health means no adjustment", &bmr, user.ModeratelyActive, user.ImproveHealth, 2556},
		{"nil bmr falls back to default", nil, user.ModeratelyActive, user.LoseWeight, user.DefaultDailyCalorieGoal},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := DailyCalorieGoal(c.bmr, c.level, c.goal)
			if err != nil {
				t.Fatalf("DailyCalorieGoal failed: %v", err)
			}
			if got != c.want {
				t.Errorf("DailyCalorieGoal = %d, want %d", got, c.want)
			}
		})
	}
}

func TestDailyCalorieGoalSpread(t *testing.T) {
	for _, level := range []user.ActivityLevel{
		user.Sedentary, user.LightlyActive, user.ModeratelyActive, user.VeryActive, user.ExtraActive,
	} {
		bmr := 1500
		lose, err := DailyCalorieGoal(&bmr, level, user.LoseWeight)
		if err != nil {
			t.Fatalf("lose goal failed for %q: %v", level, err)
		}
		maintain, err := DailyCalorieGoal(&bmr, level, user.MaintainWeight)
		if err != nil {
			t.Fatalf("maintain goal failed for %q: %v", level, err)
		}
		gain, err := DailyCalorieGoal(&bmr, level, user.GainWeight)
		if err != nil {
			t.Fatalf("gain goal failed for %q: %v", level, err)
		}

		if !(lose < maintain && maintain < gain) {
			t.Errorf("goals not ordered for %q: lose=%d maintain=%d gain=%d", level, lose, maintain, gain)
		}
		if gain-lose != 1000 {
			t.Errorf("gain-lose = %d for %q, want 1000", gain-lose, level)
		}
	}
}

func TestDailyCalorieGoalErrors(t *testing.T) {
	bmr := 1500

	if _, err := DailyCalorieGoal(&bmr, "couch potato", user.LoseWeight); !errors.Is(err, user.ErrUnknownActivityLevel) {
		t.Errorf("unknown level error = %v, want ErrUnknownActivityLevel", err)
	}
	if _, err := DailyCalorieGoal(&bmr, user.Sedentary, "Get Swole"); !errors.Is(err, user.ErrUnknownGoal) {
		t.Errorf("unknown goal error = %v, want ErrUnknownGoal", err)
	}
}

func TestTDEE(t *testing.T) {
	got, err := TDEE(1600, user.Sedentary)
	if err != nil {
		t.Fatalf("TDEE failed: %v", err)
	}
	if got != 1920 {
		t.Errorf("TDEE = %v, want 1920", got)
	}

	if _, err := TDEE(1600, "couch potato"); !errors.Is(err, user.ErrUnknownActivityLevel) {
		t.Errorf("unknown level error = %v, want ErrUnknownActivityLevel", err)
	}
}
