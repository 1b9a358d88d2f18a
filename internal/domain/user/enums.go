package user

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownGender        = errors.New("unknown gender")
	ErrUnknownActivityLevel = errors.New("unknown activity level")
	ErrUnknownGoal          = errors.New("unknown goal")
)

// Gender selects the BMR formula branch. It carries no other meaning in
// the system.
type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
	Other  Gender = "Other"
)

func ParseGender(s string) (Gender, error) {
	switch g := Gender(s); g {
	case Male, Female, Other:
		return g, nil
	default:
		return "", errors.Join(fmt.Errorf("gender %q", s), ErrUnknownGender)
	}
}

// ActivityLevel is one of five ordinal tiers mapped to TDEE multipliers.
type ActivityLevel string

const (
	Sedentary        ActivityLevel = "Sedentary"
	LightlyActive    ActivityLevel = "Lightly Active"
	ModeratelyActive ActivityLevel = "Moderately Active"
	VeryActive       ActivityLevel = "Very Active"
	ExtraActive      ActivityLevel = "Extra Active"
)

func ParseActivityLevel(s string) (ActivityLevel, error) {
	switch l := ActivityLevel(s); l {
	case Sedentary, LightlyActive, ModeratelyActive, VeryActive, ExtraActive:
		return l, nil
	default:
		return "", errors.Join(fmt.Errorf("activity level %q", s), ErrUnknownActivityLevel)
	}
}

// Goal adjusts the daily calorie target derived from TDEE.
type Goal string

const (
	LoseWeight     Goal = "Lose Weight"
	MaintainWeight Goal = "Maintain Weight"
	GainWeight     Goal = "Gain Weight"
	BuildMuscle    Goal = "Build Muscle"
	ImproveHealth  Goal = "Improve Health"
)

func ParseGoal(s string) (Goal, error) {
	switch g := Goal(s); g {
	case LoseWeight, MaintainWeight, GainWeight, BuildMuscle, ImproveHealth:
		return g, nil
	default:
		return "", errors.Join(fmt.Errorf("goal %q", s), ErrUnknownGoal)
	}
}
