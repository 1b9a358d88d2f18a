package food

import (
	"errors"
	"fmt"
	"time"

	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain"
)

var (
	ErrEntryExists     = errors.New("food entry already exists")
	ErrEntryNotFound   = errors.New("food entry not found")
	ErrUnknownMealType = errors.New("unknown meal type")
	ErrInvalidEntry    = errors.New("invalid food entry")
)

const (
	EventLogged = "food.logged"
)

type MealType string

const (
	Breakfast MealType = "Breakfast"
	Lunch     MealType = "Lunch"
	Dinner    MealType = "Dinner"
	Snack     MealType = "Snack"
	Drink     MealType = "Drink"
)

// MealTypes lists every bucket in the order summaries report them.
var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snack, Drink}

func ParseMealType(s string) (MealType, error) {
	switch m := MealType(s); m {
	case Breakfast, Lunch, Dinner, Snack, Drink:
		return m, nil
	default:
		return "", errors.Join(fmt.Errorf("meal type %q", s), ErrUnknownMealType)
	}
}

// Nutrition holds per-serving facts. Calories is required; the rest
// default to zero which reads as "none", not "unknown".
type Nutrition struct {
	Calories    float64
	Protein     float64
	Carbs       float64
	Fat         float64
	Fiber       float64
	Sugar       float64
	Sodium      float64
	Cholesterol float64
}

type Macros struct {
	Protein float64
	Carbs   float64
	Fat     float64
}

type Entry struct {
	domain.Aggregate
	EntryID   string
	UserID    string
	Name      string
	Brand     string
	MealType  MealType
	Quantity  float64
	Nutrition Nutrition
	Date      time.Time
	LoggedAt  time.Time
}

func NewEntry(
	entryID, userID, name, brand string,
	mealType MealType,
	quantity float64,
	nutrition Nutrition,
	date time.Time,
) (*Entry, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidEntry)
	}
	if nutrition.Calories < 0 {
		return nil, fmt.Errorf("%w: calories cannot be negative", ErrInvalidEntry)
	}

	e := &Entry{
		EntryID:   entryID,
		UserID:    userID,
		Name:      name,
		Brand:     brand,
		MealType:  mealType,
		Quantity:  quantity,
		Nutrition: nutrition,
		Date:      date.UTC(),
		LoggedAt:  time.Now().UTC(),
	}
	e.PushEvent(LoggedEvent{
		At:       e.LoggedAt,
		UserID:   userID,
		EntryID:  entryID,
		MealType: mealType,
		Calories: e.TotalCalories(),
	})
	return e, nil
}

// TotalCalories is quantity times per-serving calories; the same
// multiplication applies to every macro.
func (e *Entry) TotalCalories() float64 {
	return e.Quantity * e.Nutrition.Calories
}

func (e *Entry) TotalMacros() Macros {
	return Macros{
		Protein: e.Quantity * e.Nutrition.Protein,
		Carbs:   e.Quantity * e.Nutrition.Carbs,
		Fat:     e.Quantity * e.Nutrition.Fat,
	}
}

func (e *Entry) TotalFiber() float64 {
	return e.Quantity * e.Nutrition.Fiber
}

type LoggedEvent struct {
	At       time.Time
	UserID   string
	EntryID  string
	MealType MealType
	Calories float64
}

func (e LoggedEvent) Type() string { return EventLogged }

func (e LoggedEvent) PublishedAt() time.Time { return e.At }
