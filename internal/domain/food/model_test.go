package food

import (
	"errors"
	"testing"
	"time"
)

func TestNewEntryValidation(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	if _, err := NewEntry("e1", "u1", "oatmeal", "", Breakfast, 0, Nutrition{Calories: 100}, date); !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("zero quantity error = %v, want ErrInvalidEntry", err)
	}
	if _, err := NewEntry("e1", "u1", "oatmeal", "", Breakfast, 1, Nutrition{Calories: -5}, date); !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("negative calories error = %v, want ErrInvalidEntry", err)
	}

	e, err := NewEntry("e1", "u1", "oatmeal", "Quaker", Breakfast, 1.5, Nutrition{Calories: 100}, date)
	if err != nil {
		t.Fatalf("NewEntry failed: %v", err)
	}

	events := e.PopEvents()
	if len(events) != 1 || events[0].Type() != EventLogged {
		t.Errorf("events = %v, want single %q", events, EventLogged)
	}
}

func TestEntryTotals(t *testing.T) {
	e, err := NewEntry("e1", "u1", "oatmeal", "", Breakfast, 2.5,
		Nutrition{Calories: 100, Protein: 4, Carbs: 20, Fat: 2, Fiber: 3},
		time.Now())
	if err != nil {
		t.Fatalf("NewEntry failed: %v", err)
	}

	if got := e.TotalCalories(); got != 250 {
		t.Errorf("TotalCalories = %v, want 250", got)
	}
	macros := e.TotalMacros()
	if macros.Protein != 10 || macros.Carbs != 50 || macros.Fat != 5 {
		t.Errorf("TotalMacros = %+v, want {10 50 5}", macros)
	}
	if got := e.TotalFiber(); got != 7.5 {
		t.Errorf("TotalFiber = %v, want 7.5", got)
	}
}

func TestParseMealType(t *testing.T) {
	for _, m := range MealTypes {
		got, err := ParseMealType(string(m))
		if err != nil || got != m {
			t.Errorf("ParseMealType(%q) = %q, %v", m, got, err)
		}
	}
	if _, err := ParseMealType("Brunch"); !errors.Is(err, ErrUnknownMealType) {
		t.Errorf("unknown meal error = %v, want ErrUnknownMealType", err)
	}
}
