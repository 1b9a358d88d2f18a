package measure

import (
	"errors"
	"math"
	"testing"
)

func TestToCanonical(t *testing.T) {
	cases := []struct {
		name  string
		value float64
		from  Unit
		kind  Kind
		want  float64
	}{
		{"kg passes through", 70, Kilograms, Weight, 70},
		{"lbs to kg", 220.462, Pounds, Weight, 100},
		{"cm passes through", 175, Centimeters, Height, 175},
		{"feet to cm", 6, Feet, Height, 182.88},
		{"ml passes through", 1500, Milliliters, Water, 1500},
		{"fluid ounces to ml", 10, FluidOunces, Water, 295.735},
		{"glasses to ml", 8, Glasses, Water, 2000},
		{"celsius passes through", 36.6, Celsius, Temperature, 36.6},
		{"fahrenheit to celsius", 98.6, Fahrenheit, Temperature, 37},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ToCanonical(c.value, c.from, c.kind)
			if err != nil {
				t.Fatalf("ToCanonical(%v, %q, %q) failed: %v", c.value, c.from, c.kind, err)
			}
			if math.Abs(got-c.want) > 1e-9 {
				t.Errorf("ToCanonical(%v, %q, %q) = %v, want %v", c.value, c.from, c.kind, got, c.want)
			}
		})
	}
}

func TestToCanonicalRejectsForeignUnits(t *testing.T) {
	cases := []struct {
		name string
		from Unit
		kind Kind
	}{
		{"water unit for weight", Milliliters, Weight},
		{"height unit for water", Feet, Water},
		{"made up unit", Unit("stones"), Weight},
		{"empty unit", Unit(""), Height},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := ToCanonical(1, c.from, c.kind); !errors.Is(err, ErrInvalidUnit) {
				t.Errorf("ToCanonical(1, %q, %q) error = %v, want ErrInvalidUnit", c.from, c.kind, err)
			}
		})
	}
}

func TestCanonical(t *testing.T) {
	cases := []struct {
		kind Kind
		want Unit
	}{
		{Weight, Kilograms},
		{Height, Centimeters},
		{Water, Milliliters},
		{Temperature, Celsius},
	}

	for _, c := range cases {
		if got := Canonical(c.kind); got != c.want {
			t.Errorf("Canonical(%q) = %q, want %q", c.kind, got, c.want)
		}
	}
}
