// Package measure converts user-facing measurement units to the canonical
// units the rest of the system stores and computes with: kilograms for
// weight, centimeters for height, milliliters for water and degrees
// Celsius for temperature.
package measure

import (
	"errors"
	"fmt"
)

var ErrInvalidUnit = errors.New("invalid unit")

type Kind string

const (
	Weight      Kind = "weight"
	Height      Kind = "height"
	Water       Kind = "water"
	Temperature Kind = "temperature"
)

type Unit string

const (
	Kilograms   Unit = "kg"
	Pounds      Unit = "lbs"
	Centimeters Unit = "cm"
	Feet        Unit = "ft"
	Milliliters Unit = "ml"
	FluidOunces Unit = "oz"
	Glasses     Unit = "glasses"
	Celsius     Unit = "C"
	Fahrenheit  Unit = "F"
)

const (
	poundsPerKilogram = 2.20462
	cmPerFoot         = 30.48
	mlPerFluidOunce   = 29.5735
	mlPerGlass        = 250.0
)

// Canonical returns the unit every value of the given kind is stored in.
func Canonical(kind Kind) Unit {
	switch kind {
	case Weight:
		return Kilograms
	case Height:
		return Centimeters
	case Water:
		return Milliliters
	case Temperature:
		return Celsius
	default:
		panic("unknown measure kind " + kind)
	}
}

// ToCanonical converts value from the given unit to the canonical unit of
// kind. The unit must belong to the closed enum of that kind; anything
// else fails with ErrInvalidUnit.
func ToCanonical(value float64, from Unit, kind Kind) (float64, error) {
	switch kind {
	case Weight:
		switch from {
		case Kilograms:
			return value, nil
		case Pounds:
			return value / poundsPerKilogram, nil
		}
	case Height:
		switch from {
		case Centimeters:
			return value, nil
		case Feet:
			return value * cmPerFoot, nil
		}
	case Water:
		switch from {
		case Milliliters:
			return value, nil
		case FluidOunces:
			return value * mlPerFluidOunce, nil
		case Glasses:
			return value * mlPerGlass, nil
		}
	case Temperature:
		switch from {
		case Celsius:
			return value, nil
		case Fahrenheit:
			return (value - 32) * 5 / 9, nil
		}
	}
	return 0, invalidUnitErr(from, kind)
}

func invalidUnitErr(unit Unit, kind Kind) error {
	return errors.Join(fmt.Errorf("unit %q is not valid for %s", unit, kind), ErrInvalidUnit)
}
