package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// UnitKind is the physical dimension of a unit of measure.
type UnitKind int

// Unit kinds.
const (
	UnitDimensionless UnitKind = iota
	UnitAngle
	UnitLength
	UnitTime
	UnitPressure
)

// String returns the kind name.
func (k UnitKind) String() string {
	switch k {
	case UnitAngle:
		return "angle"
	case UnitLength:
		return "length"
	case UnitTime:
		return "time"
	case UnitPressure:
		return "pressure"
	default:
		return "dimensionless"
	}
}

// Unit is a unit of measure: a symbol, its kind, and the factor that converts
// one of it to the SI base unit of that kind (radian, metre, second, pascal).
type Unit struct {
	Symbol string  // Canonical symbol
	Kind   UnitKind // Physical dimension
	Scale  float64 // Factor to the SI base unit
}

// Predefined units.
var (
	One          = Unit{Symbol: "", Kind: UnitDimensionless, Scale: 1}
	PPM          = Unit{Symbol: "ppm", Kind: UnitDimensionless, Scale: 1e-6}
	Radian       = Unit{Symbol: "rad", Kind: UnitAngle, Scale: 1}
	Degree       = Unit{Symbol: "degree", Kind: UnitAngle, Scale: math.Pi / 180}
	Grad         = Unit{Symbol: "grad", Kind: UnitAngle, Scale: math.Pi / 200}
	ArcSecond    = Unit{Symbol: "arcsec", Kind: UnitAngle, Scale: math.Pi / (180 * 3600)}
	Metre        = Unit{Symbol: "m", Kind: UnitLength, Scale: 1}
	Kilometre    = Unit{Symbol: "km", Kind: UnitLength, Scale: 1000}
	Foot         = Unit{Symbol: "ft", Kind: UnitLength, Scale: 0.3048}
	USSurveyFoot = Unit{Symbol: "US survey foot", Kind: UnitLength, Scale: 1200.0 / 3937}
	HundredFeet  = Unit{Symbol: "100 feet", Kind: UnitLength, Scale: 30.48}
	Second       = Unit{Symbol: "s", Kind: UnitTime, Scale: 1}
	Minute       = Unit{Symbol: "min", Kind: UnitTime, Scale: 60}
	Hour         = Unit{Symbol: "h", Kind: UnitTime, Scale: 3600}
	Day          = Unit{Symbol: "day", Kind: UnitTime, Scale: 86400}
	Pascal       = Unit{Symbol: "Pa", Kind: UnitPressure, Scale: 1}
	HectoPascal  = Unit{Symbol: "hPa", Kind: UnitPressure, Scale: 100}
	Bar          = Unit{Symbol: "bar", Kind: UnitPressure, Scale: 1e5}
)

// IsZero returns true if the unit is unset.
func (u Unit) IsZero() bool {
	return u.Symbol == "" && u.Kind == UnitDimensionless && u.Scale == 0
}

// ToBase converts a value in this unit to the SI base unit of its kind.
func (u Unit) ToBase(value float64) float64 {
	return value * u.Scale
}

// ParseUnit resolves a unit symbol to a predefined unit. Comparison is
// case-insensitive and tolerates plural spellings. Symbols that match no
// predefined unit return ErrUnknownUnit.
func ParseUnit(symbol string) (Unit, error) {
	switch normalizeUnitSymbol(symbol) {
	case "", "1", "one":
		return One, nil
	case "ppm", "part per million":
		return PPM, nil
	case "rad", "radian":
		return Radian, nil
	case "deg", "degree", "decimal degree",
		"degree east", "degree e", "degree north", "degree n", "degree true":
		return Degree, nil
	case "grad", "gradian", "gon":
		return Grad, nil
	case "arcsec", "arc second", "second of arc":
		return ArcSecond, nil
	case "m", "meter", "metre":
		return Metre, nil
	case "km", "kilometer", "kilometre":
		return Kilometre, nil
	case "us survey foot":
		return USSurveyFoot, nil
	case "ft", "foot", "feet", "international foot":
		return Foot, nil
	case "100 foot", "100 feet":
		return HundredFeet, nil
	case "s", "sec", "second":
		return Second, nil
	case "min", "minute":
		return Minute, nil
	case "h", "hr", "hour":
		return Hour, nil
	case "d", "day":
		return Day, nil
	case "pa", "pascal":
		return Pascal, nil
	case "hpa", "hectopascal", "mb", "mbar", "millibar":
		return HectoPascal, nil
	case "bar":
		return Bar, nil
	}
	return Unit{}, fmt.Errorf("unit %q: %w", symbol, ErrUnknownUnit)
}

// normalizeUnitSymbol lowercases, collapses separators and strips a plural
// "s" from the last word so that "Degrees_North" and "degree north" compare
// equal. Single-letter words such as the seconds symbol survive unchanged.
func normalizeUnitSymbol(symbol string) string {
	s := strings.ToLower(strings.TrimSpace(symbol))
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.Join(strings.Fields(s), " ")
	if s == "feet" || s == "100 feet" || s == "us survey feet" {
		// irregular plural
		if s == "us survey feet" {
			return "us survey foot"
		}
		return s
	}
	words := strings.Split(s, " ")
	last := words[len(words)-1]
	if len(last) > 2 && strings.HasSuffix(last, "s") && !strings.HasSuffix(last, "ss") {
		words[len(words)-1] = strings.TrimSuffix(last, "s")
	}
	return strings.Join(words, " ")
}

// Date layouts accepted after the "since" keyword of a temporal unit.
// udunits-style epochs allow single-digit date parts and an optional time.
var epochLayouts = []string{
	time.RFC3339,
	"2006-1-2T15:4:5",
	"2006-1-2 15:4:5 MST",
	"2006-1-2 15:4:5",
	"2006-1-2",
}

// ParseTimeEpoch parses a temporal axis unit of the form "<unit> since
// <date>" and returns the time unit together with the epoch in UTC.
func ParseTimeEpoch(spec string) (Unit, time.Time, error) {
	lower := strings.ToLower(spec)
	i := strings.Index(lower, " since ")
	if i < 0 {
		return Unit{}, time.Time{}, fmt.Errorf("time unit %q has no since clause: %w", spec, ErrUnknownUnit)
	}
	unit, err := ParseUnit(spec[:i])
	if err != nil {
		return Unit{}, time.Time{}, err
	}
	if unit.Kind != UnitTime {
		return Unit{}, time.Time{}, fmt.Errorf("unit %q is not a time unit: %w", unit.Symbol, ErrUnknownUnit)
	}
	date := strings.TrimSpace(spec[i+len(" since "):])
	for _, layout := range epochLayouts {
		if t, perr := time.Parse(layout, date); perr == nil {
			return unit, t.UTC(), nil
		}
	}
	return Unit{}, time.Time{}, fmt.Errorf("epoch %q: %w", date, ErrUnknownEpoch)
}

// IsTimeUnitSpec reports whether a unit string denotes a temporal coordinate,
// either a bare time unit or a "<unit> since <date>" expression.
func IsTimeUnitSpec(symbol string) bool {
	s := symbol
	if i := strings.Index(strings.ToLower(s), " since "); i >= 0 {
		s = s[:i]
	}
	u, err := ParseUnit(s)
	return err == nil && u.Kind == UnitTime
}
