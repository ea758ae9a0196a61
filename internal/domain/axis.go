package domain

import (
	"fmt"
	"math"
	"strings"
)

// AxisDirection is the physical direction of increasing axis values.
type AxisDirection int

// Axis directions.
const (
	DirectionUnspecified AxisDirection = iota
	DirectionEast
	DirectionWest
	DirectionNorth
	DirectionSouth
	DirectionUp
	DirectionDown
	DirectionFuture
	DirectionPast
)

// String returns the direction name.
func (d AxisDirection) String() string {
	switch d {
	case DirectionEast:
		return "east"
	case DirectionWest:
		return "west"
	case DirectionNorth:
		return "north"
	case DirectionSouth:
		return "south"
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionFuture:
		return "future"
	case DirectionPast:
		return "past"
	default:
		return "unspecified"
	}
}

// RangeMeaning states how an axis range relates to out-of-range values.
type RangeMeaning int

// Range meanings.
const (
	RangeExact      RangeMeaning = iota // Values outside the range are invalid
	RangeWraparound                     // Values wrap around, as longitude does at ±180
)

// String returns the range meaning name.
func (m RangeMeaning) String() string {
	if m == RangeWraparound {
		return "wraparound"
	}
	return "exact"
}

// Axis is one native coordinate axis exposed through the CRS axis contract.
// It holds a reference to the native descriptor, never a copy; mutating the
// native dataset after wrapping is undefined behavior.
type Axis struct {
	native    NativeAxis
	kind      AxisKind
	direction AxisDirection
	unit      Unit
	min, max  float64
	meaning   RangeMeaning
}

// WrapAxis adapts a classified native axis. The caller must filter Unknown
// axes beforehand; wrapping one is an error. The numeric range comes from
// the native values when they are readable, otherwise from the physical
// convention of the kind (longitude ±180 wraparound, latitude ±90 exact,
// unbounded for everything else).
func WrapAxis(native NativeAxis, kind AxisKind) (*Axis, error) {
	if native == nil {
		return nil, fmt.Errorf("axis: %w", ErrInvalidInput)
	}
	if kind == KindUnknown {
		return nil, fmt.Errorf("axis %q: %w", native.Name(), ErrUnknownAxisKind)
	}
	unit, err := ParseUnit(baseUnitSpec(native.UnitString()))
	if err != nil {
		// Preserve the declared symbol even when it resolves to no known unit.
		unit = Unit{Symbol: native.UnitString(), Kind: UnitDimensionless, Scale: 1}
	}
	a := &Axis{
		native:    native,
		kind:      kind,
		direction: directionFor(kind, native),
		unit:      unit,
		meaning:   RangeExact,
	}
	if kind == KindLongitude {
		a.meaning = RangeWraparound
	}
	a.min, a.max = axisRange(native, kind)
	return a, nil
}

// baseUnitSpec strips the "since <date>" clause from temporal unit strings
// so the bare time unit is what the axis reports.
func baseUnitSpec(spec string) string {
	if i := strings.Index(strings.ToLower(spec), " since "); i >= 0 {
		return spec[:i]
	}
	return spec
}

func directionFor(kind AxisKind, native NativeAxis) AxisDirection {
	switch kind {
	case KindLongitude, KindProjectedX:
		return DirectionEast
	case KindLatitude, KindProjectedY:
		return DirectionNorth
	case KindTime:
		return DirectionFuture
	case KindHeight:
		if strings.EqualFold(native.Positive(), "down") ||
			strings.EqualFold(native.DirectionHint(), "down") {
			return DirectionDown
		}
		return DirectionUp
	default:
		return DirectionUnspecified
	}
}

func axisRange(native NativeAxis, kind AxisKind) (min, max float64) {
	if values, err := native.Values(); err == nil && len(values) > 0 {
		min, max = values[0], values[0]
		for _, v := range values[1:] {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		return min, max
	}
	switch kind {
	case KindLongitude:
		return -180, 180
	case KindLatitude:
		return -90, 90
	}
	return math.Inf(-1), math.Inf(1)
}

// Delegate returns the native axis descriptor.
func (a *Axis) Delegate() any { return a.native }

// Kind returns the semantic classification the axis was wrapped with.
func (a *Axis) Kind() AxisKind { return a.kind }

// Name returns the native axis name.
func (a *Axis) Name() string { return a.native.Name() }

// Abbreviation returns the axis abbreviation. It mirrors the native name,
// which the array format guarantees unique within a coordinate system.
func (a *Axis) Abbreviation() string { return a.native.Name() }

// Direction returns the direction of increasing values.
func (a *Axis) Direction() AxisDirection { return a.direction }

// Unit returns the axis unit of measure.
func (a *Axis) Unit() Unit { return a.unit }

// Minimum returns the lower bound of the axis range.
func (a *Axis) Minimum() float64 { return a.min }

// Maximum returns the upper bound of the axis range.
func (a *Axis) Maximum() float64 { return a.max }

// RangeMeaning returns how the range bounds are to be interpreted.
func (a *Axis) RangeMeaning() RangeMeaning { return a.meaning }

// Length returns the number of coordinate values along the axis.
func (a *Axis) Length() int { return a.native.Len() }

// String returns a short description for logs.
func (a *Axis) String() string {
	return fmt.Sprintf("%s (%s, %s)", a.Name(), a.kind, a.direction)
}

// sentinelAxis is the constant delegate behind the predefined axes.
type sentinelAxis struct {
	tag  SentinelTag
	name string
	hint string
	unit string
}

func (s *sentinelAxis) Name() string            { return s.name }
func (s *sentinelAxis) DirectionHint() string   { return s.hint }
func (s *sentinelAxis) UnitString() string      { return s.unit }
func (s *sentinelAxis) Positive() string        { return "" }
func (s *sentinelAxis) StandardName() string    { return "" }
func (s *sentinelAxis) Len() int                { return 0 }
func (s *sentinelAxis) Values() ([]float64, error) { return nil, nil }

// IdentityKey implements IdentityKeyer.
func (s *sentinelAxis) IdentityKey() string { return "axis:" + string(s.tag) }

// Predefined geodetic axes, used where a CRS needs a geographic pair that no
// file axis supplies (the base CRS of a projected CRS).
var (
	GeodeticLongitude = &Axis{
		native:    &sentinelAxis{tag: TagLongitude, name: "λ", hint: "east", unit: "degrees"},
		kind:      KindLongitude,
		direction: DirectionEast,
		unit:      Degree,
		min:       -180,
		max:       180,
		meaning:   RangeWraparound,
	}
	GeodeticLatitude = &Axis{
		native:    &sentinelAxis{tag: TagLatitude, name: "φ", hint: "north", unit: "degrees"},
		kind:      KindLatitude,
		direction: DirectionNorth,
		unit:      Degree,
		min:       -90,
		max:       90,
		meaning:   RangeExact,
	}
)
