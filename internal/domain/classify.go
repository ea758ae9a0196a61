package domain

import (
	"math"
	"strconv"
	"strings"
)

// AxisKind is the semantic classification of a coordinate axis.
type AxisKind int

// Axis kinds.
const (
	KindUnknown AxisKind = iota
	KindLongitude
	KindLatitude
	KindHeight
	KindTime
	KindProjectedX
	KindProjectedY
)

// String returns the kind name.
func (k AxisKind) String() string {
	switch k {
	case KindLongitude:
		return "longitude"
	case KindLatitude:
		return "latitude"
	case KindHeight:
		return "height"
	case KindTime:
		return "time"
	case KindProjectedX:
		return "projected-x"
	case KindProjectedY:
		return "projected-y"
	default:
		return "unknown"
	}
}

// IsHorizontal returns true for the four horizontal kinds.
func (k AxisKind) IsHorizontal() bool {
	switch k {
	case KindLongitude, KindLatitude, KindProjectedX, KindProjectedY:
		return true
	}
	return false
}

// Standard names marking horizontal coordinates of a projected system.
const (
	stdProjectionX = "projection_x_coordinate"
	stdProjectionY = "projection_y_coordinate"
)

// Classify determines the semantic kind of a native axis. It is a total
// function: axes it cannot place are Unknown, never an error.
//
// The direction hint is inspected first and wins over the unit when the two
// conflict: an east/west hint with an angular unit is a longitude, a
// north/south hint a latitude, and an up/down hint with a length or pressure
// unit a height. A compass bearing hint counts as east/west when it points
// along the equator and as north/south when it points along a meridian.
// Axes that escape the hint rules are matched by unit (time units, including
// "<unit> since <date>" forms) and by standard name (projected x/y), with an
// east/north hint plus a length unit accepted as a projected coordinate for
// files that omit standard names.
func Classify(ax NativeAxis) AxisKind {
	hint := normalizeHint(ax.DirectionHint())
	unit, uerr := ParseUnit(ax.UnitString())
	angular := uerr == nil && unit.Kind == UnitAngle
	linear := uerr == nil && unit.Kind == UnitLength
	vertical := uerr == nil && (unit.Kind == UnitLength || unit.Kind == UnitPressure)

	switch hint {
	case "east", "west":
		if angular {
			return KindLongitude
		}
	case "north", "south":
		if angular {
			return KindLatitude
		}
	case "up", "down":
		if vertical {
			return KindHeight
		}
	}

	// The positive convention marks vertical axes that carry no hint.
	switch strings.ToLower(ax.Positive()) {
	case "up", "down":
		if vertical {
			return KindHeight
		}
	}

	if !isHorizontalHint(hint) && IsTimeUnitSpec(ax.UnitString()) {
		return KindTime
	}

	switch strings.ToLower(ax.StandardName()) {
	case stdProjectionX:
		return KindProjectedX
	case stdProjectionY:
		return KindProjectedY
	}

	if linear {
		switch hint {
		case "east", "west":
			return KindProjectedX
		case "north", "south":
			return KindProjectedY
		}
	}

	return KindUnknown
}

func isHorizontalHint(hint string) bool {
	switch hint {
	case "east", "west", "north", "south":
		return true
	}
	return false
}

// normalizeHint lowercases a direction hint and folds numeric compass
// bearings onto the nearest cardinal direction when they lie within 20
// degrees of it.
func normalizeHint(hint string) string {
	h := strings.ToLower(strings.TrimSpace(hint))
	switch h {
	case "east", "west", "north", "south", "up", "down", "":
		return h
	}
	bearing, err := strconv.ParseFloat(h, 64)
	if err != nil {
		return h
	}
	bearing = math.Mod(bearing, 360)
	if bearing < 0 {
		bearing += 360
	}
	const tolerance = 20.0
	switch {
	case bearing <= tolerance || bearing >= 360-tolerance:
		return "north"
	case math.Abs(bearing-90) <= tolerance:
		return "east"
	case math.Abs(bearing-180) <= tolerance:
		return "south"
	case math.Abs(bearing-270) <= tolerance:
		return "west"
	}
	return h
}
