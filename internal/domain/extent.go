package domain

import "math"

// GeographicBoundingBox is a geographic extent in decimal degrees.
type GeographicBoundingBox struct {
	West  float64
	East  float64
	South float64
	North float64
}

// IsValid checks if the box has valid dimensions.
func (b GeographicBoundingBox) IsValid() bool {
	return b.West <= b.East && b.South <= b.North &&
		b.South >= -90 && b.North <= 90
}

// IsZero returns true if the box is unset.
func (b GeographicBoundingBox) IsZero() bool {
	return b.West == 0 && b.East == 0 && b.South == 0 && b.North == 0
}

// Contains checks if a geographic position is within the box.
func (b GeographicBoundingBox) Contains(lat, lon float64) bool {
	return lon >= b.West && lon <= b.East && lat >= b.South && lat <= b.North
}

// Width returns the longitudinal span in degrees.
func (b GeographicBoundingBox) Width() float64 {
	return math.Abs(b.East - b.West)
}

// Height returns the latitudinal span in degrees.
func (b GeographicBoundingBox) Height() float64 {
	return math.Abs(b.North - b.South)
}

// Center returns the central position of the box.
func (b GeographicBoundingBox) Center() (lat, lon float64) {
	return (b.South + b.North) / 2, (b.West + b.East) / 2
}
