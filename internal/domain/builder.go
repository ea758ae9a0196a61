package domain

// The group builders construct one single CRS per recognized kind-family.
// Each receives its axes in the file's declared order and keeps that order
// for the CRS name while emitting the axes themselves in authority order.

func buildGeographicCRS(native NativeCoordSystem, group []*Axis) (*GeographicCRS, error) {
	var lon, lat *Axis
	for _, ax := range group {
		switch ax.Kind() {
		case KindLongitude:
			lon = ax
		case KindLatitude:
			lat = ax
		}
	}
	if lon == nil {
		return nil, &IncompleteAxesError{Group: "geographic", Missing: "longitude axis", Have: axisNames(group)}
	}
	if lat == nil {
		return nil, &IncompleteAxesError{Group: "geographic", Missing: "latitude axis", Have: axisNames(group)}
	}
	return &GeographicCRS{
		name:   NewIdentifier(nativeOrderCode(group)),
		lon:    lon,
		lat:    lat,
		datum:  SphericalFrame,
		native: native,
	}, nil
}

func buildProjectedCRS(native NativeCoordSystem, group []*Axis, proj NativeProjection) (*ProjectedCRS, error) {
	var x, y *Axis
	for _, ax := range group {
		switch ax.Kind() {
		case KindProjectedX:
			x = ax
		case KindProjectedY:
			y = ax
		}
	}
	if x == nil {
		return nil, &IncompleteAxesError{Group: "projected", Missing: "x axis", Have: axisNames(group)}
	}
	if y == nil {
		return nil, &IncompleteAxesError{Group: "projected", Missing: "y axis", Have: axisNames(group)}
	}
	if proj == nil {
		return nil, &IncompleteAxesError{Group: "projected", Missing: "projection operation", Have: axisNames(group)}
	}
	conversion, err := WrapProjection(proj)
	if err != nil {
		return nil, err
	}
	base := &GeographicCRS{
		name:   NewIdentifier(GeodeticLongitude.Name() + " " + GeodeticLatitude.Name()),
		lon:    GeodeticLongitude,
		lat:    GeodeticLatitude,
		datum:  SphericalFrame,
		native: native,
	}
	return &ProjectedCRS{
		name:       NewIdentifier(nativeOrderCode(group)),
		x:          x,
		y:          y,
		conversion: conversion,
		base:       base,
		datum:      SphericalFrame,
		native:     native,
	}, nil
}

func buildVerticalCRS(native NativeCoordSystem, axis *Axis) *VerticalCRS {
	datum := VerticalDatum{Name: "Geometric height"}
	if axis.Unit().Kind == UnitPressure {
		datum.Name = "Pressure level"
	}
	return &VerticalCRS{
		name:   NewIdentifier(axis.Name()),
		axis:   axis,
		datum:  datum,
		native: native,
	}
}

func buildTemporalCRS(native NativeCoordSystem, axis *Axis) (*TemporalCRS, error) {
	spec := axis.native.UnitString()
	_, origin, err := ParseTimeEpoch(spec)
	if err != nil {
		return nil, &UnparsableEpochError{Axis: axis.Name(), Spec: spec, Err: err}
	}
	return &TemporalCRS{
		name:   NewIdentifier(axis.Name()),
		axis:   axis,
		datum:  TemporalDatum{Name: "time origin", Origin: origin},
		native: native,
	}, nil
}
