// Package proj implements the map projections declared by the grid mappings
// of the array-format ecosystem. All projections are spherical, take
// geographic coordinates in decimal degrees and produce map coordinates in
// kilometres, and carry their grid-mapping parameters verbatim so the object
// model can expose them unchanged.
package proj

import (
	"fmt"
	"math"
	"strings"

	"github.com/terrascope/gridcrs/internal/domain"
)

// EarthRadiusKm is the default spherical Earth radius in kilometres,
// matching the 6371229 m sphere of the predefined reference frame.
const EarthRadiusKm = 6371.229

// Grid-mapping names understood by FromGridMapping.
const (
	MappingLatitudeLongitude     = "latitude_longitude"
	MappingMercator              = "mercator"
	MappingLambertConformalConic = "lambert_conformal_conic"
)

// FromGridMapping builds the projection a grid mapping declares. A
// latitude_longitude mapping returns nil without error: the horizontal
// system is geographic and needs no operation. Unknown mapping names are
// rejected so the caller can surface the unrecognized projection.
func FromGridMapping(params []domain.Parameter) (domain.NativeProjection, error) {
	name := textParameter(params, "grid_mapping_name")
	switch strings.ToLower(name) {
	case "":
		return nil, fmt.Errorf("grid mapping without grid_mapping_name: %w", domain.ErrInvalidInput)
	case MappingLatitudeLongitude:
		return nil, nil
	case MappingMercator:
		return NewMercator(params), nil
	case MappingLambertConformalConic:
		return NewLambertConformalConic(params), nil
	}
	return nil, fmt.Errorf("grid mapping %q: %w", name, domain.ErrUnsupported)
}

func textParameter(params []domain.Parameter, name string) string {
	for _, p := range params {
		if strings.EqualFold(p.Name, name) && !p.IsNumeric() {
			return p.Text
		}
	}
	return ""
}

func scalarParameter(params []domain.Parameter, name string, fallback float64) float64 {
	for _, p := range params {
		if strings.EqualFold(p.Name, name) && p.IsNumeric() {
			return p.Scalar()
		}
	}
	return fallback
}

func vectorParameter(params []domain.Parameter, name string) []float64 {
	for _, p := range params {
		if strings.EqualFold(p.Name, name) && p.IsNumeric() {
			return p.Values
		}
	}
	return nil
}

// earthRadiusKm resolves the declared Earth radius, which grid mappings
// state in metres, falling back to the default sphere.
func earthRadiusKm(params []domain.Parameter) float64 {
	if r := scalarParameter(params, "earth_radius", 0); r > 0 {
		return r / 1000
	}
	if r := scalarParameter(params, "semi_major_axis", 0); r > 0 {
		return r / 1000
	}
	return EarthRadiusKm
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }
func toDeg(rad float64) float64 { return rad * 180 / math.Pi }

// normLonDelta folds a longitude difference into (-180, 180].
func normLonDelta(delta float64) float64 {
	delta = math.Mod(delta, 360)
	switch {
	case delta > 180:
		delta -= 360
	case delta <= -180:
		delta += 360
	}
	return delta
}

// defaultMapHalfKm is the half-extent of the projected square that bounds a
// projection's declared domain of validity.
const defaultMapHalfKm = 5320.0

// inverseMapArea bounds the inverse image of the default projected square
// centred on the projection origin, sampled at corners and edge midpoints.
func inverseMapArea(p domain.NativeProjection, centerX, centerY float64) (domain.GeographicBoundingBox, bool) {
	offsets := [8][2]float64{
		{-1, -1}, {0, -1}, {1, -1},
		{-1, 0}, {1, 0},
		{-1, 1}, {0, 1}, {1, 1},
	}
	box := domain.GeographicBoundingBox{
		West:  math.Inf(1),
		East:  math.Inf(-1),
		South: math.Inf(1),
		North: math.Inf(-1),
	}
	for _, o := range offsets {
		lat, lon := p.Inverse(centerX+o[0]*defaultMapHalfKm, centerY+o[1]*defaultMapHalfKm)
		if math.IsNaN(lat) || math.IsNaN(lon) {
			continue
		}
		box.West = math.Min(box.West, lon)
		box.East = math.Max(box.East, lon)
		box.South = math.Min(box.South, lat)
		box.North = math.Max(box.North, lat)
	}
	box.West = math.Max(box.West, -180)
	box.East = math.Min(box.East, 180)
	box.South = math.Max(box.South, -90)
	box.North = math.Min(box.North, 90)
	return box, box.IsValid()
}
