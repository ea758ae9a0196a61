package proj

import (
	"math"

	"github.com/terrascope/gridcrs/internal/domain"
)

// Mercator is the cylindrical Mercator projection on the sphere, true to
// scale along the declared standard parallel.
type Mercator struct {
	params        []domain.Parameter
	originLon     float64 // degrees
	a             float64 // R·cos(standard parallel), km
	falseEasting  float64 // km
	falseNorthing float64 // km
}

// NewMercator builds the projection from its grid-mapping parameters. The
// parallel of true scale comes from standard_parallel; a declared
// scale_factor_at_projection_origin replaces it, the two are exclusive.
func NewMercator(params []domain.Parameter) *Mercator {
	scale := math.Cos(toRad(scalarParameter(params, "standard_parallel", 0)))
	if k := scalarParameter(params, "scale_factor_at_projection_origin", 0); k > 0 {
		scale = k
	}
	return &Mercator{
		params:        params,
		originLon:     scalarParameter(params, "longitude_of_projection_origin", 0),
		a:             earthRadiusKm(params) * scale,
		falseEasting:  scalarParameter(params, "false_easting", 0),
		falseNorthing: scalarParameter(params, "false_northing", 0),
	}
}

// Name returns the projection name.
func (m *Mercator) Name() string { return "Mercator" }

// Parameters returns the grid-mapping parameters verbatim.
func (m *Mercator) Parameters() []domain.Parameter { return m.params }

// Forward converts geographic degrees to map kilometres. The poles map to
// infinite northing.
func (m *Mercator) Forward(lat, lon float64) (x, y float64) {
	x = m.a*toRad(normLonDelta(lon-m.originLon)) + m.falseEasting
	y = m.a*math.Log(math.Tan(math.Pi/4+toRad(lat)/2)) + m.falseNorthing
	return x, y
}

// Inverse converts map kilometres back to geographic degrees.
func (m *Mercator) Inverse(x, y float64) (lat, lon float64) {
	lat = toDeg(2*math.Atan(math.Exp((y-m.falseNorthing)/m.a)) - math.Pi/2)
	lon = normLonDelta(m.originLon + toDeg((x-m.falseEasting)/m.a))
	return lat, lon
}

// DefaultMapArea returns the geographic bounds of the default projected
// square around the origin.
func (m *Mercator) DefaultMapArea() (domain.GeographicBoundingBox, bool) {
	return inverseMapArea(m, m.falseEasting, m.falseNorthing)
}
