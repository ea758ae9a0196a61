package proj

import (
	"math"

	"github.com/terrascope/gridcrs/internal/domain"
)

// LambertConformalConic is the conic conformal projection on the sphere with
// one or two standard parallels.
type LambertConformalConic struct {
	params        []domain.Parameter
	originLat     float64 // degrees
	originLon     float64 // degrees
	radius        float64 // km
	falseEasting  float64 // km
	falseNorthing float64 // km

	// Cone constants, precomputed from the parallels.
	n    float64 // cone constant, sin(parallel) for a tangent cone
	f    float64 // scale constant
	rho0 float64 // cone distance of the origin latitude, km
}

// NewLambertConformalConic builds the projection from its grid-mapping
// parameters. standard_parallel carries one or two values; when absent the
// cone is tangent at the origin latitude.
func NewLambertConformalConic(params []domain.Parameter) *LambertConformalConic {
	p := &LambertConformalConic{
		params:        params,
		originLat:     scalarParameter(params, "latitude_of_projection_origin", 0),
		originLon:     scalarParameter(params, "longitude_of_central_meridian", math.NaN()),
		radius:        earthRadiusKm(params),
		falseEasting:  scalarParameter(params, "false_easting", 0),
		falseNorthing: scalarParameter(params, "false_northing", 0),
	}
	if math.IsNaN(p.originLon) {
		p.originLon = scalarParameter(params, "longitude_of_projection_origin", 0)
	}

	par1, par2 := p.originLat, p.originLat
	if parallels := vectorParameter(params, "standard_parallel"); len(parallels) > 0 {
		par1, par2 = parallels[0], parallels[0]
		if len(parallels) > 1 {
			par2 = parallels[1]
		}
	}
	φ1, φ2 := toRad(par1), toRad(par2)
	if par1 == par2 {
		p.n = math.Sin(φ1)
	} else {
		p.n = math.Log(math.Cos(φ1)/math.Cos(φ2)) /
			math.Log(math.Tan(math.Pi/4+φ2/2)/math.Tan(math.Pi/4+φ1/2))
	}
	p.f = math.Cos(φ1) * math.Pow(math.Tan(math.Pi/4+φ1/2), p.n) / p.n
	p.rho0 = p.rho(p.originLat)
	return p
}

// rho returns the cone distance from the apex for a latitude, in kilometres.
// It is negative for a southern cone.
func (p *LambertConformalConic) rho(lat float64) float64 {
	return p.radius * p.f / math.Pow(math.Tan(math.Pi/4+toRad(lat)/2), p.n)
}

// Name returns the projection name.
func (p *LambertConformalConic) Name() string { return "LambertConformalConic" }

// Parameters returns the grid-mapping parameters verbatim.
func (p *LambertConformalConic) Parameters() []domain.Parameter { return p.params }

// Forward converts geographic degrees to map kilometres.
func (p *LambertConformalConic) Forward(lat, lon float64) (x, y float64) {
	ρ := p.rho(lat)
	θ := p.n * toRad(normLonDelta(lon-p.originLon))
	x = ρ*math.Sin(θ) + p.falseEasting
	y = p.rho0 - ρ*math.Cos(θ) + p.falseNorthing
	return x, y
}

// Inverse converts map kilometres back to geographic degrees.
func (p *LambertConformalConic) Inverse(x, y float64) (lat, lon float64) {
	dx := x - p.falseEasting
	dy := p.rho0 - (y - p.falseNorthing)
	ρ := math.Hypot(dx, dy)
	if p.n < 0 {
		ρ = -ρ
		dx, dy = -dx, -dy
	}
	if ρ == 0 {
		return math.Copysign(90, p.n), p.originLon
	}
	θ := math.Atan2(dx, dy)
	lat = toDeg(2*math.Atan(math.Pow(p.radius*p.f/ρ, 1/p.n)) - math.Pi/2)
	lon = normLonDelta(p.originLon + toDeg(θ/p.n))
	return lat, lon
}

// DefaultMapArea returns the geographic bounds of the default projected
// square around the origin.
func (p *LambertConformalConic) DefaultMapArea() (domain.GeographicBoundingBox, bool) {
	return inverseMapArea(p, p.falseEasting, p.falseNorthing)
}
