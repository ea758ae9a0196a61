package domain

import "time"

// SentinelTag identifies a predefined reference object.
type SentinelTag string

// Semantic tags of the predefined objects.
const (
	TagLongitude SentinelTag = "longitude"
	TagLatitude  SentinelTag = "latitude"
	TagGreenwich SentinelTag = "greenwich"
	TagSphere    SentinelTag = "sphere"
)

// Ellipsoid is the reference figure of the Earth. Files expose no ellipsoidal
// parameters, so composed reference frames always carry the spherical figure.
type Ellipsoid struct {
	Name      string
	SemiMajor float64 // metres
	SemiMinor float64 // metres
}

// IsSphere returns true if both semi-axes are equal.
func (e Ellipsoid) IsSphere() bool {
	return e.SemiMajor == e.SemiMinor
}

// PrimeMeridian is the reference meridian of a geodetic datum.
type PrimeMeridian struct {
	Name      string
	Longitude float64 // degrees east of the international reference meridian
}

// GeodeticDatum ties an ellipsoid and a prime meridian to a name.
type GeodeticDatum struct {
	Name          string
	Ellipsoid     Ellipsoid
	PrimeMeridian PrimeMeridian
}

// VerticalDatum is the reference surface of a vertical CRS.
type VerticalDatum struct {
	Name string
}

// TemporalDatum fixes the origin of a temporal CRS.
type TemporalDatum struct {
	Name   string
	Origin time.Time
}

// Predefined reference objects. The GRIB Earth radius of 6371229 metres is
// the default spherical figure of the array-format ecosystem.
var (
	Sphere         = Ellipsoid{Name: "Sphere", SemiMajor: 6371229, SemiMinor: 6371229}
	Greenwich      = PrimeMeridian{Name: "Greenwich", Longitude: 0}
	SphericalFrame = GeodeticDatum{Name: "Spherical reference frame", Ellipsoid: Sphere, PrimeMeridian: Greenwich}
)

// Predefined is the lookup table of sentinel objects keyed by semantic tag.
var Predefined = map[SentinelTag]any{
	TagLongitude: GeodeticLongitude,
	TagLatitude:  GeodeticLatitude,
	TagGreenwich: Greenwich,
	TagSphere:    Sphere,
}
