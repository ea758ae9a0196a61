// Package domain contains the CRS object model and the coordinate-system
// composition core.
package domain

// CRS is a coordinate reference system assembled from the axes of a native
// coordinate system. Its delegate is that native coordinate system.
type CRS interface {
	Wrapper

	// Name returns the CRS identifier in the netCDF code space. The code
	// joins the recognized axis names in the file's declared order, so a
	// compound CRS reads naturally even though its structural axis order is
	// the authority order.
	Name() Identifier

	// Axes returns the axes in authority order: horizontal X, horizontal Y,
	// vertical, temporal.
	Axes() []*Axis
}

// GeographicCRS is a two-dimensional CRS with longitude and latitude axes on
// a spherical reference frame.
type GeographicCRS struct {
	name   Identifier
	lon    *Axis
	lat    *Axis
	datum  GeodeticDatum
	native NativeCoordSystem
}

// Delegate returns the native coordinate system.
func (c *GeographicCRS) Delegate() any { return c.native }

// Name returns the CRS identifier.
func (c *GeographicCRS) Name() Identifier { return c.name }

// Axes returns the axes in (longitude, latitude) order.
func (c *GeographicCRS) Axes() []*Axis { return []*Axis{c.lon, c.lat} }

// Datum returns the geodetic datum.
func (c *GeographicCRS) Datum() GeodeticDatum { return c.datum }

// ProjectedCRS is a two-dimensional CRS in projected map coordinates. It
// carries the coordinate operation that relates it to its geographic base.
type ProjectedCRS struct {
	name       Identifier
	x          *Axis
	y          *Axis
	conversion *Conversion
	base       *GeographicCRS
	datum      GeodeticDatum
	native     NativeCoordSystem
}

// Delegate returns the native coordinate system.
func (c *ProjectedCRS) Delegate() any { return c.native }

// Name returns the CRS identifier.
func (c *ProjectedCRS) Name() Identifier { return c.name }

// Axes returns the axes in (x, y) order.
func (c *ProjectedCRS) Axes() []*Axis { return []*Axis{c.x, c.y} }

// Conversion returns the coordinate operation from the geographic base.
func (c *ProjectedCRS) Conversion() *Conversion { return c.conversion }

// BaseCRS returns the geographic CRS the projection departs from.
func (c *ProjectedCRS) BaseCRS() *GeographicCRS { return c.base }

// Datum returns the geodetic datum.
func (c *ProjectedCRS) Datum() GeodeticDatum { return c.datum }

// VerticalCRS is a one-dimensional CRS along a height or depth axis.
type VerticalCRS struct {
	name   Identifier
	axis   *Axis
	datum  VerticalDatum
	native NativeCoordSystem
}

// Delegate returns the native coordinate system.
func (c *VerticalCRS) Delegate() any { return c.native }

// Name returns the CRS identifier.
func (c *VerticalCRS) Name() Identifier { return c.name }

// Axes returns the single vertical axis.
func (c *VerticalCRS) Axes() []*Axis { return []*Axis{c.axis} }

// Datum returns the vertical datum.
func (c *VerticalCRS) Datum() VerticalDatum { return c.datum }

// TemporalCRS is a one-dimensional CRS along a time axis. Its datum origin
// is the epoch parsed from the axis unit.
type TemporalCRS struct {
	name   Identifier
	axis   *Axis
	datum  TemporalDatum
	native NativeCoordSystem
}

// Delegate returns the native coordinate system.
func (c *TemporalCRS) Delegate() any { return c.native }

// Name returns the CRS identifier.
func (c *TemporalCRS) Name() Identifier { return c.name }

// Axes returns the single temporal axis.
func (c *TemporalCRS) Axes() []*Axis { return []*Axis{c.axis} }

// Datum returns the temporal datum.
func (c *TemporalCRS) Datum() TemporalDatum { return c.datum }

// CompoundCRS concatenates two to four single CRS components in the fixed
// order horizontal, vertical, temporal.
type CompoundCRS struct {
	name       Identifier
	components []CRS
	native     NativeCoordSystem
}

// Delegate returns the native coordinate system.
func (c *CompoundCRS) Delegate() any { return c.native }

// Name returns the CRS identifier. The code preserves the file's declared
// axis order for readability.
func (c *CompoundCRS) Name() Identifier { return c.name }

// Components returns the single CRS components in structural order.
func (c *CompoundCRS) Components() []CRS { return c.components }

// Axes returns the axes of all components, flattened in structural order.
func (c *CompoundCRS) Axes() []*Axis {
	var axes []*Axis
	for _, comp := range c.components {
		axes = append(axes, comp.Axes()...)
	}
	return axes
}
