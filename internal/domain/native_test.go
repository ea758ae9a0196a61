package domain

import "strings"

// Test doubles for the native reader contracts.

type fakeAxis struct {
	name     string
	hint     string
	unit     string
	positive string
	standard string
	values   []float64
	valueErr error
}

func (f *fakeAxis) Name() string          { return f.name }
func (f *fakeAxis) DirectionHint() string { return f.hint }
func (f *fakeAxis) UnitString() string    { return f.unit }
func (f *fakeAxis) Positive() string      { return f.positive }
func (f *fakeAxis) StandardName() string  { return f.standard }
func (f *fakeAxis) Len() int              { return len(f.values) }

func (f *fakeAxis) Values() ([]float64, error) {
	if f.valueErr != nil {
		return nil, f.valueErr
	}
	return f.values, nil
}

type fakeCoordSystem struct {
	name    string
	axes    []NativeAxis
	product bool
	proj    NativeProjection
}

func (f *fakeCoordSystem) Name() string                { return f.name }
func (f *fakeCoordSystem) Axes() []NativeAxis          { return f.axes }
func (f *fakeCoordSystem) IsProduct() bool             { return f.product }
func (f *fakeCoordSystem) Projection() NativeProjection { return f.proj }

type fakeDataset struct {
	location string
	attrs    map[string]any
}

func (f *fakeDataset) Location() string { return f.location }

func (f *fakeDataset) FindAttribute(name string) (any, bool) {
	for k, v := range f.attrs {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

// fakeProjection is an invertible stand-in for a projection library object.
type fakeProjection struct {
	name   string
	params []Parameter
	area   *GeographicBoundingBox
}

func (f *fakeProjection) Name() string            { return f.name }
func (f *fakeProjection) Parameters() []Parameter { return f.params }

func (f *fakeProjection) Forward(lat, lon float64) (x, y float64) {
	return lon / 2, lat / 2
}

func (f *fakeProjection) Inverse(x, y float64) (lat, lon float64) {
	return y * 2, x * 2
}

func (f *fakeProjection) DefaultMapArea() (GeographicBoundingBox, bool) {
	if f.area == nil {
		return GeographicBoundingBox{}, false
	}
	return *f.area, true
}

// Canonical fixtures.

func geographicAxes() (*fakeAxis, *fakeAxis) {
	lat := &fakeAxis{
		name:   "lat",
		hint:   "north",
		unit:   "degrees_north",
		values: []float64{-90, -45, 0, 45, 90},
	}
	lon := &fakeAxis{
		name:   "lon",
		hint:   "east",
		unit:   "degrees_east",
		values: []float64{-180, -90, 0, 90, 180},
	}
	return lat, lon
}

// geographic2D mirrors a two-dimensional sea-surface-temperature grid:
// declared axis order (lat, lon).
func geographic2D() *fakeCoordSystem {
	lat, lon := geographicAxes()
	return &fakeCoordSystem{
		name:    "lat lon",
		axes:    []NativeAxis{lat, lon},
		product: true,
	}
}

func lambertParams() []Parameter {
	return []Parameter{
		{Name: "grid_mapping_name", Text: "lambert_conformal_conic"},
		{Name: "latitude_of_projection_origin", Values: []float64{25.0}},
		{Name: "longitude_of_central_meridian", Values: []float64{-95.0}},
		{Name: "earth_radius", Values: []float64{6371229.0}},
		{Name: "standard_parallel", Values: []float64{25.0, 25.05}},
	}
}

// projected4D mirrors a four-dimensional icing-product grid: declared axis
// order (time, z0, y0, x0) with a Lambert conformal grid mapping.
func projected4D() *fakeCoordSystem {
	timeAxis := &fakeAxis{
		name:   "time",
		unit:   "seconds since 1970-01-01T00:00:00Z",
		values: []float64{0, 3600, 7200},
	}
	z0 := &fakeAxis{
		name:     "z0",
		unit:     "100 feet",
		positive: "up",
		values:   []float64{10, 30, 50, 70},
	}
	y0 := &fakeAxis{
		name:     "y0",
		unit:     "km",
		standard: "projection_y_coordinate",
		values:   []float64{-832.697, 4529.903},
	}
	x0 := &fakeAxis{
		name:     "x0",
		unit:     "km",
		standard: "projection_x_coordinate",
		values:   []float64{-4226.108, 3250.731},
	}
	return &fakeCoordSystem{
		name:    "time z0 y0 x0",
		axes:    []NativeAxis{timeAxis, z0, y0, x0},
		product: true,
		proj: &fakeProjection{
			name:   "LambertConformalConic",
			params: lambertParams(),
		},
	}
}
